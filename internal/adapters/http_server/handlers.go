package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"hotel_registry/internal/app"
	"hotel_registry/internal/domain"
)

type Handlers struct {
	Hotels       *app.HotelService
	Customers    *app.CustomerService
	Reservations *app.ReservationService
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })

	s.mux.Route("/v1", func(r chi.Router) {
		r.Post("/hotels", h.createHotel)
		r.Get("/hotels/{id}", h.getHotel)
		r.Patch("/hotels/{id}", h.modifyHotel)
		r.Delete("/hotels/{id}", h.deleteHotel)
		r.Post("/hotels/{id}/reserve", h.reserveRoom)
		r.Post("/hotels/{id}/release", h.releaseRoom)

		r.Post("/customers", h.createCustomer)
		r.Get("/customers/{id}", h.getCustomer)
		r.Patch("/customers/{id}", h.modifyCustomer)
		r.Delete("/customers/{id}", h.deleteCustomer)

		r.Post("/reservations", h.createReservation)
		r.Get("/reservations/{id}", h.getReservation)
		r.Post("/reservations/{id}/cancel", h.cancelReservation)
	})
}

// ---- wire types ----

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

type createHotelReq struct {
	ID         string  `json:"hotel_id"`
	Name       string  `json:"name"`
	Location   string  `json:"location"`
	Rating     float64 `json:"rating"`
	TotalRooms int     `json:"total_rooms"`
}

type createCustomerReq struct {
	ID    string `json:"customer_id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

type createReservationReq struct {
	ID         string `json:"reservation_id"`
	CustomerID string `json:"customer_id"`
	HotelID    string `json:"hotel_id"`
	CheckIn    string `json:"check_in"`
	CheckOut   string `json:"check_out"`
}

type roomOpReq struct {
	ReservationID string `json:"reservation_id"`
}

// ---- response helpers ----

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

// writeError maps manager errors onto problem+json statuses. Every manager
// error is recoverable; 500 is reserved for storage faults that survived
// the store's degrade-and-continue handling.
func writeError(w http.ResponseWriter, err error) {
	var ve *domain.ValidationError
	var re *domain.ReferenceError
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeProblem(w, http.StatusNotFound, "Not Found", err.Error())
	case errors.Is(err, domain.ErrNoRooms):
		writeProblem(w, http.StatusConflict, "No Rooms Available", err.Error())
	case errors.Is(err, domain.ErrAlreadyCancelled):
		writeProblem(w, http.StatusConflict, "Already Cancelled", err.Error())
	case errors.As(err, &ve):
		writeProblem(w, http.StatusUnprocessableEntity, "Validation Failed", err.Error())
	case errors.As(err, &re):
		writeProblem(w, http.StatusUnprocessableEntity, "Unknown Reference", err.Error())
	default:
		writeProblem(w, http.StatusInternalServerError, "Storage Failure", err.Error())
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("write JSON response failed")
	}
}

func decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeProblem(w, http.StatusBadRequest, "Malformed Body", "request body must be valid JSON")
		return false
	}
	return true
}

// ---- hotels ----

func (h *Handlers) createHotel(w http.ResponseWriter, r *http.Request) {
	var req createHotelReq
	if !decode(w, r, &req) {
		return
	}
	hotel, err := h.Hotels.Create(r.Context(), req.ID, req.Name, req.Location, req.Rating, req.TotalRooms)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, hotel)
}

func (h *Handlers) getHotel(w http.ResponseWriter, r *http.Request) {
	hotel, err := h.Hotels.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, hotel)
}

func (h *Handlers) modifyHotel(w http.ResponseWriter, r *http.Request) {
	var upd domain.HotelUpdate
	if !decode(w, r, &upd) {
		return
	}
	hotel, err := h.Hotels.Modify(r.Context(), chi.URLParam(r, "id"), upd)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, hotel)
}

func (h *Handlers) deleteHotel(w http.ResponseWriter, r *http.Request) {
	if err := h.Hotels.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) reserveRoom(w http.ResponseWriter, r *http.Request) {
	var req roomOpReq
	if !decode(w, r, &req) {
		return
	}
	if err := h.Hotels.ReserveRoom(r.Context(), chi.URLParam(r, "id"), req.ReservationID); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) releaseRoom(w http.ResponseWriter, r *http.Request) {
	var req roomOpReq
	if !decode(w, r, &req) {
		return
	}
	if err := h.Hotels.CancelReservation(r.Context(), chi.URLParam(r, "id"), req.ReservationID); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ---- customers ----

func (h *Handlers) createCustomer(w http.ResponseWriter, r *http.Request) {
	var req createCustomerReq
	if !decode(w, r, &req) {
		return
	}
	c, err := h.Customers.Create(r.Context(), req.ID, req.Name, req.Email, req.Phone)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, c)
}

func (h *Handlers) getCustomer(w http.ResponseWriter, r *http.Request) {
	c, err := h.Customers.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (h *Handlers) modifyCustomer(w http.ResponseWriter, r *http.Request) {
	var upd domain.CustomerUpdate
	if !decode(w, r, &upd) {
		return
	}
	c, err := h.Customers.Modify(r.Context(), chi.URLParam(r, "id"), upd)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (h *Handlers) deleteCustomer(w http.ResponseWriter, r *http.Request) {
	if err := h.Customers.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ---- reservations ----

func (h *Handlers) createReservation(w http.ResponseWriter, r *http.Request) {
	var req createReservationReq
	if !decode(w, r, &req) {
		return
	}
	res, err := h.Reservations.Create(r.Context(), req.ID, req.CustomerID, req.HotelID, req.CheckIn, req.CheckOut)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, res)
}

func (h *Handlers) getReservation(w http.ResponseWriter, r *http.Request) {
	res, err := h.Reservations.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *Handlers) cancelReservation(w http.ResponseWriter, r *http.Request) {
	res, err := h.Reservations.Cancel(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}
