package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"hotel_registry/internal/domain"
)

// ReservationService is the entity manager for the reservations collection.
// It owns its own file exclusively; the only cross-manager mutation is the
// delegated availability adjustment on the hotel manager.
type ReservationService struct {
	col       domain.Collection[domain.Reservation]
	hotels    *HotelService
	customers *CustomerService
	cache     domain.Cache
	cacheTTL  time.Duration
}

func NewReservationService(
	col domain.Collection[domain.Reservation],
	hotels *HotelService,
	customers *CustomerService,
	cache domain.Cache,
	ttl time.Duration,
) *ReservationService {
	return &ReservationService{col: col, hotels: hotels, customers: customers, cache: cache, cacheTTL: ttl}
}

func reservationKey(id string) string { return fmt.Sprintf("reservation:%s", id) }

// Create validates dates and referential existence before touching any
// state, so a rejected reservation leaves hotel availability unchanged.
// The room is taken first and the record persisted second; a crash between
// the two writes leaves the files inconsistent (accepted, see package docs).
func (s *ReservationService) Create(ctx context.Context, id, customerID, hotelID, checkIn, checkOut string) (domain.Reservation, error) {
	if !domain.ValidDates(checkIn, checkOut) {
		return domain.Reservation{}, &domain.ValidationError{
			Field:  "check_in/check_out",
			Reason: "dates must be YYYY-MM-DD with check_out after check_in",
		}
	}

	reservations, err := s.col.Load(ctx)
	if err != nil {
		return domain.Reservation{}, err
	}
	if _, ok := reservations[id]; ok {
		return domain.Reservation{}, &domain.ValidationError{Field: "reservation_id", Reason: fmt.Sprintf("%q already exists", id)}
	}

	if _, err := s.customers.Get(ctx, customerID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Reservation{}, &domain.ReferenceError{Kind: "customer", ID: customerID}
		}
		return domain.Reservation{}, err
	}
	if _, err := s.hotels.Get(ctx, hotelID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Reservation{}, &domain.ReferenceError{Kind: "hotel", ID: hotelID}
		}
		return domain.Reservation{}, err
	}

	// Takes the room and tracks the id on the hotel. ErrNoRooms propagates
	// and nothing has been persisted on our side.
	if err := s.hotels.ReserveRoom(ctx, hotelID, id); err != nil {
		return domain.Reservation{}, err
	}

	r := domain.Reservation{
		ID:         id,
		CustomerID: customerID,
		HotelID:    hotelID,
		CheckIn:    checkIn,
		CheckOut:   checkOut,
		Status:     domain.StatusActive,
	}
	reservations[id] = r
	if err := s.col.Save(ctx, reservations); err != nil {
		// give the room back: a handled write failure must not leave the
		// hotel holding a ghost reservation id
		if cerr := s.hotels.CancelReservation(ctx, hotelID, id); cerr != nil {
			log.Warn().Err(cerr).Str("reservation_id", id).Str("hotel_id", hotelID).
				Msg("could not release room after failed reservation write")
		}
		return domain.Reservation{}, err
	}
	return r, nil
}

func (s *ReservationService) Get(ctx context.Context, id string) (domain.Reservation, error) {
	key := reservationKey(id)
	if s.cache != nil {
		var r domain.Reservation
		if ok, _ := s.cache.Get(ctx, key, &r); ok {
			return r, nil
		}
	}
	r, err := s.col.Get(ctx, id)
	if err != nil {
		return domain.Reservation{}, err
	}
	if s.cache != nil {
		_ = s.cache.Set(ctx, key, r, s.cacheTTL)
	}
	return r, nil
}

// Cancel moves the reservation to cancelled and restores one unit of hotel
// availability. Cancelling twice is an error, not a no-op: each cancel must
// pair with exactly one availability increment.
func (s *ReservationService) Cancel(ctx context.Context, id string) (domain.Reservation, error) {
	reservations, err := s.col.Load(ctx)
	if err != nil {
		return domain.Reservation{}, err
	}
	r, ok := reservations[id]
	if !ok {
		return domain.Reservation{}, domain.ErrNotFound
	}
	if r.Status == domain.StatusCancelled {
		return domain.Reservation{}, domain.ErrAlreadyCancelled
	}

	if err := s.hotels.CancelReservation(ctx, r.HotelID, id); err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			return domain.Reservation{}, err
		}
		// Hotel deletion is blocked while reservations reference it, so a
		// missing hotel means a hand-edited file; cancel the record anyway.
		log.Warn().Str("reservation_id", id).Str("hotel_id", r.HotelID).
			Msg("cancelling reservation for a hotel that no longer exists")
	}

	r.Status = domain.StatusCancelled
	reservations[id] = r
	if err := s.col.Save(ctx, reservations); err != nil {
		return domain.Reservation{}, err
	}
	s.invalidate(ctx, id)
	return r, nil
}

// HasActiveForCustomer implements domain.ReservationIndex for the customer
// manager's delete guard.
func (s *ReservationService) HasActiveForCustomer(ctx context.Context, customerID string) (bool, error) {
	reservations, err := s.col.Load(ctx)
	if err != nil {
		return false, err
	}
	for _, r := range reservations {
		if r.CustomerID == customerID && r.Status == domain.StatusActive {
			return true, nil
		}
	}
	return false, nil
}

func (s *ReservationService) invalidate(ctx context.Context, id string) {
	if s.cache != nil {
		_ = s.cache.Del(ctx, reservationKey(id))
	}
}
