package app

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"hotel_registry/internal/domain"
)

// HotelService is the entity manager for the hotels collection. The cache is
// optional; a nil cache disables read-through lookups.
type HotelService struct {
	col      domain.Collection[domain.Hotel]
	cache    domain.Cache
	cacheTTL time.Duration
}

func NewHotelService(col domain.Collection[domain.Hotel], cache domain.Cache, ttl time.Duration) *HotelService {
	return &HotelService{col: col, cache: cache, cacheTTL: ttl}
}

func hotelKey(id string) string { return fmt.Sprintf("hotel:%s", id) }

func (s *HotelService) Create(ctx context.Context, id, name, location string, rating float64, totalRooms int) (domain.Hotel, error) {
	hotels, err := s.col.Load(ctx)
	if err != nil {
		return domain.Hotel{}, err
	}
	if _, ok := hotels[id]; ok {
		return domain.Hotel{}, &domain.ValidationError{Field: "hotel_id", Reason: fmt.Sprintf("%q already exists", id)}
	}
	h := domain.Hotel{
		ID:             id,
		Name:           name,
		Location:       location,
		Rating:         rating,
		TotalRooms:     totalRooms,
		AvailableRooms: totalRooms,
		Reservations:   []string{},
	}
	if err := h.Validate(); err != nil {
		return domain.Hotel{}, err
	}
	hotels[id] = h
	if err := s.col.Save(ctx, hotels); err != nil {
		return domain.Hotel{}, err
	}
	return h, nil
}

func (s *HotelService) Get(ctx context.Context, id string) (domain.Hotel, error) {
	key := hotelKey(id)
	if s.cache != nil {
		var h domain.Hotel
		if ok, _ := s.cache.Get(ctx, key, &h); ok {
			return h, nil
		}
	}
	h, err := s.col.Get(ctx, id)
	if err != nil {
		return domain.Hotel{}, err
	}
	if s.cache != nil {
		_ = s.cache.Set(ctx, key, h, s.cacheTTL)
	}
	return h, nil
}

// Modify updates only the supplied fields. A total_rooms change carries its
// delta into available_rooms so the occupied count stays fixed; shrinking
// below current occupancy fails validation.
func (s *HotelService) Modify(ctx context.Context, id string, upd domain.HotelUpdate) (domain.Hotel, error) {
	hotels, err := s.col.Load(ctx)
	if err != nil {
		return domain.Hotel{}, err
	}
	h, ok := hotels[id]
	if !ok {
		return domain.Hotel{}, domain.ErrNotFound
	}
	if upd.Name != nil {
		h.Name = *upd.Name
	}
	if upd.Location != nil {
		h.Location = *upd.Location
	}
	if upd.Rating != nil {
		h.Rating = *upd.Rating
	}
	if upd.TotalRooms != nil {
		h.AvailableRooms += *upd.TotalRooms - h.TotalRooms
		h.TotalRooms = *upd.TotalRooms
	}
	if err := h.Validate(); err != nil {
		return domain.Hotel{}, err
	}
	hotels[id] = h
	if err := s.col.Save(ctx, hotels); err != nil {
		return domain.Hotel{}, err
	}
	s.invalidate(ctx, id)
	return h, nil
}

// Delete is blocked while active reservations still reference the hotel.
func (s *HotelService) Delete(ctx context.Context, id string) error {
	hotels, err := s.col.Load(ctx)
	if err != nil {
		return err
	}
	h, ok := hotels[id]
	if !ok {
		return domain.ErrNotFound
	}
	if n := len(h.Reservations); n > 0 {
		return &domain.ValidationError{Field: "hotel_id", Reason: fmt.Sprintf("%d active reservation(s) still reference hotel %q", n, id)}
	}
	delete(hotels, id)
	if err := s.col.Save(ctx, hotels); err != nil {
		return err
	}
	s.invalidate(ctx, id)
	return nil
}

// ReserveRoom takes one room and tracks the reservation id on the hotel, in
// a single write so the document stays internally consistent.
func (s *HotelService) ReserveRoom(ctx context.Context, hotelID, reservationID string) error {
	hotels, err := s.col.Load(ctx)
	if err != nil {
		return err
	}
	h, ok := hotels[hotelID]
	if !ok {
		return domain.ErrNotFound
	}
	if h.AvailableRooms <= 0 {
		return domain.ErrNoRooms
	}
	h.AvailableRooms--
	h.Reservations = append(h.Reservations, reservationID)
	hotels[hotelID] = h
	if err := s.col.Save(ctx, hotels); err != nil {
		return err
	}
	s.invalidate(ctx, hotelID)
	return nil
}

// CancelReservation restores one unit of availability, capped at
// total_rooms, and drops the reservation id from the hotel's list.
func (s *HotelService) CancelReservation(ctx context.Context, hotelID, reservationID string) error {
	hotels, err := s.col.Load(ctx)
	if err != nil {
		return err
	}
	h, ok := hotels[hotelID]
	if !ok {
		return domain.ErrNotFound
	}
	tracked := false
	kept := h.Reservations[:0]
	for _, rid := range h.Reservations {
		if rid == reservationID && !tracked {
			tracked = true
			continue
		}
		kept = append(kept, rid)
	}
	h.Reservations = kept
	if !tracked {
		log.Warn().Str("hotel_id", hotelID).Str("reservation_id", reservationID).
			Msg("cancelling reservation the hotel was not tracking")
	}
	if h.AvailableRooms < h.TotalRooms {
		h.AvailableRooms++
	}
	hotels[hotelID] = h
	if err := s.col.Save(ctx, hotels); err != nil {
		return err
	}
	s.invalidate(ctx, hotelID)
	return nil
}

func (s *HotelService) invalidate(ctx context.Context, id string) {
	if s.cache != nil {
		_ = s.cache.Del(ctx, hotelKey(id))
	}
}
