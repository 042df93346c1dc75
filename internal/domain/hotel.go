package domain

import "fmt"

// Hotel is one record in the hotels collection. AvailableRooms is kept in
// lockstep with the Reservations list: reserving a room decrements it and
// appends the reservation id, cancelling does the reverse.
type Hotel struct {
	ID             string   `json:"hotel_id"`
	Name           string   `json:"name"`
	Location       string   `json:"location"`
	Rating         float64  `json:"rating"`
	TotalRooms     int      `json:"total_rooms"`
	AvailableRooms int      `json:"available_rooms"`
	Reservations   []string `json:"reservations"`
}

func (h Hotel) Validate() error {
	if h.ID == "" {
		return &ValidationError{Field: "hotel_id", Reason: "must not be empty"}
	}
	if h.Name == "" {
		return &ValidationError{Field: "name", Reason: "must not be empty"}
	}
	if h.Rating < 0 || h.Rating > 5 {
		return &ValidationError{Field: "rating", Reason: fmt.Sprintf("%.2f is outside 0.0-5.0", h.Rating)}
	}
	if h.TotalRooms <= 0 {
		return &ValidationError{Field: "total_rooms", Reason: "must be a positive integer"}
	}
	if h.AvailableRooms < 0 || h.AvailableRooms > h.TotalRooms {
		return &ValidationError{
			Field:  "available_rooms",
			Reason: fmt.Sprintf("%d is outside 0-%d", h.AvailableRooms, h.TotalRooms),
		}
	}
	return nil
}
