package domain

import "time"

const (
	StatusActive    = "active"
	StatusCancelled = "cancelled"
)

// DateLayout is the calendar-date format used for check-in/check-out.
const DateLayout = "2006-01-02"

// Reservation is immutable once created except for its status, which moves
// from active to cancelled exactly once.
type Reservation struct {
	ID         string `json:"reservation_id"`
	CustomerID string `json:"customer_id"`
	HotelID    string `json:"hotel_id"`
	CheckIn    string `json:"check_in"`
	CheckOut   string `json:"check_out"`
	Status     string `json:"status"`
}

func (r Reservation) Validate() error {
	if r.ID == "" {
		return &ValidationError{Field: "reservation_id", Reason: "must not be empty"}
	}
	if r.CustomerID == "" {
		return &ValidationError{Field: "customer_id", Reason: "must not be empty"}
	}
	if r.HotelID == "" {
		return &ValidationError{Field: "hotel_id", Reason: "must not be empty"}
	}
	if !ValidDates(r.CheckIn, r.CheckOut) {
		return &ValidationError{Field: "check_in/check_out", Reason: "dates must be YYYY-MM-DD with check_out after check_in"}
	}
	if r.Status != StatusActive && r.Status != StatusCancelled {
		return &ValidationError{Field: "status", Reason: "must be active or cancelled"}
	}
	return nil
}

// ValidDates reports whether both strings parse as YYYY-MM-DD calendar dates
// and checkOut is strictly later than checkIn.
func ValidDates(checkIn, checkOut string) bool {
	in, err := time.Parse(DateLayout, checkIn)
	if err != nil {
		return false
	}
	out, err := time.Parse(DateLayout, checkOut)
	if err != nil {
		return false
	}
	return out.After(in)
}
