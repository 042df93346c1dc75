package app_test

import (
	"testing"

	"github.com/rs/zerolog"

	"hotel_registry/internal/app"
	"hotel_registry/internal/domain"
	"hotel_registry/internal/storage/jsonfile"
)

// newServices wires the three managers over real JSON-file collections in a
// temp directory, the same shape cmd/api builds in production (minus cache).
func newServices(t *testing.T) (*app.HotelService, *app.CustomerService, *app.ReservationService) {
	t.Helper()
	dir := t.TempDir()
	logg := zerolog.Nop()

	hotels := app.NewHotelService(jsonfile.New[domain.Hotel](dir, "hotels", logg), nil, 0)
	customers := app.NewCustomerService(jsonfile.New[domain.Customer](dir, "customers", logg), nil, 0)
	reservations := app.NewReservationService(jsonfile.New[domain.Reservation](dir, "reservations", logg), hotels, customers, nil, 0)
	customers.BindReservationIndex(reservations)
	return hotels, customers, reservations
}

func ptr[T any](v T) *T { return &v }
