package app_test

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"hotel_registry/internal/app"
	"hotel_registry/internal/domain"
	"hotel_registry/internal/storage/jsonfile"
)

func seed(t *testing.T) (*testEnv, context.Context) {
	t.Helper()
	hotels, customers, reservations := newServices(t)
	ctx := context.Background()
	if _, err := hotels.Create(ctx, "H1", "Grand", "NYC", 4.5, 1); err != nil {
		t.Fatalf("seed hotel: %v", err)
	}
	if _, err := customers.Create(ctx, "C1", "Alice", "alice@example.com", "555-1234"); err != nil {
		t.Fatalf("seed customer: %v", err)
	}
	return &testEnv{hotels: hotels, customers: customers, reservations: reservations}, ctx
}

type testEnv struct {
	hotels       *app.HotelService
	customers    *app.CustomerService
	reservations *app.ReservationService
}

func TestReservationLifecycle(t *testing.T) {
	env, ctx := seed(t)

	// H1 has a single room: first reservation succeeds and empties it
	r1, err := env.reservations.Create(ctx, "R1", "C1", "H1", "2025-01-10", "2025-01-15")
	if err != nil {
		t.Fatalf("create R1: %v", err)
	}
	if r1.Status != domain.StatusActive {
		t.Fatalf("expected active, got %q", r1.Status)
	}
	h, _ := env.hotels.Get(ctx, "H1")
	if h.AvailableRooms != 0 {
		t.Fatalf("expected 0 available, got %d", h.AvailableRooms)
	}

	// second reservation fails with the capacity error and leaves no record
	if _, err := env.reservations.Create(ctx, "R2", "C1", "H1", "2025-02-01", "2025-02-03"); !errors.Is(err, domain.ErrNoRooms) {
		t.Fatalf("expected ErrNoRooms, got %v", err)
	}
	if _, err := env.reservations.Get(ctx, "R2"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("failed reservation was persisted: %v", err)
	}

	// cancelling R1 frees the room
	cancelled, err := env.reservations.Cancel(ctx, "R1")
	if err != nil {
		t.Fatalf("cancel R1: %v", err)
	}
	if cancelled.Status != domain.StatusCancelled {
		t.Fatalf("expected cancelled, got %q", cancelled.Status)
	}
	h, _ = env.hotels.Get(ctx, "H1")
	if h.AvailableRooms != 1 {
		t.Fatalf("expected availability restored to 1, got %d", h.AvailableRooms)
	}

	// now R2 fits
	if _, err := env.reservations.Create(ctx, "R2", "C1", "H1", "2025-02-01", "2025-02-03"); err != nil {
		t.Fatalf("create R2 after cancel: %v", err)
	}
}

func TestReservationReferenceChecks(t *testing.T) {
	env, ctx := seed(t)

	var re *domain.ReferenceError
	if _, err := env.reservations.Create(ctx, "R1", "nobody", "H1", "2025-01-10", "2025-01-15"); !errors.As(err, &re) {
		t.Fatalf("expected ReferenceError for unknown customer, got %v", err)
	}
	if re.Kind != "customer" {
		t.Fatalf("expected customer reference error, got %q", re.Kind)
	}
	if _, err := env.reservations.Create(ctx, "R1", "C1", "nowhere", "2025-01-10", "2025-01-15"); !errors.As(err, &re) {
		t.Fatalf("expected ReferenceError for unknown hotel, got %v", err)
	}
	if re.Kind != "hotel" {
		t.Fatalf("expected hotel reference error, got %q", re.Kind)
	}

	// rejected creates leave availability untouched
	h, _ := env.hotels.Get(ctx, "H1")
	if h.AvailableRooms != 1 {
		t.Fatalf("availability changed by rejected create: %d", h.AvailableRooms)
	}
	if _, err := env.reservations.Get(ctx, "R1"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("rejected reservation was persisted: %v", err)
	}
}

func TestReservationDateValidation(t *testing.T) {
	env, ctx := seed(t)

	var ve *domain.ValidationError
	if _, err := env.reservations.Create(ctx, "R1", "C1", "H1", "2025-01-15", "2025-01-10"); !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError for reversed dates, got %v", err)
	}
	if _, err := env.reservations.Create(ctx, "R1", "C1", "H1", "soon", "2025-01-10"); !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError for garbage date, got %v", err)
	}

	h, _ := env.hotels.Get(ctx, "H1")
	if h.AvailableRooms != 1 {
		t.Fatalf("availability changed by rejected create: %d", h.AvailableRooms)
	}
}

func TestCancelTwiceIsAnError(t *testing.T) {
	env, ctx := seed(t)

	if _, err := env.reservations.Create(ctx, "R1", "C1", "H1", "2025-01-10", "2025-01-15"); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := env.reservations.Cancel(ctx, "R1"); err != nil {
		t.Fatalf("first cancel: %v", err)
	}
	if _, err := env.reservations.Cancel(ctx, "R1"); !errors.Is(err, domain.ErrAlreadyCancelled) {
		t.Fatalf("expected ErrAlreadyCancelled, got %v", err)
	}

	// the second cancel must not add a second availability increment
	h, _ := env.hotels.Get(ctx, "H1")
	if h.AvailableRooms != 1 {
		t.Fatalf("double cancel leaked availability: %d", h.AvailableRooms)
	}

	if _, err := env.reservations.Cancel(ctx, "missing"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

// failingSaveCol passes everything through except Save, which fails on
// demand to simulate a full or read-only disk.
type failingSaveCol struct {
	domain.Collection[domain.Reservation]
	fail bool
}

func (f *failingSaveCol) Save(ctx context.Context, records map[string]domain.Reservation) error {
	if f.fail {
		return errors.New("disk full")
	}
	return f.Collection.Save(ctx, records)
}

func TestCreateReleasesRoomWhenSaveFails(t *testing.T) {
	dir := t.TempDir()
	logg := zerolog.Nop()
	ctx := context.Background()

	hotels := app.NewHotelService(jsonfile.New[domain.Hotel](dir, "hotels", logg), nil, 0)
	customers := app.NewCustomerService(jsonfile.New[domain.Customer](dir, "customers", logg), nil, 0)
	col := &failingSaveCol{Collection: jsonfile.New[domain.Reservation](dir, "reservations", logg), fail: true}
	reservations := app.NewReservationService(col, hotels, customers, nil, 0)

	if _, err := hotels.Create(ctx, "H1", "Grand", "NYC", 4.5, 2); err != nil {
		t.Fatalf("seed hotel: %v", err)
	}
	if _, err := customers.Create(ctx, "C1", "Alice", "alice@example.com", "555-1234"); err != nil {
		t.Fatalf("seed customer: %v", err)
	}

	if _, err := reservations.Create(ctx, "R1", "C1", "H1", "2025-01-10", "2025-01-15"); err == nil {
		t.Fatal("expected create to surface the write failure")
	}

	// the room taken before the failed write was given back
	h, err := hotels.Get(ctx, "H1")
	if err != nil {
		t.Fatalf("get hotel: %v", err)
	}
	if h.AvailableRooms != 2 {
		t.Fatalf("room stayed consumed after failed write: %d available", h.AvailableRooms)
	}
	if len(h.Reservations) != 0 {
		t.Fatalf("ghost reservation id left on hotel: %v", h.Reservations)
	}
	if _, err := reservations.Get(ctx, "R1"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("failed reservation was persisted: %v", err)
	}

	// and once the disk recovers the same create goes through
	col.fail = false
	if _, err := reservations.Create(ctx, "R1", "C1", "H1", "2025-01-10", "2025-01-15"); err != nil {
		t.Fatalf("create after recovery: %v", err)
	}
}

func TestDuplicateReservationID(t *testing.T) {
	env, ctx := seed(t)

	if _, err := env.hotels.Modify(ctx, "H1", domain.HotelUpdate{TotalRooms: ptr(3)}); err != nil {
		t.Fatalf("grow hotel: %v", err)
	}
	if _, err := env.reservations.Create(ctx, "R1", "C1", "H1", "2025-01-10", "2025-01-15"); err != nil {
		t.Fatalf("create: %v", err)
	}

	var ve *domain.ValidationError
	if _, err := env.reservations.Create(ctx, "R1", "C1", "H1", "2025-03-01", "2025-03-05"); !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError for duplicate id, got %v", err)
	}
	h, _ := env.hotels.Get(ctx, "H1")
	if h.AvailableRooms != 2 {
		t.Fatalf("duplicate create changed availability: %d", h.AvailableRooms)
	}
}
