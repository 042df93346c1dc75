package redisad_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"

	redisad "hotel_registry/internal/adapters/redis"
	"hotel_registry/internal/domain"
)

func TestCacheRoundTrip(t *testing.T) {
	mr := miniredis.RunT(t)
	c := redisad.New(mr.Addr(), "", 0)
	ctx := context.Background()

	if err := c.Ping(ctx); err != nil {
		t.Fatalf("ping: %v", err)
	}

	h := domain.Hotel{ID: "H1", Name: "Grand", Location: "NYC", Rating: 4.5, TotalRooms: 5, AvailableRooms: 3, Reservations: []string{"R1", "R2"}}
	if err := c.Set(ctx, "hotel:H1", h, time.Minute); err != nil {
		t.Fatalf("set: %v", err)
	}

	var got domain.Hotel
	ok, err := c.Get(ctx, "hotel:H1", &got)
	if err != nil || !ok {
		t.Fatalf("get: ok=%v err=%v", ok, err)
	}
	if got.AvailableRooms != 3 || len(got.Reservations) != 2 {
		t.Fatalf("round trip mangled record: %+v", got)
	}

	if err := c.Del(ctx, "hotel:H1"); err != nil {
		t.Fatalf("del: %v", err)
	}
	ok, err = c.Get(ctx, "hotel:H1", &got)
	if err != nil {
		t.Fatalf("get after del: %v", err)
	}
	if ok {
		t.Fatal("expected miss after del")
	}
}

func TestCacheMissIsNotAnError(t *testing.T) {
	mr := miniredis.RunT(t)
	c := redisad.New(mr.Addr(), "", 0)

	var dst domain.Customer
	ok, err := c.Get(context.Background(), "customer:missing", &dst)
	if err != nil {
		t.Fatalf("miss must not error: %v", err)
	}
	if ok {
		t.Fatal("expected miss")
	}
}

func TestCacheTTLExpiry(t *testing.T) {
	mr := miniredis.RunT(t)
	c := redisad.New(mr.Addr(), "", 0)
	ctx := context.Background()

	r := domain.Reservation{ID: "R1", CustomerID: "C1", HotelID: "H1", CheckIn: "2025-01-10", CheckOut: "2025-01-15", Status: domain.StatusActive}
	if err := c.Set(ctx, "reservation:R1", r, time.Second); err != nil {
		t.Fatalf("set: %v", err)
	}
	mr.FastForward(2 * time.Second)

	var got domain.Reservation
	ok, err := c.Get(ctx, "reservation:R1", &got)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if ok {
		t.Fatal("expected entry to expire")
	}
}
