package domain

import (
	"context"
	"time"
)

// Record is anything a Collection can hold. Validate is run on every record
// coming off disk; records that fail are skipped, not fatal.
type Record interface {
	Validate() error
}

// Collection is a keyed JSON-document collection: one document per entity
// type, an object keyed by identifier. Every mutation is a full
// load-mutate-save cycle, there are no partial writes.
type Collection[R Record] interface {
	Load(ctx context.Context) (map[string]R, error)
	Save(ctx context.Context, records map[string]R) error
	Get(ctx context.Context, id string) (R, error)
	Put(ctx context.Context, id string, record R) error
	Delete(ctx context.Context, id string) error
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttl time.Duration) error
	Del(ctx context.Context, key string) error
}

// ReservationIndex answers whether any active reservation still references a
// customer. It keeps the customer manager a leaf: it never reads the
// reservations file itself.
type ReservationIndex interface {
	HasActiveForCustomer(ctx context.Context, customerID string) (bool, error)
}

// Field updates. Nil means "leave unchanged"; only recognized fields exist.

type HotelUpdate struct {
	Name       *string  `json:"name,omitempty"`
	Location   *string  `json:"location,omitempty"`
	Rating     *float64 `json:"rating,omitempty"`
	TotalRooms *int     `json:"total_rooms,omitempty"`
}

type CustomerUpdate struct {
	Name  *string `json:"name,omitempty"`
	Email *string `json:"email,omitempty"`
	Phone *string `json:"phone,omitempty"`
}
