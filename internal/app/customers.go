package app

import (
	"context"
	"fmt"
	"time"

	"hotel_registry/internal/domain"
)

// CustomerService is the entity manager for the customers collection. It is
// a leaf: the optional ReservationIndex guards deletion without the service
// ever touching the reservations file itself.
type CustomerService struct {
	col      domain.Collection[domain.Customer]
	cache    domain.Cache
	cacheTTL time.Duration
	index    domain.ReservationIndex
}

func NewCustomerService(col domain.Collection[domain.Customer], cache domain.Cache, ttl time.Duration) *CustomerService {
	return &CustomerService{col: col, cache: cache, cacheTTL: ttl}
}

// BindReservationIndex wires the delete guard. Called after the reservation
// manager exists; a nil index leaves deletion unguarded.
func (s *CustomerService) BindReservationIndex(idx domain.ReservationIndex) { s.index = idx }

func customerKey(id string) string { return fmt.Sprintf("customer:%s", id) }

func (s *CustomerService) Create(ctx context.Context, id, name, email, phone string) (domain.Customer, error) {
	customers, err := s.col.Load(ctx)
	if err != nil {
		return domain.Customer{}, err
	}
	if _, ok := customers[id]; ok {
		return domain.Customer{}, &domain.ValidationError{Field: "customer_id", Reason: fmt.Sprintf("%q already exists", id)}
	}
	c := domain.Customer{ID: id, Name: name, Email: email, Phone: phone}
	if err := c.Validate(); err != nil {
		return domain.Customer{}, err
	}
	customers[id] = c
	if err := s.col.Save(ctx, customers); err != nil {
		return domain.Customer{}, err
	}
	return c, nil
}

func (s *CustomerService) Get(ctx context.Context, id string) (domain.Customer, error) {
	key := customerKey(id)
	if s.cache != nil {
		var c domain.Customer
		if ok, _ := s.cache.Get(ctx, key, &c); ok {
			return c, nil
		}
	}
	c, err := s.col.Get(ctx, id)
	if err != nil {
		return domain.Customer{}, err
	}
	if s.cache != nil {
		_ = s.cache.Set(ctx, key, c, s.cacheTTL)
	}
	return c, nil
}

func (s *CustomerService) Modify(ctx context.Context, id string, upd domain.CustomerUpdate) (domain.Customer, error) {
	customers, err := s.col.Load(ctx)
	if err != nil {
		return domain.Customer{}, err
	}
	c, ok := customers[id]
	if !ok {
		return domain.Customer{}, domain.ErrNotFound
	}
	if upd.Name != nil {
		c.Name = *upd.Name
	}
	if upd.Email != nil {
		c.Email = *upd.Email
	}
	if upd.Phone != nil {
		c.Phone = *upd.Phone
	}
	if err := c.Validate(); err != nil {
		return domain.Customer{}, err
	}
	customers[id] = c
	if err := s.col.Save(ctx, customers); err != nil {
		return domain.Customer{}, err
	}
	s.invalidate(ctx, id)
	return c, nil
}

// Delete is blocked while any active reservation references the customer.
func (s *CustomerService) Delete(ctx context.Context, id string) error {
	customers, err := s.col.Load(ctx)
	if err != nil {
		return err
	}
	if _, ok := customers[id]; !ok {
		return domain.ErrNotFound
	}
	if s.index != nil {
		busy, err := s.index.HasActiveForCustomer(ctx, id)
		if err != nil {
			return err
		}
		if busy {
			return &domain.ValidationError{Field: "customer_id", Reason: fmt.Sprintf("active reservation(s) still reference customer %q", id)}
		}
	}
	delete(customers, id)
	if err := s.col.Save(ctx, customers); err != nil {
		return err
	}
	s.invalidate(ctx, id)
	return nil
}

func (s *CustomerService) invalidate(ctx context.Context, id string) {
	if s.cache != nil {
		_ = s.cache.Del(ctx, customerKey(id))
	}
}
