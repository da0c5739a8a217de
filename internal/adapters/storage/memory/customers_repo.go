package memory

import (
	"context"
	"errors"
	"sort"
	"strings"

	"kennel-console/internal/domain/customers"
)

type customerRepo struct {
	ss session
}

func (r *customerRepo) Create(ctx context.Context, c customers.Customer) error {
	if strings.TrimSpace(c.ID) == "" {
		return errors.New("customer id required")
	}
	return r.ss.write(func(t *tables) error {
		if _, exists := t.customers[c.ID]; exists {
			return errors.New("customer already exists")
		}
		t.customers[c.ID] = c
		return nil
	})
}

func (r *customerRepo) Update(ctx context.Context, c customers.Customer) error {
	return r.ss.write(func(t *tables) error {
		if _, exists := t.customers[c.ID]; !exists {
			return customers.ErrNotFound
		}
		t.customers[c.ID] = c
		return nil
	})
}

func (r *customerRepo) GetByID(ctx context.Context, id string) (customers.Customer, error) {
	var (
		c  customers.Customer
		ok bool
	)
	r.ss.read(func(t *tables) { c, ok = t.customers[id] })
	if !ok {
		return customers.Customer{}, customers.ErrNotFound
	}
	return c, nil
}

// GetByPhone devuelve el más antiguo con ese teléfono.
func (r *customerRepo) GetByPhone(ctx context.Context, phone string) (customers.Customer, error) {
	var (
		found customers.Customer
		ok    bool
	)
	r.ss.read(func(t *tables) {
		for _, c := range t.customers {
			if c.Phone != phone {
				continue
			}
			if !ok || c.CreatedAt.Before(found.CreatedAt) {
				found, ok = c, true
			}
		}
	})
	if !ok {
		return customers.Customer{}, customers.ErrNotFound
	}
	return found, nil
}

func (r *customerRepo) List(ctx context.Context) ([]customers.Customer, error) {
	out := make([]customers.Customer, 0)
	r.ss.read(func(t *tables) {
		for _, c := range t.customers {
			out = append(out, c)
		}
	})
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}
