package customers

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testRepo struct {
	byID map[string]Customer
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[string]Customer{}}
}

func (r *testRepo) Create(ctx context.Context, c Customer) error {
	r.byID[c.ID] = c
	return nil
}

func (r *testRepo) Update(ctx context.Context, c Customer) error {
	if _, ok := r.byID[c.ID]; !ok {
		return ErrNotFound
	}
	r.byID[c.ID] = c
	return nil
}

func (r *testRepo) GetByID(ctx context.Context, id string) (Customer, error) {
	c, ok := r.byID[id]
	if !ok {
		return Customer{}, ErrNotFound
	}
	return c, nil
}

func (r *testRepo) GetByPhone(ctx context.Context, phone string) (Customer, error) {
	for _, c := range r.byID {
		if c.Phone == phone {
			return c, nil
		}
	}
	return Customer{}, ErrNotFound
}

func (r *testRepo) List(ctx context.Context) ([]Customer, error) {
	out := make([]Customer, 0, len(r.byID))
	for _, c := range r.byID {
		out = append(out, c)
	}
	return out, nil
}

func TestFindOrCreate_ReusesByPhone(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	first, created, err := FindOrCreate(ctx, repo, Input{Name: " Ana ", Phone: "555-0101", Address: "Calle 1"}, now)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "Ana", first.Name)
	assert.Equal(t, now, first.CreatedAt)

	second, created, err := FindOrCreate(ctx, repo, Input{Name: "Otra", Phone: " 555-0101 ", Address: "Calle 2"}, now)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, second.ID)
	assert.Len(t, repo.byID, 1)
}

func TestFindOrCreate_RequiresAllFields(t *testing.T) {
	_, _, err := FindOrCreate(context.Background(), newTestRepo(), Input{Name: "Ana", Phone: "555"}, time.Now())
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestLookup(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newTestRepo())

	_, err := svc.Lookup(ctx, " ")
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Lookup(ctx, "555-0101")
	require.ErrorIs(t, err, ErrNotFound)

	c, _, err := svc.FindOrCreate(ctx, Input{Name: "Ana", Phone: "555-0101", Address: "Calle 1"})
	require.NoError(t, err)

	got, err := svc.Lookup(ctx, "555-0101")
	require.NoError(t, err)
	assert.Equal(t, c.ID, got.ID)
}
