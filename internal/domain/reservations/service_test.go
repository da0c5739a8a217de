package reservations_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"kennel-console/internal/adapters/storage/memory"
	"kennel-console/internal/domain/feeding"
	"kennel-console/internal/domain/kennels"
	"kennel-console/internal/domain/reservations"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errBoom = errors.New("boom")

// failingBills hace fallar el insert del bill para probar el rollback del checkout.
type failingBills struct{}

func (failingBills) Insert(ctx context.Context, b reservations.Bill) error { return errBoom }
func (failingBills) ListByCustomer(ctx context.Context, customerID string) ([]reservations.Bill, error) {
	return nil, nil
}

type failingStore struct {
	*memory.Store
}

func (s failingStore) WithinTx(ctx context.Context, fn func(ctx context.Context, r reservations.Repos) error) error {
	return s.Store.WithinTx(ctx, func(ctx context.Context, r reservations.Repos) error {
		r.Bills = failingBills{}
		return fn(ctx, r)
	})
}

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func setup(t *testing.T, n int) (*memory.Store, *reservations.Service, []kennels.Kennel) {
	t.Helper()
	store := memory.NewStore()
	var ks []kennels.Kennel
	if n > 0 {
		var err error
		ks, err = store.Repos().Kennels.AddSequential(context.Background(), n, "A", kennels.StatusAvailable)
		require.NoError(t, err)
	}
	return store, reservations.NewService(store, reservations.Options{DefaultPerDayRate: 400}), ks
}

func createInput(kennelIDs ...string) reservations.CreateInput {
	return reservations.CreateInput{
		CustomerName:    "Ana Pérez",
		CustomerPhone:   "555-0101",
		CustomerAddress: "Calle 1",
		PetName:         "Rex",
		PetBreed:        "Beagle",
		StartDate:       date("2024-01-01"),
		EndDate:         date("2024-01-03"),
		KennelIDs:       kennelIDs,
		Services:        reservations.Services{Groom: true},
	}
}

func kennelStatus(t *testing.T, store *memory.Store, id string) kennels.Status {
	t.Helper()
	got, err := store.Repos().Kennels.GetByIDs(context.Background(), []string{id})
	require.NoError(t, err)
	require.Len(t, got, 1)
	return got[0].Status
}

func TestCreate_ReservesKennels(t *testing.T) {
	ctx := context.Background()
	store, svc, ks := setup(t, 2)

	res, err := svc.Create(ctx, createInput(ks[0].ID, ks[1].ID))
	require.NoError(t, err)

	assert.Equal(t, reservations.StatusPending, res.Status)
	assert.Equal(t, kennels.StatusReserved, kennelStatus(t, store, ks[0].ID))
	assert.Equal(t, kennels.StatusReserved, kennelStatus(t, store, ks[1].ID))

	custs, err := store.Repos().Customers.List(ctx)
	require.NoError(t, err)
	require.Len(t, custs, 1)
	assert.Equal(t, res.CustomerID, custs[0].ID)
}

func TestCreate_ReusesCustomerByPhone(t *testing.T) {
	ctx := context.Background()
	store, svc, ks := setup(t, 2)

	first, err := svc.Create(ctx, createInput(ks[0].ID))
	require.NoError(t, err)
	second, err := svc.Create(ctx, createInput(ks[1].ID))
	require.NoError(t, err)

	assert.Equal(t, first.CustomerID, second.CustomerID)
	custs, err := store.Repos().Customers.List(ctx)
	require.NoError(t, err)
	assert.Len(t, custs, 1)
}

func TestCreate_Validation(t *testing.T) {
	ctx := context.Background()
	_, svc, ks := setup(t, 1)

	in := createInput(ks[0].ID)
	in.PetName = "  "
	_, err := svc.Create(ctx, in)
	require.ErrorIs(t, err, reservations.ErrInvalidInput)

	in = createInput(ks[0].ID)
	in.StartDate, in.EndDate = date("2024-01-05"), date("2024-01-01")
	_, err = svc.Create(ctx, in)
	require.ErrorIs(t, err, reservations.ErrInvalidInput)

	_, err = svc.Create(ctx, createInput())
	require.ErrorIs(t, err, reservations.ErrInvalidInput)
}

func TestCreate_UnavailableKennelWritesNothing(t *testing.T) {
	ctx := context.Background()
	store, svc, ks := setup(t, 2)

	require.NoError(t, store.Repos().Kennels.SetStatus(ctx, []string{ks[1].ID}, kennels.StatusOccupied))

	_, err := svc.Create(ctx, createInput(ks[0].ID, ks[1].ID))
	require.ErrorIs(t, err, reservations.ErrKennelUnavailable)

	assert.Equal(t, kennels.StatusAvailable, kennelStatus(t, store, ks[0].ID))
	custs, err := store.Repos().Customers.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, custs)
	rows, err := store.Repos().Reservations.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestCreate_RejectsMaintenanceKennel(t *testing.T) {
	ctx := context.Background()
	store, svc, _ := setup(t, 0)

	ks, err := store.Repos().Kennels.AddSequential(ctx, 1, kennels.MaintenanceGroup, kennels.StatusAvailable)
	require.NoError(t, err)

	_, err = svc.Create(ctx, createInput(ks[0].ID))
	require.ErrorIs(t, err, reservations.ErrKennelUnavailable)
}

func TestConfirm_OccupiesEveryKennel(t *testing.T) {
	ctx := context.Background()
	store, svc, ks := setup(t, 2)

	res, err := svc.Create(ctx, createInput(ks[0].ID, ks[1].ID))
	require.NoError(t, err)

	got, err := svc.Confirm(ctx, res.ID)
	require.NoError(t, err)
	assert.Equal(t, reservations.StatusConfirmed, got.Status)
	for _, k := range ks {
		assert.Equal(t, kennels.StatusOccupied, kennelStatus(t, store, k.ID), "kennel %d", k.Number)
	}

	_, err = svc.Confirm(ctx, res.ID)
	require.ErrorIs(t, err, reservations.ErrBadState)
}

func TestCancel_ArchivesOnceAndReleases(t *testing.T) {
	ctx := context.Background()
	store, svc, ks := setup(t, 2)

	in := createInput(ks[0].ID, ks[1].ID)
	in.Services = reservations.Services{Pickup: true, Drop: true}
	res, err := svc.Create(ctx, in)
	require.NoError(t, err)
	for _, k := range ks {
		require.Equal(t, kennels.StatusReserved, kennelStatus(t, store, k.ID))
	}
	_, err = svc.Update(ctx, res.ID, reservations.UpdateInput{
		PetInfo: &reservations.PetInfoInput{MedicalNotes: "alergia al pollo"},
	})
	require.NoError(t, err)

	require.NoError(t, svc.Cancel(ctx, res.ID))

	for _, k := range ks {
		assert.Equal(t, kennels.StatusAvailable, kennelStatus(t, store, k.ID), "kennel %d", k.Number)
	}
	_, err = svc.Get(ctx, res.ID)
	require.ErrorIs(t, err, reservations.ErrNotFound)
	_, err = svc.PetInfo(ctx, res.ID)
	require.ErrorIs(t, err, reservations.ErrPetInfoNotFound)

	hist, err := svc.History(ctx, reservations.HistoryFilter{})
	require.NoError(t, err)
	require.Len(t, hist, 1)
	h := hist[0]
	assert.Equal(t, reservations.HistoricalCanceled, h.Status)
	assert.Equal(t, res.ID, h.ReservationID)
	assert.Equal(t, res.CustomerID, h.CustomerID)
	assert.Equal(t, res.PetName, h.PetName)
	assert.Equal(t, res.PetBreed, h.PetBreed)
	assert.True(t, res.StartDate.Equal(h.StartDate))
	assert.True(t, res.EndDate.Equal(h.EndDate))
	assert.Equal(t, reservations.Services{Pickup: true, Drop: true}, h.Services)
	assert.Equal(t, []string{ks[0].ID, ks[1].ID}, h.KennelIDs)
	assert.True(t, res.CreatedAt.Equal(h.CreatedAt), "created_at %v != %v", res.CreatedAt, h.CreatedAt)

	require.ErrorIs(t, svc.Cancel(ctx, res.ID), reservations.ErrNotFound)
	hist, err = svc.History(ctx, reservations.HistoryFilter{})
	require.NoError(t, err)
	assert.Len(t, hist, 1)
}

func TestCancel_RejectsConfirmed(t *testing.T) {
	ctx := context.Background()
	store, svc, ks := setup(t, 1)

	res, err := svc.Create(ctx, createInput(ks[0].ID))
	require.NoError(t, err)
	_, err = svc.Confirm(ctx, res.ID)
	require.NoError(t, err)

	require.ErrorIs(t, svc.Cancel(ctx, res.ID), reservations.ErrBadState)
	assert.Equal(t, kennels.StatusOccupied, kennelStatus(t, store, ks[0].ID))
}

func TestQuoteBill(t *testing.T) {
	ctx := context.Background()
	_, svc, ks := setup(t, 1)

	res, err := svc.Create(ctx, createInput(ks[0].ID))
	require.NoError(t, err)

	q, err := svc.QuoteBill(ctx, res.ID, 0)
	require.NoError(t, err)
	assert.Equal(t, reservations.BillQuote{DaysStayed: 3, PerDayRate: 400, Total: 1200}, q)
	assert.Equal(t, int64(400), svc.DefaultPerDayRate())

	q, err = svc.QuoteBill(ctx, res.ID, 250)
	require.NoError(t, err)
	assert.Equal(t, int64(750), q.Total)
}

func TestCheckout_WritesBillAndCleansUp(t *testing.T) {
	ctx := context.Background()
	store, svc, ks := setup(t, 2)

	res, err := svc.Create(ctx, createInput(ks[0].ID, ks[1].ID))
	require.NoError(t, err)

	_, err = svc.Checkout(ctx, res.ID, reservations.CheckoutInput{})
	require.ErrorIs(t, err, reservations.ErrBadState)

	_, err = svc.Confirm(ctx, res.ID)
	require.NoError(t, err)
	_, err = svc.Update(ctx, res.ID, reservations.UpdateInput{
		PetInfo: &reservations.PetInfoInput{DietaryRequirements: "sin granos"},
	})
	require.NoError(t, err)
	require.NoError(t, store.Repos().Feeding.Insert(ctx, []feeding.Record{
		{ID: "f1", KennelID: ks[0].ID, Date: date("2024-01-02"), Session: feeding.SessionMorning, Fed: true, Eaten: true},
		{ID: "f2", KennelID: ks[1].ID, Date: date("2024-01-02"), Session: feeding.SessionNoon, Fed: true, Eaten: true},
	}))

	bill, err := svc.Checkout(ctx, res.ID, reservations.CheckoutInput{})
	require.NoError(t, err)
	assert.Equal(t, 3, bill.DaysStayed)
	assert.Equal(t, int64(1200), bill.Total)
	assert.Equal(t, "Ana Pérez", bill.CustomerName)

	for _, k := range ks {
		assert.Equal(t, kennels.StatusAvailable, kennelStatus(t, store, k.ID), "kennel %d", k.Number)
	}
	_, err = svc.PetInfo(ctx, res.ID)
	require.ErrorIs(t, err, reservations.ErrPetInfoNotFound)
	_, err = svc.Get(ctx, res.ID)
	require.ErrorIs(t, err, reservations.ErrNotFound)

	bills, err := svc.Bills(ctx, res.CustomerID)
	require.NoError(t, err)
	assert.Len(t, bills, 1)

	rows, err := store.Repos().Analytics.List(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, int64(1200), rows[0].Total)

	feed, err := store.Repos().Feeding.List(ctx, feeding.RecordFilter{})
	require.NoError(t, err)
	assert.Empty(t, feed)

	hist, err := svc.History(ctx, reservations.HistoryFilter{Status: reservations.HistoricalCheckout})
	require.NoError(t, err)
	assert.Len(t, hist, 1)
}

func TestCheckout_TotalOverride(t *testing.T) {
	ctx := context.Background()
	_, svc, ks := setup(t, 1)

	res, err := svc.Create(ctx, createInput(ks[0].ID))
	require.NoError(t, err)
	_, err = svc.Confirm(ctx, res.ID)
	require.NoError(t, err)

	neg := int64(-1)
	_, err = svc.Checkout(ctx, res.ID, reservations.CheckoutInput{TotalOverride: &neg})
	require.ErrorIs(t, err, reservations.ErrInvalidInput)

	total := int64(999)
	bill, err := svc.Checkout(ctx, res.ID, reservations.CheckoutInput{PerDayRate: 500, TotalOverride: &total})
	require.NoError(t, err)
	assert.Equal(t, int64(500), bill.PerDayRate)
	assert.Equal(t, int64(999), bill.Total)
}

func TestCheckout_RollsBackOnFailure(t *testing.T) {
	ctx := context.Background()
	store, _, ks := setup(t, 1)
	svc := reservations.NewService(failingStore{store}, reservations.Options{})

	res, err := svc.Create(ctx, createInput(ks[0].ID))
	require.NoError(t, err)
	_, err = svc.Confirm(ctx, res.ID)
	require.NoError(t, err)

	_, err = svc.Checkout(ctx, res.ID, reservations.CheckoutInput{})
	require.ErrorIs(t, err, errBoom)

	got, err := svc.Get(ctx, res.ID)
	require.NoError(t, err)
	assert.Equal(t, reservations.StatusConfirmed, got.Status)
	assert.Equal(t, kennels.StatusOccupied, kennelStatus(t, store, ks[0].ID))

	rows, err := store.Repos().Analytics.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, rows)
	hist, err := store.Repos().History.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, hist)
}

func TestList_FiltersByNameAndRange(t *testing.T) {
	ctx := context.Background()
	_, svc, ks := setup(t, 2)

	_, err := svc.Create(ctx, createInput(ks[0].ID))
	require.NoError(t, err)
	in := createInput(ks[1].ID)
	in.CustomerName, in.CustomerPhone = "Bruno Díaz", "555-0202"
	in.StartDate, in.EndDate = date("2024-02-10"), date("2024-02-12")
	_, err = svc.Create(ctx, in)
	require.NoError(t, err)

	all, err := svc.List(ctx, reservations.ListFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	byName, err := svc.List(ctx, reservations.ListFilter{Query: "bruno"})
	require.NoError(t, err)
	require.Len(t, byName, 1)
	assert.Equal(t, []int{ks[1].Number}, byName[0].KennelNumbers)

	byRange, err := svc.List(ctx, reservations.ListFilter{From: date("2024-01-01"), To: date("2024-01-31")})
	require.NoError(t, err)
	require.Len(t, byRange, 1)
	assert.Equal(t, "Ana Pérez", byRange[0].Customer.Name)
}

func TestOccupant(t *testing.T) {
	ctx := context.Background()
	_, svc, ks := setup(t, 1)

	_, err := svc.Occupant(ctx, ks[0].ID)
	require.ErrorIs(t, err, reservations.ErrNotFound)

	res, err := svc.Create(ctx, createInput(ks[0].ID))
	require.NoError(t, err)

	occ, err := svc.Occupant(ctx, ks[0].ID)
	require.NoError(t, err)
	assert.Equal(t, res.ID, occ.ID)
	assert.Nil(t, occ.PetInfo)
}

func TestUpdate_PatchesCustomerAndPetInfo(t *testing.T) {
	ctx := context.Background()
	_, svc, ks := setup(t, 1)

	res, err := svc.Create(ctx, createInput(ks[0].ID))
	require.NoError(t, err)

	name := "Ana María Pérez"
	end := date("2024-01-05")
	pickup := true
	v, err := svc.Update(ctx, res.ID, reservations.UpdateInput{
		CustomerName: &name,
		EndDate:      &end,
		Pickup:       &pickup,
		PetInfo:      &reservations.PetInfoInput{DietaryRequirements: "sin granos"},
	})
	require.NoError(t, err)
	assert.Equal(t, name, v.Customer.Name)
	assert.Equal(t, end, v.EndDate)
	assert.True(t, v.Services.Pickup)
	assert.True(t, v.Services.Groom)

	info, err := svc.PetInfo(ctx, res.ID)
	require.NoError(t, err)
	assert.Equal(t, "sin granos", info.DietaryRequirements)
	assert.Equal(t, ks[0].ID, info.KennelID)

	empty := " "
	_, err = svc.Update(ctx, res.ID, reservations.UpdateInput{PetName: &empty})
	require.ErrorIs(t, err, reservations.ErrInvalidInput)
}

func TestDaysStayed(t *testing.T) {
	assert.Equal(t, 1, reservations.DaysStayed(date("2024-01-01"), date("2024-01-01")))
	assert.Equal(t, 3, reservations.DaysStayed(date("2024-01-01"), date("2024-01-03")))
	assert.Equal(t, 0, reservations.DaysStayed(date("2024-01-03"), date("2024-01-01")))
	assert.Equal(t, int64(1200), reservations.TotalBill(3, 400))
}
