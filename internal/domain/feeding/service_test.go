package feeding_test

import (
	"context"
	"testing"
	"time"

	"kennel-console/internal/adapters/storage/memory"
	"kennel-console/internal/domain/feeding"
	"kennel-console/internal/domain/kennels"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarkFedAndLogs(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	repos := store.Repos()
	svc := feeding.NewService(repos.Feeding, repos.Kennels)

	ks, err := repos.Kennels.AddSequential(ctx, 2, "A", kennels.StatusOccupied)
	require.NoError(t, err)

	when := time.Date(2024, 3, 1, 15, 30, 0, 0, time.UTC)
	_, err = svc.MarkFed(ctx, feeding.MarkInput{
		KennelIDs: []string{ks[0].ID, " ", ks[1].ID},
		Date:      when,
		Session:   feeding.SessionMorning,
	})
	require.NoError(t, err)
	_, err = svc.MarkFed(ctx, feeding.MarkInput{KennelIDs: []string{ks[0].ID}, Date: when, Session: feeding.SessionNoon})
	require.NoError(t, err)
	// append-only: repetir no falla
	_, err = svc.MarkFed(ctx, feeding.MarkInput{KennelIDs: []string{ks[0].ID}, Date: when, Session: feeding.SessionNoon})
	require.NoError(t, err)

	fed, err := svc.ListFedKennels(ctx, when, feeding.SessionNoon)
	require.NoError(t, err)
	assert.Equal(t, []string{ks[0].ID}, fed)

	logs, err := svc.Logs(ctx, feeding.LogFilter{})
	require.NoError(t, err)
	require.Len(t, logs, 2)
	assert.Equal(t, 1, logs[0].KennelNumber)
	assert.True(t, logs[0].MorningFed)
	assert.True(t, logs[0].NoonFed)
	assert.Equal(t, feeding.Day(when), logs[0].Date)
	assert.False(t, logs[1].NoonFed)

	only2, err := svc.Logs(ctx, feeding.LogFilter{KennelNumber: 2})
	require.NoError(t, err)
	require.Len(t, only2, 1)
	assert.Equal(t, ks[1].ID, only2[0].KennelID)

	other := time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC)
	none, err := svc.Logs(ctx, feeding.LogFilter{Date: &other})
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestMarkFed_Validation(t *testing.T) {
	ctx := context.Background()
	repos := memory.NewStore().Repos()
	svc := feeding.NewService(repos.Feeding, repos.Kennels)

	_, err := svc.MarkFed(ctx, feeding.MarkInput{KennelIDs: []string{"k1"}, Date: time.Now(), Session: "evening"})
	require.ErrorIs(t, err, feeding.ErrInvalidInput)

	_, err = svc.MarkFed(ctx, feeding.MarkInput{Date: time.Now(), Session: feeding.SessionMorning})
	require.ErrorIs(t, err, feeding.ErrInvalidInput)

	_, err = svc.ListFedKennels(ctx, time.Time{}, feeding.SessionMorning)
	require.ErrorIs(t, err, feeding.ErrInvalidInput)
}

func TestListOccupiedKennelsGroupedBySet(t *testing.T) {
	ctx := context.Background()
	repos := memory.NewStore().Repos()
	svc := feeding.NewService(repos.Feeding, repos.Kennels)

	_, err := repos.Kennels.AddSequential(ctx, 2, "A", kennels.StatusOccupied)
	require.NoError(t, err)
	_, err = repos.Kennels.AddSequential(ctx, 1, "B", kennels.StatusAvailable)
	require.NoError(t, err)

	groups, err := svc.ListOccupiedKennelsGroupedBySet(ctx)
	require.NoError(t, err)
	require.Len(t, groups, 1)
	assert.Equal(t, "A", groups[0].Name)
	assert.Len(t, groups[0].Kennels, 2)
}
