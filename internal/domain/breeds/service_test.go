package breeds

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSearcher struct {
	names []string
	err   error
	calls int
}

func (f *fakeSearcher) Search(_ context.Context, _ string) ([]string, error) {
	f.calls++
	return f.names, f.err
}

func TestSuggest_EmptyPrefixSkipsProvider(t *testing.T) {
	f := &fakeSearcher{names: []string{"Beagle"}}
	svc := NewService(f, nil)

	got, err := svc.Suggest(context.Background(), "   ")
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Equal(t, 0, f.calls)
}

func TestSuggest_DedupesAndSorts(t *testing.T) {
	svc := NewService(&fakeSearcher{names: []string{"Boxer", "Beagle", "Boxer", " "}}, nil)

	got, err := svc.Suggest(context.Background(), "b")
	require.NoError(t, err)
	assert.Equal(t, []string{"Beagle", "Boxer"}, got)
}

func TestSuggest_ProviderErrorIsUnavailable(t *testing.T) {
	svc := NewService(&fakeSearcher{err: errors.New("boom")}, nil)

	_, err := svc.Suggest(context.Background(), "pug")
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestSuggest_NoSearcher(t *testing.T) {
	_, err := NewService(nil, nil).Suggest(context.Background(), "pug")
	assert.ErrorIs(t, err, ErrUnavailable)
}
