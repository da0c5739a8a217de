package httpclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetJSON_SendsHeadersAndQuery(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/items", r.URL.Path)
		assert.Equal(t, "be", r.URL.Query().Get("q"))
		assert.Equal(t, "secret", r.Header.Get("x-api-key"))
		_ = json.NewEncoder(w).Encode([]map[string]string{{"name": "Beagle"}})
	}))
	defer srv.Close()

	c, err := New(Options{BaseURL: srv.URL + "/", Header: http.Header{"X-Api-Key": []string{"secret"}}})
	require.NoError(t, err)

	var out []struct {
		Name string `json:"name"`
	}
	require.NoError(t, c.GetJSON(context.Background(), "v1/items", url.Values{"q": {"be"}}, &out))
	require.Len(t, out, 1)
	assert.Equal(t, "Beagle", out[0].Name)
}

func TestDoJSON_Non2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusForbidden)
	}))
	defer srv.Close()

	c, err := New(Options{BaseURL: srv.URL})
	require.NoError(t, err)

	err = c.DoJSON(context.Background(), http.MethodPost, "/x", map[string]int{"a": 1}, nil)
	require.Error(t, err)
	assert.Equal(t, http.StatusForbidden, StatusCode(err))
}

func TestNew_InvalidBaseURL(t *testing.T) {
	_, err := New(Options{BaseURL: "not a url"})
	require.Error(t, err)

	c, err := New(Options{})
	require.NoError(t, err)
	require.Error(t, c.DoJSON(context.Background(), http.MethodGet, "/relative", nil, nil))
}
