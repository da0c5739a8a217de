package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"kennel-console/internal/platform/logger"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func newJSONLogger(buf *bytes.Buffer) logger.Logger {
	return logger.New(logger.Options{
		Level:  logger.Debug,
		Format: logger.FormatJSON,
		Output: zapcore.AddSync(buf),
	})
}

func TestOperatorContext(t *testing.T) {
	var got string
	h := OperatorContext(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = Operator(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(OperatorHeader, "  front-desk ")
	h.ServeHTTP(httptest.NewRecorder(), req)
	assert.Equal(t, "front-desk", got)

	got = "unchanged"
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, "", got)
}

func TestRequestLogger_LogsStatusAndOperator(t *testing.T) {
	var buf bytes.Buffer
	h := chimw.RequestID(OperatorContext(RequestLogger(newJSONLogger(&buf))(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTeapot)
		}),
	)))

	req := httptest.NewRequest(http.MethodGet, "/kennels", nil)
	req.Header.Set(OperatorHeader, "ana")
	h.ServeHTTP(httptest.NewRecorder(), req)

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "http request", line["msg"])
	assert.Equal(t, "warn", line["level"])
	assert.Equal(t, "/kennels", line["path"])
	assert.Equal(t, float64(http.StatusTeapot), line["status"])
	assert.Equal(t, "ana", line["operator"])
	assert.NotEmpty(t, line["request_id"])
}

func TestRecover_Returns500AndLogs(t *testing.T) {
	var buf bytes.Buffer
	h := Recover(newJSONLogger(&buf))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("kaboom")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, buf.String(), "panic recovered")
	assert.Contains(t, buf.String(), "kaboom")
}
