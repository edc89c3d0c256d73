package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReservationService/pkg/metrics"
)

func okHandler(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}

func TestAuth(t *testing.T) {
	var gotUserID int64
	handler := Auth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserID, _ = GetUserID(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantUserID int64
	}{
		{name: "valid", header: "42", wantStatus: http.StatusNoContent, wantUserID: 42},
		{name: "missing", header: "", wantStatus: http.StatusUnauthorized},
		{name: "not a number", header: "abc", wantStatus: http.StatusUnauthorized},
		{name: "negative", header: "-1", wantStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotUserID = 0
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set(userIDHeader, tt.header)
			}
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantUserID, gotUserID)
		})
	}
}

func TestRequestID(t *testing.T) {
	var fromCtx string
	handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fromCtx = GetRequestID(r.Context())
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	generated := rec.Header().Get(requestIDHeader)
	_, err := uuid.Parse(generated)
	require.NoError(t, err)
	assert.Equal(t, generated, fromCtx)

	given := uuid.NewString()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(requestIDHeader, given)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, given, rec.Header().Get(requestIDHeader))
}

func TestMetricsMiddleware(t *testing.T) {
	m := metrics.NewWithRegistry(prometheus.NewRegistry(), "test")

	r := mux.NewRouter()
	r.Use(MetricsMiddleware(m))
	r.HandleFunc("/pools/{poolId}/schedule", okHandler).Methods(http.MethodGet)

	for _, id := range []string{"1", "2"} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/pools/"+id+"/schedule", nil))
		require.Equal(t, http.StatusNoContent, rec.Code)
	}

	count := testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/pools/{poolId}/schedule", "204"))
	assert.Equal(t, float64(2), count)
}

func TestRateLimiter(t *testing.T) {
	limiter := NewRateLimiter(1, 2)
	current := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	limiter.now = func() time.Time { return current }
	handler := limiter.Middleware(http.HandlerFunc(okHandler))

	send := func(addr string) int {
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		req.RemoteAddr = addr + ":40000"
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusNoContent, send("10.0.0.1"))
	assert.Equal(t, http.StatusNoContent, send("10.0.0.1"))
	assert.Equal(t, http.StatusTooManyRequests, send("10.0.0.1"))

	// Лимит считается отдельно для каждого клиента
	assert.Equal(t, http.StatusNoContent, send("10.0.0.2"))

	current = current.Add(time.Second)
	assert.Equal(t, http.StatusNoContent, send("10.0.0.1"))
}

func TestRateLimiter_IgnoresUnverifiedUserHeader(t *testing.T) {
	limiter := NewRateLimiter(1, 1)
	current := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	limiter.now = func() time.Time { return current }
	handler := limiter.Middleware(http.HandlerFunc(okHandler))

	send := func(userID string) int {
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		req.RemoteAddr = "10.0.0.9:40000"
		req.Header.Set(userIDHeader, userID)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusNoContent, send("1"))
	// смена заголовка не даёт нового лимита
	assert.Equal(t, http.StatusTooManyRequests, send("2"))
	assert.Equal(t, http.StatusTooManyRequests, send("3"))
}

func TestRateLimiter_CollectsIdleClients(t *testing.T) {
	limiter := NewRateLimiter(1, 1)
	current := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	limiter.now = func() time.Time { return current }

	assert.True(t, limiter.allow("user:1"))
	current = current.Add(limiterIdleTTL + time.Minute)
	assert.True(t, limiter.allow("user:2"))

	assert.Len(t, limiter.clients, 1)
}

func TestClientKey(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.5:53211"
	assert.Equal(t, "addr:10.0.0.5", clientKey(req))

	req.Header.Set(userIDHeader, "7")
	assert.Equal(t, "addr:10.0.0.5", clientKey(req))

	req = req.WithContext(WithUserID(req.Context(), 7))
	assert.Equal(t, "user:7", clientKey(req))
}
