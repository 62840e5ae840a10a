package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Begin(t *testing.T) {
	m := New()

	done := m.Begin()
	assert.Equal(t, 1.0, testutil.ToFloat64(m.inFlight))
	done(http.MethodGet, "GET /wishlists/{id}", http.StatusNotFound)

	assert.Equal(t, 0.0, testutil.ToFloat64(m.inFlight))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues("GET", "GET /wishlists/{id}", "404")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.duration))
}

func TestMetrics_Handler(t *testing.T) {
	m := New()
	m.Begin()(http.MethodPost, "POST /wishlists", http.StatusCreated)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `wishlists_http_requests_total{code="201",method="POST",route="POST /wishlists"} 1`)
}
