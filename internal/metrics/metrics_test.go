package metrics

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_IndependentRegistries(t *testing.T) {
	// Two instances must not collide on registration.
	a := New("optionlab")
	b := New("optionlab")

	a.ObserveUpstream("finnhub", "ok", 10*time.Millisecond)

	assert.Equal(t, 1.0, testutil.ToFloat64(a.upstreamCount.WithLabelValues("finnhub", "ok")))
	assert.Equal(t, 0.0, testutil.ToFloat64(b.upstreamCount.WithLabelValues("finnhub", "ok")))
}

func TestMetrics_Handler(t *testing.T) {
	m := New("optionlab")
	m.ObserveRequest("/api/get-price", "GET", 200, 5*time.Millisecond)
	m.ObserveCache(true)
	m.ObserveCache(false)
	m.WebsocketOpened()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	out := string(body)

	assert.True(t, strings.Contains(out, `optionlab_http_requests_total{method="GET",route="/api/get-price",status="200"} 1`))
	assert.True(t, strings.Contains(out, `optionlab_quote_cache_lookups_total{result="hit"} 1`))
	assert.True(t, strings.Contains(out, `optionlab_websocket_connections 1`))
}
