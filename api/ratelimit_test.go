package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/eisenwinter/tokenkeep/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type countingObserver struct {
	count int
}

func (o *countingObserver) ObserveRateLimited() {
	o.count++
}

func limitedHandler(t *testing.T, rate string, observer RateLimitObserver) http.Handler {
	rl, err := newRateLimiter(zaptest.NewLogger(t), &config.RateLimitConfiguration{
		Enable: true,
		Rate:   rate,
		Store:  "memory",
	}, nil, observer)
	require.NoError(t, err)
	return rl(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
}

func requestFrom(h http.Handler, addr string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/list_users", nil)
	req.RemoteAddr = addr
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestRateLimiterSixthRequestRejected(t *testing.T) {
	observer := &countingObserver{}
	h := limitedHandler(t, "5-M", observer)

	for i := 0; i < 5; i++ {
		w := requestFrom(h, "192.168.1.100:4000")
		assert.Equal(t, http.StatusOK, w.Code, "request %d should succeed", i+1)
	}
	w := requestFrom(h, "192.168.1.100:4000")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Contains(t, w.Body.String(), "rate_limit_exceeded")
	assert.Equal(t, 1, observer.count)
}

func TestRateLimiterSeparatesAddresses(t *testing.T) {
	h := limitedHandler(t, "2-M", nil)
	for _, ip := range []string{"10.0.0.1:1", "10.0.0.2:1"} {
		assert.Equal(t, http.StatusOK, requestFrom(h, ip).Code)
		assert.Equal(t, http.StatusOK, requestFrom(h, ip).Code)
		assert.Equal(t, http.StatusTooManyRequests, requestFrom(h, ip).Code)
	}
}

func TestRateLimiterInvalidRate(t *testing.T) {
	_, err := newRateLimiter(zaptest.NewLogger(t), &config.RateLimitConfiguration{Rate: "five"}, nil, nil)
	assert.Error(t, err)
}

func TestRateLimiterRedisNeedsClient(t *testing.T) {
	_, err := newRateLimiter(zaptest.NewLogger(t), &config.RateLimitConfiguration{Rate: "5-M", Store: "redis"}, nil, nil)
	assert.Error(t, err)
}
