package loadtest

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPercentile(t *testing.T) {
	sorted := []time.Duration{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}

	assert.Equal(t, time.Duration(6), Percentile(sorted, 0.5))
	assert.Equal(t, time.Duration(10), Percentile(sorted, 0.99))
	assert.Equal(t, time.Duration(0), Percentile(nil, 0.5))
}

func TestRunner_Run(t *testing.T) {
	var calls int64
	ok := func(ctx context.Context) error {
		atomic.AddInt64(&calls, 1)
		time.Sleep(time.Millisecond)
		return nil
	}
	boom := func(ctx context.Context) error {
		time.Sleep(time.Millisecond)
		return errors.New("boom")
	}

	res := NewRunner("mixed", 4, 100*time.Millisecond).AddRequest(ok).AddRequest(boom).Run(context.Background())

	require.Greater(t, res.Total, int64(0))
	assert.Greater(t, res.Failed, int64(0))
	assert.Less(t, res.Failed, res.Total)
	assert.InDelta(t, 0.5, res.ErrorRate, 0.2)
	assert.LessOrEqual(t, res.Min, res.P50)
	assert.LessOrEqual(t, res.P50, res.Max)
	assert.Greater(t, atomic.LoadInt64(&calls), int64(0))
}

func TestClient_Expect(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/health":
			w.WriteHeader(http.StatusOK)
		case "/auth/register":
			w.WriteHeader(http.StatusCreated)
			_, _ = w.Write([]byte(`{"code":0,"data":{"access_token":"tok"}}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	ctx := context.Background()

	assert.NoError(t, c.Health(ctx))
	assert.Error(t, c.Expect(http.MethodGet, "/missing", "")(ctx))
	assert.NoError(t, c.Expect(http.MethodGet, "/missing", "", http.StatusNotFound)(ctx))

	token, err := c.Register(ctx, "a@example.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, "tok", token)
}
