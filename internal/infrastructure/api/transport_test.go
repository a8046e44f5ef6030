package api

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shop/storefront/internal/domain/shared"
)

// fakeCreds is an in-memory CredentialSource for transport tests
type fakeCreds struct {
	token   string
	cleared atomic.Int32
}

func (f *fakeCreds) Token() string { return f.token }

func (f *fakeCreds) Clear() error {
	f.cleared.Add(1)
	f.token = ""
	return nil
}

// newTestClient wires a client to a test server with sleeping stubbed out
func newTestClient(t *testing.T, server *httptest.Server, opts ...Option) (*Client, *[]time.Duration) {
	t.Helper()
	client, err := New(server.URL, opts...)
	require.NoError(t, err)

	var delays []time.Duration
	client.sleep = func(_ context.Context, d time.Duration) error {
		delays = append(delays, d)
		return nil
	}
	return client, &delays
}

func TestDoRequest_RetriesRateLimitedWithBackoff(t *testing.T) {
	var attempts atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if attempts.Add(1) <= 3 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.Write([]byte(`{"status":"success"}`))
	}))
	defer server.Close()

	client, delays := newTestClient(t, server)

	_, err := client.doRequest(context.Background(), http.MethodGet, "/products", nil, "", nil)
	require.NoError(t, err)
	assert.Equal(t, int32(4), attempts.Load())
	assert.Equal(t, []time.Duration{time.Second, 2 * time.Second, 4 * time.Second}, *delays)
}

func TestDoRequest_RateLimitExhaustsRetries(t *testing.T) {
	var attempts atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts.Add(1)
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	client, delays := newTestClient(t, server)

	_, err := client.doRequest(context.Background(), http.MethodGet, "/products", nil, "", nil)
	assert.ErrorIs(t, err, shared.ErrRateLimited)
	// Initial attempt plus three retries, never a fourth
	assert.Equal(t, int32(4), attempts.Load())
	assert.Len(t, *delays, 3)
}

func TestDoRequest_RetryKeepsRequestIDAndBody(t *testing.T) {
	var requestIDs []string
	var bodies []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestIDs = append(requestIDs, r.Header.Get("X-Request-ID"))
		buf, _ := io.ReadAll(r.Body)
		bodies = append(bodies, string(buf))
		if len(requestIDs) == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.Write([]byte(`{"status":"success"}`))
	}))
	defer server.Close()

	client, _ := newTestClient(t, server)

	payload := []byte(`{"productId":"p1"}`)
	_, err := client.doRequest(context.Background(), http.MethodPost, "/my-cart", nil, "application/json", payload)
	require.NoError(t, err)

	require.Len(t, requestIDs, 2)
	assert.NotEmpty(t, requestIDs[0])
	assert.Equal(t, requestIDs[0], requestIDs[1])
	assert.Equal(t, []string{string(payload), string(payload)}, bodies)
}

func TestDoRequest_UnauthorizedClearsCredentialsOnce(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"status":"fail","message":"jwt expired"}`))
	}))
	defer server.Close()

	creds := &fakeCreds{token: "stale-token"}
	var hookCalls atomic.Int32
	client, _ := newTestClient(t, server,
		WithCredentialSource(creds),
		WithSessionExpiredHook(func() { hookCalls.Add(1) }),
	)

	_, err := client.doRequest(context.Background(), http.MethodGet, "/users/getMe", nil, "", nil)
	assert.ErrorIs(t, err, shared.ErrUnauthorized)
	assert.Equal(t, "jwt expired", shared.Message(err))
	assert.Equal(t, int32(1), creds.cleared.Load())
	assert.Equal(t, int32(1), hookCalls.Load())
}

func TestDoRequest_SendsBearerToken(t *testing.T) {
	var authHeader string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader = r.Header.Get("Authorization")
		w.Write([]byte(`{"status":"success"}`))
	}))
	defer server.Close()

	client, _ := newTestClient(t, server, WithCredentialSource(&fakeCreds{token: "abc123"}))

	_, err := client.doRequest(context.Background(), http.MethodGet, "/my-cart", nil, "", nil)
	require.NoError(t, err)
	assert.Equal(t, "Bearer abc123", authHeader)
}

func TestDoRequest_NoTokenNoAuthHeader(t *testing.T) {
	var hasAuth bool
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, hasAuth = r.Header["Authorization"]
		w.Write([]byte(`{"status":"success"}`))
	}))
	defer server.Close()

	client, _ := newTestClient(t, server, WithCredentialSource(&fakeCreds{}))

	_, err := client.doRequest(context.Background(), http.MethodGet, "/products", nil, "", nil)
	require.NoError(t, err)
	assert.False(t, hasAuth)
}

func TestDoRequest_TransportErrorIsUnavailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // connection refused from here on

	client, err := New(server.URL)
	require.NoError(t, err)

	_, err = client.doRequest(context.Background(), http.MethodGet, "/products", nil, "", nil)
	assert.ErrorIs(t, err, shared.ErrUnavailable)
}

func TestDoRequest_ErrorStatusMapping(t *testing.T) {
	tests := []struct {
		name   string
		status int
		want   *shared.DomainError
	}{
		{"forbidden", http.StatusForbidden, shared.ErrForbidden},
		{"not found", http.StatusNotFound, shared.ErrNotFound},
		{"bad request", http.StatusBadRequest, shared.ErrValidation},
		{"server error", http.StatusInternalServerError, shared.ErrUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))
			defer server.Close()

			client, _ := newTestClient(t, server)
			_, err := client.doRequest(context.Background(), http.MethodGet, "/x", nil, "", nil)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestDoRequest_ContextCancelledDuringBackoff(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	client, err := New(server.URL)
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	client.sleep = func(ctx context.Context, _ time.Duration) error {
		cancel()
		return ctx.Err()
	}

	_, err = client.doRequest(ctx, http.MethodGet, "/products", nil, "", nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDecodeError_FallbackAndBackendMessage(t *testing.T) {
	err := decodeError(http.StatusNotFound, nil)
	var de *shared.DomainError
	require.True(t, errors.As(err, &de))
	assert.Equal(t, shared.ErrNotFound.Message, de.Message)

	err = decodeError(http.StatusBadRequest, []byte(`{"status":"fail","message":"No coupon with this name","errors":[{"field":"couponName","message":"unknown"}]}`))
	require.True(t, errors.As(err, &de))
	assert.ErrorIs(t, err, shared.ErrValidation)
	assert.Equal(t, "No coupon with this name", de.Message)
	require.Len(t, de.Fields, 1)
	assert.Equal(t, "couponName", de.Fields[0].Field)
}
