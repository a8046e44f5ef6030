package checkout

import (
	"context"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// freeAddr reserves a loopback port and releases it for the listener to take
func freeAddr(t *testing.T) string {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	require.NoError(t, ln.Close())
	return addr
}

// hitWhenUp polls until the listener accepts, then issues the request
func hitWhenUp(t *testing.T, url string) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		resp, err := http.Get(url)
		if err == nil {
			resp.Body.Close()
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Errorf("listener never came up at %s", url)
}

func TestListener_SuccessRedirectCarriesSessionID(t *testing.T) {
	l := NewListener(freeAddr(t), 10*time.Second, zap.NewNop())

	go hitWhenUp(t, l.SuccessURL()+"?session_id=cs_123")

	outcome, err := l.Wait(context.Background())
	require.NoError(t, err)
	assert.True(t, outcome.Paid)
	assert.Equal(t, "cs_123", outcome.SessionID)
}

func TestListener_SuccessWithoutSessionIDIsNotPaid(t *testing.T) {
	l := NewListener(freeAddr(t), 10*time.Second, zap.NewNop())

	go hitWhenUp(t, l.SuccessURL())

	outcome, err := l.Wait(context.Background())
	require.NoError(t, err)
	assert.False(t, outcome.Paid)
	assert.Empty(t, outcome.SessionID)
}

func TestListener_CancelRedirect(t *testing.T) {
	l := NewListener(freeAddr(t), 10*time.Second, zap.NewNop())

	go hitWhenUp(t, l.CancelURL())

	outcome, err := l.Wait(context.Background())
	require.NoError(t, err)
	assert.False(t, outcome.Paid)
}

func TestListener_WaitLimit(t *testing.T) {
	l := NewListener(freeAddr(t), 50*time.Millisecond, zap.NewNop())

	_, err := l.Wait(context.Background())
	assert.ErrorIs(t, err, ErrWaitLimit)
}

func TestListener_ContextCancellation(t *testing.T) {
	l := NewListener(freeAddr(t), 10*time.Second, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	_, err := l.Wait(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
