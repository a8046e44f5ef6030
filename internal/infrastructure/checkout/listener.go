// Package checkout runs a short-lived local HTTP listener that catches the
// browser redirect back from the hosted payment page. The payment provider
// appends a session_id query parameter on the success return, which is how a
// completed payment is told apart from a cancel.
package checkout

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/shop/storefront/internal/infrastructure/logger"
)

// Paths the hosted payment page redirects back to
const (
	SuccessPath = "/checkout/success"
	CancelPath  = "/checkout/cancel"
)

// ErrWaitLimit is returned when no redirect arrives before the wait limit
var ErrWaitLimit = errors.New("checkout: no payment redirect before wait limit")

// Outcome is the result of one hosted payment round trip
type Outcome struct {
	Paid      bool
	SessionID string
}

// Listener serves the payment return routes on a loopback address and hands
// the first landing back to the caller. One listener covers one checkout.
type Listener struct {
	addr      string
	waitLimit time.Duration
	logger    *zap.Logger

	outcomes chan Outcome
}

// NewListener creates a listener bound to addr once Wait is called
func NewListener(addr string, waitLimit time.Duration, log *zap.Logger) *Listener {
	return &Listener{
		addr:      addr,
		waitLimit: waitLimit,
		logger:    log,
		outcomes:  make(chan Outcome, 1),
	}
}

// SuccessURL returns the success return URL the checkout session should
// redirect to
func (l *Listener) SuccessURL() string {
	return fmt.Sprintf("http://%s%s", l.addr, SuccessPath)
}

// CancelURL returns the cancel return URL
func (l *Listener) CancelURL() string {
	return fmt.Sprintf("http://%s%s", l.addr, CancelPath)
}

// Wait serves the return routes until the first landing, the wait limit, or
// ctx cancellation, whichever comes first. The listener shuts down before
// returning either way.
func (l *Listener) Wait(ctx context.Context) (Outcome, error) {
	ln, err := net.Listen("tcp", l.addr)
	if err != nil {
		return Outcome{}, fmt.Errorf("checkout: listen on %s: %w", l.addr, err)
	}

	srv := &http.Server{
		Handler:           l.routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	serveErr := make(chan error, 1)
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	timer := time.NewTimer(l.waitLimit)
	defer timer.Stop()

	select {
	case outcome := <-l.outcomes:
		return outcome, nil
	case <-timer.C:
		return Outcome{}, ErrWaitLimit
	case <-ctx.Done():
		return Outcome{}, ctx.Err()
	case err := <-serveErr:
		return Outcome{}, fmt.Errorf("checkout: serve return routes: %w", err)
	}
}

func (l *Listener) routes() http.Handler {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(logger.Recovery(l.logger), logger.GinMiddleware(l.logger))

	r.GET(SuccessPath, func(c *gin.Context) {
		sessionID := c.Query("session_id")
		l.deliver(Outcome{Paid: sessionID != "", SessionID: sessionID})
		c.Header("Content-Type", "text/html; charset=utf-8")
		c.String(http.StatusOK, successPage)
	})
	r.GET(CancelPath, func(c *gin.Context) {
		l.deliver(Outcome{Paid: false})
		c.Header("Content-Type", "text/html; charset=utf-8")
		c.String(http.StatusOK, cancelPage)
	})

	return r
}

// deliver hands over the first landing only; later hits still render a page
func (l *Listener) deliver(o Outcome) {
	select {
	case l.outcomes <- o:
	default:
	}
}

const successPage = `<!doctype html>
<html><head><title>Payment complete</title></head>
<body><h1>Payment complete</h1><p>You can close this tab and return to the terminal.</p></body></html>`

const cancelPage = `<!doctype html>
<html><head><title>Payment cancelled</title></head>
<body><h1>Payment cancelled</h1><p>You can close this tab and return to the terminal.</p></body></html>`
