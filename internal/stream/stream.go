// Package stream subscribes to the backend push channel. Every message is a complete match
// snapshot which is handed to the caller undecoded.
package stream

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
)

var (
	ErrTransport = errors.New("unknown push transport")
	ErrPushURL   = errors.New("invalid push url")
	ErrSubscribe = errors.New("push subscription failed")
)

const (
	initialBackoff = 500 * time.Millisecond
	maxBackoff     = 30 * time.Second
)

// Transport selects the push protocol.
type Transport string

const (
	TransportSSE       Transport = "sse"
	TransportWebsocket Transport = "websocket"
)

// Handler receives the raw payload of each push message.
type Handler func(payload []byte)

// Subscriber blocks delivering messages until ctx is cancelled.
type Subscriber interface {
	Subscribe(ctx context.Context, handler Handler) error
}

// Recorder counts reconnects of the underlying transport.
type Recorder interface {
	StreamReconnect(transport string)
}

// StreamName is the SSE stream carrying a match.
func StreamName(matchID int) string {
	return "match-" + strconv.Itoa(matchID)
}

// New creates a subscriber for the match using the given transport.
func New(transport Transport, pushURL string, matchID int, recorder Recorder) (Subscriber, error) {
	parsed, errURL := url.Parse(pushURL)
	if errURL != nil || parsed.Host == "" {
		return nil, errors.Join(errURL, fmt.Errorf("%w: %q", ErrPushURL, pushURL))
	}

	switch transport {
	case TransportSSE:
		return newSSE(parsed.String(), matchID, recorder), nil
	case TransportWebsocket:
		switch parsed.Scheme {
		case "http":
			parsed.Scheme = "ws"
		case "https":
			parsed.Scheme = "wss"
		}

		query := parsed.Query()
		query.Set("match_id", strconv.Itoa(matchID))
		parsed.RawQuery = query.Encode()

		return newWebsocket(parsed.String(), recorder), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrTransport, transport)
	}
}

// Manager owns at most one live subscription. Opening a new one first closes the previous
// one and waits for it to stop.
type Manager struct {
	mu     *sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

func NewManager() *Manager {
	return &Manager{mu: &sync.Mutex{}}
}

func (m *Manager) Open(ctx context.Context, subscriber Subscriber, handler Handler) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.closeLocked()

	subCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	m.cancel = cancel
	m.done = done

	go func() {
		defer close(done)

		if err := subscriber.Subscribe(subCtx, handler); err != nil && !errors.Is(err, context.Canceled) {
			slog.Error("Push subscription ended", slog.String("error", err.Error()))
		}
	}()
}

// Close stops the current subscription, if any.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.closeLocked()
}

func (m *Manager) closeLocked() {
	if m.cancel == nil {
		return
	}

	m.cancel()
	<-m.done

	m.cancel = nil
	m.done = nil
}

func newPolicy() *backoff.ExponentialBackOff {
	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = initialBackoff
	policy.MaxInterval = maxBackoff
	policy.MaxElapsedTime = 0

	return policy
}

// retry runs operation until ctx is done, waiting out the policy between failures. Every
// attempt after the first counts as a reconnect.
func retry(ctx context.Context, transport Transport, policy backoff.BackOff, recorder Recorder, operation func() error) error {
	attempt := 0
	err := backoff.RetryNotify(func() error {
		if attempt > 0 && recorder != nil {
			recorder.StreamReconnect(string(transport))
		}
		attempt++

		if errOp := operation(); errOp != nil {
			return errOp
		}

		// A clean return outside of cancellation still means the feed stopped.
		if ctx.Err() == nil {
			return ErrSubscribe
		}

		return nil
	}, backoff.WithContext(policy, ctx), func(err error, wait time.Duration) {
		slog.Warn("Push disconnected, retrying", slog.String("transport", string(transport)),
			slog.String("error", err.Error()), slog.Duration("wait", wait))
	})

	if ctx.Err() != nil {
		return context.Canceled
	}

	return errors.Join(err, ErrSubscribe)
}
