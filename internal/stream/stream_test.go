package stream_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/leighmacdonald/cricket-tui/internal/stream"
	"github.com/r3labs/sse/v2"
	"github.com/stretchr/testify/require"
)

const payload = `{"match_id": 4, "innings": {"runs": 10}}`

func receive(t *testing.T, messages <-chan []byte) []byte {
	t.Helper()

	select {
	case msg := <-messages:
		return msg
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for push message")

		return nil
	}
}

func TestSSESubscribe(t *testing.T) {
	server := sse.New()
	server.CreateStream(stream.StreamName(4))
	defer server.Close()

	// Replayed to the subscriber when it connects.
	server.Publish(stream.StreamName(4), &sse.Event{Data: []byte(payload)})

	httpServer := httptest.NewServer(http.HandlerFunc(server.ServeHTTP))
	defer httpServer.Close()

	subscriber, err := stream.New(stream.TransportSSE, httpServer.URL+"/events", 4, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	messages := make(chan []byte, 4)
	manager := stream.NewManager()
	manager.Open(ctx, subscriber, func(data []byte) { messages <- data })
	defer manager.Close()

	require.JSONEq(t, payload, string(receive(t, messages)))
}

func TestWebsocketSubscribe(t *testing.T) {
	var connections atomic.Int32

	httpServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("match_id") != "4" {
			http.Error(w, "missing match", http.StatusBadRequest)

			return
		}

		conn, err := websocket.Accept(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close(websocket.StatusNormalClosure, "bye")

		connections.Add(1)
		_ = conn.Write(r.Context(), websocket.MessageText, []byte(payload))
	}))
	defer httpServer.Close()

	subscriber, err := stream.New(stream.TransportWebsocket, httpServer.URL+"/ws", 4, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	messages := make(chan []byte, 16)
	done := make(chan error, 1)

	go func() { done <- subscriber.Subscribe(ctx, func(data []byte) { messages <- data }) }()

	require.JSONEq(t, payload, string(receive(t, messages)))
	// The server hangs up after each message; the subscriber dials again.
	require.JSONEq(t, payload, string(receive(t, messages)))
	require.GreaterOrEqual(t, connections.Load(), int32(2))

	cancel()
	select {
	case errSub := <-done:
		require.ErrorIs(t, errSub, context.Canceled)
	case <-time.After(5 * time.Second):
		t.Fatal("subscriber did not stop")
	}
}

type blockingSubscriber struct {
	started atomic.Int32
	stopped atomic.Int32
}

func (b *blockingSubscriber) Subscribe(ctx context.Context, _ stream.Handler) error {
	b.started.Add(1)
	<-ctx.Done()
	b.stopped.Add(1)

	return ctx.Err()
}

func TestManagerReplacesSubscription(t *testing.T) {
	first := &blockingSubscriber{}
	second := &blockingSubscriber{}
	manager := stream.NewManager()

	manager.Open(context.Background(), first, func([]byte) {})
	require.Eventually(t, func() bool { return first.started.Load() == 1 }, time.Second, time.Millisecond)

	manager.Open(context.Background(), second, func([]byte) {})
	require.Equal(t, int32(1), first.stopped.Load())

	manager.Close()
	require.Equal(t, int32(1), second.stopped.Load())

	// Closing twice is harmless.
	manager.Close()
}

func TestNewRejectsBadInput(t *testing.T) {
	_, err := stream.New(stream.TransportSSE, "not a url", 1, nil)
	require.ErrorIs(t, err, stream.ErrPushURL)

	_, err = stream.New("carrier-pigeon", "http://localhost/events", 1, nil)
	require.ErrorIs(t, err, stream.ErrTransport)
}
