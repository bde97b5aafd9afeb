package demo

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/coder/websocket"
	"github.com/leighmacdonald/cricket-tui/internal/match"
	"github.com/leighmacdonald/cricket-tui/internal/stream"
	"github.com/r3labs/sse/v2"
)

const (
	outboxSize   = 8
	writeTimeout = 3 * time.Second
)

var ErrServe = errors.New("failed to serve replay backend")

// publish broadcasts a frame to every SSE and websocket subscriber. Slow websocket readers
// miss frames rather than block the backend.
func (b *Backend) publish(frame match.Wire) {
	payload, err := json.Marshal(frame)
	if err != nil {
		slog.Error("Failed to encode push frame", slog.String("error", err.Error()))

		return
	}

	b.events.Publish(stream.StreamName(b.matchID), &sse.Event{Data: payload})

	b.mu.RLock()
	defer b.mu.RUnlock()

	for outbox := range b.sockets {
		select {
		case outbox <- payload:
		default:
			slog.Warn("Dropped push frame for slow websocket client")
		}
	}
}

func (b *Backend) onWebsocket(w http.ResponseWriter, r *http.Request) {
	matchID, errID := strconv.Atoi(r.URL.Query().Get("match_id"))
	if errID != nil || matchID != b.matchID {
		http.Error(w, "match not found", http.StatusNotFound)

		return
	}

	conn, errAccept := websocket.Accept(w, r, nil)
	if errAccept != nil {
		return
	}
	defer func() { _ = conn.Close(websocket.StatusNormalClosure, "bye") }()

	outbox := make(chan []byte, outboxSize)

	b.mu.Lock()
	b.sockets[outbox] = struct{}{}
	b.mu.Unlock()

	defer func() {
		b.mu.Lock()
		delete(b.sockets, outbox)
		b.mu.Unlock()
	}()

	// Clients never send, the read side only watches for the close frame.
	ctx := conn.CloseRead(r.Context())

	for {
		select {
		case <-ctx.Done():
			return
		case payload := <-outbox:
			writeCtx, cancel := context.WithTimeout(ctx, writeTimeout)
			errWrite := conn.Write(writeCtx, websocket.MessageText, payload)
			cancel()

			if errWrite != nil {
				slog.Debug("Websocket write failed", slog.String("error", errWrite.Error()))

				return
			}
		}
	}
}

// Serve runs the backend on address until ctx is done.
func (b *Backend) Serve(ctx context.Context, address string) error {
	server := &http.Server{
		Addr:              address,
		Handler:           b.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()

		b.Close()

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("Failed to shutdown replay backend", slog.String("error", err.Error()))
		}
	}()

	slog.Info("Replay backend listening", slog.String("address", address), slog.Int("match_id", b.matchID))

	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return errors.Join(err, ErrServe)
	}

	return nil
}
