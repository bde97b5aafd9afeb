package stream

import (
	"context"
	"log/slog"

	"github.com/coder/websocket"
)

const readLimit = 1 << 20

type websocketSubscriber struct {
	url      string
	recorder Recorder
}

func newWebsocket(url string, recorder Recorder) *websocketSubscriber {
	return &websocketSubscriber{url: url, recorder: recorder}
}

// Subscribe dials and reads until ctx is done, redialling with exponential backoff whenever
// the connection drops.
func (s *websocketSubscriber) Subscribe(ctx context.Context, handler Handler) error {
	policy := newPolicy()

	return retry(ctx, TransportWebsocket, policy, s.recorder, func() error {
		conn, _, errDial := websocket.Dial(ctx, s.url, nil) //nolint:bodyclose
		if errDial != nil {
			return errDial
		}

		defer func() { _ = conn.Close(websocket.StatusNormalClosure, "bye") }()

		conn.SetReadLimit(readLimit)
		policy.Reset()

		for {
			_, data, errRead := conn.Read(ctx)
			if errRead != nil {
				if status := websocket.CloseStatus(errRead); status == websocket.StatusNormalClosure ||
					status == websocket.StatusGoingAway {
					slog.Debug("Websocket closed by server", slog.String("url", s.url))
				}

				return errRead
			}

			handler(data)
		}
	})
}
