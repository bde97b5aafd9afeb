package stream

import (
	"context"
	"log/slog"

	"github.com/r3labs/sse/v2"
)

type sseSubscriber struct {
	url      string
	stream   string
	recorder Recorder
}

func newSSE(url string, matchID int, recorder Recorder) *sseSubscriber {
	return &sseSubscriber{url: url, stream: StreamName(matchID), recorder: recorder}
}

// Subscribe relies on the client's own reconnect handling, and starts a fresh client if that
// gives up. It returns once ctx is done.
func (s *sseSubscriber) Subscribe(ctx context.Context, handler Handler) error {
	return retry(ctx, TransportSSE, newPolicy(), nil, func() error {
		client := sse.NewClient(s.url)
		client.OnDisconnect(func(_ *sse.Client) {
			slog.Debug("SSE disconnected", slog.String("url", s.url))

			if s.recorder != nil {
				s.recorder.StreamReconnect(string(TransportSSE))
			}
		})

		return client.SubscribeWithContext(ctx, s.stream, func(msg *sse.Event) {
			if len(msg.Data) == 0 {
				return
			}

			handler(msg.Data)
		})
	})
}
