package dispatch

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/leighmacdonald/cricket-tui/internal/match"
)

var ErrSend = errors.New("failed to send action")

// Sender delivers a request to the backend.
type Sender interface {
	Send(ctx context.Context, req Request) (match.ActionResult, error)
}

type Recorder interface {
	ActionDispatched(action string)
	ActionBlocked(reason string)
}

// Journal keeps a trail of what was sent and how the backend answered.
type Journal interface {
	RecordAction(req Request, result match.ActionResult, err error)
}

type Option func(*Dispatcher)

func WithRecorder(recorder Recorder) Option {
	return func(d *Dispatcher) { d.recorder = recorder }
}

func WithJournal(journal Journal) Option {
	return func(d *Dispatcher) { d.journal = journal }
}

type Dispatcher struct {
	sender   Sender
	matchID  int
	recorder Recorder
	journal  Journal
}

func New(sender Sender, matchID int, opts ...Option) *Dispatcher {
	dispatcher := &Dispatcher{sender: sender, matchID: matchID}
	for _, opt := range opts {
		opt(dispatcher)
	}

	return dispatcher
}

// Check runs the gate for an action without sending anything. The UI calls it before opening
// a scoring menu.
func (d *Dispatcher) Check(action Action, snap match.Snapshot, found bool) error {
	err := ErrNoSnapshot
	if found {
		err = Gate(action, snap)
	}

	if err != nil && d.recorder != nil {
		d.recorder.ActionBlocked(reason(err))
	}

	return err
}

// Dispatch gates and sends a single request. A gate failure is returned as is and nothing is
// sent. The request is detached from ctx cancellation: once started it runs to completion.
func (d *Dispatcher) Dispatch(ctx context.Context, snap match.Snapshot, found bool, req Request) (match.ActionResult, error) {
	if err := d.Check(req.Action, snap, found); err != nil {
		return match.ActionResult{}, err
	}

	if req.RequestID == "" {
		req.RequestID = uuid.NewString()
	}

	if req.MatchID == 0 {
		req.MatchID = d.matchID
	}

	slog.Debug("Dispatching action", slog.String("action", string(req.Action)),
		slog.String("request_id", req.RequestID), slog.String("value", req.ValueText()))

	if d.recorder != nil {
		d.recorder.ActionDispatched(string(req.Action))
	}

	result, errSend := d.sender.Send(context.WithoutCancel(ctx), req)
	if d.journal != nil {
		d.journal.RecordAction(req, result, errSend)
	}

	if errSend != nil {
		slog.Error("Action failed", slog.String("action", string(req.Action)),
			slog.String("request_id", req.RequestID), slog.String("error", errSend.Error()))

		return match.ActionResult{}, errors.Join(errSend, ErrSend)
	}

	return result, nil
}
