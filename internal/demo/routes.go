package demo

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/leighmacdonald/cricket-tui/internal/derive"
	"github.com/leighmacdonald/cricket-tui/internal/match"
	"github.com/leighmacdonald/cricket-tui/internal/network/encoding"
	"golang.org/x/exp/slices"
)

const (
	roleStriker    = "striker"
	roleNonStriker = "non_striker"

	msgMatchNotFound = "Match not found"
	msgLocked        = "Match is completed. No more changes allowed."
)

type reply struct {
	Status    match.ResultStatus `json:"status"`
	Message   string             `json:"message,omitempty"`
	OutPlayer string             `json:"out_player,omitempty"`
	Target    int                `json:"target,omitempty"`
	Result    string             `json:"result,omitempty"`
	Data      *match.Wire        `json:"data,omitempty"`
}

func failure(message string) reply {
	return reply{Status: match.ResultError, Message: message}
}

type detail struct {
	Detail string `json:"detail"`
}

type matchRequest struct {
	MatchID int `json:"match_id"`
}

type scoreRequest struct {
	MatchID int    `json:"match_id"`
	Action  string `json:"action"`
	Value   any    `json:"value"`
	Type    string `json:"type"`
}

type playerRequest struct {
	MatchID     int    `json:"match_id"`
	NewPlayerID int    `json:"new_player_id"`
	PlayerID    int    `json:"player_id"`
	Role        string `json:"role"`
}

type settingsRequest struct {
	MatchNumber int    `json:"match_number"`
	TotalOvers  int    `json:"total_overs"`
	MatchStatus string `json:"match_status"`
}

type squadRequest struct {
	TeamID    int   `json:"team_id"`
	PlayerIDs []int `json:"player_ids"`
}

// Router serves the backend endpoints used by the client.
func (b *Backend) Router() http.Handler {
	router := chi.NewRouter()

	router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusNoContent) })
	router.Get("/match_data", b.onMatchData)
	router.Get("/available_players", b.onAvailablePlayers)
	router.Get("/bowling_squad", b.onBowlingSquad)
	router.Get("/match/{match_id}/commentary", b.onCommentary)
	router.Post("/update_score", b.onUpdateScore)
	router.Post("/undo_last_action", b.onUndo)
	router.Post("/end_inning", b.onEndInning)
	router.Post("/end_match", b.onEndMatch)
	router.Route("/matches/{match_id}", func(r chi.Router) {
		r.Get("/scorecard", b.onScorecard)
		r.Post("/rotate_strike", b.onRotateStrike)
		r.Post("/set_batsman", b.onSetBatsman)
		r.Post("/set_bowler", b.onSetBowler)
		r.Put("/settings", b.onSettings)
		r.Post("/select_squad", b.onSelectSquad)
	})
	router.Get("/events", b.events.ServeHTTP)
	router.Get("/ws", b.onWebsocket)

	return router
}

func writeJSON(w http.ResponseWriter, status int, value any) {
	body, errBody := encoding.MarshalJSON(value)
	if errBody != nil {
		http.Error(w, errBody.Error(), http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if _, err := io.Copy(w, body); err != nil {
		slog.Error("Failed to write response", slog.String("error", err.Error()))
	}
}

// readBody decodes a request body, answering the request itself when that fails.
func readBody[T any](w http.ResponseWriter, r *http.Request) (T, bool) {
	value, err := encoding.UnmarshalJSON[T](r.Body)
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, detail{Detail: "invalid request body"})

		return value, false
	}

	return value, true
}

func (b *Backend) queryMatch(r *http.Request) bool {
	matchID, err := strconv.Atoi(r.URL.Query().Get("match_id"))

	return err == nil && matchID == b.matchID
}

func (b *Backend) pathMatch(w http.ResponseWriter, r *http.Request) bool {
	matchID, err := strconv.Atoi(chi.URLParam(r, "match_id"))
	if err != nil || matchID != b.matchID {
		writeJSON(w, http.StatusNotFound, detail{Detail: msgMatchNotFound})

		return false
	}

	return true
}

// mutate runs change under the write lock. When change returns a frame it is broadcast to
// push subscribers after the lock is released.
func (b *Backend) mutate(w http.ResponseWriter, change func() (reply, *match.Wire)) {
	b.mu.Lock()
	result, publish := change()
	b.mu.Unlock()

	if publish != nil {
		b.publish(*publish)
	}

	writeJSON(w, http.StatusOK, result)
}

// snapshot returns a copy of the current frame for a reply. Callers hold the lock.
func (b *Backend) snapshot() *match.Wire {
	frame := clone(b.current)

	return &frame
}

func (b *Backend) onMatchData(w http.ResponseWriter, r *http.Request) {
	if !b.queryMatch(r) {
		writeJSON(w, http.StatusNotFound, detail{Detail: msgMatchNotFound})

		return
	}

	writeJSON(w, http.StatusOK, b.Current())
}

func (b *Backend) onUpdateScore(w http.ResponseWriter, r *http.Request) {
	req, ok := readBody[scoreRequest](w, r)
	if !ok {
		return
	}

	b.mutate(w, func() (reply, *match.Wire) {
		switch {
		case req.MatchID != b.matchID:
			return failure(msgMatchNotFound), nil
		case b.locked:
			return failure(msgLocked), nil
		case b.cursor+1 >= len(b.frames):
			return failure("No more recorded deliveries"), nil
		}

		previous := b.current
		b.seek(b.cursor + 1)
		slog.Debug("Replay advanced", slog.String("action", req.Action), slog.Int("cursor", b.cursor))

		next := b.snapshot()

		return classify(previous, *next), next
	})
}

// classify picks the reply status the scoring backend would give for the step from previous
// to next.
func classify(previous match.Wire, next match.Wire) reply {
	result := reply{Status: match.ResultSuccess, Data: &next}

	prevWickets, nextWickets := 0, 0
	if previous.Innings != nil {
		prevWickets = previous.Innings.Wickets
	}

	if next.Innings != nil {
		nextWickets = next.Innings.Wickets
	}

	switch {
	case nextWickets >= 10 && nextWickets > prevWickets:
		result.Status, result.Message = match.ResultInningsOver, "All Out!"
	case nextWickets > prevWickets:
		result.Status = match.ResultWicketFall
		if next.LastOut != nil {
			result.OutPlayer = next.LastOut.BatterName
		}
	case overCompleted(previous, next):
		result.Status, result.Message = match.ResultOverComplete, "Over Complete"
	}

	return result
}

func overCompleted(previous match.Wire, next match.Wire) bool {
	if previous.Innings == nil || next.Innings == nil ||
		previous.Innings.CurrentInning != next.Innings.CurrentInning {
		return false
	}

	prevOvers, _ := previous.Innings.Overs.Parse()
	nextOvers, nextBalls := next.Innings.Overs.Parse()

	return nextOvers > prevOvers && nextBalls == 0
}

func (b *Backend) onUndo(w http.ResponseWriter, r *http.Request) {
	req, ok := readBody[matchRequest](w, r)
	if !ok {
		return
	}

	b.mutate(w, func() (reply, *match.Wire) {
		switch {
		case req.MatchID != b.matchID:
			return failure(msgMatchNotFound), nil
		case b.locked:
			return failure(msgLocked), nil
		case b.cursor == 0:
			return failure("Nothing to undo"), nil
		}

		b.seek(b.cursor - 1)
		frame := b.snapshot()

		return reply{Status: match.ResultSuccess, Message: "Undo successful", Data: frame}, frame
	})
}

func (b *Backend) onEndInning(w http.ResponseWriter, r *http.Request) {
	req, ok := readBody[matchRequest](w, r)
	if !ok {
		return
	}

	b.mutate(w, func() (reply, *match.Wire) {
		if req.MatchID != b.matchID {
			return failure(msgMatchNotFound), nil
		}

		inning := b.current.Innings.CurrentInning
		next := slices.IndexFunc(b.frames[b.cursor:], func(frame match.Wire) bool {
			return frame.Innings.CurrentInning > inning
		})

		if next < 0 {
			return failure("No second innings recorded"), nil
		}

		target := b.current.Innings.Runs + 1
		b.seek(b.cursor + next)

		if b.current.Innings.Target > 0 {
			target = b.current.Innings.Target
		}

		return reply{
			Status:  match.ResultInningBreak,
			Target:  target,
			Message: fmt.Sprintf("Innings Break! Target set: %d runs", target),
		}, b.snapshot()
	})
}

func (b *Backend) onEndMatch(w http.ResponseWriter, r *http.Request) {
	req, ok := readBody[matchRequest](w, r)
	if !ok {
		return
	}

	b.mutate(w, func() (reply, *match.Wire) {
		if req.MatchID != b.matchID {
			return failure(msgMatchNotFound), nil
		}

		result := "Match Ended Manually"
		if snap, err := b.current.Snapshot(); err == nil {
			if view := derive.Derive(snap); view.Chase.Outcome.Decided() {
				result = view.Chase.Message
			}
		}

		b.locked = true
		b.current.Status = match.StatusCompleted
		b.current.ResultMessage = result

		return reply{Status: match.ResultSuccess, Result: result}, b.snapshot()
	})
}

func (b *Backend) onRotateStrike(w http.ResponseWriter, r *http.Request) {
	if !b.pathMatch(w, r) {
		return
	}

	b.mutate(w, func() (reply, *match.Wire) {
		if b.locked {
			return failure(msgLocked), nil
		}

		if len(b.current.CurrentBatsmen) < 2 {
			return failure("Both batsmen must be selected"), nil
		}

		for idx := range b.current.CurrentBatsmen {
			b.current.CurrentBatsmen[idx].OnStrike = !b.current.CurrentBatsmen[idx].OnStrike
		}

		frame := b.snapshot()

		return reply{Status: match.ResultSuccess, Data: frame}, frame
	})
}

func (b *Backend) onSetBatsman(w http.ResponseWriter, r *http.Request) {
	if !b.pathMatch(w, r) {
		return
	}

	req, ok := readBody[playerRequest](w, r)
	if !ok {
		return
	}

	b.mutate(w, func() (reply, *match.Wire) {
		name, found := b.squads[b.current.BattingTeamID][req.NewPlayerID]
		if !found {
			return failure("Player not found"), nil
		}

		if req.Role != roleStriker && req.Role != roleNonStriker {
			return failure("Invalid role"), nil
		}

		onStrike := req.Role == roleStriker
		incoming := match.PlayerRef{ID: req.NewPlayerID, Name: name, OnStrike: onStrike}

		slot := slices.IndexFunc(b.current.CurrentBatsmen, func(p match.PlayerRef) bool {
			return p.OnStrike == onStrike
		})
		if slot < 0 && len(b.current.CurrentBatsmen) >= 2 {
			slot = 1
			if onStrike {
				slot = 0
			}
		}

		if slot < 0 {
			b.current.CurrentBatsmen = append(b.current.CurrentBatsmen, incoming)
		} else {
			b.current.CurrentBatsmen[slot] = incoming
		}

		frame := b.snapshot()

		return reply{Status: match.ResultSuccess, Data: frame}, frame
	})
}

func (b *Backend) onSetBowler(w http.ResponseWriter, r *http.Request) {
	if !b.pathMatch(w, r) {
		return
	}

	req, ok := readBody[playerRequest](w, r)
	if !ok {
		return
	}

	b.mutate(w, func() (reply, *match.Wire) {
		playerID := req.PlayerID
		if playerID == 0 {
			playerID = req.NewPlayerID
		}

		name, found := b.squads[b.current.BowlingTeamID][playerID]
		if !found {
			return failure("Player not found"), nil
		}

		if b.current.CurrentBowler != nil && b.current.CurrentBowler.ID == playerID {
			return failure("Bowler cannot bowl consecutive overs"), nil
		}

		b.current.CurrentBowler = &match.BowlerRef{ID: playerID, Name: name, Overs: "0.0"}
		frame := b.snapshot()

		return reply{Status: match.ResultSuccess, Data: frame}, frame
	})
}

func (b *Backend) onAvailablePlayers(w http.ResponseWriter, r *http.Request) {
	if !b.queryMatch(r) {
		writeJSON(w, http.StatusNotFound, detail{Detail: msgMatchNotFound})

		return
	}

	teamID, _ := strconv.Atoi(r.URL.Query().Get("team_id"))

	b.mu.RLock()
	players := b.squad(teamID, func(playerID int) bool {
		return !slices.ContainsFunc(b.current.CurrentBatsmen, func(p match.PlayerRef) bool { return p.ID == playerID })
	})
	b.mu.RUnlock()

	writeJSON(w, http.StatusOK, match.Squad{Players: players})
}

func (b *Backend) onBowlingSquad(w http.ResponseWriter, r *http.Request) {
	if !b.queryMatch(r) {
		writeJSON(w, http.StatusNotFound, detail{Detail: msgMatchNotFound})

		return
	}

	b.mu.RLock()
	players := b.squad(b.current.BowlingTeamID, func(int) bool { return true })
	b.mu.RUnlock()

	writeJSON(w, http.StatusOK, match.Squad{Players: players})
}

// squad lists known players of a team in id order. Callers hold the lock.
func (b *Backend) squad(teamID int, include func(playerID int) bool) []match.SquadPlayer {
	players := []match.SquadPlayer{}

	for playerID, name := range b.squads[teamID] {
		if include(playerID) {
			players = append(players, match.SquadPlayer{ID: playerID, Name: name})
		}
	}

	slices.SortFunc(players, func(a, b match.SquadPlayer) int { return a.ID - b.ID })

	return players
}

func (b *Backend) onScorecard(w http.ResponseWriter, r *http.Request) {
	if !b.pathMatch(w, r) {
		return
	}

	b.mu.RLock()
	card := b.scorecard()
	b.mu.RUnlock()

	writeJSON(w, http.StatusOK, card)
}

func (b *Backend) onCommentary(w http.ResponseWriter, r *http.Request) {
	if !b.pathMatch(w, r) {
		return
	}

	b.mu.RLock()
	defer b.mu.RUnlock()

	inning := b.current.Innings.CurrentInning
	if raw := r.URL.Query().Get("inning"); raw != "" {
		value, err := strconv.Atoi(raw)
		if err != nil || value < 1 || value > 2 {
			writeJSON(w, http.StatusUnprocessableEntity, detail{Detail: "invalid inning"})

			return
		}

		inning = value
	}

	writeJSON(w, http.StatusOK, match.Commentary{MatchID: b.matchID, Inning: inning, Timeline: b.timeline(inning)})
}

func (b *Backend) onSettings(w http.ResponseWriter, r *http.Request) {
	if !b.pathMatch(w, r) {
		return
	}

	req, ok := readBody[settingsRequest](w, r)
	if !ok {
		return
	}

	if req.TotalOvers <= 0 {
		writeJSON(w, http.StatusBadRequest, detail{Detail: "total_overs must be greater than 0"})

		return
	}

	b.mutate(w, func() (reply, *match.Wire) {
		for idx := range b.frames {
			b.frames[idx].TotalOvers = req.TotalOvers
		}

		b.current.TotalOvers = req.TotalOvers

		if req.MatchNumber > 0 {
			number := req.MatchNumber
			b.current.MatchNumber = &number
		}

		return reply{Status: match.ResultSuccess, Message: "Match settings updated successfully"}, b.snapshot()
	})
}

func (b *Backend) onSelectSquad(w http.ResponseWriter, r *http.Request) {
	if !b.pathMatch(w, r) {
		return
	}

	req, ok := readBody[squadRequest](w, r)
	if !ok {
		return
	}

	writeJSON(w, http.StatusOK, reply{
		Status:  match.ResultSuccess,
		Message: fmt.Sprintf("Squad of %d selected", len(req.PlayerIDs)),
	})
}
