package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/leighmacdonald/cricket-tui/internal/dispatch"
	"github.com/leighmacdonald/cricket-tui/internal/match"
)

var ErrUnknownAction = errors.New("unknown action")

// Settings are the editable match parameters.
type Settings struct {
	MatchNumber  int    `json:"match_number,omitempty"`
	TotalOvers   int    `json:"total_overs"`
	BallsPerOver int    `json:"balls_per_over,omitempty"`
	MatchStatus  string `json:"match_status,omitempty"`
	TossWinnerID int    `json:"toss_winner_id,omitempty"`
	BattingTeam  int    `json:"batting_team_id,omitempty"`
}

type scoreBody struct {
	MatchID int    `json:"match_id"`
	Action  string `json:"action"`
	Value   any    `json:"value"`
	Type    string `json:"type,omitempty"`
}

type matchBody struct {
	MatchID int `json:"match_id"`
}

type batsmanBody struct {
	MatchID     int    `json:"match_id"`
	NewPlayerID int    `json:"new_player_id"`
	Role        string `json:"role"`
}

type bowlerBody struct {
	MatchID     int `json:"match_id"`
	NewPlayerID int `json:"new_player_id"`
	// PlayerID duplicates NewPlayerID; the route reads this name.
	PlayerID int `json:"player_id"`
}

type squadBody struct {
	TeamID    int   `json:"team_id"`
	PlayerIDs []int `json:"player_ids"`
}

// MatchData fetches the current snapshot.
func (c *Client) MatchData(ctx context.Context, matchID int) (match.Snapshot, error) {
	query, errQuery := queryParams("match_id", matchID)
	if errQuery != nil {
		return match.Snapshot{}, errQuery
	}

	wire, errGet := getJSON[match.Wire](ctx, c, "match_data", query)
	if errGet != nil {
		return match.Snapshot{}, errGet
	}

	return wire.Snapshot()
}

// Send performs the backend call for a dispatched request. Business failures are returned as
// an error status result, not as an error.
func (c *Client) Send(ctx context.Context, req dispatch.Request) (match.ActionResult, error) {
	ctx = WithRequestID(ctx, req.RequestID)

	var (
		path string
		body any
	)

	switch req.Action {
	case dispatch.ActionRun, dispatch.ActionBoundary, dispatch.ActionWide, dispatch.ActionNoBall,
		dispatch.ActionBye, dispatch.ActionLegBye, dispatch.ActionPenalty, dispatch.ActionWicket:
		path = "update_score"
		body = scoreBody{MatchID: req.MatchID, Action: string(req.Action), Value: req.Value, Type: req.Type}
	case dispatch.ActionUndo:
		path, body = "undo_last_action", matchBody{MatchID: req.MatchID}
	case dispatch.ActionEndInning:
		path, body = "end_inning", matchBody{MatchID: req.MatchID}
	case dispatch.ActionEndMatch:
		path, body = "end_match", matchBody{MatchID: req.MatchID}
	case dispatch.ActionRotateStrike, dispatch.ActionSetBatsman, dispatch.ActionSetBowler:
		matchParam, errParam := pathParam("match_id", req.MatchID)
		if errParam != nil {
			return match.ActionResult{}, errParam
		}

		path = fmt.Sprintf("matches/%s/%s", matchParam, req.Action)

		if req.Action == dispatch.ActionSetBatsman {
			body = batsmanBody{MatchID: req.MatchID, NewPlayerID: req.PlayerID, Role: string(req.Role)}
		} else if req.Action == dispatch.ActionSetBowler {
			body = bowlerBody{MatchID: req.MatchID, NewPlayerID: req.PlayerID, PlayerID: req.PlayerID}
		}
	default:
		return match.ActionResult{}, fmt.Errorf("%w: %s", ErrUnknownAction, req.Action)
	}

	raw, errBody := c.readBody(ctx, http.MethodPost, path, nil, body)
	if errBody != nil {
		return match.ActionResult{}, errBody
	}

	return match.DecodeActionResult(raw)
}

// AvailablePlayers lists batting side players who are not out and not at the crease.
func (c *Client) AvailablePlayers(ctx context.Context, matchID int, teamID int) (match.Squad, error) {
	query, errQuery := queryParams("match_id", matchID, "team_id", teamID)
	if errQuery != nil {
		return match.Squad{}, errQuery
	}

	return getJSON[match.Squad](ctx, c, "available_players", query)
}

func (c *Client) BowlingSquad(ctx context.Context, matchID int) (match.Squad, error) {
	query, errQuery := queryParams("match_id", matchID)
	if errQuery != nil {
		return match.Squad{}, errQuery
	}

	return getJSON[match.Squad](ctx, c, "bowling_squad", query)
}

func (c *Client) Scorecard(ctx context.Context, matchID int) (match.Scorecard, error) {
	matchParam, errParam := pathParam("match_id", matchID)
	if errParam != nil {
		return match.Scorecard{}, errParam
	}

	return getJSON[match.Scorecard](ctx, c, "matches/"+matchParam+"/scorecard", nil)
}

// Commentary fetches the timeline for an inning, the current one when inning is 0.
func (c *Client) Commentary(ctx context.Context, matchID int, inning int) (match.Commentary, error) {
	matchParam, errParam := pathParam("match_id", matchID)
	if errParam != nil {
		return match.Commentary{}, errParam
	}

	var query url.Values
	if inning > 0 {
		values, errQuery := queryParams("inning", inning)
		if errQuery != nil {
			return match.Commentary{}, errQuery
		}

		query = values
	}

	return getJSON[match.Commentary](ctx, c, "match/"+matchParam+"/commentary", query)
}

// UpdateSettings saves the match parameters. A rejection is returned as an error status result
// with the backend detail verbatim.
func (c *Client) UpdateSettings(ctx context.Context, matchID int, settings Settings) (match.ActionResult, error) {
	matchParam, errParam := pathParam("match_id", matchID)
	if errParam != nil {
		return match.ActionResult{}, errParam
	}

	raw, errBody := c.readBody(ctx, http.MethodPut, "matches/"+matchParam+"/settings", nil, settings)
	if errBody != nil {
		return match.ActionResult{}, errBody
	}

	return match.DecodeActionResult(raw)
}

// SelectSquad records the playing eleven of a team.
func (c *Client) SelectSquad(ctx context.Context, matchID int, teamID int, playerIDs []int) (match.ActionResult, error) {
	matchParam, errParam := pathParam("match_id", matchID)
	if errParam != nil {
		return match.ActionResult{}, errParam
	}

	raw, errBody := c.readBody(ctx, http.MethodPost, "matches/"+matchParam+"/select_squad", nil,
		squadBody{TeamID: teamID, PlayerIDs: playerIDs})
	if errBody != nil {
		return match.ActionResult{}, errBody
	}

	return match.DecodeActionResult(raw)
}
