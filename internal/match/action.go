package match

import (
	"bytes"
	"encoding/json"
	"errors"
)

// ResultStatus discriminates the response to a scoring action.
type ResultStatus string

const (
	ResultSuccess      ResultStatus = "success"
	ResultWicketFall   ResultStatus = "wicket_fall"
	ResultOverComplete ResultStatus = "over_complete"
	ResultInningBreak  ResultStatus = "inning_break"
	ResultInningsOver  ResultStatus = "innings_over"
	ResultError        ResultStatus = "error"
)

// ActionResult is the backend reply to a scoring or roster command. Some endpoints return a
// bare snapshot instead, which is kept in Raw.
type ActionResult struct {
	Status    ResultStatus    `json:"status"`
	Message   string          `json:"message"`
	Data      json.RawMessage `json:"data"`
	OutPlayer string          `json:"out_player"`
	Target    int             `json:"target"`
	Result    string          `json:"result"`
	// Error and Detail carry failures from endpoints that do not use the status envelope.
	Error  string `json:"error"`
	Detail string `json:"detail"`

	Raw json.RawMessage `json:"-"`
}

// DecodeActionResult parses a response body.
func DecodeActionResult(body []byte) (ActionResult, error) {
	var result ActionResult
	if err := json.Unmarshal(body, &result); err != nil {
		return ActionResult{}, errors.Join(err, ErrDecodeSnapshot)
	}

	result.Raw = append(json.RawMessage(nil), body...)

	if result.Status == "" && (result.Error != "" || result.Detail != "") {
		result.Status = ResultError
	}

	return result, nil
}

// Failure returns the verbatim business error message, if any.
func (r ActionResult) Failure() (string, bool) {
	if r.Status != ResultError {
		return "", false
	}

	for _, msg := range []string{r.Message, r.Error, r.Detail} {
		if msg != "" {
			return msg, true
		}
	}

	return "Request failed", true
}

// Snapshot returns the carried snapshot: the data field when present, otherwise the body
// itself when it has an innings block.
func (r ActionResult) Snapshot() (Snapshot, bool) {
	if len(r.Data) > 0 && !bytes.Equal(bytes.TrimSpace(r.Data), []byte("null")) {
		snap, err := DecodeBytes(r.Data)

		return snap, err == nil
	}

	if len(r.Raw) == 0 {
		return Snapshot{}, false
	}

	snap, err := DecodeBytes(r.Raw)

	return snap, err == nil
}
