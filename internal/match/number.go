package match

import (
	"bytes"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
)

var errNumber = errors.New("invalid numeric value")

// Number is a statistic the backend may encode as a JSON number, a numeric string or null.
// The original textual form is kept so display code never re-rounds an upstream value.
type Number struct {
	raw   string
	value float64
	set   bool
}

func NewNumber(value float64) Number {
	return Number{raw: strconv.FormatFloat(value, 'f', -1, 64), value: value, set: true}
}

func (n *Number) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*n = Number{}

		return nil
	}

	raw := string(data)
	if strings.HasPrefix(raw, `"`) {
		var text string
		if err := json.Unmarshal(data, &text); err != nil {
			return errors.Join(err, errNumber)
		}

		raw = strings.TrimSpace(text)
		if raw == "" {
			*n = Number{}

			return nil
		}
	}

	value, errParse := strconv.ParseFloat(raw, 64)
	if errParse != nil {
		return errors.Join(errParse, errNumber)
	}

	*n = Number{raw: raw, value: value, set: true}

	return nil
}

func (n Number) MarshalJSON() ([]byte, error) {
	if !n.set {
		return []byte("null"), nil
	}

	return []byte(strconv.FormatFloat(n.value, 'f', -1, 64)), nil
}

func (n Number) Float() float64 {
	return n.value
}

// Truthy mirrors how the scoring UI treats a value as present: set and non-zero.
func (n Number) Truthy() bool {
	return n.set && n.value != 0
}

// String returns the upstream text for the value, or an empty string when unset.
func (n Number) String() string {
	return n.raw
}
