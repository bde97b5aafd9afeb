package match

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// BallsPerOver is the number of legal deliveries in an over.
const BallsPerOver = 6

// Overs is the "O.B" form of completed overs and balls into the current over. The backend
// usually sends a string, but a bare number is accepted too.
type Overs string

func (o *Overs) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*o = ""

		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var text string
		if err := json.Unmarshal(data, &text); err != nil {
			return err
		}

		*o = Overs(strings.TrimSpace(text))

		return nil
	}

	*o = Overs(string(data))

	return nil
}

// Parse splits the value into completed overs and balls. Malformed components read as zero.
func (o Overs) Parse() (int, int) {
	text := strings.TrimSpace(string(o))
	if text == "" {
		return 0, 0
	}

	whole, frac, _ := strings.Cut(text, ".")

	overs, errOvers := strconv.Atoi(whole)
	if errOvers != nil {
		overs = 0
	}

	balls, errBalls := strconv.Atoi(frac)
	if errBalls != nil {
		balls = 0
	}

	return overs, balls
}

// BallsBowled converts the value to a count of legal deliveries.
func (o Overs) BallsBowled() int {
	overs, balls := o.Parse()

	return overs*BallsPerOver + balls
}

// Display pads integral values to one decimal place, "4" becomes "4.0".
func (o Overs) Display() string {
	text := strings.TrimSpace(string(o))
	if text == "" {
		return "0.0"
	}

	if !strings.Contains(text, ".") {
		return text + ".0"
	}

	return text
}
