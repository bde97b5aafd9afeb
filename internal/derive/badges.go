package derive

import (
	"strconv"
	"strings"

	"github.com/leighmacdonald/cricket-tui/internal/match"
)

// BadgeKind is the visual class of a delivery in the this-over strip.
type BadgeKind int

const (
	BadgeRuns BadgeKind = iota
	BadgeWicket
	BadgeSix
	BadgeFour
	BadgeExtra
)

type Badge struct {
	Kind  BadgeKind
	Label string
}

// ClassifyBall picks the badge for one delivery. The order is absolute: a wicket wins over
// any runs, six over four, boundaries over extras.
func ClassifyBall(ball match.BallEvent) Badge {
	switch {
	case ball.IsWicket:
		return Badge{Kind: BadgeWicket, Label: "W"}
	case ball.RunsOffBat == 6:
		return Badge{Kind: BadgeSix, Label: "6"}
	case ball.RunsOffBat == 4:
		return Badge{Kind: BadgeFour, Label: "4"}
	case strings.TrimSpace(ball.ExtraType) != "":
		return Badge{Kind: BadgeExtra, Label: extraLabel(ball)}
	default:
		return Badge{Kind: BadgeRuns, Label: strconv.Itoa(ball.RunsOffBat)}
	}
}

// extraLabel abbreviates the extra type to its first two letters, "no-ball" to "NO", prefixing
// the extras count when the delivery gave away more than one.
func extraLabel(ball match.BallEvent) string {
	kind := []rune(strings.TrimSpace(ball.ExtraType))
	if len(kind) > 2 {
		kind = kind[:2]
	}

	label := strings.ToUpper(string(kind))
	if ball.ExtrasCount > 1 {
		label = strconv.Itoa(ball.ExtrasCount) + label
	}

	return label
}

func badges(balls []match.BallEvent) []Badge {
	out := make([]Badge, 0, len(balls))
	for _, ball := range balls {
		out = append(out, ClassifyBall(ball))
	}

	return out
}
