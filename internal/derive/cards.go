package derive

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/leighmacdonald/cricket-tui/internal/match"
)

// DefaultAvatar is shown for players without a photo.
const DefaultAvatar = "/static/images/avatar_placeholder.png"

// bowlerPlaceholders are names the backend uses for an unselected bowler.
var bowlerPlaceholders = []string{"select bowler", "bowler name"}

// CardState tells whether a player slot renders stats or a prompt to select someone.
type CardState int

const (
	CardEmpty CardState = iota
	CardFilled
)

type BatsmanCard struct {
	State      CardState
	Role       match.Role
	PlayerID   int
	Name       string
	Score      string
	Fours      string
	Sixes      string
	StrikeRate string
	Photo      string
}

type BowlerCard struct {
	State    CardState
	PlayerID int
	Name     string
	// Figures is overs - maidens - runs - wickets.
	Figures string
	Economy string
	Dots    string
	Extras  string
	Photo   string
}

func photo(url string) string {
	if strings.TrimSpace(url) == "" {
		return DefaultAvatar
	}

	return url
}

func batsmanCard(role match.Role, player *match.PlayerRef) BatsmanCard {
	if !player.Valid() {
		return BatsmanCard{State: CardEmpty, Role: role}
	}

	strikeRate := player.StrikeRate.String()
	if strikeRate == "" {
		strikeRate = "0"
	}

	return BatsmanCard{
		State:      CardFilled,
		Role:       role,
		PlayerID:   player.ID,
		Name:       player.Name,
		Score:      fmt.Sprintf("%d (%d)", player.Runs, player.Balls),
		Fours:      strconv.Itoa(player.Fours),
		Sixes:      strconv.Itoa(player.Sixes),
		StrikeRate: strikeRate,
		Photo:      photo(player.PhotoURL),
	}
}

// IsBowlerPlaceholder reports names that stand in for "no bowler chosen yet".
func IsBowlerPlaceholder(name string) bool {
	return slices.Contains(bowlerPlaceholders, strings.ToLower(strings.TrimSpace(name)))
}

func bowlerCard(bowler *match.BowlerRef) BowlerCard {
	if !bowler.Valid() || IsBowlerPlaceholder(bowler.Name) {
		return BowlerCard{State: CardEmpty}
	}

	economy := "0.00"
	if bowler.Economy.Truthy() {
		economy = bowler.Economy.String()
	}

	return BowlerCard{
		State:    CardFilled,
		PlayerID: bowler.ID,
		Name:     bowler.Name,
		Figures: fmt.Sprintf("%s - %d - %d - %d",
			bowler.Overs.Display(), bowler.Maidens, bowler.RunsConceded, bowler.Wickets),
		Economy: economy,
		Dots:    strconv.Itoa(bowler.Dots),
		Extras:  strconv.Itoa(bowler.ExtrasAllowed),
		Photo:   photo(bowler.PhotoURL),
	}
}

func lastOut(out *match.DismissalRef) string {
	if out == nil || out.BatterName == "" {
		return ""
	}

	return fmt.Sprintf("%s %s %d(%db %dx4 %dx6)",
		out.BatterName, out.Dismissal, out.Runs, out.Balls, out.Fours, out.Sixes)
}
