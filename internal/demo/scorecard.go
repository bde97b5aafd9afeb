package demo

import (
	"strings"

	"github.com/leighmacdonald/cricket-tui/internal/match"
	"golang.org/x/exp/slices"
)

// played returns the frames reached so far in an inning, ending with the live frame when the
// inning is the current one. Callers hold the lock.
func (b *Backend) played(inning int) []match.Wire {
	var frames []match.Wire

	for idx := 0; idx < b.cursor; idx++ {
		if b.frames[idx].Innings.CurrentInning == inning {
			frames = append(frames, b.frames[idx])
		}
	}

	if b.current.Innings.CurrentInning == inning {
		frames = append(frames, b.current)
	}

	return frames
}

func (b *Backend) scorecard() match.Scorecard {
	return match.Scorecard{Inning1: b.inningsCard(1), Inning2: b.inningsCard(2)}
}

func (b *Backend) inningsCard(inning int) *match.InningsCard {
	frames := b.played(inning)
	if len(frames) == 0 {
		return nil
	}

	last := frames[len(frames)-1]
	card := &match.InningsCard{
		Total:   last.Innings.Runs,
		Wickets: last.Innings.Wickets,
		Overs:   last.Innings.Overs,
	}

	var (
		batting   []match.BattingRow
		battingID []int
		bowling   []match.BowlingRow
		bowlingID []int
	)

	for _, frame := range frames {
		for _, batsman := range frame.CurrentBatsmen {
			row := match.BattingRow{
				Name:       batsman.Name,
				Dismissal:  "not out",
				Runs:       batsman.Runs,
				Balls:      batsman.Balls,
				Fours:      batsman.Fours,
				Sixes:      batsman.Sixes,
				StrikeRate: batsman.StrikeRate,
			}

			if idx := slices.Index(battingID, batsman.ID); idx >= 0 {
				batting[idx] = row
			} else {
				battingID = append(battingID, batsman.ID)
				batting = append(batting, row)
			}
		}

		if bowler := frame.CurrentBowler; bowler != nil {
			row := match.BowlingRow{
				Name:    bowler.Name,
				Overs:   bowler.Overs,
				Runs:    bowler.RunsConceded,
				Wickets: bowler.Wickets,
				Dots:    bowler.Dots,
				Economy: bowler.Economy,
			}

			if idx := slices.Index(bowlingID, bowler.ID); idx >= 0 {
				bowling[idx] = row
			} else {
				bowlingID = append(bowlingID, bowler.ID)
				bowling = append(bowling, row)
			}
		}

		if frame.LastOut != nil {
			for idx := range batting {
				if batting[idx].Name == frame.LastOut.BatterName {
					batting[idx].Dismissal = frame.LastOut.Dismissal
				}
			}
		}
	}

	card.Batting = batting
	card.Bowling = bowling

	for _, ball := range deliveries(frames) {
		addExtras(&card.Extras, ball)
	}

	return card
}

// deliveries flattens the innings ball by ball. Each frame carries the whole over in
// progress, so the last frame seen for an over holds its complete list.
func deliveries(frames []match.Wire) []match.BallEvent {
	var (
		overs  []int
		byOver = map[int][]match.BallEvent{}
	)

	for _, frame := range frames {
		if len(frame.ThisOverBalls) == 0 {
			continue
		}

		over := frame.ThisOverBalls[0].Over
		if _, seen := byOver[over]; !seen {
			overs = append(overs, over)
		}

		byOver[over] = frame.ThisOverBalls
	}

	slices.Sort(overs)

	var balls []match.BallEvent
	for _, over := range overs {
		balls = append(balls, byOver[over]...)
	}

	return balls
}

func addExtras(extras *match.Extras, ball match.BallEvent) {
	if ball.ExtrasCount == 0 {
		return
	}

	extras.Total += ball.ExtrasCount

	switch strings.ToLower(strings.TrimSpace(ball.ExtraType)) {
	case "wide", "wd":
		extras.Wides += ball.ExtrasCount
	case "noball", "no-ball", "nb":
		extras.NoBalls += ball.ExtrasCount
	case "bye", "b":
		extras.Byes += ball.ExtrasCount
	case "leg-bye", "legbye", "lb":
		extras.LegByes += ball.ExtrasCount
	case "penalty", "p":
		extras.Penalty += ball.ExtrasCount
	}
}

// timeline builds the commentary feed of an inning, newest first, with a summary row after
// each completed over. Callers hold the lock.
func (b *Backend) timeline(inning int) []match.TimelineEntry {
	frames := b.played(inning)
	entries := []match.TimelineEntry{}

	var (
		overRuns int
		previous *match.Wire
	)

	for _, ball := range deliveries(frames) {
		if previous != nil && len(entries) > 0 && entries[len(entries)-1].Over != ball.Over {
			entries = append(entries, overSummary(entries[len(entries)-1].Over, overRuns, *previous))
			overRuns = 0
		}

		overRuns += ball.RunsOffBat + ball.ExtrasCount
		entries = append(entries, match.TimelineEntry{
			Kind:       match.TimelineBall,
			Over:       ball.Over,
			Ball:       ball.Ball,
			RunsOffBat: ball.RunsOffBat,
			Extras:     ball.ExtrasCount,
			ExtraType:  ball.ExtraType,
			IsWicket:   ball.IsWicket,
			Commentary: ball.Commentary,
		})
		previous = lastOfOver(frames, ball.Over)
	}

	slices.Reverse(entries)

	return entries
}

func lastOfOver(frames []match.Wire, over int) *match.Wire {
	for idx := len(frames) - 1; idx >= 0; idx-- {
		if balls := frames[idx].ThisOverBalls; len(balls) > 0 && balls[0].Over == over {
			return &frames[idx]
		}
	}

	return nil
}

func overSummary(over int, runs int, frame match.Wire) match.TimelineEntry {
	entry := match.TimelineEntry{
		Kind:         match.TimelineOverSummary,
		OverNumber:   over,
		Runs:         runs,
		ScoreRuns:    frame.Innings.Runs,
		ScoreWickets: frame.Innings.Wickets,
		CRR:          frame.CRR,
	}

	if frame.CurrentBowler != nil {
		entry.BowlerName = frame.CurrentBowler.Name
	}

	return entry
}
