package render

import (
	"encoding/json"
	"fmt"
	"hash/fnv"
	"strconv"
	"strings"

	"github.com/leighmacdonald/cricket-tui/internal/derive"
	"github.com/leighmacdonald/cricket-tui/internal/match"
)

const (
	staticRooted   = "/static/"
	staticRelative = "static/"
	transparent    = "transparent"

	colourHighlight = "#00e676"
	colourNeutral   = "#fff"
	colourMuted     = "#aaa"
)

// NormalizeImage rewrites static asset paths so they resolve from a nested view.
func NormalizeImage(src string) string {
	switch {
	case strings.HasPrefix(src, staticRooted):
		return ".." + src
	case strings.HasPrefix(src, staticRelative):
		return "../" + src
	default:
		return src
	}
}

// NormalizeStyle maps the "default" sentinel, and empty values, to transparent.
func NormalizeStyle(value string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" || strings.EqualFold(trimmed, "default") {
		return transparent
	}

	return trimmed
}

// Renderer applies views to a Surface. Leaf fields are compared with what the surface
// currently shows; composite regions are compared by an input fingerprint.
type Renderer struct {
	surface      Surface
	fingerprints map[RegionID]uint64
	writes       int
}

func New(surface Surface) *Renderer {
	return &Renderer{surface: surface, fingerprints: map[RegionID]uint64{}}
}

// Render writes the view and returns the number of writes made.
func (r *Renderer) Render(view derive.View) int {
	r.writes = 0

	r.image(FieldBattingLogo, view.Batting.Logo)
	r.image(FieldBowlingLogo, view.Bowling.Logo)
	r.style(FieldBattingColor, StyleBackground, NormalizeStyle(view.Batting.Color))
	r.style(FieldBowlingColor, StyleBackground, NormalizeStyle(view.Bowling.Color))

	r.text(FieldBattingName, view.Batting.Name)
	r.text(FieldBowlingName, view.Bowling.Name)
	r.text(FieldScore, view.Score)
	r.text(FieldOvers, view.OversLabel)
	r.text(FieldCRR, view.CRR)
	r.text(FieldProjected, view.Projected)

	r.text(FieldMatchNumber, view.MatchNumber)
	r.text(FieldTotalOvers, view.TotalOvers)
	r.text(FieldMatchType, view.MatchType)

	r.text(FieldPartnership, view.Partnership.Text)
	if view.Partnership.Highlight {
		r.style(FieldPartnership, StyleColor, colourHighlight)
	} else {
		r.style(FieldPartnership, StyleColor, colourNeutral)
	}

	r.text(FieldThisOverRuns, view.ThisOverRuns)
	if view.ThisOverRuns != "0 runs" {
		r.style(FieldThisOverRuns, StyleColor, colourNeutral)
	} else {
		r.style(FieldThisOverRuns, StyleColor, colourMuted)
	}

	r.region(RegionBadges, view.Badges)

	r.toggle(FieldTarget, view.Target)
	r.toggle(FieldBowlingScore, view.PreviousScore)

	r.actionButton(view)

	r.text(FieldBanner, view.Banner.Text)
	r.attr(FieldBanner, AttrTone, strconv.Itoa(int(view.Banner.Tone)))

	r.toggle(FieldRotateStrike, boolText(view.RotateStrike, "Rotate Strike"))
	r.attr(FieldScoring, AttrDisabled, strconv.FormatBool(view.ScoringDisabled))

	r.region(RegionStriker, view.Striker)
	r.region(RegionNonStriker, view.NonStriker)
	r.region(RegionBowler, view.Bowler)
	r.toggle(FieldLastOut, view.LastOut)

	return r.writes
}

// RenderScorecard rebuilds the per-innings scorecard regions.
func (r *Renderer) RenderScorecard(card match.Scorecard) int {
	r.writes = 0

	r.region(RegionScorecard1, card.Inning1)
	r.region(RegionScorecard2, card.Inning2)

	switch {
	case card.Inning1 == nil && card.Inning2 == nil:
		r.text(FieldScorecardNote, "No balls bowled yet")
	default:
		r.text(FieldScorecardNote, "")
	}

	return r.writes
}

func (r *Renderer) actionButton(view derive.View) {
	button := view.Button
	if button == derive.ButtonHidden {
		r.style(FieldActionButton, StyleDisplay, DisplayNone)

		return
	}

	r.text(FieldActionButton, button.Label())
	r.style(FieldActionButton, StyleDisplay, DisplayBlock)
	r.attr(FieldActionButton, AttrDisabled, strconv.FormatBool(button == derive.ButtonLocked))
	r.attr(FieldActionButton, AttrAction, strconv.Itoa(int(button)))
}

func (r *Renderer) text(id FieldID, value string) {
	if r.surface.Text(id) == value {
		return
	}

	r.surface.SetText(id, value)
	r.writes++
}

// image skips empty sources so a missing logo never blanks a loaded one.
func (r *Renderer) image(id FieldID, src string) {
	if src == "" {
		return
	}

	src = NormalizeImage(src)
	if r.surface.Image(id) == src {
		return
	}

	r.surface.SetImage(id, src)
	r.writes++
}

func (r *Renderer) style(id FieldID, property string, value string) {
	if r.surface.Style(id, property) == value {
		return
	}

	r.surface.SetStyle(id, property, value)
	r.writes++
}

func (r *Renderer) attr(id FieldID, name string, value string) {
	if r.surface.Attr(id, name) == value {
		return
	}

	r.surface.SetAttr(id, name, value)
	r.writes++
}

// toggle shows the field with value as its text, or hides it when value is empty.
func (r *Renderer) toggle(id FieldID, value string) {
	if value == "" {
		r.style(id, StyleDisplay, DisplayNone)

		return
	}

	r.text(id, value)
	r.style(id, StyleDisplay, DisplayBlock)
}

func (r *Renderer) region(id RegionID, content any) {
	digest := fingerprint(content)
	if previous, found := r.fingerprints[id]; found && previous == digest {
		return
	}

	r.fingerprints[id] = digest
	r.surface.ReplaceRegion(id, content)
	r.writes++
}

// Reset forgets region fingerprints, forcing the next render to rebuild them.
func (r *Renderer) Reset() {
	r.fingerprints = map[RegionID]uint64{}
}

// fingerprint hashes the JSON form so pointers are compared by content.
func fingerprint(content any) uint64 {
	hasher := fnv.New64a()
	if err := json.NewEncoder(hasher).Encode(content); err != nil {
		_, _ = fmt.Fprintf(hasher, "%#v", content)
	}

	return hasher.Sum64()
}

func boolText(ok bool, value string) string {
	if !ok {
		return ""
	}

	return value
}
