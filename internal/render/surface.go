// Package render applies a derived scoreboard to a Surface, writing only what changed.
package render

// FieldID names a leaf element of the scoreboard.
type FieldID string

const (
	FieldMatchNumber   FieldID = "top_match_no"
	FieldTotalOvers    FieldID = "top_match_overs"
	FieldMatchType     FieldID = "top_match_type"
	FieldBattingName   FieldID = "header_team_name"
	FieldBowlingName   FieldID = "header_bowling_name"
	FieldBattingLogo   FieldID = "header_batting_logo"
	FieldBowlingLogo   FieldID = "header_bowling_logo"
	FieldBattingColor  FieldID = "teamA_color_box"
	FieldBowlingColor  FieldID = "teamB_color_box"
	FieldScore         FieldID = "header_score"
	FieldOvers         FieldID = "header_overs"
	FieldCRR           FieldID = "header_crr"
	FieldProjected     FieldID = "header_proj"
	FieldTarget        FieldID = "target_display"
	FieldBowlingScore  FieldID = "header_bowling_score"
	FieldBanner        FieldID = "toss_banner"
	FieldPartnership   FieldID = "partnership_val"
	FieldThisOverRuns  FieldID = "this_over_runs"
	FieldActionButton  FieldID = "btn_end_inning"
	FieldRotateStrike  FieldID = "btn_rotate_strike"
	FieldScoring       FieldID = "scoring_buttons"
	FieldLastOut       FieldID = "last_out_display"
	FieldScorecardNote FieldID = "scorecard_note"
)

// RegionID names a composite element rebuilt as a whole.
type RegionID string

const (
	RegionBadges     RegionID = "this_over_balls"
	RegionStriker    RegionID = "striker_card"
	RegionNonStriker RegionID = "non_striker_card"
	RegionBowler     RegionID = "bowler_card"
	RegionScorecard1 RegionID = "scorecard_inning1"
	RegionScorecard2 RegionID = "scorecard_inning2"
)

// Style property names.
const (
	StyleBackground = "background"
	StyleColor      = "color"
	StyleDisplay    = "display"
)

// Attribute names.
const (
	AttrDisabled = "disabled"
	AttrAction   = "action"
	AttrTone     = "tone"
)

const (
	DisplayNone  = "none"
	DisplayBlock = "block"
)

// Surface is the view the renderer writes to. Getters return what is currently shown so
// writes can be skipped when nothing changed.
type Surface interface {
	Text(id FieldID) string
	SetText(id FieldID, value string)
	Image(id FieldID) string
	SetImage(id FieldID, src string)
	Style(id FieldID, property string) string
	SetStyle(id FieldID, property string, value string)
	Attr(id FieldID, name string) string
	SetAttr(id FieldID, name string, value string)
	ReplaceRegion(id RegionID, content any)
}
