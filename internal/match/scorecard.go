package match

// Scorecard is the full batting and bowling breakdown of both innings.
type Scorecard struct {
	Inning1 *InningsCard `json:"inning1"`
	Inning2 *InningsCard `json:"inning2"`
}

type InningsCard struct {
	Total   int          `json:"total"`
	Wickets int          `json:"wickets"`
	Overs   Overs        `json:"overs"`
	Batting []BattingRow `json:"batting"`
	Bowling []BowlingRow `json:"bowling"`
	Extras  Extras       `json:"extras"`
}

type BattingRow struct {
	Name       string `json:"name"`
	Dismissal  string `json:"out"`
	Runs       int    `json:"runs"`
	Balls      int    `json:"balls"`
	Fours      int    `json:"4s"`
	Sixes      int    `json:"6s"`
	StrikeRate Number `json:"sr"`
}

type BowlingRow struct {
	Name    string `json:"name"`
	Overs   Overs  `json:"overs_display"`
	Runs    int    `json:"runs"`
	Wickets int    `json:"wkts"`
	Dots    int    `json:"dots"`
	Economy Number `json:"econ"`
}

type Extras struct {
	Total   int `json:"total"`
	Byes    int `json:"b"`
	LegByes int `json:"lb"`
	Wides   int `json:"w"`
	NoBalls int `json:"nb"`
	Penalty int `json:"p"`
}

// TimelineKind separates deliveries from end of over summaries in the commentary feed.
type TimelineKind string

const (
	TimelineBall        TimelineKind = "ball"
	TimelineOverSummary TimelineKind = "over_summary"
)

// TimelineEntry is one row of ball by ball commentary, newest first.
type TimelineEntry struct {
	Kind TimelineKind `json:"type"`

	Over       int    `json:"over"`
	Ball       int    `json:"ball"`
	RunsOffBat int    `json:"runs_bat"`
	Extras     int    `json:"extras"`
	ExtraType  string `json:"extra_type"`
	IsWicket   bool   `json:"is_wicket"`
	Batter     string `json:"batter"`
	Commentary string `json:"commentary"`

	OverNumber   int    `json:"over_number"`
	Runs         int    `json:"runs"`
	ScoreRuns    int    `json:"score_runs"`
	ScoreWickets int    `json:"score_wickets"`
	BowlerName   string `json:"bowler_name"`
	CRR          Number `json:"crr"`
}

type Commentary struct {
	MatchID  int             `json:"match_id"`
	Inning   int             `json:"inning"`
	Timeline []TimelineEntry `json:"timeline"`
}

// SquadPlayer is an entry of a selection list.
type SquadPlayer struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type Squad struct {
	Players []SquadPlayer `json:"players"`
}
