package intake

import (
	"time"

	"github.com/leighmacdonald/cricket-tui/internal/match"
)

// Effect is a follow-up the UI must perform after a response has been applied.
type Effect interface {
	isEffect()
}

// Section names a view tab an effect may switch to.
type Section string

const SectionSquad Section = "squad"

// OpenSelection asks the UI to open the player picker for a role after Delay.
type OpenSelection struct {
	Role   match.Role
	TeamID int
	Title  string
	Delay  time.Duration
}

// Notify surfaces a message to the user.
type Notify struct {
	Message string
	Err     bool
}

type SwitchSection struct {
	Section Section
}

// Refetch asks for a fresh full snapshot.
type Refetch struct{}

func (OpenSelection) isEffect() {}
func (Notify) isEffect()        {}
func (SwitchSection) isEffect() {}
func (Refetch) isEffect()       {}
