package model

// Page is a complete standalone screen occupying everything except the footer.
type Page int

const (
	PageMain Page = iota
	PageSettings
	PageHelp
)

// Section is a tab within the main page.
type Section int

const (
	SectionLive Section = iota
	SectionScorecard
	SectionCommentary
	SectionSquad
)

func (s Section) String() string {
	switch s {
	case SectionLive:
		return "Live"
	case SectionScorecard:
		return "Scorecard"
	case SectionCommentary:
		return "Commentary"
	case SectionSquad:
		return "Squad"
	}

	return ""
}

// Modal is the overlay currently capturing keyboard input, if any.
type Modal int

const (
	ModalNone Modal = iota
	ModalPicker
	ModalConfirm
)

// ViewState tracks the common ui states that are shared between many models.
type ViewState struct {
	// Page is the active highest level page model.
	Page Page
	// Section defines which tab within the main page is active.
	Section Section
	// Modal is set while a picker or confirmation owns the keyboard.
	Modal Modal

	// --------- h
	// | Upper | e
	// |-------- i
	// | Lower | g
	// --------- h
	// W i d t h t
	Upper  int
	Lower  int
	Height int
	Width  int
}
