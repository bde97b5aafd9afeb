package input

import "github.com/charmbracelet/bubbles/key"

type Map struct {
	Quit     key.Binding
	Help     key.Binding
	Settings key.Binding
	Refresh  key.Binding
	Up       key.Binding
	Down     key.Binding
	Accept   key.Binding
	Mark     key.Binding
	Back     key.Binding
	Yes      key.Binding
	No       key.Binding
	PrevTab  key.Binding
	NextTab  key.Binding

	Live       key.Binding
	Scorecard  key.Binding
	Commentary key.Binding
	Squad      key.Binding

	Dot      key.Binding
	Single   key.Binding
	Double   key.Binding
	Triple   key.Binding
	Four     key.Binding
	Six      key.Binding
	Runs     key.Binding
	Wide     key.Binding
	NoBall   key.Binding
	Bye      key.Binding
	LegBye   key.Binding
	Penalty  key.Binding
	Wicket   key.Binding
	Undo     key.Binding
	Rotate   key.Binding
	Finish   key.Binding
	Striker  key.Binding
	Partner  key.Binding
	Bowler   key.Binding
	PrevInns key.Binding
	NextInns key.Binding
}

// TODO make configurable.
var Default = Map{
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "Quit"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "Help"),
	),
	Settings: key.NewBinding(
		key.WithKeys("E"),
		key.WithHelp("E", "Match settings"),
	),
	Refresh: key.NewBinding(
		key.WithKeys("ctrl+r"),
		key.WithHelp("ctrl+r", "Refresh"),
	),
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑", "Up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓", "Down"),
	),
	Accept: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "Select"),
	),
	Mark: key.NewBinding(
		key.WithKeys(" "),
		key.WithHelp("space", "Mark player"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "Back"),
	),
	Yes: key.NewBinding(
		key.WithKeys("y", "Y"),
		key.WithHelp("y", "Confirm"),
	),
	No: key.NewBinding(
		key.WithKeys("n", "N", "esc"),
		key.WithHelp("n", "Cancel"),
	),
	NextTab: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "Next Tab"),
	),
	PrevTab: key.NewBinding(
		key.WithKeys("shift+tab"),
		key.WithHelp("shift tab", "Prev Tab"),
	),
	Live: key.NewBinding(
		key.WithKeys("f1"),
		key.WithHelp("F1", "Live"),
	),
	Scorecard: key.NewBinding(
		key.WithKeys("f2"),
		key.WithHelp("F2", "Scorecard"),
	),
	Commentary: key.NewBinding(
		key.WithKeys("f3"),
		key.WithHelp("F3", "Commentary"),
	),
	Squad: key.NewBinding(
		key.WithKeys("f4"),
		key.WithHelp("F4", "Squad"),
	),
	Dot: key.NewBinding(
		key.WithKeys("0", "."),
		key.WithHelp("0", "Dot ball"),
	),
	Single: key.NewBinding(
		key.WithKeys("1"),
		key.WithHelp("1", "1 run"),
	),
	Double: key.NewBinding(
		key.WithKeys("2"),
		key.WithHelp("2", "2 runs"),
	),
	Triple: key.NewBinding(
		key.WithKeys("3"),
		key.WithHelp("3", "3 runs"),
	),
	Four: key.NewBinding(
		key.WithKeys("4"),
		key.WithHelp("4", "Four"),
	),
	Six: key.NewBinding(
		key.WithKeys("6"),
		key.WithHelp("6", "Six"),
	),
	Runs: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "Runs menu"),
	),
	Wide: key.NewBinding(
		key.WithKeys("w"),
		key.WithHelp("w", "Wide"),
	),
	NoBall: key.NewBinding(
		key.WithKeys("n"),
		key.WithHelp("n", "No ball"),
	),
	Bye: key.NewBinding(
		key.WithKeys("b"),
		key.WithHelp("b", "Bye"),
	),
	LegBye: key.NewBinding(
		key.WithKeys("l"),
		key.WithHelp("l", "Leg bye"),
	),
	Penalty: key.NewBinding(
		key.WithKeys("p"),
		key.WithHelp("p", "Penalty"),
	),
	Wicket: key.NewBinding(
		key.WithKeys("x"),
		key.WithHelp("x", "Wicket"),
	),
	Undo: key.NewBinding(
		key.WithKeys("u"),
		key.WithHelp("u", "Undo"),
	),
	Rotate: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "Rotate strike"),
	),
	Finish: key.NewBinding(
		key.WithKeys("F"),
		key.WithHelp("F", "End inning / Save"),
	),
	Striker: key.NewBinding(
		key.WithKeys("S"),
		key.WithHelp("S", "Select striker"),
	),
	Partner: key.NewBinding(
		key.WithKeys("N"),
		key.WithHelp("N", "Select non-striker"),
	),
	Bowler: key.NewBinding(
		key.WithKeys("B"),
		key.WithHelp("B", "Select bowler"),
	),
	PrevInns: key.NewBinding(
		key.WithKeys("left", "["),
		key.WithHelp("←", "1st innings"),
	),
	NextInns: key.NewBinding(
		key.WithKeys("right", "]"),
		key.WithHelp("→", "2nd innings"),
	),
}
