package component

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/leighmacdonald/cricket-tui/internal/ui/styles"
)

var (
	errNotNumber  = errors.New("must be a whole number")
	errOutOfRange = errors.New("value out of range")
)

type InputValidator interface {
	Validate(string) error
}

func NewTextInputModel(value string, placeholder string) textinput.Model {
	input := textinput.New()
	input.Cursor.Style = styles.CursorStyle
	input.CharLimit = 16
	input.Placeholder = placeholder
	input.SetValue(value)

	return input
}

func NewValidatingTextInputModel(label string, value string, placeholder string, validators ...InputValidator) *ValidatingTextInputModel {
	input := NewTextInputModel(value, placeholder)

	if len(validators) > 0 {
		input.Validate = func(s string) error {
			for _, validator := range validators {
				if err := validator.Validate(s); err != nil {
					return err
				}
			}

			return nil
		}
	}

	return &ValidatingTextInputModel{Input: input, Label: label}
}

type ValidatingTextInputModel struct {
	Label string
	Input textinput.Model
}

func (m *ValidatingTextInputModel) Init() tea.Cmd {
	return nil
}

func (m *ValidatingTextInputModel) Update(msg tea.Msg) (*ValidatingTextInputModel, tea.Cmd) {
	var cmd tea.Cmd
	m.Input, cmd = m.Input.Update(msg)

	return m, cmd
}

func (m *ValidatingTextInputModel) View() string {
	var errRow string
	if m.Input.Err != nil {
		errRow = lipgloss.NewStyle().Foreground(styles.Red).Render("Validation Error: " + m.Input.Err.Error())
	}

	return lipgloss.JoinHorizontal(lipgloss.Top,
		styles.HelpStyle.Render(m.Label+": "),
		lipgloss.JoinVertical(lipgloss.Top, m.Input.View(), errRow))
}

// Int returns the field as a number. Callers check Input.Err first.
func (m *ValidatingTextInputModel) Int() int {
	value, _ := strconv.Atoi(strings.TrimSpace(m.Input.Value()))

	return value
}

func (m *ValidatingTextInputModel) Focus() tea.Cmd {
	m.Input.PromptStyle = styles.FocusedStyle
	m.Input.TextStyle = styles.FocusedStyle

	return m.Input.Focus()
}

func (m *ValidatingTextInputModel) Blur() {
	m.Input.PromptStyle = styles.NoStyle
	m.Input.TextStyle = styles.NoStyle
	m.Input.Blur()
}

// IntRangeValidator accepts whole numbers between Min and Max inclusive. A zero Max means
// unbounded.
type IntRangeValidator struct {
	Min int
	Max int
}

func (v IntRangeValidator) Validate(value string) error {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return fmt.Errorf("%w: cannot be empty", errNotNumber)
	}

	number, errParse := strconv.Atoi(trimmed)
	if errParse != nil {
		return errors.Join(errParse, errNotNumber)
	}

	if number < v.Min || (v.Max > 0 && number > v.Max) {
		return fmt.Errorf("%w: %d", errOutOfRange, number)
	}

	return nil
}
