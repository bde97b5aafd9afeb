package component

import (
	"strconv"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/leighmacdonald/cricket-tui/internal/dispatch"
	"github.com/leighmacdonald/cricket-tui/internal/match"
	"github.com/leighmacdonald/cricket-tui/internal/ui/command"
	"github.com/leighmacdonald/cricket-tui/internal/ui/input"
	"github.com/leighmacdonald/cricket-tui/internal/ui/model"
	"github.com/leighmacdonald/cricket-tui/internal/ui/styles"
)

const (
	pickerWidth  = 40
	pickerHeight = 16
)

// PickerItem is one choice of the picker, tagged with the request it sends.
type PickerItem struct {
	Label   string
	Detail  string
	Request dispatch.Request
}

func (i PickerItem) Title() string       { return i.Label }
func (i PickerItem) Description() string { return i.Detail }
func (i PickerItem) FilterValue() string { return i.Label }

// MenuItems converts the scoring menu of an action into picker items.
func MenuItems(options []dispatch.MenuOption) []PickerItem {
	items := make([]PickerItem, 0, len(options))
	for _, option := range options {
		items = append(items, PickerItem{Label: option.Label, Request: option.Request()})
	}

	return items
}

// PlayerItems converts a squad listing into selection requests for role.
func PlayerItems(role match.Role, players []match.SquadPlayer) []PickerItem {
	items := make([]PickerItem, 0, len(players))

	for _, player := range players {
		req := dispatch.SetBatsman(role, player.ID)
		if role == match.RoleBowler {
			req = dispatch.SetBowler(player.ID)
		}

		items = append(items, PickerItem{Label: player.Name, Detail: "#" + strconv.Itoa(player.ID), Request: req})
	}

	return items
}

// PickerModel is the modal list used for both the scoring menu and player selection.
type PickerModel struct {
	list      list.Model
	viewState model.ViewState
}

func NewPickerModel() PickerModel {
	delegate := list.NewDefaultDelegate()
	delegate.ShowDescription = false
	delegate.SetSpacing(0)

	picker := list.New(nil, delegate, pickerWidth, pickerHeight)
	picker.SetShowStatusBar(false)
	picker.KeyMap.Quit.SetEnabled(false)
	picker.Styles.Title = styles.TableHeading

	return PickerModel{list: picker}
}

// Open replaces the choices and resets the cursor.
func (m PickerModel) Open(title string, items []PickerItem, filter bool) (PickerModel, tea.Cmd) {
	listItems := make([]list.Item, 0, len(items))
	for _, item := range items {
		listItems = append(listItems, item)
	}

	m.list.Title = title
	m.list.ResetFilter()
	m.list.SetFilteringEnabled(filter)
	m.list.Select(0)

	return m, m.list.SetItems(listItems)
}

func (m PickerModel) Init() tea.Cmd {
	return nil
}

func (m PickerModel) Update(msg tea.Msg) (PickerModel, tea.Cmd) {
	switch msg := msg.(type) {
	case model.ViewState:
		m.viewState = msg

		return m, nil
	case tea.KeyMsg:
		if m.viewState.Modal != model.ModalPicker {
			return m, nil
		}

		if m.list.FilterState() != list.Filtering {
			switch {
			case key.Matches(msg, input.Default.Back):
				return m, command.CloseModal()
			case key.Matches(msg, input.Default.Accept):
				selected, ok := m.list.SelectedItem().(PickerItem)
				if !ok {
					return m, nil
				}

				return m, tea.Sequence(command.CloseModal(), command.Dispatch(selected.Request))
			}
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)

	return m, cmd
}

func (m PickerModel) View() string {
	return styles.Modal.Render(m.list.View())
}
