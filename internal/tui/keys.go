package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the keybindings for the tracker TUI.
type KeyMap struct {
	Search       key.Binding
	CycleStatus  key.Binding
	CycleTag     key.Binding
	CycleType    key.Binding
	SortName     key.Binding
	SortStatus   key.Binding
	SortAssignee key.Binding
	SortDelivery key.Binding
	SortUpdated  key.Binding
	New          key.Binding
	Edit         key.Binding
	Delete       key.Binding
	Refresh      key.Binding
	Quit         key.Binding

	// Form
	NextField key.Binding
	PrevField key.Binding
	Left      key.Binding
	Right     key.Binding
	Toggle    key.Binding
	AddMember key.Binding
	Save      key.Binding
	FormDel   key.Binding
	Close     key.Binding

	// Confirm
	Yes key.Binding
	No  key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Search:       key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		CycleStatus:  key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "status")),
		CycleTag:     key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "tag")),
		CycleType:    key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "type")),
		SortName:     key.NewBinding(key.WithKeys("1"), key.WithHelp("1-5", "sort")),
		SortStatus:   key.NewBinding(key.WithKeys("2")),
		SortAssignee: key.NewBinding(key.WithKeys("3")),
		SortDelivery: key.NewBinding(key.WithKeys("4")),
		SortUpdated:  key.NewBinding(key.WithKeys("5")),
		New:          key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new")),
		Edit:         key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "edit")),
		Delete:       key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		Refresh:      key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Quit:         key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),

		NextField: key.NewBinding(key.WithKeys("tab", "down"), key.WithHelp("tab", "next field")),
		PrevField: key.NewBinding(key.WithKeys("shift+tab", "up"), key.WithHelp("shift+tab", "prev field")),
		Left:      key.NewBinding(key.WithKeys("left")),
		Right:     key.NewBinding(key.WithKeys("right"), key.WithHelp("←/→", "choose")),
		Toggle:    key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "toggle")),
		AddMember: key.NewBinding(key.WithKeys("+"), key.WithHelp("+", "add member")),
		Save:      key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save")),
		FormDel:   key.NewBinding(key.WithKeys("ctrl+d"), key.WithHelp("ctrl+d", "delete")),
		Close:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),

		Yes: key.NewBinding(key.WithKeys("y", "Y")),
		No:  key.NewBinding(key.WithKeys("n", "N", "esc")),
	}
}

// ShortHelp is shown in the table footer.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Search, k.CycleStatus, k.CycleTag, k.CycleType, k.SortName, k.New, k.Edit, k.Delete, k.Refresh, k.Quit}
}

// FormHelp is shown under the form.
func (k KeyMap) FormHelp() []key.Binding {
	return []key.Binding{k.NextField, k.Right, k.Toggle, k.AddMember, k.Save, k.FormDel, k.Close}
}
