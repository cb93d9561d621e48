package tui

import (
	"context"
	"errors"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"
	"github.com/yukikurage/design-tracker/internal/form"
	"github.com/yukikurage/design-tracker/internal/models"
	"github.com/yukikurage/design-tracker/internal/view"
)

// Backend is the tracker API as the TUI uses it.
type Backend interface {
	view.Lister
	form.API
	form.MemberAdder
	ListMembers(ctx context.Context) ([]string, error)
}

// Model is the tracker TUI model.
type Model struct {
	// Dependencies
	backend Backend
	ctx     context.Context

	// State
	view    *view.Model
	visible []models.Task
	members []string
	form    *form.Form
	fields  []formField
	pending *form.Form // task awaiting delete confirmation
	status  string
	err     error

	// Components
	keys      KeyMap
	styles    Styles
	help      help.Model
	table     table.Model
	search    textinput.Model
	newMember textinput.Model

	// In-flight requests, set when the command is dispatched
	saving       bool
	deletingTask bool

	// Numeric state
	cursorMode   cursor.Mode
	focus        int
	pickerCursor int
	width        int
	height       int
	mode         Mode
	confirmFrom  Mode
}

// New creates the TUI model. openID, when set, is opened once the task list
// has loaded.
func New(ctx context.Context, backend Backend, log *logrus.Logger, openID string) *Model {
	search := textinput.New()
	search.Placeholder = "Search name, description, assignee..."
	search.Prompt = "/ "

	newMember := textinput.New()
	newMember.Placeholder = "New member name"
	newMember.CharLimit = 100

	t := table.New(
		table.WithColumns(columns(0)),
		table.WithFocused(true),
		table.WithHeight(15),
	)

	vm := view.NewModel(log)
	vm.SetDeepLink(openID)

	return &Model{
		backend:    backend,
		ctx:        ctx,
		view:       vm,
		keys:       DefaultKeyMap(),
		styles:     DefaultStyles(),
		help:       help.New(),
		table:      t,
		search:     search,
		newMember:  newMember,
		cursorMode: cursor.CursorBlink,
		mode:       ModeNormal,
	}
}

// setCursorMode applies mode to every text input, including form fields
// created later.
func (m *Model) setCursorMode(mode cursor.Mode) {
	m.cursorMode = mode
	m.search.Cursor.SetMode(mode)
	m.newMember.Cursor.SetMode(mode)
}

// Init starts the first fetch of tasks and members.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.refresh(), m.loadMembers())
}

func (m *Model) refresh() tea.Cmd {
	m.view.BeginRefresh()
	backend, ctx := m.backend, m.ctx
	return func() tea.Msg {
		tasks, err := backend.ListTasks(ctx)
		return MsgTasksLoaded{Tasks: tasks, Err: err}
	}
}

func (m *Model) loadMembers() tea.Cmd {
	backend, ctx := m.backend, m.ctx
	return func() tea.Msg {
		names, err := backend.ListMembers(ctx)
		return MsgMembersLoaded{Names: names, Err: err}
	}
}

func (m *Model) submit() tea.Cmd {
	m.saving = true
	f, backend, ctx := m.form, m.backend, m.ctx
	return func() tea.Msg {
		task, err := f.Submit(ctx, backend, nil)
		return MsgSaved{Task: task, Err: err}
	}
}

func (m *Model) deleteTask(f *form.Form) tea.Cmd {
	m.deletingTask = true
	backend, ctx := m.backend, m.ctx
	return func() tea.Msg {
		// the prompt was already answered in ModeConfirmDelete
		err := f.Delete(ctx, backend, func(string) bool { return true }, nil)
		return MsgDeleted{Err: err}
	}
}

func (m *Model) addMember(name string) tea.Cmd {
	backend, ctx := m.backend, m.ctx
	return func() tea.Msg {
		added, err := form.AddMember(ctx, backend, name)
		return MsgMemberAdded{Name: added, Err: err}
	}
}

// syncTable recomputes the visible projection and the table rows.
func (m *Model) syncTable() {
	m.visible = m.view.Visible()
	rows := make([]table.Row, len(m.visible))
	for i, t := range m.visible {
		rows[i] = table.Row{
			t.TaskName,
			cell(t.Status),
			cell(t.Tags),
			cell(t.TaskType),
			cell(t.Assignee),
			view.FormatDate(t.Delivery),
			view.FormatTime(t.UpdatedAt),
		}
	}
	m.table.SetRows(rows)
	if m.table.Cursor() >= len(rows) && len(rows) > 0 {
		m.table.SetCursor(len(rows) - 1)
	}
}

func cell(value string) string {
	if value == "" {
		return view.EmptyCell
	}
	return value
}

func (m *Model) selected() (models.Task, bool) {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.visible) {
		return models.Task{}, false
	}
	return m.visible[i], true
}

// Update handles messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table.SetColumns(columns(msg.Width))
		if h := msg.Height - 10; h > 3 {
			m.table.SetHeight(h)
		}
		return m, nil

	case MsgTasksLoaded:
		m.view.FinishRefresh(msg.Tasks, msg.Err)
		m.err = msg.Err
		m.syncTable()
		if m.mode == ModeNormal && m.view.ResolveDeepLink() {
			m.openForm(m.view.Modal.Task)
		}
		return m, nil

	case MsgMembersLoaded:
		if msg.Err != nil {
			m.err = msg.Err
			return m, nil
		}
		m.members = msg.Names
		return m, nil

	case MsgSaved:
		m.saving = false
		if errors.Is(msg.Err, form.ErrBusy) {
			return m, nil
		}
		if msg.Err != nil {
			m.err = msg.Err
			return m, nil
		}
		m.status = "Saved " + msg.Task.TaskName
		m.err = nil
		m.closeForm()
		return m, m.refresh()

	case MsgDeleted:
		m.deletingTask = false
		if errors.Is(msg.Err, form.ErrBusy) {
			return m, nil
		}
		m.pending = nil
		if msg.Err != nil {
			m.err = msg.Err
			m.mode = m.confirmFrom
			return m, nil
		}
		m.status = "Task deleted"
		m.err = nil
		m.closeForm()
		return m, m.refresh()

	case MsgMemberAdded:
		m.mode = ModeForm
		if msg.Err != nil {
			m.err = msg.Err
			return m, nil
		}
		if p := m.focusedPicker(); p != nil {
			p.Adopt(msg.Name)
		}
		if !slices.Contains(m.members, msg.Name) {
			m.members = append(m.members, msg.Name)
		}
		return m, nil
	}

	return m, nil
}

// handleKey handles key events.
func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.mode {
	case ModeSearch:
		return m.handleSearchMode(msg)
	case ModeForm:
		return m.handleFormMode(msg)
	case ModeAddMember:
		return m.handleAddMemberMode(msg)
	case ModeConfirmDelete:
		return m.handleConfirmMode(msg)
	default:
		return m.handleNormalMode(msg)
	}
}

// handleNormalMode handles keys over the table.
func (m *Model) handleNormalMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Search):
		m.mode = ModeSearch
		return m, m.search.Focus()

	case key.Matches(msg, m.keys.CycleStatus):
		m.view.Criteria.Status = cycle(m.view.Criteria.Status, models.TaskStatuses)
	case key.Matches(msg, m.keys.CycleTag):
		m.view.Criteria.Tag = cycle(m.view.Criteria.Tag, models.TaskTags)
	case key.Matches(msg, m.keys.CycleType):
		m.view.Criteria.Type = cycle(m.view.Criteria.Type, models.TaskTypes)

	case key.Matches(msg, m.keys.SortName):
		m.view.ToggleSort(models.FieldTaskName)
	case key.Matches(msg, m.keys.SortStatus):
		m.view.ToggleSort(models.FieldStatus)
	case key.Matches(msg, m.keys.SortAssignee):
		m.view.ToggleSort(models.FieldAssignee)
	case key.Matches(msg, m.keys.SortDelivery):
		m.view.ToggleSort(models.FieldDelivery)
	case key.Matches(msg, m.keys.SortUpdated):
		m.view.ToggleSort(models.FieldUpdatedAt)

	case key.Matches(msg, m.keys.New):
		m.view.OpenNew()
		m.openForm(nil)
		return m, m.focusField()

	case key.Matches(msg, m.keys.Edit):
		if task, ok := m.selected(); ok {
			m.view.OpenEdit(task)
			m.openForm(&task)
			return m, m.focusField()
		}
		return m, nil

	case key.Matches(msg, m.keys.Delete):
		if task, ok := m.selected(); ok {
			m.pending = form.New(&task, m.members)
			m.confirmFrom = ModeNormal
			m.mode = ModeConfirmDelete
		}
		return m, nil

	case key.Matches(msg, m.keys.Refresh):
		return m, m.refresh()

	default:
		var cmd tea.Cmd
		m.table, cmd = m.table.Update(msg)
		return m, cmd
	}

	m.syncTable()
	return m, nil
}

// cycle steps value through All and options, wrapping around.
func cycle(value string, options []string) string {
	all := append([]string{view.All}, options...)
	i := slices.Index(all, value)
	return all[(i+1)%len(all)]
}

func (m *Model) handleSearchMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter", "esc":
		m.mode = ModeNormal
		m.search.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.view.Criteria.Search = m.search.Value()
	m.syncTable()
	return m, cmd
}

func (m *Model) handleConfirmMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.deletingTask {
		return m, nil
	}
	switch {
	case key.Matches(msg, m.keys.Yes):
		if m.pending == nil {
			m.mode = m.confirmFrom
			return m, nil
		}
		return m, m.deleteTask(m.pending)
	case key.Matches(msg, m.keys.No):
		m.pending = nil
		m.mode = m.confirmFrom
	}
	return m, nil
}

func (m *Model) handleAddMemberMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		name := strings.TrimSpace(m.newMember.Value())
		m.newMember.Reset()
		m.newMember.Blur()
		if name == "" {
			m.mode = ModeForm
			return m, nil
		}
		return m, m.addMember(name)
	case "esc":
		m.newMember.Reset()
		m.newMember.Blur()
		m.mode = ModeForm
		return m, nil
	}

	var cmd tea.Cmd
	m.newMember, cmd = m.newMember.Update(msg)
	return m, cmd
}
