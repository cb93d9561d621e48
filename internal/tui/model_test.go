package tui

import (
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/design-tracker/internal/client"
	"github.com/yukikurage/design-tracker/internal/logging"
	"github.com/yukikurage/design-tracker/internal/models"
	"github.com/yukikurage/design-tracker/internal/view"
)

type fakeBackend struct {
	tasks   []models.Task
	members []string
	deleted []string
}

func (f *fakeBackend) ListTasks(context.Context) ([]models.Task, error) {
	return append([]models.Task(nil), f.tasks...), nil
}

func (f *fakeBackend) CreateTask(_ context.Context, patch models.TaskPatch) (*models.Task, error) {
	task := models.Task{ID: "new", UpdatedAt: time.Now()}
	patch.Apply(&task)
	f.tasks = append(f.tasks, task)
	return &task, nil
}

func (f *fakeBackend) UpdateTask(_ context.Context, id string, patch models.TaskPatch) (*models.Task, error) {
	for i := range f.tasks {
		if f.tasks[i].ID == id {
			patch.Apply(&f.tasks[i])
			return &f.tasks[i], nil
		}
	}
	return nil, &client.Error{Status: http.StatusNotFound}
}

func (f *fakeBackend) DeleteTask(_ context.Context, id string) error {
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeBackend) ListMembers(context.Context) ([]string, error) {
	return f.members, nil
}

func (f *fakeBackend) AddMember(_ context.Context, name string) (string, error) {
	for _, m := range f.members {
		if m == name {
			return "", &client.Error{Status: http.StatusConflict}
		}
	}
	f.members = append(f.members, name)
	return name, nil
}

func newBackend() *fakeBackend {
	base := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	return &fakeBackend{
		tasks: []models.Task{
			{ID: "a", TaskName: "Onboarding", Status: models.TaskStatusInProgress, Tags: models.TagNexus, UpdatedAt: base},
			{ID: "b", TaskName: "Settings", Status: models.TaskStatusNotStarted, Tags: models.TagHalo, UpdatedAt: base.Add(time.Hour)},
		},
		members: []string{"Akash Roy", "Kunal Verma"},
	}
}

// run feeds msg to the model and executes resulting commands until none remain.
func run(t *testing.T, m *Model, msg tea.Msg) {
	t.Helper()
	queue := []tea.Msg{msg}
	for len(queue) > 0 {
		next := queue[0]
		queue = queue[1:]
		_, cmd := m.Update(next)
		queue = append(queue, drain(cmd)...)
	}
}

func drain(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	switch msg := cmd().(type) {
	case tea.BatchMsg:
		var out []tea.Msg
		for _, c := range msg {
			out = append(out, drain(c)...)
		}
		return out
	case Msg:
		return []tea.Msg{msg}
	default:
		// cursor blink and similar component ticks are not needed here
		return nil
	}
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newLoadedModel(t *testing.T, backend *fakeBackend, openID string) *Model {
	m := New(context.Background(), backend, logging.Discard(), openID)
	m.setCursorMode(cursor.CursorStatic)
	for _, msg := range drain(m.Init()) {
		run(t, m, msg)
	}
	return m
}

func TestModel_InitLoadsTasksAndMembers(t *testing.T) {
	m := newLoadedModel(t, newBackend(), "")

	assert.False(t, m.view.Loading)
	require.Len(t, m.visible, 2)
	assert.Equal(t, "Settings", m.visible[0].TaskName, "most recently updated first")
	assert.Equal(t, []string{"Akash Roy", "Kunal Verma"}, m.members)
	assert.Equal(t, ModeNormal, m.mode)
}

func TestModel_FilterAndSortKeys(t *testing.T) {
	m := newLoadedModel(t, newBackend(), "")

	run(t, m, keyRunes("s"))
	assert.Equal(t, models.TaskStatuses[0], m.view.Criteria.Status)
	require.Len(t, m.visible, 1)
	assert.Equal(t, "Settings", m.visible[0].TaskName)

	run(t, m, keyRunes("s"))
	run(t, m, keyRunes("s"))
	run(t, m, keyRunes("s"))
	run(t, m, keyRunes("s"))
	assert.Equal(t, view.All, m.view.Criteria.Status)

	run(t, m, keyRunes("1"))
	assert.Equal(t, models.FieldTaskName, m.view.SortField)
	assert.Equal(t, view.Ascending, m.view.SortDir)
	assert.Equal(t, "Onboarding", m.visible[0].TaskName)
}

func TestModel_Search(t *testing.T) {
	m := newLoadedModel(t, newBackend(), "")

	run(t, m, keyRunes("/"))
	assert.Equal(t, ModeSearch, m.mode)
	run(t, m, keyRunes("onb"))
	require.Len(t, m.visible, 1)
	assert.Equal(t, "Onboarding", m.visible[0].TaskName)

	run(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, ModeNormal, m.mode)
	assert.Equal(t, "onb", m.view.Criteria.Search)
}

func TestModel_CreateTask(t *testing.T) {
	backend := newBackend()
	m := newLoadedModel(t, backend, "")

	run(t, m, keyRunes("n"))
	require.Equal(t, ModeForm, m.mode)
	assert.Empty(t, m.view.Location.Get(view.DeepLinkParam))

	run(t, m, keyRunes("Hero banner"))
	run(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})

	assert.Equal(t, ModeNormal, m.mode)
	require.Len(t, backend.tasks, 3)
	created := backend.tasks[2]
	assert.Equal(t, "Hero banner", created.TaskName)
	assert.Equal(t, models.TaskStatusNotStarted, created.Status)
	assert.Equal(t, models.TaskTypeFeature, created.TaskType)
	assert.Equal(t, models.TagTintin, created.Tags)
	assert.Len(t, m.view.Tasks, 3, "list is re-fetched after save")
}

func TestModel_SaveRejectsBlankName(t *testing.T) {
	backend := newBackend()
	m := newLoadedModel(t, backend, "")

	run(t, m, keyRunes("n"))
	run(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})

	assert.Equal(t, ModeForm, m.mode)
	require.Error(t, m.err)
	assert.Contains(t, m.err.Error(), "taskName")
	assert.Len(t, backend.tasks, 2)
}

func TestModel_EditPickerAndAddMember(t *testing.T) {
	backend := newBackend()
	m := newLoadedModel(t, backend, "")

	run(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, ModeForm, m.mode)
	assert.Equal(t, "b", m.view.Location.Get(view.DeepLinkParam))

	for m.fields[m.focus].name != models.FieldAssignee {
		run(t, m, tea.KeyMsg{Type: tea.KeyTab})
	}
	run(t, m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	assert.Equal(t, "Akash Roy", m.form.Assignee.Value())

	run(t, m, keyRunes("+"))
	require.Equal(t, ModeAddMember, m.mode)
	run(t, m, keyRunes("Puneeth K"))
	run(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.Equal(t, ModeForm, m.mode)
	assert.Equal(t, "Akash Roy, Puneeth K", m.form.Assignee.Value())
	assert.Contains(t, m.members, "Puneeth K")
	assert.Contains(t, backend.members, "Puneeth K")

	run(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})
	assert.Equal(t, ModeNormal, m.mode)
	assert.Empty(t, m.view.Location.Get(view.DeepLinkParam))
	assert.Equal(t, "Akash Roy, Puneeth K", backend.tasks[1].Assignee)
}

func TestModel_DeleteRequiresConfirmation(t *testing.T) {
	backend := newBackend()
	m := newLoadedModel(t, backend, "")

	run(t, m, keyRunes("d"))
	require.Equal(t, ModeConfirmDelete, m.mode)
	assert.True(t, strings.Contains(m.View(), "Delete this task?"))

	run(t, m, keyRunes("n"))
	assert.Equal(t, ModeNormal, m.mode)
	assert.Empty(t, backend.deleted)

	run(t, m, keyRunes("d"))
	run(t, m, keyRunes("y"))
	assert.Equal(t, []string{"b"}, backend.deleted)
	assert.Equal(t, ModeNormal, m.mode)
}

func TestModel_DeepLinkOpensTask(t *testing.T) {
	m := newLoadedModel(t, newBackend(), "a")

	require.Equal(t, ModeForm, m.mode)
	assert.Equal(t, "Onboarding", m.form.Draft.TaskName)

	missing := newLoadedModel(t, newBackend(), "zzz")
	assert.Equal(t, ModeNormal, missing.mode)
}

func TestModel_SaveIsDispatchedOnce(t *testing.T) {
	backend := newBackend()
	m := newLoadedModel(t, backend, "")

	run(t, m, keyRunes("n"))
	run(t, m, keyRunes("Dup"))

	_, first := m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	require.NotNil(t, first)
	assert.True(t, m.saving)
	assert.Contains(t, m.View(), "Saving...")

	_, second := m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	assert.Nil(t, second)

	for _, msg := range drain(first) {
		run(t, m, msg)
	}
	assert.False(t, m.saving)
	assert.Equal(t, ModeNormal, m.mode)
	assert.Len(t, backend.tasks, 3)
}

func TestModel_DeleteIsDispatchedOnce(t *testing.T) {
	backend := newBackend()
	m := newLoadedModel(t, backend, "")

	run(t, m, keyRunes("d"))
	_, first := m.Update(keyRunes("y"))
	require.NotNil(t, first)
	_, second := m.Update(keyRunes("y"))
	assert.Nil(t, second)
	_, cancel := m.Update(keyRunes("n"))
	assert.Nil(t, cancel)
	assert.Equal(t, ModeConfirmDelete, m.mode)

	for _, msg := range drain(first) {
		run(t, m, msg)
	}
	assert.False(t, m.deletingTask)
	assert.Equal(t, []string{"b"}, backend.deleted)
	assert.Equal(t, ModeNormal, m.mode)
}

func TestModel_EditKeepsStoredFreeFormLink(t *testing.T) {
	backend := newBackend()
	backend.tasks[1].AttachFile = "figma.com/file/abc"
	m := newLoadedModel(t, backend, "")

	run(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	for m.fields[m.focus].name != models.FieldStatus {
		run(t, m, tea.KeyMsg{Type: tea.KeyTab})
	}
	run(t, m, tea.KeyMsg{Type: tea.KeyRight})
	run(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})

	assert.NoError(t, m.err)
	assert.Equal(t, ModeNormal, m.mode)
	assert.Equal(t, models.TaskStatusInProgress, backend.tasks[1].Status)
	assert.Equal(t, "figma.com/file/abc", backend.tasks[1].AttachFile)
}

func TestModel_AddExistingMemberSelectsIt(t *testing.T) {
	backend := newBackend()
	m := newLoadedModel(t, backend, "")

	run(t, m, keyRunes("n"))
	for m.fields[m.focus].name != models.FieldReceivedBy {
		run(t, m, tea.KeyMsg{Type: tea.KeyTab})
	}
	run(t, m, keyRunes("+"))
	run(t, m, keyRunes(" Kunal Verma "))
	run(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.NoError(t, m.err)
	assert.Equal(t, ModeForm, m.mode)
	assert.Equal(t, "Kunal Verma", m.form.ReceivedBy.Value())
	assert.Equal(t, []string{"Akash Roy", "Kunal Verma"}, backend.members)
}
