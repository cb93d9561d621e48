// Package view derives the visible task table from the last fetched snapshot
// and the current filter, search and sort state.
package view

import (
	"context"
	"net/url"
	"slices"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/yukikurage/design-tracker/internal/models"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// All disables a categorical filter.
const All = "All"

// DeepLinkParam is the query parameter naming the open task.
const DeepLinkParam = "task"

type Direction int

const (
	Descending Direction = iota
	Ascending
)

func (d Direction) String() string {
	if d == Ascending {
		return "asc"
	}
	return "desc"
}

// SortableFields are the columns the table can sort by.
var SortableFields = []string{
	models.FieldTaskName,
	models.FieldStatus,
	models.FieldAssignee,
	models.FieldDelivery,
	models.FieldUpdatedAt,
}

// Criteria selects which tasks are visible. Categorical filters are All or
// one concrete value.
type Criteria struct {
	Search string
	Status string
	Tag    string
	Type   string
}

// NoCriteria lets every task through.
func NoCriteria() Criteria {
	return Criteria{Status: All, Tag: All, Type: All}
}

func (c Criteria) matches(t models.Task, search string) bool {
	if !matchesFilter(c.Status, t.Status) || !matchesFilter(c.Tag, t.Tags) || !matchesFilter(c.Type, t.TaskType) {
		return false
	}
	if search == "" {
		return true
	}
	return strings.Contains(strings.ToLower(t.TaskName), search) ||
		strings.Contains(strings.ToLower(t.Description), search) ||
		strings.Contains(strings.ToLower(t.Assignee), search)
}

func matchesFilter(filter, value string) bool {
	return filter == "" || filter == All || filter == value
}

// Filter returns the tasks matching c in their original order. Categorical
// filters are checked first; search is a case-insensitive substring match on
// name, description or assignee.
func Filter(tasks []models.Task, c Criteria) []models.Task {
	search := strings.ToLower(c.Search)
	out := make([]models.Task, 0, len(tasks))
	for _, t := range tasks {
		if c.matches(t, search) {
			out = append(out, t)
		}
	}
	return out
}

// Sort returns a stably sorted copy of tasks ordered by the string value of
// field, compared with English collation.
func Sort(tasks []models.Task, field string, dir Direction) []models.Task {
	out := slices.Clone(tasks)
	col := collate.New(language.English)
	slices.SortStableFunc(out, func(a, b models.Task) int {
		x, y := a.StringField(field), b.StringField(field)
		if dir == Descending {
			x, y = y, x
		}
		return col.CompareString(x, y)
	})
	return out
}

// Lister fetches the full task list.
type Lister interface {
	ListTasks(ctx context.Context) ([]models.Task, error)
}

// Modal is the form overlay state. A nil Task means a new task.
type Modal struct {
	Open bool
	Task *models.Task
}

// Model is the client-side table state.
type Model struct {
	Tasks     []models.Task
	Loading   bool
	Criteria  Criteria
	SortField string
	SortDir   Direction
	Modal     Modal
	Location  url.Values

	log *logrus.Logger
}

// NewModel returns a model sorted by most recent update with no filters.
func NewModel(log *logrus.Logger) *Model {
	return &Model{
		Criteria:  NoCriteria(),
		SortField: models.FieldUpdatedAt,
		SortDir:   Descending,
		Location:  url.Values{},
		log:       log,
	}
}

// Visible is the filtered and sorted projection of the snapshot.
func (m *Model) Visible() []models.Task {
	return Sort(Filter(m.Tasks, m.Criteria), m.SortField, m.SortDir)
}

// ToggleSort flips the direction for the active field, or switches to field
// in ascending order.
func (m *Model) ToggleSort(field string) {
	if m.SortField == field {
		if m.SortDir == Ascending {
			m.SortDir = Descending
		} else {
			m.SortDir = Ascending
		}
		return
	}
	m.SortField = field
	m.SortDir = Ascending
}

// BeginRefresh marks the table as loading.
func (m *Model) BeginRefresh() {
	m.Loading = true
}

// FinishRefresh replaces the snapshot on success. On failure the previous
// snapshot stays and the error is logged.
func (m *Model) FinishRefresh(tasks []models.Task, err error) {
	m.Loading = false
	if err != nil {
		m.log.WithError(err).Error("failed to fetch tasks")
		return
	}
	m.Tasks = tasks
}

// Refresh re-fetches the entire task list.
func (m *Model) Refresh(ctx context.Context, lister Lister) error {
	m.BeginRefresh()
	tasks, err := lister.ListTasks(ctx)
	m.FinishRefresh(tasks, err)
	return err
}

func (m *Model) OpenNew() {
	m.Modal = Modal{Open: true}
	m.Location.Del(DeepLinkParam)
}

func (m *Model) OpenEdit(task models.Task) {
	m.Modal = Modal{Open: true, Task: &task}
	m.Location.Set(DeepLinkParam, task.ID)
}

func (m *Model) Close() {
	m.Modal = Modal{}
	m.Location.Del(DeepLinkParam)
}

// SetDeepLink records a task id taken from a shared link.
func (m *Model) SetDeepLink(id string) {
	if id == "" {
		m.Location.Del(DeepLinkParam)
		return
	}
	m.Location.Set(DeepLinkParam, id)
}

// ResolveDeepLink opens the linked task once the list has loaded. It reports
// whether a task was opened; an unknown id does nothing.
func (m *Model) ResolveDeepLink() bool {
	id := m.Location.Get(DeepLinkParam)
	if id == "" || m.Loading || m.Modal.Open {
		return false
	}
	for _, t := range m.Tasks {
		if t.ID == id {
			m.OpenEdit(t)
			return true
		}
	}
	return false
}

// Link renders base with the current location query, for sharing.
func (m *Model) Link(base string) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", err
	}
	q := u.Query()
	q.Del(DeepLinkParam)
	if id := m.Location.Get(DeepLinkParam); id != "" {
		q.Set(DeepLinkParam, id)
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}
