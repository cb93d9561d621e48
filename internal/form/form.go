// Package form holds the task edit form: a local draft, member pickers and
// the submit and delete workflows.
package form

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/yukikurage/design-tracker/internal/models"
)

// DeleteConfirmation is the prompt shown before deleting a task.
const DeleteConfirmation = "Delete this task?"

var (
	// ErrBusy is returned while the same action is already in flight
	ErrBusy = errors.New("form: request already in flight")
	// ErrNotSaved is returned when deleting a task that has no identifier
	ErrNotSaved = errors.New("form: task has not been saved")
	// ErrNotConfirmed is returned when the delete prompt is declined
	ErrNotConfirmed = errors.New("form: delete not confirmed")
)

// Draft is the editable copy of a task.
type Draft struct {
	ID          string `json:"-"`
	TaskName    string `json:"taskName" validate:"notblank"`
	Description string `json:"description"`
	Status      string `json:"status"`
	TaskType    string `json:"taskType"`
	Tags        string `json:"tags"`
	Delivery    string `json:"delivery" validate:"omitempty,datetime=2006-01-02"`
	AttachFile  string `json:"attachFile"`
	ProductDoc  string `json:"productDoc"`
}

// NewDraft returns the defaults for a new task.
func NewDraft() Draft {
	return Draft{
		Status:   models.TaskStatusNotStarted,
		TaskType: models.TaskTypeFeature,
		Tags:     models.TagTintin,
	}
}

// DraftFromTask copies every editable field of t. Deliveries stored as full
// timestamps are cut to their date.
func DraftFromTask(t models.Task) Draft {
	delivery := t.Delivery
	if ts, err := time.Parse(time.RFC3339, delivery); err == nil {
		delivery = ts.UTC().Format(time.DateOnly)
	}
	return Draft{
		ID:          t.ID,
		TaskName:    t.TaskName,
		Description: t.Description,
		Status:      t.Status,
		TaskType:    t.TaskType,
		Tags:        t.Tags,
		Delivery:    delivery,
		AttachFile:  t.AttachFile,
		ProductDoc:  t.ProductDoc,
	}
}

// Validate checks the draft before it is sent.
func (d Draft) Validate() error {
	return validateStruct(d)
}

// field returns the draft value for a json field name.
func (d Draft) field(name string) string {
	switch name {
	case models.FieldTaskName:
		return d.TaskName
	case models.FieldDescription:
		return d.Description
	case models.FieldStatus:
		return d.Status
	case models.FieldTaskType:
		return d.TaskType
	case models.FieldTags:
		return d.Tags
	case models.FieldDelivery:
		return d.Delivery
	case models.FieldAttachFile:
		return d.AttachFile
	case models.FieldProductDoc:
		return d.ProductDoc
	}
	return ""
}

// API is the subset of the tracker client the form calls.
type API interface {
	CreateTask(ctx context.Context, patch models.TaskPatch) (*models.Task, error)
	UpdateTask(ctx context.Context, id string, patch models.TaskPatch) (*models.Task, error)
	DeleteTask(ctx context.Context, id string) error
}

// Refresher re-fetches the task list after a change. It may be nil.
type Refresher func(ctx context.Context)

// Form is one open task form.
type Form struct {
	Draft      Draft
	Assignee   *Picker
	ReceivedBy *Picker

	// stored is the draft as it was opened
	stored Draft

	mu         sync.Mutex
	submitting bool
	deleting   bool
}

// New opens a form for task, or for a new task when task is nil.
func New(task *models.Task, members []string) *Form {
	if task == nil {
		return &Form{
			Draft:      NewDraft(),
			Assignee:   NewPicker("", members),
			ReceivedBy: NewPicker("", members),
		}
	}
	draft := DraftFromTask(*task)
	return &Form{
		Draft:      draft,
		Assignee:   NewPicker(task.Assignee, members),
		ReceivedBy: NewPicker(task.ReceivedBy, members),
		stored:     draft,
	}
}

// Validate checks the draft. On an existing task, a stored value the user
// has not changed is accepted as it is; taskName is always required.
func (f *Form) Validate() error {
	err := f.Draft.Validate()
	var vErr *ValidationError
	if f.IsNew() || !errors.As(err, &vErr) {
		return err
	}
	for name := range vErr.Fields {
		if name != models.FieldTaskName && f.Draft.field(name) == f.stored.field(name) {
			delete(vErr.Fields, name)
		}
	}
	if len(vErr.Fields) == 0 {
		return nil
	}
	return vErr
}

func (f *Form) IsNew() bool {
	return f.Draft.ID == ""
}

// Patch renders the draft and both pickers as a full patch.
func (f *Form) Patch() models.TaskPatch {
	d := f.Draft
	assignee, receivedBy := f.Assignee.Value(), f.ReceivedBy.Value()
	return models.TaskPatch{
		TaskName:    &d.TaskName,
		Description: &d.Description,
		Status:      &d.Status,
		TaskType:    &d.TaskType,
		Tags:        &d.Tags,
		Assignee:    &assignee,
		ReceivedBy:  &receivedBy,
		Delivery:    &d.Delivery,
		AttachFile:  &d.AttachFile,
		ProductDoc:  &d.ProductDoc,
	}
}

// Submitting reports whether a submit is in flight.
func (f *Form) Submitting() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.submitting
}

// Deleting reports whether a delete is in flight.
func (f *Form) Deleting() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.deleting
}

func (f *Form) begin(flag *bool) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if *flag {
		return false
	}
	*flag = true
	return true
}

func (f *Form) end(flag *bool) {
	f.mu.Lock()
	*flag = false
	f.mu.Unlock()
}

// Submit validates the draft, then updates the task when it has an
// identifier and creates it otherwise. The list is refreshed afterwards.
func (f *Form) Submit(ctx context.Context, api API, refresh Refresher) (*models.Task, error) {
	if !f.begin(&f.submitting) {
		return nil, ErrBusy
	}
	defer f.end(&f.submitting)

	if err := f.Validate(); err != nil {
		return nil, err
	}

	var (
		task *models.Task
		err  error
	)
	if f.IsNew() {
		task, err = api.CreateTask(ctx, f.Patch())
	} else {
		task, err = api.UpdateTask(ctx, f.Draft.ID, f.Patch())
	}
	if err != nil {
		return nil, err
	}

	if refresh != nil {
		refresh(ctx)
	}
	return task, nil
}

// Delete removes the task after confirm accepts DeleteConfirmation, then
// refreshes the list.
func (f *Form) Delete(ctx context.Context, api API, confirm func(prompt string) bool, refresh Refresher) error {
	if f.IsNew() {
		return ErrNotSaved
	}
	if !f.begin(&f.deleting) {
		return ErrBusy
	}
	defer f.end(&f.deleting)

	if !confirm(DeleteConfirmation) {
		return ErrNotConfirmed
	}
	if err := api.DeleteTask(ctx, f.Draft.ID); err != nil {
		return err
	}

	if refresh != nil {
		refresh(ctx)
	}
	return nil
}
