package tui

import (
	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/yukikurage/design-tracker/internal/form"
	"github.com/yukikurage/design-tracker/internal/models"
)

type fieldKind int

const (
	fieldText fieldKind = iota
	fieldChoice
	fieldPicker
)

type formField struct {
	name    string
	label   string
	kind    fieldKind
	options []string
	input   textinput.Model
}

func newFormFields(d form.Draft, mode cursor.Mode) []formField {
	text := func(name, label, value, placeholder string) formField {
		in := textinput.New()
		in.Cursor.SetMode(mode)
		in.Prompt = ""
		in.Placeholder = placeholder
		in.SetValue(value)
		return formField{name: name, label: label, kind: fieldText, input: in}
	}
	return []formField{
		text(models.FieldTaskName, "Task", d.TaskName, "Task name"),
		text(models.FieldDescription, "Description", d.Description, ""),
		{name: models.FieldStatus, label: "Status", kind: fieldChoice, options: models.TaskStatuses},
		{name: models.FieldTaskType, label: "Type", kind: fieldChoice, options: models.TaskTypes},
		{name: models.FieldTags, label: "Tag", kind: fieldChoice, options: models.TaskTags},
		{name: models.FieldAssignee, label: "Assignee", kind: fieldPicker},
		{name: models.FieldReceivedBy, label: "Received by", kind: fieldPicker},
		text(models.FieldDelivery, "Delivery", d.Delivery, "YYYY-MM-DD"),
		text(models.FieldAttachFile, "Design file", d.AttachFile, "Link"),
		text(models.FieldProductDoc, "Product doc", d.ProductDoc, "Link"),
	}
}

// draftValue points at the draft field backing a text or choice field.
func draftValue(d *form.Draft, name string) *string {
	switch name {
	case models.FieldTaskName:
		return &d.TaskName
	case models.FieldDescription:
		return &d.Description
	case models.FieldStatus:
		return &d.Status
	case models.FieldTaskType:
		return &d.TaskType
	case models.FieldTags:
		return &d.Tags
	case models.FieldDelivery:
		return &d.Delivery
	case models.FieldAttachFile:
		return &d.AttachFile
	case models.FieldProductDoc:
		return &d.ProductDoc
	}
	return nil
}

// openForm shows the form for task, or for a new task when task is nil.
func (m *Model) openForm(task *models.Task) {
	m.form = form.New(task, m.members)
	m.fields = newFormFields(m.form.Draft, m.cursorMode)
	m.focus = 0
	m.pickerCursor = 0
	m.err = nil
	m.mode = ModeForm
}

func (m *Model) closeForm() {
	m.form = nil
	m.fields = nil
	m.view.Close()
	m.mode = ModeNormal
}

// focusField focuses the current field's input, blurring the rest.
func (m *Model) focusField() tea.Cmd {
	var cmd tea.Cmd
	for i := range m.fields {
		if i == m.focus && m.fields[i].kind == fieldText {
			cmd = m.fields[i].input.Focus()
		} else {
			m.fields[i].input.Blur()
		}
	}
	m.pickerCursor = 0
	return cmd
}

func (m *Model) focusedPicker() *form.Picker {
	if m.form == nil || m.focus >= len(m.fields) {
		return nil
	}
	switch m.fields[m.focus].name {
	case models.FieldAssignee:
		return m.form.Assignee
	case models.FieldReceivedBy:
		return m.form.ReceivedBy
	}
	return nil
}

// syncDraft copies text inputs into the draft.
func (m *Model) syncDraft() {
	for _, f := range m.fields {
		if f.kind == fieldText {
			*draftValue(&m.form.Draft, f.name) = f.input.Value()
		}
	}
}

func (m *Model) handleFormMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.saving || m.deletingTask {
		return m, nil
	}
	field := &m.fields[m.focus]

	switch {
	case key.Matches(msg, m.keys.Close):
		m.closeForm()
		return m, nil

	case key.Matches(msg, m.keys.Save):
		m.syncDraft()
		if err := m.form.Validate(); err != nil {
			m.err = err
			return m, nil
		}
		return m, m.submit()

	case key.Matches(msg, m.keys.FormDel):
		if m.form.IsNew() {
			return m, nil
		}
		m.pending = m.form
		m.confirmFrom = ModeForm
		m.mode = ModeConfirmDelete
		return m, nil

	case key.Matches(msg, m.keys.NextField):
		m.focus = (m.focus + 1) % len(m.fields)
		return m, m.focusField()

	case key.Matches(msg, m.keys.PrevField):
		m.focus = (m.focus - 1 + len(m.fields)) % len(m.fields)
		return m, m.focusField()
	}

	switch field.kind {
	case fieldChoice:
		value := draftValue(&m.form.Draft, field.name)
		switch {
		case key.Matches(msg, m.keys.Right):
			*value = step(*value, field.options, 1)
		case key.Matches(msg, m.keys.Left):
			*value = step(*value, field.options, -1)
		}
		return m, nil

	case fieldPicker:
		p := m.focusedPicker()
		switch {
		case key.Matches(msg, m.keys.Right):
			if m.pickerCursor < len(p.Known)-1 {
				m.pickerCursor++
			}
		case key.Matches(msg, m.keys.Left):
			if m.pickerCursor > 0 {
				m.pickerCursor--
			}
		case key.Matches(msg, m.keys.Toggle):
			if m.pickerCursor < len(p.Known) {
				p.Toggle(p.Known[m.pickerCursor])
			}
		case key.Matches(msg, m.keys.AddMember):
			m.mode = ModeAddMember
			return m, m.newMember.Focus()
		}
		return m, nil
	}

	var cmd tea.Cmd
	field.input, cmd = field.input.Update(msg)
	return m, cmd
}

// step moves value through options. A value outside options moves to the
// first option.
func step(value string, options []string, delta int) string {
	i := -1
	for j, o := range options {
		if o == value {
			i = j
			break
		}
	}
	if i < 0 {
		return options[0]
	}
	return options[(i+delta+len(options))%len(options)]
}
