package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/yukikurage/design-tracker/internal/form"
	"github.com/yukikurage/design-tracker/internal/models"
	"github.com/yukikurage/design-tracker/internal/view"
)

var columnTitles = []string{"Task", "Status", "Tag", "Type", "Assignee", "Delivery", "Updated"}

// columns sizes the table to width; zero uses fixed defaults.
func columns(width int) []table.Column {
	widths := []int{30, 12, 8, 12, 24, 13, 13}
	if width > 0 {
		used := 0
		for _, w := range widths[1:] {
			used += w + 2
		}
		if name := width - used - 6; name > 12 {
			widths[0] = name
		}
	}

	cols := make([]table.Column, len(columnTitles))
	for i, title := range columnTitles {
		cols[i] = table.Column{Title: title, Width: widths[i]}
	}
	return cols
}

// View renders the TUI.
func (m *Model) View() string {
	var b strings.Builder

	b.WriteString(m.styles.Title.Render("Design Tracker"))
	b.WriteString("\n")

	switch m.mode {
	case ModeForm, ModeAddMember:
		b.WriteString(m.viewForm())
	case ModeConfirmDelete:
		b.WriteString(m.viewConfirm())
	default:
		b.WriteString(m.viewTable())
	}

	if m.err != nil {
		b.WriteString("\n")
		b.WriteString(m.styles.Error.Render("Error: " + m.err.Error()))
	} else if m.status != "" && m.mode == ModeNormal {
		b.WriteString("\n")
		b.WriteString(m.styles.Status.Render(m.status))
	}

	return m.styles.App.Render(b.String())
}

func (m *Model) viewTable() string {
	var b strings.Builder

	c := m.view.Criteria
	arrow := "↓"
	if m.view.SortDir == view.Ascending {
		arrow = "↑"
	}
	b.WriteString(m.styles.Filters.Render(fmt.Sprintf(
		"Status: %s  Tag: %s  Type: %s  Sort: %s %s",
		c.Status, c.Tag, c.Type, m.view.SortField, arrow,
	)))
	b.WriteString("\n")

	if m.mode == ModeSearch || c.Search != "" {
		b.WriteString(m.search.View())
		b.WriteString("\n")
	}

	if m.view.Loading {
		b.WriteString(m.styles.Loading.Render("Loading tasks..."))
		b.WriteString("\n")
	}
	b.WriteString(m.table.View())
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("%d of %d tasks", len(m.visible), len(m.view.Tasks)))
	b.WriteString("\n")
	b.WriteString(m.styles.Help.Render(m.help.ShortHelpView(m.keys.ShortHelp())))
	return b.String()
}

func (m *Model) viewForm() string {
	if m.form == nil {
		return ""
	}

	var b strings.Builder
	title := "New task"
	if !m.form.IsNew() {
		title = "Edit task"
	}
	b.WriteString(m.styles.Title.Render(title))
	b.WriteString("\n")

	for i, f := range m.fields {
		label := m.styles.Label.Render(f.label)
		if i == m.focus {
			label = m.styles.Focused.Render(f.label)
		}

		var value string
		switch f.kind {
		case fieldText:
			value = f.input.View()
		case fieldChoice:
			value = "‹ " + *draftValue(&m.form.Draft, f.name) + " ›"
		case fieldPicker:
			value = m.viewPicker(f.name, i == m.focus)
		}
		b.WriteString(label + " " + value + "\n")
	}

	if m.mode == ModeAddMember {
		b.WriteString("\n" + m.newMember.View() + "\n")
	}

	switch {
	case m.saving:
		b.WriteString(m.styles.Loading.Render("Saving..."))
	case m.deletingTask:
		b.WriteString(m.styles.Loading.Render("Deleting..."))
	default:
		b.WriteString(m.styles.Help.Render(m.help.ShortHelpView(m.keys.FormHelp())))
	}
	return m.styles.Dialog.Render(b.String())
}

func (m *Model) viewPicker(name string, focused bool) string {
	p := m.form.Assignee
	if name == models.FieldReceivedBy {
		p = m.form.ReceivedBy
	}
	if len(p.Known) == 0 {
		return m.styles.Unselected.Render("no members, press + to add")
	}

	parts := make([]string, len(p.Known))
	for i, member := range p.Known {
		mark, style := "[ ]", m.styles.Unselected
		if p.IsSelected(member) {
			mark, style = "[x]", m.styles.Selected
		}
		text := mark + " " + member
		if focused && i == m.pickerCursor {
			text = "›" + text
		}
		parts[i] = style.Render(text)
	}
	return strings.Join(parts, "  ")
}

func (m *Model) viewConfirm() string {
	name := ""
	if m.pending != nil {
		name = m.pending.Draft.TaskName
	}
	body := fmt.Sprintf("%s\n\n%s\n\n[y] yes  [n] no", form.DeleteConfirmation, name)
	if m.deletingTask {
		body += "\n" + m.styles.Loading.Render("Deleting...")
	}
	return m.styles.Dialog.Render(body)
}
