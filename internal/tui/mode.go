// Package tui provides the terminal user interface for the design tracker.
package tui

// Mode represents the current UI mode.
type Mode int

const (
	ModeNormal        Mode = iota // Table navigation
	ModeSearch                    // Editing the search string
	ModeForm                      // Task form overlay
	ModeAddMember                 // New member name input inside the form
	ModeConfirmDelete             // Delete confirmation
)

// String returns the string representation of the mode.
func (m Mode) String() string {
	switch m {
	case ModeNormal:
		return "normal"
	case ModeSearch:
		return "search"
	case ModeForm:
		return "form"
	case ModeAddMember:
		return "add_member"
	case ModeConfirmDelete:
		return "confirm_delete"
	default:
		return "unknown"
	}
}
