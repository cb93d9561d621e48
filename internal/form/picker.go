package form

import (
	"context"
	"errors"
	"slices"
	"strings"

	"github.com/yukikurage/design-tracker/internal/client"
	"github.com/yukikurage/design-tracker/internal/models"
)

// ErrNameRequired is returned when adding a blank member name.
var ErrNameRequired = errors.New("form: member name is required")

// MemberAdder adds a name to the roster.
type MemberAdder interface {
	AddMember(ctx context.Context, name string) (string, error)
}

// Picker edits a multi-name field as an ordered set of names.
type Picker struct {
	Selected []string
	Known    []string
}

func NewPicker(joined string, known []string) *Picker {
	return &Picker{
		Selected: models.ParseNames(joined),
		Known:    slices.Clone(known),
	}
}

func (p *Picker) IsSelected(name string) bool {
	return slices.Contains(p.Selected, name)
}

// Toggle adds name to the selection or removes it.
func (p *Picker) Toggle(name string) {
	if i := slices.Index(p.Selected, name); i >= 0 {
		p.Selected = slices.Delete(p.Selected, i, i+1)
		return
	}
	p.Selected = append(p.Selected, name)
}

// Value is the stored form of the selection.
func (p *Picker) Value() string {
	return models.JoinNames(p.Selected)
}

// AddMember registers name on the roster and returns it trimmed. A name that
// already exists on the roster counts as added.
func AddMember(ctx context.Context, adder MemberAdder, name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ErrNameRequired
	}
	if _, err := adder.AddMember(ctx, name); err != nil && !errors.Is(err, client.ErrConflict) {
		return "", err
	}
	return name, nil
}

// AddNew registers a new member and selects it. Known is extended locally
// without re-fetching the roster.
func (p *Picker) AddNew(ctx context.Context, adder MemberAdder, name string) error {
	added, err := AddMember(ctx, adder, name)
	if err != nil {
		return err
	}
	p.Adopt(added)
	return nil
}

// Adopt selects name and adds it to Known when missing.
func (p *Picker) Adopt(name string) {
	if !p.IsSelected(name) {
		p.Selected = append(p.Selected, name)
	}
	if !slices.Contains(p.Known, name) {
		p.Known = append(p.Known, name)
	}
}
