package tui

import "github.com/yukikurage/design-tracker/internal/models"

// Msg is the interface for all tracker TUI messages.
type Msg interface {
	sealed()
}

// MsgTasksLoaded is sent when the task list has been fetched.
type MsgTasksLoaded struct {
	Err   error
	Tasks []models.Task
}

func (MsgTasksLoaded) sealed() {}

// MsgMembersLoaded is sent when the member roster has been fetched.
type MsgMembersLoaded struct {
	Err   error
	Names []string
}

func (MsgMembersLoaded) sealed() {}

// MsgSaved is sent when a form submit finished.
type MsgSaved struct {
	Err  error
	Task *models.Task
}

func (MsgSaved) sealed() {}

// MsgDeleted is sent when a delete finished.
type MsgDeleted struct {
	Err error
}

func (MsgDeleted) sealed() {}

// MsgMemberAdded is sent when a new member name has been registered.
type MsgMemberAdded struct {
	Err  error
	Name string
}

func (MsgMemberAdded) sealed() {}
