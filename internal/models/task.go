package models

import (
	"time"
)

// Known task statuses. Status is an open string; these are the values the UI offers.
const (
	TaskStatusNotStarted = "Not started"
	TaskStatusInProgress = "In progress"
	TaskStatusInReview   = "In review"
	TaskStatusHandedOver = "Handed-over"
)

// Known task types.
const (
	TaskTypeFeature     = "Feature"
	TaskTypeImprovement = "Improvement"
	TaskTypeFix         = "Fix"
)

// Known tags.
const (
	TagTintin = "Tintin"
	TagNexus  = "Nexus"
	TagHalo   = "Halo"
)

// FallbackTag is stored whenever an update leaves a task without a tag.
const FallbackTag = TagTintin

var (
	TaskStatuses = []string{TaskStatusNotStarted, TaskStatusInProgress, TaskStatusInReview, TaskStatusHandedOver}
	TaskTypes    = []string{TaskTypeFeature, TaskTypeImprovement, TaskTypeFix}
	TaskTags     = []string{TagTintin, TagNexus, TagHalo}
)

// Task is one design-work item.
type Task struct {
	ID          string    `gorm:"primarykey;type:varchar(36)" json:"_id"`
	TaskName    string    `gorm:"not null" json:"taskName"`
	Description string    `gorm:"type:text" json:"description"`
	Status      string    `gorm:"type:varchar(50)" json:"status"`
	TaskType    string    `gorm:"type:varchar(50)" json:"taskType"`
	Tags        string    `gorm:"type:varchar(50)" json:"tags"`
	Assignee    string    `json:"assignee"`
	ReceivedBy  string    `json:"receivedBy"`
	Delivery    string    `gorm:"type:varchar(40)" json:"delivery"`
	AttachFile  string    `gorm:"type:text" json:"attachFile"`
	ProductDoc  string    `gorm:"type:text" json:"productDoc"`
	CreatedAt   time.Time `gorm:"autoCreateTime:false" json:"createdAt"`
	UpdatedAt   time.Time `gorm:"index;autoUpdateTime:false" json:"updatedAt"`
}

// TaskPatch carries the editable task fields of a request body. A nil field
// was not supplied. Identifier and timestamps are not part of a patch.
type TaskPatch struct {
	TaskName    *string `json:"taskName,omitempty"`
	Description *string `json:"description,omitempty"`
	Status      *string `json:"status,omitempty"`
	TaskType    *string `json:"taskType,omitempty"`
	Tags        *string `json:"tags,omitempty"`
	Assignee    *string `json:"assignee,omitempty"`
	ReceivedBy  *string `json:"receivedBy,omitempty"`
	Delivery    *string `json:"delivery,omitempty"`
	AttachFile  *string `json:"attachFile,omitempty"`
	ProductDoc  *string `json:"productDoc,omitempty"`
}

// Field names as they appear on the wire and in document stores.
const (
	FieldTaskName    = "taskName"
	FieldDescription = "description"
	FieldStatus      = "status"
	FieldTaskType    = "taskType"
	FieldTags        = "tags"
	FieldAssignee    = "assignee"
	FieldReceivedBy  = "receivedBy"
	FieldDelivery    = "delivery"
	FieldAttachFile  = "attachFile"
	FieldProductDoc  = "productDoc"
	FieldCreatedAt   = "createdAt"
	FieldUpdatedAt   = "updatedAt"
)

func (p TaskPatch) entries() []struct {
	name  string
	value *string
} {
	return []struct {
		name  string
		value *string
	}{
		{FieldTaskName, p.TaskName},
		{FieldDescription, p.Description},
		{FieldStatus, p.Status},
		{FieldTaskType, p.TaskType},
		{FieldTags, p.Tags},
		{FieldAssignee, p.Assignee},
		{FieldReceivedBy, p.ReceivedBy},
		{FieldDelivery, p.Delivery},
		{FieldAttachFile, p.AttachFile},
		{FieldProductDoc, p.ProductDoc},
	}
}

// Values returns the supplied fields keyed by field name.
func (p TaskPatch) Values() map[string]any {
	values := make(map[string]any)
	for _, e := range p.entries() {
		if e.value != nil {
			values[e.name] = *e.value
		}
	}
	return values
}

// Apply copies the supplied fields onto t.
func (p TaskPatch) Apply(t *Task) {
	set := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	set(&t.TaskName, p.TaskName)
	set(&t.Description, p.Description)
	set(&t.Status, p.Status)
	set(&t.TaskType, p.TaskType)
	set(&t.Tags, p.Tags)
	set(&t.Assignee, p.Assignee)
	set(&t.ReceivedBy, p.ReceivedBy)
	set(&t.Delivery, p.Delivery)
	set(&t.AttachFile, p.AttachFile)
	set(&t.ProductDoc, p.ProductDoc)
}

// PatchFromTask returns a patch that sets every editable field of t.
func PatchFromTask(t Task) TaskPatch {
	return TaskPatch{
		TaskName:    &t.TaskName,
		Description: &t.Description,
		Status:      &t.Status,
		TaskType:    &t.TaskType,
		Tags:        &t.Tags,
		Assignee:    &t.Assignee,
		ReceivedBy:  &t.ReceivedBy,
		Delivery:    &t.Delivery,
		AttachFile:  &t.AttachFile,
		ProductDoc:  &t.ProductDoc,
	}
}

// StringField returns the named field rendered as a string. Unknown fields
// and zero timestamps render as "".
func (t Task) StringField(name string) string {
	switch name {
	case FieldTaskName:
		return t.TaskName
	case FieldDescription:
		return t.Description
	case FieldStatus:
		return t.Status
	case FieldTaskType:
		return t.TaskType
	case FieldTags:
		return t.Tags
	case FieldAssignee:
		return t.Assignee
	case FieldReceivedBy:
		return t.ReceivedBy
	case FieldDelivery:
		return t.Delivery
	case FieldAttachFile:
		return t.AttachFile
	case FieldProductDoc:
		return t.ProductDoc
	case FieldCreatedAt:
		return formatTimestamp(t.CreatedAt)
	case FieldUpdatedAt:
		return formatTimestamp(t.UpdatedAt)
	}
	return ""
}

// TimestampLayout is fixed width so timestamps compare correctly as strings.
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

func formatTimestamp(ts time.Time) string {
	if ts.IsZero() {
		return ""
	}
	return ts.UTC().Format(TimestampLayout)
}
