package dto

import (
	"github.com/yukikurage/design-tracker/internal/models"
)

// TaskDTO represents a task in API responses. Timestamps are rendered with a
// fixed millisecond layout.
type TaskDTO struct {
	ID          string `json:"_id"`
	TaskName    string `json:"taskName"`
	Description string `json:"description"`
	Status      string `json:"status"`
	TaskType    string `json:"taskType"`
	Tags        string `json:"tags"`
	Assignee    string `json:"assignee"`
	ReceivedBy  string `json:"receivedBy"`
	Delivery    string `json:"delivery"`
	AttachFile  string `json:"attachFile"`
	ProductDoc  string `json:"productDoc"`
	CreatedAt   string `json:"createdAt"`
	UpdatedAt   string `json:"updatedAt"`
}

// ToTaskDTO converts models.Task to TaskDTO
func ToTaskDTO(task *models.Task) TaskDTO {
	return TaskDTO{
		ID:          task.ID,
		TaskName:    task.TaskName,
		Description: task.Description,
		Status:      task.Status,
		TaskType:    task.TaskType,
		Tags:        task.Tags,
		Assignee:    task.Assignee,
		ReceivedBy:  task.ReceivedBy,
		Delivery:    task.Delivery,
		AttachFile:  task.AttachFile,
		ProductDoc:  task.ProductDoc,
		CreatedAt:   task.StringField(models.FieldCreatedAt),
		UpdatedAt:   task.StringField(models.FieldUpdatedAt),
	}
}

// ToTaskDTOs converts a slice of tasks, never returning nil
func ToTaskDTOs(tasks []models.Task) []TaskDTO {
	dtos := make([]TaskDTO, len(tasks))
	for i := range tasks {
		dtos[i] = ToTaskDTO(&tasks[i])
	}
	return dtos
}

// DeleteResponse is returned by a successful delete
type DeleteResponse struct {
	Success bool `json:"success"`
}
