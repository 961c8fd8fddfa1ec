package models

import (
	"time"

	"gorm.io/datatypes"
)

type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusAccepted   TaskStatus = "accepted"
	TaskStatusTodo       TaskStatus = "todo"
	TaskStatusInProgress TaskStatus = "in-progress"
	TaskStatusDone       TaskStatus = "done"
)

// Task belongs to a Project. FormSchema and SubmissionData are stored as
// uninterpreted JSON documents.
type Task struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	Title          string         `gorm:"size:255;not null" json:"title"`
	Description    *string        `gorm:"type:text" json:"description"`
	Type           *string        `gorm:"size:100" json:"type"`
	FormSchema     datatypes.JSON `json:"formSchema"`
	ProjectID      uint           `gorm:"not null;index" json:"projectId"`
	AssignedTo     *uint          `gorm:"column:assigned_to;index" json:"assignedTo"`
	Status         TaskStatus     `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	SubmissionData datatypes.JSON `json:"submissionData"`
	CreatedAt      time.Time      `json:"createdAt"`
	UpdatedAt      time.Time      `json:"updatedAt"`

	Project  *Project `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	Assignee *User    `gorm:"foreignKey:AssignedTo" json:"assignee,omitempty"`
}
