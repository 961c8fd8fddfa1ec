package models

import "time"

type ProjectStatus string

const (
	ProjectStatusActive    ProjectStatus = "active"
	ProjectStatusInactive  ProjectStatus = "inactive"
	ProjectStatusCompleted ProjectStatus = "completed"
)

type Project struct {
	ID          uint          `gorm:"primaryKey" json:"id"`
	Name        string        `gorm:"size:255;not null" json:"name"`
	Description *string       `gorm:"type:text" json:"description"`
	Status      ProjectStatus `gorm:"type:varchar(20);not null;default:'active'" json:"status"`
	CreatedBy   uint          `gorm:"column:created_by;not null;index" json:"createdBy"`
	CreatedAt   time.Time     `json:"createdAt"`

	Admin        *Admin               `gorm:"foreignKey:CreatedBy" json:"admin,omitempty"`
	Users        []ProjectUser        `gorm:"foreignKey:ProjectID" json:"users,omitempty"`
	Designations []ProjectDesignation `gorm:"foreignKey:ProjectID" json:"-"`
}

// ProjectUser links a User to a Project. DesignationID, when set, must name a
// designation already attached to the same project via ProjectDesignation.
type ProjectUser struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	ProjectID     uint      `gorm:"not null;uniqueIndex:idx_project_user" json:"projectId"`
	UserID        uint      `gorm:"not null;uniqueIndex:idx_project_user;index" json:"userId"`
	DesignationID *uint     `gorm:"index" json:"designationId"`
	AssignedAt    time.Time `gorm:"autoCreateTime" json:"assignedAt"`

	User        *User        `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Designation *Designation `gorm:"foreignKey:DesignationID" json:"designation,omitempty"`
}

type ProjectDesignation struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	ProjectID     uint      `gorm:"not null;uniqueIndex:idx_project_designation" json:"projectId"`
	DesignationID uint      `gorm:"not null;uniqueIndex:idx_project_designation;index" json:"designationId"`
	AssignedAt    time.Time `gorm:"autoCreateTime" json:"assignedAt"`

	Designation *Designation `gorm:"foreignKey:DesignationID" json:"designation,omitempty"`
}
