package models

import (
	"time"
)

// Admin is a tenant owner. Admins create users and own projects.
type Admin struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	FirstName string    `gorm:"size:100;not null" json:"firstName"`
	LastName  string    `gorm:"size:100;not null" json:"lastName"`
	Email     string    `gorm:"size:191;not null;uniqueIndex" json:"email"`
	Password  string    `gorm:"size:255;not null" json:"-"` // bcrypt hash, never serialized
	CreatedAt time.Time `json:"createdAt"`
}

// User is an account created by an Admin.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	FirstName string    `gorm:"size:100;not null" json:"firstName"`
	LastName  string    `gorm:"size:100;not null" json:"lastName"`
	Email     string    `gorm:"size:191;not null;uniqueIndex" json:"email"`
	Password  string    `gorm:"size:255;not null" json:"-"`
	CreatedBy *uint     `gorm:"column:created_by;index" json:"createdBy"`
	CreatedAt time.Time `json:"createdAt"`

	Admin *Admin `gorm:"foreignKey:CreatedBy" json:"admin,omitempty"`
}

// FullName renders the "First Last" form used in membership listings.
func (u User) FullName() string {
	return u.FirstName + " " + u.LastName
}
