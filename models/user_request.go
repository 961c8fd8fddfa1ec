package models

import "time"

type RequestType string

const (
	RequestTypeFirstName RequestType = "firstName"
	RequestTypeLastName  RequestType = "lastName"
	RequestTypeEmail     RequestType = "email"
	RequestTypePassword  RequestType = "password"
)

type RequestStatus string

const (
	RequestStatusPending  RequestStatus = "pending"
	RequestStatusApproved RequestStatus = "approved"
	RequestStatusRejected RequestStatus = "rejected"
)

// HiddenRequestValue replaces the requested value of password requests.
const HiddenRequestValue = "[HIDDEN]"

// UserRequest is a user's proposal to change one of their own profile
// fields. AdminID is copied from the user's creator when the request is made.
type UserRequest struct {
	ID             uint          `gorm:"primaryKey" json:"id"`
	UserID         uint          `gorm:"not null;index" json:"userId"`
	AdminID        uint          `gorm:"not null;index" json:"adminId"`
	RequestType    RequestType   `gorm:"type:varchar(20);not null" json:"requestType"`
	CurrentValue   *string       `gorm:"size:255" json:"currentValue"`
	RequestedValue string        `gorm:"size:255;not null" json:"requestedValue"`
	Status         RequestStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	CreatedAt      time.Time     `json:"createdAt"`
	UpdatedAt      time.Time     `json:"updatedAt"`

	User  *User  `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Admin *Admin `gorm:"foreignKey:AdminID" json:"admin,omitempty"`
}

// Column returns the users table column a request type targets.
func (t RequestType) Column() (string, bool) {
	switch t {
	case RequestTypeFirstName:
		return "first_name", true
	case RequestTypeLastName:
		return "last_name", true
	case RequestTypeEmail:
		return "email", true
	case RequestTypePassword:
		return "password", true
	}
	return "", false
}
