package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ZaighumCheema47/klap-closing-app/internal/domain/enum"
)

// User roles. There is no per-permission RBAC here: managers can do
// everything, staff run closings for their home branch.
const (
	RoleManager = "manager"
	RoleStaff   = "staff"
)

// User represents an operator who can log in and run closings
type User struct {
	ID         uuid.UUID   `gorm:"type:uuid;primary_key" json:"id"`
	Name       string      `gorm:"size:255;not null" json:"name"`
	Email      string      `gorm:"size:255;unique;not null" json:"email"`
	Password   string      `gorm:"size:255" json:"-"`
	Role       string      `gorm:"size:50;default:'staff'" json:"role"`
	HomeBranch enum.Branch `gorm:"size:20" json:"home_branch,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID before creating a new user
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the User model
func (User) TableName() string {
	return "users"
}

// IsManager reports whether the user holds the manager role.
func (u *User) IsManager() bool {
	return u.Role == RoleManager
}
