package model

import "time"

// Role is the closed set of account roles. A missing role is treated as
// patient everywhere a role check happens.
type Role string

const (
	RolePatient Role = "patient"
	RoleAdmin   Role = "admin"
)

func (r Role) Valid() bool {
	return r == RolePatient || r == RoleAdmin
}

type User struct {
	Email     string    `json:"email" bson:"email" validate:"required,email"`
	Name      string    `json:"name,omitempty" bson:"name,omitempty" validate:"omitempty,min=2,max=100"`
	Role      Role      `json:"role,omitempty" bson:"role,omitempty" validate:"omitempty,oneof=patient admin"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at" validate:"omitempty"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
