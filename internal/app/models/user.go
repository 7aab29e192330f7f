// Package models defines the wire records exchanged with the artori backend.
package models

import "time"

// Role is the access level assigned to a user account.
type Role string

const (
	RoleStudent    Role = "student"
	RoleTutor      Role = "tutor"
	RoleAdmin      Role = "admin"
	RoleSuperAdmin Role = "super_admin"
)

// Post-login destinations, keyed off the user's role.
const (
	RedirectAdmin      = "/admin"
	RedirectTutor      = "/tutor"
	RedirectStudent    = "/student"
	RedirectSelectExam = "/select-exam"
)

// Valid reports whether the role is one the backend issues.
func (r Role) Valid() bool {
	switch r {
	case RoleStudent, RoleTutor, RoleAdmin, RoleSuperAdmin:
		return true
	}
	return false
}

// User is the identity record returned by the auth and admin endpoints.
type User struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	Role           Role      `json:"role"`
	SelectedExamID *string   `json:"selected_exam_id,omitempty"`
	IsActive       bool      `json:"is_active"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// RedirectTarget resolves the post-login destination deterministically:
// admins land in the admin area, tutors in the tutor area, students on their
// dashboard once an exam is selected and in the selection flow otherwise.
func (u User) RedirectTarget() string {
	switch u.Role {
	case RoleAdmin, RoleSuperAdmin:
		return RedirectAdmin
	case RoleTutor:
		return RedirectTutor
	}
	if u.SelectedExamID != nil && *u.SelectedExamID != "" {
		return RedirectStudent
	}
	return RedirectSelectExam
}
