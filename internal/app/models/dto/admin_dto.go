package dto

import "github.com/brunopinheiroeu/artori-sub001/internal/app/models"

// UserListResponse is the paginated admin user list.
type UserListResponse struct {
	Users      []models.User  `json:"users"`
	Pagination PaginationInfo `json:"pagination"`
}

// CreateUserRequest is the body of POST /admin/users.
type CreateUserRequest struct {
	Name     string      `json:"name"`
	Email    string      `json:"email"`
	Password string      `json:"password"`
	Role     models.Role `json:"role"`
}

// UpdateUserRequest is the body of PUT /admin/users/{id}. Nil fields are
// left unchanged.
type UpdateUserRequest struct {
	Name     *string      `json:"name,omitempty"`
	Email    *string      `json:"email,omitempty"`
	Role     *models.Role `json:"role,omitempty"`
	IsActive *bool        `json:"is_active,omitempty"`
}

// ResetPasswordRequest is the body of POST /admin/users/{id}/reset-password.
type ResetPasswordRequest struct {
	NewPassword string `json:"new_password"`
}

// ExamListResponse is the paginated admin exam list.
type ExamListResponse struct {
	Exams      []models.Exam  `json:"exams"`
	Pagination PaginationInfo `json:"pagination"`
}

// CreateExamRequest is the body of POST /admin/exams.
type CreateExamRequest struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Country     string           `json:"country"`
	Description string           `json:"description"`
	Subjects    []models.Subject `json:"subjects,omitempty"`
}

// UpdateExamRequest is the body of PUT /admin/exams/{id}.
type UpdateExamRequest struct {
	Name        *string           `json:"name,omitempty"`
	Country     *string           `json:"country,omitempty"`
	Description *string           `json:"description,omitempty"`
	Subjects    *[]models.Subject `json:"subjects,omitempty"`
}

// QuestionListResponse is the paginated admin question list; entries carry
// the correct answer and explanation.
type QuestionListResponse struct {
	Questions  []models.AdminQuestion `json:"questions"`
	Pagination PaginationInfo         `json:"pagination"`
}

// CreateQuestionRequest is the body of POST /admin/questions.
type CreateQuestionRequest struct {
	SubjectID     string             `json:"subject_id"`
	Question      string             `json:"question"`
	Options       []models.Option    `json:"options"`
	CorrectAnswer string             `json:"correct_answer"`
	Explanation   models.Explanation `json:"explanation"`
}

// UpdateQuestionRequest is the body of PUT /admin/questions/{id}.
type UpdateQuestionRequest struct {
	Question      *string             `json:"question,omitempty"`
	Options       *[]models.Option    `json:"options,omitempty"`
	CorrectAnswer *string             `json:"correct_answer,omitempty"`
	Explanation   *models.Explanation `json:"explanation,omitempty"`
}

// ActivityLogResponse is the paginated admin activity feed.
type ActivityLogResponse struct {
	Entries    []models.ActivityLogEntry `json:"entries"`
	Pagination PaginationInfo            `json:"pagination"`
}

// UpdateProfileRequest is the body of PUT /admin/profile.
type UpdateProfileRequest struct {
	Name     *string `json:"name,omitempty"`
	Timezone *string `json:"timezone,omitempty"`
}
