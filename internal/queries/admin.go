package queries

import (
	"context"

	"github.com/brunopinheiroeu/artori-sub001/internal/app/models"
	"github.com/brunopinheiroeu/artori-sub001/internal/app/models/dto"
	"github.com/brunopinheiroeu/artori-sub001/internal/query"
)

// DashboardStats is the admin landing-page aggregate. Every resource
// mutation invalidates it, since it counts over all of them.
func (q *Queries) DashboardStats() *query.Query[models.DashboardStats] {
	return &query.Query[models.DashboardStats]{
		Cache:     q.cache,
		Key:       keyAdminStats,
		StaleTime: staleStats,
		Fetch: func(ctx context.Context) (models.DashboardStats, error) {
			return q.api.DashboardStats(ctx)
		},
	}
}

// ActivityLog is the paginated admin audit feed.
func (q *Queries) ActivityLog(params dto.ListParams) *query.Query[dto.ActivityLogResponse] {
	return &query.Query[dto.ActivityLogResponse]{
		Cache:     q.cache,
		Key:       keyAdminActivity.WithParams(params.Query()),
		StaleTime: staleAdminList,
		Fetch: func(ctx context.Context) (dto.ActivityLogResponse, error) {
			return q.api.ActivityLog(ctx, params)
		},
	}
}

// SystemHealth is the backend's self-reported status for the admin
// dashboard.
func (q *Queries) SystemHealth() *query.Query[models.SystemHealth] {
	return &query.Query[models.SystemHealth]{
		Cache:     q.cache,
		Key:       keyAdminHealth,
		StaleTime: staleHealth,
		Retries:   query.NoRetry,
		Fetch: func(ctx context.Context) (models.SystemHealth, error) {
			return q.api.SystemHealth(ctx)
		},
	}
}

// SystemHealthPoller drives the dashboard's 30s health poll.
func (q *Queries) SystemHealthPoller(onResult func(models.SystemHealth, error)) *query.Poller[models.SystemHealth] {
	return &query.Poller[models.SystemHealth]{
		Query:    q.SystemHealth(),
		Interval: query.DefaultPollInterval,
		OnResult: onResult,
	}
}

// Users is the paginated admin account list.
func (q *Queries) Users(params dto.ListParams) *query.Query[dto.UserListResponse] {
	return &query.Query[dto.UserListResponse]{
		Cache:     q.cache,
		Key:       keyAdminUsers.WithParams(params.Query()),
		StaleTime: staleAdminList,
		Fetch: func(ctx context.Context) (dto.UserListResponse, error) {
			return q.api.Users(ctx, params)
		},
	}
}

// CreateUser invalidates every user page and the dashboard counts.
func (q *Queries) CreateUser() *query.Mutation[dto.CreateUserRequest, models.User] {
	return &query.Mutation[dto.CreateUserRequest, models.User]{
		Cache:       q.cache,
		Notifier:    q.notifier,
		Invalidates: []query.Key{keyAdminUsers, keyAdminStats},
		Fn: func(ctx context.Context, req dto.CreateUserRequest) (models.User, error) {
			return q.api.CreateUser(ctx, req)
		},
	}
}

// UpdateUserArgs pairs a target account with its partial update.
type UpdateUserArgs struct {
	UserID string
	Req    dto.UpdateUserRequest
}

// UpdateUser invalidates every user page and the dashboard counts.
func (q *Queries) UpdateUser() *query.Mutation[UpdateUserArgs, models.User] {
	return &query.Mutation[UpdateUserArgs, models.User]{
		Cache:       q.cache,
		Notifier:    q.notifier,
		Invalidates: []query.Key{keyAdminUsers, keyAdminStats},
		Fn: func(ctx context.Context, arg UpdateUserArgs) (models.User, error) {
			return q.api.UpdateUser(ctx, arg.UserID, arg.Req)
		},
	}
}

// DeleteUser invalidates every user page and the dashboard counts.
func (q *Queries) DeleteUser() *query.Mutation[string, struct{}] {
	return &query.Mutation[string, struct{}]{
		Cache:       q.cache,
		Notifier:    q.notifier,
		Invalidates: []query.Key{keyAdminUsers, keyAdminStats},
		Fn: func(ctx context.Context, userID string) (struct{}, error) {
			return struct{}{}, q.api.DeleteUser(ctx, userID)
		},
	}
}

// ResetPasswordArgs pairs a target account with its new password.
type ResetPasswordArgs struct {
	UserID      string
	NewPassword string
}

// ResetUserPassword invalidates the user pages; counts are untouched but
// the list shows password-age columns in the admin panel.
func (q *Queries) ResetUserPassword() *query.Mutation[ResetPasswordArgs, struct{}] {
	return &query.Mutation[ResetPasswordArgs, struct{}]{
		Cache:       q.cache,
		Notifier:    q.notifier,
		Invalidates: []query.Key{keyAdminUsers},
		Fn: func(ctx context.Context, arg ResetPasswordArgs) (struct{}, error) {
			return struct{}{}, q.api.ResetUserPassword(ctx, arg.UserID, dto.ResetPasswordRequest{NewPassword: arg.NewPassword})
		},
	}
}

// AdminExams is the paginated admin exam list.
func (q *Queries) AdminExams(params dto.ListParams) *query.Query[dto.ExamListResponse] {
	return &query.Query[dto.ExamListResponse]{
		Cache:     q.cache,
		Key:       keyAdminExams.WithParams(params.Query()),
		StaleTime: staleStats,
		Fetch: func(ctx context.Context) (dto.ExamListResponse, error) {
			return q.api.AdminExams(ctx, params)
		},
	}
}

// examInvalidations covers the admin list, the public catalog mirror, and
// the dashboard counts.
func examInvalidations() []query.Key {
	return []query.Key{keyAdminExams, keyExams, keyAdminStats}
}

// CreateExam publishes an exam; the public catalog refetches on next read.
func (q *Queries) CreateExam() *query.Mutation[dto.CreateExamRequest, models.Exam] {
	return &query.Mutation[dto.CreateExamRequest, models.Exam]{
		Cache:       q.cache,
		Notifier:    q.notifier,
		Invalidates: examInvalidations(),
		Fn: func(ctx context.Context, req dto.CreateExamRequest) (models.Exam, error) {
			return q.api.CreateExam(ctx, req)
		},
	}
}

// UpdateExamArgs pairs a target exam with its partial update.
type UpdateExamArgs struct {
	ExamID string
	Req    dto.UpdateExamRequest
}

// UpdateExam invalidates both the admin and public views of the exam.
func (q *Queries) UpdateExam() *query.Mutation[UpdateExamArgs, models.Exam] {
	return &query.Mutation[UpdateExamArgs, models.Exam]{
		Cache:       q.cache,
		Notifier:    q.notifier,
		Invalidates: examInvalidations(),
		Fn: func(ctx context.Context, arg UpdateExamArgs) (models.Exam, error) {
			return q.api.UpdateExam(ctx, arg.ExamID, arg.Req)
		},
	}
}

// DeleteExam invalidates both the admin and public views of the catalog.
func (q *Queries) DeleteExam() *query.Mutation[string, struct{}] {
	return &query.Mutation[string, struct{}]{
		Cache:       q.cache,
		Notifier:    q.notifier,
		Invalidates: examInvalidations(),
		Fn: func(ctx context.Context, examID string) (struct{}, error) {
			return struct{}{}, q.api.DeleteExam(ctx, examID)
		},
	}
}

// AdminQuestions is the paginated admin question list.
func (q *Queries) AdminQuestions(params dto.ListParams) *query.Query[dto.QuestionListResponse] {
	return &query.Query[dto.QuestionListResponse]{
		Cache:     q.cache,
		Key:       keyAdminQuestions.WithParams(params.Query()),
		StaleTime: staleStats,
		Fetch: func(ctx context.Context) (dto.QuestionListResponse, error) {
			return q.api.AdminQuestions(ctx, params)
		},
	}
}

func questionInvalidations() []query.Key {
	return []query.Key{keyAdminQuestions, keyQuestions, keyAdminStats}
}

// CreateQuestion invalidates the admin pool, the student-facing question
// lists, and the counts.
func (q *Queries) CreateQuestion() *query.Mutation[dto.CreateQuestionRequest, models.AdminQuestion] {
	return &query.Mutation[dto.CreateQuestionRequest, models.AdminQuestion]{
		Cache:       q.cache,
		Notifier:    q.notifier,
		Invalidates: questionInvalidations(),
		Fn: func(ctx context.Context, req dto.CreateQuestionRequest) (models.AdminQuestion, error) {
			return q.api.CreateQuestion(ctx, req)
		},
	}
}

// UpdateQuestionArgs pairs a target question with its partial update.
type UpdateQuestionArgs struct {
	QuestionID string
	Req        dto.UpdateQuestionRequest
}

// UpdateQuestion invalidates the admin pool and student-facing lists.
func (q *Queries) UpdateQuestion() *query.Mutation[UpdateQuestionArgs, models.AdminQuestion] {
	return &query.Mutation[UpdateQuestionArgs, models.AdminQuestion]{
		Cache:       q.cache,
		Notifier:    q.notifier,
		Invalidates: questionInvalidations(),
		Fn: func(ctx context.Context, arg UpdateQuestionArgs) (models.AdminQuestion, error) {
			return q.api.UpdateQuestion(ctx, arg.QuestionID, arg.Req)
		},
	}
}

// DeleteQuestion invalidates the admin pool and student-facing lists.
func (q *Queries) DeleteQuestion() *query.Mutation[string, struct{}] {
	return &query.Mutation[string, struct{}]{
		Cache:       q.cache,
		Notifier:    q.notifier,
		Invalidates: questionInvalidations(),
		Fn: func(ctx context.Context, questionID string) (struct{}, error) {
			return struct{}{}, q.api.DeleteQuestion(ctx, questionID)
		},
	}
}

// Analytics summarizes usage for a reporting window.
func (q *Queries) Analytics(window string) *query.Query[models.AnalyticsReport] {
	return &query.Query[models.AnalyticsReport]{
		Cache:     q.cache,
		Key:       keyAdminAnalytics.With(window),
		StaleTime: staleAnalytics,
		Fetch: func(ctx context.Context) (models.AnalyticsReport, error) {
			return q.api.Analytics(ctx, window)
		},
	}
}

// Settings is the platform configuration.
func (q *Queries) Settings() *query.Query[models.Settings] {
	return &query.Query[models.Settings]{
		Cache:     q.cache,
		Key:       keyAdminSettings,
		StaleTime: staleSettings,
		Fetch: func(ctx context.Context) (models.Settings, error) {
			return q.api.Settings(ctx)
		},
	}
}

// UpdateSettings invalidates only its own entry.
func (q *Queries) UpdateSettings() *query.Mutation[models.Settings, models.Settings] {
	return &query.Mutation[models.Settings, models.Settings]{
		Cache:       q.cache,
		Notifier:    q.notifier,
		Invalidates: []query.Key{keyAdminSettings},
		Fn: func(ctx context.Context, req models.Settings) (models.Settings, error) {
			return q.api.UpdateSettings(ctx, req)
		},
	}
}

// Profile is the signed-in admin's profile.
func (q *Queries) Profile() *query.Query[models.AdminProfile] {
	return &query.Query[models.AdminProfile]{
		Cache:     q.cache,
		Key:       keyAdminProfile,
		StaleTime: staleSettings,
		Fetch: func(ctx context.Context) (models.AdminProfile, error) {
			return q.api.Profile(ctx)
		},
	}
}

// UpdateProfile invalidates only its own entry.
func (q *Queries) UpdateProfile() *query.Mutation[dto.UpdateProfileRequest, models.AdminProfile] {
	return &query.Mutation[dto.UpdateProfileRequest, models.AdminProfile]{
		Cache:       q.cache,
		Notifier:    q.notifier,
		Invalidates: []query.Key{keyAdminProfile},
		Fn: func(ctx context.Context, req dto.UpdateProfileRequest) (models.AdminProfile, error) {
			return q.api.UpdateProfile(ctx, req)
		},
	}
}

// AdminPreferences is the signed-in admin's UI preferences.
func (q *Queries) AdminPreferences() *query.Query[models.Preferences] {
	return &query.Query[models.Preferences]{
		Cache:     q.cache,
		Key:       keyAdminPrefs,
		StaleTime: staleSettings,
		Fetch: func(ctx context.Context) (models.Preferences, error) {
			return q.api.Preferences(ctx)
		},
	}
}

// UpdatePreferences invalidates only its own entry.
func (q *Queries) UpdatePreferences() *query.Mutation[models.Preferences, models.Preferences] {
	return &query.Mutation[models.Preferences, models.Preferences]{
		Cache:       q.cache,
		Notifier:    q.notifier,
		Invalidates: []query.Key{keyAdminPrefs},
		Fn: func(ctx context.Context, req models.Preferences) (models.Preferences, error) {
			return q.api.UpdatePreferences(ctx, req)
		},
	}
}
