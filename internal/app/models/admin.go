package models

import "time"

// DashboardStats are the aggregate counts shown on the admin landing page.
// Any mutation on the underlying resources invalidates these.
type DashboardStats struct {
	TotalUsers      int `json:"total_users"`
	ActiveUsers     int `json:"active_users"`
	TotalExams      int `json:"total_exams"`
	TotalQuestions  int `json:"total_questions"`
	AnswersToday    int `json:"answers_today"`
	SignupsThisWeek int `json:"signups_this_week"`
}

// ActivityLogEntry is one row of the admin activity feed.
type ActivityLogEntry struct {
	ID        string    `json:"id"`
	Actor     string    `json:"actor"`
	Action    string    `json:"action"`
	Target    string    `json:"target,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// SystemHealth is the backend's self-reported status, polled by the admin
// dashboard.
type SystemHealth struct {
	Status    string  `json:"status"`
	Database  string  `json:"database"`
	Uptime    string  `json:"uptime"`
	LatencyMS float64 `json:"latency_ms"`
}

// AnalyticsReport summarizes platform usage over a window.
type AnalyticsReport struct {
	Window          string  `json:"window"`
	ActiveUsers     int     `json:"active_users"`
	AnswersAccuracy float64 `json:"answers_accuracy"`
	AnswersTotal    int     `json:"answers_total"`
	TopExamID       string  `json:"top_exam_id,omitempty"`
}

// Settings is the platform-wide configuration editable by admins.
type Settings struct {
	PlatformName       string `json:"platform_name"`
	SupportEmail       string `json:"support_email"`
	SignupsEnabled     bool   `json:"signups_enabled"`
	MaintenanceMessage string `json:"maintenance_message,omitempty"`
}

// AdminProfile is the signed-in admin's own editable profile.
type AdminProfile struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Timezone string `json:"timezone"`
}

// Preferences are per-admin UI preferences.
type Preferences struct {
	Theme              string `json:"theme"`
	Language           string `json:"language"`
	EmailNotifications bool   `json:"email_notifications"`
}
