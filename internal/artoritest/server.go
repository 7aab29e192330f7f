// Package artoritest is an in-memory artori backend used by the client
// tests and the local dev server. It implements the REST contract the SDK
// consumes: bearer-token auth, the public exam/question surface, and the
// full /admin family, all over in-process maps.
package artoritest

import (
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/brunopinheiroeu/artori-sub001/internal/app/models"
)

// Server wraps a gin engine plus the mutable fixture state behind it.
type Server struct {
	Engine *gin.Engine

	jwtSecret []byte
	started   time.Time

	mu        sync.Mutex
	users     map[string]*userRecord
	userOrder []string
	exams     map[string]*models.Exam
	examOrder []string
	questions map[string]*models.AdminQuestion
	qOrder    []string
	activity  []models.ActivityLogEntry
	settings  models.Settings
	profile   models.AdminProfile
	prefs     models.Preferences

	answersToday int
	nextID       int
}

// userRecord is a models.User plus the credential the API never exposes.
type userRecord struct {
	models.User
	PasswordHash []byte
}

// New builds a seeded server. The engine is ready for httptest.NewServer.
func New() *Server {
	gin.SetMode(gin.TestMode)

	s := &Server{
		Engine:    gin.New(),
		jwtSecret: []byte("artoritest-secret"),
		started:   time.Now(),
		users:     make(map[string]*userRecord),
		exams:     make(map[string]*models.Exam),
		questions: make(map[string]*models.AdminQuestion),
		settings: models.Settings{
			PlatformName:   "artori",
			SupportEmail:   "support@artori.app",
			SignupsEnabled: true,
		},
		profile: models.AdminProfile{
			Name:     "Ada Admin",
			Email:    "admin@artori.app",
			Timezone: "UTC",
		},
		prefs: models.Preferences{
			Theme:              "light",
			Language:           "en",
			EmailNotifications: true,
		},
	}
	s.seed()
	s.routes()
	return s
}

func (s *Server) routes() {
	e := s.Engine
	e.GET("/healthz", s.handleHealthz)

	v1 := e.Group("/api/v1")
	{
		v1.POST("/auth/login", s.handleLogin)
		v1.POST("/auth/signup", s.handleSignup)

		authed := v1.Group("", s.requireAuth())
		{
			authed.GET("/auth/me", s.handleMe)
			authed.POST("/users/me/exam", s.handleSelectExam)
			authed.GET("/exams/:examId/subjects/:subjectId/questions", s.handleQuestions)
			authed.POST("/questions/:id/answer", s.handleAnswer)
		}

		v1.GET("/exams", s.handleExams)
		v1.GET("/exams/:examId", s.handleExam)

		admin := v1.Group("/admin", s.requireAuth(), s.requireAdmin())
		{
			admin.GET("/stats", s.handleStats)
			admin.GET("/activity", s.handleActivity)
			admin.GET("/system-health", s.handleSystemHealth)

			admin.GET("/users", s.handleListUsers)
			admin.POST("/users", s.handleCreateUser)
			admin.PUT("/users/:id", s.handleUpdateUser)
			admin.DELETE("/users/:id", s.handleDeleteUser)
			admin.POST("/users/:id/reset-password", s.handleResetPassword)

			admin.GET("/exams", s.handleAdminExams)
			admin.POST("/exams", s.handleCreateExam)
			admin.PUT("/exams/:id", s.handleUpdateExam)
			admin.DELETE("/exams/:id", s.handleDeleteExam)

			admin.GET("/questions", s.handleAdminQuestions)
			admin.POST("/questions", s.handleCreateQuestion)
			admin.PUT("/questions/:id", s.handleUpdateQuestion)
			admin.DELETE("/questions/:id", s.handleDeleteQuestion)

			admin.GET("/analytics", s.handleAnalytics)
			admin.GET("/settings", s.handleGetSettings)
			admin.PUT("/settings", s.handleUpdateSettings)
			admin.GET("/profile", s.handleGetProfile)
			admin.PUT("/profile", s.handleUpdateProfile)
			admin.GET("/preferences", s.handleGetPreferences)
			admin.PUT("/preferences", s.handleUpdatePreferences)
		}
	}
}

// User returns a copy of a seeded user by email, for test assertions.
func (s *Server) User(email string) (models.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, rec := range s.users {
		if rec.Email == email {
			return rec.User, true
		}
	}
	return models.User{}, false
}

// QuestionAuthority returns the authoritative record for a question id.
func (s *Server) QuestionAuthority(id string) (models.AdminQuestion, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	q, ok := s.questions[id]
	if !ok {
		return models.AdminQuestion{}, false
	}
	return *q, true
}
