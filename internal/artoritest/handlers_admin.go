package artoritest

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/brunopinheiroeu/artori-sub001/internal/app/models"
	"github.com/brunopinheiroeu/artori-sub001/internal/app/models/dto"
)

func (s *Server) handleStats(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stats := models.DashboardStats{
		TotalUsers:     len(s.users),
		TotalExams:     len(s.exams),
		TotalQuestions: len(s.questions),
		AnswersToday:   s.answersToday,
	}
	weekAgo := time.Now().UTC().AddDate(0, 0, -7)
	for _, rec := range s.users {
		if rec.IsActive {
			stats.ActiveUsers++
		}
		if rec.CreatedAt.After(weekAgo) {
			stats.SignupsThisWeek++
		}
	}
	c.JSON(http.StatusOK, stats)
}

func (s *Server) handleActivity(c *gin.Context) {
	page, size, search := parseListParams(c)

	s.mu.Lock()
	defer s.mu.Unlock()

	// Newest first.
	filtered := make([]models.ActivityLogEntry, 0, len(s.activity))
	for i := len(s.activity) - 1; i >= 0; i-- {
		e := s.activity[i]
		if matches(search, e.Actor, e.Action, e.Target) {
			filtered = append(filtered, e)
		}
	}

	start, end := sliceBounds(page, size, len(filtered))
	c.JSON(http.StatusOK, dto.ActivityLogResponse{
		Entries:    filtered[start:end],
		Pagination: paginationInfo(int64(len(filtered)), page, size),
	})
}

func (s *Server) handleSystemHealth(c *gin.Context) {
	c.JSON(http.StatusOK, models.SystemHealth{
		Status:    "ok",
		Database:  "ok",
		Uptime:    time.Since(s.started).Round(time.Second).String(),
		LatencyMS: 1.0,
	})
}

func (s *Server) handleListUsers(c *gin.Context) {
	page, size, search := parseListParams(c)
	roleFilter := c.Query("role")
	statusFilter := c.Query("status")

	s.mu.Lock()
	defer s.mu.Unlock()

	filtered := make([]models.User, 0, len(s.userOrder))
	for _, id := range s.userOrder {
		rec, ok := s.users[id]
		if !ok {
			continue
		}
		if roleFilter != "" && string(rec.Role) != roleFilter {
			continue
		}
		if statusFilter == "active" && !rec.IsActive {
			continue
		}
		if statusFilter == "inactive" && rec.IsActive {
			continue
		}
		if !matches(search, rec.Name, rec.Email) {
			continue
		}
		filtered = append(filtered, rec.User)
	}

	start, end := sliceBounds(page, size, len(filtered))
	c.JSON(http.StatusOK, dto.UserListResponse{
		Users:      filtered[start:end],
		Pagination: paginationInfo(int64(len(filtered)), page, size),
	})
}

func (s *Server) handleCreateUser(c *gin.Context) {
	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortDetail(c, http.StatusBadRequest, "Malformed request body")
		return
	}

	var fields []dto.FieldError
	if req.Name == "" {
		fields = append(fields, dto.FieldError{Field: "name", Message: "name is required"})
	}
	if req.Email == "" {
		fields = append(fields, dto.FieldError{Field: "email", Message: "email is required"})
	}
	if len(req.Password) < 8 {
		fields = append(fields, dto.FieldError{Field: "password", Message: "password must be at least 8 characters"})
	}
	if !req.Role.Valid() {
		fields = append(fields, dto.FieldError{Field: "role", Message: "unknown role"})
	}
	if len(fields) > 0 {
		abortFields(c, fields)
		return
	}

	actor := currentUser(c)
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.users {
		if existing.Email == req.Email {
			abortDetail(c, http.StatusConflict, "Email already registered")
			return
		}
	}

	hash, _ := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.MinCost)
	now := time.Now().UTC()
	rec := &userRecord{
		User: models.User{
			ID:        s.newID("usr"),
			Name:      req.Name,
			Email:     req.Email,
			Role:      req.Role,
			IsActive:  true,
			CreatedAt: now,
			UpdatedAt: now,
		},
		PasswordHash: hash,
	}
	s.users[rec.ID] = rec
	s.userOrder = append(s.userOrder, rec.ID)
	s.record(actor.Email, "user.create", rec.Email)

	c.JSON(http.StatusCreated, rec.User)
}

func (s *Server) handleUpdateUser(c *gin.Context) {
	var req dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortDetail(c, http.StatusBadRequest, "Malformed request body")
		return
	}

	actor := currentUser(c)
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.users[c.Param("id")]
	if !ok {
		abortDetail(c, http.StatusNotFound, "User not found")
		return
	}
	if req.Name != nil {
		rec.Name = *req.Name
	}
	if req.Email != nil {
		rec.Email = *req.Email
	}
	if req.Role != nil {
		if !req.Role.Valid() {
			abortFields(c, []dto.FieldError{{Field: "role", Message: "unknown role"}})
			return
		}
		rec.Role = *req.Role
	}
	if req.IsActive != nil {
		rec.IsActive = *req.IsActive
	}
	rec.UpdatedAt = time.Now().UTC()
	s.record(actor.Email, "user.update", rec.Email)

	c.JSON(http.StatusOK, rec.User)
}

func (s *Server) handleDeleteUser(c *gin.Context) {
	actor := currentUser(c)
	s.mu.Lock()
	defer s.mu.Unlock()

	id := c.Param("id")
	rec, ok := s.users[id]
	if !ok {
		abortDetail(c, http.StatusNotFound, "User not found")
		return
	}
	delete(s.users, id)
	for i, uid := range s.userOrder {
		if uid == id {
			s.userOrder = append(s.userOrder[:i], s.userOrder[i+1:]...)
			break
		}
	}
	s.record(actor.Email, "user.delete", rec.Email)

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "User deleted"})
}

func (s *Server) handleResetPassword(c *gin.Context) {
	var req dto.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil || len(req.NewPassword) < 8 {
		abortFields(c, []dto.FieldError{{Field: "new_password", Message: "password must be at least 8 characters"}})
		return
	}

	actor := currentUser(c)
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.users[c.Param("id")]
	if !ok {
		abortDetail(c, http.StatusNotFound, "User not found")
		return
	}
	hash, _ := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.MinCost)
	rec.PasswordHash = hash
	rec.UpdatedAt = time.Now().UTC()
	s.record(actor.Email, "user.reset_password", rec.Email)

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Password reset"})
}

func (s *Server) handleAdminExams(c *gin.Context) {
	page, size, search := parseListParams(c)

	s.mu.Lock()
	defer s.mu.Unlock()

	filtered := make([]models.Exam, 0, len(s.examOrder))
	for _, id := range s.examOrder {
		exam := s.exams[id]
		if matches(search, exam.Name, exam.Country, exam.Description) {
			filtered = append(filtered, *exam)
		}
	}

	start, end := sliceBounds(page, size, len(filtered))
	c.JSON(http.StatusOK, dto.ExamListResponse{
		Exams:      filtered[start:end],
		Pagination: paginationInfo(int64(len(filtered)), page, size),
	})
}

func (s *Server) handleCreateExam(c *gin.Context) {
	var req dto.CreateExamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortDetail(c, http.StatusBadRequest, "Malformed request body")
		return
	}

	var fields []dto.FieldError
	if req.ID == "" {
		fields = append(fields, dto.FieldError{Field: "id", Message: "id is required"})
	}
	if req.Name == "" {
		fields = append(fields, dto.FieldError{Field: "name", Message: "name is required"})
	}
	if len(fields) > 0 {
		abortFields(c, fields)
		return
	}

	actor := currentUser(c)
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.exams[req.ID]; exists {
		abortDetail(c, http.StatusConflict, "Exam id already exists")
		return
	}
	exam := &models.Exam{
		ID:          req.ID,
		Name:        req.Name,
		Country:     req.Country,
		Description: req.Description,
		Subjects:    req.Subjects,
	}
	if exam.Subjects == nil {
		exam.Subjects = []models.Subject{}
	}
	s.exams[exam.ID] = exam
	s.examOrder = append(s.examOrder, exam.ID)
	s.record(actor.Email, "exam.create", exam.ID)

	c.JSON(http.StatusCreated, *exam)
}

func (s *Server) handleUpdateExam(c *gin.Context) {
	var req dto.UpdateExamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortDetail(c, http.StatusBadRequest, "Malformed request body")
		return
	}

	actor := currentUser(c)
	s.mu.Lock()
	defer s.mu.Unlock()

	exam, ok := s.exams[c.Param("id")]
	if !ok {
		abortDetail(c, http.StatusNotFound, "Exam not found")
		return
	}
	if req.Name != nil {
		exam.Name = *req.Name
	}
	if req.Country != nil {
		exam.Country = *req.Country
	}
	if req.Description != nil {
		exam.Description = *req.Description
	}
	if req.Subjects != nil {
		exam.Subjects = *req.Subjects
	}
	s.record(actor.Email, "exam.update", exam.ID)

	c.JSON(http.StatusOK, *exam)
}

func (s *Server) handleDeleteExam(c *gin.Context) {
	actor := currentUser(c)
	s.mu.Lock()
	defer s.mu.Unlock()

	id := c.Param("id")
	if _, ok := s.exams[id]; !ok {
		abortDetail(c, http.StatusNotFound, "Exam not found")
		return
	}
	delete(s.exams, id)
	for i, eid := range s.examOrder {
		if eid == id {
			s.examOrder = append(s.examOrder[:i], s.examOrder[i+1:]...)
			break
		}
	}
	s.record(actor.Email, "exam.delete", id)

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Exam deleted"})
}

func (s *Server) handleAdminQuestions(c *gin.Context) {
	page, size, search := parseListParams(c)
	subjectFilter := c.Query("subject_id")

	s.mu.Lock()
	defer s.mu.Unlock()

	filtered := make([]models.AdminQuestion, 0, len(s.qOrder))
	for _, id := range s.qOrder {
		q := s.questions[id]
		if subjectFilter != "" && q.SubjectID != subjectFilter {
			continue
		}
		if !matches(search, q.Question.Question, q.SubjectID) {
			continue
		}
		filtered = append(filtered, *q)
	}

	start, end := sliceBounds(page, size, len(filtered))
	c.JSON(http.StatusOK, dto.QuestionListResponse{
		Questions:  filtered[start:end],
		Pagination: paginationInfo(int64(len(filtered)), page, size),
	})
}

func (s *Server) handleCreateQuestion(c *gin.Context) {
	var req dto.CreateQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortDetail(c, http.StatusBadRequest, "Malformed request body")
		return
	}

	var fields []dto.FieldError
	if req.SubjectID == "" {
		fields = append(fields, dto.FieldError{Field: "subject_id", Message: "subject_id is required"})
	}
	if req.Question == "" {
		fields = append(fields, dto.FieldError{Field: "question", Message: "question is required"})
	}
	if len(req.Options) < 2 {
		fields = append(fields, dto.FieldError{Field: "options", Message: "at least two options are required"})
	}
	if req.CorrectAnswer == "" {
		fields = append(fields, dto.FieldError{Field: "correct_answer", Message: "correct_answer is required"})
	}
	if len(fields) > 0 {
		abortFields(c, fields)
		return
	}

	actor := currentUser(c)
	s.mu.Lock()
	defer s.mu.Unlock()

	q := &models.AdminQuestion{
		Question: models.Question{
			ID:        s.newID("q"),
			SubjectID: req.SubjectID,
			Question:  req.Question,
			Options:   req.Options,
		},
		CorrectAnswer: req.CorrectAnswer,
		Explanation:   req.Explanation,
	}
	s.questions[q.ID] = q
	s.qOrder = append(s.qOrder, q.ID)
	s.record(actor.Email, "question.create", q.ID)

	c.JSON(http.StatusCreated, *q)
}

func (s *Server) handleUpdateQuestion(c *gin.Context) {
	var req dto.UpdateQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortDetail(c, http.StatusBadRequest, "Malformed request body")
		return
	}

	actor := currentUser(c)
	s.mu.Lock()
	defer s.mu.Unlock()

	q, ok := s.questions[c.Param("id")]
	if !ok {
		abortDetail(c, http.StatusNotFound, "Question not found")
		return
	}
	if req.Question != nil {
		q.Question.Question = *req.Question
	}
	if req.Options != nil {
		q.Options = *req.Options
	}
	if req.CorrectAnswer != nil {
		q.CorrectAnswer = *req.CorrectAnswer
	}
	if req.Explanation != nil {
		q.Explanation = *req.Explanation
	}
	s.record(actor.Email, "question.update", q.ID)

	c.JSON(http.StatusOK, *q)
}

func (s *Server) handleDeleteQuestion(c *gin.Context) {
	actor := currentUser(c)
	s.mu.Lock()
	defer s.mu.Unlock()

	id := c.Param("id")
	if _, ok := s.questions[id]; !ok {
		abortDetail(c, http.StatusNotFound, "Question not found")
		return
	}
	delete(s.questions, id)
	for i, qid := range s.qOrder {
		if qid == id {
			s.qOrder = append(s.qOrder[:i], s.qOrder[i+1:]...)
			break
		}
	}
	s.record(actor.Email, "question.delete", id)

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Question deleted"})
}

func (s *Server) handleAnalytics(c *gin.Context) {
	window := c.DefaultQuery("window", "7d")

	s.mu.Lock()
	defer s.mu.Unlock()

	report := models.AnalyticsReport{
		Window:       window,
		AnswersTotal: s.answersToday,
	}
	for _, rec := range s.users {
		if rec.IsActive {
			report.ActiveUsers++
		}
	}
	if s.answersToday > 0 {
		report.AnswersAccuracy = 0.5
	}
	if len(s.examOrder) > 0 {
		report.TopExamID = s.examOrder[0]
	}
	c.JSON(http.StatusOK, report)
}

func (s *Server) handleGetSettings(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c.JSON(http.StatusOK, s.settings)
}

func (s *Server) handleUpdateSettings(c *gin.Context) {
	var req models.Settings
	if err := c.ShouldBindJSON(&req); err != nil {
		abortDetail(c, http.StatusBadRequest, "Malformed request body")
		return
	}
	if req.PlatformName == "" {
		abortFields(c, []dto.FieldError{{Field: "platform_name", Message: "platform_name is required"}})
		return
	}

	actor := currentUser(c)
	s.mu.Lock()
	defer s.mu.Unlock()

	s.settings = req
	s.record(actor.Email, "settings.update", "")
	c.JSON(http.StatusOK, s.settings)
}

func (s *Server) handleGetProfile(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c.JSON(http.StatusOK, s.profile)
}

func (s *Server) handleUpdateProfile(c *gin.Context) {
	var req dto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortDetail(c, http.StatusBadRequest, "Malformed request body")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if req.Name != nil {
		s.profile.Name = *req.Name
	}
	if req.Timezone != nil {
		s.profile.Timezone = *req.Timezone
	}
	c.JSON(http.StatusOK, s.profile)
}

func (s *Server) handleGetPreferences(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c.JSON(http.StatusOK, s.prefs)
}

func (s *Server) handleUpdatePreferences(c *gin.Context) {
	var req models.Preferences
	if err := c.ShouldBindJSON(&req); err != nil {
		abortDetail(c, http.StatusBadRequest, "Malformed request body")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.prefs = req
	c.JSON(http.StatusOK, s.prefs)
}
