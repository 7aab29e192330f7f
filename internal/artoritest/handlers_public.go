package artoritest

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/brunopinheiroeu/artori-sub001/internal/app/models"
	"github.com/brunopinheiroeu/artori-sub001/internal/app/models/dto"
)

func (s *Server) handleHealthz(c *gin.Context) {
	c.JSON(http.StatusOK, dto.HealthResponse{Status: "ok", Version: "test"})
}

func (s *Server) handleLogin(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortDetail(c, http.StatusBadRequest, "Malformed request body")
		return
	}

	var fields []dto.FieldError
	if req.Email == "" {
		fields = append(fields, dto.FieldError{Field: "email", Message: "email is required"})
	}
	if req.Password == "" {
		fields = append(fields, dto.FieldError{Field: "password", Message: "password is required"})
	}
	if len(fields) > 0 {
		abortFields(c, fields)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var rec *userRecord
	for _, candidate := range s.users {
		if strings.EqualFold(candidate.Email, req.Email) {
			rec = candidate
			break
		}
	}
	if rec == nil || bcrypt.CompareHashAndPassword(rec.PasswordHash, []byte(req.Password)) != nil {
		abortDetail(c, http.StatusUnauthorized, "Incorrect email or password")
		return
	}
	if !rec.IsActive {
		abortDetail(c, http.StatusUnauthorized, "Account is disabled")
		return
	}

	token, err := s.issueToken(rec.ID, rec.Role)
	if err != nil {
		abortDetail(c, http.StatusInternalServerError, "Failed to issue token")
		return
	}
	s.record(rec.Email, "login", "")

	c.JSON(http.StatusOK, dto.TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
		User:        rec.User,
	})
}

func (s *Server) handleSignup(c *gin.Context) {
	var req dto.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortDetail(c, http.StatusBadRequest, "Malformed request body")
		return
	}

	var fields []dto.FieldError
	if req.Name == "" {
		fields = append(fields, dto.FieldError{Field: "name", Message: "name is required"})
	}
	if !strings.Contains(req.Email, "@") {
		fields = append(fields, dto.FieldError{Field: "email", Message: "a valid email is required"})
	}
	if len(req.Password) < 8 {
		fields = append(fields, dto.FieldError{Field: "password", Message: "password must be at least 8 characters"})
	}
	if len(fields) > 0 {
		abortFields(c, fields)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.settings.SignupsEnabled {
		abortDetail(c, http.StatusForbidden, "Signups are currently disabled")
		return
	}
	for _, existing := range s.users {
		if strings.EqualFold(existing.Email, req.Email) {
			abortDetail(c, http.StatusConflict, "Email already registered")
			return
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.MinCost)
	if err != nil {
		abortDetail(c, http.StatusInternalServerError, "Failed to hash password")
		return
	}

	now := time.Now().UTC()
	rec := &userRecord{
		User: models.User{
			ID:        s.newID("usr"),
			Name:      req.Name,
			Email:     req.Email,
			Role:      models.RoleStudent,
			IsActive:  true,
			CreatedAt: now,
			UpdatedAt: now,
		},
		PasswordHash: hash,
	}
	s.users[rec.ID] = rec
	s.userOrder = append(s.userOrder, rec.ID)
	s.record(rec.Email, "signup", "")

	token, err := s.issueToken(rec.ID, rec.Role)
	if err != nil {
		abortDetail(c, http.StatusInternalServerError, "Failed to issue token")
		return
	}
	c.JSON(http.StatusCreated, dto.TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
		User:        rec.User,
	})
}

func (s *Server) handleMe(c *gin.Context) {
	rec := currentUser(c)
	s.mu.Lock()
	usr := rec.User
	s.mu.Unlock()
	c.JSON(http.StatusOK, usr)
}

func (s *Server) handleSelectExam(c *gin.Context) {
	var req dto.SelectExamRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.ExamID == "" {
		abortFields(c, []dto.FieldError{{Field: "exam_id", Message: "exam_id is required"}})
		return
	}

	rec := currentUser(c)
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.exams[req.ExamID]; !ok {
		abortDetail(c, http.StatusNotFound, "Exam not found")
		return
	}
	examID := req.ExamID
	rec.SelectedExamID = &examID
	rec.UpdatedAt = time.Now().UTC()
	c.JSON(http.StatusOK, rec.User)
}

func (s *Server) handleExams(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Exam, 0, len(s.examOrder))
	for _, id := range s.examOrder {
		out = append(out, *s.exams[id])
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) handleExam(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	exam, ok := s.exams[c.Param("examId")]
	if !ok {
		abortDetail(c, http.StatusNotFound, "Exam not found")
		return
	}
	c.JSON(http.StatusOK, *exam)
}

func (s *Server) handleQuestions(c *gin.Context) {
	examID := c.Param("examId")
	subjectID := c.Param("subjectId")

	s.mu.Lock()
	defer s.mu.Unlock()

	exam, ok := s.exams[examID]
	if !ok {
		abortDetail(c, http.StatusNotFound, "Exam not found")
		return
	}
	subjectKnown := false
	for _, sub := range exam.Subjects {
		if sub.ID == subjectID {
			subjectKnown = true
			break
		}
	}
	if !subjectKnown {
		abortDetail(c, http.StatusNotFound, "Subject not found")
		return
	}

	// Student surface: strip the authority fields.
	out := make([]models.Question, 0)
	for _, id := range s.qOrder {
		q := s.questions[id]
		if q.SubjectID == subjectID {
			out = append(out, q.Question)
		}
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) handleAnswer(c *gin.Context) {
	var req dto.AnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Answer == "" {
		abortFields(c, []dto.FieldError{{Field: "answer", Message: "answer is required"}})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	q, ok := s.questions[c.Param("id")]
	if !ok {
		abortDetail(c, http.StatusNotFound, "Question not found")
		return
	}
	s.answersToday++

	c.JSON(http.StatusOK, models.AnswerResult{
		Correct:       strings.EqualFold(req.Answer, q.CorrectAnswer),
		CorrectAnswer: q.CorrectAnswer,
		Explanation:   q.Explanation,
	})
}
