package artoritest

import (
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/brunopinheiroeu/artori-sub001/internal/app/models"
)

// Seed credentials, shared with the client tests.
const (
	SeedAdminEmail    = "admin@artori.app"
	SeedAdminPassword = "admin-pass-1"

	SeedTutorEmail    = "tutor@artori.app"
	SeedTutorPassword = "tutor-pass-1"

	SeedStudentEmail    = "student@artori.app"
	SeedStudentPassword = "student-pass-1"

	SeedNewStudentEmail    = "newbie@artori.app"
	SeedNewStudentPassword = "newbie-pass-1"

	SeedSuperAdminEmail    = "root@artori.app"
	SeedSuperAdminPassword = "root-pass-1"
)

// SeedExamID is the exam present in the public catalog at startup.
const SeedExamID = "sat-2025"

func (s *Server) seed() {
	now := time.Now().UTC()

	sat := &models.Exam{
		ID:          SeedExamID,
		Name:        "SAT",
		Country:     "US",
		Description: "Scholastic Assessment Test preparation track",
		Subjects: []models.Subject{
			{ID: "sat-math", Name: "Math", Description: "Algebra, geometry and data analysis"},
			{ID: "sat-reading", Name: "Reading", Description: "Evidence-based reading and writing"},
		},
	}
	enem := &models.Exam{
		ID:          "enem-2025",
		Name:        "ENEM",
		Country:     "BR",
		Description: "Exame Nacional do Ensino Medio preparation track",
		Subjects: []models.Subject{
			{ID: "enem-math", Name: "Matematica", Description: "Matematica e suas tecnologias"},
		},
	}
	s.exams[sat.ID] = sat
	s.exams[enem.ID] = enem
	s.examOrder = []string{sat.ID, enem.ID}

	questions := []*models.AdminQuestion{
		{
			Question: models.Question{
				ID:        "q1",
				SubjectID: "sat-math",
				Question:  "If 2x + 3 = 11, what is x?",
				Options: []models.Option{
					{ID: "A", Text: "3"},
					{ID: "B", Text: "4"},
					{ID: "C", Text: "5"},
					{ID: "D", Text: "7"},
				},
			},
			CorrectAnswer: "B",
			Explanation: models.Explanation{
				Summary: "Subtract 3 from both sides, then divide by 2.",
				Steps:   []string{"2x + 3 = 11", "2x = 8", "x = 4"},
			},
		},
		{
			Question: models.Question{
				ID:        "q2",
				SubjectID: "sat-math",
				Question:  "What is the slope of the line y = 5x - 2?",
				Options: []models.Option{
					{ID: "A", Text: "-2"},
					{ID: "B", Text: "2"},
					{ID: "C", Text: "5"},
					{ID: "D", Text: "1/5"},
				},
			},
			CorrectAnswer: "C",
			Explanation: models.Explanation{
				Summary: "In y = mx + b form, m is the slope.",
			},
		},
		{
			Question: models.Question{
				ID:        "q3",
				SubjectID: "sat-reading",
				Question:  "A word that modifies a noun is called a(n):",
				Options: []models.Option{
					{ID: "A", Text: "adverb"},
					{ID: "B", Text: "adjective"},
					{ID: "C", Text: "pronoun"},
					{ID: "D", Text: "conjunction"},
				},
			},
			CorrectAnswer: "B",
			Explanation: models.Explanation{
				Summary: "Adjectives modify nouns; adverbs modify verbs.",
			},
		},
	}
	for _, q := range questions {
		s.questions[q.ID] = q
		s.qOrder = append(s.qOrder, q.ID)
	}

	selected := SeedExamID
	seedUsers := []struct {
		name     string
		email    string
		password string
		role     models.Role
		examID   *string
	}{
		{"Ada Admin", SeedAdminEmail, SeedAdminPassword, models.RoleAdmin, nil},
		{"Root Admin", SeedSuperAdminEmail, SeedSuperAdminPassword, models.RoleSuperAdmin, nil},
		{"Tomas Tutor", SeedTutorEmail, SeedTutorPassword, models.RoleTutor, nil},
		{"Selma Student", SeedStudentEmail, SeedStudentPassword, models.RoleStudent, &selected},
		{"Noah Newbie", SeedNewStudentEmail, SeedNewStudentPassword, models.RoleStudent, nil},
	}
	for _, u := range seedUsers {
		id := s.newID("usr")
		// MinCost keeps the seed fast; these hashes guard nothing real.
		hash, _ := bcrypt.GenerateFromPassword([]byte(u.password), bcrypt.MinCost)
		s.users[id] = &userRecord{
			User: models.User{
				ID:             id,
				Name:           u.name,
				Email:          u.email,
				Role:           u.role,
				SelectedExamID: u.examID,
				IsActive:       true,
				CreatedAt:      now,
				UpdatedAt:      now,
			},
			PasswordHash: hash,
		}
		s.userOrder = append(s.userOrder, id)
	}
}

func (s *Server) newID(prefix string) string {
	s.nextID++
	return fmt.Sprintf("%s-%d", prefix, s.nextID)
}
