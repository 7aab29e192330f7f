package api_test

import (
	"context"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brunopinheiroeu/artori-sub001/internal/api"
	"github.com/brunopinheiroeu/artori-sub001/internal/app/models"
	"github.com/brunopinheiroeu/artori-sub001/internal/app/models/dto"
	"github.com/brunopinheiroeu/artori-sub001/internal/artoritest"
	"github.com/brunopinheiroeu/artori-sub001/internal/pkg/apperrors"
	"github.com/brunopinheiroeu/artori-sub001/internal/session"
)

func newTestClient(t *testing.T, opts ...api.Option) (*artoritest.Server, *api.Client) {
	t.Helper()
	backend := artoritest.New()
	srv := httptest.NewServer(backend.Engine)
	t.Cleanup(srv.Close)
	return backend, api.New(srv.URL, opts...)
}

func login(t *testing.T, client *api.Client, email, password string) dto.TokenResponse {
	t.Helper()
	res, err := client.Login(context.Background(), dto.LoginRequest{Email: email, Password: password})
	require.NoError(t, err)
	require.NotEmpty(t, res.AccessToken)
	return res
}

func TestLoginRedirectsByRole(t *testing.T) {
	cases := []struct {
		name     string
		email    string
		password string
		redirect string
	}{
		{"admin", artoritest.SeedAdminEmail, artoritest.SeedAdminPassword, models.RedirectAdmin},
		{"super admin", artoritest.SeedSuperAdminEmail, artoritest.SeedSuperAdminPassword, models.RedirectAdmin},
		{"tutor", artoritest.SeedTutorEmail, artoritest.SeedTutorPassword, models.RedirectTutor},
		{"student with exam", artoritest.SeedStudentEmail, artoritest.SeedStudentPassword, models.RedirectStudent},
		{"student without exam", artoritest.SeedNewStudentEmail, artoritest.SeedNewStudentPassword, models.RedirectSelectExam},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, client := newTestClient(t)
			res := login(t, client, tc.email, tc.password)

			// The login response carries the user, so the redirect needs no
			// follow-up read.
			assert.Equal(t, tc.email, res.User.Email)
			assert.Equal(t, tc.redirect, res.User.RedirectTarget())
			assert.True(t, client.Authenticated())
		})
	}
}

func TestLoginWrongPassword(t *testing.T) {
	_, client := newTestClient(t)

	_, err := client.Login(context.Background(), dto.LoginRequest{
		Email:    artoritest.SeedStudentEmail,
		Password: "wrong",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrAuthentication)
	assert.EqualError(t, err, "Incorrect email or password")
	assert.False(t, client.Authenticated())
}

func TestLoginValidationFieldErrors(t *testing.T) {
	_, client := newTestClient(t)

	_, err := client.Login(context.Background(), dto.LoginRequest{})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	fields := apperrors.FieldErrors(err)
	assert.Contains(t, fields, "email")
	assert.Contains(t, fields, "password")
}

func TestCurrentUserRequiresAuth(t *testing.T) {
	_, client := newTestClient(t)

	_, err := client.CurrentUser(context.Background())
	assert.ErrorIs(t, err, apperrors.ErrAuthentication)
}

func TestLogoutForgetsSessionLocally(t *testing.T) {
	_, client := newTestClient(t)
	login(t, client, artoritest.SeedStudentEmail, artoritest.SeedStudentPassword)

	require.NoError(t, client.Logout())
	assert.False(t, client.Authenticated())

	_, err := client.CurrentUser(context.Background())
	assert.ErrorIs(t, err, apperrors.ErrAuthentication)
}

func TestSessionPersistsAcrossClients(t *testing.T) {
	store, err := session.Open(filepath.Join(t.TempDir(), "session.db"))
	require.NoError(t, err)
	defer store.Close()

	backend := artoritest.New()
	srv := httptest.NewServer(backend.Engine)
	defer srv.Close()

	first := api.New(srv.URL, api.WithSessionStore(store))
	login(t, first, artoritest.SeedStudentEmail, artoritest.SeedStudentPassword)

	// A fresh client over the same store resumes the session.
	second := api.New(srv.URL, api.WithSessionStore(store))
	require.True(t, second.Authenticated())

	usr, err := second.CurrentUser(context.Background())
	require.NoError(t, err)
	assert.Equal(t, artoritest.SeedStudentEmail, usr.Email)

	cached, err := store.CachedUser()
	require.NoError(t, err)
	require.NotNil(t, cached)
	assert.Equal(t, artoritest.SeedStudentEmail, cached.Email)

	require.NoError(t, second.Logout())
	assert.False(t, second.Authenticated())
	token, err := store.Token()
	require.NoError(t, err)
	assert.Empty(t, token)
}

func TestSignup(t *testing.T) {
	_, client := newTestClient(t)

	res, err := client.Signup(context.Background(), dto.SignupRequest{
		Name:     "Nadia New",
		Email:    "nadia@example.com",
		Password: "a-long-password",
	})
	require.NoError(t, err)

	assert.Equal(t, models.RoleStudent, res.User.Role)
	assert.Equal(t, models.RedirectSelectExam, res.User.RedirectTarget())
	assert.True(t, client.Authenticated())
}

func TestSignupDuplicateEmail(t *testing.T) {
	_, client := newTestClient(t)

	_, err := client.Signup(context.Background(), dto.SignupRequest{
		Name:     "Copy Cat",
		Email:    artoritest.SeedStudentEmail,
		Password: "a-long-password",
	})
	assert.ErrorIs(t, err, apperrors.ErrConflict)
}

func TestSelectExam(t *testing.T) {
	store, err := session.Open(filepath.Join(t.TempDir(), "session.db"))
	require.NoError(t, err)
	defer store.Close()

	backend := artoritest.New()
	srv := httptest.NewServer(backend.Engine)
	defer srv.Close()

	client := api.New(srv.URL, api.WithSessionStore(store))
	login(t, client, artoritest.SeedNewStudentEmail, artoritest.SeedNewStudentPassword)

	usr, err := client.SelectExam(context.Background(), artoritest.SeedExamID)
	require.NoError(t, err)
	require.NotNil(t, usr.SelectedExamID)
	assert.Equal(t, artoritest.SeedExamID, *usr.SelectedExamID)
	assert.Equal(t, models.RedirectStudent, usr.RedirectTarget())

	persisted, err := store.SelectedExam()
	require.NoError(t, err)
	assert.Equal(t, artoritest.SeedExamID, persisted)

	_, err = client.SelectExam(context.Background(), "no-such-exam")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestExamCatalog(t *testing.T) {
	_, client := newTestClient(t)
	ctx := context.Background()

	exams, err := client.Exams(ctx)
	require.NoError(t, err)
	require.Len(t, exams, 2)
	assert.Equal(t, artoritest.SeedExamID, exams[0].ID)
	assert.Equal(t, "SAT", exams[0].Name)
	assert.Equal(t, "US", exams[0].Country)

	exam, err := client.Exam(ctx, artoritest.SeedExamID)
	require.NoError(t, err)
	assert.Len(t, exam.Subjects, 2)

	_, err = client.Exam(ctx, "missing")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestQuestionsOmitAnswerKey(t *testing.T) {
	_, client := newTestClient(t)
	login(t, client, artoritest.SeedStudentEmail, artoritest.SeedStudentPassword)

	questions, err := client.Questions(context.Background(), artoritest.SeedExamID, "sat-math")
	require.NoError(t, err)
	require.Len(t, questions, 2)
	for _, q := range questions {
		assert.NotEmpty(t, q.Options)
	}
}

func TestSubmitAnswer(t *testing.T) {
	backend, client := newTestClient(t)
	login(t, client, artoritest.SeedStudentEmail, artoritest.SeedStudentPassword)
	ctx := context.Background()

	authority, ok := backend.QuestionAuthority("q1")
	require.True(t, ok)

	// Answer comparison is case-insensitive.
	res, err := client.SubmitAnswer(ctx, "q1", dto.AnswerRequest{Answer: "b"})
	require.NoError(t, err)
	assert.True(t, res.Correct)
	assert.Equal(t, authority.CorrectAnswer, res.CorrectAnswer)
	assert.Equal(t, authority.Explanation.Summary, res.Explanation.Summary)

	res, err = client.SubmitAnswer(ctx, "q1", dto.AnswerRequest{Answer: "A"})
	require.NoError(t, err)
	assert.False(t, res.Correct)
	assert.Equal(t, "B", res.CorrectAnswer)

	_, err = client.SubmitAnswer(ctx, "missing", dto.AnswerRequest{Answer: "A"})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestAdminEndpointsForbiddenForStudents(t *testing.T) {
	_, client := newTestClient(t)
	login(t, client, artoritest.SeedStudentEmail, artoritest.SeedStudentPassword)

	_, err := client.DashboardStats(context.Background())
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
}

func TestAdminUserListFiltersAndPaginates(t *testing.T) {
	_, client := newTestClient(t)
	login(t, client, artoritest.SeedAdminEmail, artoritest.SeedAdminPassword)
	ctx := context.Background()

	all, err := client.Users(ctx, dto.ListParams{Page: 1, PageSize: 3})
	require.NoError(t, err)
	assert.Len(t, all.Users, 3)
	assert.Equal(t, int64(5), all.Pagination.TotalItems)
	assert.Equal(t, 2, all.Pagination.TotalPages)

	students, err := client.Users(ctx, dto.ListParams{Role: "student"})
	require.NoError(t, err)
	assert.Len(t, students.Users, 2)

	searched, err := client.Users(ctx, dto.ListParams{Search: "tutor"})
	require.NoError(t, err)
	require.Len(t, searched.Users, 1)
	assert.Equal(t, artoritest.SeedTutorEmail, searched.Users[0].Email)
}

func TestAdminExamLifecycle(t *testing.T) {
	_, client := newTestClient(t)
	login(t, client, artoritest.SeedAdminEmail, artoritest.SeedAdminPassword)
	ctx := context.Background()

	created, err := client.CreateExam(ctx, dto.CreateExamRequest{
		ID:      "ielts-2025",
		Name:    "IELTS",
		Country: "UK",
	})
	require.NoError(t, err)
	assert.Equal(t, "ielts-2025", created.ID)

	// New exams appear in the public catalog immediately.
	exams, err := client.Exams(ctx)
	require.NoError(t, err)
	assert.Len(t, exams, 3)

	_, err = client.CreateExam(ctx, dto.CreateExamRequest{ID: "ielts-2025", Name: "dup", Country: "UK"})
	assert.ErrorIs(t, err, apperrors.ErrConflict)

	newName := "IELTS Academic"
	updated, err := client.UpdateExam(ctx, "ielts-2025", dto.UpdateExamRequest{Name: &newName})
	require.NoError(t, err)
	assert.Equal(t, newName, updated.Name)

	require.NoError(t, client.DeleteExam(ctx, "ielts-2025"))
	exams, err = client.Exams(ctx)
	require.NoError(t, err)
	assert.Len(t, exams, 2)
}

func TestHealth(t *testing.T) {
	_, client := newTestClient(t)

	health, err := client.Health(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "ok", health.Status)
}

func TestNetworkErrorClassification(t *testing.T) {
	backend := artoritest.New()
	srv := httptest.NewServer(backend.Engine)
	client := api.New(srv.URL)
	srv.Close()

	_, err := client.Health(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrNetwork)
	assert.True(t, apperrors.Recoverable(err))
}
