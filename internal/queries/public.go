package queries

import (
	"context"

	"github.com/brunopinheiroeu/artori-sub001/internal/app/models"
	"github.com/brunopinheiroeu/artori-sub001/internal/app/models/dto"
	"github.com/brunopinheiroeu/artori-sub001/internal/query"
)

// Login authenticates and clears any data cached for the previous session.
// The returned user carries the role, so the caller redirects straight off
// this response.
func (q *Queries) Login(ctx context.Context, req dto.LoginRequest) (dto.TokenResponse, error) {
	res, err := q.api.Login(ctx, req)
	if err != nil {
		q.notifier.Notify(query.LevelError, err.Error())
		return dto.TokenResponse{}, err
	}
	q.cache.Clear()
	return res, nil
}

// Signup registers an account and opens its session.
func (q *Queries) Signup(ctx context.Context, req dto.SignupRequest) (dto.TokenResponse, error) {
	res, err := q.api.Signup(ctx, req)
	if err != nil {
		q.notifier.Notify(query.LevelError, err.Error())
		return dto.TokenResponse{}, err
	}
	q.cache.Clear()
	return res, nil
}

// Logout forgets the session and drops the whole cache so no authenticated
// data survives into an unauthenticated state.
func (q *Queries) Logout() error {
	err := q.api.Logout()
	q.cache.Clear()
	return err
}

// CurrentUser is the auth bootstrap query. It only runs when a usable token
// exists; otherwise Get returns query.ErrDisabled, which callers treat as
// "unauthenticated", not as an error state.
func (q *Queries) CurrentUser() *query.Query[models.User] {
	return &query.Query[models.User]{
		Cache:     q.cache,
		Key:       keyAuthMe,
		StaleTime: staleUser,
		Enabled:   q.tokenUsable,
		Fetch: func(ctx context.Context) (models.User, error) {
			return q.api.CurrentUser(ctx)
		},
	}
}

// Exams is the public exam catalog.
func (q *Queries) Exams() *query.Query[[]models.Exam] {
	return &query.Query[[]models.Exam]{
		Cache:     q.cache,
		Key:       keyExams,
		StaleTime: staleCatalog,
		Fetch: func(ctx context.Context) ([]models.Exam, error) {
			return q.api.Exams(ctx)
		},
	}
}

// Exam is one exam's detail view.
func (q *Queries) Exam(examID string) *query.Query[models.Exam] {
	return &query.Query[models.Exam]{
		Cache:     q.cache,
		Key:       keyExams.With(examID),
		StaleTime: staleCatalog,
		Enabled:   func() bool { return examID != "" },
		Fetch: func(ctx context.Context) (models.Exam, error) {
			return q.api.Exam(ctx, examID)
		},
	}
}

// Questions is a subject's practice question list.
func (q *Queries) Questions(examID, subjectID string) *query.Query[[]models.Question] {
	return &query.Query[[]models.Question]{
		Cache:     q.cache,
		Key:       keyQuestions.With(examID, subjectID),
		StaleTime: staleQuestions,
		Enabled:   func() bool { return examID != "" && subjectID != "" },
		Fetch: func(ctx context.Context) ([]models.Question, error) {
			return q.api.Questions(ctx, examID, subjectID)
		},
	}
}

// SubmitAnswer grades one answer. The result is ephemeral: nothing is
// cached and nothing is invalidated; failures still reach the notifier.
func (q *Queries) SubmitAnswer() *query.Mutation[AnswerArgs, models.AnswerResult] {
	return &query.Mutation[AnswerArgs, models.AnswerResult]{
		Cache:    q.cache,
		Notifier: q.notifier,
		Fn: func(ctx context.Context, arg AnswerArgs) (models.AnswerResult, error) {
			return q.api.SubmitAnswer(ctx, arg.QuestionID, dto.AnswerRequest{Answer: arg.Answer})
		},
	}
}

// AnswerArgs identifies one answer submission.
type AnswerArgs struct {
	QuestionID string
	Answer     string
}

// SelectExam stores the student's exam choice and invalidates the cached
// identity, which embeds the selection.
func (q *Queries) SelectExam() *query.Mutation[string, models.User] {
	return &query.Mutation[string, models.User]{
		Cache:       q.cache,
		Notifier:    q.notifier,
		Invalidates: []query.Key{keyAuthMe},
		Fn: func(ctx context.Context, examID string) (models.User, error) {
			return q.api.SelectExam(ctx, examID)
		},
	}
}

// Health is the public liveness probe, polled by status views.
func (q *Queries) Health() *query.Query[dto.HealthResponse] {
	return &query.Query[dto.HealthResponse]{
		Cache:     q.cache,
		Key:       keyHealth,
		StaleTime: staleHealth,
		Retries:   query.NoRetry,
		Fetch: func(ctx context.Context) (dto.HealthResponse, error) {
			return q.api.Health(ctx)
		},
	}
}

// HealthPoller re-probes the backend every interval (30s default) until the
// context is cancelled.
func (q *Queries) HealthPoller(onResult func(dto.HealthResponse, error)) *query.Poller[dto.HealthResponse] {
	return &query.Poller[dto.HealthResponse]{
		Query:    q.Health(),
		Interval: query.DefaultPollInterval,
		OnResult: onResult,
	}
}
