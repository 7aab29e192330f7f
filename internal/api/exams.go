package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/brunopinheiroeu/artori-sub001/internal/app/models"
	"github.com/brunopinheiroeu/artori-sub001/internal/app/models/dto"
)

// Exams lists the publicly available exams.
func (c *Client) Exams(ctx context.Context) ([]models.Exam, error) {
	return do[[]models.Exam](ctx, c, http.MethodGet, basePath+"/exams", nil, nil)
}

// Exam fetches one exam with its subjects.
func (c *Client) Exam(ctx context.Context, examID string) (models.Exam, error) {
	return do[models.Exam](ctx, c, http.MethodGet, basePath+"/exams/"+url.PathEscape(examID), nil, nil)
}

// Questions lists the practice questions of a subject. The records carry no
// correct answers.
func (c *Client) Questions(ctx context.Context, examID, subjectID string) ([]models.Question, error) {
	path := basePath + "/exams/" + url.PathEscape(examID) + "/subjects/" + url.PathEscape(subjectID) + "/questions"
	return do[[]models.Question](ctx, c, http.MethodGet, path, nil, nil)
}

// SubmitAnswer grades one answer. The result is consumed once and never
// cached.
func (c *Client) SubmitAnswer(ctx context.Context, questionID string, req dto.AnswerRequest) (models.AnswerResult, error) {
	path := basePath + "/questions/" + url.PathEscape(questionID) + "/answer"
	return do[models.AnswerResult](ctx, c, http.MethodPost, path, nil, req)
}

// Health probes the backend's liveness endpoint.
func (c *Client) Health(ctx context.Context) (dto.HealthResponse, error) {
	return do[dto.HealthResponse](ctx, c, http.MethodGet, "/healthz", nil, nil)
}
