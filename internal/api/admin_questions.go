package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/brunopinheiroeu/artori-sub001/internal/app/models"
	"github.com/brunopinheiroeu/artori-sub001/internal/app/models/dto"
)

// AdminQuestions lists questions with their correct answers and
// explanations, paginated and searchable.
func (c *Client) AdminQuestions(ctx context.Context, params dto.ListParams) (dto.QuestionListResponse, error) {
	return do[dto.QuestionListResponse](ctx, c, http.MethodGet, basePath+"/admin/questions", params.Query(), nil)
}

// CreateQuestion adds a question to a subject's pool.
func (c *Client) CreateQuestion(ctx context.Context, req dto.CreateQuestionRequest) (models.AdminQuestion, error) {
	return do[models.AdminQuestion](ctx, c, http.MethodPost, basePath+"/admin/questions", nil, req)
}

// UpdateQuestion applies a partial update to a question.
func (c *Client) UpdateQuestion(ctx context.Context, questionID string, req dto.UpdateQuestionRequest) (models.AdminQuestion, error) {
	return do[models.AdminQuestion](ctx, c, http.MethodPut, basePath+"/admin/questions/"+url.PathEscape(questionID), nil, req)
}

// DeleteQuestion removes a question from the pool.
func (c *Client) DeleteQuestion(ctx context.Context, questionID string) error {
	_, err := do[dto.MessageResponse](ctx, c, http.MethodDelete, basePath+"/admin/questions/"+url.PathEscape(questionID), nil, nil)
	return err
}
