package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/brunopinheiroeu/artori-sub001/internal/app/models"
	"github.com/brunopinheiroeu/artori-sub001/internal/app/models/dto"
)

// AdminExams lists exams for the admin panel, paginated and searchable.
func (c *Client) AdminExams(ctx context.Context, params dto.ListParams) (dto.ExamListResponse, error) {
	return do[dto.ExamListResponse](ctx, c, http.MethodGet, basePath+"/admin/exams", params.Query(), nil)
}

// CreateExam publishes a new exam. It appears in the public catalog
// immediately.
func (c *Client) CreateExam(ctx context.Context, req dto.CreateExamRequest) (models.Exam, error) {
	return do[models.Exam](ctx, c, http.MethodPost, basePath+"/admin/exams", nil, req)
}

// UpdateExam applies a partial update to an exam.
func (c *Client) UpdateExam(ctx context.Context, examID string, req dto.UpdateExamRequest) (models.Exam, error) {
	return do[models.Exam](ctx, c, http.MethodPut, basePath+"/admin/exams/"+url.PathEscape(examID), nil, req)
}

// DeleteExam removes an exam from the catalog.
func (c *Client) DeleteExam(ctx context.Context, examID string) error {
	_, err := do[dto.MessageResponse](ctx, c, http.MethodDelete, basePath+"/admin/exams/"+url.PathEscape(examID), nil, nil)
	return err
}
