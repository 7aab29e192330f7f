package api

import (
	"context"
	"net/http"

	"github.com/brunopinheiroeu/artori-sub001/internal/app/models"
	"github.com/brunopinheiroeu/artori-sub001/internal/app/models/dto"
)

// Login authenticates with email and password. On success the returned
// token becomes the client's session; the user record rides along so the
// caller can redirect by role without a follow-up read.
func (c *Client) Login(ctx context.Context, req dto.LoginRequest) (dto.TokenResponse, error) {
	res, err := do[dto.TokenResponse](ctx, c, http.MethodPost, basePath+"/auth/login", nil, req)
	if err != nil {
		return dto.TokenResponse{}, err
	}
	c.adoptSession(res)
	return res, nil
}

// Signup registers a new student account and opens a session for it.
func (c *Client) Signup(ctx context.Context, req dto.SignupRequest) (dto.TokenResponse, error) {
	res, err := do[dto.TokenResponse](ctx, c, http.MethodPost, basePath+"/auth/signup", nil, req)
	if err != nil {
		return dto.TokenResponse{}, err
	}
	c.adoptSession(res)
	return res, nil
}

// CurrentUser fetches the signed-in user. Used for session restore; fresh
// logins already carry the user in the token response.
func (c *Client) CurrentUser(ctx context.Context) (models.User, error) {
	return do[models.User](ctx, c, http.MethodGet, basePath+"/auth/me", nil, nil)
}

// SelectExam records the student's exam choice on their profile.
func (c *Client) SelectExam(ctx context.Context, examID string) (models.User, error) {
	usr, err := do[models.User](ctx, c, http.MethodPost, basePath+"/users/me/exam", nil, dto.SelectExamRequest{ExamID: examID})
	if err != nil {
		return models.User{}, err
	}
	if c.store != nil {
		if serr := c.store.SetSelectedExam(examID); serr != nil {
			c.logger.Warn().Err(serr).Msg("Failed to persist exam selection")
		}
	}
	return usr, nil
}
