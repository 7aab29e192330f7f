package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/brunopinheiroeu/artori-sub001/internal/app/models"
	"github.com/brunopinheiroeu/artori-sub001/internal/app/models/dto"
)

// Users lists accounts for the admin panel, paginated and filterable.
func (c *Client) Users(ctx context.Context, params dto.ListParams) (dto.UserListResponse, error) {
	return do[dto.UserListResponse](ctx, c, http.MethodGet, basePath+"/admin/users", params.Query(), nil)
}

// CreateUser creates an account with an explicit role.
func (c *Client) CreateUser(ctx context.Context, req dto.CreateUserRequest) (models.User, error) {
	return do[models.User](ctx, c, http.MethodPost, basePath+"/admin/users", nil, req)
}

// UpdateUser applies a partial update to an account.
func (c *Client) UpdateUser(ctx context.Context, userID string, req dto.UpdateUserRequest) (models.User, error) {
	return do[models.User](ctx, c, http.MethodPut, basePath+"/admin/users/"+url.PathEscape(userID), nil, req)
}

// DeleteUser removes an account.
func (c *Client) DeleteUser(ctx context.Context, userID string) error {
	_, err := do[dto.MessageResponse](ctx, c, http.MethodDelete, basePath+"/admin/users/"+url.PathEscape(userID), nil, nil)
	return err
}

// ResetUserPassword force-sets a new password on an account.
func (c *Client) ResetUserPassword(ctx context.Context, userID string, req dto.ResetPasswordRequest) error {
	path := basePath + "/admin/users/" + url.PathEscape(userID) + "/reset-password"
	_, err := do[dto.MessageResponse](ctx, c, http.MethodPost, path, nil, req)
	return err
}
