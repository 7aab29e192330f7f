package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/brunopinheiroeu/artori-sub001/internal/app/models"
	"github.com/brunopinheiroeu/artori-sub001/internal/app/models/dto"
)

// DashboardStats fetches the aggregate counts for the admin landing page.
func (c *Client) DashboardStats(ctx context.Context) (models.DashboardStats, error) {
	return do[models.DashboardStats](ctx, c, http.MethodGet, basePath+"/admin/stats", nil, nil)
}

// ActivityLog lists recent audited actions, paginated.
func (c *Client) ActivityLog(ctx context.Context, params dto.ListParams) (dto.ActivityLogResponse, error) {
	return do[dto.ActivityLogResponse](ctx, c, http.MethodGet, basePath+"/admin/activity", params.Query(), nil)
}

// SystemHealth fetches the backend's self-reported status. The admin
// dashboard polls this.
func (c *Client) SystemHealth(ctx context.Context) (models.SystemHealth, error) {
	return do[models.SystemHealth](ctx, c, http.MethodGet, basePath+"/admin/system-health", nil, nil)
}

// Analytics fetches a usage summary for a window such as "7d" or "30d".
func (c *Client) Analytics(ctx context.Context, window string) (models.AnalyticsReport, error) {
	query := url.Values{}
	if window != "" {
		query.Set("window", window)
	}
	return do[models.AnalyticsReport](ctx, c, http.MethodGet, basePath+"/admin/analytics", query, nil)
}

// Settings fetches the platform settings.
func (c *Client) Settings(ctx context.Context) (models.Settings, error) {
	return do[models.Settings](ctx, c, http.MethodGet, basePath+"/admin/settings", nil, nil)
}

// UpdateSettings replaces the platform settings.
func (c *Client) UpdateSettings(ctx context.Context, req models.Settings) (models.Settings, error) {
	return do[models.Settings](ctx, c, http.MethodPut, basePath+"/admin/settings", nil, req)
}

// Profile fetches the signed-in admin's profile.
func (c *Client) Profile(ctx context.Context) (models.AdminProfile, error) {
	return do[models.AdminProfile](ctx, c, http.MethodGet, basePath+"/admin/profile", nil, nil)
}

// UpdateProfile applies a partial update to the admin's profile.
func (c *Client) UpdateProfile(ctx context.Context, req dto.UpdateProfileRequest) (models.AdminProfile, error) {
	return do[models.AdminProfile](ctx, c, http.MethodPut, basePath+"/admin/profile", nil, req)
}

// Preferences fetches the admin's UI preferences.
func (c *Client) Preferences(ctx context.Context) (models.Preferences, error) {
	return do[models.Preferences](ctx, c, http.MethodGet, basePath+"/admin/preferences", nil, nil)
}

// UpdatePreferences replaces the admin's UI preferences.
func (c *Client) UpdatePreferences(ctx context.Context, req models.Preferences) (models.Preferences, error) {
	return do[models.Preferences](ctx, c, http.MethodPut, basePath+"/admin/preferences", nil, req)
}
