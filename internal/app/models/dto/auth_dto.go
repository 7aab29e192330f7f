// Package dto defines the request and response bodies of the artori REST API.
package dto

import "github.com/brunopinheiroeu/artori-sub001/internal/app/models"

// LoginRequest is the body of POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignupRequest is the body of POST /auth/signup.
type SignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// TokenResponse is returned by login and signup. The user record rides along
// with the token so role-based redirects never need a follow-up read of
// /auth/me after authenticating.
type TokenResponse struct {
	AccessToken string      `json:"access_token"`
	TokenType   string      `json:"token_type"`
	User        models.User `json:"user"`
}

// SelectExamRequest is the body of POST /users/me/exam.
type SelectExamRequest struct {
	ExamID string `json:"exam_id"`
}
