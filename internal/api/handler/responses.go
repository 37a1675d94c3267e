package handler

import "github.com/authgate/auth-api/internal/core/domain"

// messageResponse is the envelope of operations that return no payload.
type messageResponse struct {
	Message string `json:"message"`
}

type userResponse struct {
	Message string         `json:"message"`
	User    domain.Profile `json:"user"`
}

type dataResponse struct {
	Message string `json:"message"`
	Data    any    `json:"data"`
}

type listResponse struct {
	Message string           `json:"message"`
	Data    []domain.Profile `json:"data"`
	Count   int              `json:"count"`
}

type adminSummary struct {
	TotalUsers     int64  `json:"totalUsers"`
	ActiveSessions string `json:"activeSessions"`
	ServerStatus   string `json:"serverStatus"`
}

// errorBody documents the error envelope rendered by the HTTP error handler.
type errorBody struct {
	Message string `json:"message" example:"Invalid email or password."`
	Code    string `json:"code" example:"INVALID_CREDENTIALS"`
}

var errInvalidBody = domain.NewValidationError("", "Invalid request body.")
