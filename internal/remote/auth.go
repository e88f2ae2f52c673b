// Copyright (c) 2026 Rayaw Storefront. All rights reserved.

package remote

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
)

// SignupRequest is the registration form sent to POST /signup.
type SignupRequest struct {
	FirstName   string
	LastName    string
	Email       string
	PhoneNumber string
	Password    string
}

/*
Login exchanges credentials for a session.

Email and password are trimmed before sending. The password is sent under
the configured password field.

Returns:
  - *AuthResult: token and identity, whatever shape the backend answered with
  - error: *apperr.AppError on non-2xx, ErrUnrecognizedShape on a malformed 2xx
*/
func (client *Client) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	body := map[string]string{
		"email":              strings.TrimSpace(email),
		client.passwordField: strings.TrimSpace(password),
	}

	payload, err := client.do(ctx, http.MethodPost, []string{"login"}, nil, body)
	if err != nil {
		return nil, fmt.Errorf("remote_login_failed: %w", err)
	}

	return client.decodeAuth(payload, "login")
}

// Signup registers a new account. The body mirrors what the backend expects.
func (client *Client) Signup(ctx context.Context, req SignupRequest) (*AuthResult, error) {
	body := map[string]string{
		"first_name":         strings.TrimSpace(req.FirstName),
		"last_name":          strings.TrimSpace(req.LastName),
		"email":              strings.TrimSpace(req.Email),
		"phone_number":       strings.TrimSpace(req.PhoneNumber),
		client.passwordField: req.Password,
	}

	payload, err := client.do(ctx, http.MethodPost, []string{"signup"}, nil, body)
	if err != nil {
		return nil, fmt.Errorf("remote_signup_failed: %w", err)
	}

	return client.decodeAuth(payload, "signup")
}

func (client *Client) decodeAuth(payload []byte, operation string) (*AuthResult, error) {
	result, err := DecodeAuth(payload)
	if err != nil {
		client.logger.Warn("remote_auth_shape_rejected",
			slog.String("operation", operation),
			slog.Any("error", err),
		)
		return nil, fmt.Errorf("remote_%s_failed: %w", operation, err)
	}

	client.logger.Debug("remote_auth_decoded",
		slog.String("operation", operation),
		slog.String("shape", result.Shape.String()),
	)
	return result, nil
}
