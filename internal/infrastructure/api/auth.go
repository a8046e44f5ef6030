package api

import (
	"context"
	"net/http"

	"github.com/shop/storefront/internal/domain/identity"
)

// RegisterInput is the signup payload
type RegisterInput struct {
	Name     string `json:"name" validate:"required,min=2"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// LoginInput is the login payload
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// ResetPasswordInput completes the forgot-password flow
type ResetPasswordInput struct {
	Email           string `json:"email" validate:"required,email"`
	NewPassword     string `json:"newPassword" validate:"required,min=6"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=NewPassword"`
}

// Register creates a new account and returns the authenticated session
func (c *Client) Register(ctx context.Context, in RegisterInput) (*identity.Session, error) {
	if err := c.checkInput(in); err != nil {
		return nil, err
	}
	env, err := c.call(ctx, http.MethodPost, "/auth/signup", nil, in)
	if err != nil {
		return nil, err
	}
	var session identity.Session
	if err := env.decodeData(&session); err != nil {
		return nil, err
	}
	return &session, nil
}

// Login authenticates existing credentials and returns the session
func (c *Client) Login(ctx context.Context, in LoginInput) (*identity.Session, error) {
	if err := c.checkInput(in); err != nil {
		return nil, err
	}
	env, err := c.call(ctx, http.MethodPost, "/auth/login", nil, in)
	if err != nil {
		return nil, err
	}
	var session identity.Session
	if err := env.decodeData(&session); err != nil {
		return nil, err
	}
	return &session, nil
}

// ForgotPassword asks the backend to email a reset code
func (c *Client) ForgotPassword(ctx context.Context, email string) (string, error) {
	in := struct {
		Email string `json:"email" validate:"required,email"`
	}{Email: email}
	if err := c.checkInput(in); err != nil {
		return "", err
	}
	env, err := c.call(ctx, http.MethodPost, "/auth/forgetpassword", nil, in)
	if err != nil {
		return "", err
	}
	return env.Message, nil
}

// VerifyResetCode checks a reset code received by email
func (c *Client) VerifyResetCode(ctx context.Context, code string) error {
	in := struct {
		ResetCode string `json:"resetCode" validate:"required"`
	}{ResetCode: code}
	if err := c.checkInput(in); err != nil {
		return err
	}
	_, err := c.call(ctx, http.MethodPost, "/auth/verifyresetcode", nil, in)
	return err
}

// ResetPassword sets a new password after code verification and returns the
// fresh bearer token
func (c *Client) ResetPassword(ctx context.Context, in ResetPasswordInput) (string, error) {
	if err := c.checkInput(in); err != nil {
		return "", err
	}
	env, err := c.call(ctx, http.MethodPut, "/auth/resetpassword", nil, in)
	if err != nil {
		return "", err
	}
	return env.Token, nil
}
