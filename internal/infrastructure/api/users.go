package api

import (
	"context"
	"net/http"

	"github.com/shop/storefront/internal/domain/identity"
)

// UpdateProfileInput edits the signed-in user's profile. The avatar travels
// as a multipart part when present.
type UpdateProfileInput struct {
	Name   string `json:"name,omitempty"`
	Email  string `json:"email,omitempty" validate:"omitempty,email"`
	Phone  string `json:"phone,omitempty"`
	Avatar *File  `json:"-"`
}

// UpdatePasswordInput changes the signed-in user's password
type UpdatePasswordInput struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	Password        string `json:"password" validate:"required,min=6"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=Password"`
}

// CreateUserInput is the admin account-creation payload
type CreateUserInput struct {
	Name     string `json:"name" validate:"required,min=2"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role,omitempty" validate:"omitempty,oneof=user manager admin"`
}

// UpdateUserInput is the admin account-edit payload
type UpdateUserInput struct {
	Name   string `json:"name,omitempty"`
	Email  string `json:"email,omitempty" validate:"omitempty,email"`
	Phone  string `json:"phone,omitempty"`
	Role   string `json:"role,omitempty" validate:"omitempty,oneof=user manager admin"`
	Active *bool  `json:"active,omitempty"`
}

// Me fetches the signed-in user's profile, validating the stored credential
// as a side effect
func (c *Client) Me(ctx context.Context) (*identity.User, error) {
	env, err := c.call(ctx, http.MethodGet, "/users/getMe", nil, nil)
	if err != nil {
		return nil, err
	}
	var user identity.User
	if err := env.decodeData(&user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateMe edits the signed-in user's profile
func (c *Client) UpdateMe(ctx context.Context, in UpdateProfileInput) (*identity.User, error) {
	if err := c.checkInput(in); err != nil {
		return nil, err
	}
	var env *envelope
	var err error
	if in.Avatar != nil {
		p := newFormPayload()
		p.set("name", in.Name)
		p.set("email", in.Email)
		p.set("phone", in.Phone)
		p.addFile("profileImg", *in.Avatar)
		env, err = c.callForm(ctx, http.MethodPut, "/users/updateMe", p)
	} else {
		env, err = c.call(ctx, http.MethodPut, "/users/updateMe", nil, in)
	}
	if err != nil {
		return nil, err
	}
	var user identity.User
	if err := env.decodeData(&user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateMyPassword changes the password and returns the reissued token; the
// old token is invalidated server-side
func (c *Client) UpdateMyPassword(ctx context.Context, in UpdatePasswordInput) (*identity.Session, error) {
	if err := c.checkInput(in); err != nil {
		return nil, err
	}
	env, err := c.call(ctx, http.MethodPut, "/users/updateMyPassword", nil, in)
	if err != nil {
		return nil, err
	}
	var user identity.User
	if err := env.decodeData(&user); err != nil {
		return nil, err
	}
	return &identity.Session{Token: env.Token, User: user}, nil
}

// DeleteMe deactivates the signed-in user's account
func (c *Client) DeleteMe(ctx context.Context) error {
	_, err := c.call(ctx, http.MethodDelete, "/users/deleteMe", nil, nil)
	return err
}

// ---------------------------------------------------------------------------
// Admin operations
// ---------------------------------------------------------------------------

// ListUsers fetches one page of accounts (admin only)
func (c *Client) ListUsers(ctx context.Context, q ListQuery) (*Page[identity.User], error) {
	env, err := c.call(ctx, http.MethodGet, "/users", q.values(), nil)
	if err != nil {
		return nil, err
	}
	var users []identity.User
	if err := env.decodeData(&users); err != nil {
		return nil, err
	}
	return &Page[identity.User]{
		Items:      users,
		Results:    env.Results,
		Pagination: env.pagination(),
	}, nil
}

// GetUser fetches a single account (admin only)
func (c *Client) GetUser(ctx context.Context, id string) (*identity.User, error) {
	env, err := c.call(ctx, http.MethodGet, "/users/"+id, nil, nil)
	if err != nil {
		return nil, err
	}
	var user identity.User
	if err := env.decodeData(&user); err != nil {
		return nil, err
	}
	return &user, nil
}

// CreateUser creates an account (admin only)
func (c *Client) CreateUser(ctx context.Context, in CreateUserInput) (*identity.User, error) {
	if err := c.checkInput(in); err != nil {
		return nil, err
	}
	env, err := c.call(ctx, http.MethodPost, "/users", nil, in)
	if err != nil {
		return nil, err
	}
	var user identity.User
	if err := env.decodeData(&user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateUser edits an account (admin only)
func (c *Client) UpdateUser(ctx context.Context, id string, in UpdateUserInput) (*identity.User, error) {
	if err := c.checkInput(in); err != nil {
		return nil, err
	}
	env, err := c.call(ctx, http.MethodPut, "/users/"+id, nil, in)
	if err != nil {
		return nil, err
	}
	var user identity.User
	if err := env.decodeData(&user); err != nil {
		return nil, err
	}
	return &user, nil
}

// DeleteUser removes an account (admin only)
func (c *Client) DeleteUser(ctx context.Context, id string) error {
	_, err := c.call(ctx, http.MethodDelete, "/users/"+id, nil, nil)
	return err
}
