package client

import (
	"context"
	"strings"

	"github.com/unobits/website/internal/utils"
)

// LoginRequest is sent to the API login endpoint
type LoginRequest struct {
	Email        string `json:"email"`
	Password     string `json:"password"`
	Organization string `json:"organization,omitempty"`
}

// SignupRequest is sent to the API signup endpoint
type SignupRequest struct {
	Name         string `json:"name,omitempty"`
	Email        string `json:"email"`
	Password     string `json:"password"`
	Organization string `json:"organization,omitempty"`
}

// Login authenticates a user with the unobits API.
// The returned response carries the session cookies set by the API.
func (c *Client) Login(ctx context.Context, loginReq LoginRequest) (*Response, error) {
	loginReq.Email = strings.TrimSpace(loginReq.Email)
	loginReq.Organization = utils.Slugify(loginReq.Organization)

	return c.Do(ctx, "/auth/login", loginReq)
}

// Signup creates a new account (and organization) using the unobits API
func (c *Client) Signup(ctx context.Context, signupReq SignupRequest) (*Response, error) {
	signupReq.Name = strings.TrimSpace(signupReq.Name)
	signupReq.Email = strings.TrimSpace(signupReq.Email)
	signupReq.Organization = utils.Slugify(signupReq.Organization)

	return c.Do(ctx, "/auth/signup", signupReq)
}

// Logout ends the session identified by the credentials in ctx
func (c *Client) Logout(ctx context.Context) (*Response, error) {
	return c.Do(ctx, "/auth/logout", nil)
}

// Session returns the details of the session identified by the credentials in ctx
func (c *Client) Session(ctx context.Context) (any, error) {
	return c.Post(ctx, "/auth/session", nil)
}
