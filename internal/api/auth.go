package api

import "context"

// LoginRequest is the payload for POST /auth/login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// RegisterRequest is the payload for POST /auth/register.
type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email"`
}

// AuthResponse is returned by both login and registration. Registration
// implicitly signs the user in, so the two share a shape.
type AuthResponse struct {
	Token    string `json:"token"`
	Message  string `json:"message"`
	Username string `json:"username"`
}

// Login exchanges a username/password pair for a session credential.
func (c *Client) Login(ctx context.Context, username, password string) (AuthResponse, error) {
	var resp AuthResponse
	err := c.post(ctx, "/auth/login", LoginRequest{Username: username, Password: password}, &resp)
	return resp, err
}

// Register creates an account and returns a session credential for it.
func (c *Client) Register(ctx context.Context, username, password, email string) (AuthResponse, error) {
	var resp AuthResponse
	err := c.post(ctx, "/auth/register", RegisterRequest{Username: username, Password: password, Email: email}, &resp)
	return resp, err
}

// Verify checks whether the currently attached credential is still valid.
// Any error, including an authorization failure, means the credential
// should be discarded.
func (c *Client) Verify(ctx context.Context) error {
	return c.get(ctx, "/auth/verify", nil)
}
