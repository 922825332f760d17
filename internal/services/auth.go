package services

import (
	"context"
	"net/http"

	"github.com/decade006/java-database-capstone/internal/logging"
	"github.com/decade006/java-database-capstone/internal/models"
)

type adminCredentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type emailCredentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginAdmin exchanges admin credentials for a token.
func (c *Client) LoginAdmin(ctx context.Context, username, password string) models.LoginResult {
	return c.login(ctx, "login_admin", "/admin/login", adminCredentials{Username: username, Password: password})
}

// LoginDoctor exchanges doctor credentials for a token.
func (c *Client) LoginDoctor(ctx context.Context, email, password string) models.LoginResult {
	return c.login(ctx, "login_doctor", "/doctor/login", emailCredentials{Email: email, Password: password})
}

// LoginPatient exchanges patient credentials for a token.
func (c *Client) LoginPatient(ctx context.Context, email, password string) models.LoginResult {
	return c.login(ctx, "login_patient", "/patient/login", emailCredentials{Email: email, Password: password})
}

// login returns Success only for a 2xx answer carrying a token. Failed marks
// answers that never arrived or could not be read.
func (c *Client) login(ctx context.Context, op, path string, credentials any) models.LoginResult {
	r := c.do(ctx, op, http.MethodPost, path, credentials)
	if r.network {
		return models.LoginResult{Failed: true, Message: MessageNetworkError}
	}
	var body struct {
		Token   string `json:"token"`
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	decoded := r.decode(&body)
	message := body.Message
	if message == "" {
		message = body.Error
	}
	if !r.ok() {
		return models.LoginResult{Message: message}
	}
	if !decoded || body.Token == "" {
		logging.FromContext(ctx, c.logger).Error("backend: login response without token", "operation", op)
		return models.LoginResult{Failed: true, Message: MessageUnexpectedResponse}
	}
	return models.LoginResult{Token: body.Token, Success: true, Message: message}
}
