package services

import (
	"context"
	"net/http"

	"github.com/decade006/java-database-capstone/internal/logging"
	"github.com/decade006/java-database-capstone/internal/models"
)

// SignupPatient registers a new patient account.
func (c *Client) SignupPatient(ctx context.Context, patient models.Patient) models.Result {
	r := c.do(ctx, "signup_patient", http.MethodPost, "/patient", patient)
	return c.writeResult(ctx, "signup_patient", r, MessageSaved, MessageFailedToSave)
}

// GetPatient returns the patient the token belongs to, or nil.
func (c *Client) GetPatient(ctx context.Context, token string) *models.Patient {
	r := c.do(ctx, "get_patient", http.MethodGet, "/patient/"+tokenSegment(token), nil)
	if !r.ok() {
		return nil
	}
	var body struct {
		Patient *models.Patient `json:"patient"`
	}
	if !r.decode(&body) || body.Patient == nil {
		logging.FromContext(ctx, c.logger).Error("backend: malformed patient response")
		return nil
	}
	return body.Patient
}
