package services

import (
	"context"
	"net/http"

	"github.com/decade006/java-database-capstone/internal/logging"
	"github.com/decade006/java-database-capstone/internal/models"
)

// ListDoctors returns every doctor, or an empty list when the request fails.
func (c *Client) ListDoctors(ctx context.Context) []models.Doctor {
	list := c.fetchDoctors(ctx, "list_doctors", "/doctor")
	return list.Doctors
}

// FilterDoctors narrows the doctor list. Nil or blank criteria are sent as
// "null". A failed request is marked so it can be told apart from no match.
func (c *Client) FilterDoctors(ctx context.Context, name, period, specialty *string) models.DoctorList {
	path := "/doctor/filter/" + segment(name) + "/" + segment(period) + "/" + segment(specialty)
	return c.fetchDoctors(ctx, "filter_doctors", path)
}

func (c *Client) fetchDoctors(ctx context.Context, op, path string) models.DoctorList {
	r := c.do(ctx, op, http.MethodGet, path, nil)
	if !r.ok() {
		return models.DoctorList{Doctors: []models.Doctor{}, Failed: true}
	}
	var list models.DoctorList
	if !r.decode(&list) {
		logging.FromContext(ctx, c.logger).Error("backend: malformed doctor list", "operation", op)
		return models.DoctorList{Doctors: []models.Doctor{}, Failed: true}
	}
	if list.Doctors == nil {
		list.Doctors = []models.Doctor{}
	}
	return list
}

// SaveDoctor creates a doctor on behalf of an admin.
func (c *Client) SaveDoctor(ctx context.Context, doctor models.Doctor, token string) models.Result {
	r := c.do(ctx, "save_doctor", http.MethodPost, "/doctor/"+tokenSegment(token), doctor)
	return c.writeResult(ctx, "save_doctor", r, MessageSaved, MessageFailedToSave)
}

// DeleteDoctor removes a doctor on behalf of an admin.
func (c *Client) DeleteDoctor(ctx context.Context, id int64, token string) models.Result {
	r := c.do(ctx, "delete_doctor", http.MethodDelete, "/doctor/"+idSegment(id)+"/"+tokenSegment(token), nil)
	return c.writeResult(ctx, "delete_doctor", r, MessageDeleted, MessageFailedToDelete)
}
