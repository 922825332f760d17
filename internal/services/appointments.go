package services

import (
	"context"
	"net/http"

	"github.com/decade006/java-database-capstone/internal/logging"
	"github.com/decade006/java-database-capstone/internal/models"
)

// ListAppointments returns a doctor's appointments for date, optionally
// narrowed to a patient name.
func (c *Client) ListAppointments(ctx context.Context, date string, patientName *string, token string) models.AppointmentList {
	path := "/appointments/" + segment(&date) + "/" + segment(patientName) + "/" + tokenSegment(token)
	return c.fetchAppointments(ctx, "list_appointments", path)
}

// ListPatientAppointments returns the appointments of a logged in patient.
func (c *Client) ListPatientAppointments(ctx context.Context, patientID int64, token string) models.AppointmentList {
	path := "/patient/" + idSegment(patientID) + "/patient/" + tokenSegment(token)
	return c.fetchAppointments(ctx, "list_patient_appointments", path)
}

func (c *Client) fetchAppointments(ctx context.Context, op, path string) models.AppointmentList {
	r := c.do(ctx, op, http.MethodGet, path, nil)
	if !r.ok() {
		return models.AppointmentList{Appointments: []models.Appointment{}, Failed: true}
	}
	var list models.AppointmentList
	if !r.decode(&list) {
		logging.FromContext(ctx, c.logger).Error("backend: malformed appointment list", "operation", op)
		return models.AppointmentList{Appointments: []models.Appointment{}, Failed: true}
	}
	if list.Appointments == nil {
		list.Appointments = []models.Appointment{}
	}
	return list
}

// BookAppointment books a slot for the logged in patient.
func (c *Client) BookAppointment(ctx context.Context, booking models.Booking, token string) models.Result {
	r := c.do(ctx, "book_appointment", http.MethodPost, "/appointments/"+tokenSegment(token), booking)
	return c.writeResult(ctx, "book_appointment", r, MessageSaved, MessageFailedToSave)
}
