package handlers

import (
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/decade006/java-database-capstone/internal/middleware"
	"github.com/decade006/java-database-capstone/internal/models"
	"github.com/decade006/java-database-capstone/internal/session"
	"github.com/decade006/java-database-capstone/internal/views"
)

// Booking and patient appointment notices.
const (
	NoticeLoginToContinue    = "Please login to continue."
	NoticeSessionExpired     = "Session expired. Please log in again."
	NoticePatientUnavailable = "Unable to load patient details."
	NoticeDoctorNotFound     = "Doctor not found."
	NoticeBookingIncomplete  = "Please select a date and time slot."

	MessageNoPatientAppointments = "No appointments found."
)

// DoctorDashboard renders the doctor's appointments for the selected date.
func (h *Handler) DoctorDashboard(c *gin.Context) {
	date := h.selectedDate(c.Query("date"))
	name := optional(c.Query("name"))
	list := h.Backend.ListAppointments(c.Request.Context(), date, name, h.session(c).Token())

	page := views.DoctorPage{
		Page:       views.NewPage(h.session(c), "Doctor Dashboard", session.RouteDoctorDashboard),
		DatePicker: views.DatePicker{Date: date},
		Table:      views.AppointmentTable(list),
	}
	if name != nil {
		page.Name = *name
	}
	h.render(c, views.PageDoctorDashboard, page)
}

// DoctorAppointments renders the table body for the dashboard filters. The
// Today button resets the date and the picker is replaced out of band.
func (h *Handler) DoctorAppointments(c *gin.Context) {
	picker := views.DatePicker{Date: h.selectedDate(c.Query("date"))}
	if c.Query("today") != "" {
		picker = views.DatePicker{Date: h.today(), OOB: true}
	}
	list := h.Backend.ListAppointments(c.Request.Context(), picker.Date, optional(c.Query("name")), h.session(c).Token())
	h.render(c, views.FragmentAppointmentRows, views.AppointmentFragment{
		Table:      views.AppointmentTable(list),
		DatePicker: picker,
	})
}

// selectedDate returns value when it is a YYYY-MM-DD date, otherwise today.
func (h *Handler) selectedDate(value string) string {
	value = strings.TrimSpace(value)
	if _, err := time.Parse(time.DateOnly, value); err != nil {
		return h.today()
	}
	return value
}

// PatientAppointments lists the logged patient's own appointments.
func (h *Handler) PatientAppointments(c *gin.Context) {
	sess := h.session(c)
	token := sess.Token()
	if role, _ := sess.Role(); role != session.RoleLoggedPatient || token == "" {
		h.flash(c, NoticeLoginToContinue)
		h.redirect(c, session.RoutePatientDashboard)
		return
	}

	page := views.PatientAppointmentsPage{
		Page: views.NewPage(sess, "Your Appointments", session.RoutePatientAppointments),
	}

	ctx := c.Request.Context()
	patient := h.Backend.GetPatient(ctx, token)
	if patient == nil {
		page.Message = NoticePatientUnavailable
		h.render(c, views.PagePatientAppointments, page)
		return
	}

	list := h.Backend.ListPatientAppointments(ctx, patient.ID, token)
	switch {
	case list.Failed:
		page.Message = views.MessageAppointmentsLoadError
	case len(list.Appointments) == 0:
		page.Message = MessageNoPatientAppointments
	default:
		page.Appointments = list.Appointments
	}
	h.render(c, views.PagePatientAppointments, page)
}

// bookingPatient resolves the patient allowed to book, surfacing a notice
// and returning false when there is none.
func (h *Handler) bookingPatient(c *gin.Context) (*models.Patient, string, bool) {
	sess := h.session(c)
	if role, _ := sess.Role(); role != session.RoleLoggedPatient {
		h.fail(c, NoticeLoginToContinue, session.RoutePatientDashboard)
		return nil, "", false
	}
	token := sess.Token()
	if token == "" {
		h.fail(c, NoticeSessionExpired, session.RouteLanding)
		return nil, "", false
	}
	patient := h.Backend.GetPatient(c.Request.Context(), token)
	if patient == nil {
		h.fail(c, NoticePatientUnavailable, session.RouteLoggedPatientDashboard)
		return nil, "", false
	}
	return patient, token, true
}

// BookingOverlay shows the booking form for one doctor. Fragment requests
// get the overlay alone.
func (h *Handler) BookingOverlay(c *gin.Context) {
	patient, _, ok := h.bookingPatient(c)
	if !ok {
		return
	}
	doctor, found := h.findDoctor(c, c.Param("id"))
	if !found {
		h.fail(c, NoticeDoctorNotFound, session.RouteLoggedPatientDashboard)
		return
	}

	booking := views.BookingView{
		Doctor:  views.BuildDoctorCard(doctor, session.RoleLoggedPatient),
		Patient: *patient,
		Today:   h.today(),
	}
	if middleware.IsFragmentRequest(c) {
		h.render(c, views.FragmentBooking, booking)
		return
	}
	h.render(c, views.PageBooking, views.BookingPage{
		Page:    views.NewPage(h.session(c), "Book Appointment", c.Request.URL.Path),
		Booking: booking,
	})
}

// BookAppointment books the chosen slot and shows the patient's
// appointments on success.
func (h *Handler) BookAppointment(c *gin.Context) {
	patient, token, ok := h.bookingPatient(c)
	if !ok {
		return
	}
	doctorID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		h.fail(c, NoticeDoctorNotFound, session.RouteLoggedPatientDashboard)
		return
	}

	date := strings.TrimSpace(c.PostForm("date"))
	slot, slotErr := models.ParseSlotRange(c.PostForm("slot"))
	if _, err := time.Parse(time.DateOnly, date); err != nil || slotErr != nil {
		h.fail(c, NoticeBookingIncomplete, c.Request.URL.Path)
		return
	}

	res := h.Backend.BookAppointment(c.Request.Context(), models.Booking{
		Doctor:          models.Ref{ID: doctorID},
		Patient:         models.Ref{ID: patient.ID},
		AppointmentTime: date + "T" + slot.StartTime,
		Status:          models.StatusScheduled,
	}, token)
	if !res.Success {
		h.fail(c, res.Message, session.RouteLoggedPatientDashboard)
		return
	}
	h.succeed(c, res.Message, session.RoutePatientAppointments)
}

func (h *Handler) findDoctor(c *gin.Context, rawID string) (models.Doctor, bool) {
	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		return models.Doctor{}, false
	}
	for _, d := range h.Backend.ListDoctors(c.Request.Context()) {
		if d.ID == id {
			return d, true
		}
	}
	return models.Doctor{}, false
}
