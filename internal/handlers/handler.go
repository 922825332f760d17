package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/decade006/java-database-capstone/internal/logging"
	"github.com/decade006/java-database-capstone/internal/metrics"
	"github.com/decade006/java-database-capstone/internal/middleware"
	"github.com/decade006/java-database-capstone/internal/models"
	"github.com/decade006/java-database-capstone/internal/session"
)

// Backend is the hospital API as seen by the handlers. Implementations
// report failures through their results, never through errors.
type Backend interface {
	ListDoctors(ctx context.Context) []models.Doctor
	FilterDoctors(ctx context.Context, name, period, specialty *string) models.DoctorList
	SaveDoctor(ctx context.Context, doctor models.Doctor, token string) models.Result
	DeleteDoctor(ctx context.Context, id int64, token string) models.Result
	ListAppointments(ctx context.Context, date string, patientName *string, token string) models.AppointmentList
	LoginAdmin(ctx context.Context, username, password string) models.LoginResult
	LoginDoctor(ctx context.Context, email, password string) models.LoginResult
	LoginPatient(ctx context.Context, email, password string) models.LoginResult
	SignupPatient(ctx context.Context, patient models.Patient) models.Result
	GetPatient(ctx context.Context, token string) *models.Patient
	BookAppointment(ctx context.Context, booking models.Booking, token string) models.Result
	ListPatientAppointments(ctx context.Context, patientID int64, token string) models.AppointmentList
}

// Handler holds the collaborators shared by every page and action.
type Handler struct {
	Backend Backend
	Logger  *logging.Logger
	Metrics *metrics.PortalMetrics
	Now     func() time.Time
}

func NewHandler(backend Backend, logger *logging.Logger, m *metrics.PortalMetrics) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{
		Backend: backend,
		Logger:  logger,
		Metrics: m,
		Now:     time.Now,
	}
}

func (h *Handler) today() string {
	return h.Now().Format(time.DateOnly)
}

func (h *Handler) log(c *gin.Context) *logging.Logger {
	return logging.FromContext(c.Request.Context(), h.Logger)
}

func (h *Handler) session(c *gin.Context) *session.Session {
	return middleware.SessionFrom(c)
}

// role is the session's role; an unreadable role counts as none.
func (h *Handler) role(c *gin.Context) session.Role {
	role, _ := h.session(c).Role()
	return role
}

// --- Responses ---
// Every response helper saves the session first since headers cannot be
// changed once the body is written.

func (h *Handler) render(c *gin.Context, name string, data any) {
	middleware.SaveSession(c)
	c.HTML(http.StatusOK, name, data)
}

func (h *Handler) redirect(c *gin.Context, location string) {
	middleware.SaveSession(c)
	middleware.Navigate(c, location)
}

// notify raises a notice on the current page of a fragment request.
func (h *Handler) notify(c *gin.Context, notice string) {
	payload, err := json.Marshal(map[string]string{"notice": notice})
	if err != nil {
		h.log(c).Error("encode notice", "error", err)
		return
	}
	c.Header("HX-Trigger", string(payload))
	h.Metrics.ObserveNotice("trigger")
}

// flash queues a notice for the next full page render.
func (h *Handler) flash(c *gin.Context, notice string) {
	h.session(c).Flash(notice)
	h.Metrics.ObserveNotice("flash")
}

// fail surfaces notice without changing the page. Plain form posts are sent
// back to fallback with the notice flashed.
func (h *Handler) fail(c *gin.Context, notice, fallback string) {
	if middleware.IsFragmentRequest(c) {
		h.notify(c, notice)
		middleware.SaveSession(c)
		c.Header("HX-Reswap", "none")
		c.Status(http.StatusNoContent)
		return
	}
	h.flash(c, notice)
	h.redirect(c, fallback)
}

// succeed navigates to location and shows notice there.
func (h *Handler) succeed(c *gin.Context, notice, location string) {
	if notice != "" {
		h.flash(c, notice)
	}
	h.redirect(c, location)
}

// Healthz reports liveness.
func (h *Handler) Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
