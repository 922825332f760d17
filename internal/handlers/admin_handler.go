package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/decade006/java-database-capstone/internal/middleware"
	"github.com/decade006/java-database-capstone/internal/models"
	"github.com/decade006/java-database-capstone/internal/session"
	"github.com/decade006/java-database-capstone/internal/views"
)

// Admin dashboard notices.
const (
	NoticeAdminLoginRequired = "Unauthorized. Please log in as admin."
	NoticeLoginAgain         = "Unauthorized. Please log in again."
	NoticeFilterFailed       = "Something went wrong!"
)

// AdminDashboard renders every doctor as a card. The token query parameter
// is accepted for compatibility; the session token is authoritative.
func (h *Handler) AdminDashboard(c *gin.Context) {
	doctors := h.Backend.ListDoctors(c.Request.Context())
	h.render(c, views.PageAdminDashboard, views.AdminPage{
		Page:        views.NewPage(h.session(c), "Admin Dashboard", session.RouteAdminDashboard),
		Filters:     views.NewFilters(session.RouteAdminDashboard + "/doctors"),
		Doctors:     views.DoctorList(models.DoctorList{Doctors: doctors}, h.role(c), views.MessageNoDoctorsListed),
		Slots:       views.AvailabilitySlots,
		Specialties: views.Specialties,
	})
}

// FilterDoctors renders the doctor list fragment for the filter bar.
func (h *Handler) FilterDoctors(c *gin.Context) {
	h.renderFilteredDoctors(c)
}

// renderFilteredDoctors picks card actions from the session role, whatever
// page the filter bar lives on.
func (h *Handler) renderFilteredDoctors(c *gin.Context) {
	list := h.Backend.FilterDoctors(c.Request.Context(),
		optional(c.Query("name")), optional(c.Query("time")), optional(c.Query("specialty")))
	if list.Failed {
		h.notify(c, NoticeFilterFailed)
	}
	h.render(c, views.FragmentDoctorList, views.DoctorList(list, h.role(c), views.MessageNoDoctors))
}

// AddDoctor saves a doctor from the add-doctor dialog and reloads the
// dashboard on success.
func (h *Handler) AddDoctor(c *gin.Context) {
	token := h.session(c).Token()
	if token == "" {
		h.fail(c, NoticeAdminLoginRequired, session.RouteLanding)
		return
	}

	doctor := models.Doctor{
		Name:      strings.TrimSpace(c.PostForm("name")),
		Specialty: strings.TrimSpace(c.PostForm("specialty")),
		Email:     strings.TrimSpace(c.PostForm("email")),
		Password:  c.PostForm("password"),
		Phone:     strings.TrimSpace(c.PostForm("phone")),
	}
	for _, value := range c.PostFormArray("availability") {
		slot, err := models.ParseSlotRange(value)
		if err != nil {
			h.log(c).Warn("add doctor: skipping availability", "value", value, "error", err)
			continue
		}
		doctor.AvailableTimes = append(doctor.AvailableTimes, slot)
	}

	res := h.Backend.SaveDoctor(c.Request.Context(), doctor, token)
	if !res.Success {
		h.fail(c, res.Message, session.RouteAdminDashboard)
		return
	}
	h.succeed(c, res.Message, session.RouteAdminDashboard)
}

// DeleteDoctor removes one doctor. Fragment requests get an empty body that
// replaces exactly that card.
func (h *Handler) DeleteDoctor(c *gin.Context) {
	token := h.session(c).Token()
	if token == "" {
		h.fail(c, NoticeLoginAgain, session.RouteLanding)
		return
	}
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.AbortWithStatus(http.StatusBadRequest)
		return
	}

	res := h.Backend.DeleteDoctor(c.Request.Context(), id, token)
	if !res.Success {
		h.fail(c, res.Message, session.RouteAdminDashboard)
		return
	}
	if !middleware.IsFragmentRequest(c) {
		h.succeed(c, res.Message, session.RouteAdminDashboard)
		return
	}
	h.notify(c, res.Message)
	middleware.SaveSession(c)
	c.String(http.StatusOK, "")
}

// optional trims value and reports an empty result as absent.
func optional(value string) *string {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	return &value
}
