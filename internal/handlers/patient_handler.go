package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/decade006/java-database-capstone/internal/models"
	"github.com/decade006/java-database-capstone/internal/session"
	"github.com/decade006/java-database-capstone/internal/views"
)

// PatientDashboard is the public doctor directory for anonymous patients.
func (h *Handler) PatientDashboard(c *gin.Context) {
	h.renderPatientPage(c, session.RoutePatientDashboard)
}

// LoggedPatientDashboard is the doctor directory with booking enabled.
func (h *Handler) LoggedPatientDashboard(c *gin.Context) {
	h.renderPatientPage(c, session.RouteLoggedPatientDashboard)
}

func (h *Handler) renderPatientPage(c *gin.Context, route string) {
	doctors := h.Backend.ListDoctors(c.Request.Context())
	h.render(c, views.PagePatientDashboard, views.PatientPage{
		Page:    views.NewPage(h.session(c), "Doctors", route),
		Filters: views.NewFilters(route + "/doctors"),
		Doctors: views.DoctorList(models.DoctorList{Doctors: doctors}, h.role(c), views.MessageNoDoctorsListed),
	})
}

// PatientDoctors renders the filtered directory fragment for anonymous
// patients.
func (h *Handler) PatientDoctors(c *gin.Context) {
	h.renderFilteredDoctors(c)
}

// LoggedPatientDoctors renders the filtered directory fragment with booking
// actions.
func (h *Handler) LoggedPatientDoctors(c *gin.Context) {
	h.renderFilteredDoctors(c)
}
