package handlers

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/decade006/java-database-capstone/internal/models"
	"github.com/decade006/java-database-capstone/internal/session"
	"github.com/decade006/java-database-capstone/internal/views"
)

// Login notices.
const (
	NoticeMissingUsername     = "Please enter username and password"
	NoticeMissingEmail        = "Please enter email and password"
	NoticeInvalidAdmin        = "Invalid admin credentials"
	NoticeInvalidDoctor       = "Invalid doctor credentials"
	NoticeInvalidPatient      = "Invalid patient credentials"
	NoticeLoginUnavailable    = "Unable to login. Please try again later."
	NoticeSignupFieldsMissing = "Please fill in name, email and password"
)

// Landing renders the role selection page. The session gate has already
// dropped any stored role.
func (h *Handler) Landing(c *gin.Context) {
	h.render(c, views.PageLanding, views.LandingPage{
		Page: views.NewPage(h.session(c), "Home", session.RouteLanding),
	})
}

// SelectRole stores the submitted role and navigates to its dashboard.
func (h *Handler) SelectRole(c *gin.Context) {
	role, err := session.ParseRole(c.PostForm("role"))
	if err != nil {
		h.log(c).Warn("select role: rejected", "error", err)
		c.AbortWithStatus(http.StatusBadRequest)
		return
	}
	h.redirect(c, session.SelectRole(h.session(c), role))
}

// LoginAdmin exchanges admin credentials for a token.
func (h *Handler) LoginAdmin(c *gin.Context) {
	username := strings.TrimSpace(c.PostForm("username"))
	password := c.PostForm("password")
	if username == "" || password == "" {
		h.fail(c, NoticeMissingUsername, back(c))
		return
	}
	h.completeLogin(c, h.Backend.LoginAdmin(c.Request.Context(), username, password), session.RoleAdmin, NoticeInvalidAdmin)
}

// LoginDoctor exchanges doctor credentials for a token.
func (h *Handler) LoginDoctor(c *gin.Context) {
	email := strings.TrimSpace(c.PostForm("email"))
	password := c.PostForm("password")
	if email == "" || password == "" {
		h.fail(c, NoticeMissingEmail, back(c))
		return
	}
	h.completeLogin(c, h.Backend.LoginDoctor(c.Request.Context(), email, password), session.RoleDoctor, NoticeInvalidDoctor)
}

// LoginPatient exchanges patient credentials for a token.
func (h *Handler) LoginPatient(c *gin.Context) {
	email := strings.TrimSpace(c.PostForm("email"))
	password := c.PostForm("password")
	if email == "" || password == "" {
		h.fail(c, NoticeMissingEmail, back(c))
		return
	}
	h.completeLogin(c, h.Backend.LoginPatient(c.Request.Context(), email, password), session.RoleLoggedPatient, NoticeInvalidPatient)
}

// completeLogin stores the issued token before the role is selected, so the
// dashboard the browser lands on passes the session gate.
func (h *Handler) completeLogin(c *gin.Context, res models.LoginResult, role session.Role, invalid string) {
	if res.Failed {
		h.fail(c, NoticeLoginUnavailable, back(c))
		return
	}
	if !res.Success {
		notice := res.Message
		if notice == "" {
			notice = invalid
		}
		h.log(c).Info("login rejected", "role", role.String())
		h.fail(c, notice, back(c))
		return
	}

	sess := h.session(c)
	sess.Regenerate()
	sess.SetToken(res.Token)
	h.redirect(c, session.SelectRole(sess, role))
}

// SignupPatient registers a patient and returns to the public dashboard.
func (h *Handler) SignupPatient(c *gin.Context) {
	patient := models.Patient{
		Name:     strings.TrimSpace(c.PostForm("name")),
		Email:    strings.TrimSpace(c.PostForm("email")),
		Password: c.PostForm("password"),
		Phone:    strings.TrimSpace(c.PostForm("phone")),
		Address:  strings.TrimSpace(c.PostForm("address")),
	}
	if patient.Name == "" || patient.Email == "" || patient.Password == "" {
		h.fail(c, NoticeSignupFieldsMissing, back(c))
		return
	}

	res := h.Backend.SignupPatient(c.Request.Context(), patient)
	if !res.Success {
		h.fail(c, res.Message, back(c))
		return
	}
	h.session(c).SetRole(session.RolePatient)
	h.succeed(c, res.Message, session.RoutePatientDashboard)
}

// Logout clears the session and returns to the landing page.
func (h *Handler) Logout(c *gin.Context) {
	h.session(c).Clear()
	h.redirect(c, session.RouteLanding)
}

// LogoutPatient clears the session and continues browsing as an anonymous
// patient.
func (h *Handler) LogoutPatient(c *gin.Context) {
	sess := h.session(c)
	sess.Clear()
	h.redirect(c, session.SelectRole(sess, session.RolePatient))
}

// back is the page a failed plain form post returns to. Only same-origin
// referers are honored.
func back(c *gin.Context) string {
	ref, err := url.Parse(c.GetHeader("Referer"))
	if err != nil || ref.Path == "" || (ref.Host != "" && ref.Host != c.Request.Host) {
		return session.RouteLanding
	}
	if ref.RawQuery != "" {
		return ref.Path + "?" + ref.RawQuery
	}
	return ref.Path
}
