package handlers

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/decade006/java-database-capstone/internal/middleware"
	"github.com/decade006/java-database-capstone/internal/session"
	"github.com/decade006/java-database-capstone/internal/views"
)

// RouterOptions carries the infrastructure the router wires around the
// handlers. Nil members disable the matching feature.
type RouterOptions struct {
	Store       session.Store
	RateLimiter *middleware.RateLimiter
	CORSOrigins []string
	Gatherer    prometheus.Gatherer

	// TrustedProxies lists the proxies whose X-Forwarded-For is believed
	// when resolving the client address. Nil trusts none.
	TrustedProxies []string
}

// NewRouter builds the portal's gin engine.
func NewRouter(h *Handler, opts RouterOptions) *gin.Engine {
	r := gin.New()
	if err := r.SetTrustedProxies(opts.TrustedProxies); err != nil {
		h.Logger.Warn("ignoring trusted proxies", "proxies", opts.TrustedProxies, "error", err)
		_ = r.SetTrustedProxies(nil)
	}
	r.Use(gin.Recovery(), middleware.RequestLogger(h.Logger))

	if len(opts.CORSOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     opts.CORSOrigins,
			AllowMethods:     []string{"GET", "POST", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "HX-Request", "HX-Current-URL", "HX-Target", "HX-Trigger"},
			ExposeHeaders:    []string{"HX-Trigger", "HX-Redirect", "HX-Reswap"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	r.SetHTMLTemplate(views.Templates())

	r.GET("/healthz", h.Healthz)
	if opts.Gatherer != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{})))
	}

	store := opts.Store
	if store == nil {
		store = session.NewMemoryStore(session.CookieOptions{})
	}
	app := r.Group("/", middleware.Session(store, h.Logger))

	// --- Pages and fragments ---
	pages := app.Group("/", middleware.SessionGate())
	{
		pages.GET(session.RouteLanding, h.Landing)
		pages.GET(session.RouteLandingIndex, h.Landing)

		pages.GET(session.RouteAdminDashboard, h.AdminDashboard)
		pages.GET(session.RouteAdminDashboard+"/doctors", h.FilterDoctors)

		pages.GET(session.RouteDoctorDashboard, h.DoctorDashboard)
		pages.GET(session.RouteDoctorDashboard+"/appointments", h.DoctorAppointments)

		pages.GET(session.RoutePatientDashboard, h.PatientDashboard)
		pages.GET(session.RoutePatientDashboard+"/doctors", h.PatientDoctors)
		pages.GET(session.RouteLoggedPatientDashboard, h.LoggedPatientDashboard)
		pages.GET(session.RouteLoggedPatientDashboard+"/doctors", h.LoggedPatientDoctors)
		pages.GET(session.RoutePatientAppointments, h.PatientAppointments)
	}

	// --- Actions ---
	app.POST("/roles", h.SelectRole)
	app.POST("/logout", h.Logout)
	app.POST("/logout/patient", h.LogoutPatient)

	app.POST(session.RouteAdminDashboard+"/doctors", h.AddDoctor)
	app.POST(session.RouteAdminDashboard+"/doctors/:id/delete", h.DeleteDoctor)

	app.GET("/pages/booking/:id", h.BookingOverlay)
	app.POST("/pages/booking/:id", h.BookAppointment)

	auth := app.Group("/")
	if opts.RateLimiter != nil {
		auth.Use(middleware.RateLimit(opts.RateLimiter))
	}
	{
		auth.POST("/login/admin", h.LoginAdmin)
		auth.POST("/login/doctor", h.LoginDoctor)
		auth.POST("/login/patient", h.LoginPatient)
		auth.POST("/signup/patient", h.SignupPatient)
	}

	r.NoRoute(func(c *gin.Context) {
		c.String(http.StatusNotFound, "page not found")
	})
	return r
}
