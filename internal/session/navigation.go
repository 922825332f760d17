package session

import "net/url"

// Page routes reachable through role selection.
const (
	RouteLanding                = "/"
	RouteLandingIndex           = "/index.html"
	RouteAdminDashboard         = "/adminDashboard"
	RouteDoctorDashboard        = "/doctorDashboard"
	RoutePatientDashboard       = "/pages/patientDashboard.html"
	RouteLoggedPatientDashboard = "/pages/loggedPatientDashboard.html"
	RoutePatientAppointments    = "/pages/patientAppointments.html"
)

// NoticeSessionExpired is flashed when a token-bearing role lost its token.
const NoticeSessionExpired = "Session expired or invalid login. Please log in again."

// SelectRole stores role and returns the page the browser must navigate to.
// Admin and doctor destinations carry the stored token as a query parameter.
func SelectRole(s *Session, role Role) string {
	s.SetRole(role)
	switch role {
	case RoleAdmin:
		return withToken(RouteAdminDashboard, s.Token())
	case RoleDoctor:
		return withToken(RouteDoctorDashboard, s.Token())
	case RolePatient:
		return RoutePatientDashboard
	case RoleLoggedPatient:
		return RouteLoggedPatientDashboard
	default:
		return RouteLanding
	}
}

func withToken(route, token string) string {
	if token == "" {
		return route
	}
	return route + "?" + url.Values{"token": {token}}.Encode()
}

// IsLanding reports whether path is the role selection page.
func IsLanding(path string) bool {
	return path == RouteLanding || path == RouteLandingIndex
}

// Validate applies the session validity rule for a page request. On the
// landing page the role is always cleared. Elsewhere a role that needs a
// token but has none is cleared and the expiry notice is flashed; the
// returned bool is then false and the caller must redirect to the landing.
func Validate(s *Session, path string) bool {
	if IsLanding(path) {
		s.ClearRole()
		return true
	}
	role, err := s.Role()
	if err != nil {
		s.ClearRole()
		return true
	}
	if role.RequiresToken() && s.Token() == "" {
		s.ClearRole()
		// A notice queued by the failed action explains more than expiry does.
		if _, pending := s.Get(KeyNotice); !pending {
			s.Flash(NoticeSessionExpired)
		}
		return false
	}
	return true
}
