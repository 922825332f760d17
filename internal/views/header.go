package views

import (
	"github.com/decade006/java-database-capstone/internal/session"
	"github.com/decade006/java-database-capstone/internal/utils"
)

// Brand is the product name shown in header and footer.
const Brand = "Hospital CMS"

// Dialog ids opened by header actions.
const (
	DialogAdminLogin    = "adminLogin"
	DialogDoctorLogin   = "doctorLogin"
	DialogPatientLogin  = "patientLogin"
	DialogPatientSignup = "patientSignup"
	DialogAddDoctor     = "addDoctor"
)

type ActionKind string

const (
	ActionDialog ActionKind = "dialog" // opens Target dialog
	ActionPost   ActionKind = "post"   // submits a form to Target
	ActionLink   ActionKind = "link"   // navigates to Target
)

// HeaderAction is one button in the header navigation.
type HeaderAction struct {
	Label  string
	Kind   ActionKind
	Target string
	Role   string // submitted with post actions to the role selector
	Style  string
}

func (a HeaderAction) IsDialog() bool { return a.Kind == ActionDialog }
func (a HeaderAction) IsPost() bool   { return a.Kind == ActionPost }
func (a HeaderAction) IsLink() bool   { return a.Kind == ActionLink }

type HeaderView struct {
	Brand      string
	SignedInAs string
	Actions    []HeaderAction
}

// Header chooses the navigation for the session. It never mutates the
// session; validity is enforced before rendering.
func Header(s *session.Session, route string) HeaderView {
	view := HeaderView{Brand: Brand}
	if session.IsLanding(route) {
		view.Actions = entryActions()
		return view
	}

	role, _ := s.Role()
	token := s.Token()
	switch role {
	case session.RoleAdmin:
		view.Actions = adminActions(token, route)
	case session.RoleDoctor:
		view.Actions = doctorActions(token)
	case session.RolePatient:
		view.Actions = patientActions()
	case session.RoleLoggedPatient:
		view.Actions = loggedPatientActions(token)
	case session.RoleNone:
		view.Actions = entryActions()
	default:
		view.Actions = entryActions()
	}

	if role.RequiresToken() && token != "" {
		if sub, ok := utils.TokenSubject(token); ok {
			view.SignedInAs = sub
		}
	}
	return view
}

func entryActions() []HeaderAction {
	return []HeaderAction{
		{Label: "Admin Login", Kind: ActionDialog, Target: DialogAdminLogin, Style: "btn-outline-primary"},
		{Label: "Doctor Login", Kind: ActionDialog, Target: DialogDoctorLogin, Style: "btn-outline-primary"},
		{Label: "Patient Login", Kind: ActionDialog, Target: DialogPatientLogin, Style: "btn-outline-primary"},
		{Label: "Sign Up", Kind: ActionDialog, Target: DialogPatientSignup, Style: "btn-primary"},
	}
}

func logoutAction(target string) HeaderAction {
	return HeaderAction{Label: "Logout", Kind: ActionPost, Target: target, Style: "btn-outline-danger"}
}

// adminActions offers Add Doctor only where the add-doctor dialog is
// rendered; elsewhere Home leads back to the dashboard.
func adminActions(token, route string) []HeaderAction {
	if token == "" {
		return entryActions()
	}
	first := HeaderAction{Label: "Home", Kind: ActionPost, Target: "/roles", Role: session.RoleAdmin.String(), Style: "btn-primary"}
	if route == session.RouteAdminDashboard {
		first = HeaderAction{Label: "Add Doctor", Kind: ActionDialog, Target: DialogAddDoctor, Style: "btn-success"}
	}
	return []HeaderAction{first, logoutAction("/logout")}
}

func doctorActions(token string) []HeaderAction {
	if token == "" {
		return []HeaderAction{
			{Label: "Doctor Login", Kind: ActionDialog, Target: DialogDoctorLogin, Style: "btn-outline-primary"},
		}
	}
	return []HeaderAction{
		{Label: "Home", Kind: ActionPost, Target: "/roles", Role: session.RoleDoctor.String(), Style: "btn-primary"},
		logoutAction("/logout"),
	}
}

func patientActions() []HeaderAction {
	return []HeaderAction{
		{Label: "Login", Kind: ActionDialog, Target: DialogPatientLogin, Style: "btn-outline-primary"},
		{Label: "Sign Up", Kind: ActionDialog, Target: DialogPatientSignup, Style: "btn-primary"},
	}
}

func loggedPatientActions(token string) []HeaderAction {
	if token == "" {
		return patientActions()
	}
	return []HeaderAction{
		{Label: "Home", Kind: ActionPost, Target: "/roles", Role: session.RoleLoggedPatient.String(), Style: "btn-primary"},
		{Label: "Appointments", Kind: ActionLink, Target: session.RoutePatientAppointments, Style: "btn-outline-secondary"},
		logoutAction("/logout/patient"),
	}
}
