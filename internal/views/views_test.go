package views

import (
	"bytes"
	"strings"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/decade006/java-database-capstone/internal/models"
	"github.com/decade006/java-database-capstone/internal/session"
)

func labels(view HeaderView) []string {
	out := make([]string, 0, len(view.Actions))
	for _, a := range view.Actions {
		out = append(out, a.Label)
	}
	return out
}

func sessionWith(role session.Role, token string) *session.Session {
	s := session.New()
	s.SetRole(role)
	s.SetToken(token)
	return s
}

func TestHeader(t *testing.T) {
	entry := []string{"Admin Login", "Doctor Login", "Patient Login", "Sign Up"}

	tests := []struct {
		name  string
		role  session.Role
		token string
		route string
		want  []string
	}{
		{name: "landing ignores role", role: session.RoleAdmin, token: "t", route: "/", want: entry},
		{name: "no role", role: session.RoleNone, route: "/pages/patientDashboard.html", want: entry},
		{name: "admin", role: session.RoleAdmin, token: "t", route: "/adminDashboard", want: []string{"Add Doctor", "Logout"}},
		{name: "admin off the dashboard", role: session.RoleAdmin, token: "t", route: "/pages/patientDashboard.html", want: []string{"Home", "Logout"}},
		{name: "admin without token", role: session.RoleAdmin, route: "/adminDashboard", want: entry},
		{name: "doctor", role: session.RoleDoctor, token: "t", route: "/doctorDashboard", want: []string{"Home", "Logout"}},
		{name: "doctor without token", role: session.RoleDoctor, route: "/doctorDashboard", want: []string{"Doctor Login"}},
		{name: "patient", role: session.RolePatient, route: "/pages/patientDashboard.html", want: []string{"Login", "Sign Up"}},
		{name: "logged patient", role: session.RoleLoggedPatient, token: "t", route: "/pages/loggedPatientDashboard.html", want: []string{"Home", "Appointments", "Logout"}},
		{name: "logged patient without token", role: session.RoleLoggedPatient, route: "/pages/loggedPatientDashboard.html", want: []string{"Login", "Sign Up"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			view := Header(sessionWith(tt.role, tt.token), tt.route)
			assert.Equal(t, tt.want, labels(view))
			assert.Equal(t, Brand, view.Brand)
		})
	}
}

func TestHeaderLogoutTargets(t *testing.T) {
	admin := Header(sessionWith(session.RoleAdmin, "t"), "/adminDashboard")
	assert.Equal(t, "/logout", admin.Actions[1].Target)
	assert.Equal(t, DialogAddDoctor, admin.Actions[0].Target)

	away := Header(sessionWith(session.RoleAdmin, "t"), "/pages/patientAppointments.html")
	assert.Equal(t, "/roles", away.Actions[0].Target)
	assert.Equal(t, "admin", away.Actions[0].Role)

	patient := Header(sessionWith(session.RoleLoggedPatient, "t"), "/pages/loggedPatientDashboard.html")
	assert.Equal(t, "/logout/patient", patient.Actions[2].Target)
	assert.Equal(t, "loggedPatient", patient.Actions[0].Role)
}

func TestHeaderShowsTokenSubject(t *testing.T) {
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{Subject: "dr.adams@example.com"}).SignedString([]byte("k"))
	require.NoError(t, err)

	view := Header(sessionWith(session.RoleDoctor, token), "/doctorDashboard")
	assert.Equal(t, "dr.adams@example.com", view.SignedInAs)

	view = Header(sessionWith(session.RoleDoctor, "opaque"), "/doctorDashboard")
	assert.Empty(t, view.SignedInAs)
}

func TestFooterIsRoleIndependent(t *testing.T) {
	footer := Footer()
	assert.Contains(t, footer.Copyright, Brand)
	require.Len(t, footer.Columns, 3)
	assert.Equal(t, "Company", footer.Columns[0].Title)
}

func TestBuildDoctorCard(t *testing.T) {
	doctor := models.Doctor{
		ID:        7,
		Name:      "Dr. Adams",
		Specialty: "Cardiologist",
		AvailableTimes: []models.TimeSlot{
			{StartTime: "09:00:00", EndTime: "10:00:00"},
			models.FormattedSlot("14:00-15:00"),
			{StartTime: "11:00:00"},
		},
	}

	tests := []struct {
		role session.Role
		want []CardAction
	}{
		{role: session.RoleAdmin, want: []CardAction{CardDelete}},
		{role: session.RolePatient, want: []CardAction{CardLoginPrompt}},
		{role: session.RoleLoggedPatient, want: []CardAction{CardBook}},
		{role: session.RoleDoctor, want: nil},
		{role: session.RoleNone, want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.role.String(), func(t *testing.T) {
			card := BuildDoctorCard(doctor, tt.role)
			assert.Equal(t, tt.want, card.Actions)
			assert.Equal(t, []string{"09:00-10:00", "14:00-15:00"}, card.Slots)
			assert.Equal(t, "doctor-7", card.ElementID())
		})
	}
}

func TestDoctorList(t *testing.T) {
	failed := DoctorList(models.DoctorList{Failed: true}, session.RoleAdmin, MessageNoDoctors)
	assert.Equal(t, MessageDoctorsLoadError, failed.Message)

	empty := DoctorList(models.DoctorList{Doctors: []models.Doctor{}}, session.RoleAdmin, MessageNoDoctors)
	assert.Equal(t, MessageNoDoctors, empty.Message)

	full := DoctorList(models.DoctorList{Doctors: []models.Doctor{{ID: 1}, {ID: 2}}}, session.RoleAdmin, MessageNoDoctors)
	assert.Empty(t, full.Message)
	assert.Len(t, full.Cards, 2)
}

func TestAppointmentRow(t *testing.T) {
	row := BuildAppointmentRow(RowPatient{ID: 3, Name: "Jane", Phone: "555", Email: "jane@example.com"}, 11, 2)
	require.Len(t, row.Cells, 5)
	assert.Equal(t, "3", row.Cells[0].Text)
	assert.True(t, row.Cells[4].IsPrescription())
	assert.Contains(t, row.Cells[4].Href, "appointmentId=11")

	row.InsertBeforeLast(Cell{Text: "a"}, Cell{Text: "b"})
	require.Len(t, row.Cells, 7)
	assert.Equal(t, "a", row.Cells[4].Text)
	assert.Equal(t, "b", row.Cells[5].Text)
	assert.True(t, row.Cells[6].IsPrescription())
}

func TestDashboardRow(t *testing.T) {
	row := DashboardRow(models.Appointment{
		ID:              11,
		PatientID:       3,
		PatientName:     "Jane",
		AppointmentTime: "2025-05-01T09:30:00",
		Status:          1,
	})

	require.Len(t, row.Cells, AppointmentColumns)
	assert.Equal(t, "11", row.Cells[0].Text)
	assert.Equal(t, "2025-05-01", row.Cells[4].Text)
	assert.Equal(t, "09:30", row.Cells[5].Text)
	assert.Equal(t, Cell{Kind: CellBadge, Text: "Completed", Class: "bg-success"}, row.Cells[6])

	scheduled := DashboardRow(models.Appointment{Status: 0})
	assert.Equal(t, "Scheduled", scheduled.Cells[6].Text)
	assert.Equal(t, "bg-secondary", scheduled.Cells[6].Class)
}

func TestAppointmentTable(t *testing.T) {
	assert.Equal(t, MessageAppointmentsLoadError, AppointmentTable(models.AppointmentList{Failed: true}).Message)
	assert.Equal(t, MessageNoAppointments, AppointmentTable(models.AppointmentList{}).Message)

	table := AppointmentTable(models.AppointmentList{Appointments: []models.Appointment{{ID: 1}, {ID: 2}}})
	assert.Empty(t, table.Message)
	assert.Len(t, table.Rows, 2)
	assert.Equal(t, AppointmentColumns, table.Columns)
}

func render(t *testing.T, name string, data any) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, Templates().ExecuteTemplate(&buf, name, data))
	return buf.String()
}

func TestTemplatesRender(t *testing.T) {
	t.Run("admin page with notice", func(t *testing.T) {
		s := sessionWith(session.RoleAdmin, "t")
		s.Flash("Doctor saved successfully")
		page := AdminPage{
			Page:        NewPage(s, "Admin Dashboard", session.RouteAdminDashboard),
			Filters:     NewFilters("/adminDashboard/doctors"),
			Doctors:     DoctorList(models.DoctorList{Doctors: []models.Doctor{{ID: 4, Name: "Dr. Lee"}}}, session.RoleAdmin, MessageNoDoctors),
			Slots:       AvailabilitySlots,
			Specialties: Specialties,
		}

		out := render(t, PageAdminDashboard, page)
		assert.Contains(t, out, `id="doctor-4"`)
		assert.Contains(t, out, `hx-post="/adminDashboard/doctors/4/delete"`)
		assert.Contains(t, out, "Add Doctor")
		assert.Contains(t, out, "Doctor saved successfully")
		assert.Empty(t, s.TakeNotice())
	})

	t.Run("appointment rows span every column when empty", func(t *testing.T) {
		out := render(t, FragmentAppointmentRows, AppointmentFragment{
			Table:      AppointmentTable(models.AppointmentList{}),
			DatePicker: DatePicker{Date: "2025-05-01", OOB: true},
		})
		assert.Contains(t, out, `colspan="8"`)
		assert.Contains(t, out, MessageNoAppointments)
		assert.Contains(t, out, `hx-swap-oob="true"`)
		assert.Contains(t, out, `value="2025-05-01"`)
	})

	t.Run("doctor list message", func(t *testing.T) {
		out := render(t, FragmentDoctorList, DoctorListView{Message: MessageNoDoctors})
		assert.Contains(t, out, MessageNoDoctors)
		assert.False(t, strings.Contains(out, "doctor-card"))
	})

	t.Run("every page parses and renders", func(t *testing.T) {
		s := sessionWith(session.RoleLoggedPatient, "t")
		pages := map[string]any{
			PageLanding:             LandingPage{Page: NewPage(s, "Home", "/")},
			PagePatientDashboard:    PatientPage{Page: NewPage(s, "Doctors", session.RouteLoggedPatientDashboard), Filters: NewFilters("/x")},
			PageDoctorDashboard:     DoctorPage{Page: NewPage(s, "Doctor", session.RouteDoctorDashboard), Table: AppointmentTable(models.AppointmentList{Failed: true})},
			PagePatientAppointments: PatientAppointmentsPage{Page: NewPage(s, "Appointments", session.RoutePatientAppointments), Message: "none"},
			PageBooking:             BookingPage{Page: NewPage(s, "Booking", "/pages/booking/1"), Booking: BookingView{Doctor: DoctorCard{ID: 1, Slots: []string{"09:00-10:00"}}}},
		}
		for name, data := range pages {
			out := render(t, name, data)
			assert.Contains(t, out, "</html>", name)
		}
	})
}
