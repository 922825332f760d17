package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/decade006/java-database-capstone/internal/logging"
	"github.com/decade006/java-database-capstone/internal/middleware"
	"github.com/decade006/java-database-capstone/internal/models"
	"github.com/decade006/java-database-capstone/internal/session"
	"github.com/decade006/java-database-capstone/internal/views"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// fakeBackend records calls and answers with canned results.
type fakeBackend struct {
	doctors      []models.Doctor
	filtered     models.DoctorList
	appointments models.AppointmentList
	patientAppts models.AppointmentList
	login        models.LoginResult
	write        models.Result
	patient      *models.Patient

	calls       []string
	filterArgs  [3]*string
	apptDate    string
	apptName    *string
	savedDoctor models.Doctor
	deletedID   int64
	booking     models.Booking
	lastToken   string
	loginArgs   [2]string
	signedUp    models.Patient
}

func (f *fakeBackend) record(call, token string) {
	f.calls = append(f.calls, call)
	f.lastToken = token
}

func (f *fakeBackend) ListDoctors(context.Context) []models.Doctor {
	f.record("ListDoctors", "")
	return f.doctors
}

func (f *fakeBackend) FilterDoctors(_ context.Context, name, period, specialty *string) models.DoctorList {
	f.record("FilterDoctors", "")
	f.filterArgs = [3]*string{name, period, specialty}
	return f.filtered
}

func (f *fakeBackend) SaveDoctor(_ context.Context, doctor models.Doctor, token string) models.Result {
	f.record("SaveDoctor", token)
	f.savedDoctor = doctor
	return f.write
}

func (f *fakeBackend) DeleteDoctor(_ context.Context, id int64, token string) models.Result {
	f.record("DeleteDoctor", token)
	f.deletedID = id
	return f.write
}

func (f *fakeBackend) ListAppointments(_ context.Context, date string, patientName *string, token string) models.AppointmentList {
	f.record("ListAppointments", token)
	f.apptDate, f.apptName = date, patientName
	return f.appointments
}

func (f *fakeBackend) LoginAdmin(_ context.Context, username, password string) models.LoginResult {
	f.record("LoginAdmin", "")
	f.loginArgs = [2]string{username, password}
	return f.login
}

func (f *fakeBackend) LoginDoctor(_ context.Context, email, password string) models.LoginResult {
	f.record("LoginDoctor", "")
	f.loginArgs = [2]string{email, password}
	return f.login
}

func (f *fakeBackend) LoginPatient(_ context.Context, email, password string) models.LoginResult {
	f.record("LoginPatient", "")
	f.loginArgs = [2]string{email, password}
	return f.login
}

func (f *fakeBackend) SignupPatient(_ context.Context, patient models.Patient) models.Result {
	f.record("SignupPatient", "")
	f.signedUp = patient
	return f.write
}

func (f *fakeBackend) GetPatient(_ context.Context, token string) *models.Patient {
	f.record("GetPatient", token)
	return f.patient
}

func (f *fakeBackend) BookAppointment(_ context.Context, booking models.Booking, token string) models.Result {
	f.record("BookAppointment", token)
	f.booking = booking
	return f.write
}

func (f *fakeBackend) ListPatientAppointments(_ context.Context, _ int64, token string) models.AppointmentList {
	f.record("ListPatientAppointments", token)
	return f.patientAppts
}

// portal drives the router the way a browser would, carrying the session
// cookie between requests.
type portal struct {
	t      *testing.T
	store  *session.MemoryStore
	router *gin.Engine
	cookie *http.Cookie
}

func newPortal(t *testing.T, backend *fakeBackend) *portal {
	t.Helper()
	h := NewHandler(backend, logging.Discard(), nil)
	h.Now = func() time.Time { return time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC) }
	store := session.NewMemoryStore(session.CookieOptions{TTL: time.Hour})
	return &portal{
		t:      t,
		store:  store,
		router: NewRouter(h, RouterOptions{Store: store}),
	}
}

// signIn seeds the browser session with role and token.
func (p *portal) signIn(role session.Role, token string) {
	p.t.Helper()
	sess := session.New()
	sess.SetRole(role)
	sess.SetToken(token)
	rec := httptest.NewRecorder()
	require.NoError(p.t, p.store.Save(context.Background(), rec, sess))
	p.keepCookie(rec)
}

func (p *portal) keepCookie(rec *httptest.ResponseRecorder) {
	for _, c := range rec.Result().Cookies() {
		if c.Name == session.CookieName {
			p.cookie = c
		}
	}
}

func (p *portal) do(method, target string, form url.Values, fragment bool) *httptest.ResponseRecorder {
	p.t.Helper()
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	if fragment {
		req.Header.Set("HX-Request", "true")
	}
	if p.cookie != nil {
		req.AddCookie(p.cookie)
	}
	rec := httptest.NewRecorder()
	p.router.ServeHTTP(rec, req)
	p.keepCookie(rec)
	return rec
}

func (p *portal) get(target string) *httptest.ResponseRecorder {
	return p.do(http.MethodGet, target, nil, false)
}

func (p *portal) fragment(method, target string, form url.Values) *httptest.ResponseRecorder {
	return p.do(method, target, form, true)
}

// current loads the session the browser holds now.
func (p *portal) current() *session.Session {
	p.t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if p.cookie != nil {
		req.AddCookie(p.cookie)
	}
	sess, err := p.store.Load(context.Background(), req)
	require.NoError(p.t, err)
	return sess
}

func notice(rec *httptest.ResponseRecorder) string {
	return rec.Header().Get("HX-Trigger")
}

func TestHealthz(t *testing.T) {
	p := newPortal(t, &fakeBackend{})
	rec := p.get("/healthz")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestLandingClearsRole(t *testing.T) {
	p := newPortal(t, &fakeBackend{})
	p.signIn(session.RoleAdmin, "tok")

	rec := p.get("/")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Select Your Role")
	assert.Contains(t, rec.Body.String(), "Admin Login")

	role, err := p.current().Role()
	require.NoError(t, err)
	assert.Equal(t, session.RoleNone, role)
}

func TestSelectRole(t *testing.T) {
	p := newPortal(t, &fakeBackend{})

	rec := p.do(http.MethodPost, "/roles", url.Values{"role": {"patient"}}, false)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, session.RoutePatientDashboard, rec.Header().Get("Location"))

	role, _ := p.current().Role()
	assert.Equal(t, session.RolePatient, role)

	rec = p.do(http.MethodPost, "/roles", url.Values{"role": {"superuser"}}, false)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAdminLoginFlow(t *testing.T) {
	backend := &fakeBackend{
		login:   models.LoginResult{Token: "tok-1", Success: true},
		doctors: []models.Doctor{{ID: 4, Name: "Dr. Lee", Specialty: "Dentist"}},
	}
	p := newPortal(t, backend)

	rec := p.fragment(http.MethodPost, "/login/admin", url.Values{"username": {"admin"}, "password": {"secret"}})
	require.Equal(t, http.StatusNoContent, rec.Code)
	location := rec.Header().Get("HX-Redirect")
	assert.Equal(t, "/adminDashboard?token=tok-1", location)
	assert.Equal(t, [2]string{"admin", "secret"}, backend.loginArgs)

	sess := p.current()
	assert.Equal(t, "tok-1", sess.Token())
	role, _ := sess.Role()
	assert.Equal(t, session.RoleAdmin, role)

	rec = p.get(location)
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `id="doctor-4"`)
	assert.Contains(t, body, "Add Doctor")
	assert.Contains(t, body, `hx-post="/adminDashboard/doctors/4/delete"`)
}

func TestLoginFailures(t *testing.T) {
	tests := []struct {
		name   string
		path   string
		form   url.Values
		result models.LoginResult
		want   string
		calls  int
	}{
		{name: "admin missing password", path: "/login/admin", form: url.Values{"username": {"admin"}}, want: NoticeMissingUsername},
		{name: "doctor missing email", path: "/login/doctor", form: url.Values{"password": {"x"}}, want: NoticeMissingEmail},
		{name: "admin rejected", path: "/login/admin", form: url.Values{"username": {"a"}, "password": {"b"}}, want: NoticeInvalidAdmin, calls: 1},
		{name: "doctor rejected", path: "/login/doctor", form: url.Values{"email": {"a@b.c"}, "password": {"b"}}, want: NoticeInvalidDoctor, calls: 1},
		{name: "patient rejected", path: "/login/patient", form: url.Values{"email": {"a@b.c"}, "password": {"b"}}, want: NoticeInvalidPatient, calls: 1},
		{name: "server message wins", path: "/login/doctor", form: url.Values{"email": {"a@b.c"}, "password": {"b"}}, result: models.LoginResult{Message: "Account locked"}, want: "Account locked", calls: 1},
		{name: "backend unreachable", path: "/login/patient", form: url.Values{"email": {"a@b.c"}, "password": {"b"}}, result: models.LoginResult{Failed: true, Message: "Network error"}, want: NoticeLoginUnavailable, calls: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			backend := &fakeBackend{login: tt.result}
			p := newPortal(t, backend)

			rec := p.fragment(http.MethodPost, tt.path, tt.form)
			assert.Equal(t, http.StatusNoContent, rec.Code)
			assert.Equal(t, "none", rec.Header().Get("HX-Reswap"))
			assert.Contains(t, notice(rec), tt.want)
			assert.Len(t, backend.calls, tt.calls)
			assert.Empty(t, p.current().Token())
		})
	}
}

func TestLoginFailureWithoutHtmxFlashes(t *testing.T) {
	p := newPortal(t, &fakeBackend{})

	rec := p.do(http.MethodPost, "/login/admin", url.Values{}, false)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))

	rec = p.get("/")
	assert.Contains(t, rec.Body.String(), NoticeMissingUsername)
}

func TestPatientLoginLandsOnLoggedDashboard(t *testing.T) {
	p := newPortal(t, &fakeBackend{login: models.LoginResult{Token: "pt", Success: true}})

	rec := p.do(http.MethodPost, "/login/patient", url.Values{"email": {"jane@example.com"}, "password": {"pw"}}, false)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, session.RouteLoggedPatientDashboard, rec.Header().Get("Location"))
	role, _ := p.current().Role()
	assert.Equal(t, session.RoleLoggedPatient, role)
}

func TestSignupPatient(t *testing.T) {
	backend := &fakeBackend{write: models.Result{Success: true, Message: "Signup successful"}}
	p := newPortal(t, backend)

	rec := p.fragment(http.MethodPost, "/signup/patient", url.Values{
		"name": {"Jane"}, "email": {"jane@example.com"}, "password": {"pw"}, "phone": {"555"}, "address": {"Main St"},
	})
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, session.RoutePatientDashboard, rec.Header().Get("HX-Redirect"))
	assert.Equal(t, "Main St", backend.signedUp.Address)
	assert.Equal(t, "Signup successful", p.current().TakeNotice())

	rec = p.fragment(http.MethodPost, "/signup/patient", url.Values{"name": {"Jane"}})
	assert.Contains(t, notice(rec), NoticeSignupFieldsMissing)
}

func TestLogout(t *testing.T) {
	t.Run("generic logout goes to landing", func(t *testing.T) {
		p := newPortal(t, &fakeBackend{})
		p.signIn(session.RoleAdmin, "tok")

		rec := p.do(http.MethodPost, "/logout", url.Values{}, false)
		assert.Equal(t, "/", rec.Header().Get("Location"))
		assert.Empty(t, p.current().Values())
	})

	t.Run("patient logout keeps browsing anonymously", func(t *testing.T) {
		p := newPortal(t, &fakeBackend{})
		p.signIn(session.RoleLoggedPatient, "tok")

		rec := p.do(http.MethodPost, "/logout/patient", url.Values{}, false)
		assert.Equal(t, session.RoutePatientDashboard, rec.Header().Get("Location"))
		sess := p.current()
		role, _ := sess.Role()
		assert.Equal(t, session.RolePatient, role)
		assert.Empty(t, sess.Token())
	})
}

func TestSessionGateOnDashboards(t *testing.T) {
	backend := &fakeBackend{}
	p := newPortal(t, backend)
	p.signIn(session.RoleDoctor, "")

	rec := p.get(session.RouteDoctorDashboard)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))
	assert.Empty(t, backend.calls)

	rec = p.get("/")
	assert.Contains(t, rec.Body.String(), session.NoticeSessionExpired)
}

func TestFilterDoctors(t *testing.T) {
	t.Run("blank criteria are absent", func(t *testing.T) {
		backend := &fakeBackend{filtered: models.DoctorList{Doctors: []models.Doctor{}}}
		p := newPortal(t, backend)
		p.signIn(session.RoleAdmin, "tok")

		rec := p.fragment(http.MethodGet, "/adminDashboard/doctors?name=++&time=&specialty=Dentist", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Nil(t, backend.filterArgs[0])
		assert.Nil(t, backend.filterArgs[1])
		require.NotNil(t, backend.filterArgs[2])
		assert.Equal(t, "Dentist", *backend.filterArgs[2])
		assert.Contains(t, rec.Body.String(), views.MessageNoDoctors)
		assert.Empty(t, notice(rec))
	})

	t.Run("name is trimmed", func(t *testing.T) {
		backend := &fakeBackend{filtered: models.DoctorList{Doctors: []models.Doctor{{ID: 2, Name: "Dr. Adams"}}}}
		p := newPortal(t, backend)
		p.signIn(session.RoleAdmin, "tok")

		rec := p.fragment(http.MethodGet, "/adminDashboard/doctors?name=+Adams+", nil)
		require.NotNil(t, backend.filterArgs[0])
		assert.Equal(t, "Adams", *backend.filterArgs[0])
		assert.Contains(t, rec.Body.String(), `id="doctor-2"`)
	})

	t.Run("failure shows error and notice", func(t *testing.T) {
		backend := &fakeBackend{filtered: models.DoctorList{Failed: true}}
		p := newPortal(t, backend)
		p.signIn(session.RoleAdmin, "tok")

		rec := p.fragment(http.MethodGet, "/adminDashboard/doctors", nil)
		assert.Contains(t, rec.Body.String(), views.MessageDoctorsLoadError)
		assert.Contains(t, notice(rec), NoticeFilterFailed)
	})

	t.Run("logged patient cards offer booking", func(t *testing.T) {
		backend := &fakeBackend{filtered: models.DoctorList{Doctors: []models.Doctor{{ID: 3}}}}
		p := newPortal(t, backend)
		p.signIn(session.RoleLoggedPatient, "tok")

		rec := p.fragment(http.MethodGet, session.RouteLoggedPatientDashboard+"/doctors", nil)
		assert.Contains(t, rec.Body.String(), `hx-target="#booking-overlay"`)
	})
}

func TestAddDoctor(t *testing.T) {
	form := url.Values{
		"name":         {"Dr. Lee"},
		"specialty":    {"Dentist"},
		"email":        {"lee@example.com"},
		"password":     {"pw"},
		"phone":        {"555"},
		"availability": {"09:00-10:00", "garbage", "14:00-15:00"},
	}

	t.Run("without token", func(t *testing.T) {
		backend := &fakeBackend{}
		p := newPortal(t, backend)
		p.signIn(session.RolePatient, "")

		rec := p.fragment(http.MethodPost, "/adminDashboard/doctors", form)
		assert.Contains(t, notice(rec), NoticeAdminLoginRequired)
		assert.Empty(t, backend.calls)
	})

	t.Run("plain form without token explains itself", func(t *testing.T) {
		backend := &fakeBackend{}
		p := newPortal(t, backend)
		p.signIn(session.RoleAdmin, "")

		rec := p.do(http.MethodPost, "/adminDashboard/doctors", form, false)
		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, session.RouteLanding, rec.Header().Get("Location"))
		assert.Empty(t, backend.calls)

		body := p.get("/").Body.String()
		assert.Contains(t, body, NoticeAdminLoginRequired)
		assert.NotContains(t, body, session.NoticeSessionExpired)
	})

	t.Run("saves and reloads", func(t *testing.T) {
		backend := &fakeBackend{write: models.Result{Success: true, Message: "Doctor added"}}
		p := newPortal(t, backend)
		p.signIn(session.RoleAdmin, "tok")

		rec := p.do(http.MethodPost, "/adminDashboard/doctors", form, false)
		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, session.RouteAdminDashboard, rec.Header().Get("Location"))
		assert.Equal(t, "tok", backend.lastToken)
		assert.Equal(t, []models.TimeSlot{
			{StartTime: "09:00:00", EndTime: "10:00:00"},
			{StartTime: "14:00:00", EndTime: "15:00:00"},
		}, backend.savedDoctor.AvailableTimes)

		rec = p.get(session.RouteAdminDashboard)
		assert.Contains(t, rec.Body.String(), "Doctor added")
	})

	t.Run("backend refusal keeps the page", func(t *testing.T) {
		backend := &fakeBackend{write: models.Result{Message: "Email already exists"}}
		p := newPortal(t, backend)
		p.signIn(session.RoleAdmin, "tok")

		rec := p.fragment(http.MethodPost, "/adminDashboard/doctors", form)
		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Contains(t, notice(rec), "Email already exists")
		assert.Empty(t, rec.Header().Get("HX-Redirect"))
	})
}

func TestDeleteDoctor(t *testing.T) {
	t.Run("without token", func(t *testing.T) {
		backend := &fakeBackend{}
		p := newPortal(t, backend)

		rec := p.fragment(http.MethodPost, "/adminDashboard/doctors/4/delete", url.Values{})
		assert.Contains(t, notice(rec), NoticeLoginAgain)
		assert.Empty(t, backend.calls)
	})

	t.Run("plain form without token lands on the role picker", func(t *testing.T) {
		backend := &fakeBackend{}
		p := newPortal(t, backend)
		p.signIn(session.RoleAdmin, "")

		rec := p.do(http.MethodPost, "/adminDashboard/doctors/4/delete", url.Values{}, false)
		assert.Equal(t, session.RouteLanding, rec.Header().Get("Location"))
		assert.Contains(t, p.get("/").Body.String(), NoticeLoginAgain)
		assert.Empty(t, backend.calls)
	})

	t.Run("removes exactly the card", func(t *testing.T) {
		backend := &fakeBackend{write: models.Result{Success: true, Message: "Deleted"}}
		p := newPortal(t, backend)
		p.signIn(session.RoleAdmin, "tok")

		rec := p.fragment(http.MethodPost, "/adminDashboard/doctors/4/delete", url.Values{})
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Empty(t, rec.Body.String())
		assert.Contains(t, notice(rec), "Deleted")
		assert.Equal(t, int64(4), backend.deletedID)
		assert.Equal(t, "tok", backend.lastToken)
	})

	t.Run("failure leaves the card", func(t *testing.T) {
		backend := &fakeBackend{write: models.Result{Message: "Failed to delete"}}
		p := newPortal(t, backend)
		p.signIn(session.RoleAdmin, "tok")

		rec := p.fragment(http.MethodPost, "/adminDashboard/doctors/4/delete", url.Values{})
		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Equal(t, "none", rec.Header().Get("HX-Reswap"))
		assert.Contains(t, notice(rec), "Failed to delete")
	})
}

func TestDoctorDashboard(t *testing.T) {
	t.Run("defaults to today", func(t *testing.T) {
		backend := &fakeBackend{appointments: models.AppointmentList{Appointments: []models.Appointment{}}}
		p := newPortal(t, backend)
		p.signIn(session.RoleDoctor, "dtok")

		rec := p.get("/doctorDashboard?token=dtok&date=not-a-date")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "2025-05-01", backend.apptDate)
		assert.Nil(t, backend.apptName)
		assert.Equal(t, "dtok", backend.lastToken)
		assert.Contains(t, rec.Body.String(), views.MessageNoAppointments)
		assert.Contains(t, rec.Body.String(), `colspan="8"`)
	})

	t.Run("rows for the chosen date", func(t *testing.T) {
		backend := &fakeBackend{appointments: models.AppointmentList{Appointments: []models.Appointment{{
			ID: 11, PatientID: 3, PatientName: "Jane", AppointmentTime: "2025-05-03T10:00:00", Status: models.StatusCompleted,
		}}}}
		p := newPortal(t, backend)
		p.signIn(session.RoleDoctor, "dtok")

		rec := p.fragment(http.MethodGet, "/doctorDashboard/appointments?date=2025-05-03&name=+Jane+", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "2025-05-03", backend.apptDate)
		require.NotNil(t, backend.apptName)
		assert.Equal(t, "Jane", *backend.apptName)
		body := rec.Body.String()
		assert.Contains(t, body, `id="appointment-11"`)
		assert.Contains(t, body, "Completed")
		assert.NotContains(t, body, "hx-swap-oob")
	})

	t.Run("today button resets the picker", func(t *testing.T) {
		backend := &fakeBackend{appointments: models.AppointmentList{Failed: true}}
		p := newPortal(t, backend)
		p.signIn(session.RoleDoctor, "dtok")

		rec := p.fragment(http.MethodGet, "/doctorDashboard/appointments?today=1&date=2025-06-01", nil)
		assert.Equal(t, "2025-05-01", backend.apptDate)
		body := rec.Body.String()
		assert.Contains(t, body, views.MessageAppointmentsLoadError)
		assert.Contains(t, body, `hx-swap-oob="true"`)
		assert.Contains(t, body, `value="2025-05-01"`)
	})
}

func TestBookingOverlay(t *testing.T) {
	doctor := models.Doctor{ID: 9, Name: "Dr. Kim", Specialty: "ENT", AvailableTimes: []models.TimeSlot{{StartTime: "09:00:00", EndTime: "10:00:00"}}}
	patient := &models.Patient{ID: 21, Name: "Jane", Email: "jane@example.com"}

	t.Run("anonymous patient is asked to log in", func(t *testing.T) {
		backend := &fakeBackend{doctors: []models.Doctor{doctor}}
		p := newPortal(t, backend)
		p.signIn(session.RolePatient, "")

		rec := p.fragment(http.MethodGet, "/pages/booking/9", nil)
		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Contains(t, notice(rec), NoticeLoginToContinue)
		assert.Empty(t, backend.calls)
	})

	t.Run("logged patient without token", func(t *testing.T) {
		backend := &fakeBackend{}
		p := newPortal(t, backend)
		p.signIn(session.RoleLoggedPatient, "")

		rec := p.fragment(http.MethodGet, "/pages/booking/9", nil)
		assert.Contains(t, notice(rec), NoticeSessionExpired)
		assert.Empty(t, backend.calls)
	})

	t.Run("patient lookup failure", func(t *testing.T) {
		backend := &fakeBackend{doctors: []models.Doctor{doctor}}
		p := newPortal(t, backend)
		p.signIn(session.RoleLoggedPatient, "ptok")

		rec := p.fragment(http.MethodGet, "/pages/booking/9", nil)
		assert.Contains(t, notice(rec), NoticePatientUnavailable)
	})

	t.Run("renders doctor and patient", func(t *testing.T) {
		backend := &fakeBackend{doctors: []models.Doctor{doctor}, patient: patient}
		p := newPortal(t, backend)
		p.signIn(session.RoleLoggedPatient, "ptok")

		rec := p.fragment(http.MethodGet, "/pages/booking/9", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		body := rec.Body.String()
		assert.Contains(t, body, "Dr. Kim")
		assert.Contains(t, body, "jane@example.com")
		assert.Contains(t, body, `<option value="09:00-10:00">`)
		assert.Contains(t, body, `min="2025-05-01"`)
		assert.NotContains(t, body, "</html>")

		rec = p.get("/pages/booking/9")
		assert.Contains(t, rec.Body.String(), "</html>")
	})

	t.Run("unknown doctor", func(t *testing.T) {
		backend := &fakeBackend{doctors: []models.Doctor{doctor}, patient: patient}
		p := newPortal(t, backend)
		p.signIn(session.RoleLoggedPatient, "ptok")

		rec := p.fragment(http.MethodGet, "/pages/booking/99", nil)
		assert.Contains(t, notice(rec), NoticeDoctorNotFound)
	})
}

func TestBookAppointment(t *testing.T) {
	patient := &models.Patient{ID: 21, Name: "Jane"}

	t.Run("books the slot start", func(t *testing.T) {
		backend := &fakeBackend{patient: patient, write: models.Result{Success: true, Message: "Appointment booked"}}
		p := newPortal(t, backend)
		p.signIn(session.RoleLoggedPatient, "ptok")

		rec := p.fragment(http.MethodPost, "/pages/booking/9", url.Values{"date": {"2025-05-02"}, "slot": {"09:00-10:00"}})
		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Equal(t, session.RoutePatientAppointments, rec.Header().Get("HX-Redirect"))
		assert.Equal(t, models.Booking{
			Doctor:          models.Ref{ID: 9},
			Patient:         models.Ref{ID: 21},
			AppointmentTime: "2025-05-02T09:00:00",
			Status:          models.StatusScheduled,
		}, backend.booking)
		assert.Equal(t, "ptok", backend.lastToken)
	})

	t.Run("incomplete form", func(t *testing.T) {
		backend := &fakeBackend{patient: patient}
		p := newPortal(t, backend)
		p.signIn(session.RoleLoggedPatient, "ptok")

		rec := p.fragment(http.MethodPost, "/pages/booking/9", url.Values{"date": {"2025-05-02"}})
		assert.Contains(t, notice(rec), NoticeBookingIncomplete)
		assert.NotContains(t, backend.calls, "BookAppointment")
	})
}

func TestPatientAppointments(t *testing.T) {
	t.Run("lists appointments", func(t *testing.T) {
		backend := &fakeBackend{
			patient: &models.Patient{ID: 21, Name: "Jane"},
			patientAppts: models.AppointmentList{Appointments: []models.Appointment{{
				ID: 1, PatientName: "Jane", DoctorName: "Dr. Kim", AppointmentTime: "2025-05-02T09:00:00",
			}}},
		}
		p := newPortal(t, backend)
		p.signIn(session.RoleLoggedPatient, "ptok")

		rec := p.get(session.RoutePatientAppointments)
		require.Equal(t, http.StatusOK, rec.Code)
		body := rec.Body.String()
		assert.Contains(t, body, "Dr. Kim")
		assert.Contains(t, body, "Scheduled")
	})

	t.Run("anonymous patient is redirected", func(t *testing.T) {
		p := newPortal(t, &fakeBackend{})
		p.signIn(session.RolePatient, "")

		rec := p.get(session.RoutePatientAppointments)
		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, session.RoutePatientDashboard, rec.Header().Get("Location"))
	})

	t.Run("empty list", func(t *testing.T) {
		backend := &fakeBackend{patient: &models.Patient{ID: 21}, patientAppts: models.AppointmentList{Appointments: []models.Appointment{}}}
		p := newPortal(t, backend)
		p.signIn(session.RoleLoggedPatient, "ptok")

		rec := p.get(session.RoutePatientAppointments)
		assert.Contains(t, rec.Body.String(), MessageNoPatientAppointments)
	})
}

func TestPatientDashboards(t *testing.T) {
	backend := &fakeBackend{doctors: []models.Doctor{{ID: 5, Name: "Dr. Ode"}}}
	p := newPortal(t, backend)
	p.signIn(session.RolePatient, "")

	rec := p.get(session.RoutePatientDashboard)
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `id="doctor-5"`)
	assert.Contains(t, body, `hx-get="/pages/patientDashboard.html/doctors"`)
	assert.Contains(t, body, `hx-swap="none">Book Now`)
}

func TestCardActionsFollowSessionRole(t *testing.T) {
	doctors := []models.Doctor{{ID: 6, Name: "Dr. Bell"}}

	t.Run("logged patient on the admin dashboard cannot delete", func(t *testing.T) {
		p := newPortal(t, &fakeBackend{doctors: doctors})
		p.signIn(session.RoleLoggedPatient, "ptok")

		rec := p.get(session.RouteAdminDashboard)
		require.Equal(t, http.StatusOK, rec.Code)
		body := rec.Body.String()
		assert.Contains(t, body, `id="doctor-6"`)
		assert.NotContains(t, body, "/delete")
		assert.Contains(t, body, `hx-target="#booking-overlay">Book Now`)
	})

	t.Run("anonymous patient on the booking dashboard gets the login prompt", func(t *testing.T) {
		p := newPortal(t, &fakeBackend{doctors: doctors, filtered: models.DoctorList{Doctors: doctors}})
		p.signIn(session.RolePatient, "")

		body := p.get(session.RouteLoggedPatientDashboard).Body.String()
		assert.NotContains(t, body, `hx-target="#booking-overlay">Book Now`)
		assert.Contains(t, body, `hx-swap="none">Book Now`)

		body = p.fragment(http.MethodGet, session.RouteLoggedPatientDashboard+"/doctors", nil).Body.String()
		assert.NotContains(t, body, `hx-target="#booking-overlay">Book Now`)
		assert.Contains(t, body, `hx-swap="none">Book Now`)
	})

	t.Run("admin filter on a patient page keeps delete", func(t *testing.T) {
		p := newPortal(t, &fakeBackend{filtered: models.DoctorList{Doctors: doctors}})
		p.signIn(session.RoleAdmin, "tok")

		body := p.fragment(http.MethodGet, session.RoutePatientDashboard+"/doctors", nil).Body.String()
		assert.Contains(t, body, `hx-post="/adminDashboard/doctors/6/delete"`)
	})
}

func TestAdminDashboardWithoutDoctors(t *testing.T) {
	for name, doctors := range map[string][]models.Doctor{"nil": nil, "empty": {}} {
		t.Run(name, func(t *testing.T) {
			p := newPortal(t, &fakeBackend{doctors: doctors})
			p.signIn(session.RoleAdmin, "tok")

			rec := p.get(session.RouteAdminDashboard)
			require.Equal(t, http.StatusOK, rec.Code)
			body := rec.Body.String()
			assert.Contains(t, body, views.MessageNoDoctorsListed)
			assert.NotContains(t, body, "doctor-card")
			assert.Contains(t, body, `id="addDoctor"`)
		})
	}
}

func TestLoginIssuesFreshSessionID(t *testing.T) {
	p := newPortal(t, &fakeBackend{login: models.LoginResult{Token: "tok", Success: true}})
	p.signIn(session.RolePatient, "")
	planted := p.cookie

	rec := p.do(http.MethodPost, "/login/admin", url.Values{"username": {"admin"}, "password": {"pw"}}, false)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.NotNil(t, p.cookie)
	assert.NotEqual(t, planted.Value, p.cookie.Value)
	assert.Equal(t, "tok", p.current().Token())
	assert.Equal(t, 1, p.store.Len())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(planted)
	old, err := p.store.Load(context.Background(), req)
	require.NoError(t, err)
	assert.Empty(t, old.Token())
	assert.Empty(t, old.Values())
}

func TestLoginRateLimitUsesTrustedProxies(t *testing.T) {
	attempt := func(router *gin.Engine, forwardedFor string) int {
		req := httptest.NewRequest(http.MethodPost, "/login/admin", strings.NewReader(""))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		req.RemoteAddr = "203.0.113.7:40000"
		req.Header.Set("X-Forwarded-For", forwardedFor)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		return rec.Code
	}
	newRouter := func(proxies []string) *gin.Engine {
		ctx, cancel := context.WithCancel(context.Background())
		t.Cleanup(cancel)
		h := NewHandler(&fakeBackend{}, logging.Discard(), nil)
		return NewRouter(h, RouterOptions{
			RateLimiter:    middleware.NewRateLimiter(ctx, 1, 1),
			TrustedProxies: proxies,
		})
	}

	t.Run("forged header is ignored by default", func(t *testing.T) {
		router := newRouter(nil)
		assert.Equal(t, http.StatusSeeOther, attempt(router, "198.51.100.1"))
		assert.Equal(t, http.StatusTooManyRequests, attempt(router, "198.51.100.2"))
	})

	t.Run("configured proxy is believed", func(t *testing.T) {
		router := newRouter([]string{"203.0.113.7"})
		assert.Equal(t, http.StatusSeeOther, attempt(router, "198.51.100.1"))
		assert.Equal(t, http.StatusSeeOther, attempt(router, "198.51.100.2"))
	})
}
