package views

import (
	"github.com/decade006/java-database-capstone/internal/models"
	"github.com/decade006/java-database-capstone/internal/session"
)

// Template names.
const (
	PageLanding             = "landing"
	PageAdminDashboard      = "adminDashboard"
	PageDoctorDashboard     = "doctorDashboard"
	PagePatientDashboard    = "patientDashboard"
	PagePatientAppointments = "patientAppointments"
	PageBooking             = "bookingPage"

	FragmentDoctorList      = "doctorList"
	FragmentAppointmentRows = "appointmentFragment"
	FragmentBooking         = "bookingOverlay"
)

// TimeFilters and Specialties feed the doctor filter selects.
var (
	TimeFilters = []string{"AM", "PM"}
	Specialties = []string{
		"Cardiologist", "Dermatologist", "Neurologist", "Pediatrician", "Orthopedic",
		"Gynecologist", "Psychiatrist", "Dentist", "Ophthalmologist", "ENT",
		"Urologist", "Oncologist", "Gastroenterologist", "General Physician",
	}
	// AvailabilitySlots are the ranges offered when adding a doctor.
	AvailabilitySlots = []string{
		"09:00-10:00", "10:00-11:00", "11:00-12:00",
		"14:00-15:00", "15:00-16:00", "16:00-17:00",
	}
)

// Page is the frame shared by every full page.
type Page struct {
	Title  string
	Route  string
	Header HeaderView
	Footer FooterView
	Notice string
}

// NewPage builds the frame for route, taking the pending notice out of the
// session.
func NewPage(s *session.Session, title, route string) Page {
	return Page{
		Title:  title,
		Route:  route,
		Header: Header(s, route),
		Footer: Footer(),
		Notice: s.TakeNotice(),
	}
}

// Filters describes the doctor filter bar.
type Filters struct {
	Endpoint    string
	Target      string
	Times       []string
	Specialties []string
}

func NewFilters(endpoint string) Filters {
	return Filters{Endpoint: endpoint, Target: "#content", Times: TimeFilters, Specialties: Specialties}
}

type LandingPage struct {
	Page
}

type AdminPage struct {
	Page
	Filters     Filters
	Doctors     DoctorListView
	Slots       []string
	Specialties []string
}

type PatientPage struct {
	Page
	Filters Filters
	Doctors DoctorListView
}

// DatePicker is the doctor dashboard date input. OOB marks an out of band
// replacement sent along with a table fragment.
type DatePicker struct {
	Date string
	OOB  bool
}

type DoctorPage struct {
	Page
	DatePicker DatePicker
	Name       string
	Table      AppointmentTableView
}

type AppointmentFragment struct {
	Table      AppointmentTableView
	DatePicker DatePicker
}

type PatientAppointmentsPage struct {
	Page
	Appointments []models.Appointment
	Message      string
}

type BookingView struct {
	Doctor  DoctorCard
	Patient models.Patient
	Today   string
}

type BookingPage struct {
	Page
	Booking BookingView
}
