package views

import (
	"net/url"
	"strconv"

	"github.com/decade006/java-database-capstone/internal/models"
)

// AppointmentColumns is the column count of the doctor dashboard table:
// ID, name, phone, email, date, time, status and prescription.
const AppointmentColumns = 8

const (
	MessageNoAppointments        = "No Appointments found for today."
	MessageAppointmentsLoadError = "Error loading appointments. Try again later."
)

type CellKind int

const (
	CellText CellKind = iota
	CellBadge
	CellPrescription
)

type Cell struct {
	Kind  CellKind
	Text  string
	Class string
	Href  string
}

func (c Cell) IsBadge() bool        { return c.Kind == CellBadge }
func (c Cell) IsPrescription() bool { return c.Kind == CellPrescription }

// RowPatient is the patient identity shown in an appointment row.
type RowPatient struct {
	ID    int64
	Name  string
	Phone string
	Email string
}

type AppointmentRow struct {
	AppointmentID int64
	DoctorID      int64
	Cells         []Cell
}

// BuildAppointmentRow lays out the identity cell, the patient cells and a
// trailing prescription action.
func BuildAppointmentRow(patient RowPatient, appointmentID, doctorID int64) AppointmentRow {
	prescription := url.Values{
		"appointmentId": {strconv.FormatInt(appointmentID, 10)},
		"patientName":   {patient.Name},
	}
	return AppointmentRow{
		AppointmentID: appointmentID,
		DoctorID:      doctorID,
		Cells: []Cell{
			{Kind: CellText, Text: strconv.FormatInt(patient.ID, 10), Class: "patient-id"},
			{Kind: CellText, Text: patient.Name},
			{Kind: CellText, Text: patient.Phone},
			{Kind: CellText, Text: patient.Email},
			{Kind: CellPrescription, Text: "Add Prescription", Href: "/pages/addPrescription.html?" + prescription.Encode()},
		},
	}
}

// InsertBeforeLast splices cells in front of the trailing action cell.
func (r *AppointmentRow) InsertBeforeLast(cells ...Cell) {
	if len(r.Cells) == 0 {
		r.Cells = append(r.Cells, cells...)
		return
	}
	last := r.Cells[len(r.Cells)-1]
	out := make([]Cell, 0, len(r.Cells)+len(cells))
	out = append(out, r.Cells[:len(r.Cells)-1]...)
	out = append(out, cells...)
	r.Cells = append(out, last)
}

// SetIdentity replaces the text of the identity cell.
func (r *AppointmentRow) SetIdentity(text string) {
	if len(r.Cells) > 0 {
		r.Cells[0].Text = text
	}
}

func StatusCell(a models.Appointment) Cell {
	class := "bg-secondary"
	if a.Completed() {
		class = "bg-success"
	}
	return Cell{Kind: CellBadge, Text: a.StatusLabel(), Class: class}
}

// DashboardRow is the doctor dashboard row of one appointment.
func DashboardRow(a models.Appointment) AppointmentRow {
	row := BuildAppointmentRow(RowPatient{
		ID:    a.PatientID,
		Name:  a.PatientName,
		Phone: a.PatientPhone,
		Email: a.PatientEmail,
	}, a.ID, a.DoctorID)
	row.SetIdentity(a.IDString())
	row.InsertBeforeLast(
		Cell{Kind: CellText, Text: a.Date()},
		Cell{Kind: CellText, Text: a.TimeOnly()},
		StatusCell(a),
	)
	return row
}

type AppointmentTableView struct {
	Rows    []AppointmentRow
	Message string
	Columns int
}

// AppointmentTable renders the outcome of an appointment query.
func AppointmentTable(list models.AppointmentList) AppointmentTableView {
	view := AppointmentTableView{Columns: AppointmentColumns}
	switch {
	case list.Failed:
		view.Message = MessageAppointmentsLoadError
	case len(list.Appointments) == 0:
		view.Message = MessageNoAppointments
	default:
		view.Rows = make([]AppointmentRow, 0, len(list.Appointments))
		for _, a := range list.Appointments {
			view.Rows = append(view.Rows, DashboardRow(a))
		}
	}
	return view
}
