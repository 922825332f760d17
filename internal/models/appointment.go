package models

import "strconv"

const (
	StatusScheduled = 0
	StatusCompleted = 1
)

type Appointment struct {
	ID                  int64  `json:"id"`
	DoctorID            int64  `json:"doctorId"`
	DoctorName          string `json:"doctorName,omitempty"`
	PatientID           int64  `json:"patientId"`
	PatientName         string `json:"patientName"`
	PatientPhone        string `json:"patientPhone"`
	PatientEmail        string `json:"patientEmail"`
	AppointmentDate     string `json:"appointmentDate,omitempty"`
	AppointmentTime     string `json:"appointmentTime,omitempty"` // full timestamp, e.g. 2025-05-01T09:00:00
	AppointmentTimeOnly string `json:"appointmentTimeOnly,omitempty"`
	Status              int    `json:"status"`
}

// Date returns the explicit appointment date or the date part of the timestamp.
func (a Appointment) Date() string {
	if a.AppointmentDate != "" {
		return a.AppointmentDate
	}
	if len(a.AppointmentTime) >= 10 {
		return a.AppointmentTime[:10]
	}
	return ""
}

// TimeOnly returns the explicit time or HH:MM taken from the timestamp.
func (a Appointment) TimeOnly() string {
	if a.AppointmentTimeOnly != "" {
		return a.AppointmentTimeOnly
	}
	if len(a.AppointmentTime) >= 16 {
		return a.AppointmentTime[11:16]
	}
	return ""
}

// Completed reports whether the status code is 1. Every other code is
// treated as scheduled.
func (a Appointment) Completed() bool {
	return a.Status == StatusCompleted
}

// StatusLabel is the badge text for the status code.
func (a Appointment) StatusLabel() string {
	if a.Completed() {
		return "Completed"
	}
	return "Scheduled"
}

// IDString is the identifier as shown in tables.
func (a Appointment) IDString() string {
	return strconv.FormatInt(a.ID, 10)
}

type AppointmentList struct {
	Appointments []Appointment `json:"appointments"`
	Failed       bool          `json:"-"`
}

// Booking is the body of a new appointment request.
type Booking struct {
	Doctor          Ref    `json:"doctor"`
	Patient         Ref    `json:"patient"`
	AppointmentTime string `json:"appointmentTime"`
	Status          int    `json:"status"`
}

// Ref references an entity by id inside a request body.
type Ref struct {
	ID int64 `json:"id"`
}
