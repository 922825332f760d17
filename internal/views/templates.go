package views

import "html/template"

// Templates parses every page and fragment template into one set.
func Templates() *template.Template {
	return template.Must(template.New("portal").Parse(layoutTemplates + listTemplates + pageTemplates))
}

const layoutTemplates = `
{{define "top"}}<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>{{.Title}} | Hospital CMS</title>
  <link rel="stylesheet" href="https://cdn.jsdelivr.net/npm/bootstrap@5.3.3/dist/css/bootstrap.min.css">
  <script src="https://unpkg.com/htmx.org@1.9.12"></script>
  <script>
    document.addEventListener("DOMContentLoaded", function () {
      document.body.addEventListener("notice", function (evt) { alert(evt.detail.value); });
    });
  </script>
</head>
<body>
<div id="header">{{template "header" .Header}}</div>
<main class="container" id="main">
{{end}}

{{define "bottom"}}
</main>
<div id="booking-overlay"></div>
{{template "dialogs" .}}
<div id="footer">{{template "footer" .Footer}}</div>
{{with .Notice}}<script>alert({{.}});</script>{{end}}
</body>
</html>
{{end}}

{{define "header"}}
<header class="header py-3 mb-4 border-bottom">
  <div class="container d-flex flex-wrap justify-content-between align-items-center">
    <div class="d-flex align-items-center">
      <span class="fs-4">{{.Brand}}</span>
      {{with .SignedInAs}}<small class="ms-3 text-muted">Signed in as {{.}}</small>{{end}}
    </div>
    <nav class="d-flex gap-2">
      {{range .Actions}}
        {{if .IsDialog}}<button type="button" class="btn {{.Style}}" onclick="document.getElementById('{{.Target}}').showModal()">{{.Label}}</button>
        {{else if .IsPost}}<form method="post" action="{{.Target}}" class="d-inline">{{with .Role}}<input type="hidden" name="role" value="{{.}}">{{end}}<button type="submit" class="btn {{.Style}}">{{.Label}}</button></form>
        {{else if .IsLink}}<a class="btn {{.Style}}" href="{{.Target}}">{{.Label}}</a>
        {{end}}
      {{end}}
    </nav>
  </div>
</header>
{{end}}

{{define "footer"}}
<footer class="footer bg-light border-top py-4 mt-5">
  <div class="container">
    <div class="row align-items-center mb-3">
      <div class="col-md-6"><p class="mb-0">{{.Copyright}}</p></div>
    </div>
    <div class="row g-3">
      {{range .Columns}}
      <div class="col-6 col-md-4">
        <h5>{{.Title}}</h5>
        <ul class="list-unstyled small">
          {{range .Links}}<li><a href="{{.Href}}" class="link-secondary text-decoration-none">{{.Label}}</a></li>{{end}}
        </ul>
      </div>
      {{end}}
    </div>
  </div>
</footer>
{{end}}

{{define "dialogs"}}
<dialog id="adminLogin" class="modal-dialog p-4">
  <h3>Admin Login</h3>
  <form method="post" action="/login/admin" hx-post="/login/admin" hx-swap="none">
    <input class="form-control mb-2" type="text" name="username" placeholder="Username">
    <input class="form-control mb-2" type="password" name="password" placeholder="Password">
    <button type="submit" class="btn btn-primary">Login</button>
    <button type="button" class="btn btn-link" onclick="this.closest('dialog').close()">Close</button>
  </form>
</dialog>
<dialog id="doctorLogin" class="modal-dialog p-4">
  <h3>Doctor Login</h3>
  <form method="post" action="/login/doctor" hx-post="/login/doctor" hx-swap="none">
    <input class="form-control mb-2" type="email" name="email" placeholder="Email">
    <input class="form-control mb-2" type="password" name="password" placeholder="Password">
    <button type="submit" class="btn btn-primary">Login</button>
    <button type="button" class="btn btn-link" onclick="this.closest('dialog').close()">Close</button>
  </form>
</dialog>
<dialog id="patientLogin" class="modal-dialog p-4">
  <h3>Patient Login</h3>
  <form method="post" action="/login/patient" hx-post="/login/patient" hx-swap="none">
    <input class="form-control mb-2" type="email" name="email" placeholder="Email">
    <input class="form-control mb-2" type="password" name="password" placeholder="Password">
    <button type="submit" class="btn btn-primary">Login</button>
    <button type="button" class="btn btn-link" onclick="this.closest('dialog').close()">Close</button>
  </form>
</dialog>
<dialog id="patientSignup" class="modal-dialog p-4">
  <h3>Patient Sign Up</h3>
  <form method="post" action="/signup/patient" hx-post="/signup/patient" hx-swap="none">
    <input class="form-control mb-2" type="text" name="name" placeholder="Name">
    <input class="form-control mb-2" type="email" name="email" placeholder="Email">
    <input class="form-control mb-2" type="password" name="password" placeholder="Password">
    <input class="form-control mb-2" type="tel" name="phone" placeholder="Phone">
    <input class="form-control mb-2" type="text" name="address" placeholder="Address">
    <button type="submit" class="btn btn-primary">Sign Up</button>
    <button type="button" class="btn btn-link" onclick="this.closest('dialog').close()">Close</button>
  </form>
</dialog>
{{end}}
`

const listTemplates = `
{{define "filters"}}
<form id="filters" class="d-flex flex-wrap gap-2 mb-4" onsubmit="return false">
  <input type="text" id="searchBar" name="name" class="form-control w-auto" placeholder="Search by name"
         hx-get="{{.Endpoint}}" hx-trigger="input changed" hx-target="{{.Target}}" hx-include="#filters">
  <select id="filterTime" name="time" class="form-select w-auto"
          hx-get="{{.Endpoint}}" hx-trigger="change" hx-target="{{.Target}}" hx-include="#filters">
    <option value="">Sort by time</option>
    {{range .Times}}<option value="{{.}}">{{.}}</option>{{end}}
  </select>
  <select id="filterSpecialty" name="specialty" class="form-select w-auto"
          hx-get="{{.Endpoint}}" hx-trigger="change" hx-target="{{.Target}}" hx-include="#filters">
    <option value="">Filter by specialty</option>
    {{range .Specialties}}<option value="{{.}}">{{.}}</option>{{end}}
  </select>
</form>
{{end}}

{{define "doctorCard"}}
<div class="col" id="{{.ElementID}}">
  <div class="card doctor-card h-100">
    <div class="card-body doctor-info">
      <h3 class="card-title">{{.Name}}</h3>
      <p class="mb-1">Specialty: {{.Specialty}}</p>
      <p class="mb-1">Email: {{.Email}}</p>
      <p class="mb-1">Available:
        {{range .Slots}}<span class="badge bg-light text-dark me-1">{{.}}</span>{{else}}-{{end}}
      </p>
    </div>
    <div class="card-footer card-actions">
      {{if .Has "delete"}}<button type="button" class="btn btn-danger" hx-post="/adminDashboard/doctors/{{.ID}}/delete" hx-target="#{{.ElementID}}" hx-swap="outerHTML">Delete</button>{{end}}
      {{if .Has "login-prompt"}}<button type="button" class="btn btn-primary" hx-get="/pages/booking/{{.ID}}" hx-swap="none">Book Now</button>{{end}}
      {{if .Has "book"}}<button type="button" class="btn btn-primary" hx-get="/pages/booking/{{.ID}}" hx-target="#booking-overlay">Book Now</button>{{end}}
    </div>
  </div>
</div>
{{end}}

{{define "doctorList"}}
{{if .Message}}<p class="noPatientRecord text-center">{{.Message}}</p>
{{else}}<div class="row row-cols-1 row-cols-md-3 g-4">{{range .Cards}}{{template "doctorCard" .}}{{end}}</div>
{{end}}
{{end}}

{{define "datePicker"}}
<input type="date" id="datePicker" name="date" value="{{.Date}}" class="form-control w-auto"
       hx-get="/doctorDashboard/appointments" hx-trigger="change" hx-target="#patientTableBody" hx-include="#appointment-filters"{{if .OOB}} hx-swap-oob="true"{{end}}>
{{end}}

{{define "cell"}}{{if .IsBadge}}<span class="badge {{.Class}}">{{.Text}}</span>{{else if .IsPrescription}}<a class="btn btn-sm btn-outline-primary prescription-btn" href="{{.Href}}">{{.Text}}</a>{{else}}{{.Text}}{{end}}{{end}}

{{define "appointmentRows"}}
{{if .Message}}<tr><td colspan="{{.Columns}}" class="text-center noPatientRecord">{{.Message}}</td></tr>
{{else}}{{range .Rows}}<tr id="appointment-{{.AppointmentID}}">{{range .Cells}}<td>{{template "cell" .}}</td>{{end}}</tr>{{end}}
{{end}}
{{end}}

{{define "appointmentFragment"}}
{{template "appointmentRows" .Table}}
{{if .DatePicker.OOB}}{{template "datePicker" .DatePicker}}{{end}}
{{end}}

{{define "bookingOverlay"}}
<dialog id="booking-dialog" class="booking-modal p-4" open>
  <h3>Book an Appointment</h3>
  <form method="post" action="/pages/booking/{{.Doctor.ID}}" hx-post="/pages/booking/{{.Doctor.ID}}" hx-swap="none">
    <input class="form-control mb-2" type="text" value="{{.Patient.Name}}" disabled>
    <input class="form-control mb-2" type="email" value="{{.Patient.Email}}" disabled>
    <input class="form-control mb-2" type="text" value="{{.Doctor.Name}}" disabled>
    <input class="form-control mb-2" type="text" value="{{.Doctor.Specialty}}" disabled>
    <input class="form-control mb-2" type="date" name="date" min="{{.Today}}" required>
    <select class="form-select mb-2" name="slot" required>
      {{range .Doctor.Slots}}<option value="{{.}}">{{.}}</option>{{end}}
    </select>
    <button type="submit" class="btn btn-primary">Confirm Booking</button>
    <button type="button" class="btn btn-link" onclick="this.closest('dialog').remove()">Cancel</button>
  </form>
</dialog>
{{end}}
`

const pageTemplates = `
{{define "landing"}}{{template "top" .}}
<section class="text-center py-5">
  <h2 class="mb-4">Select Your Role</h2>
  <div class="d-flex justify-content-center gap-3">
    <button type="button" class="btn btn-primary" onclick="document.getElementById('adminLogin').showModal()">Admin</button>
    <button type="button" class="btn btn-primary" onclick="document.getElementById('doctorLogin').showModal()">Doctor</button>
    <form method="post" action="/roles" class="d-inline">
      <input type="hidden" name="role" value="patient">
      <button type="submit" class="btn btn-primary">Patient</button>
    </form>
  </div>
</section>
{{template "bottom" .}}{{end}}

{{define "adminDashboard"}}{{template "top" .}}
{{template "filters" .Filters}}
<div id="content">{{template "doctorList" .Doctors}}</div>
<dialog id="addDoctor" class="modal-dialog p-4">
  <h3>Add Doctor</h3>
  <form method="post" action="/adminDashboard/doctors">
    <input class="form-control mb-2" type="text" name="name" placeholder="Doctor Name" required>
    <select class="form-select mb-2" name="specialty" required>
      <option value="">Select Specialization</option>
      {{range .Specialties}}<option value="{{.}}">{{.}}</option>{{end}}
    </select>
    <input class="form-control mb-2" type="email" name="email" placeholder="Email" required>
    <input class="form-control mb-2" type="password" name="password" placeholder="Password" required>
    <input class="form-control mb-2" type="tel" name="phone" placeholder="Mobile No." required>
    <fieldset class="mb-2">
      <legend class="fs-6">Availability</legend>
      {{range .Slots}}<label class="me-2"><input type="checkbox" name="availability" value="{{.}}"> {{.}}</label>{{end}}
    </fieldset>
    <button type="submit" class="btn btn-success">Save</button>
    <button type="button" class="btn btn-link" onclick="this.closest('dialog').close()">Close</button>
  </form>
</dialog>
{{template "bottom" .}}{{end}}

{{define "patientDashboard"}}{{template "top" .}}
{{template "filters" .Filters}}
<div id="content">{{template "doctorList" .Doctors}}</div>
{{template "bottom" .}}{{end}}

{{define "doctorDashboard"}}{{template "top" .}}
<form id="appointment-filters" class="d-flex flex-wrap gap-2 mb-4" onsubmit="return false">
  <input type="text" id="searchBar" name="name" value="{{.Name}}" class="form-control w-auto" placeholder="Search by patient name"
         hx-get="/doctorDashboard/appointments" hx-trigger="input changed" hx-target="#patientTableBody" hx-include="#appointment-filters">
  <button type="button" id="todayButton" class="btn btn-primary"
          hx-get="/doctorDashboard/appointments?today=1" hx-target="#patientTableBody" hx-include="#appointment-filters">Today</button>
  {{template "datePicker" .DatePicker}}
</form>
<table class="table table-striped" id="patientTable">
  <thead class="table-header">
    <tr><th>Patient ID</th><th>Name</th><th>Phone No.</th><th>Email</th><th>Date</th><th>Time</th><th>Status</th><th>Prescription</th></tr>
  </thead>
  <tbody id="patientTableBody">{{template "appointmentRows" .Table}}</tbody>
</table>
{{template "bottom" .}}{{end}}

{{define "patientAppointments"}}{{template "top" .}}
<h2 class="mb-3">Your Appointments</h2>
<table class="table table-striped" id="patientAppointmentsTable">
  <thead class="table-header">
    <tr><th>Patient Name</th><th>Doctor Name</th><th>Date</th><th>Time</th><th>Status</th></tr>
  </thead>
  <tbody>
  {{if .Message}}<tr><td colspan="5" class="text-center noPatientRecord">{{.Message}}</td></tr>
  {{else}}{{range .Appointments}}<tr><td>{{.PatientName}}</td><td>{{.DoctorName}}</td><td>{{.Date}}</td><td>{{.TimeOnly}}</td><td>{{.StatusLabel}}</td></tr>{{end}}
  {{end}}
  </tbody>
</table>
{{template "bottom" .}}{{end}}

{{define "bookingPage"}}{{template "top" .}}
{{template "bookingOverlay" .Booking}}
{{template "bottom" .}}{{end}}
`
