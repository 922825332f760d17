package views

import (
	"strconv"

	"github.com/decade006/java-database-capstone/internal/models"
	"github.com/decade006/java-database-capstone/internal/session"
)

// Messages shown in place of the doctor list.
const (
	MessageNoDoctors        = "No doctors found with the given filters."
	MessageDoctorsLoadError = "Unable to load doctors. Please try again later."
	MessageNoDoctorsListed  = "No doctors available."
)

type CardAction string

const (
	CardDelete      CardAction = "delete"       // admin removes the doctor
	CardLoginPrompt CardAction = "login-prompt" // anonymous patient is asked to log in
	CardBook        CardAction = "book"         // logged patient opens the booking overlay
)

type DoctorCard struct {
	ID        int64
	Name      string
	Specialty string
	Email     string
	Phone     string
	Slots     []string
	Actions   []CardAction
}

// ElementID is the DOM id of the card, targeted when the card is removed.
func (c DoctorCard) ElementID() string {
	return "doctor-" + strconv.FormatInt(c.ID, 10)
}

func (c DoctorCard) Has(action CardAction) bool {
	for _, a := range c.Actions {
		if a == action {
			return true
		}
	}
	return false
}

// BuildDoctorCard prepares one doctor for display with the actions allowed
// for role.
func BuildDoctorCard(doctor models.Doctor, role session.Role) DoctorCard {
	card := DoctorCard{
		ID:        doctor.ID,
		Name:      doctor.Name,
		Specialty: doctor.Specialty,
		Email:     doctor.Email,
		Phone:     doctor.Phone,
		Slots:     doctor.SlotLabels(),
	}
	switch role {
	case session.RoleAdmin:
		card.Actions = []CardAction{CardDelete}
	case session.RolePatient:
		card.Actions = []CardAction{CardLoginPrompt}
	case session.RoleLoggedPatient:
		card.Actions = []CardAction{CardBook}
	case session.RoleDoctor, session.RoleNone:
	}
	return card
}

// DoctorListView is the content of a doctor list container. Message replaces
// the cards when set.
type DoctorListView struct {
	Cards   []DoctorCard
	Message string
}

// DoctorList renders the outcome of a doctor query. emptyMessage is shown for
// a successful query without matches.
func DoctorList(list models.DoctorList, role session.Role, emptyMessage string) DoctorListView {
	if list.Failed {
		return DoctorListView{Message: MessageDoctorsLoadError}
	}
	if len(list.Doctors) == 0 {
		return DoctorListView{Message: emptyMessage}
	}
	cards := make([]DoctorCard, 0, len(list.Doctors))
	for _, d := range list.Doctors {
		cards = append(cards, BuildDoctorCard(d, role))
	}
	return DoctorListView{Cards: cards}
}
