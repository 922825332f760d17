package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

type Doctor struct {
	ID             int64      `json:"id,omitempty"`
	Name           string     `json:"name"`
	Email          string     `json:"email"`
	Phone          string     `json:"phone"`
	Specialty      string     `json:"specialty"`
	Password       string     `json:"password,omitempty"` // only sent when creating a doctor
	AvailableTimes []TimeSlot `json:"availableTimes"`
}

// SlotLabels returns the display form of every slot, dropping slots that
// cannot be shown.
func (d Doctor) SlotLabels() []string {
	labels := make([]string, 0, len(d.AvailableTimes))
	for _, slot := range d.AvailableTimes {
		if label := slot.Label(); label != "" {
			labels = append(labels, label)
		}
	}
	return labels
}

// TimeSlot is one available range. The backend sends either a pre-formatted
// "HH:MM-HH:MM" string or a {startTime, endTime} object.
type TimeSlot struct {
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`

	formatted string
}

// FormattedSlot wraps an already formatted range string.
func FormattedSlot(label string) TimeSlot {
	return TimeSlot{formatted: label}
}

// ParseSlotRange converts a "HH:MM-HH:MM" form value into a structured slot,
// appending seconds to times that lack them.
func ParseSlotRange(value string) (TimeSlot, error) {
	start, end, ok := strings.Cut(strings.TrimSpace(value), "-")
	start, end = strings.TrimSpace(start), strings.TrimSpace(end)
	if !ok || start == "" || end == "" {
		return TimeSlot{}, fmt.Errorf("models: invalid time range %q", value)
	}
	return TimeSlot{StartTime: withSeconds(start), EndTime: withSeconds(end)}, nil
}

func withSeconds(t string) string {
	if len(t) == 5 {
		return t + ":00"
	}
	return t
}

// Label is the display form: the pre-formatted string unchanged, or
// "HH:MM-HH:MM" built from the structured fields.
func (s TimeSlot) Label() string {
	if s.formatted != "" {
		return s.formatted
	}
	start, end := hourMinute(s.StartTime), hourMinute(s.EndTime)
	if start == "" || end == "" {
		return ""
	}
	return start + "-" + end
}

func hourMinute(t string) string {
	if len(t) > 5 {
		return t[:5]
	}
	return t
}

func (s *TimeSlot) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var label string
		if err := json.Unmarshal(data, &label); err != nil {
			return err
		}
		*s = TimeSlot{formatted: label}
		return nil
	}
	var raw struct {
		StartTime string `json:"startTime"`
		EndTime   string `json:"endTime"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*s = TimeSlot{StartTime: raw.StartTime, EndTime: raw.EndTime}
	return nil
}

func (s TimeSlot) MarshalJSON() ([]byte, error) {
	if s.formatted != "" {
		return json.Marshal(s.formatted)
	}
	return json.Marshal(struct {
		StartTime string `json:"startTime"`
		EndTime   string `json:"endTime"`
	}{s.StartTime, s.EndTime})
}

// DoctorList is the {doctors} envelope of the backend. Failed is set when the
// request did not complete, so callers can tell it apart from an empty match.
type DoctorList struct {
	Doctors []Doctor `json:"doctors"`
	Failed  bool     `json:"-"`
}

// Result is the {success, message} outcome of a write request.
type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// LoginResult carries the token issued by a login endpoint. Failed is set
// when the backend could not be reached or answered unreadably.
type LoginResult struct {
	Token   string `json:"token"`
	Success bool   `json:"-"`
	Failed  bool   `json:"-"`
	Message string `json:"message"`
}
