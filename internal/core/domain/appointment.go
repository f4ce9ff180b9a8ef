package domain

import (
	"errors"
	"time"
)

var ErrAppointmentNotFound = errors.New("appointment not found")

// Appointment is a calendar booking. Patient and Professional are free-text
// names, not references; double-booking and inverted ranges are accepted as
// submitted (the calendar front-end is the authority on what gets drawn).
type Appointment struct {
	ID           string    `json:"id" bson:"_id,omitempty"`
	Patient      string    `json:"patient" bson:"patient"`
	Professional string    `json:"professional" bson:"professional"`
	Start        time.Time `json:"start" bson:"start"`
	End          time.Time `json:"end" bson:"end"`
	Notes        string    `json:"notes,omitempty" bson:"notes,omitempty"`
}

// Title renders the calendar event title, "<patient> (<professional>)".
func (a Appointment) Title() string {
	return a.Patient + " (" + a.Professional + ")"
}
