package models

import "time"

// Appointment is created by the client and owned thereafter by the backend.
type Appointment struct {
	ID           string    `bson:"_id" json:"_id"`
	SpecialistID string    `bson:"specialistId" json:"specialistId"`
	Date         string    `bson:"date" json:"date"` // YYYY-MM-DD
	Time         string    `bson:"time" json:"time"` // HH:MM
	Symptoms     string    `bson:"symptoms" json:"symptoms,omitempty"`
	Notes        string    `bson:"notes" json:"notes,omitempty"`
	Status       string    `bson:"status" json:"status,omitempty"`
	CreatedAt    time.Time `bson:"createdAt" json:"createdAt"`
}

// AppointmentRequest is the body of POST /appointments.
type AppointmentRequest struct {
	SpecialistID string `json:"specialistId"`
	Date         string `json:"date"`
	Time         string `json:"time"`
	Symptoms     string `json:"symptoms"`
	Notes        string `json:"notes"`
}
