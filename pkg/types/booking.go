package types

import (
	"fmt"
	"strings"
	"time"
)

// AppointmentStatus represents appointment status values
type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "pending"
	StatusConfirmed AppointmentStatus = "confirmed"
	StatusRejected  AppointmentStatus = "rejected"
	StatusCompleted AppointmentStatus = "completed"
	StatusCancelled AppointmentStatus = "cancelled"
)

// AllStatuses lists every valid appointment status in canonical form.
var AllStatuses = []AppointmentStatus{
	StatusPending,
	StatusConfirmed,
	StatusRejected,
	StatusCompleted,
	StatusCancelled,
}

// ParseStatus validates a status string case-insensitively and returns its
// canonical lower-case form.
func ParseStatus(s string) (AppointmentStatus, error) {
	canonical := AppointmentStatus(strings.ToLower(strings.TrimSpace(s)))
	for _, valid := range AllStatuses {
		if canonical == valid {
			return canonical, nil
		}
	}
	return "", NewValidationError(fmt.Sprintf("invalid status %q, allowed: %s", s, statusList()))
}

func statusList() string {
	names := make([]string, len(AllStatuses))
	for i, s := range AllStatuses {
		names[i] = string(s)
	}
	return strings.Join(names, ", ")
}

// Appointment represents a booked appointment
type Appointment struct {
	AID             int64             `json:"AID" db:"aid"`
	PID             int64             `json:"PID" db:"pid"`
	DID             int64             `json:"DID" db:"did"`
	HID             int64             `json:"HID" db:"hid"`
	AppointmentDate time.Time         `json:"APPOINTMENT_DATE" db:"appointment_date"`
	Status          AppointmentStatus `json:"STATUS" db:"status"`
	CreatedAt       time.Time         `json:"created_at,omitempty" db:"created_at"`
}

// PatientAppointment is an appointment row joined with doctor and hospital
// names, as returned by the patient-scoped listing.
type PatientAppointment struct {
	AID             int64             `json:"AID"`
	PID             int64             `json:"PID"`
	AppointmentDate time.Time         `json:"APPOINTMENT_DATE"`
	Status          AppointmentStatus `json:"STATUS"`
	DoctorName      string            `json:"doctor_name"`
	HospitalName    string            `json:"hospital_name"`
}

// DoctorAppointment is an appointment row joined with patient and hospital
// names, as returned by the doctor-scoped listing.
type DoctorAppointment struct {
	AID             int64             `json:"AID"`
	AppointmentDate time.Time         `json:"APPOINTMENT_DATE"`
	Status          AppointmentStatus `json:"STATUS"`
	PatientName     string            `json:"patient_name"`
	HospitalName    string            `json:"hospital_name"`
}

// CartItem represents a patient's intent to book a doctor at a hospital
type CartItem struct {
	CID int64 `json:"CID" db:"cid"`
	PID int64 `json:"PID" db:"pid"`
	DID int64 `json:"DID" db:"did"`
	HID int64 `json:"HID" db:"hid"`
}

// CartLine is a cart row joined with the doctor's display fields (including
// fees, so the client can sum a total) and the hospital name.
type CartLine struct {
	CID            int64    `json:"CID"`
	PID            int64    `json:"PID"`
	DID            int64    `json:"DID"`
	DoctorName     string   `json:"NAME"`
	Specialisation string   `json:"SPECIALISATION"`
	Degree         *string  `json:"DEGREE"`
	Institute      *string  `json:"INSTITUTE"`
	Phone          string   `json:"PHONE"`
	Fees           *float64 `json:"FEES"`
	HID            int64    `json:"HID"`
	HospitalName   string   `json:"hospital_name"`
}
