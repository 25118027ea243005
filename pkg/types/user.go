package types

// Role represents a login role
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleDoctor  Role = "doctor"
	RolePatient Role = "patient"
)

// Patient represents a patient record. The password column is never
// serialized.
type Patient struct {
	PID      int64   `json:"PID" db:"pid"`
	Name     string  `json:"NAME" db:"name"`
	DOB      *string `json:"DOB" db:"dob"`
	Phone    string  `json:"PHONE" db:"phone"`
	Email    *string `json:"EMAIL" db:"email"`
	Password string  `json:"-" db:"pass"`
	Gender   *string `json:"GENDER" db:"gender"`
	Address  *string `json:"ADDR" db:"addr"`
	Job      *string `json:"JOB" db:"job"`
}

// PatientUpdates carries the mutable patient profile fields for an update.
type PatientUpdates struct {
	Name    *string `json:"NAME"`
	DOB     *string `json:"DOB"`
	Phone   *string `json:"PHONE"`
	Email   *string `json:"EMAIL"`
	Gender  *string `json:"GENDER"`
	Address *string `json:"ADDR"`
	Job     *string `json:"JOB"`
}

// Credential represents a login table row. The stored password is a bcrypt
// hash.
type Credential struct {
	Email        string `json:"email" db:"email"`
	PasswordHash string `json:"-" db:"password"`
	Role         Role   `json:"role" db:"role"`
}

// AuthenticatedUser is the user payload returned by a successful login.
// PID/DID are attached for patient/doctor roles when the secondary profile
// lookup succeeds; their absence does not fail the login.
type AuthenticatedUser struct {
	Email string `json:"email"`
	Role  Role   `json:"role"`
	PID   int64  `json:"pid,omitempty"`
	DID   int64  `json:"did,omitempty"`
	Token string `json:"token,omitempty"`
}
