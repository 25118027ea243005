package interfaces

import "github.com/medibook/booking/pkg/types"

// IdentityService defines credential checks and patient account management
type IdentityService interface {
	// Login verifies a credential and, for patient/doctor roles, attaches
	// the role-specific numeric id. The id lookup failing is non-fatal.
	Login(email, password string) (*types.AuthenticatedUser, error)

	// Patient accounts
	RegisterPatient(p *types.Patient) (int64, error)
	GetPatient(pid int64) (*types.Patient, error)
	GetPatientByEmail(email string) (*types.Patient, error)
	UpdatePatient(pid int64, updates *types.PatientUpdates) error
}

// PasswordHasher hashes and verifies secrets
type PasswordHasher interface {
	HashPassword(password string) (string, error)
	VerifyPassword(hashedPassword, password string) (bool, error)
}

// IdentityRepository defines the interface for credential and patient
// persistence
type IdentityRepository interface {
	GetCredential(email string) (*types.Credential, error)
	GetPatientIDByEmail(email string) (int64, error)
	GetDoctorIDByEmail(email string) (int64, error)

	// CreatePatient inserts the patient row and its login credential in a
	// single transaction. The patient's Password field must already be
	// hashed.
	CreatePatient(p *types.Patient) (int64, error)
	GetPatientByID(pid int64) (*types.Patient, error)
	GetPatientByEmail(email string) (*types.Patient, error)
	UpdatePatient(pid int64, updates *types.PatientUpdates) error
}
