package identity

import (
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"github.com/medibook/booking/pkg/database"
	"github.com/medibook/booking/pkg/interfaces"
	"github.com/medibook/booking/pkg/logger"
	"github.com/medibook/booking/pkg/types"
)

// Repository implements the IdentityRepository interface
type Repository struct {
	db     *database.DB
	logger *logger.Logger
}

// NewRepository creates a new identity repository
func NewRepository(db *database.DB, log *logger.Logger) interfaces.IdentityRepository {
	return &Repository{
		db:     db,
		logger: log,
	}
}

const patientColumns = "pid, name, dob, phone, email, pass, gender, addr, job"

// GetCredential retrieves a login credential by email
func (r *Repository) GetCredential(email string) (*types.Credential, error) {
	cred := &types.Credential{}
	err := r.db.QueryRow(
		`SELECT email, password, role FROM login WHERE email = $1`, email,
	).Scan(&cred.Email, &cred.PasswordHash, &cred.Role)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, types.NewNotFoundError("credential not found")
		}
		r.logger.WithError(err).Error("Failed to get credential")
		return nil, fmt.Errorf("failed to get credential: %w", err)
	}
	return cred, nil
}

// GetPatientIDByEmail resolves a patient id from an email address
func (r *Repository) GetPatientIDByEmail(email string) (int64, error) {
	var pid int64
	err := r.db.QueryRow(`SELECT pid FROM patient WHERE email = $1`, email).Scan(&pid)
	if err != nil {
		if err == sql.ErrNoRows {
			return 0, types.NewNotFoundError("patient not found")
		}
		return 0, fmt.Errorf("failed to get patient id: %w", err)
	}
	return pid, nil
}

// GetDoctorIDByEmail resolves a doctor id from an email address
func (r *Repository) GetDoctorIDByEmail(email string) (int64, error) {
	var did int64
	err := r.db.QueryRow(`SELECT did FROM doctor WHERE email = $1`, email).Scan(&did)
	if err != nil {
		if err == sql.ErrNoRows {
			return 0, types.NewNotFoundError("doctor not found")
		}
		return 0, fmt.Errorf("failed to get doctor id: %w", err)
	}
	return did, nil
}

// CreatePatient inserts the patient row and its login credential in a single
// transaction. The Password field must already be a hash.
func (r *Repository) CreatePatient(p *types.Patient) (int64, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var pid int64
	err = tx.QueryRow(`
		INSERT INTO patient (name, dob, phone, email, pass, gender, addr, job)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING pid`,
		p.Name, p.DOB, p.Phone, p.Email, p.Password, p.Gender, p.Address, p.Job,
	).Scan(&pid)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, types.NewConflictError("phone or email already registered")
		}
		r.logger.WithError(err).Error("Failed to create patient")
		return 0, fmt.Errorf("failed to create patient: %w", err)
	}

	if p.Email != nil {
		_, err = tx.Exec(`
			INSERT INTO login (email, password, role)
			VALUES ($1, $2, $3)`,
			*p.Email, p.Password, types.RolePatient,
		)
		if err != nil {
			if isUniqueViolation(err) {
				return 0, types.NewConflictError("phone or email already registered")
			}
			r.logger.WithError(err).Error("Failed to create patient login")
			return 0, fmt.Errorf("failed to create patient login: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit patient registration: %w", err)
	}

	r.logger.DatabaseOperation("INSERT", "patient", 1, true)
	return pid, nil
}

// GetPatientByID retrieves a patient profile by id
func (r *Repository) GetPatientByID(pid int64) (*types.Patient, error) {
	row := r.db.QueryRow(`SELECT `+patientColumns+` FROM patient WHERE pid = $1`, pid)

	p, err := scanPatient(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, types.NewNotFoundError(fmt.Sprintf("patient %d not found", pid))
		}
		r.logger.WithError(err).Errorf("Failed to get patient %d", pid)
		return nil, fmt.Errorf("failed to get patient: %w", err)
	}
	return p, nil
}

// GetPatientByEmail retrieves a patient profile by email
func (r *Repository) GetPatientByEmail(email string) (*types.Patient, error) {
	row := r.db.QueryRow(`SELECT `+patientColumns+` FROM patient WHERE email = $1`, email)

	p, err := scanPatient(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, types.NewNotFoundError("patient not found")
		}
		r.logger.WithError(err).Error("Failed to get patient by email")
		return nil, fmt.Errorf("failed to get patient: %w", err)
	}
	return p, nil
}

// UpdatePatient overwrites a patient's mutable profile fields
func (r *Repository) UpdatePatient(pid int64, updates *types.PatientUpdates) error {
	query := `
		UPDATE patient
		SET name = $1, dob = $2, phone = $3, email = $4, gender = $5, addr = $6, job = $7
		WHERE pid = $8`

	result, err := r.db.Exec(query,
		updates.Name,
		updates.DOB,
		updates.Phone,
		updates.Email,
		updates.Gender,
		updates.Address,
		updates.Job,
		pid,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return types.NewConflictError("phone or email already registered")
		}
		r.logger.WithError(err).Errorf("Failed to update patient %d", pid)
		return fmt.Errorf("failed to update patient: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return types.NewNotFoundError(fmt.Sprintf("patient %d not found", pid))
	}

	r.logger.Infof("Updated patient %d", pid)
	return nil
}

func scanPatient(row *sql.Row) (*types.Patient, error) {
	p := &types.Patient{}
	var dob, email, gender, addr, job sql.NullString
	err := row.Scan(&p.PID, &p.Name, &dob, &p.Phone, &email, &p.Password, &gender, &addr, &job)
	if err != nil {
		return nil, err
	}
	if dob.Valid {
		p.DOB = &dob.String
	}
	if email.Valid {
		p.Email = &email.String
	}
	if gender.Valid {
		p.Gender = &gender.String
	}
	if addr.Valid {
		p.Address = &addr.String
	}
	if job.Valid {
		p.Job = &job.String
	}
	return p, nil
}

// isUniqueViolation reports whether err is a Postgres unique constraint
// violation (SQLSTATE 23505).
func isUniqueViolation(err error) bool {
	if pqErr, ok := err.(*pq.Error); ok {
		return pqErr.Code == "23505"
	}
	return false
}
