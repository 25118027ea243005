package directory

import (
	"database/sql"
	"fmt"

	"github.com/medibook/booking/pkg/database"
	"github.com/medibook/booking/pkg/interfaces"
	"github.com/medibook/booking/pkg/logger"
	"github.com/medibook/booking/pkg/types"
)

// Repository implements the DirectoryRepository interface
type Repository struct {
	db     *database.DB
	logger *logger.Logger
}

// NewRepository creates a new directory repository
func NewRepository(db *database.DB, log *logger.Logger) interfaces.DirectoryRepository {
	return &Repository{
		db:     db,
		logger: log,
	}
}

const hospitalColumns = "hid, name, addr, email, phone, website"

// GetHospitals retrieves all hospitals
func (r *Repository) GetHospitals() ([]*types.Hospital, error) {
	rows, err := r.db.Query(`SELECT ` + hospitalColumns + ` FROM hospital ORDER BY hid`)
	if err != nil {
		r.logger.WithError(err).Error("Failed to get hospitals")
		return nil, fmt.Errorf("failed to get hospitals: %w", err)
	}
	defer rows.Close()

	hospitals := []*types.Hospital{}
	for rows.Next() {
		h, err := scanHospital(rows)
		if err != nil {
			return nil, err
		}
		hospitals = append(hospitals, h)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating hospitals: %w", err)
	}

	return hospitals, nil
}

// GetHospitalByID retrieves a hospital by id
func (r *Repository) GetHospitalByID(hid int64) (*types.Hospital, error) {
	row := r.db.QueryRow(`SELECT `+hospitalColumns+` FROM hospital WHERE hid = $1`, hid)

	h, err := scanHospital(row)
	if err != nil {
		if err == errNoRow {
			return nil, types.NewNotFoundError(fmt.Sprintf("hospital %d not found", hid))
		}
		r.logger.WithError(err).Errorf("Failed to get hospital %d", hid)
		return nil, err
	}

	return h, nil
}

// CreateHospital inserts a new hospital and returns its id
func (r *Repository) CreateHospital(h *types.Hospital) (int64, error) {
	query := `
		INSERT INTO hospital (name, addr, email, phone, website)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING hid`

	var hid int64
	err := r.db.QueryRow(query, h.Name, h.Address, h.Email, h.Phone, h.Website).Scan(&hid)
	if err != nil {
		r.logger.WithError(err).Error("Failed to create hospital")
		return 0, fmt.Errorf("failed to create hospital: %w", err)
	}

	r.logger.Infof("Created hospital %d (%s)", hid, h.Name)
	return hid, nil
}

// UpdateHospital overwrites a hospital's mutable fields
func (r *Repository) UpdateHospital(hid int64, h *types.Hospital) error {
	query := `
		UPDATE hospital
		SET name = $1, addr = $2, email = $3, phone = $4, website = $5
		WHERE hid = $6`

	result, err := r.db.Exec(query, h.Name, h.Address, h.Email, h.Phone, h.Website, hid)
	if err != nil {
		r.logger.WithError(err).Errorf("Failed to update hospital %d", hid)
		return fmt.Errorf("failed to update hospital: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return types.NewNotFoundError(fmt.Sprintf("hospital %d not found", hid))
	}

	r.logger.Infof("Updated hospital %d", hid)
	return nil
}

// DeleteHospital removes a hospital
func (r *Repository) DeleteHospital(hid int64) error {
	result, err := r.db.Exec(`DELETE FROM hospital WHERE hid = $1`, hid)
	if err != nil {
		r.logger.WithError(err).Errorf("Failed to delete hospital %d", hid)
		return fmt.Errorf("failed to delete hospital: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return types.NewNotFoundError(fmt.Sprintf("hospital %d not found", hid))
	}

	r.logger.Infof("Deleted hospital %d", hid)
	return nil
}

const doctorColumns = "did, hid, name, email, addr, dob, gender, specialisation, institute, degree, phone, fees"

// GetDoctors retrieves all doctors
func (r *Repository) GetDoctors() ([]*types.Doctor, error) {
	rows, err := r.db.Query(`SELECT ` + doctorColumns + ` FROM doctor ORDER BY did`)
	if err != nil {
		r.logger.WithError(err).Error("Failed to get doctors")
		return nil, fmt.Errorf("failed to get doctors: %w", err)
	}
	defer rows.Close()

	return collectDoctors(rows)
}

// GetDoctorByID retrieves a doctor by id
func (r *Repository) GetDoctorByID(did int64) (*types.Doctor, error) {
	row := r.db.QueryRow(`SELECT `+doctorColumns+` FROM doctor WHERE did = $1`, did)

	d, err := scanDoctor(row)
	if err != nil {
		if err == errNoRow {
			return nil, types.NewNotFoundError(fmt.Sprintf("doctor %d not found", did))
		}
		r.logger.WithError(err).Errorf("Failed to get doctor %d", did)
		return nil, err
	}

	return d, nil
}

// GetDoctorByEmail retrieves a doctor by email
func (r *Repository) GetDoctorByEmail(email string) (*types.Doctor, error) {
	row := r.db.QueryRow(`SELECT `+doctorColumns+` FROM doctor WHERE email = $1`, email)

	d, err := scanDoctor(row)
	if err != nil {
		if err == errNoRow {
			return nil, types.NewNotFoundError("doctor not found for email " + email)
		}
		r.logger.WithError(err).Errorf("Failed to get doctor by email %s", email)
		return nil, err
	}

	return d, nil
}

// GetDoctorsByHospital retrieves every doctor attached to a hospital
func (r *Repository) GetDoctorsByHospital(hid int64) ([]*types.Doctor, error) {
	rows, err := r.db.Query(`SELECT `+doctorColumns+` FROM doctor WHERE hid = $1 ORDER BY did`, hid)
	if err != nil {
		r.logger.WithError(err).Errorf("Failed to get doctors for hospital %d", hid)
		return nil, fmt.Errorf("failed to get doctors by hospital: %w", err)
	}
	defer rows.Close()

	return collectDoctors(rows)
}

// CreateDoctor inserts a new doctor and returns its id. The Password field
// must already be hashed by the caller.
func (r *Repository) CreateDoctor(d *types.Doctor) (int64, error) {
	query := `
		INSERT INTO doctor (hid, name, email, pass, addr, dob, gender, specialisation, institute, degree, phone, fees)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING did`

	var did int64
	err := r.db.QueryRow(query,
		d.HID,
		d.Name,
		d.Email,
		d.Password,
		d.Address,
		d.DOB,
		d.Gender,
		d.Specialisation,
		d.Institute,
		d.Degree,
		d.Phone,
		d.Fees,
	).Scan(&did)

	if err != nil {
		r.logger.WithError(err).Error("Failed to create doctor")
		return 0, fmt.Errorf("failed to create doctor: %w", err)
	}

	r.logger.Infof("Created doctor %d (%s) at hospital %d", did, d.Name, d.HID)
	return did, nil
}

// UpdateDoctor overwrites a doctor's mutable profile fields
func (r *Repository) UpdateDoctor(did int64, updates *types.DoctorUpdates) error {
	query := `
		UPDATE doctor
		SET name = $1, dob = $2, phone = $3, email = $4, gender = $5, addr = $6,
		    specialisation = $7, institute = $8, degree = $9, fees = $10
		WHERE did = $11`

	result, err := r.db.Exec(query,
		updates.Name,
		updates.DOB,
		updates.Phone,
		updates.Email,
		updates.Gender,
		updates.Address,
		updates.Specialisation,
		updates.Institute,
		updates.Degree,
		updates.Fees,
		did,
	)
	if err != nil {
		r.logger.WithError(err).Errorf("Failed to update doctor %d", did)
		return fmt.Errorf("failed to update doctor: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return types.NewNotFoundError(fmt.Sprintf("doctor %d not found", did))
	}

	r.logger.Infof("Updated doctor %d", did)
	return nil
}

// DeleteDoctor removes a doctor
func (r *Repository) DeleteDoctor(did int64) error {
	result, err := r.db.Exec(`DELETE FROM doctor WHERE did = $1`, did)
	if err != nil {
		r.logger.WithError(err).Errorf("Failed to delete doctor %d", did)
		return fmt.Errorf("failed to delete doctor: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return types.NewNotFoundError(fmt.Sprintf("doctor %d not found", did))
	}

	r.logger.Infof("Deleted doctor %d", did)
	return nil
}

// scanner abstracts *sql.Row and *sql.Rows for the scan helpers
type scanner interface {
	Scan(dest ...interface{}) error
}

// errNoRow normalizes sql.ErrNoRows out of the scan helpers
var errNoRow = sql.ErrNoRows

func scanHospital(s scanner) (*types.Hospital, error) {
	h := &types.Hospital{}
	var email, website sql.NullString
	err := s.Scan(&h.HID, &h.Name, &h.Address, &email, &h.Phone, &website)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errNoRow
		}
		return nil, fmt.Errorf("failed to scan hospital: %w", err)
	}
	if email.Valid {
		h.Email = &email.String
	}
	if website.Valid {
		h.Website = &website.String
	}
	return h, nil
}

func scanDoctor(s scanner) (*types.Doctor, error) {
	d := &types.Doctor{}
	var email, addr, dob, gender, institute, degree sql.NullString
	var fees sql.NullFloat64
	err := s.Scan(
		&d.DID,
		&d.HID,
		&d.Name,
		&email,
		&addr,
		&dob,
		&gender,
		&d.Specialisation,
		&institute,
		&degree,
		&d.Phone,
		&fees,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errNoRow
		}
		return nil, fmt.Errorf("failed to scan doctor: %w", err)
	}
	if email.Valid {
		d.Email = &email.String
	}
	if addr.Valid {
		d.Address = &addr.String
	}
	if dob.Valid {
		d.DOB = &dob.String
	}
	if gender.Valid {
		d.Gender = &gender.String
	}
	if institute.Valid {
		d.Institute = &institute.String
	}
	if degree.Valid {
		d.Degree = &degree.String
	}
	if fees.Valid {
		d.Fees = &fees.Float64
	}
	return d, nil
}

func collectDoctors(rows *sql.Rows) ([]*types.Doctor, error) {
	doctors := []*types.Doctor{}
	for rows.Next() {
		d, err := scanDoctor(rows)
		if err != nil {
			return nil, err
		}
		doctors = append(doctors, d)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating doctors: %w", err)
	}

	return doctors, nil
}
