package booking

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/medibook/booking/pkg/database"
	"github.com/medibook/booking/pkg/interfaces"
	"github.com/medibook/booking/pkg/logger"
	"github.com/medibook/booking/pkg/monitoring"
	"github.com/medibook/booking/pkg/types"
)

// Repository implements the BookingRepository interface
type Repository struct {
	db     *database.DB
	logger *logger.Logger
}

// NewRepository creates a new booking repository
func NewRepository(db *database.DB, log *logger.Logger) interfaces.BookingRepository {
	return &Repository{
		db:     db,
		logger: log,
	}
}

// AddCartItem inserts a new cart row. Duplicate rows for the same
// (patient, doctor, hospital) are allowed.
func (r *Repository) AddCartItem(item *types.CartItem) (int64, error) {
	query := `
		INSERT INTO cart (pid, did, hid)
		VALUES ($1, $2, $3)
		RETURNING cid`

	var cid int64
	err := r.db.QueryRow(query, item.PID, item.DID, item.HID).Scan(&cid)
	if err != nil {
		r.logger.WithError(err).Errorf("Failed to add cart item for patient %d", item.PID)
		return 0, fmt.Errorf("failed to add cart item: %w", err)
	}

	r.logger.Infof("Added cart item %d for patient %d (doctor %d, hospital %d)", cid, item.PID, item.DID, item.HID)
	return cid, nil
}

// GetCartItems retrieves the patient's cart joined with doctor display
// fields and the hospital name. An empty cart returns an empty slice.
func (r *Repository) GetCartItems(pid int64) ([]*types.CartLine, error) {
	query := `
		SELECT c.cid, c.pid, d.did, d.name, d.specialisation, d.degree, d.institute,
		       d.phone, d.fees, h.hid, h.name AS hospital_name
		FROM cart c
		JOIN doctor d ON c.did = d.did
		JOIN hospital h ON c.hid = h.hid
		WHERE c.pid = $1
		ORDER BY c.cid`

	rows, err := r.db.Query(query, pid)
	if err != nil {
		r.logger.WithError(err).Errorf("Failed to get cart for patient %d", pid)
		return nil, fmt.Errorf("failed to get cart items: %w", err)
	}
	defer rows.Close()

	lines := []*types.CartLine{}
	for rows.Next() {
		line := &types.CartLine{}
		var degree, institute sql.NullString
		var fees sql.NullFloat64
		err := rows.Scan(
			&line.CID,
			&line.PID,
			&line.DID,
			&line.DoctorName,
			&line.Specialisation,
			&degree,
			&institute,
			&line.Phone,
			&fees,
			&line.HID,
			&line.HospitalName,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan cart item: %w", err)
		}
		if degree.Valid {
			line.Degree = &degree.String
		}
		if institute.Valid {
			line.Institute = &institute.String
		}
		if fees.Valid {
			line.Fees = &fees.Float64
		}
		lines = append(lines, line)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating cart items: %w", err)
	}

	return lines, nil
}

// DeleteCartItem removes a cart row by id
func (r *Repository) DeleteCartItem(cid int64) error {
	result, err := r.db.Exec(`DELETE FROM cart WHERE cid = $1`, cid)
	if err != nil {
		r.logger.WithError(err).Errorf("Failed to delete cart item %d", cid)
		return fmt.Errorf("failed to delete cart item: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return types.NewNotFoundError(fmt.Sprintf("cart item %d not found", cid))
	}

	r.logger.Infof("Removed cart item %d", cid)
	return nil
}

// ClearCart deletes every cart row for the patient. Clearing an already
// empty cart is not an error.
func (r *Repository) ClearCart(pid int64) error {
	result, err := r.db.Exec(`DELETE FROM cart WHERE pid = $1`, pid)
	if err != nil {
		r.logger.WithError(err).Errorf("Failed to clear cart for patient %d", pid)
		return fmt.Errorf("failed to clear cart: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	r.logger.DatabaseOperation("delete", "cart", rowsAffected, true)
	return nil
}

// CreateAppointment inserts a new appointment and returns its id
func (r *Repository) CreateAppointment(apt *types.Appointment) (int64, error) {
	start := time.Now()
	query := `
		INSERT INTO appointments (pid, did, hid, appointment_date, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING aid`

	var aid int64
	err := r.db.QueryRow(query, apt.PID, apt.DID, apt.HID, apt.AppointmentDate, apt.Status).Scan(&aid)
	if err != nil {
		r.logger.WithError(err).Errorf("Failed to create appointment for patient %d", apt.PID)
		return 0, fmt.Errorf("failed to create appointment: %w", err)
	}

	monitoring.RecordDBQuery("insert", "appointments", time.Since(start))
	r.logger.Infof("Created appointment %d for patient %d with doctor %d", aid, apt.PID, apt.DID)
	return aid, nil
}

// GetPatientAppointments lists a patient's appointments joined with doctor
// and hospital names
func (r *Repository) GetPatientAppointments(pid int64) ([]*types.PatientAppointment, error) {
	query := `
		SELECT a.aid, a.pid, a.appointment_date, a.status,
		       d.name AS doctor_name, h.name AS hospital_name
		FROM appointments a
		JOIN doctor d ON a.did = d.did
		JOIN hospital h ON a.hid = h.hid
		WHERE a.pid = $1
		ORDER BY a.appointment_date, a.aid`

	rows, err := r.db.Query(query, pid)
	if err != nil {
		r.logger.WithError(err).Errorf("Failed to get appointments for patient %d", pid)
		return nil, fmt.Errorf("failed to get patient appointments: %w", err)
	}
	defer rows.Close()

	appointments := []*types.PatientAppointment{}
	for rows.Next() {
		apt := &types.PatientAppointment{}
		err := rows.Scan(
			&apt.AID,
			&apt.PID,
			&apt.AppointmentDate,
			&apt.Status,
			&apt.DoctorName,
			&apt.HospitalName,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan appointment: %w", err)
		}
		appointments = append(appointments, apt)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating appointments: %w", err)
	}

	return appointments, nil
}

// GetDoctorAppointments lists a doctor's appointments joined with patient
// and hospital names
func (r *Repository) GetDoctorAppointments(did int64) ([]*types.DoctorAppointment, error) {
	query := `
		SELECT a.aid, a.appointment_date, a.status,
		       p.name AS patient_name, h.name AS hospital_name
		FROM appointments a
		JOIN patient p ON a.pid = p.pid
		JOIN hospital h ON a.hid = h.hid
		WHERE a.did = $1
		ORDER BY a.appointment_date, a.aid`

	rows, err := r.db.Query(query, did)
	if err != nil {
		r.logger.WithError(err).Errorf("Failed to get appointments for doctor %d", did)
		return nil, fmt.Errorf("failed to get doctor appointments: %w", err)
	}
	defer rows.Close()

	appointments := []*types.DoctorAppointment{}
	for rows.Next() {
		apt := &types.DoctorAppointment{}
		err := rows.Scan(
			&apt.AID,
			&apt.AppointmentDate,
			&apt.Status,
			&apt.PatientName,
			&apt.HospitalName,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan appointment: %w", err)
		}
		appointments = append(appointments, apt)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating appointments: %w", err)
	}

	return appointments, nil
}

// UpdateAppointmentStatus sets the status of an appointment. The caller is
// responsible for validating the status value.
func (r *Repository) UpdateAppointmentStatus(aid int64, status types.AppointmentStatus) error {
	result, err := r.db.Exec(`UPDATE appointments SET status = $1 WHERE aid = $2`, status, aid)
	if err != nil {
		r.logger.WithError(err).Errorf("Failed to update status of appointment %d", aid)
		return fmt.Errorf("failed to update appointment status: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return types.NewNotFoundError(fmt.Sprintf("appointment %d not found", aid))
	}

	r.logger.Infof("Updated appointment %d to status %s", aid, status)
	return nil
}

// DeleteAppointment hard deletes an appointment
func (r *Repository) DeleteAppointment(aid int64) error {
	result, err := r.db.Exec(`DELETE FROM appointments WHERE aid = $1`, aid)
	if err != nil {
		r.logger.WithError(err).Errorf("Failed to delete appointment %d", aid)
		return fmt.Errorf("failed to delete appointment: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return types.NewNotFoundError(fmt.Sprintf("appointment %d not found", aid))
	}

	r.logger.Infof("Deleted appointment %d", aid)
	return nil
}

// CheckoutCart converts every cart row for the patient into a pending
// appointment and clears the cart, all inside one transaction. Any failure
// rolls back every insert and leaves the cart untouched.
func (r *Repository) CheckoutCart(pid int64, date time.Time) ([]int64, error) {
	start := time.Now()

	tx, err := r.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin checkout transaction: %w", err)
	}
	defer tx.Rollback()

	rows, err := tx.Query(`SELECT did, hid FROM cart WHERE pid = $1 ORDER BY cid`, pid)
	if err != nil {
		r.logger.WithError(err).Errorf("Failed to read cart for checkout of patient %d", pid)
		return nil, fmt.Errorf("failed to read cart: %w", err)
	}

	type cartEntry struct {
		did int64
		hid int64
	}
	var entries []cartEntry
	for rows.Next() {
		var e cartEntry
		if err := rows.Scan(&e.did, &e.hid); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan cart row: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("error iterating cart rows: %w", err)
	}
	rows.Close()

	if len(entries) == 0 {
		return nil, types.NewValidationError(fmt.Sprintf("cart is empty for patient %d", pid))
	}

	aids := make([]int64, 0, len(entries))
	insert := `
		INSERT INTO appointments (pid, did, hid, appointment_date, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING aid`
	for _, e := range entries {
		var aid int64
		if err := tx.QueryRow(insert, pid, e.did, e.hid, date, types.StatusPending).Scan(&aid); err != nil {
			r.logger.WithError(err).Errorf("Checkout insert failed for patient %d, rolling back", pid)
			return nil, fmt.Errorf("failed to create appointment during checkout: %w", err)
		}
		aids = append(aids, aid)
	}

	if _, err := tx.Exec(`DELETE FROM cart WHERE pid = $1`, pid); err != nil {
		r.logger.WithError(err).Errorf("Checkout cart clear failed for patient %d, rolling back", pid)
		return nil, fmt.Errorf("failed to clear cart during checkout: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit checkout transaction: %w", err)
	}

	monitoring.RecordDBQuery("checkout", "appointments", time.Since(start))
	r.logger.Infof("Checked out %d cart items for patient %d", len(aids), pid)
	return aids, nil
}
