package database

import (
	"context"
	"fmt"
)

// CreateSchema creates the database schema for the booking system
func (db *DB) CreateSchema(ctx context.Context) error {
	db.logger.Info("Creating database schema...")

	tables := []string{
		createHospitalTable,
		createDoctorTable,
		createPatientTable,
		createLoginTable,
		createCartTable,
		createAppointmentsTable,
	}

	for _, table := range tables {
		if _, err := db.ExecContext(ctx, table); err != nil {
			return fmt.Errorf("failed to create table: %w", err)
		}
	}

	indexes := []string{
		createCartIndexes,
		createAppointmentsIndexes,
		createDoctorIndexes,
	}

	for _, index := range indexes {
		if _, err := db.ExecContext(ctx, index); err != nil {
			return fmt.Errorf("failed to create indexes: %w", err)
		}
	}

	db.logger.Info("Database schema created successfully")
	return nil
}

// SQL DDL statements for table creation
const (
	createHospitalTable = `
		CREATE TABLE IF NOT EXISTS hospital (
			hid BIGSERIAL PRIMARY KEY,
			name VARCHAR(200) NOT NULL,
			addr VARCHAR(300) NOT NULL,
			email VARCHAR(200),
			phone VARCHAR(20) NOT NULL,
			website VARCHAR(200)
		);`

	createDoctorTable = `
		CREATE TABLE IF NOT EXISTS doctor (
			did BIGSERIAL PRIMARY KEY,
			hid BIGINT NOT NULL REFERENCES hospital(hid),
			name VARCHAR(200) NOT NULL,
			email VARCHAR(200),
			pass VARCHAR(100) NOT NULL,
			addr VARCHAR(300),
			dob VARCHAR(10),
			gender VARCHAR(10),
			specialisation VARCHAR(100) NOT NULL,
			institute VARCHAR(200),
			degree VARCHAR(100),
			phone VARCHAR(20) NOT NULL,
			fees NUMERIC(10,2)
		);`

	createPatientTable = `
		CREATE TABLE IF NOT EXISTS patient (
			pid BIGSERIAL PRIMARY KEY,
			name VARCHAR(200) NOT NULL,
			dob VARCHAR(10),
			phone VARCHAR(20) NOT NULL UNIQUE,
			email VARCHAR(200) UNIQUE,
			pass VARCHAR(100) NOT NULL,
			gender VARCHAR(10),
			addr VARCHAR(300),
			job VARCHAR(100)
		);`

	createLoginTable = `
		CREATE TABLE IF NOT EXISTS login (
			email VARCHAR(200) PRIMARY KEY,
			password VARCHAR(100) NOT NULL,
			role VARCHAR(10) NOT NULL CHECK (role IN ('admin', 'doctor', 'patient'))
		);`

	createCartTable = `
		CREATE TABLE IF NOT EXISTS cart (
			cid BIGSERIAL PRIMARY KEY,
			pid BIGINT NOT NULL REFERENCES patient(pid),
			did BIGINT NOT NULL REFERENCES doctor(did),
			hid BIGINT NOT NULL REFERENCES hospital(hid)
		);`

	createAppointmentsTable = `
		CREATE TABLE IF NOT EXISTS appointments (
			aid BIGSERIAL PRIMARY KEY,
			pid BIGINT NOT NULL REFERENCES patient(pid),
			did BIGINT NOT NULL REFERENCES doctor(did),
			hid BIGINT NOT NULL REFERENCES hospital(hid),
			appointment_date DATE NOT NULL,
			status VARCHAR(20) NOT NULL DEFAULT 'pending'
				CHECK (status IN ('pending', 'confirmed', 'rejected', 'completed', 'cancelled')),
			created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
		);`
)

// SQL DDL statements for index creation
const (
	createCartIndexes = `
		CREATE INDEX IF NOT EXISTS idx_cart_pid ON cart(pid);`

	createAppointmentsIndexes = `
		CREATE INDEX IF NOT EXISTS idx_appointments_pid ON appointments(pid);
		CREATE INDEX IF NOT EXISTS idx_appointments_did ON appointments(did);
		CREATE INDEX IF NOT EXISTS idx_appointments_status ON appointments(status);`

	createDoctorIndexes = `
		CREATE INDEX IF NOT EXISTS idx_doctor_hid ON doctor(hid);
		CREATE INDEX IF NOT EXISTS idx_doctor_email ON doctor(email);`
)
