package interfaces

import "github.com/medibook/booking/pkg/types"

// DirectoryService defines read/write access to hospital and doctor master
// records
type DirectoryService interface {
	// Hospitals
	ListHospitals() ([]*types.Hospital, error)
	GetHospital(hid int64) (*types.Hospital, error)
	CreateHospital(h *types.Hospital) (int64, error)
	UpdateHospital(hid int64, h *types.Hospital) error
	DeleteHospital(hid int64) error

	// Doctors
	ListDoctors() ([]*types.Doctor, error)
	GetDoctor(did int64) (*types.Doctor, error)
	GetDoctorByEmail(email string) (*types.Doctor, error)
	ListDoctorsByHospital(hid int64) ([]*types.Doctor, error)
	CreateDoctor(d *types.Doctor) (int64, error)
	UpdateDoctor(did int64, updates *types.DoctorUpdates) error
	DeleteDoctor(did int64) error
}

// DirectoryRepository defines the interface for hospital and doctor
// persistence
type DirectoryRepository interface {
	// Hospitals
	GetHospitals() ([]*types.Hospital, error)
	GetHospitalByID(hid int64) (*types.Hospital, error)
	CreateHospital(h *types.Hospital) (int64, error)
	UpdateHospital(hid int64, h *types.Hospital) error
	DeleteHospital(hid int64) error

	// Doctors
	GetDoctors() ([]*types.Doctor, error)
	GetDoctorByID(did int64) (*types.Doctor, error)
	GetDoctorByEmail(email string) (*types.Doctor, error)
	GetDoctorsByHospital(hid int64) ([]*types.Doctor, error)
	CreateDoctor(d *types.Doctor) (int64, error)
	UpdateDoctor(did int64, updates *types.DoctorUpdates) error
	DeleteDoctor(did int64) error
}
