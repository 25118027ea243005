package directory

import (
	"regexp"
	"strings"
	"time"

	"github.com/medibook/booking/pkg/interfaces"
	"github.com/medibook/booking/pkg/logger"
	"github.com/medibook/booking/pkg/types"
)

// defaultDoctorPassword is the placeholder credential for doctors created
// without one. It is hashed before storage like any other password.
const defaultDoctorPassword = "pass"

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern = regexp.MustCompile(`^\d{7,15}$`)
)

// Service implements the DirectoryService interface
type Service struct {
	repository interfaces.DirectoryRepository
	hasher     interfaces.PasswordHasher
	logger     *logger.Logger
}

// NewService creates a new directory service
func NewService(repo interfaces.DirectoryRepository, hasher interfaces.PasswordHasher, log *logger.Logger) interfaces.DirectoryService {
	return &Service{
		repository: repo,
		hasher:     hasher,
		logger:     log,
	}
}

// ListHospitals returns all hospitals
func (s *Service) ListHospitals() ([]*types.Hospital, error) {
	return s.repository.GetHospitals()
}

// GetHospital returns a hospital by id
func (s *Service) GetHospital(hid int64) (*types.Hospital, error) {
	if hid <= 0 {
		return nil, types.NewValidationError("invalid hospital id")
	}
	return s.repository.GetHospitalByID(hid)
}

// CreateHospital validates and inserts a hospital record
func (s *Service) CreateHospital(h *types.Hospital) (int64, error) {
	trimHospital(h)

	if h.Name == "" || h.Address == "" || h.Phone == "" {
		return 0, types.NewValidationError("name, address, and phone are required")
	}
	if err := validateContact(h.Email, h.Phone); err != nil {
		return 0, err
	}

	return s.repository.CreateHospital(h)
}

// UpdateHospital validates and overwrites a hospital record
func (s *Service) UpdateHospital(hid int64, h *types.Hospital) error {
	if hid <= 0 {
		return types.NewValidationError("invalid hospital id")
	}
	trimHospital(h)

	if h.Name == "" || h.Address == "" || h.Phone == "" {
		return types.NewValidationError("name, address, and phone are required")
	}
	if err := validateContact(h.Email, h.Phone); err != nil {
		return err
	}

	return s.repository.UpdateHospital(hid, h)
}

// DeleteHospital removes a hospital
func (s *Service) DeleteHospital(hid int64) error {
	if hid <= 0 {
		return types.NewValidationError("invalid hospital id")
	}
	return s.repository.DeleteHospital(hid)
}

// ListDoctors returns all doctors
func (s *Service) ListDoctors() ([]*types.Doctor, error) {
	return s.repository.GetDoctors()
}

// GetDoctor returns a doctor by id
func (s *Service) GetDoctor(did int64) (*types.Doctor, error) {
	if did <= 0 {
		return nil, types.NewValidationError("invalid doctor id")
	}
	return s.repository.GetDoctorByID(did)
}

// GetDoctorByEmail returns a doctor by email
func (s *Service) GetDoctorByEmail(email string) (*types.Doctor, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, types.NewValidationError("email is required")
	}
	return s.repository.GetDoctorByEmail(email)
}

// ListDoctorsByHospital returns every doctor attached to a hospital
func (s *Service) ListDoctorsByHospital(hid int64) ([]*types.Doctor, error) {
	if hid <= 0 {
		return nil, types.NewValidationError("invalid hospital id")
	}
	return s.repository.GetDoctorsByHospital(hid)
}

// CreateDoctor validates and inserts a doctor record. A missing password
// falls back to the placeholder; either way the stored value is hashed.
func (s *Service) CreateDoctor(d *types.Doctor) (int64, error) {
	d.Name = strings.TrimSpace(d.Name)
	d.Specialisation = strings.TrimSpace(d.Specialisation)
	d.Phone = strings.TrimSpace(d.Phone)

	if d.HID <= 0 || d.Name == "" || d.Specialisation == "" || d.Phone == "" {
		return 0, types.NewValidationError("hid, name, specialisation, and phone are required")
	}
	if err := validateContact(d.Email, d.Phone); err != nil {
		return 0, err
	}
	if d.DOB != nil && !validDate(*d.DOB) {
		return 0, types.NewValidationError("invalid date format (use YYYY-MM-DD)")
	}

	password := d.Password
	if strings.TrimSpace(password) == "" {
		password = defaultDoctorPassword
	}
	hash, err := s.hasher.HashPassword(password)
	if err != nil {
		return 0, types.NewInternalError("failed to hash doctor password", err)
	}
	d.Password = hash

	return s.repository.CreateDoctor(d)
}

// UpdateDoctor validates and overwrites a doctor's profile fields
func (s *Service) UpdateDoctor(did int64, updates *types.DoctorUpdates) error {
	if did <= 0 {
		return types.NewValidationError("invalid doctor id")
	}
	if updates.Email != nil && *updates.Email != "" && !emailPattern.MatchString(*updates.Email) {
		return types.NewValidationError("invalid email format")
	}
	if updates.Phone != nil && *updates.Phone != "" && !phonePattern.MatchString(*updates.Phone) {
		return types.NewValidationError("invalid phone number format")
	}
	if updates.DOB != nil && *updates.DOB != "" && !validDate(*updates.DOB) {
		return types.NewValidationError("invalid date format (use YYYY-MM-DD)")
	}

	return s.repository.UpdateDoctor(did, updates)
}

// DeleteDoctor removes a doctor
func (s *Service) DeleteDoctor(did int64) error {
	if did <= 0 {
		return types.NewValidationError("invalid doctor id")
	}
	return s.repository.DeleteDoctor(did)
}

func trimHospital(h *types.Hospital) {
	h.Name = strings.TrimSpace(h.Name)
	h.Address = strings.TrimSpace(h.Address)
	h.Phone = strings.TrimSpace(h.Phone)
	if h.Email != nil {
		trimmed := strings.TrimSpace(*h.Email)
		if trimmed == "" {
			h.Email = nil
		} else {
			h.Email = &trimmed
		}
	}
	if h.Website != nil {
		trimmed := strings.TrimSpace(*h.Website)
		if trimmed == "" {
			h.Website = nil
		} else {
			h.Website = &trimmed
		}
	}
}

func validateContact(email *string, phone string) error {
	if email != nil && *email != "" && !emailPattern.MatchString(*email) {
		return types.NewValidationError("invalid email format")
	}
	if !phonePattern.MatchString(phone) {
		return types.NewValidationError("invalid phone number format")
	}
	return nil
}

func validDate(date string) bool {
	_, err := time.Parse("2006-01-02", date)
	return err == nil
}
