package identity

import (
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/medibook/booking/pkg/interfaces"
	"github.com/medibook/booking/pkg/logger"
	"github.com/medibook/booking/pkg/monitoring"
	"github.com/medibook/booking/pkg/types"
)

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern = regexp.MustCompile(`^\d{7,15}$`)
)

// Service implements the IdentityService interface
type Service struct {
	repository interfaces.IdentityRepository
	hasher     interfaces.PasswordHasher
	tokens     *TokenManager
	logger     *logger.Logger
}

// NewService creates a new identity service
func NewService(repo interfaces.IdentityRepository, hasher interfaces.PasswordHasher, tokens *TokenManager, log *logger.Logger) interfaces.IdentityService {
	return &Service{
		repository: repo,
		hasher:     hasher,
		tokens:     tokens,
		logger:     log,
	}
}

// Login verifies a credential and builds the authenticated user payload. The
// role-specific id lookup is best effort and never fails the login.
func (s *Service) Login(email, password string) (*types.AuthenticatedUser, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, types.NewValidationError("email and password are required")
	}

	cred, err := s.repository.GetCredential(email)
	if err != nil {
		monitoring.RecordAuthAttempt(false)
		if types.HTTPStatusOf(err) == http.StatusNotFound {
			// Do not reveal whether the account exists.
			return nil, types.NewAuthenticationError("invalid email or password")
		}
		return nil, err
	}

	ok, err := s.hasher.VerifyPassword(cred.PasswordHash, password)
	if err != nil {
		monitoring.RecordAuthAttempt(false)
		return nil, types.NewInternalError("failed to verify password", err)
	}
	if !ok {
		monitoring.RecordAuthAttempt(false)
		s.logger.Audit(email, "login", "login", false, nil)
		return nil, types.NewAuthenticationError("invalid email or password")
	}

	user := &types.AuthenticatedUser{
		Email: cred.Email,
		Role:  cred.Role,
	}

	switch cred.Role {
	case types.RolePatient:
		if pid, err := s.repository.GetPatientIDByEmail(email); err != nil {
			s.logger.WithError(err).Warnf("Patient id lookup failed for %s", email)
		} else {
			user.PID = pid
		}
	case types.RoleDoctor:
		if did, err := s.repository.GetDoctorIDByEmail(email); err != nil {
			s.logger.WithError(err).Warnf("Doctor id lookup failed for %s", email)
		} else {
			user.DID = did
		}
	}

	token, err := s.tokens.Issue(cred.Email, cred.Role)
	if err != nil {
		return nil, types.NewInternalError("failed to issue token", err)
	}
	user.Token = token

	monitoring.RecordAuthAttempt(true)
	s.logger.Audit(email, "login", "login", true, map[string]interface{}{
		"role": string(cred.Role),
	})
	return user, nil
}

// RegisterPatient validates and creates a patient account
func (s *Service) RegisterPatient(p *types.Patient) (int64, error) {
	p.Name = strings.TrimSpace(p.Name)
	p.Phone = strings.TrimSpace(p.Phone)

	if p.Name == "" || p.Phone == "" || p.Password == "" {
		return 0, types.NewValidationError("missing required fields (name, phone, password)")
	}
	if !phonePattern.MatchString(p.Phone) {
		return 0, types.NewValidationError("invalid phone number")
	}
	if p.Email != nil && *p.Email != "" && !emailPattern.MatchString(*p.Email) {
		return 0, types.NewValidationError("invalid email address")
	}
	if p.DOB != nil && *p.DOB != "" && !validDate(*p.DOB) {
		return 0, types.NewValidationError("invalid date of birth, expected YYYY-MM-DD")
	}

	hashed, err := s.hasher.HashPassword(p.Password)
	if err != nil {
		return 0, types.NewInternalError("failed to hash password", err)
	}
	p.Password = hashed

	pid, err := s.repository.CreatePatient(p)
	if err != nil {
		return 0, err
	}

	s.logger.Infof("Registered patient %d", pid)
	return pid, nil
}

// GetPatient retrieves a patient profile by id
func (s *Service) GetPatient(pid int64) (*types.Patient, error) {
	if pid <= 0 {
		return nil, types.NewValidationError("invalid patient id")
	}
	return s.repository.GetPatientByID(pid)
}

// GetPatientByEmail retrieves a patient profile by email
func (s *Service) GetPatientByEmail(email string) (*types.Patient, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, types.NewValidationError("email is required")
	}
	return s.repository.GetPatientByEmail(email)
}

// UpdatePatient validates and applies a patient profile update
func (s *Service) UpdatePatient(pid int64, updates *types.PatientUpdates) error {
	if pid <= 0 {
		return types.NewValidationError("invalid patient id")
	}
	if updates.Name != nil && strings.TrimSpace(*updates.Name) == "" {
		return types.NewValidationError("name cannot be empty")
	}
	if updates.Phone != nil && !phonePattern.MatchString(*updates.Phone) {
		return types.NewValidationError("invalid phone number")
	}
	if updates.Email != nil && *updates.Email != "" && !emailPattern.MatchString(*updates.Email) {
		return types.NewValidationError("invalid email address")
	}
	if updates.DOB != nil && *updates.DOB != "" && !validDate(*updates.DOB) {
		return types.NewValidationError("invalid date of birth, expected YYYY-MM-DD")
	}
	return s.repository.UpdatePatient(pid, updates)
}

func validDate(date string) bool {
	_, err := time.Parse("2006-01-02", date)
	return err == nil
}
