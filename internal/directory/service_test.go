package directory

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/medibook/booking/internal/identity"
	"github.com/medibook/booking/pkg/logger"
	"github.com/medibook/booking/pkg/types"
)

// MockDirectoryRepository is a mock implementation of DirectoryRepository
type MockDirectoryRepository struct {
	mock.Mock
}

func (m *MockDirectoryRepository) GetHospitals() ([]*types.Hospital, error) {
	args := m.Called()
	return args.Get(0).([]*types.Hospital), args.Error(1)
}

func (m *MockDirectoryRepository) GetHospitalByID(hid int64) (*types.Hospital, error) {
	args := m.Called(hid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.Hospital), args.Error(1)
}

func (m *MockDirectoryRepository) CreateHospital(h *types.Hospital) (int64, error) {
	args := m.Called(h)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockDirectoryRepository) UpdateHospital(hid int64, h *types.Hospital) error {
	args := m.Called(hid, h)
	return args.Error(0)
}

func (m *MockDirectoryRepository) DeleteHospital(hid int64) error {
	args := m.Called(hid)
	return args.Error(0)
}

func (m *MockDirectoryRepository) GetDoctors() ([]*types.Doctor, error) {
	args := m.Called()
	return args.Get(0).([]*types.Doctor), args.Error(1)
}

func (m *MockDirectoryRepository) GetDoctorByID(did int64) (*types.Doctor, error) {
	args := m.Called(did)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.Doctor), args.Error(1)
}

func (m *MockDirectoryRepository) GetDoctorByEmail(email string) (*types.Doctor, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.Doctor), args.Error(1)
}

func (m *MockDirectoryRepository) GetDoctorsByHospital(hid int64) ([]*types.Doctor, error) {
	args := m.Called(hid)
	return args.Get(0).([]*types.Doctor), args.Error(1)
}

func (m *MockDirectoryRepository) CreateDoctor(d *types.Doctor) (int64, error) {
	args := m.Called(d)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockDirectoryRepository) UpdateDoctor(did int64, updates *types.DoctorUpdates) error {
	args := m.Called(did, updates)
	return args.Error(0)
}

func (m *MockDirectoryRepository) DeleteDoctor(did int64) error {
	args := m.Called(did)
	return args.Error(0)
}

func setupTestService() (*Service, *MockDirectoryRepository) {
	mockRepo := &MockDirectoryRepository{}
	service := &Service{
		repository: mockRepo,
		hasher:     identity.NewPasswordManager(),
		logger:     logger.New("error"),
	}
	return service, mockRepo
}

func TestCreateHospital_Success(t *testing.T) {
	service, mockRepo := setupTestService()

	mockRepo.On("CreateHospital", mock.MatchedBy(func(h *types.Hospital) bool {
		return h.Name == "City General" && h.Address == "12 Mirpur Rd"
	})).Return(int64(3), nil)

	hid, err := service.CreateHospital(&types.Hospital{
		Name:    "  City General  ",
		Address: " 12 Mirpur Rd ",
		Phone:   "0258151515",
	})

	assert.NoError(t, err)
	assert.Equal(t, int64(3), hid)
	mockRepo.AssertExpectations(t)
}

func TestCreateHospital_MissingFields(t *testing.T) {
	service, mockRepo := setupTestService()

	_, err := service.CreateHospital(&types.Hospital{Name: "City General"})

	assert.Error(t, err)
	mockRepo.AssertNotCalled(t, "CreateHospital", mock.Anything)
}

func TestCreateHospital_InvalidEmail(t *testing.T) {
	service, mockRepo := setupTestService()

	email := "not an email"
	_, err := service.CreateHospital(&types.Hospital{
		Name:    "City General",
		Address: "12 Mirpur Rd",
		Phone:   "0258151515",
		Email:   &email,
	})

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid email")
	mockRepo.AssertNotCalled(t, "CreateHospital", mock.Anything)
}

func TestCreateDoctor_HashesPassword(t *testing.T) {
	service, mockRepo := setupTestService()

	mockRepo.On("CreateDoctor", mock.MatchedBy(func(d *types.Doctor) bool {
		return strings.HasPrefix(d.Password, "$2a$")
	})).Return(int64(2), nil)

	did, err := service.CreateDoctor(&types.Doctor{
		HID:            3,
		Name:           "Dr. Rahman",
		Specialisation: "Cardiology",
		Phone:          "01711111111",
		Password:       "s3cret",
	})

	require.NoError(t, err)
	assert.Equal(t, int64(2), did)
	mockRepo.AssertExpectations(t)
}

func TestCreateDoctor_DefaultPasswordIsHashed(t *testing.T) {
	service, mockRepo := setupTestService()

	mockRepo.On("CreateDoctor", mock.MatchedBy(func(d *types.Doctor) bool {
		return d.Password != "" && d.Password != defaultDoctorPassword
	})).Return(int64(2), nil)

	_, err := service.CreateDoctor(&types.Doctor{
		HID:            3,
		Name:           "Dr. Rahman",
		Specialisation: "Cardiology",
		Phone:          "01711111111",
	})

	require.NoError(t, err)
	mockRepo.AssertExpectations(t)
}

func TestCreateDoctor_MissingFields(t *testing.T) {
	service, mockRepo := setupTestService()

	_, err := service.CreateDoctor(&types.Doctor{Name: "Dr. Rahman", Phone: "01711111111"})

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "required")
	mockRepo.AssertNotCalled(t, "CreateDoctor", mock.Anything)
}

func TestCreateDoctor_InvalidDOB(t *testing.T) {
	service, mockRepo := setupTestService()

	dob := "01/02/1980"
	_, err := service.CreateDoctor(&types.Doctor{
		HID:            3,
		Name:           "Dr. Rahman",
		Specialisation: "Cardiology",
		Phone:          "01711111111",
		DOB:            &dob,
	})

	assert.Error(t, err)
	mockRepo.AssertNotCalled(t, "CreateDoctor", mock.Anything)
}

func TestUpdateDoctor_InvalidPhone(t *testing.T) {
	service, mockRepo := setupTestService()

	phone := "123"
	err := service.UpdateDoctor(2, &types.DoctorUpdates{Phone: &phone})

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid phone")
	mockRepo.AssertNotCalled(t, "UpdateDoctor", mock.Anything, mock.Anything)
}

func TestGetDoctor_InvalidID(t *testing.T) {
	service, mockRepo := setupTestService()

	_, err := service.GetDoctor(0)

	assert.Error(t, err)
	mockRepo.AssertNotCalled(t, "GetDoctorByID", mock.Anything)
}
