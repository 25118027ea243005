package directory

import (
	"net/http"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medibook/booking/pkg/database"
	"github.com/medibook/booking/pkg/logger"
	"github.com/medibook/booking/pkg/types"
)

func setupTestRepository(t *testing.T) (*Repository, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	repo := &Repository{
		db:     &database.DB{DB: db},
		logger: logger.New("error"),
	}

	cleanup := func() {
		db.Close()
	}

	return repo, mock, cleanup
}

func TestRepository_CreateHospital(t *testing.T) {
	repo, mock, cleanup := setupTestRepository(t)
	defer cleanup()

	email := "info@citygeneral.example"
	mock.ExpectQuery("INSERT INTO hospital").
		WithArgs("City General", "12 Mirpur Rd", &email, "0258151515", nil).
		WillReturnRows(sqlmock.NewRows([]string{"hid"}).AddRow(int64(3)))

	hid, err := repo.CreateHospital(&types.Hospital{
		Name:    "City General",
		Address: "12 Mirpur Rd",
		Email:   &email,
		Phone:   "0258151515",
	})

	assert.NoError(t, err)
	assert.Equal(t, int64(3), hid)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetHospitalByID_NotFound(t *testing.T) {
	repo, mock, cleanup := setupTestRepository(t)
	defer cleanup()

	mock.ExpectQuery("SELECT hid, name, addr").
		WithArgs(int64(99)).
		WillReturnRows(sqlmock.NewRows([]string{"hid", "name", "addr", "email", "phone", "website"}))

	h, err := repo.GetHospitalByID(99)

	assert.Nil(t, h)
	assert.Error(t, err)
	assert.Equal(t, http.StatusNotFound, types.HTTPStatusOf(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetDoctorByID(t *testing.T) {
	repo, mock, cleanup := setupTestRepository(t)
	defer cleanup()

	rows := sqlmock.NewRows([]string{
		"did", "hid", "name", "email", "addr", "dob", "gender",
		"specialisation", "institute", "degree", "phone", "fees",
	}).AddRow(
		int64(2), int64(3), "Dr. Rahman", "dr.rahman@example.com", nil, "1975-04-02", "male",
		"Cardiology", nil, "MBBS", "01711111111", 500.0,
	)

	mock.ExpectQuery("SELECT did, hid, name").
		WithArgs(int64(2)).
		WillReturnRows(rows)

	d, err := repo.GetDoctorByID(2)

	require.NoError(t, err)
	assert.Equal(t, "Dr. Rahman", d.Name)
	assert.Equal(t, int64(3), d.HID)
	require.NotNil(t, d.Fees)
	assert.Equal(t, 500.0, *d.Fees)
	assert.Nil(t, d.Institute)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetDoctorsByHospital_Empty(t *testing.T) {
	repo, mock, cleanup := setupTestRepository(t)
	defer cleanup()

	mock.ExpectQuery("SELECT did, hid, name").
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{
			"did", "hid", "name", "email", "addr", "dob", "gender",
			"specialisation", "institute", "degree", "phone", "fees",
		}))

	doctors, err := repo.GetDoctorsByHospital(3)

	assert.NoError(t, err)
	assert.NotNil(t, doctors)
	assert.Empty(t, doctors)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_DeleteHospital_NotFound(t *testing.T) {
	repo, mock, cleanup := setupTestRepository(t)
	defer cleanup()

	mock.ExpectExec("DELETE FROM hospital").
		WithArgs(int64(99)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.DeleteHospital(99)

	assert.Error(t, err)
	assert.Equal(t, http.StatusNotFound, types.HTTPStatusOf(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}
