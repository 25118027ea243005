package identity

import (
	"net/http"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
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

func TestRepository_GetCredential(t *testing.T) {
	repo, mock, cleanup := setupTestRepository(t)
	defer cleanup()

	mock.ExpectQuery("SELECT email, password, role FROM login").
		WithArgs("karim@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"email", "password", "role"}).
			AddRow("karim@example.com", "$2a$10$hash", "patient"))

	cred, err := repo.GetCredential("karim@example.com")

	require.NoError(t, err)
	assert.Equal(t, types.RolePatient, cred.Role)
	assert.Equal(t, "$2a$10$hash", cred.PasswordHash)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetCredential_NotFound(t *testing.T) {
	repo, mock, cleanup := setupTestRepository(t)
	defer cleanup()

	mock.ExpectQuery("SELECT email, password, role FROM login").
		WithArgs("nobody@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"email", "password", "role"}))

	cred, err := repo.GetCredential("nobody@example.com")

	assert.Nil(t, cred)
	assert.Equal(t, http.StatusNotFound, types.HTTPStatusOf(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_CreatePatient_InsertsLoginRow(t *testing.T) {
	repo, mock, cleanup := setupTestRepository(t)
	defer cleanup()

	email := "karim@example.com"

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO patient").
		WithArgs("Karim", nil, "01711111111", &email, "$2a$10$hash", nil, nil, nil).
		WillReturnRows(sqlmock.NewRows([]string{"pid"}).AddRow(int64(5)))
	mock.ExpectExec("INSERT INTO login").
		WithArgs(email, "$2a$10$hash", types.RolePatient).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	pid, err := repo.CreatePatient(&types.Patient{
		Name:     "Karim",
		Phone:    "01711111111",
		Email:    &email,
		Password: "$2a$10$hash",
	})

	require.NoError(t, err)
	assert.Equal(t, int64(5), pid)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_CreatePatient_NoEmailSkipsLogin(t *testing.T) {
	repo, mock, cleanup := setupTestRepository(t)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO patient").
		WithArgs("Karim", nil, "01711111111", nil, "$2a$10$hash", nil, nil, nil).
		WillReturnRows(sqlmock.NewRows([]string{"pid"}).AddRow(int64(5)))
	mock.ExpectCommit()

	pid, err := repo.CreatePatient(&types.Patient{
		Name:     "Karim",
		Phone:    "01711111111",
		Password: "$2a$10$hash",
	})

	require.NoError(t, err)
	assert.Equal(t, int64(5), pid)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_CreatePatient_DuplicatePhone(t *testing.T) {
	repo, mock, cleanup := setupTestRepository(t)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO patient").
		WillReturnError(&pq.Error{Code: "23505"})
	mock.ExpectRollback()

	pid, err := repo.CreatePatient(&types.Patient{
		Name:     "Karim",
		Phone:    "01711111111",
		Password: "$2a$10$hash",
	})

	assert.Zero(t, pid)
	assert.Equal(t, http.StatusConflict, types.HTTPStatusOf(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_UpdatePatient_NotFound(t *testing.T) {
	repo, mock, cleanup := setupTestRepository(t)
	defer cleanup()

	name := "Karim"
	mock.ExpectExec("UPDATE patient").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdatePatient(99, &types.PatientUpdates{Name: &name})

	assert.Equal(t, http.StatusNotFound, types.HTTPStatusOf(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}
