package booking

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/medibook/booking/pkg/logger"
	"github.com/medibook/booking/pkg/types"
)

// MockBookingService is a mock implementation of BookingService
type MockBookingService struct {
	mock.Mock
}

func (m *MockBookingService) AddToCart(pid, did, hid int64) (int64, error) {
	args := m.Called(pid, did, hid)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockBookingService) ListCart(pid int64) ([]*types.CartLine, error) {
	args := m.Called(pid)
	return args.Get(0).([]*types.CartLine), args.Error(1)
}

func (m *MockBookingService) RemoveCartItem(cid int64) error {
	args := m.Called(cid)
	return args.Error(0)
}

func (m *MockBookingService) ClearCart(pid int64) error {
	args := m.Called(pid)
	return args.Error(0)
}

func (m *MockBookingService) Book(pid, did, hid int64, date string) (int64, error) {
	args := m.Called(pid, did, hid, date)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockBookingService) Checkout(pid int64, date string) ([]int64, error) {
	args := m.Called(pid, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int64), args.Error(1)
}

func (m *MockBookingService) ListByPatient(pid int64) ([]*types.PatientAppointment, error) {
	args := m.Called(pid)
	return args.Get(0).([]*types.PatientAppointment), args.Error(1)
}

func (m *MockBookingService) ListByDoctor(did int64) ([]*types.DoctorAppointment, error) {
	args := m.Called(did)
	return args.Get(0).([]*types.DoctorAppointment), args.Error(1)
}

func (m *MockBookingService) UpdateStatus(aid int64, status string) error {
	args := m.Called(aid, status)
	return args.Error(0)
}

func (m *MockBookingService) Cancel(aid int64) error {
	args := m.Called(aid)
	return args.Error(0)
}

func (m *MockBookingService) Delete(aid int64) error {
	args := m.Called(aid)
	return args.Error(0)
}

func setupTestHandler() (*mux.Router, *MockBookingService) {
	mockService := &MockBookingService{}
	handler := NewHandler(mockService, logger.New("error"))

	router := mux.NewRouter()
	handler.RegisterRoutes(router)

	return router, mockService
}

func doRequest(router *mux.Router, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}

	req := httptest.NewRequest(method, path, &buf)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestAddToCartHandler(t *testing.T) {
	router, mockService := setupTestHandler()

	mockService.On("AddToCart", int64(1), int64(2), int64(3)).Return(int64(7), nil)

	rec := doRequest(router, "POST", "/cart", map[string]int64{"pid": 1, "did": 2, "hid": 3})

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, float64(7), body["cid"])
	mockService.AssertExpectations(t)
}

func TestAddToCartHandler_ValidationError(t *testing.T) {
	router, mockService := setupTestHandler()

	mockService.On("AddToCart", int64(1), int64(0), int64(3)).
		Return(int64(0), types.NewValidationError("missing required fields (pid, did, hid)"))

	rec := doRequest(router, "POST", "/cart", map[string]int64{"pid": 1, "hid": 3})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, false, body["success"])
	assert.Contains(t, body["message"], "missing required fields")
}

func TestListCartHandler_ReturnsBareArray(t *testing.T) {
	router, mockService := setupTestHandler()

	degree := "MBBS"
	lines := []*types.CartLine{
		{CID: 1, PID: 5, DID: 2, DoctorName: "Dr. Rahman", Specialisation: "Cardiology", Degree: &degree, Phone: "01711111111", HID: 3, HospitalName: "City General"},
	}
	mockService.On("ListCart", int64(5)).Return(lines, nil)

	rec := doRequest(router, "GET", "/cart/5", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	var body []map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body, 1)
	assert.Equal(t, "Dr. Rahman", body[0]["NAME"])
	assert.Equal(t, "City General", body[0]["hospital_name"])
}

func TestListCartHandler_EmptyCart(t *testing.T) {
	router, mockService := setupTestHandler()

	mockService.On("ListCart", int64(5)).Return([]*types.CartLine{}, nil)

	rec := doRequest(router, "GET", "/cart/5", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())
}

func TestRemoveCartItemHandler_NotFound(t *testing.T) {
	router, mockService := setupTestHandler()

	mockService.On("RemoveCartItem", int64(42)).Return(types.NewNotFoundError("cart item 42 not found"))

	rec := doRequest(router, "DELETE", "/cart/42", nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, false, body["success"])
}

func TestClearCartHandler(t *testing.T) {
	router, mockService := setupTestHandler()

	mockService.On("ClearCart", int64(5)).Return(nil)

	rec := doRequest(router, "DELETE", "/cart/clear/5", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, true, body["success"])
	mockService.AssertExpectations(t)
}

func TestBookHandler(t *testing.T) {
	router, mockService := setupTestHandler()

	mockService.On("Book", int64(1), int64(2), int64(3), "2026-09-15").Return(int64(11), nil)

	rec := doRequest(router, "POST", "/appointments", map[string]interface{}{
		"pid": 1, "did": 2, "hid": 3, "appointment_date": "2026-09-15",
	})

	assert.Equal(t, http.StatusCreated, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, float64(11), body["appointment_id"])
	mockService.AssertExpectations(t)
}

func TestCheckoutHandler(t *testing.T) {
	router, mockService := setupTestHandler()

	mockService.On("Checkout", int64(5), "2026-09-20").Return([]int64{21, 22}, nil)

	rec := doRequest(router, "POST", "/appointments/checkout", map[string]interface{}{
		"pid": 5, "appointment_date": "2026-09-20",
	})

	assert.Equal(t, http.StatusCreated, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, float64(2), body["count"])
	mockService.AssertExpectations(t)
}

func TestListByPatientHandler_EmptyList(t *testing.T) {
	router, mockService := setupTestHandler()

	mockService.On("ListByPatient", int64(5)).Return([]*types.PatientAppointment{}, nil)

	rec := doRequest(router, "GET", "/appointments/patient/5", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, float64(0), body["count"])
	assert.NotNil(t, body["appointments"])
}

func TestListByPatientHandler_MalformedID(t *testing.T) {
	router, mockService := setupTestHandler()

	rec := doRequest(router, "GET", "/appointments/patient/abc", nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, false, body["success"])
	mockService.AssertNotCalled(t, "ListByPatient", mock.Anything)
}

func TestListByDoctorHandler(t *testing.T) {
	router, mockService := setupTestHandler()

	date := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)
	appointments := []*types.DoctorAppointment{
		{AID: 11, AppointmentDate: date, Status: types.StatusConfirmed, PatientName: "Karim", HospitalName: "City General"},
	}
	mockService.On("ListByDoctor", int64(2)).Return(appointments, nil)

	rec := doRequest(router, "GET", "/appointments/doctor/2", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, float64(1), body["count"])
}

func TestUpdateStatusHandler_InvalidStatus(t *testing.T) {
	router, mockService := setupTestHandler()

	mockService.On("UpdateStatus", int64(11), "scheduled").
		Return(types.NewValidationError(`invalid status "scheduled"`))

	rec := doRequest(router, "PUT", "/appointments/status/11", map[string]string{"status": "scheduled"})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCancelHandler(t *testing.T) {
	router, mockService := setupTestHandler()

	mockService.On("Cancel", int64(11)).Return(nil)

	rec := doRequest(router, "PUT", "/appointments/cancel/11", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	mockService.AssertExpectations(t)
}

func TestDeleteHandler_NotFound(t *testing.T) {
	router, mockService := setupTestHandler()

	mockService.On("Delete", int64(99)).Return(types.NewNotFoundError("appointment 99 not found"))

	rec := doRequest(router, "DELETE", "/appointments/99", nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestErrorEnvelope_HidesInternalDetails(t *testing.T) {
	router, mockService := setupTestHandler()

	mockService.On("ListByPatient", int64(5)).
		Return([]*types.PatientAppointment(nil), types.NewInternalError("failed to get patient appointments", assert.AnError))

	rec := doRequest(router, "GET", "/appointments/patient/5", nil)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "internal server error", body["message"])
	assert.NotContains(t, rec.Body.String(), assert.AnError.Error())
}
