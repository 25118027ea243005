package identity

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/medibook/booking/pkg/interfaces"
	"github.com/medibook/booking/pkg/logger"
	"github.com/medibook/booking/pkg/types"
)

// Handler exposes login and patient account endpoints over HTTP
type Handler struct {
	service interfaces.IdentityService
	logger  *logger.Logger
}

// NewHandler creates a new identity HTTP handler
func NewHandler(service interfaces.IdentityService, log *logger.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  log,
	}
}

// RegisterRoutes configures the authentication and patient routes
func (h *Handler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/login", h.loginHandler).Methods("POST")

	// The byEmail route is registered before {pid} so emails are not
	// parsed as patient ids.
	router.HandleFunc("/patients", h.registerHandler).Methods("POST")
	router.HandleFunc("/patients/byEmail/{email}", h.getByEmailHandler).Methods("GET")
	router.HandleFunc("/patients/{pid}", h.getHandler).Methods("GET")
	router.HandleFunc("/patients/{pid}", h.updateHandler).Methods("PUT")

	h.logger.Info("Identity routes configured")
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerRequest struct {
	Name     string  `json:"name"`
	DOB      *string `json:"dob"`
	Phone    string  `json:"phone"`
	Email    *string `json:"email"`
	Password string  `json:"pass"`
	Gender   *string `json:"gender"`
	Address  *string `json:"addr"`
	Job      *string `json:"job"`
}

func (h *Handler) loginHandler(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, types.NewValidationError("invalid request body"))
		return
	}

	user, err := h.service.Login(req.Email, req.Password)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Login successful",
		"user":    user,
	})
}

func (h *Handler) registerHandler(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, types.NewValidationError("invalid request body"))
		return
	}

	patient := &types.Patient{
		Name:     req.Name,
		DOB:      req.DOB,
		Phone:    req.Phone,
		Email:    req.Email,
		Password: req.Password,
		Gender:   req.Gender,
		Address:  req.Address,
		Job:      req.Job,
	}

	pid, err := h.service.RegisterPatient(patient)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusCreated, map[string]interface{}{
		"success":   true,
		"message":   "Patient registered successfully",
		"patientId": pid,
	})
}

func (h *Handler) getHandler(w http.ResponseWriter, r *http.Request) {
	pid, err := pathID(r, "pid")
	if err != nil {
		h.writeError(w, err)
		return
	}

	patient, err := h.service.GetPatient(pid)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"patient": patient,
	})
}

func (h *Handler) getByEmailHandler(w http.ResponseWriter, r *http.Request) {
	email := mux.Vars(r)["email"]

	patient, err := h.service.GetPatientByEmail(email)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"patient": patient,
	})
}

func (h *Handler) updateHandler(w http.ResponseWriter, r *http.Request) {
	pid, err := pathID(r, "pid")
	if err != nil {
		h.writeError(w, err)
		return
	}

	var updates types.PatientUpdates
	if err := json.NewDecoder(r.Body).Decode(&updates); err != nil {
		h.writeError(w, types.NewValidationError("invalid request body"))
		return
	}

	if err := h.service.UpdatePatient(pid, &updates); err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Patient updated successfully",
	})
}

// pathID parses a positive integer path variable
func pathID(r *http.Request, name string) (int64, error) {
	raw := mux.Vars(r)[name]
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, types.NewValidationError("invalid " + name)
	}
	return id, nil
}

// writeJSON writes a JSON response
func (h *Handler) writeJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.WithError(err).Error("Failed to encode JSON response")
	}
}

// writeError maps an error to its HTTP status and JSON envelope
func (h *Handler) writeError(w http.ResponseWriter, err error) {
	status := types.HTTPStatusOf(err)
	if status >= http.StatusInternalServerError {
		h.logger.WithError(err).Error("Request failed")
	}

	h.writeJSON(w, status, map[string]interface{}{
		"success": false,
		"message": types.MessageOf(err),
	})
}
