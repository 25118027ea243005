package directory

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/medibook/booking/pkg/interfaces"
	"github.com/medibook/booking/pkg/logger"
	"github.com/medibook/booking/pkg/types"
)

// Handler exposes the directory service over HTTP
type Handler struct {
	service interfaces.DirectoryService
	logger  *logger.Logger
}

// NewHandler creates a new directory HTTP handler
func NewHandler(service interfaces.DirectoryService, log *logger.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  log,
	}
}

// RegisterRoutes configures the hospital and doctor routes
func (h *Handler) RegisterRoutes(router *mux.Router) {
	// Hospital routes
	router.HandleFunc("/hospitals", h.listHospitalsHandler).Methods("GET")
	router.HandleFunc("/hospitals", h.createHospitalHandler).Methods("POST")
	router.HandleFunc("/hospitals/{hid}", h.getHospitalHandler).Methods("GET")
	router.HandleFunc("/hospitals/{hid}", h.updateHospitalHandler).Methods("PUT")
	router.HandleFunc("/hospitals/{hid}", h.deleteHospitalHandler).Methods("DELETE")

	// Doctor routes. Static segments are registered before the {did}
	// catch-all so /doctors/hospital/1 and /doctors/byEmail/x resolve
	// correctly.
	router.HandleFunc("/doctors", h.listDoctorsHandler).Methods("GET")
	router.HandleFunc("/doctors", h.createDoctorHandler).Methods("POST")
	router.HandleFunc("/doctors/hospital/{hid}", h.listDoctorsByHospitalHandler).Methods("GET")
	router.HandleFunc("/doctors/byEmail/{email}", h.getDoctorByEmailHandler).Methods("GET")
	router.HandleFunc("/doctors/{did}", h.getDoctorHandler).Methods("GET")
	router.HandleFunc("/doctors/{did}", h.updateDoctorHandler).Methods("PUT")
	router.HandleFunc("/doctors/{did}", h.deleteDoctorHandler).Methods("DELETE")

	h.logger.Info("Directory routes configured")
}

// listHospitalsHandler returns all hospitals
func (h *Handler) listHospitalsHandler(w http.ResponseWriter, r *http.Request) {
	hospitals, err := h.service.ListHospitals()
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, hospitals)
}

// getHospitalHandler returns a single hospital
func (h *Handler) getHospitalHandler(w http.ResponseWriter, r *http.Request) {
	hid, err := pathID(r, "hid")
	if err != nil {
		h.writeError(w, err)
		return
	}

	hospital, err := h.service.GetHospital(hid)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, hospital)
}

type hospitalRequest struct {
	Name    string  `json:"name"`
	Address string  `json:"address"`
	Email   *string `json:"email"`
	Phone   string  `json:"phone"`
	Website *string `json:"website"`
}

func (req *hospitalRequest) toHospital() *types.Hospital {
	return &types.Hospital{
		Name:    req.Name,
		Address: req.Address,
		Email:   req.Email,
		Phone:   req.Phone,
		Website: req.Website,
	}
}

// createHospitalHandler creates a hospital record
func (h *Handler) createHospitalHandler(w http.ResponseWriter, r *http.Request) {
	var req hospitalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, types.NewValidationError("invalid request body"))
		return
	}

	hid, err := h.service.CreateHospital(req.toHospital())
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"message": "Hospital added successfully",
		"hid":     hid,
	})
}

// updateHospitalHandler overwrites a hospital record
func (h *Handler) updateHospitalHandler(w http.ResponseWriter, r *http.Request) {
	hid, err := pathID(r, "hid")
	if err != nil {
		h.writeError(w, err)
		return
	}

	var req hospitalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, types.NewValidationError("invalid request body"))
		return
	}

	if err := h.service.UpdateHospital(hid, req.toHospital()); err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Hospital updated successfully",
	})
}

// deleteHospitalHandler removes a hospital
func (h *Handler) deleteHospitalHandler(w http.ResponseWriter, r *http.Request) {
	hid, err := pathID(r, "hid")
	if err != nil {
		h.writeError(w, err)
		return
	}

	if err := h.service.DeleteHospital(hid); err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Hospital deleted successfully",
	})
}

// listDoctorsHandler returns all doctors
func (h *Handler) listDoctorsHandler(w http.ResponseWriter, r *http.Request) {
	doctors, err := h.service.ListDoctors()
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, doctors)
}

// getDoctorHandler returns a single doctor
func (h *Handler) getDoctorHandler(w http.ResponseWriter, r *http.Request) {
	did, err := pathID(r, "did")
	if err != nil {
		h.writeError(w, err)
		return
	}

	doctor, err := h.service.GetDoctor(did)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"doctor":  doctor,
	})
}

// getDoctorByEmailHandler returns a doctor looked up by email
func (h *Handler) getDoctorByEmailHandler(w http.ResponseWriter, r *http.Request) {
	email := mux.Vars(r)["email"]

	doctor, err := h.service.GetDoctorByEmail(email)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, doctor)
}

// listDoctorsByHospitalHandler returns every doctor at a hospital
func (h *Handler) listDoctorsByHospitalHandler(w http.ResponseWriter, r *http.Request) {
	hid, err := pathID(r, "hid")
	if err != nil {
		h.writeError(w, err)
		return
	}

	doctors, err := h.service.ListDoctorsByHospital(hid)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, doctors)
}

type doctorRequest struct {
	HID            int64    `json:"hid"`
	Name           string   `json:"name"`
	Email          *string  `json:"email"`
	Password       string   `json:"pass"`
	Address        *string  `json:"addr"`
	DOB            *string  `json:"dob"`
	Gender         *string  `json:"gender"`
	Specialisation string   `json:"specialisation"`
	Institute      *string  `json:"institute"`
	Degree         *string  `json:"degree"`
	Phone          string   `json:"phone"`
	Fees           *float64 `json:"fees"`
}

// createDoctorHandler creates a doctor record
func (h *Handler) createDoctorHandler(w http.ResponseWriter, r *http.Request) {
	var req doctorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, types.NewValidationError("invalid request body"))
		return
	}

	did, err := h.service.CreateDoctor(&types.Doctor{
		HID:            req.HID,
		Name:           req.Name,
		Email:          req.Email,
		Password:       req.Password,
		Address:        req.Address,
		DOB:            req.DOB,
		Gender:         req.Gender,
		Specialisation: req.Specialisation,
		Institute:      req.Institute,
		Degree:         req.Degree,
		Phone:          req.Phone,
		Fees:           req.Fees,
	})
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"message": "Doctor added successfully",
		"did":     did,
	})
}

// updateDoctorHandler overwrites a doctor's profile fields
func (h *Handler) updateDoctorHandler(w http.ResponseWriter, r *http.Request) {
	did, err := pathID(r, "did")
	if err != nil {
		h.writeError(w, err)
		return
	}

	var updates types.DoctorUpdates
	if err := json.NewDecoder(r.Body).Decode(&updates); err != nil {
		h.writeError(w, types.NewValidationError("invalid request body"))
		return
	}

	if err := h.service.UpdateDoctor(did, &updates); err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Doctor updated successfully",
	})
}

// deleteDoctorHandler removes a doctor
func (h *Handler) deleteDoctorHandler(w http.ResponseWriter, r *http.Request) {
	did, err := pathID(r, "did")
	if err != nil {
		h.writeError(w, err)
		return
	}

	if err := h.service.DeleteDoctor(did); err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Doctor deleted successfully",
	})
}

// pathID parses a numeric path parameter
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

// writeError converts an error into the uniform failure envelope
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
