package booking

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/medibook/booking/pkg/interfaces"
	"github.com/medibook/booking/pkg/logger"
	"github.com/medibook/booking/pkg/types"
)

// Handler exposes the booking service over HTTP
type Handler struct {
	service interfaces.BookingService
	logger  *logger.Logger
}

// NewHandler creates a new booking HTTP handler
func NewHandler(service interfaces.BookingService, log *logger.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  log,
	}
}

// RegisterRoutes configures the cart and appointment routes
func (h *Handler) RegisterRoutes(router *mux.Router) {
	// Cart routes. The clear route is registered before the item route so
	// /cart/clear/{pid} is not captured as a cart item id.
	router.HandleFunc("/cart", h.addToCartHandler).Methods("POST")
	router.HandleFunc("/cart/clear/{pid}", h.clearCartHandler).Methods("DELETE")
	router.HandleFunc("/cart/{pid}", h.listCartHandler).Methods("GET")
	router.HandleFunc("/cart/{cid}", h.removeCartItemHandler).Methods("DELETE")

	// Appointment routes
	router.HandleFunc("/appointments", h.bookHandler).Methods("POST")
	router.HandleFunc("/appointments/checkout", h.checkoutHandler).Methods("POST")
	router.HandleFunc("/appointments/patient/{pid}", h.listByPatientHandler).Methods("GET")
	router.HandleFunc("/appointments/doctor/{did}", h.listByDoctorHandler).Methods("GET")
	router.HandleFunc("/appointments/status/{aid}", h.updateStatusHandler).Methods("PUT")
	router.HandleFunc("/appointments/cancel/{aid}", h.cancelHandler).Methods("PUT")
	router.HandleFunc("/appointments/{aid}", h.deleteHandler).Methods("DELETE")

	h.logger.Info("Booking routes configured")
}

type addToCartRequest struct {
	PID int64 `json:"pid"`
	DID int64 `json:"did"`
	HID int64 `json:"hid"`
}

// addToCartHandler handles adding a doctor to a patient's cart
func (h *Handler) addToCartHandler(w http.ResponseWriter, r *http.Request) {
	var req addToCartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, types.NewValidationError("invalid request body"))
		return
	}

	cid, err := h.service.AddToCart(req.PID, req.DID, req.HID)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Doctor added to cart",
		"cid":     cid,
	})
}

// listCartHandler returns the joined cart rows for a patient
func (h *Handler) listCartHandler(w http.ResponseWriter, r *http.Request) {
	pid, err := pathID(r, "pid")
	if err != nil {
		h.writeError(w, err)
		return
	}

	lines, err := h.service.ListCart(pid)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, lines)
}

// removeCartItemHandler removes a single cart entry
func (h *Handler) removeCartItemHandler(w http.ResponseWriter, r *http.Request) {
	cid, err := pathID(r, "cid")
	if err != nil {
		h.writeError(w, err)
		return
	}

	if err := h.service.RemoveCartItem(cid); err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Cart item removed",
	})
}

// clearCartHandler removes every cart entry for a patient
func (h *Handler) clearCartHandler(w http.ResponseWriter, r *http.Request) {
	pid, err := pathID(r, "pid")
	if err != nil {
		h.writeError(w, err)
		return
	}

	if err := h.service.ClearCart(pid); err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Cart cleared",
	})
}

type bookRequest struct {
	PID             int64  `json:"pid"`
	DID             int64  `json:"did"`
	HID             int64  `json:"hid"`
	AppointmentDate string `json:"appointment_date"`
}

// bookHandler creates a single pending appointment
func (h *Handler) bookHandler(w http.ResponseWriter, r *http.Request) {
	var req bookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, types.NewValidationError("invalid request body"))
		return
	}

	aid, err := h.service.Book(req.PID, req.DID, req.HID, req.AppointmentDate)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusCreated, map[string]interface{}{
		"success":        true,
		"message":        "Appointment booked successfully",
		"appointment_id": aid,
	})
}

type checkoutRequest struct {
	PID             int64  `json:"pid"`
	AppointmentDate string `json:"appointment_date"`
}

// checkoutHandler converts a patient's whole cart into appointments in one
// transaction
func (h *Handler) checkoutHandler(w http.ResponseWriter, r *http.Request) {
	var req checkoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, types.NewValidationError("invalid request body"))
		return
	}

	aids, err := h.service.Checkout(req.PID, req.AppointmentDate)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusCreated, map[string]interface{}{
		"success":         true,
		"message":         "Cart checked out successfully",
		"appointment_ids": aids,
		"count":           len(aids),
	})
}

// listByPatientHandler lists a patient's appointments. Zero rows is a
// normal 200 with an empty array, distinct from a malformed id (400).
func (h *Handler) listByPatientHandler(w http.ResponseWriter, r *http.Request) {
	pid, err := pathID(r, "pid")
	if err != nil {
		h.writeError(w, err)
		return
	}

	appointments, err := h.service.ListByPatient(pid)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":      true,
		"count":        len(appointments),
		"appointments": appointments,
	})
}

// listByDoctorHandler lists a doctor's appointments
func (h *Handler) listByDoctorHandler(w http.ResponseWriter, r *http.Request) {
	did, err := pathID(r, "did")
	if err != nil {
		h.writeError(w, err)
		return
	}

	appointments, err := h.service.ListByDoctor(did)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":      true,
		"count":        len(appointments),
		"appointments": appointments,
	})
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

// updateStatusHandler updates an appointment's status
func (h *Handler) updateStatusHandler(w http.ResponseWriter, r *http.Request) {
	aid, err := pathID(r, "aid")
	if err != nil {
		h.writeError(w, err)
		return
	}

	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, types.NewValidationError("invalid request body"))
		return
	}

	if err := h.service.UpdateStatus(aid, req.Status); err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Appointment status updated",
	})
}

// cancelHandler cancels an appointment
func (h *Handler) cancelHandler(w http.ResponseWriter, r *http.Request) {
	aid, err := pathID(r, "aid")
	if err != nil {
		h.writeError(w, err)
		return
	}

	if err := h.service.Cancel(aid); err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Appointment cancelled",
	})
}

// deleteHandler hard deletes an appointment
func (h *Handler) deleteHandler(w http.ResponseWriter, r *http.Request) {
	aid, err := pathID(r, "aid")
	if err != nil {
		h.writeError(w, err)
		return
	}

	if err := h.service.Delete(aid); err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Appointment deleted",
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

// writeError converts an error into the uniform failure envelope. Causes of
// internal errors are logged, never echoed to the caller.
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
