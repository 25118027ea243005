package booking

import (
	"fmt"
	"time"

	"github.com/medibook/booking/pkg/interfaces"
	"github.com/medibook/booking/pkg/logger"
	"github.com/medibook/booking/pkg/monitoring"
	"github.com/medibook/booking/pkg/types"
)

// dateLayout is the wire format for appointment dates.
const dateLayout = "2006-01-02"

// Service implements the BookingService interface. It owns the cart and the
// appointment workflow, which are coupled through checkout.
type Service struct {
	repository interfaces.BookingRepository
	logger     *logger.Logger
}

// NewService creates a new booking service
func NewService(repo interfaces.BookingRepository, log *logger.Logger) interfaces.BookingService {
	return &Service{
		repository: repo,
		logger:     log,
	}
}

// AddToCart adds a doctor at a hospital to a patient's cart. Duplicate
// entries are allowed: adding the same doctor twice queues a double booking.
func (s *Service) AddToCart(pid, did, hid int64) (int64, error) {
	if pid <= 0 || did <= 0 || hid <= 0 {
		return 0, types.NewValidationError("missing required fields (pid, did, hid)")
	}

	return s.repository.AddCartItem(&types.CartItem{
		PID: pid,
		DID: did,
		HID: hid,
	})
}

// ListCart returns the patient's cart joined with doctor fields and the
// hospital name. An empty cart is an empty list, not an error.
func (s *Service) ListCart(pid int64) ([]*types.CartLine, error) {
	if pid <= 0 {
		return nil, types.NewValidationError("patient id is required")
	}

	return s.repository.GetCartItems(pid)
}

// RemoveCartItem removes a single cart entry
func (s *Service) RemoveCartItem(cid int64) error {
	if cid <= 0 {
		return types.NewValidationError("cart item id is required")
	}

	return s.repository.DeleteCartItem(cid)
}

// ClearCart removes every cart entry for the patient
func (s *Service) ClearCart(pid int64) error {
	if pid <= 0 {
		return types.NewValidationError("patient id is required")
	}

	return s.repository.ClearCart(pid)
}

// Book creates a single appointment with status forced to pending
func (s *Service) Book(pid, did, hid int64, date string) (int64, error) {
	if pid <= 0 || did <= 0 || hid <= 0 || date == "" {
		return 0, types.NewValidationError("missing required fields (pid, did, hid, appointment_date)")
	}

	parsed, err := parseDate(date)
	if err != nil {
		return 0, err
	}

	aid, err := s.repository.CreateAppointment(&types.Appointment{
		PID:             pid,
		DID:             did,
		HID:             hid,
		AppointmentDate: parsed,
		Status:          types.StatusPending,
	})
	if err != nil {
		return 0, err
	}

	monitoring.RecordAppointmentBooked("single")
	return aid, nil
}

// Checkout converts the patient's whole cart into pending appointments and
// clears the cart in one transaction. Unlike the per-item Book/ClearCart
// flow driven by the client, a failure here leaves no partial state.
func (s *Service) Checkout(pid int64, date string) ([]int64, error) {
	if pid <= 0 || date == "" {
		return nil, types.NewValidationError("missing required fields (pid, appointment_date)")
	}

	parsed, err := parseDate(date)
	if err != nil {
		return nil, err
	}

	aids, err := s.repository.CheckoutCart(pid, parsed)
	if err != nil {
		return nil, err
	}

	for range aids {
		monitoring.RecordAppointmentBooked("checkout")
	}
	s.logger.Infof("Checkout booked %d appointments for patient %d", len(aids), pid)
	return aids, nil
}

// ListByPatient lists a patient's appointments. Zero appointments is a
// normal outcome, not an error.
func (s *Service) ListByPatient(pid int64) ([]*types.PatientAppointment, error) {
	if pid <= 0 {
		return nil, types.NewValidationError("patient id is required")
	}

	return s.repository.GetPatientAppointments(pid)
}

// ListByDoctor lists a doctor's appointments
func (s *Service) ListByDoctor(did int64) ([]*types.DoctorAppointment, error) {
	if did <= 0 {
		return nil, types.NewValidationError("doctor id is required")
	}

	return s.repository.GetDoctorAppointments(did)
}

// UpdateStatus validates the target status case-insensitively and writes
// its canonical lower-case form. The lifecycle is permissive: any status
// may transition to any other.
func (s *Service) UpdateStatus(aid int64, status string) error {
	if aid <= 0 {
		return types.NewValidationError("appointment id is required")
	}
	if status == "" {
		return types.NewValidationError("status is required")
	}

	canonical, err := types.ParseStatus(status)
	if err != nil {
		return err
	}

	return s.repository.UpdateAppointmentStatus(aid, canonical)
}

// Cancel sets an appointment's status to cancelled
func (s *Service) Cancel(aid int64) error {
	if aid <= 0 {
		return types.NewValidationError("appointment id is required")
	}

	return s.repository.UpdateAppointmentStatus(aid, types.StatusCancelled)
}

// Delete hard deletes an appointment
func (s *Service) Delete(aid int64) error {
	if aid <= 0 {
		return types.NewValidationError("appointment id is required")
	}

	return s.repository.DeleteAppointment(aid)
}

func parseDate(date string) (time.Time, error) {
	parsed, err := time.Parse(dateLayout, date)
	if err != nil {
		return time.Time{}, types.NewValidationError(fmt.Sprintf("invalid appointment_date %q (use YYYY-MM-DD)", date))
	}
	return parsed, nil
}
