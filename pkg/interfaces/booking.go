package interfaces

import (
	"time"

	"github.com/medibook/booking/pkg/types"
)

// BookingService defines the interface for the cart and appointment workflow
type BookingService interface {
	// Cart management
	AddToCart(pid, did, hid int64) (int64, error)
	ListCart(pid int64) ([]*types.CartLine, error)
	RemoveCartItem(cid int64) error
	ClearCart(pid int64) error

	// Appointment workflow
	Book(pid, did, hid int64, date string) (int64, error)
	Checkout(pid int64, date string) ([]int64, error)
	ListByPatient(pid int64) ([]*types.PatientAppointment, error)
	ListByDoctor(did int64) ([]*types.DoctorAppointment, error)
	UpdateStatus(aid int64, status string) error
	Cancel(aid int64) error
	Delete(aid int64) error
}

// BookingRepository defines the interface for cart and appointment persistence
type BookingRepository interface {
	// Cart
	AddCartItem(item *types.CartItem) (int64, error)
	GetCartItems(pid int64) ([]*types.CartLine, error)
	DeleteCartItem(cid int64) error
	ClearCart(pid int64) error

	// Appointments
	CreateAppointment(apt *types.Appointment) (int64, error)
	GetPatientAppointments(pid int64) ([]*types.PatientAppointment, error)
	GetDoctorAppointments(did int64) ([]*types.DoctorAppointment, error)
	UpdateAppointmentStatus(aid int64, status types.AppointmentStatus) error
	DeleteAppointment(aid int64) error

	// CheckoutCart converts every cart row for the patient into a pending
	// appointment and clears the cart inside a single transaction.
	CheckoutCart(pid int64, date time.Time) ([]int64, error)
}
