package services

import (
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// ErrorKind classifies a failure for the API boundary.
type ErrorKind string

const (
	KindValidation   ErrorKind = "validation"
	KindNotFound     ErrorKind = "not_found"
	KindConflict     ErrorKind = "conflict"
	KindUnauthorized ErrorKind = "unauthorized"
	KindDependency   ErrorKind = "dependency"
)

// ServiceError carries a user-facing message and, for dependency failures,
// the underlying cause.
type ServiceError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

func ValidationError(msg string) error {
	return &ServiceError{Kind: KindValidation, Message: msg}
}

func NotFoundError(msg string) error {
	return &ServiceError{Kind: KindNotFound, Message: msg}
}

func ConflictError(msg string) error {
	return &ServiceError{Kind: KindConflict, Message: msg}
}

func UnauthorizedError(msg string) error {
	return &ServiceError{Kind: KindUnauthorized, Message: msg}
}

func DependencyError(msg string, err error) error {
	return &ServiceError{Kind: KindDependency, Message: msg, Err: err}
}

// KindOf reports the kind of err; anything that is not a ServiceError is a
// dependency failure.
func KindOf(err error) ErrorKind {
	var se *ServiceError
	if errors.As(err, &se) {
		return se.Kind
	}
	return KindDependency
}

// MessageOf returns the user-facing message for err.
func MessageOf(err error) string {
	var se *ServiceError
	if errors.As(err, &se) {
		return se.Message
	}
	return "An unexpected error occurred"
}

// Messages shared by the booking engine.
const (
	MsgDataRequired           = "Data is required"
	MsgCheckInBeforeCheckOut  = "Check in date must be before check out date"
	MsgInvalidPrice           = "Total price must be greater than zero"
	MsgRoomNotFound           = "Room not found"
	MsgRoomNotAvailable       = "Room is not available"
	MsgRoomAlreadyBooked      = "Room is already booked for the selected dates"
	MsgRoomTypeNotFound       = "Room type not found"
	MsgTransactionNotFound    = "Transaction not found"
	MsgTransactionCompleted   = "Transaction already completed"
	MsgAlreadyCheckedIn       = "Guest is already checked in"
	MsgBookingInProgress      = "Booking is in progress"
	MsgRoomHasActiveBookings  = "Cannot update room with active transactions"
	MsgBillNotFound           = "Bill not found"
	MsgBillAlreadyPaid        = "Bill has already been paid"
	MsgUnauthorized           = "Unauthorized"
	MsgCardPaymentUnavailable = "Card payments are not configured"
)

// Caller is the authenticated staff member on whose behalf an operation runs.
type Caller struct {
	StaffID uint
	IsAdmin bool
}

func requireAdmin(c Caller) error {
	if !c.IsAdmin {
		return UnauthorizedError(MsgUnauthorized)
	}
	return nil
}

// surface passes ServiceErrors through untouched. Anything else is a store or
// provider failure: it is logged and reported as a dependency error.
func surface(logger *zap.Logger, msg string, err error, fields ...zap.Field) error {
	var se *ServiceError
	if errors.As(err, &se) {
		return err
	}
	logger.Error(msg, append(fields, zap.Error(err))...)
	return DependencyError(msg, err)
}
