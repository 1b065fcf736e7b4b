package models

// RoomStatus is the operational state of a room.
type RoomStatus string

const (
	RoomReady       RoomStatus = "READY"
	RoomMaintenance RoomStatus = "MAINTENANCE"
	RoomCleaning    RoomStatus = "CLEANING"
)

func (s RoomStatus) Valid() bool {
	switch s {
	case RoomReady, RoomMaintenance, RoomCleaning:
		return true
	}
	return false
}

// TransactionStatus is the lifecycle state of a booking.
type TransactionStatus string

const (
	TransactionPending   TransactionStatus = "PENDING"
	TransactionCheckedIn TransactionStatus = "CHECKED_IN"
	TransactionCompleted TransactionStatus = "COMPLETED"
)

// ActiveTransactionStatuses block room edits and count against availability.
var ActiveTransactionStatuses = []TransactionStatus{TransactionPending, TransactionCheckedIn}

func (s TransactionStatus) Valid() bool {
	switch s {
	case TransactionPending, TransactionCheckedIn, TransactionCompleted:
		return true
	}
	return false
}

func (s TransactionStatus) Active() bool {
	return s == TransactionPending || s == TransactionCheckedIn
}

// PaymentStatus of a bill.
type PaymentStatus string

const (
	PaymentPending PaymentStatus = "PENDING"
	PaymentPaid    PaymentStatus = "PAID"
)

// PaymentMethod of a bill, unset until a payment is attempted.
type PaymentMethod string

const (
	PaymentCash PaymentMethod = "CASH"
	PaymentCard PaymentMethod = "CARD"
)

func (m PaymentMethod) Valid() bool {
	return m == PaymentCash || m == PaymentCard
}
