package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Bill is created at checkout, one per transaction.
type Bill struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	TransactionID uint            `gorm:"column:transaction_id;uniqueIndex;not null" json:"transactionId"`
	TotalAmount   decimal.Decimal `gorm:"column:total_amount;type:decimal(12,2)" json:"totalAmount"`
	PaymentStatus PaymentStatus   `gorm:"column:payment_status;type:varchar(20);index" json:"paymentStatus"`
	PaymentMethod *PaymentMethod  `gorm:"column:payment_method;type:varchar(10)" json:"paymentMethod"`
	BillDate      time.Time       `gorm:"column:bill_date" json:"billDate"`
	PaymentDate   *time.Time      `gorm:"column:payment_date" json:"paymentDate"`

	// last card checkout session, if any
	CheckoutSessionID string `gorm:"column:checkout_session_id;size:255" json:"checkoutSessionId,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Transaction *Transaction `gorm:"foreignKey:TransactionID;references:ID" json:"transaction,omitempty"`
}
