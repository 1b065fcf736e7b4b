package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"hotel-ops/models"
	"hotel-ops/repository"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// CheckoutSession is a hosted card-payment page created for a bill.
type CheckoutSession struct {
	ID  string
	URL string
}

// PaymentGateway starts card payments. Confirmation arrives later through
// OnPaymentConfirmed.
type PaymentGateway interface {
	CreateCheckoutSession(ctx context.Context, bill *models.Bill) (*CheckoutSession, error)
}

// PaymentResult is what MarkPaid hands back: the bill and, for card
// payments, where to send the guest.
type PaymentResult struct {
	Bill        *models.Bill `json:"bill"`
	CheckoutURL string       `json:"checkoutUrl,omitempty"`
}

type BillingService struct {
	DB      *gorm.DB
	Store   repository.Store
	Gateway PaymentGateway
	Logger  *zap.Logger
	Now     func() time.Time
}

func NewBillingService(db *gorm.DB, store repository.Store, gateway PaymentGateway, logger *zap.Logger) *BillingService {
	return &BillingService{
		DB:      db,
		Store:   store,
		Gateway: gateway,
		Logger:  logger,
		Now:     func() time.Time { return time.Now().UTC() },
	}
}

// OnCheckout creates the PENDING bill for a completed stay. It writes through
// st so checkout can run it inside the same atomic scope as the status change.
func (s *BillingService) OnCheckout(ctx context.Context, st repository.Store, transactionID uint, amount decimal.Decimal) (*models.Bill, error) {
	existing, err := st.FindBillByTransaction(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ConflictError(fmt.Sprintf("Transaction %d already has a bill", transactionID))
	}

	bill := &models.Bill{
		TransactionID: transactionID,
		TotalAmount:   amount,
		PaymentStatus: models.PaymentPending,
		BillDate:      s.Now().UTC(),
	}
	if err := st.InsertBill(ctx, bill); err != nil {
		return nil, err
	}
	return bill, nil
}

// CreateBillForTransaction is OnCheckout against the service's own store.
func (s *BillingService) CreateBillForTransaction(ctx context.Context, transactionID uint, amount decimal.Decimal) (*models.Bill, error) {
	bill, err := s.OnCheckout(ctx, s.Store, transactionID, amount)
	if err != nil {
		return nil, surface(s.Logger, "Failed to create bill", err, zap.Uint("transaction_id", transactionID))
	}
	return bill, nil
}

// MarkPaid settles a bill. Cash is paid immediately; card records the method,
// leaves the bill PENDING and opens a checkout session.
func (s *BillingService) MarkPaid(ctx context.Context, billID uint, method models.PaymentMethod) (*PaymentResult, error) {
	if !method.Valid() {
		return nil, ValidationError("Payment method must be CASH or CARD")
	}
	if method == models.PaymentCard && s.Gateway == nil {
		return nil, ConflictError(MsgCardPaymentUnavailable)
	}

	var bill *models.Bill
	err := s.Store.Atomic(ctx, func(st repository.Store) error {
		current, err := st.FindBillByID(ctx, billID, true)
		if err != nil {
			return err
		}
		if current == nil {
			return NotFoundError(MsgBillNotFound)
		}
		if current.PaymentStatus != models.PaymentPending {
			return ConflictError(MsgBillAlreadyPaid)
		}

		fields := map[string]interface{}{"payment_method": string(method)}
		if method == models.PaymentCash {
			fields["payment_status"] = models.PaymentPaid
			fields["payment_date"] = s.Now().UTC()
		} else {
			fields["payment_status"] = models.PaymentPending
			fields["payment_date"] = nil
		}

		bill, err = st.UpdateBill(ctx, billID, fields)
		return err
	})
	if err != nil {
		return nil, surface(s.Logger, "Failed to process payment", err, zap.Uint("bill_id", billID))
	}

	if method == models.PaymentCash {
		s.Logger.Info("bill paid", zap.Uint("bill_id", billID), zap.String("method", string(method)))
		return &PaymentResult{Bill: bill}, nil
	}

	session, err := s.Gateway.CreateCheckoutSession(ctx, bill)
	if err != nil {
		return nil, surface(s.Logger, "Failed to create checkout session", err, zap.Uint("bill_id", billID))
	}
	if session.ID != "" {
		updated, err := s.Store.UpdateBill(ctx, billID, map[string]interface{}{"checkout_session_id": session.ID})
		if err != nil {
			s.Logger.Warn("failed to record checkout session", zap.Uint("bill_id", billID), zap.Error(err))
		} else {
			bill = updated
		}
	}

	s.Logger.Info("card checkout started", zap.Uint("bill_id", billID), zap.String("session_id", session.ID))
	return &PaymentResult{Bill: bill, CheckoutURL: session.URL}, nil
}

// OnPaymentConfirmed is called by the payment provider path once a card
// payment settles. Confirming an already paid bill is a no-op.
func (s *BillingService) OnPaymentConfirmed(ctx context.Context, billID uint) (*models.Bill, error) {
	var bill *models.Bill
	err := s.Store.Atomic(ctx, func(st repository.Store) error {
		current, err := st.FindBillByID(ctx, billID, true)
		if err != nil {
			return err
		}
		if current == nil {
			return NotFoundError(MsgBillNotFound)
		}
		if current.PaymentStatus == models.PaymentPaid {
			bill = current
			return nil
		}

		fields := map[string]interface{}{
			"payment_status": models.PaymentPaid,
			"payment_date":   s.Now().UTC(),
		}
		if current.PaymentMethod == nil {
			fields["payment_method"] = string(models.PaymentCard)
		}
		bill, err = st.UpdateBill(ctx, billID, fields)
		return err
	})
	if err != nil {
		return nil, surface(s.Logger, "Failed to confirm payment", err, zap.Uint("bill_id", billID))
	}

	s.Logger.Info("payment confirmed", zap.Uint("bill_id", billID))
	return bill, nil
}

func (s *BillingService) Get(ctx context.Context, id uint) (*models.Bill, error) {
	var bill models.Bill
	if err := s.DB.WithContext(ctx).Preload("Transaction.Guest").Preload("Transaction.Room").First(&bill, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFoundError(MsgBillNotFound)
		}
		return nil, surface(s.Logger, "Failed to load bill", err, zap.Uint("bill_id", id))
	}
	return &bill, nil
}

// List returns every bill, newest bill date first.
func (s *BillingService) List(ctx context.Context) ([]models.Bill, error) {
	return s.list(ctx, nil)
}

// ListUnpaid returns the bills still waiting for payment.
func (s *BillingService) ListUnpaid(ctx context.Context) ([]models.Bill, error) {
	status := models.PaymentPending
	return s.list(ctx, &status)
}

func (s *BillingService) list(ctx context.Context, status *models.PaymentStatus) ([]models.Bill, error) {
	q := s.DB.WithContext(ctx).Preload("Transaction").Order("bill_date DESC")
	if status != nil {
		q = q.Where("payment_status = ?", *status)
	}
	var bills []models.Bill
	if err := q.Find(&bills).Error; err != nil {
		return nil, surface(s.Logger, "Failed to fetch bills", err)
	}
	return bills, nil
}

// Export writes the bills report as an .xlsx workbook.
func (s *BillingService) Export(ctx context.Context, w io.Writer) error {
	bills, err := s.List(ctx)
	if err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Bills"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return surface(s.Logger, "Failed to build bills report", err)
	}

	headers := []string{
		"BillID", "TransactionID", "RoomID", "GuestID", "TotalAmount",
		"PaymentStatus", "PaymentMethod", "BillDate", "PaymentDate",
	}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, header)
	}

	for i, b := range bills {
		row := i + 2
		method, paidAt := "", ""
		if b.PaymentMethod != nil {
			method = string(*b.PaymentMethod)
		}
		if b.PaymentDate != nil {
			paidAt = b.PaymentDate.Format(time.RFC3339)
		}
		var roomID, guestID uint
		if b.Transaction != nil {
			roomID, guestID = b.Transaction.RoomID, b.Transaction.GuestID
		}
		amount, _ := b.TotalAmount.Float64()

		values := []interface{}{
			b.ID, b.TransactionID, roomID, guestID, amount,
			string(b.PaymentStatus), method, b.BillDate.Format(time.RFC3339), paidAt,
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			f.SetCellValue(sheet, cell, v)
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return surface(s.Logger, "Failed to write bills report", err)
	}
	return nil
}
