package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"hotel-ops/models"

	"github.com/shopspring/decimal"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/checkout/session"
	"github.com/stripe/stripe-go/v76/webhook"
)

const billIDMetadataKey = "billId"

type StripeConfig struct {
	SecretKey     string
	WebhookSecret string
	SuccessURL    string
	CancelURL     string
	Currency      string
}

// StripeGateway opens Stripe Checkout sessions for card payments.
type StripeGateway struct {
	sessions *session.Client
	cfg      StripeConfig
}

func NewStripeGateway(cfg StripeConfig) *StripeGateway {
	if cfg.Currency == "" {
		cfg.Currency = "thb"
	}
	return &StripeGateway{
		sessions: &session.Client{B: stripe.GetBackend(stripe.APIBackend), Key: cfg.SecretKey},
		cfg:      cfg,
	}
}

// amountInMinorUnits converts a bill total to the smallest currency unit.
func amountInMinorUnits(amount decimal.Decimal) int64 {
	return amount.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}

func (g *StripeGateway) CreateCheckoutSession(ctx context.Context, bill *models.Bill) (*CheckoutSession, error) {
	params := &stripe.CheckoutSessionParams{
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		Mode:               stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency: stripe.String(g.cfg.Currency),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(fmt.Sprintf("Hotel stay, bill #%d", bill.ID)),
					},
					UnitAmount: stripe.Int64(amountInMinorUnits(bill.TotalAmount)),
				},
				Quantity: stripe.Int64(1),
			},
		},
		SuccessURL: stripe.String(g.cfg.SuccessURL),
		CancelURL:  stripe.String(g.cfg.CancelURL),
	}
	params.Context = ctx
	params.AddMetadata(billIDMetadataKey, strconv.FormatUint(uint64(bill.ID), 10))

	s, err := g.sessions.New(params)
	if err != nil {
		return nil, fmt.Errorf("stripe checkout session for bill %d: %w", bill.ID, err)
	}
	return &CheckoutSession{ID: s.ID, URL: s.URL}, nil
}

// ParsePaymentEvent verifies a webhook delivery and returns the bill it
// settles. ok is false for event types that do not confirm a payment.
func (g *StripeGateway) ParsePaymentEvent(payload []byte, signature string) (billID uint, ok bool, err error) {
	event, err := webhook.ConstructEventWithOptions(payload, signature, g.cfg.WebhookSecret,
		webhook.ConstructEventOptions{IgnoreAPIVersionMismatch: true})
	if err != nil {
		return 0, false, ValidationError("Invalid webhook signature")
	}
	if event.Type != stripe.EventTypeCheckoutSessionCompleted {
		return 0, false, nil
	}

	var cs stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &cs); err != nil {
		return 0, false, ValidationError("Malformed checkout session payload")
	}
	raw, found := cs.Metadata[billIDMetadataKey]
	if !found {
		return 0, false, ValidationError("Checkout session has no bill id")
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, false, ValidationError("Checkout session has an invalid bill id")
	}
	return uint(id), true, nil
}
