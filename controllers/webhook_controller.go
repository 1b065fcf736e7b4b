package controllers

import (
	"net/http"

	"hotel-ops/services"
	"hotel-ops/utils"

	"github.com/gin-gonic/gin"
)

const maxWebhookBody = 64 << 10

// PaymentEventParser verifies a provider callback and extracts the paid bill.
type PaymentEventParser interface {
	ParsePaymentEvent(payload []byte, signature string) (billID uint, ok bool, err error)
}

type WebhookController struct {
	Events     PaymentEventParser
	BillingSvc *services.BillingService
}

func NewWebhookController(events PaymentEventParser, billing *services.BillingService) *WebhookController {
	return &WebhookController{Events: events, BillingSvc: billing}
}

// POST /api/webhook/stripe
func (ctrl *WebhookController) HandleStripe(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxWebhookBody)
	payload, err := c.GetRawData()
	if err != nil {
		badRequest(c, "Unable to read request body")
		return
	}

	billID, ok, err := ctrl.Events.ParsePaymentEvent(payload, c.GetHeader("Stripe-Signature"))
	if err != nil {
		respondError(c, err)
		return
	}
	if !ok {
		utils.JSONMessage(c, http.StatusOK, "Event ignored", nil)
		return
	}

	bill, err := ctrl.BillingSvc.OnPaymentConfirmed(c.Request.Context(), billID)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONMessage(c, http.StatusOK, "Payment confirmed", bill)
}
