package services

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v76/webhook"
)

const testWebhookSecret = "whsec_test"

func signedEvent(t *testing.T, payload string) (body []byte, header string) {
	t.Helper()
	signed := webhook.GenerateTestSignedPayload(&webhook.UnsignedPayload{
		Payload:   []byte(payload),
		Secret:    testWebhookSecret,
		Timestamp: time.Now(),
		Scheme:    "v1",
	})
	return signed.Payload, signed.Header
}

func TestAmountInMinorUnits(t *testing.T) {
	assert.Equal(t, int64(12500), amountInMinorUnits(decimal.RequireFromString("125.00")))
	assert.Equal(t, int64(3333), amountInMinorUnits(decimal.RequireFromString("33.33")))
	assert.Equal(t, int64(1), amountInMinorUnits(decimal.RequireFromString("0.005")))
}

func TestParsePaymentEvent(t *testing.T) {
	g := NewStripeGateway(StripeConfig{WebhookSecret: testWebhookSecret})

	body, header := signedEvent(t, `{
		"id": "evt_1",
		"object": "event",
		"type": "checkout.session.completed",
		"data": {"object": {"id": "cs_1", "object": "checkout.session", "metadata": {"billId": "42"}}}
	}`)
	billID, ok, err := g.ParsePaymentEvent(body, header)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, uint(42), billID)

	body, header = signedEvent(t, `{
		"id": "evt_2",
		"object": "event",
		"type": "payment_intent.created",
		"data": {"object": {"id": "pi_1", "object": "payment_intent"}}
	}`)
	_, ok, err = g.ParsePaymentEvent(body, header)
	require.NoError(t, err)
	assert.False(t, ok)

	body, header = signedEvent(t, `{
		"id": "evt_3",
		"object": "event",
		"type": "checkout.session.completed",
		"data": {"object": {"id": "cs_2", "object": "checkout.session", "metadata": {}}}
	}`)
	_, _, err = g.ParsePaymentEvent(body, header)
	requireKind(t, err, KindValidation, "")

	_, _, err = g.ParsePaymentEvent(body, "t=1,v1=deadbeef")
	requireKind(t, err, KindValidation, "Invalid webhook signature")
}
