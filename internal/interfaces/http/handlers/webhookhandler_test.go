package handlers

import (
	"bytes"
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumastory/lumastory/internal/application/payment/usecases"
	"github.com/lumastory/lumastory/internal/interfaces/http/handlers/testutil"
	"github.com/lumastory/lumastory/internal/shared/constants"
	"github.com/lumastory/lumastory/internal/shared/errors"
)

type mockSubscriptionWebhookUC struct {
	result *usecases.HandleSubscriptionWebhookResult
	err    error
	got    usecases.HandleSubscriptionWebhookCommand
}

func (m *mockSubscriptionWebhookUC) Execute(_ context.Context, cmd usecases.HandleSubscriptionWebhookCommand) (*usecases.HandleSubscriptionWebhookResult, error) {
	m.got = cmd
	return m.result, m.err
}

func TestWebhookHandler_Stripe_PassesRawPayload(t *testing.T) {
	uc := &mockSubscriptionWebhookUC{result: &usecases.HandleSubscriptionWebhookResult{EventID: "evt_1", Applied: true}}
	handler := NewWebhookHandler(uc, testutil.NewMockLogger())

	payload := []byte(`{"id":"evt_1","type":"customer.subscription.updated"}`)
	c, w := testutil.NewRawRequestContext(http.MethodPost, "/api/webhooks/stripe", payload, map[string]string{
		constants.HeaderStripeSignature: "t=1,v1=abc",
	})

	handler.Stripe(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, payload, uc.got.Payload)
	assert.Equal(t, "t=1,v1=abc", uc.got.Signature)
}

func TestWebhookHandler_Stripe_Errors(t *testing.T) {
	tests := []struct {
		name       string
		payload    []byte
		err        error
		wantStatus int
	}{
		{"invalid signature", []byte(`{}`), errors.NewValidationError("invalid webhook signature"), http.StatusBadRequest},
		{"payload too large", bytes.Repeat([]byte("a"), maxWebhookPayload+1), nil, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &mockSubscriptionWebhookUC{err: tt.err}
			handler := NewWebhookHandler(uc, testutil.NewMockLogger())
			c, w := testutil.NewRawRequestContext(http.MethodPost, "/api/webhooks/stripe", tt.payload, nil)

			handler.Stripe(c)

			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestWebhookHandler_Stripe_UnknownUserAcknowledged(t *testing.T) {
	uc := &mockSubscriptionWebhookUC{result: &usecases.HandleSubscriptionWebhookResult{EventID: "evt_2", Reason: "user not found"}}
	handler := NewWebhookHandler(uc, testutil.NewMockLogger())
	c, w := testutil.NewRawRequestContext(http.MethodPost, "/api/webhooks/stripe", []byte(`{}`), nil)

	handler.Stripe(c)

	assert.Equal(t, http.StatusOK, w.Code)
}
