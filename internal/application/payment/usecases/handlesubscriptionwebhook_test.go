package usecases

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumastory/lumastory/internal/application/payment/paymentgateway"
	"github.com/lumastory/lumastory/internal/application/testutil"
	vo "github.com/lumastory/lumastory/internal/domain/user/valueobjects"
	apperrors "github.com/lumastory/lumastory/internal/shared/errors"
)

type mockVerifier struct {
	VerifyWebhookFunc func(payload []byte, signature string) (*paymentgateway.SubscriptionEvent, error)
}

func (m *mockVerifier) VerifyWebhook(payload []byte, signature string) (*paymentgateway.SubscriptionEvent, error) {
	return m.VerifyWebhookFunc(payload, signature)
}

func returning(event *paymentgateway.SubscriptionEvent) *mockVerifier {
	return &mockVerifier{VerifyWebhookFunc: func([]byte, string) (*paymentgateway.SubscriptionEvent, error) {
		return event, nil
	}}
}

var priceTiers = map[string]vo.Tier{
	"price_pro":    vo.TierPro,
	"price_family": vo.TierFamily,
}

func TestHandleSubscriptionWebhook_TierChanges(t *testing.T) {
	tests := []struct {
		name     string
		start    vo.Tier
		event    paymentgateway.SubscriptionEvent
		applied  bool
		wantTier vo.Tier
	}{
		{
			name:     "created active upgrades",
			start:    vo.TierTrial,
			event:    paymentgateway.SubscriptionEvent{Kind: paymentgateway.SubscriptionCreated, UserID: "u-1", CustomerID: "cus_1", Status: "active", PriceID: "price_family"},
			applied:  true,
			wantTier: vo.TierFamily,
		},
		{
			name:     "trialing counts as active",
			start:    vo.TierTrial,
			event:    paymentgateway.SubscriptionEvent{Kind: paymentgateway.SubscriptionUpdated, UserID: "u-1", Status: "trialing", PriceID: "price_pro"},
			applied:  true,
			wantTier: vo.TierPro,
		},
		{
			name:     "past due downgrades",
			start:    vo.TierPro,
			event:    paymentgateway.SubscriptionEvent{Kind: paymentgateway.SubscriptionUpdated, UserID: "u-1", Status: "past_due", PriceID: "price_pro"},
			applied:  true,
			wantTier: vo.TierTrial,
		},
		{
			name:     "deleted downgrades",
			start:    vo.TierFamily,
			event:    paymentgateway.SubscriptionEvent{Kind: paymentgateway.SubscriptionDeleted, UserID: "u-1", Status: "active", PriceID: "price_family"},
			applied:  true,
			wantTier: vo.TierTrial,
		},
		{
			name:     "unknown price is acknowledged",
			start:    vo.TierTrial,
			event:    paymentgateway.SubscriptionEvent{Kind: paymentgateway.SubscriptionCreated, UserID: "u-1", Status: "active", PriceID: "price_gold"},
			applied:  false,
			wantTier: vo.TierTrial,
		},
		{
			name:     "ignored event type",
			start:    vo.TierPro,
			event:    paymentgateway.SubscriptionEvent{Kind: paymentgateway.SubscriptionIgnored, EventType: "invoice.paid"},
			applied:  false,
			wantTier: vo.TierPro,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := testutil.NewMockUserRepository(testutil.NewUser("u-1", tt.start))
			event := tt.event
			uc := NewHandleSubscriptionWebhookUseCase(users, returning(&event), priceTiers, testutil.NewMockLogger())

			res, err := uc.Execute(context.Background(), HandleSubscriptionWebhookCommand{Payload: []byte("{}"), Signature: "sig"})
			require.NoError(t, err)
			assert.Equal(t, tt.applied, res.Applied)

			u, err := users.GetByID(context.Background(), "u-1")
			require.NoError(t, err)
			assert.Equal(t, tt.wantTier, u.Tier())
		})
	}
}

func TestHandleSubscriptionWebhook_ResolvesByCustomerID(t *testing.T) {
	u := testutil.NewUser("u-1", vo.TierTrial)
	u.LinkStripeCustomer("cus_42")
	users := testutil.NewMockUserRepository(u)
	event := &paymentgateway.SubscriptionEvent{Kind: paymentgateway.SubscriptionCreated, CustomerID: "cus_42", Status: "active", PriceID: "price_pro"}
	uc := NewHandleSubscriptionWebhookUseCase(users, returning(event), priceTiers, testutil.NewMockLogger())

	res, err := uc.Execute(context.Background(), HandleSubscriptionWebhookCommand{})
	require.NoError(t, err)
	assert.True(t, res.Applied)
	assert.Equal(t, "u-1", res.UserID)
	assert.Equal(t, "pro", res.Tier)
}

func TestHandleSubscriptionWebhook_LinksCustomerOnFirstEvent(t *testing.T) {
	users := testutil.NewMockUserRepository(testutil.NewUser("u-1", vo.TierTrial))
	event := &paymentgateway.SubscriptionEvent{Kind: paymentgateway.SubscriptionCreated, UserID: "u-1", CustomerID: "cus_7", Status: "active", PriceID: "price_pro"}
	uc := NewHandleSubscriptionWebhookUseCase(users, returning(event), priceTiers, testutil.NewMockLogger())

	_, err := uc.Execute(context.Background(), HandleSubscriptionWebhookCommand{})
	require.NoError(t, err)

	linked, err := users.GetByStripeCustomerID(context.Background(), "cus_7")
	require.NoError(t, err)
	require.NotNil(t, linked)
	assert.Equal(t, "u-1", linked.ID())
}

func TestHandleSubscriptionWebhook_UnknownUserAcknowledged(t *testing.T) {
	event := &paymentgateway.SubscriptionEvent{Kind: paymentgateway.SubscriptionCreated, UserID: "ghost", CustomerID: "cus_x", Status: "active", PriceID: "price_pro"}
	uc := NewHandleSubscriptionWebhookUseCase(testutil.NewMockUserRepository(), returning(event), priceTiers, testutil.NewMockLogger())

	res, err := uc.Execute(context.Background(), HandleSubscriptionWebhookCommand{})
	require.NoError(t, err)
	assert.False(t, res.Applied)
	assert.Equal(t, "user not found", res.Reason)
}

func TestHandleSubscriptionWebhook_InvalidSignature(t *testing.T) {
	verifier := &mockVerifier{VerifyWebhookFunc: func([]byte, string) (*paymentgateway.SubscriptionEvent, error) {
		return nil, fmt.Errorf("stripe: %w", paymentgateway.ErrInvalidSignature)
	}}
	uc := NewHandleSubscriptionWebhookUseCase(testutil.NewMockUserRepository(), verifier, priceTiers, testutil.NewMockLogger())

	_, err := uc.Execute(context.Background(), HandleSubscriptionWebhookCommand{Payload: []byte("{}"), Signature: "bad"})
	appErr := apperrors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, 400, appErr.Code)
}

func TestHandleSubscriptionWebhook_UpdateFailureIsRetried(t *testing.T) {
	users := testutil.NewMockUserRepository(testutil.NewUser("u-1", vo.TierTrial))
	users.UpdateError = errors.New("db down")
	event := &paymentgateway.SubscriptionEvent{Kind: paymentgateway.SubscriptionCreated, UserID: "u-1", Status: "active", PriceID: "price_pro"}
	uc := NewHandleSubscriptionWebhookUseCase(users, returning(event), priceTiers, testutil.NewMockLogger())

	_, err := uc.Execute(context.Background(), HandleSubscriptionWebhookCommand{})
	require.Error(t, err)
	assert.Nil(t, apperrors.GetAppError(err))
}
