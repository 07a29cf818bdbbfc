package payment

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/webhook"

	"github.com/lumastory/lumastory/internal/application/payment/paymentgateway"
)

var _ paymentgateway.WebhookVerifier = (*StripeWebhookVerifier)(nil)

var subscriptionKinds = map[stripe.EventType]paymentgateway.SubscriptionEventKind{
	"customer.subscription.created": paymentgateway.SubscriptionCreated,
	"customer.subscription.updated": paymentgateway.SubscriptionUpdated,
	"customer.subscription.deleted": paymentgateway.SubscriptionDeleted,
}

// StripeWebhookVerifier checks the Stripe-Signature header and normalizes
// customer.subscription.* events.
type StripeWebhookVerifier struct {
	secret    string
	tolerance time.Duration
}

func NewStripeWebhookVerifier(secret string) *StripeWebhookVerifier {
	return &StripeWebhookVerifier{
		secret:    secret,
		tolerance: webhook.DefaultTolerance,
	}
}

func (v *StripeWebhookVerifier) VerifyWebhook(payload []byte, signature string) (*paymentgateway.SubscriptionEvent, error) {
	event, err := webhook.ConstructEventWithOptions(payload, signature, v.secret, webhook.ConstructEventOptions{
		Tolerance:                v.tolerance,
		IgnoreAPIVersionMismatch: true,
	})
	if err != nil {
		if isSignatureError(err) {
			return nil, fmt.Errorf("%w: %v", paymentgateway.ErrInvalidSignature, err)
		}
		return nil, fmt.Errorf("failed to parse stripe event: %w", err)
	}

	out := &paymentgateway.SubscriptionEvent{
		EventID:    event.ID,
		EventType:  string(event.Type),
		Kind:       paymentgateway.SubscriptionIgnored,
		OccurredAt: time.Unix(event.Created, 0).UTC(),
	}

	kind, ok := subscriptionKinds[event.Type]
	if !ok || event.Data == nil {
		return out, nil
	}

	var sub stripe.Subscription
	if err := json.Unmarshal(event.Data.Raw, &sub); err != nil {
		return nil, fmt.Errorf("failed to decode subscription object: %w", err)
	}

	out.Kind = kind
	out.Status = string(sub.Status)
	out.UserID = sub.Metadata["user_id"]
	if sub.Customer != nil {
		out.CustomerID = sub.Customer.ID
	}
	if sub.Items != nil && len(sub.Items.Data) > 0 && sub.Items.Data[0].Price != nil {
		out.PriceID = sub.Items.Data[0].Price.ID
	}
	return out, nil
}

func isSignatureError(err error) bool {
	return errors.Is(err, webhook.ErrNotSigned) ||
		errors.Is(err, webhook.ErrNoValidSignature) ||
		errors.Is(err, webhook.ErrInvalidHeader) ||
		errors.Is(err, webhook.ErrTooOld)
}
