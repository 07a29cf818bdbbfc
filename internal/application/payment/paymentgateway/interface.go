package paymentgateway

import (
	"errors"
	"time"
)

// ErrInvalidSignature is returned when a webhook payload fails verification.
var ErrInvalidSignature = errors.New("invalid webhook signature")

// SubscriptionEventKind is the normalized lifecycle step of a subscription.
type SubscriptionEventKind string

const (
	SubscriptionCreated SubscriptionEventKind = "created"
	SubscriptionUpdated SubscriptionEventKind = "updated"
	SubscriptionDeleted SubscriptionEventKind = "deleted"
	// SubscriptionIgnored marks event types this service does not act on.
	SubscriptionIgnored SubscriptionEventKind = "ignored"
)

// WebhookVerifier authenticates a raw webhook delivery and parses it.
type WebhookVerifier interface {
	// VerifyWebhook returns ErrInvalidSignature (possibly wrapped) when the
	// signature header does not match the payload.
	VerifyWebhook(payload []byte, signature string) (*SubscriptionEvent, error)
}

// SubscriptionEvent is the provider-neutral form of a subscription webhook.
type SubscriptionEvent struct {
	EventID    string
	EventType  string
	Kind       SubscriptionEventKind
	CustomerID string
	// UserID comes from subscription metadata and may be empty.
	UserID     string
	Status     string
	PriceID    string
	OccurredAt time.Time
}

// IsActive reports whether the subscription currently grants paid access.
func (e *SubscriptionEvent) IsActive() bool {
	return e.Kind != SubscriptionDeleted && (e.Status == "active" || e.Status == "trialing")
}
