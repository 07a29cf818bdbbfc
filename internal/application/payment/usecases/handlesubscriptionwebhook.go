package usecases

import (
	"context"
	stderrors "errors"
	"fmt"

	"github.com/lumastory/lumastory/internal/application/payment/paymentgateway"
	"github.com/lumastory/lumastory/internal/domain/user"
	vo "github.com/lumastory/lumastory/internal/domain/user/valueobjects"
	apperrors "github.com/lumastory/lumastory/internal/shared/errors"
	"github.com/lumastory/lumastory/internal/shared/logger"
)

type HandleSubscriptionWebhookCommand struct {
	Payload   []byte
	Signature string
}

// HandleSubscriptionWebhookResult reports what happened. Unknown users and
// prices are acknowledged, not retried.
type HandleSubscriptionWebhookResult struct {
	EventID string
	Applied bool
	UserID  string
	Tier    string
	Reason  string
}

type HandleSubscriptionWebhookUseCase struct {
	userRepo   user.Repository
	verifier   paymentgateway.WebhookVerifier
	priceTiers map[string]vo.Tier
	logger     logger.Interface
}

func NewHandleSubscriptionWebhookUseCase(
	userRepo user.Repository,
	verifier paymentgateway.WebhookVerifier,
	priceTiers map[string]vo.Tier,
	logger logger.Interface,
) *HandleSubscriptionWebhookUseCase {
	return &HandleSubscriptionWebhookUseCase{
		userRepo:   userRepo,
		verifier:   verifier,
		priceTiers: priceTiers,
		logger:     logger,
	}
}

func (uc *HandleSubscriptionWebhookUseCase) Execute(ctx context.Context, cmd HandleSubscriptionWebhookCommand) (*HandleSubscriptionWebhookResult, error) {
	event, err := uc.verifier.VerifyWebhook(cmd.Payload, cmd.Signature)
	if err != nil {
		if stderrors.Is(err, paymentgateway.ErrInvalidSignature) {
			uc.logger.Warnw("invalid stripe webhook signature", "error", err)
			return nil, apperrors.NewValidationError("invalid webhook signature")
		}
		uc.logger.Warnw("malformed stripe webhook", "error", err)
		return nil, apperrors.NewBadRequestError("malformed webhook payload", err.Error())
	}

	result := &HandleSubscriptionWebhookResult{EventID: event.EventID}
	if event.Kind == paymentgateway.SubscriptionIgnored {
		uc.logger.Debugw("ignoring webhook event", "event_id", event.EventID, "type", event.EventType)
		result.Reason = "event type ignored"
		return result, nil
	}

	u, err := uc.resolveUser(ctx, event)
	if err != nil {
		return nil, err
	}
	if u == nil {
		uc.logger.Warnw("subscription event for unknown user",
			"event_id", event.EventID,
			"customer_id", event.CustomerID,
			"metadata_user_id", event.UserID,
		)
		result.Reason = "user not found"
		return result, nil
	}
	result.UserID = u.ID()

	target := vo.TierTrial
	if event.IsActive() {
		tier, ok := uc.priceTiers[event.PriceID]
		if !ok {
			uc.logger.Warnw("subscription event with unmapped price",
				"event_id", event.EventID,
				"user_id", u.ID(),
				"price_id", event.PriceID,
			)
			result.Reason = "price not mapped to a tier"
			return result, nil
		}
		target = tier
	}

	if u.StripeCustomerID() == nil {
		u.LinkStripeCustomer(event.CustomerID)
	}
	previous, err := u.ChangeTier(target)
	if err != nil {
		return nil, fmt.Errorf("failed to apply tier: %w", err)
	}
	if err := uc.userRepo.Update(ctx, u); err != nil {
		uc.logger.Errorw("failed to update user from subscription event", "user_id", u.ID(), "error", err)
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	uc.logger.Infow("subscription tier applied",
		"event_id", event.EventID,
		"user_id", u.ID(),
		"status", event.Status,
		"from", previous,
		"to", target,
	)
	result.Applied = true
	result.Tier = target.String()
	return result, nil
}

// resolveUser prefers the metadata user id and falls back to the customer id.
func (uc *HandleSubscriptionWebhookUseCase) resolveUser(ctx context.Context, event *paymentgateway.SubscriptionEvent) (*user.User, error) {
	if event.UserID != "" {
		u, err := uc.userRepo.GetByID(ctx, event.UserID)
		if err != nil {
			uc.logger.Errorw("failed to load user", "user_id", event.UserID, "error", err)
			return nil, fmt.Errorf("failed to load user: %w", err)
		}
		if u != nil {
			return u, nil
		}
	}
	if event.CustomerID == "" {
		return nil, nil
	}
	u, err := uc.userRepo.GetByStripeCustomerID(ctx, event.CustomerID)
	if err != nil {
		uc.logger.Errorw("failed to load user by customer", "customer_id", event.CustomerID, "error", err)
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	return u, nil
}
