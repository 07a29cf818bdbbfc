package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lumastory/lumastory/internal/application/payment/usecases"
	"github.com/lumastory/lumastory/internal/shared/constants"
	"github.com/lumastory/lumastory/internal/shared/errors"
	"github.com/lumastory/lumastory/internal/shared/logger"
	"github.com/lumastory/lumastory/internal/shared/utils"
)

// maxWebhookPayload matches the limit Stripe documents for event bodies.
const maxWebhookPayload = 65536

type WebhookHandler struct {
	subscriptionUC subscriptionWebhookUseCase
	logger         logger.Interface
}

func NewWebhookHandler(subscriptionUC subscriptionWebhookUseCase, logger logger.Interface) *WebhookHandler {
	return &WebhookHandler{
		subscriptionUC: subscriptionUC,
		logger:         logger,
	}
}

// Stripe applies subscription lifecycle events to user tiers
// @Summary Stripe webhook
// @Tags Webhooks
// @Accept json
// @Produce json
// @Param Stripe-Signature header string true "Stripe signature"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Router /webhooks/stripe [post]
func (h *WebhookHandler) Stripe(c *gin.Context) {
	payload, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookPayload+1))
	if err != nil {
		utils.ErrorResponseWithError(c, errors.NewBadRequestError("failed to read request body"))
		return
	}
	if len(payload) > maxWebhookPayload {
		utils.ErrorResponseWithError(c, errors.NewBadRequestError("payload too large"))
		return
	}

	result, err := h.subscriptionUC.Execute(c.Request.Context(), usecases.HandleSubscriptionWebhookCommand{
		Payload:   payload,
		Signature: c.GetHeader(constants.HeaderStripeSignature),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", gin.H{
		"received": true,
		"applied":  result.Applied,
	})
}
