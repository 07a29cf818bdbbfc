package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lumastory/lumastory/internal/application/usage/usecases"
	"github.com/lumastory/lumastory/internal/shared/logger"
	"github.com/lumastory/lumastory/internal/shared/utils"
)

// CronHandler serves internal endpoints for an external scheduler.
type CronHandler struct {
	resetUC resetDailyUsageUseCase
	logger  logger.Interface
}

func NewCronHandler(resetUC resetDailyUsageUseCase, logger logger.Interface) *CronHandler {
	return &CronHandler{
		resetUC: resetUC,
		logger:  logger,
	}
}

// ResetUsage zeroes the daily story counters
// @Summary Reset daily usage counters
// @Tags Internal
// @Produce json
// @Param X-Cron-Secret header string true "Cron secret"
// @Success 200 {object} utils.APIResponse{data=usecases.ResetDailyUsageResult}
// @Failure 401 {object} utils.APIResponse
// @Router /internal/cron/reset-usage [post]
func (h *CronHandler) ResetUsage(c *gin.Context) {
	result, err := h.resetUC.Execute(c.Request.Context(), usecases.ResetDailyUsageCommand{})
	if err != nil {
		h.logger.Errorw("scheduled usage reset failed", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Daily usage reset", result)
}
