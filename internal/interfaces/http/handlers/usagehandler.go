package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lumastory/lumastory/internal/application/usage/dto"
	"github.com/lumastory/lumastory/internal/domain/usage"
	"github.com/lumastory/lumastory/internal/interfaces/http/handlers/common"
	"github.com/lumastory/lumastory/internal/shared/errors"
	"github.com/lumastory/lumastory/internal/shared/logger"
	"github.com/lumastory/lumastory/internal/shared/utils"
)

type UsageHandler struct {
	limits limitChecker
	logger logger.Interface
}

func NewUsageHandler(limits limitChecker, logger logger.Interface) *UsageHandler {
	return &UsageHandler{
		limits: limits,
		logger: logger,
	}
}

// GetStats returns today's usage and the tier limits
// @Summary Get usage stats
// @Tags Usage
// @Produce json
// @Security Bearer
// @Success 200 {object} utils.APIResponse{data=dto.UsageStatsDTO}
// @Failure 401 {object} utils.APIResponse
// @Router /usage/stats [get]
func (h *UsageHandler) GetStats(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	stats, err := h.limits.GetUsageStats(c.Request.Context(), userID)
	if err != nil {
		h.logger.Errorw("failed to get usage stats", "user_id", userID, "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", stats)
}

// Check reports whether an action is currently allowed. A denial is still a 200.
// @Summary Check an action against the limits
// @Tags Usage
// @Produce json
// @Security Bearer
// @Param action query string true "create_story, create_child_profile or generate_image"
// @Success 200 {object} utils.APIResponse{data=dto.DecisionDTO}
// @Failure 400 {object} utils.APIResponse
// @Router /usage/check [get]
func (h *UsageHandler) Check(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	action, err := usage.NewAction(c.Query("action"))
	if err != nil {
		utils.ErrorResponseWithError(c, errors.NewValidationError("invalid action", err.Error()))
		return
	}

	decision, err := h.limits.CanPerform(c.Request.Context(), userID, action)
	if err != nil {
		h.logger.Errorw("failed to check limits", "user_id", userID, "action", action, "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", dto.ToDecisionDTO(action, decision))
}

// TrialStatus reports whether the free trial is used up
// @Summary Get trial status
// @Tags Usage
// @Produce json
// @Security Bearer
// @Success 200 {object} utils.APIResponse{data=dto.TrialStatusDTO}
// @Router /usage/trial [get]
func (h *UsageHandler) TrialStatus(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	exhausted, err := h.limits.IsTrialExhausted(c.Request.Context(), userID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", dto.TrialStatusDTO{
		TrialExhausted:  exhausted,
		RequiresUpgrade: exhausted,
	})
}
