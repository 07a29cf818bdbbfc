package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lumastory/lumastory/internal/interfaces/http/handlers/common"
	"github.com/lumastory/lumastory/internal/shared/logger"
	"github.com/lumastory/lumastory/internal/shared/utils"
)

type AnalyticsHandler struct {
	overviewUC analyticsOverviewUseCase
	logger     logger.Interface
}

func NewAnalyticsHandler(overviewUC analyticsOverviewUseCase, logger logger.Interface) *AnalyticsHandler {
	return &AnalyticsHandler{
		overviewUC: overviewUC,
		logger:     logger,
	}
}

// Overview handles GET /admin/analytics/overview
// @Summary Get the admin analytics overview
// @Tags Admin Analytics
// @Produce json
// @Security Bearer
// @Success 200 {object} utils.APIResponse{data=dto.AnalyticsOverviewDTO}
// @Router /admin/analytics/overview [get]
func (h *AnalyticsHandler) Overview(c *gin.Context) {
	actor, err := common.AdminActor(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	overview, err := h.overviewUC.Execute(c.Request.Context(), actor)
	if err != nil {
		h.logger.Errorw("failed to build analytics overview", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", overview)
}
