package admin

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/lumastory/lumastory/internal/application/audit/usecases"
	usageusecases "github.com/lumastory/lumastory/internal/application/usage/usecases"
	"github.com/lumastory/lumastory/internal/interfaces/http/handlers/common"
	"github.com/lumastory/lumastory/internal/shared/constants"
	"github.com/lumastory/lumastory/internal/shared/logger"
	"github.com/lumastory/lumastory/internal/shared/utils"
)

// SystemHandler exposes the audit trail and maintenance operations.
type SystemHandler struct {
	getActivityLogUC    getActivityLogUseCase
	exportActivityLogUC exportActivityLogUseCase
	resetDailyUsageUC   resetDailyUsageUseCase
	logger              logger.Interface
}

func NewSystemHandler(
	getActivityLogUC getActivityLogUseCase,
	exportActivityLogUC exportActivityLogUseCase,
	resetDailyUsageUC resetDailyUsageUseCase,
	logger logger.Interface,
) *SystemHandler {
	return &SystemHandler{
		getActivityLogUC:    getActivityLogUC,
		exportActivityLogUC: exportActivityLogUC,
		resetDailyUsageUC:   resetDailyUsageUC,
		logger:              logger,
	}
}

type ActivityFilterRequest struct {
	AdminID    string `form:"adminId" binding:"omitempty,max=64"`
	ActionType string `form:"actionType" binding:"omitempty,max=64"`
	TargetID   string `form:"targetId" binding:"omitempty,max=64"`
	TargetType string `form:"targetType" binding:"omitempty,max=32"`
}

func (r *ActivityFilterRequest) ToQuery(limit, offset int) usecases.GetActivityLogQuery {
	return usecases.GetActivityLogQuery{
		AdminID:    r.AdminID,
		ActionType: r.ActionType,
		TargetID:   r.TargetID,
		TargetType: r.TargetType,
		Limit:      limit,
		Offset:     offset,
	}
}

// GetActivity handles GET /admin/system/activity
// @Summary List admin activity
// @Tags Admin System
// @Produce json
// @Security Bearer
// @Param adminId query string false "Admin filter"
// @Param actionType query string false "Action filter"
// @Param targetId query string false "Target filter"
// @Param targetType query string false "Target type filter"
// @Param limit query int false "Page size, default 50, max 200"
// @Param offset query int false "Offset"
// @Success 200 {object} utils.APIResponse{data=dto.ActivityLogDTO}
// @Failure 400 {object} utils.APIResponse
// @Router /admin/system/activity [get]
func (h *SystemHandler) GetActivity(c *gin.Context) {
	var req ActivityFilterRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		utils.ErrorResponseWithError(c, utils.BindingError(err))
		return
	}

	lo := utils.ParseLimitOffset(c, constants.DefaultActivityLimit, constants.MaxActivityLimit)
	result, err := h.getActivityLogUC.Execute(c.Request.Context(), req.ToQuery(lo.Limit, lo.Offset))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// ExportActivity handles GET /admin/system/activity/export
// @Summary Export admin activity as a spreadsheet
// @Tags Admin System
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security Bearer
// @Param adminId query string false "Admin filter"
// @Param actionType query string false "Action filter"
// @Success 200 {file} file
// @Failure 400 {object} utils.APIResponse
// @Router /admin/system/activity/export [get]
func (h *SystemHandler) ExportActivity(c *gin.Context) {
	actor, err := common.AdminActor(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req ActivityFilterRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		utils.ErrorResponseWithError(c, utils.BindingError(err))
		return
	}

	result, err := h.exportActivityLogUC.Execute(c.Request.Context(), usecases.ExportActivityLogCommand{
		Actor:               actor,
		GetActivityLogQuery: req.ToQuery(0, 0),
	})
	if err != nil {
		h.logger.Errorw("failed to export activity log", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+result.Filename+`"`)
	c.Header("X-Export-Rows", strconv.Itoa(result.Rows))
	c.Data(http.StatusOK, result.ContentType, result.Content)
}

// ResetUsage handles POST /admin/system/usage/reset
// @Summary Reset daily usage counters now
// @Tags Admin System
// @Produce json
// @Security Bearer
// @Success 200 {object} utils.APIResponse{data=usecases.ResetDailyUsageResult}
// @Router /admin/system/usage/reset [post]
func (h *SystemHandler) ResetUsage(c *gin.Context) {
	actor, err := common.AdminActor(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.resetDailyUsageUC.Execute(c.Request.Context(), usageusecases.ResetDailyUsageCommand{Actor: &actor})
	if err != nil {
		h.logger.Errorw("manual usage reset failed", "admin_id", actor.AdminID, "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Daily usage reset", result)
}
