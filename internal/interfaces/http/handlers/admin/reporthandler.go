package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lumastory/lumastory/internal/application/moderation/usecases"
	"github.com/lumastory/lumastory/internal/domain/moderation/valueobjects"
	"github.com/lumastory/lumastory/internal/interfaces/http/handlers/common"
	"github.com/lumastory/lumastory/internal/shared/logger"
	"github.com/lumastory/lumastory/internal/shared/utils"
)

type ReportHandler struct {
	listReportsUC  listReportsUseCase
	getReportUC    getReportUseCase
	reviewReportUC reviewReportUseCase
	logger         logger.Interface
}

func NewReportHandler(
	listReportsUC listReportsUseCase,
	getReportUC getReportUseCase,
	reviewReportUC reviewReportUseCase,
	logger logger.Interface,
) *ReportHandler {
	return &ReportHandler{
		listReportsUC:  listReportsUC,
		getReportUC:    getReportUC,
		reviewReportUC: reviewReportUC,
		logger:         logger,
	}
}

type ListReportsRequest struct {
	Status  string `form:"status" binding:"omitempty,oneof=pending reviewed resolved dismissed"`
	StoryID string `form:"storyId" binding:"omitempty,max=64"`
}

// ReviewReportRequest moves a report through the moderation workflow.
// Status defaults to resolved when only ActionTaken is sent. ActionTaken is
// required when the report is resolved.
type ReviewReportRequest struct {
	Status          string  `json:"status" binding:"required_without=ActionTaken,omitempty,oneof=reviewed resolved dismissed"`
	ActionTaken     string  `json:"actionTaken" binding:"required_if=Status resolved,omitempty,oneof=no_action warning_sent story_hidden story_deleted user_warned user_suspended"`
	ResolutionNotes *string `json:"resolutionNotes" binding:"omitempty,max=2000"`
}

type ResolveReportRequest struct {
	ActionTaken     string  `json:"actionTaken" binding:"required,oneof=no_action warning_sent story_hidden story_deleted user_warned user_suspended"`
	ResolutionNotes *string `json:"resolutionNotes" binding:"omitempty,max=2000"`
}

// ListReports handles GET /admin/content/reports
// @Summary List content reports
// @Tags Admin Moderation
// @Produce json
// @Security Bearer
// @Param status query string false "Status filter"
// @Param storyId query string false "Story filter"
// @Param page query int false "Page"
// @Param page_size query int false "Page size"
// @Success 200 {object} utils.APIResponse{data=utils.ListResponse}
// @Router /admin/content/reports [get]
func (h *ReportHandler) ListReports(c *gin.Context) {
	var req ListReportsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		utils.ErrorResponseWithError(c, utils.BindingError(err))
		return
	}

	p := utils.ParsePagination(c)
	result, err := h.listReportsUC.Execute(c.Request.Context(), usecases.ListReportsQuery{
		Status:   req.Status,
		StoryID:  req.StoryID,
		Page:     p.Page,
		PageSize: p.PageSize,
	})
	if err != nil {
		h.logger.Errorw("failed to list reports", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, result.Reports, result.Total, result.Page, result.PageSize)
}

// GetReport handles GET /admin/content/reports/:id
// @Summary Get a content report
// @Tags Admin Moderation
// @Produce json
// @Security Bearer
// @Param id path string true "Report ID"
// @Success 200 {object} utils.APIResponse{data=dto.ReportDetailDTO}
// @Failure 404 {object} utils.APIResponse
// @Router /admin/content/reports/{id} [get]
func (h *ReportHandler) GetReport(c *gin.Context) {
	actor, err := common.AdminActor(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	reportID, err := common.PathID(c, "id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	report, err := h.getReportUC.Execute(c.Request.Context(), usecases.GetReportQuery{ReportID: reportID, Actor: actor})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", report)
}

// ReviewReport handles PATCH /admin/content/reports/:id
// @Summary Review a content report
// @Tags Admin Moderation
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path string true "Report ID"
// @Param request body ReviewReportRequest true "Review"
// @Success 200 {object} utils.APIResponse{data=dto.ReportDTO}
// @Failure 400 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Router /admin/content/reports/{id} [patch]
func (h *ReportHandler) ReviewReport(c *gin.Context) {
	var req ReviewReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for review report", "error", err)
		utils.ErrorResponseWithError(c, utils.BindingError(err))
		return
	}

	status := req.Status
	if status == "" {
		status = valueobjects.StatusResolved.String()
	}
	h.review(c, status, req.ActionTaken, req.ResolutionNotes)
}

// ResolveReport handles POST /admin/content/reports/:id/resolve
// @Summary Resolve a content report
// @Tags Admin Moderation
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path string true "Report ID"
// @Param request body ResolveReportRequest true "Resolution"
// @Success 200 {object} utils.APIResponse{data=dto.ReportDTO}
// @Failure 400 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Router /admin/content/reports/{id}/resolve [post]
func (h *ReportHandler) ResolveReport(c *gin.Context) {
	var req ResolveReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for resolve report", "error", err)
		utils.ErrorResponseWithError(c, utils.BindingError(err))
		return
	}

	h.review(c, valueobjects.StatusResolved.String(), req.ActionTaken, req.ResolutionNotes)
}

func (h *ReportHandler) review(c *gin.Context, status, actionTaken string, notes *string) {
	actor, err := common.AdminActor(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	reportID, err := common.PathID(c, "id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	report, err := h.reviewReportUC.Execute(c.Request.Context(), usecases.ReviewReportCommand{
		ReportID:        reportID,
		Actor:           actor,
		Status:          status,
		ActionTaken:     actionTaken,
		ResolutionNotes: notes,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Report updated", report)
}
