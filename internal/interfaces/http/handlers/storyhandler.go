package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	modusecases "github.com/lumastory/lumastory/internal/application/moderation/usecases"
	"github.com/lumastory/lumastory/internal/application/story/dto"
	"github.com/lumastory/lumastory/internal/application/story/usecases"
	"github.com/lumastory/lumastory/internal/interfaces/http/handlers/common"
	"github.com/lumastory/lumastory/internal/shared/logger"
	"github.com/lumastory/lumastory/internal/shared/utils"
)

type StoryHandler struct {
	createUC     usecases.CreateStoryExecutor
	listUC       usecases.ListStoriesExecutor
	getUC        usecases.GetStoryExecutor
	visibilityUC usecases.ChangeVisibilityExecutor
	deleteUC     usecases.DeleteStoryExecutor
	fileReportUC fileReportUseCase
	logger       logger.Interface
}

func NewStoryHandler(
	createUC usecases.CreateStoryExecutor,
	listUC usecases.ListStoriesExecutor,
	getUC usecases.GetStoryExecutor,
	visibilityUC usecases.ChangeVisibilityExecutor,
	deleteUC usecases.DeleteStoryExecutor,
	fileReportUC fileReportUseCase,
	logger logger.Interface,
) *StoryHandler {
	return &StoryHandler{
		createUC:     createUC,
		listUC:       listUC,
		getUC:        getUC,
		visibilityUC: visibilityUC,
		deleteUC:     deleteUC,
		fileReportUC: fileReportUC,
		logger:       logger,
	}
}

type CreateStoryRequest struct {
	Prompt         string `json:"prompt" binding:"required,min=3,max=2000"`
	Title          string `json:"title" binding:"omitempty,max=200"`
	ChildProfileID string `json:"childProfileId" binding:"omitempty,uuid"`
}

func (r *CreateStoryRequest) ToCommand(userID string) usecases.CreateStoryCommand {
	return usecases.CreateStoryCommand{
		UserID:         userID,
		Prompt:         r.Prompt,
		Title:          r.Title,
		ChildProfileID: r.ChildProfileID,
	}
}

type ChangeVisibilityRequest struct {
	Visibility string `json:"visibility" binding:"required,oneof=private public"`
}

type ReportStoryRequest struct {
	Reason      string `json:"reason" binding:"required,oneof=inappropriate_content offensive_language violence scary_content copyright spam other"`
	Description string `json:"description" binding:"omitempty,max=1000"`
}

type CreateStoryResponse struct {
	Story *dto.StoryDTO           `json:"story"`
	Usage *usecases.UsageSnapshot `json:"usage"`
}

// Create generates and stores a story, then counts it against the caller's quota
// @Summary Create a story
// @Tags Stories
// @Accept json
// @Produce json
// @Security Bearer
// @Param request body CreateStoryRequest true "Story prompt"
// @Success 201 {object} utils.APIResponse{data=CreateStoryResponse}
// @Failure 403 {object} utils.APIResponse
// @Failure 502 {object} utils.APIResponse
// @Router /stories [post]
func (h *StoryHandler) Create(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req CreateStoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for create story", "error", err)
		utils.ErrorResponseWithError(c, utils.BindingError(err))
		return
	}

	result, err := h.createUC.Execute(c.Request.Context(), req.ToCommand(userID))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	if result.Denied != nil {
		utils.QuotaExceededResponse(c, "story limit reached", result.Denied)
		return
	}

	utils.CreatedResponse(c, CreateStoryResponse{Story: result.Story, Usage: result.Usage}, "Story created")
}

// List returns the caller's stories, newest first
// @Summary List stories
// @Tags Stories
// @Produce json
// @Security Bearer
// @Param page query int false "Page"
// @Param page_size query int false "Page size"
// @Success 200 {object} utils.APIResponse{data=utils.ListResponse}
// @Router /stories [get]
func (h *StoryHandler) List(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	p := utils.ParsePagination(c)
	result, err := h.listUC.Execute(c.Request.Context(), usecases.ListStoriesQuery{
		UserID:   userID,
		Page:     p.Page,
		PageSize: p.PageSize,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, result.Stories, result.Total, result.Page, result.PageSize)
}

// Get returns a story to its owner, or to anyone when it is public
// @Summary Get a story
// @Tags Stories
// @Produce json
// @Security Bearer
// @Param id path string true "Story ID"
// @Success 200 {object} utils.APIResponse{data=dto.StoryDTO}
// @Failure 404 {object} utils.APIResponse
// @Router /stories/{id} [get]
func (h *StoryHandler) Get(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	storyID, err := common.PathID(c, "id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.getUC.Execute(c.Request.Context(), usecases.GetStoryQuery{StoryID: storyID, UserID: userID})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// ChangeVisibility makes a story public or private
// @Summary Change story visibility
// @Tags Stories
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path string true "Story ID"
// @Param request body ChangeVisibilityRequest true "Visibility"
// @Success 200 {object} utils.APIResponse{data=dto.StoryDTO}
// @Failure 403 {object} utils.APIResponse
// @Router /stories/{id}/visibility [patch]
func (h *StoryHandler) ChangeVisibility(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	storyID, err := common.PathID(c, "id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req ChangeVisibilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, utils.BindingError(err))
		return
	}

	result, err := h.visibilityUC.Execute(c.Request.Context(), usecases.ChangeVisibilityCommand{
		StoryID:    storyID,
		UserID:     userID,
		Visibility: req.Visibility,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Visibility updated", result)
}

// Delete removes one of the caller's stories
// @Summary Delete a story
// @Tags Stories
// @Security Bearer
// @Param id path string true "Story ID"
// @Success 204
// @Failure 403 {object} utils.APIResponse
// @Router /stories/{id} [delete]
func (h *StoryHandler) Delete(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	storyID, err := common.PathID(c, "id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if err := h.deleteUC.Execute(c.Request.Context(), usecases.DeleteStoryCommand{StoryID: storyID, UserID: userID}); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.NoContentResponse(c)
}

// Report files a content report against a story
// @Summary Report a story
// @Tags Stories
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path string true "Story ID"
// @Param request body ReportStoryRequest true "Report"
// @Success 201 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Router /stories/{id}/report [post]
func (h *StoryHandler) Report(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	storyID, err := common.PathID(c, "id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req ReportStoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, utils.BindingError(err))
		return
	}

	report, err := h.fileReportUC.Execute(c.Request.Context(), modusecases.FileReportCommand{
		ReporterID:  userID,
		StoryID:     storyID,
		Reason:      req.Reason,
		Description: req.Description,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, report, "Report submitted")
}
