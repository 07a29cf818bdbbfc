package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lumastory/lumastory/internal/application/childprofile/usecases"
	"github.com/lumastory/lumastory/internal/interfaces/http/handlers/common"
	"github.com/lumastory/lumastory/internal/shared/logger"
	"github.com/lumastory/lumastory/internal/shared/utils"
)

type ChildProfileHandler struct {
	createUC         createChildProfileUseCase
	listUC           listChildProfilesUseCase
	deleteUC         deleteChildProfileUseCase
	generateAvatarUC generateAvatarUseCase
	logger           logger.Interface
}

func NewChildProfileHandler(
	createUC createChildProfileUseCase,
	listUC listChildProfilesUseCase,
	deleteUC deleteChildProfileUseCase,
	generateAvatarUC generateAvatarUseCase,
	logger logger.Interface,
) *ChildProfileHandler {
	return &ChildProfileHandler{
		createUC:         createUC,
		listUC:           listUC,
		deleteUC:         deleteUC,
		generateAvatarUC: generateAvatarUC,
		logger:           logger,
	}
}

type CreateChildProfileRequest struct {
	Name       string  `json:"name" binding:"required,max=100"`
	Nickname   *string `json:"nickname" binding:"omitempty,max=100"`
	BirthDate  *string `json:"birthDate" binding:"omitempty,datetime=2006-01-02"`
	Appearance *string `json:"appearance" binding:"omitempty,max=500"`
}

func (r *CreateChildProfileRequest) ToCommand(userID string) usecases.CreateChildProfileCommand {
	return usecases.CreateChildProfileCommand{
		UserID:     userID,
		Name:       r.Name,
		Nickname:   r.Nickname,
		BirthDate:  r.BirthDate,
		Appearance: r.Appearance,
	}
}

// Create adds a child profile when the tier allows another one
// @Summary Create a child profile
// @Tags ChildProfiles
// @Accept json
// @Produce json
// @Security Bearer
// @Param request body CreateChildProfileRequest true "Profile"
// @Success 201 {object} utils.APIResponse{data=dto.ChildProfileDTO}
// @Failure 400 {object} utils.APIResponse
// @Failure 403 {object} utils.APIResponse
// @Router /child-profiles [post]
func (h *ChildProfileHandler) Create(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req CreateChildProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for create child profile", "error", err)
		utils.ErrorResponseWithError(c, utils.BindingError(err))
		return
	}

	result, err := h.createUC.Execute(c.Request.Context(), req.ToCommand(userID))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	if result.Denied != nil {
		utils.QuotaExceededResponse(c, "child profile limit reached", result.Denied)
		return
	}

	utils.CreatedResponse(c, result.Profile, "Child profile created")
}

// List returns the caller's child profiles
// @Summary List child profiles
// @Tags ChildProfiles
// @Produce json
// @Security Bearer
// @Success 200 {object} utils.APIResponse{data=[]dto.ChildProfileDTO}
// @Router /child-profiles [get]
func (h *ChildProfileHandler) List(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	profiles, err := h.listUC.Execute(c.Request.Context(), userID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", profiles)
}

// Delete removes one of the caller's child profiles
// @Summary Delete a child profile
// @Tags ChildProfiles
// @Security Bearer
// @Param id path string true "Profile ID"
// @Success 204
// @Failure 403 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /child-profiles/{id} [delete]
func (h *ChildProfileHandler) Delete(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	profileID, err := common.PathID(c, "id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	cmd := usecases.DeleteChildProfileCommand{ProfileID: profileID, UserID: userID}
	if err := h.deleteUC.Execute(c.Request.Context(), cmd); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.NoContentResponse(c)
}

// GenerateAvatar creates an avatar image for a profile
// @Summary Generate a child profile avatar
// @Tags ChildProfiles
// @Produce json
// @Security Bearer
// @Param id path string true "Profile ID"
// @Success 200 {object} utils.APIResponse{data=dto.ChildProfileDTO}
// @Failure 403 {object} utils.APIResponse
// @Failure 502 {object} utils.APIResponse
// @Router /child-profiles/{id}/avatar [post]
func (h *ChildProfileHandler) GenerateAvatar(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	profileID, err := common.PathID(c, "id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.generateAvatarUC.Execute(c.Request.Context(), usecases.GenerateAvatarCommand{
		ProfileID: profileID,
		UserID:    userID,
	})
	if err != nil {
		h.logger.Errorw("failed to generate avatar", "profile_id", profileID, "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}
	if result.Denied != nil {
		utils.QuotaExceededResponse(c, "image generation is not included in your plan", result.Denied)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Avatar generated", result.Profile)
}
