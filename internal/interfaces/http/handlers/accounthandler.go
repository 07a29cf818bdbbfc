package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lumastory/lumastory/internal/application/user/usecases"
	"github.com/lumastory/lumastory/internal/interfaces/http/handlers/common"
	"github.com/lumastory/lumastory/internal/shared/logger"
	"github.com/lumastory/lumastory/internal/shared/utils"
)

type AccountHandler struct {
	syncUserUC   syncUserUseCase
	getAccountUC getAccountUseCase
	logger       logger.Interface
}

func NewAccountHandler(syncUserUC syncUserUseCase, getAccountUC getAccountUseCase, logger logger.Interface) *AccountHandler {
	return &AccountHandler{
		syncUserUC:   syncUserUC,
		getAccountUC: getAccountUC,
		logger:       logger,
	}
}

type SyncAccountRequest struct {
	Email       string `json:"email" binding:"required,email,max=255"`
	DisplayName string `json:"displayName" binding:"omitempty,max=100"`
}

func (r *SyncAccountRequest) ToCommand(userID string) usecases.SyncUserCommand {
	return usecases.SyncUserCommand{
		UserID:      userID,
		Email:       r.Email,
		DisplayName: r.DisplayName,
	}
}

// Sync provisions the caller on first sign-in
// @Summary Sync the current account
// @Description Creates the account as a trial user on first call; later calls only update the display name
// @Tags Account
// @Accept json
// @Produce json
// @Security Bearer
// @Param request body SyncAccountRequest true "Account details"
// @Success 200 {object} utils.APIResponse{data=dto.UserDTO}
// @Success 201 {object} utils.APIResponse{data=dto.UserDTO}
// @Failure 400 {object} utils.APIResponse
// @Failure 401 {object} utils.APIResponse
// @Router /me/sync [post]
func (h *AccountHandler) Sync(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req SyncAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for account sync", "error", err)
		utils.ErrorResponseWithError(c, utils.BindingError(err))
		return
	}

	result, err := h.syncUserUC.Execute(c.Request.Context(), req.ToCommand(userID))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if result.Created {
		utils.CreatedResponse(c, result.User, "Account created")
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", result.User)
}

// Me returns the caller's account and usage
// @Summary Get the current account
// @Tags Account
// @Produce json
// @Security Bearer
// @Success 200 {object} utils.APIResponse{data=dto.AccountDTO}
// @Failure 401 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /me [get]
func (h *AccountHandler) Me(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	account, err := h.getAccountUC.Execute(c.Request.Context(), userID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", account)
}
