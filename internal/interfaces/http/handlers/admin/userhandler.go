package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lumastory/lumastory/internal/application/admin/usecases"
	"github.com/lumastory/lumastory/internal/interfaces/http/handlers/common"
	"github.com/lumastory/lumastory/internal/shared/logger"
	"github.com/lumastory/lumastory/internal/shared/utils"
)

type UserHandler struct {
	getUserUC    getUserUseCase
	changeTierUC changeTierUseCase
	changeRoleUC changeRoleUseCase
	logger       logger.Interface
}

func NewUserHandler(
	getUserUC getUserUseCase,
	changeTierUC changeTierUseCase,
	changeRoleUC changeRoleUseCase,
	logger logger.Interface,
) *UserHandler {
	return &UserHandler{
		getUserUC:    getUserUC,
		changeTierUC: changeTierUC,
		changeRoleUC: changeRoleUC,
		logger:       logger,
	}
}

type ChangeTierRequest struct {
	Tier string `json:"tier" binding:"required,oneof=trial pro family"`
}

type ChangeRoleRequest struct {
	Role string `json:"role" binding:"required,oneof=user superadmin"`
}

// GetUser handles GET /admin/users/:id
// @Summary Get a user with usage
// @Tags Admin Users
// @Produce json
// @Security Bearer
// @Param id path string true "User ID"
// @Success 200 {object} utils.APIResponse{data=dto.AdminUserDTO}
// @Failure 404 {object} utils.APIResponse
// @Router /admin/users/{id} [get]
func (h *UserHandler) GetUser(c *gin.Context) {
	actor, err := common.AdminActor(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	userID, err := common.PathID(c, "id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.getUserUC.Execute(c.Request.Context(), usecases.GetUserQuery{UserID: userID, Actor: actor})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// ChangeTier handles PATCH /admin/users/:id/subscription
// @Summary Change a user's subscription tier
// @Tags Admin Users
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path string true "User ID"
// @Param request body ChangeTierRequest true "Tier"
// @Success 200 {object} utils.APIResponse{data=userdto.UserDTO}
// @Failure 400 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /admin/users/{id}/subscription [patch]
func (h *UserHandler) ChangeTier(c *gin.Context) {
	actor, err := common.AdminActor(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	userID, err := common.PathID(c, "id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req ChangeTierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, utils.BindingError(err))
		return
	}

	result, err := h.changeTierUC.Execute(c.Request.Context(), usecases.ChangeTierCommand{
		UserID: userID,
		Tier:   req.Tier,
		Actor:  actor,
	})
	if err != nil {
		h.logger.Errorw("failed to change tier", "user_id", userID, "tier", req.Tier, "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Subscription updated", result)
}

// ChangeRole handles PATCH /admin/users/:id/role
// @Summary Change a user's role
// @Tags Admin Users
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path string true "User ID"
// @Param request body ChangeRoleRequest true "Role"
// @Success 200 {object} utils.APIResponse{data=userdto.UserDTO}
// @Failure 400 {object} utils.APIResponse
// @Router /admin/users/{id}/role [patch]
func (h *UserHandler) ChangeRole(c *gin.Context) {
	actor, err := common.AdminActor(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	userID, err := common.PathID(c, "id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req ChangeRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, utils.BindingError(err))
		return
	}

	result, err := h.changeRoleUC.Execute(c.Request.Context(), usecases.ChangeRoleCommand{
		UserID: userID,
		Role:   req.Role,
		Actor:  actor,
	})
	if err != nil {
		h.logger.Errorw("failed to change role", "user_id", userID, "role", req.Role, "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Role updated", result)
}
