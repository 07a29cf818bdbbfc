// Package support serves the public contact form and the admin ticket queue.
package support

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lumastory/lumastory/internal/application/support/dto"
	"github.com/lumastory/lumastory/internal/application/support/usecases"
	"github.com/lumastory/lumastory/internal/interfaces/http/handlers/common"
	"github.com/lumastory/lumastory/internal/shared/errors"
	"github.com/lumastory/lumastory/internal/shared/logger"
	"github.com/lumastory/lumastory/internal/shared/utils"
)

type createTicketUseCase interface {
	Execute(ctx context.Context, cmd usecases.CreateTicketCommand) (*dto.TicketReceiptDTO, error)
}

type getTicketUseCase interface {
	Execute(ctx context.Context, query usecases.GetTicketQuery) (*dto.TicketDTO, error)
}

type listTicketsUseCase interface {
	Execute(ctx context.Context, query usecases.ListTicketsQuery) (*usecases.ListTicketsResult, error)
}

type updateTicketUseCase interface {
	Execute(ctx context.Context, cmd usecases.UpdateTicketCommand) (*dto.TicketDTO, error)
}

type Handler struct {
	createTicketUC createTicketUseCase
	getTicketUC    getTicketUseCase
	listTicketsUC  listTicketsUseCase
	updateTicketUC updateTicketUseCase
	logger         logger.Interface
}

func NewHandler(
	createTicketUC createTicketUseCase,
	getTicketUC getTicketUseCase,
	listTicketsUC listTicketsUseCase,
	updateTicketUC updateTicketUseCase,
	logger logger.Interface,
) *Handler {
	return &Handler{
		createTicketUC: createTicketUC,
		getTicketUC:    getTicketUC,
		listTicketsUC:  listTicketsUC,
		updateTicketUC: updateTicketUC,
		logger:         logger,
	}
}

// Contact handles POST /support/contact. Anonymous callers are allowed.
// @Summary Submit a support request
// @Tags Support
// @Accept json
// @Produce json
// @Param request body ContactRequest true "Contact form"
// @Success 201 {object} utils.APIResponse{data=dto.TicketReceiptDTO}
// @Failure 400 {object} utils.APIResponse
// @Failure 429 {object} utils.APIResponse
// @Router /support/contact [post]
func (h *Handler) Contact(c *gin.Context) {
	var req ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for support contact", "error", err)
		utils.ErrorResponseWithError(c, utils.BindingError(err))
		return
	}

	receipt, err := h.createTicketUC.Execute(c.Request.Context(), req.ToCommand(common.OptionalUserID(c)))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, receipt, "Your message has been received")
}

// ListTickets handles GET /admin/support/tickets
// @Summary List support tickets
// @Tags Admin Support
// @Produce json
// @Security Bearer
// @Param status query string false "Status filter"
// @Param category query string false "Category filter"
// @Param page query int false "Page"
// @Param page_size query int false "Page size"
// @Success 200 {object} utils.APIResponse{data=utils.ListResponse}
// @Router /admin/support/tickets [get]
func (h *Handler) ListTickets(c *gin.Context) {
	var req ListTicketsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		utils.ErrorResponseWithError(c, utils.BindingError(err))
		return
	}

	result, err := h.listTicketsUC.Execute(c.Request.Context(), req.ToQuery(utils.ParsePagination(c)))
	if err != nil {
		h.logger.Errorw("failed to list tickets", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, result.Tickets, result.Total, result.Page, result.PageSize)
}

// GetTicket handles GET /admin/support/tickets/:id. The id may be the UUID or the sup_ reference.
// @Summary Get a support ticket
// @Tags Admin Support
// @Produce json
// @Security Bearer
// @Param id path string true "Ticket ID or reference"
// @Success 200 {object} utils.APIResponse{data=dto.TicketDTO}
// @Failure 404 {object} utils.APIResponse
// @Router /admin/support/tickets/{id} [get]
func (h *Handler) GetTicket(c *gin.Context) {
	actor, err := common.AdminActor(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	ticketID, err := common.PathID(c, "id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	ticket, err := h.getTicketUC.Execute(c.Request.Context(), usecases.GetTicketQuery{TicketID: ticketID, Actor: actor})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", ticket)
}

// UpdateTicket handles PATCH /admin/support/tickets/:id
// @Summary Update a support ticket
// @Tags Admin Support
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path string true "Ticket ID or reference"
// @Param request body UpdateTicketRequest true "Changes"
// @Success 200 {object} utils.APIResponse{data=dto.TicketDTO}
// @Failure 400 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /admin/support/tickets/{id} [patch]
func (h *Handler) UpdateTicket(c *gin.Context) {
	actor, err := common.AdminActor(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	ticketID, err := common.PathID(c, "id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req UpdateTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, utils.BindingError(err))
		return
	}
	if req.Status == nil && req.AssigneeID == nil && req.AdminNotes == nil {
		utils.ErrorResponseWithError(c, errors.NewValidationError("no changes provided"))
		return
	}

	ticket, err := h.updateTicketUC.Execute(c.Request.Context(), usecases.UpdateTicketCommand{
		TicketID:   ticketID,
		Actor:      actor,
		Status:     req.Status,
		AssigneeID: req.AssigneeID,
		AdminNotes: req.AdminNotes,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Ticket updated", ticket)
}
