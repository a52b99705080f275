package handler

import (
	"context"

	appinv "github.com/erp/lpcore/internal/application/inventory"
	"github.com/erp/lpcore/internal/domain/inventory"
	"github.com/erp/lpcore/internal/domain/shared"
	"github.com/erp/lpcore/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ReasonRequest carries an optional free-text reason
type ReasonRequest struct {
	Reason string `json:"reason"`
}

// LicensePlateHandler handles license plate status, QA and history endpoints
type LicensePlateHandler struct {
	BaseHandler
	plates *appinv.LicensePlateService
	qa     *appinv.QAService
}

// NewLicensePlateHandler creates a new LicensePlateHandler
func NewLicensePlateHandler(plates *appinv.LicensePlateService, qa *appinv.QAService) *LicensePlateHandler {
	return &LicensePlateHandler{plates: plates, qa: qa}
}

// GetByID godoc
// @ID           getLicensePlate
// @Summary      Get a license plate
// @Tags         license-plates
// @Produce      json
// @Param        id path string true "License plate ID"
// @Success      200 {object} dto.Response{data=appinv.LicensePlateResponse}
// @Failure      400 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Router       /license-plates/{id} [get]
func (h *LicensePlateHandler) GetByID(c *gin.Context) {
	id, ok := h.ParseID(c, "id")
	if !ok {
		return
	}
	lp, err := h.plates.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, lp)
}

// History godoc
// @ID           listLicensePlateHistory
// @Summary      List the status audit trail of a license plate
// @Tags         license-plates
// @Produce      json
// @Param        id path string true "License plate ID"
// @Param        page query int false "Page number"
// @Param        page_size query int false "Page size (max 500)"
// @Param        order_by query string false "Sort column (changed_at, field)"
// @Param        order_dir query string false "Sort direction (asc, desc)"
// @Success      200 {object} dto.Response{data=[]appinv.AuditEntryResponse}
// @Failure      400 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Router       /license-plates/{id}/history [get]
func (h *LicensePlateHandler) History(c *gin.Context) {
	id, ok := h.ParseID(c, "id")
	if !ok {
		return
	}
	var q dto.PageQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.BadRequest(c, dto.ErrCodeBadRequest, err.Error())
		return
	}
	var order dto.SortQuery
	if err := c.ShouldBindQuery(&order); err != nil {
		h.BadRequest(c, dto.ErrCodeBadRequest, err.Error())
		return
	}
	filter := shared.DefaultFilter()
	if q.Page > 0 {
		filter.Page = q.Page
	}
	if q.PageSize > 0 {
		filter.PageSize = q.PageSize
	}
	filter.OrderBy = order.OrderBy
	filter.OrderDir = order.OrderDir

	entries, total, err := h.plates.History(c.Request.Context(), id, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, entries, total, filter.Page, filter.PageSize)
}

// Transition godoc
// @ID           transitionLicensePlate
// @Summary      Apply a status transition
// @Description  Moves the plate through the status machine; target must be reachable from the current status
// @Tags         license-plates
// @Accept       json
// @Produce      json
// @Param        id path string true "License plate ID"
// @Param        X-Actor-ID header string true "Acting user ID"
// @Param        request body appinv.TransitionCommand true "Request body"
// @Success      200 {object} dto.Response{data=appinv.LicensePlateResponse}
// @Failure      400 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Failure      409 {object} dto.Response
// @Failure      422 {object} dto.Response
// @Router       /license-plates/{id}/transitions [post]
func (h *LicensePlateHandler) Transition(c *gin.Context) {
	id, ok := h.ParseID(c, "id")
	if !ok {
		return
	}
	actor, ok := h.RequireActor(c)
	if !ok {
		return
	}
	var cmd appinv.TransitionCommand
	if !h.BindJSON(c, &cmd) {
		return
	}
	cmd.LicensePlateID = id
	cmd.ActorID = actor

	lp, err := h.plates.ApplyTransition(c.Request.Context(), cmd)
	h.replyTransition(c, id, lp, err)
}

// Block godoc
// @ID           blockLicensePlate
// @Summary      Block a license plate
// @Tags         license-plates
// @Accept       json
// @Produce      json
// @Param        id path string true "License plate ID"
// @Param        X-Actor-ID header string true "Acting user ID"
// @Param        request body ReasonRequest false "Request body"
// @Success      200 {object} dto.Response{data=appinv.LicensePlateResponse}
// @Failure      400 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Failure      409 {object} dto.Response
// @Router       /license-plates/{id}/block [post]
func (h *LicensePlateHandler) Block(c *gin.Context) {
	h.toggleBlock(c, h.plates.Block)
}

// Unblock godoc
// @ID           unblockLicensePlate
// @Summary      Unblock a license plate
// @Tags         license-plates
// @Accept       json
// @Produce      json
// @Param        id path string true "License plate ID"
// @Param        X-Actor-ID header string true "Acting user ID"
// @Param        request body ReasonRequest false "Request body"
// @Success      200 {object} dto.Response{data=appinv.LicensePlateResponse}
// @Failure      400 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Failure      409 {object} dto.Response
// @Router       /license-plates/{id}/unblock [post]
func (h *LicensePlateHandler) Unblock(c *gin.Context) {
	h.toggleBlock(c, h.plates.Unblock)
}

type blockFunc func(ctx context.Context, lpID uuid.UUID, reason string, actorID uuid.UUID) (*appinv.LicensePlateResponse, error)

func (h *LicensePlateHandler) toggleBlock(c *gin.Context, apply blockFunc) {
	id, ok := h.ParseID(c, "id")
	if !ok {
		return
	}
	actor, ok := h.RequireActor(c)
	if !ok {
		return
	}
	var req ReasonRequest
	if !h.BindJSON(c, &req) {
		return
	}

	lp, err := apply(c.Request.Context(), id, req.Reason, actor)
	h.replyTransition(c, id, lp, err)
}

// replyTransition answers a request for the current status with the
// unchanged plate instead of a conflict.
func (h *LicensePlateHandler) replyTransition(c *gin.Context, id uuid.UUID, lp *appinv.LicensePlateResponse, err error) {
	if inventory.IsAlreadyInState(err) {
		current, getErr := h.plates.GetByID(c.Request.Context(), id)
		if getErr != nil {
			h.HandleError(c, getErr)
			return
		}
		h.Unchanged(c, current)
		return
	}
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, lp)
}

// CheckConsumption godoc
// @ID           checkLicensePlateConsumption
// @Summary      Check whether a license plate can be consumed
// @Tags         license-plates
// @Produce      json
// @Param        id path string true "License plate ID"
// @Success      200 {object} dto.Response{data=appinv.ConsumptionCheckResponse}
// @Failure      400 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Router       /license-plates/{id}/consumption-check [get]
func (h *LicensePlateHandler) CheckConsumption(c *gin.Context) {
	id, ok := h.ParseID(c, "id")
	if !ok {
		return
	}
	check, err := h.plates.CheckConsumption(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, check)
}

// UpdateQAStatus godoc
// @ID           updateLicensePlateQAStatus
// @Summary      Change the QA status of a license plate
// @Description  The caller needs the qa role in X-Actor-Roles
// @Tags         license-plates
// @Accept       json
// @Produce      json
// @Param        id path string true "License plate ID"
// @Param        X-Actor-ID header string true "Acting user ID"
// @Param        X-Actor-Roles header string false "Comma separated roles"
// @Param        request body appinv.UpdateQAStatusCommand true "Request body"
// @Success      200 {object} dto.Response{data=appinv.QAStatusResponse}
// @Failure      400 {object} dto.Response
// @Failure      403 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Failure      409 {object} dto.Response
// @Failure      422 {object} dto.Response
// @Router       /license-plates/{id}/qa-status [put]
func (h *LicensePlateHandler) UpdateQAStatus(c *gin.Context) {
	id, ok := h.ParseID(c, "id")
	if !ok {
		return
	}
	actor, ok := h.RequireActor(c)
	if !ok {
		return
	}
	var cmd appinv.UpdateQAStatusCommand
	if !h.BindJSON(c, &cmd) {
		return
	}
	cmd.LicensePlateID = id
	cmd.ActorID = actor
	cmd.CanChangeQA = hasRole(c, QARole)

	resp, err := h.qa.UpdateQAStatus(c.Request.Context(), cmd)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}
