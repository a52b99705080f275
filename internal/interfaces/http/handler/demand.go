package handler

import (
	"context"

	appinv "github.com/erp/lpcore/internal/application/inventory"
	"github.com/gin-gonic/gin"
)

// DemandHandler handles demand lifecycle endpoints
type DemandHandler struct {
	BaseHandler
	demands *appinv.DemandService
}

// NewDemandHandler creates a new DemandHandler
func NewDemandHandler(demands *appinv.DemandService) *DemandHandler {
	return &DemandHandler{demands: demands}
}

// Create godoc
// @ID           createDemand
// @Summary      Create a demand
// @Tags         demands
// @Accept       json
// @Produce      json
// @Param        X-Actor-ID header string true "Acting user ID"
// @Param        request body appinv.CreateDemandCommand true "Request body"
// @Success      201 {object} dto.Response{data=appinv.DemandResponse}
// @Failure      400 {object} dto.Response
// @Router       /demands [post]
func (h *DemandHandler) Create(c *gin.Context) {
	actor, ok := h.RequireActor(c)
	if !ok {
		return
	}
	var cmd appinv.CreateDemandCommand
	if !h.BindJSON(c, &cmd) {
		return
	}
	cmd.ActorID = actor

	demand, err := h.demands.CreateDemand(c.Request.Context(), cmd)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, demand)
}

// GetByID godoc
// @ID           getDemand
// @Summary      Get a demand
// @Tags         demands
// @Produce      json
// @Param        id path string true "Demand ID"
// @Success      200 {object} dto.Response{data=appinv.DemandResponse}
// @Failure      400 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Router       /demands/{id} [get]
func (h *DemandHandler) GetByID(c *gin.Context) {
	id, ok := h.ParseID(c, "id")
	if !ok {
		return
	}
	demand, err := h.demands.GetDemand(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, demand)
}

// Release godoc
// @ID           releaseDemand
// @Summary      Release a planned demand
// @Tags         demands
// @Accept       json
// @Produce      json
// @Param        id path string true "Demand ID"
// @Param        X-Actor-ID header string true "Acting user ID"
// @Param        request body ReasonRequest false "Request body"
// @Success      200 {object} dto.Response{data=appinv.DemandResponse}
// @Failure      400 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Failure      409 {object} dto.Response
// @Router       /demands/{id}/release [post]
func (h *DemandHandler) Release(c *gin.Context) {
	cmd, ok := h.statusCommand(c)
	if !ok {
		return
	}
	demand, err := h.demands.ReleaseDemand(c.Request.Context(), cmd)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, demand)
}

// Complete godoc
// @ID           completeDemand
// @Summary      Complete a demand
// @Description  Open reservations are released
// @Tags         demands
// @Accept       json
// @Produce      json
// @Param        id path string true "Demand ID"
// @Param        X-Actor-ID header string true "Acting user ID"
// @Param        request body ReasonRequest false "Request body"
// @Success      200 {object} dto.Response{data=appinv.DemandStatusResult}
// @Failure      400 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Failure      409 {object} dto.Response
// @Router       /demands/{id}/complete [post]
func (h *DemandHandler) Complete(c *gin.Context) {
	h.finish(c, h.demands.CompleteDemand)
}

// Close godoc
// @ID           closeDemand
// @Summary      Close a demand
// @Description  Open reservations are released
// @Tags         demands
// @Accept       json
// @Produce      json
// @Param        id path string true "Demand ID"
// @Param        X-Actor-ID header string true "Acting user ID"
// @Param        request body ReasonRequest false "Request body"
// @Success      200 {object} dto.Response{data=appinv.DemandStatusResult}
// @Failure      400 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Failure      409 {object} dto.Response
// @Router       /demands/{id}/close [post]
func (h *DemandHandler) Close(c *gin.Context) {
	h.finish(c, h.demands.CloseDemand)
}

// Cancel godoc
// @ID           cancelDemand
// @Summary      Cancel a demand
// @Description  Open reservations are released
// @Tags         demands
// @Accept       json
// @Produce      json
// @Param        id path string true "Demand ID"
// @Param        X-Actor-ID header string true "Acting user ID"
// @Param        request body ReasonRequest false "Request body"
// @Success      200 {object} dto.Response{data=appinv.DemandStatusResult}
// @Failure      400 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Failure      409 {object} dto.Response
// @Router       /demands/{id}/cancel [post]
func (h *DemandHandler) Cancel(c *gin.Context) {
	h.finish(c, h.demands.CancelDemand)
}

type finishFunc func(ctx context.Context, cmd appinv.DemandStatusCommand) (*appinv.DemandStatusResult, error)

func (h *DemandHandler) finish(c *gin.Context, apply finishFunc) {
	cmd, ok := h.statusCommand(c)
	if !ok {
		return
	}
	result, err := apply(c.Request.Context(), cmd)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

func (h *DemandHandler) statusCommand(c *gin.Context) (appinv.DemandStatusCommand, bool) {
	id, ok := h.ParseID(c, "id")
	if !ok {
		return appinv.DemandStatusCommand{}, false
	}
	actor, ok := h.RequireActor(c)
	if !ok {
		return appinv.DemandStatusCommand{}, false
	}
	var req ReasonRequest
	if !h.BindJSON(c, &req) {
		return appinv.DemandStatusCommand{}, false
	}
	return appinv.DemandStatusCommand{DemandID: id, Reason: req.Reason, ActorID: actor}, true
}
