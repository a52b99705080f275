package handler

import (
	appinv "github.com/erp/lpcore/internal/application/inventory"
	"github.com/gin-gonic/gin"
)

// ReservationHandler handles allocation, reservation and pick endpoints
type ReservationHandler struct {
	BaseHandler
	reservations *appinv.ReservationService
	picks        *appinv.PickService
}

// NewReservationHandler creates a new ReservationHandler
func NewReservationHandler(reservations *appinv.ReservationService, picks *appinv.PickService) *ReservationHandler {
	return &ReservationHandler{reservations: reservations, picks: picks}
}

// Candidates godoc
// @ID           listDemandCandidates
// @Summary      List license plates that can serve a demand
// @Tags         reservations
// @Produce      json
// @Param        id path string true "Demand ID"
// @Param        policy query string false "fifo or fefo"
// @Success      200 {object} dto.Response{data=[]appinv.ProposalLineResponse}
// @Failure      400 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Router       /demands/{id}/candidates [get]
func (h *ReservationHandler) Candidates(c *gin.Context) {
	id, ok := h.ParseID(c, "id")
	if !ok {
		return
	}
	lines, err := h.reservations.ListAvailable(c.Request.Context(), id, c.Query("policy"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, lines)
}

// Propose godoc
// @ID           proposeAllocation
// @Summary      Propose an allocation
// @Description  Nothing is persisted
// @Tags         reservations
// @Accept       json
// @Produce      json
// @Param        id path string true "Demand ID"
// @Param        request body appinv.ProposeCommand false "Request body"
// @Success      200 {object} dto.Response{data=appinv.ProposalResponse}
// @Failure      400 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Failure      422 {object} dto.Response
// @Router       /demands/{id}/proposals [post]
func (h *ReservationHandler) Propose(c *gin.Context) {
	id, ok := h.ParseID(c, "id")
	if !ok {
		return
	}
	var cmd appinv.ProposeCommand
	if !h.BindJSON(c, &cmd) {
		return
	}
	cmd.DemandID = id

	proposal, err := h.reservations.Propose(c.Request.Context(), cmd)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, proposal)
}

// Commit godoc
// @ID           commitReservations
// @Summary      Commit reservations for a demand
// @Description  The Idempotency-Key header overrides request_key from the body
// @Tags         reservations
// @Accept       json
// @Produce      json
// @Param        id path string true "Demand ID"
// @Param        X-Actor-ID header string true "Acting user ID"
// @Param        Idempotency-Key header string false "Request key"
// @Param        request body appinv.CommitCommand true "Request body"
// @Success      201 {object} dto.Response{data=appinv.CommitResult}
// @Failure      400 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Failure      409 {object} dto.Response
// @Failure      422 {object} dto.Response
// @Router       /demands/{id}/reservations [post]
func (h *ReservationHandler) Commit(c *gin.Context) {
	id, ok := h.ParseID(c, "id")
	if !ok {
		return
	}
	actor, ok := h.RequireActor(c)
	if !ok {
		return
	}
	var cmd appinv.CommitCommand
	if !h.BindJSON(c, &cmd) {
		return
	}
	cmd.DemandID = id
	cmd.ActorID = actor
	if key := c.GetHeader(IdempotencyKeyHeader); key != "" {
		cmd.RequestKey = key
	}

	result, err := h.reservations.Commit(c.Request.Context(), cmd)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, result)
}

// AutoReserve godoc
// @ID           autoReserveDemand
// @Summary      Reserve a demand automatically
// @Tags         reservations
// @Accept       json
// @Produce      json
// @Param        id path string true "Demand ID"
// @Param        X-Actor-ID header string true "Acting user ID"
// @Param        request body appinv.AutoReserveCommand false "Request body"
// @Success      201 {object} dto.Response{data=appinv.CommitResult}
// @Failure      400 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Failure      409 {object} dto.Response
// @Failure      422 {object} dto.Response
// @Router       /demands/{id}/auto-reserve [post]
func (h *ReservationHandler) AutoReserve(c *gin.Context) {
	id, ok := h.ParseID(c, "id")
	if !ok {
		return
	}
	actor, ok := h.RequireActor(c)
	if !ok {
		return
	}
	var cmd appinv.AutoReserveCommand
	if !h.BindJSON(c, &cmd) {
		return
	}
	cmd.DemandID = id
	cmd.ActorID = actor

	result, err := h.reservations.AutoReserve(c.Request.Context(), cmd)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, result)
}

// ReleaseAll godoc
// @ID           releaseDemandReservations
// @Summary      Release every open reservation of a demand
// @Tags         reservations
// @Accept       json
// @Produce      json
// @Param        id path string true "Demand ID"
// @Param        X-Actor-ID header string true "Acting user ID"
// @Param        request body ReasonRequest false "Request body"
// @Success      200 {object} dto.Response{data=appinv.ReleaseResult}
// @Failure      400 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Router       /demands/{id}/reservations/release [post]
func (h *ReservationHandler) ReleaseAll(c *gin.Context) {
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

	result, err := h.reservations.ReleaseAllForDemand(c.Request.Context(), appinv.ReleaseAllCommand{
		DemandID: id,
		Reason:   req.Reason,
		ActorID:  actor,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Coverage godoc
// @ID           getDemandCoverage
// @Summary      Get reservation coverage of a demand
// @Tags         reservations
// @Produce      json
// @Param        id path string true "Demand ID"
// @Success      200 {object} dto.Response{data=appinv.CoverageResponse}
// @Failure      400 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Router       /demands/{id}/coverage [get]
func (h *ReservationHandler) Coverage(c *gin.Context) {
	id, ok := h.ParseID(c, "id")
	if !ok {
		return
	}
	coverage, err := h.reservations.Coverage(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, coverage)
}

// ReserveLP godoc
// @ID           reserveLicensePlate
// @Summary      Reserve quantity on one license plate
// @Tags         reservations
// @Accept       json
// @Produce      json
// @Param        X-Actor-ID header string true "Acting user ID"
// @Param        request body appinv.ReserveLPCommand true "Request body"
// @Success      201 {object} dto.Response{data=appinv.ReservationResponse}
// @Failure      400 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Failure      409 {object} dto.Response
// @Failure      422 {object} dto.Response
// @Router       /reservations [post]
func (h *ReservationHandler) ReserveLP(c *gin.Context) {
	actor, ok := h.RequireActor(c)
	if !ok {
		return
	}
	var cmd appinv.ReserveLPCommand
	if !h.BindJSON(c, &cmd) {
		return
	}
	cmd.ActorID = actor

	reservation, err := h.reservations.ReserveLP(c.Request.Context(), cmd)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, reservation)
}

// Release godoc
// @ID           releaseReservation
// @Summary      Release a reservation
// @Tags         reservations
// @Accept       json
// @Produce      json
// @Param        id path string true "Reservation ID"
// @Param        X-Actor-ID header string true "Acting user ID"
// @Param        request body ReasonRequest false "Request body"
// @Success      200 {object} dto.Response{data=appinv.ReservationResponse}
// @Failure      400 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Failure      409 {object} dto.Response
// @Router       /reservations/{id}/release [post]
func (h *ReservationHandler) Release(c *gin.Context) {
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

	reservation, err := h.reservations.Release(c.Request.Context(), appinv.ReleaseReservationCommand{
		ReservationID: id,
		Reason:        req.Reason,
		ActorID:       actor,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, reservation)
}

// ConfirmPick godoc
// @ID           confirmPick
// @Summary      Confirm a pick against a reservation
// @Tags         reservations
// @Accept       json
// @Produce      json
// @Param        id path string true "Reservation ID"
// @Param        X-Actor-ID header string true "Acting user ID"
// @Param        request body appinv.ConfirmPickCommand true "Request body"
// @Success      200 {object} dto.Response{data=appinv.PickResult}
// @Failure      400 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Failure      409 {object} dto.Response
// @Failure      422 {object} dto.Response
// @Router       /reservations/{id}/pick [post]
func (h *ReservationHandler) ConfirmPick(c *gin.Context) {
	id, ok := h.ParseID(c, "id")
	if !ok {
		return
	}
	actor, ok := h.RequireActor(c)
	if !ok {
		return
	}
	var cmd appinv.ConfirmPickCommand
	if !h.BindJSON(c, &cmd) {
		return
	}
	cmd.ReservationID = id
	cmd.ActorID = actor

	result, err := h.picks.ConfirmPick(c.Request.Context(), cmd)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}
