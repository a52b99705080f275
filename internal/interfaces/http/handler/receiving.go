package handler

import (
	appinv "github.com/erp/lpcore/internal/application/inventory"
	"github.com/gin-gonic/gin"
)

// ReceivingHandler handles ASN lines and receipts
type ReceivingHandler struct {
	BaseHandler
	receiving *appinv.ReceivingService
}

// NewReceivingHandler creates a new ReceivingHandler
func NewReceivingHandler(receiving *appinv.ReceivingService) *ReceivingHandler {
	return &ReceivingHandler{receiving: receiving}
}

// CreateLine godoc
// @ID           createReceivingLine
// @Summary      Create an ASN receiving line
// @Tags         receiving
// @Accept       json
// @Produce      json
// @Param        request body appinv.CreateReceivingLineCommand true "Request body"
// @Success      201 {object} dto.Response{data=appinv.ReceivingLineResponse}
// @Failure      400 {object} dto.Response
// @Router       /receiving-lines [post]
func (h *ReceivingHandler) CreateLine(c *gin.Context) {
	var cmd appinv.CreateReceivingLineCommand
	if !h.BindJSON(c, &cmd) {
		return
	}
	line, err := h.receiving.CreateLine(c.Request.Context(), cmd)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, line)
}

// GetASN godoc
// @ID           getASN
// @Summary      Get the receiving lines of an ASN
// @Tags         receiving
// @Produce      json
// @Param        id path string true "ASN ID"
// @Success      200 {object} dto.Response{data=appinv.ASNResponse}
// @Failure      400 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Router       /asns/{id} [get]
func (h *ReceivingHandler) GetASN(c *gin.Context) {
	id, ok := h.ParseID(c, "id")
	if !ok {
		return
	}
	asn, err := h.receiving.GetASN(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, asn)
}

// Preview godoc
// @ID           previewReceipt
// @Summary      Preview the variance of a receipt
// @Tags         receiving
// @Accept       json
// @Produce      json
// @Param        id path string true "Receiving line ID"
// @Param        request body appinv.PreviewReceiptQuery true "Request body"
// @Success      200 {object} dto.Response{data=appinv.ReceiptPreviewResponse}
// @Failure      400 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Router       /receiving-lines/{id}/preview [post]
func (h *ReceivingHandler) Preview(c *gin.Context) {
	id, ok := h.ParseID(c, "id")
	if !ok {
		return
	}
	var q appinv.PreviewReceiptQuery
	if !h.BindJSON(c, &q) {
		return
	}
	q.ReceivingLineID = id

	preview, err := h.receiving.PreviewReceipt(c.Request.Context(), q)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, preview)
}

// Receive godoc
// @ID           receive
// @Summary      Receive quantity onto a new license plate
// @Tags         receiving
// @Accept       json
// @Produce      json
// @Param        id path string true "Receiving line ID"
// @Param        X-Actor-ID header string true "Acting user ID"
// @Param        request body appinv.ReceiveCommand true "Request body"
// @Success      201 {object} dto.Response{data=appinv.ReceiptResponse}
// @Failure      400 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Failure      422 {object} dto.Response
// @Router       /receiving-lines/{id}/receipts [post]
func (h *ReceivingHandler) Receive(c *gin.Context) {
	id, ok := h.ParseID(c, "id")
	if !ok {
		return
	}
	actor, ok := h.RequireActor(c)
	if !ok {
		return
	}
	var cmd appinv.ReceiveCommand
	if !h.BindJSON(c, &cmd) {
		return
	}
	cmd.ReceivingLineID = id
	cmd.ActorID = actor

	receipt, err := h.receiving.Receive(c.Request.Context(), cmd)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, receipt)
}
