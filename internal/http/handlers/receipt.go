package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/roomhub/billing/internal/config"
	"github.com/roomhub/billing/internal/domain/invoice"
	"github.com/roomhub/billing/internal/domain/room"
	"github.com/roomhub/billing/internal/observability"
)

type ReceiptRenderer interface {
	Render(ctx context.Context, invoiceID int64) ([]byte, error)
}

type ReceiptHandler struct {
	renderer ReceiptRenderer
	prom     *observability.Prom
}

func NewReceiptHandler(renderer ReceiptRenderer, prom *observability.Prom) *ReceiptHandler {
	return &ReceiptHandler{renderer: renderer, prom: prom}
}

// Get streams the receipt PDF for an invoice as a download.
func (h *ReceiptHandler) Get(ctx *gin.Context) {
	raw := ctx.Param("invoice_id")

	id, err := strconv.ParseInt(raw, 10, 64)

	if err != nil {
		RespondBadRequest(ctx, "Invalid invoice id.")
		return
	}

	cctx, cancel := config.WithTimeout(5 * time.Second)

	defer cancel()

	doc, err := h.renderer.Render(cctx, id)

	if err != nil {
		h.prom.ReceiptsRendered.WithLabelValues("error").Inc()

		switch {
		case errors.Is(err, invoice.ErrNotFound):
			RespondNotFound(ctx, "Invoice not found")
		case errors.Is(err, room.ErrNotFound):
			RespondNotFound(ctx, "Room not found")
		default:
			RespondInternal(ctx, "Could not generate receipt")
		}
		return
	}

	h.prom.ReceiptsRendered.WithLabelValues("ok").Inc()

	ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=receipt_%d.pdf", id))
	ctx.Data(http.StatusOK, "application/pdf", doc)
}
