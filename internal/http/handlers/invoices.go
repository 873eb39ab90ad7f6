package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/roomhub/billing/internal/cache"
	"github.com/roomhub/billing/internal/config"
	"github.com/roomhub/billing/internal/domain/invoice"
)

type InvoiceStore interface {
	Create(ctx context.Context, roomID int64, invoiceDate time.Time, roomFee, waterFee, electricityFee, otherExpenses float64) (invoice.Invoice, error)
	GetByID(ctx context.Context, id int64) (invoice.Invoice, error)
	ListByRoom(ctx context.Context, roomID int64) ([]invoice.Invoice, error)
	Update(ctx context.Context, id int64, invoiceDate time.Time, roomFee, waterFee, electricityFee, otherExpenses float64) (invoice.Invoice, error)
	Delete(ctx context.Context, id int64) (invoice.Invoice, error)
}

type InvoicesHandler struct {
	store InvoiceStore
	rooms *cache.Rooms
}

func NewInvoicesHandler(store InvoiceStore, rooms *cache.Rooms) *InvoicesHandler {
	return &InvoicesHandler{store: store, rooms: rooms}
}

func (h *InvoicesHandler) Create(ctx *gin.Context) {
	var req invoice.CreateRequest

	if !BindJSON(ctx, &req) {
		return
	}

	date, err := invoice.ParseDate(*req.InvoiceDate)

	if err != nil {
		RespondBadRequest(ctx, "Invalid invoice date.")
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)

	defer cancel()

	created, err := h.store.Create(cctx, *req.RoomID, date, *req.RoomFee, *req.WaterFee, *req.ElectricityFee, *req.OtherExpenses)

	if err != nil {
		RespondInternal(ctx, "Could not create bill")
		return
	}

	h.rooms.Invalidate(cctx)

	ctx.JSON(http.StatusOK, gin.H{
		"message": "Bill was created successfully!",
		"invoice": created,
	})
}

func (h *InvoicesHandler) Update(ctx *gin.Context) {
	id, ok := invoiceIDParam(ctx)

	if !ok {
		return
	}

	var req invoice.UpdateRequest

	if !BindJSON(ctx, &req) {
		return
	}

	date, err := invoice.ParseDate(*req.InvoiceDate)

	if err != nil {
		RespondBadRequest(ctx, "Invalid invoice date.")
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)

	defer cancel()

	updated, err := h.store.Update(cctx, id, date, *req.RoomFee, *req.WaterFee, *req.ElectricityFee, *req.OtherExpenses)

	if err != nil {
		if errors.Is(err, invoice.ErrNotFound) {
			RespondNotFound(ctx, "Invoice not found")
			return
		}

		RespondInternal(ctx, "Could not update bill")
		return
	}

	h.rooms.Invalidate(cctx)

	ctx.JSON(http.StatusOK, gin.H{
		"message": "Bill was updated successfully!",
		"invoice": updated,
	})
}

func (h *InvoicesHandler) Delete(ctx *gin.Context) {
	id, ok := invoiceIDParam(ctx)

	if !ok {
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)

	defer cancel()

	deleted, err := h.store.Delete(cctx, id)

	if err != nil {
		if errors.Is(err, invoice.ErrNotFound) {
			RespondNotFound(ctx, "Invoice not found")
			return
		}

		RespondInternal(ctx, "Could not delete bill")
		return
	}

	h.rooms.Invalidate(cctx)

	ctx.JSON(http.StatusOK, gin.H{
		"message": "Bill was deleted successfully!",
		"deleted": deleted,
	})
}

// invoiceIDParam parses the :invoice_id path segment, answering 400 itself
// when the shape is not a valid identifier.
func invoiceIDParam(ctx *gin.Context) (int64, bool) {
	raw := ctx.Param("invoice_id")

	id, err := strconv.ParseInt(raw, 10, 64)

	if err != nil {
		RespondBadRequest(ctx, "Invalid invoice id.")
		return 0, false
	}

	return id, true
}
