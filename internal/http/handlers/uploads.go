package handlers

import (
	"context"
	"errors"
	"mime/multipart"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/roomhub/billing/internal/cache"
	"github.com/roomhub/billing/internal/config"
	"github.com/roomhub/billing/internal/domain/invoice"
	"github.com/roomhub/billing/internal/storage"
)

// UploadField is the multipart field carrying the slip image.
const UploadField = "payment_slip"

type ProofAttacher interface {
	GetByID(ctx context.Context, id int64) (invoice.Invoice, error)
	AttachProof(ctx context.Context, id int64, filename string) (invoice.Invoice, error)
}

type SlipSaver interface {
	Save(fh *multipart.FileHeader) (string, error)
}

type UploadsHandler struct {
	invoices ProofAttacher
	slips    SlipSaver
	rooms    *cache.Rooms
}

func NewUploadsHandler(invoices ProofAttacher, slips SlipSaver, rooms *cache.Rooms) *UploadsHandler {
	return &UploadsHandler{invoices: invoices, slips: slips, rooms: rooms}
}

// Attach stores the uploaded slip and binds it to the invoice, moving its
// status to payment. The invoice is resolved before any bytes hit disk so a
// bad id leaves no trace.
func (h *UploadsHandler) Attach(ctx *gin.Context) {
	raw := ctx.Param("invoice_id")

	id, err := strconv.ParseInt(raw, 10, 64)

	if err != nil {
		RespondNotFound(ctx, "Invoice not found")
		return
	}

	cctx, cancel := config.WithTimeout(5 * time.Second)

	defer cancel()

	if _, err := h.invoices.GetByID(cctx, id); err != nil {
		if errors.Is(err, invoice.ErrNotFound) {
			RespondNotFound(ctx, "Invoice not found")
			return
		}

		RespondInternal(ctx, "Could not attach payment proof")
		return
	}

	fh, err := ctx.FormFile(UploadField)

	if err != nil {
		RespondBadRequest(ctx, "Please upload a payment slip.")
		return
	}

	filename, err := h.slips.Save(fh)

	if err != nil {
		if errors.Is(err, storage.ErrNotImage) {
			RespondBadRequest(ctx, "Please upload only images.")
			return
		}

		RespondInternal(ctx, "Could not attach payment proof")
		return
	}

	if _, err := h.invoices.AttachProof(cctx, id, filename); err != nil {
		RespondInternal(ctx, "Could not attach payment proof")
		return
	}

	h.rooms.Invalidate(cctx)

	ctx.JSON(http.StatusOK, gin.H{
		"status": true,
		"image":  filename,
	})
}
