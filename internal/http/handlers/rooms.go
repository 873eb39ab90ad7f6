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
	"github.com/roomhub/billing/internal/domain/room"
)

type RoomReader interface {
	GetWithInvoices(ctx context.Context, id int64) (room.WithInvoices, error)
	ListWithInvoices(ctx context.Context) ([]room.WithInvoices, error)
}

type RoomInvoiceLister interface {
	ListByRoom(ctx context.Context, roomID int64) ([]invoice.Invoice, error)
}

type RoomsHandler struct {
	rooms    RoomReader
	invoices RoomInvoiceLister
	cache    *cache.Rooms
}

func NewRoomsHandler(rooms RoomReader, invoices RoomInvoiceLister, cache *cache.Rooms) *RoomsHandler {
	return &RoomsHandler{rooms: rooms, invoices: invoices, cache: cache}
}

// GetBills returns a room together with all of its invoices.
func (h *RoomsHandler) GetBills(ctx *gin.Context) {
	id, ok := roomIDParam(ctx)

	if !ok {
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)

	defer cancel()

	rm, err := h.rooms.GetWithInvoices(cctx, id)

	if err != nil {
		if errors.Is(err, room.ErrNotFound) {
			RespondNotFound(ctx, "Room not found")
			return
		}

		RespondInternal(ctx, "Could not find bill")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": "Bill was found successfully!",
		"bill":    rm,
	})
}

// ListRooms returns every room with its invoices, served from the redis
// cache when warm.
func (h *RoomsHandler) ListRooms(ctx *gin.Context) {
	cctx, cancel := config.WithTimeout(3 * time.Second)

	defer cancel()

	if rooms, ok := h.cache.Get(cctx); ok {
		ctx.JSON(http.StatusOK, gin.H{
			"message": "Room was found successfully!",
			"room":    rooms,
		})
		return
	}

	rooms, err := h.rooms.ListWithInvoices(cctx)

	if err != nil {
		RespondInternal(ctx, "Could not find room")
		return
	}

	h.cache.Set(cctx, rooms)

	ctx.JSON(http.StatusOK, gin.H{
		"message": "Room was found successfully!",
		"room":    rooms,
	})
}

// ListInvoices returns the invoices filtered by the room foreign key, with
// no room envelope.
func (h *RoomsHandler) ListInvoices(ctx *gin.Context) {
	id, ok := roomIDParam(ctx)

	if !ok {
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)

	defer cancel()

	invoices, err := h.invoices.ListByRoom(cctx, id)

	if err != nil {
		RespondInternal(ctx, "Could not find room")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": "Room was found successfully!",
		"room":    invoices,
	})
}

func roomIDParam(ctx *gin.Context) (int64, bool) {
	raw := ctx.Param("room_id")

	id, err := strconv.ParseInt(raw, 10, 64)

	if err != nil {
		RespondBadRequest(ctx, "Invalid room id.")
		return 0, false
	}

	return id, true
}
