package room

import (
	"errors"

	"github.com/roomhub/billing/internal/domain/invoice"
)

type Room struct {
	ID         int64  `json:"id"`
	RoomNumber string `json:"room_number"`
	Location   string `json:"location"`
}

// WithInvoices is the read shape for room listings: the room plus every
// invoice holding its foreign key, in insertion order.
type WithInvoices struct {
	Room
	Invoices []invoice.Invoice `json:"invoices"`
}

var ErrNotFound = errors.New("room not found")
