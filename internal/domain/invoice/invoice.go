package invoice

import (
	"errors"
	"time"
)

// Invoice statuses. A freshly created invoice is unpaid; attaching a payment
// proof moves it to payment. Settlement beyond that happens out of band.
const (
	StatusUnpaid  = "unpaid"
	StatusPayment = "payment"
)

type Invoice struct {
	ID             int64     `json:"id"`
	RoomID         int64     `json:"room_id"`
	InvoiceDate    time.Time `json:"invoice_date"`
	RoomFee        float64   `json:"room_fee"`
	WaterFee       float64   `json:"water_fee"`
	ElectricityFee float64   `json:"electricity_fee"`
	OtherExpenses  float64   `json:"other_expenses"`
	Status         string    `json:"status"`
	PaymentProof   *string   `json:"payment_proof"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// Total is the grand total of the four fee fields. It is computed on demand
// and never stored.
func (i Invoice) Total() float64 {
	return i.RoomFee + i.WaterFee + i.ElectricityFee + i.OtherExpenses
}

var ErrNotFound = errors.New("invoice not found")

// CreateRequest fee fields are pointers: the check is for key presence, not
// non-zero values, so a zero fee is valid but an omitted one is not.
type CreateRequest struct {
	RoomFee        *float64 `json:"room_fee" binding:"required"`
	WaterFee       *float64 `json:"water_fee" binding:"required"`
	ElectricityFee *float64 `json:"electricity_fee" binding:"required"`
	OtherExpenses  *float64 `json:"other_expenses" binding:"required"`
	RoomID         *int64   `json:"room_id" binding:"required"`
	InvoiceDate    *string  `json:"invoice_date" binding:"required"`
}

// UpdateRequest carries the same presence rules as CreateRequest minus the
// room, which an update never moves.
type UpdateRequest struct {
	RoomFee        *float64 `json:"room_fee" binding:"required"`
	WaterFee       *float64 `json:"water_fee" binding:"required"`
	ElectricityFee *float64 `json:"electricity_fee" binding:"required"`
	OtherExpenses  *float64 `json:"other_expenses" binding:"required"`
	InvoiceDate    *string  `json:"invoice_date" binding:"required"`
}

// ParseDate normalizes an inbound invoice date to UTC. Dates arrive either as
// a bare day ("2024-01-01") or a full RFC3339 timestamp.
func ParseDate(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t.UTC(), nil
	}

	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, err
	}

	return t.UTC(), nil
}
