package receipt_test

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/roomhub/billing/internal/domain/invoice"
	"github.com/roomhub/billing/internal/domain/room"
	"github.com/roomhub/billing/internal/receipt"
)

type fakeInvoices struct {
	getFn func(ctx context.Context, id int64) (invoice.Invoice, error)
}

func (f *fakeInvoices) GetByID(ctx context.Context, id int64) (invoice.Invoice, error) {
	return f.getFn(ctx, id)
}

type fakeRooms struct {
	getFn func(ctx context.Context, id int64) (room.Room, error)
}

func (f *fakeRooms) GetByID(ctx context.Context, id int64) (room.Room, error) {
	return f.getFn(ctx, id)
}

func sampleInvoice() invoice.Invoice {
	return invoice.Invoice{
		ID:             7,
		RoomID:         1,
		InvoiceDate:    time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		RoomFee:        1000,
		WaterFee:       50,
		ElectricityFee: 75,
		OtherExpenses:  0,
		Status:         invoice.StatusUnpaid,
	}
}

func TestRenderProducesPDF(t *testing.T) {
	invoices := &fakeInvoices{getFn: func(ctx context.Context, id int64) (invoice.Invoice, error) {
		return sampleInvoice(), nil
	}}
	rooms := &fakeRooms{getFn: func(ctx context.Context, id int64) (room.Room, error) {
		return room.Room{ID: 1, RoomNumber: "101", Location: "Building A"}, nil
	}}

	r := receipt.NewRenderer(invoices, rooms, "Payer Name", "payer@example.com")

	doc, err := r.Render(context.Background(), 7)

	if err != nil {
		t.Fatalf("render failed: %v", err)
	}

	if !bytes.HasPrefix(doc, []byte("%PDF")) {
		t.Fatalf("output does not start with a PDF header: %q", doc[:min(8, len(doc))])
	}

	if len(doc) < 500 {
		t.Fatalf("document suspiciously small: %d bytes", len(doc))
	}
}

func TestRenderInvoiceNotFound(t *testing.T) {
	invoices := &fakeInvoices{getFn: func(ctx context.Context, id int64) (invoice.Invoice, error) {
		return invoice.Invoice{}, invoice.ErrNotFound
	}}
	rooms := &fakeRooms{getFn: func(ctx context.Context, id int64) (room.Room, error) {
		t.Fatal("rooms must not be consulted when the invoice is missing")
		return room.Room{}, nil
	}}

	r := receipt.NewRenderer(invoices, rooms, "P", "p@x.com")

	_, err := r.Render(context.Background(), 99)

	if !errors.Is(err, invoice.ErrNotFound) {
		t.Fatalf("got %v, want invoice.ErrNotFound", err)
	}
}

func TestRenderRoomNotFound(t *testing.T) {
	invoices := &fakeInvoices{getFn: func(ctx context.Context, id int64) (invoice.Invoice, error) {
		return sampleInvoice(), nil
	}}
	rooms := &fakeRooms{getFn: func(ctx context.Context, id int64) (room.Room, error) {
		return room.Room{}, room.ErrNotFound
	}}

	r := receipt.NewRenderer(invoices, rooms, "P", "p@x.com")

	_, err := r.Render(context.Background(), 7)

	if !errors.Is(err, room.ErrNotFound) {
		t.Fatalf("got %v, want room.ErrNotFound", err)
	}
}

func TestTotalMatchesFeeSum(t *testing.T) {
	cases := []struct {
		room, water, elec, other float64
		want                     float64
	}{
		{1000, 50, 75, 0, 1125},
		{0, 0, 0, 0, 0},
		{19.99, 0.01, 100, 5.5, 125.5},
	}

	for _, c := range cases {
		inv := invoice.Invoice{RoomFee: c.room, WaterFee: c.water, ElectricityFee: c.elec, OtherExpenses: c.other}

		if got := inv.Total(); got != c.want {
			t.Fatalf("Total(%v,%v,%v,%v) = %v, want %v", c.room, c.water, c.elec, c.other, got, c.want)
		}
	}
}
