package receipt

import (
	"bytes"
	"context"
	"fmt"

	"github.com/go-pdf/fpdf"

	"github.com/roomhub/billing/internal/domain/invoice"
	"github.com/roomhub/billing/internal/domain/room"
)

type InvoiceReader interface {
	GetByID(ctx context.Context, id int64) (invoice.Invoice, error)
}

type RoomReader interface {
	GetByID(ctx context.Context, id int64) (room.Room, error)
}

// Renderer assembles the fixed-layout receipt PDF for an invoice. The payer
// identity printed on every receipt comes from configuration, not from the
// invoice.
type Renderer struct {
	invoices   InvoiceReader
	rooms      RoomReader
	payerName  string
	payerEmail string
}

func NewRenderer(invoices InvoiceReader, rooms RoomReader, payerName, payerEmail string) *Renderer {
	return &Renderer{
		invoices:   invoices,
		rooms:      rooms,
		payerName:  payerName,
		payerEmail: payerEmail,
	}
}

// Render looks up the invoice and its room and returns the receipt document
// bytes. It never mutates invoice state.
func (r *Renderer) Render(ctx context.Context, invoiceID int64) ([]byte, error) {
	inv, err := r.invoices.GetByID(ctx, invoiceID)

	if err != nil {
		return nil, err
	}

	rm, err := r.rooms.GetByID(ctx, inv.RoomID)

	if err != nil {
		return nil, err
	}

	return r.build(inv, rm)
}

func (r *Renderer) build(inv invoice.Invoice, rm room.Room) ([]byte, error) {
	const margin = 50.0

	pdf := fpdf.New("P", "pt", "A4", "")
	pdf.SetMargins(margin, margin, margin)
	pdf.AddPage()

	pageWidth, _ := pdf.GetPageSize()

	// Title
	pdf.SetFont("Helvetica", "", 25)
	pdf.CellFormat(0, 30, "Receipt", "", 1, "C", false, 0, "")
	pdf.Ln(10)

	// Billing date and payer block, right-aligned. The date follows the
	// en-US short form (no leading zeros).
	d := inv.InvoiceDate
	billingDate := fmt.Sprintf("%d/%d/%d", int(d.Month()), d.Day(), d.Year())

	pdf.SetFont("Helvetica", "", 15)
	pdf.CellFormat(0, 20, "Billing Date: "+billingDate, "", 1, "R", false, 0, "")
	pdf.CellFormat(0, 20, "Name : "+r.payerName, "", 1, "R", false, 0, "")
	pdf.CellFormat(0, 20, "Email : "+r.payerEmail, "", 1, "R", false, 0, "")
	pdf.Ln(15)

	// Divider
	y := pdf.GetY()
	pdf.Line(margin, y, pageWidth-margin, y)
	pdf.Ln(15)

	// Room details
	pdf.SetFont("Helvetica", "U", 15)
	pdf.CellFormat(0, 20, "Room Details", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 15)
	pdf.CellFormat(0, 20, "Room Number: "+rm.RoomNumber, "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 20, "Location: "+rm.Location, "", 1, "L", false, 0, "")
	pdf.Ln(15)

	// Invoice details
	pdf.SetFont("Helvetica", "U", 15)
	pdf.CellFormat(0, 20, "Invoice Details", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 15)
	pdf.CellFormat(0, 20, fmt.Sprintf("Room : %.2f baht", inv.RoomFee), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 20, fmt.Sprintf("Water: %.2f baht", inv.WaterFee), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 20, fmt.Sprintf("Electricity: %.2f", inv.ElectricityFee), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 20, fmt.Sprintf("Other Expenses: %.2f", inv.OtherExpenses), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 20, "Status: "+inv.Status, "", 1, "L", false, 0, "")
	pdf.Ln(15)

	// Grand total, highlighted
	pdf.SetFont("Helvetica", "", 20)
	pdf.SetTextColor(0, 0, 255)
	pdf.CellFormat(0, 25, fmt.Sprintf("Total: %.2f baht", inv.Total()), "", 1, "R", false, 0, "")
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "", 15)
	pdf.SetTextColor(0, 0, 0)
	pdf.CellFormat(0, 20, "Thank you for your payment!", "", 1, "R", false, 0, "")

	var buf bytes.Buffer

	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render receipt: %w", err)
	}

	return buf.Bytes(), nil
}
