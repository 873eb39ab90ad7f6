package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/roomhub/billing/internal/domain/invoice"
	"github.com/roomhub/billing/internal/observability"
)

const invoiceColumns = `id, room_id, invoice_date, room_fee, water_fee, electricity_fee, other_expenses, status, payment_proof, created_at, updated_at`

type InvoicesRepo struct {
	pool *pgxpool.Pool
	prom *observability.Prom
}

func NewInvoicesRepo(pool *pgxpool.Pool, prom *observability.Prom) *InvoicesRepo {
	return &InvoicesRepo{pool: pool, prom: prom}
}

func (r *InvoicesRepo) observe(op string, fn func() error) error {
	if r.prom != nil {
		return r.prom.ObserveDB(op, fn)
	}
	return fn()
}

func scanInvoice(row pgx.Row) (invoice.Invoice, error) {
	var i invoice.Invoice

	err := row.Scan(
		&i.ID,
		&i.RoomID,
		&i.InvoiceDate,
		&i.RoomFee,
		&i.WaterFee,
		&i.ElectricityFee,
		&i.OtherExpenses,
		&i.Status,
		&i.PaymentProof,
		&i.CreatedAt,
		&i.UpdatedAt,
	)

	return i, err
}

func (r *InvoicesRepo) Create(ctx context.Context, roomID int64, invoiceDate time.Time, roomFee, waterFee, electricityFee, otherExpenses float64) (invoice.Invoice, error) {
	var i invoice.Invoice

	err := r.observe("invoices.create", func() error {
		row := r.pool.QueryRow(ctx,
			`INSERT INTO invoices (room_id, invoice_date, room_fee, water_fee, electricity_fee, other_expenses, status)
			 VALUES ($1,$2,$3,$4,$5,$6,$7)
			 RETURNING `+invoiceColumns,
			roomID, invoiceDate, roomFee, waterFee, electricityFee, otherExpenses, invoice.StatusUnpaid,
		)

		var err error
		i, err = scanInvoice(row)
		return err
	})

	if err != nil {
		return invoice.Invoice{}, err
	}

	return i, nil
}

func (r *InvoicesRepo) GetByID(ctx context.Context, id int64) (invoice.Invoice, error) {
	var i invoice.Invoice

	err := r.observe("invoices.get", func() error {
		row := r.pool.QueryRow(ctx,
			`SELECT `+invoiceColumns+` FROM invoices WHERE id = $1`, id)

		var err error
		i, err = scanInvoice(row)
		return err
	})

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return invoice.Invoice{}, invoice.ErrNotFound
		}

		return invoice.Invoice{}, err
	}

	return i, nil
}

func (r *InvoicesRepo) ListByRoom(ctx context.Context, roomID int64) ([]invoice.Invoice, error) {
	output := make([]invoice.Invoice, 0)

	err := r.observe("invoices.list_by_room", func() error {
		rows, err := r.pool.Query(ctx,
			`SELECT `+invoiceColumns+` FROM invoices WHERE room_id = $1 ORDER BY id ASC`, roomID)

		if err != nil {
			return err
		}

		defer rows.Close()

		for rows.Next() {
			i, err := scanInvoice(rows)

			if err != nil {
				return err
			}

			output = append(output, i)
		}

		return rows.Err()
	})

	if err != nil {
		return nil, err
	}

	return output, nil
}

// Update overwrites the four fee fields and the date. Status and payment
// proof are untouched.
func (r *InvoicesRepo) Update(ctx context.Context, id int64, invoiceDate time.Time, roomFee, waterFee, electricityFee, otherExpenses float64) (invoice.Invoice, error) {
	var i invoice.Invoice

	err := r.observe("invoices.update", func() error {
		row := r.pool.QueryRow(ctx,
			`UPDATE invoices
				SET room_fee = $2,
						water_fee = $3,
						electricity_fee = $4,
						other_expenses = $5,
						invoice_date = $6,
						updated_at = NOW()
			 WHERE id = $1
			 RETURNING `+invoiceColumns,
			id, roomFee, waterFee, electricityFee, otherExpenses, invoiceDate,
		)

		var err error
		i, err = scanInvoice(row)
		return err
	})

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return invoice.Invoice{}, invoice.ErrNotFound
		}

		return invoice.Invoice{}, err
	}

	return i, nil
}

// Delete removes the invoice and returns the deleted record.
func (r *InvoicesRepo) Delete(ctx context.Context, id int64) (invoice.Invoice, error) {
	var i invoice.Invoice

	err := r.observe("invoices.delete", func() error {
		row := r.pool.QueryRow(ctx,
			`DELETE FROM invoices WHERE id = $1 RETURNING `+invoiceColumns, id)

		var err error
		i, err = scanInvoice(row)
		return err
	})

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return invoice.Invoice{}, invoice.ErrNotFound
		}

		return invoice.Invoice{}, err
	}

	return i, nil
}

// AttachProof binds an uploaded slip filename to the invoice and moves its
// status to payment.
func (r *InvoicesRepo) AttachProof(ctx context.Context, id int64, filename string) (invoice.Invoice, error) {
	var i invoice.Invoice

	err := r.observe("invoices.attach_proof", func() error {
		row := r.pool.QueryRow(ctx,
			`UPDATE invoices
				SET status = $2,
						payment_proof = $3,
						updated_at = NOW()
			 WHERE id = $1
			 RETURNING `+invoiceColumns,
			id, invoice.StatusPayment, filename,
		)

		var err error
		i, err = scanInvoice(row)
		return err
	})

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return invoice.Invoice{}, invoice.ErrNotFound
		}

		return invoice.Invoice{}, err
	}

	return i, nil
}
