package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/roomhub/billing/internal/domain/invoice"
	"github.com/roomhub/billing/internal/domain/room"
	"github.com/roomhub/billing/internal/observability"
)

type RoomsRepo struct {
	pool     *pgxpool.Pool
	prom     *observability.Prom
	invoices *InvoicesRepo
}

func NewRoomsRepo(pool *pgxpool.Pool, prom *observability.Prom) *RoomsRepo {
	return &RoomsRepo{
		pool:     pool,
		prom:     prom,
		invoices: NewInvoicesRepo(pool, prom),
	}
}

func (r *RoomsRepo) observe(op string, fn func() error) error {
	if r.prom != nil {
		return r.prom.ObserveDB(op, fn)
	}
	return fn()
}

func (r *RoomsRepo) GetByID(ctx context.Context, id int64) (room.Room, error) {
	var rm room.Room

	err := r.observe("rooms.get", func() error {
		return r.pool.QueryRow(ctx,
			`SELECT id, room_number, location FROM rooms WHERE id = $1`, id,
		).Scan(&rm.ID, &rm.RoomNumber, &rm.Location)
	})

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return room.Room{}, room.ErrNotFound
		}

		return room.Room{}, err
	}

	return rm, nil
}

// GetWithInvoices returns the room together with every invoice keyed to it.
func (r *RoomsRepo) GetWithInvoices(ctx context.Context, id int64) (room.WithInvoices, error) {
	rm, err := r.GetByID(ctx, id)

	if err != nil {
		return room.WithInvoices{}, err
	}

	invoices, err := r.invoices.ListByRoom(ctx, id)

	if err != nil {
		return room.WithInvoices{}, err
	}

	return room.WithInvoices{Room: rm, Invoices: invoices}, nil
}

// ListWithInvoices returns every room with its invoices in a single query,
// grouping rows client-side in room order.
func (r *RoomsRepo) ListWithInvoices(ctx context.Context) ([]room.WithInvoices, error) {
	output := make([]room.WithInvoices, 0)

	err := r.observe("rooms.list", func() error {
		rows, err := r.pool.Query(ctx,
			`SELECT r.id, r.room_number, r.location,
							i.id, i.room_id, i.invoice_date, i.room_fee, i.water_fee, i.electricity_fee, i.other_expenses, i.status, i.payment_proof, i.created_at, i.updated_at
			 FROM rooms r
			 LEFT JOIN invoices i ON i.room_id = r.id
			 ORDER BY r.id ASC, i.id ASC`)

		if err != nil {
			return err
		}

		defer rows.Close()

		index := make(map[int64]int)

		for rows.Next() {
			var rm room.Room

			// Invoice columns are nullable because of the left join.
			var (
				invID          *int64
				invRoomID      *int64
				invDate        *time.Time
				roomFee        *float64
				waterFee       *float64
				electricityFee *float64
				otherExpenses  *float64
				status         *string
				paymentProof   *string
				createdAt      *time.Time
				updatedAt      *time.Time
			)

			err = rows.Scan(
				&rm.ID, &rm.RoomNumber, &rm.Location,
				&invID, &invRoomID, &invDate, &roomFee, &waterFee, &electricityFee, &otherExpenses, &status, &paymentProof, &createdAt, &updatedAt,
			)

			if err != nil {
				return err
			}

			pos, ok := index[rm.ID]

			if !ok {
				pos = len(output)
				index[rm.ID] = pos
				output = append(output, room.WithInvoices{Room: rm, Invoices: []invoice.Invoice{}})
			}

			if invID != nil {
				output[pos].Invoices = append(output[pos].Invoices, invoice.Invoice{
					ID:             *invID,
					RoomID:         *invRoomID,
					InvoiceDate:    *invDate,
					RoomFee:        *roomFee,
					WaterFee:       *waterFee,
					ElectricityFee: *electricityFee,
					OtherExpenses:  *otherExpenses,
					Status:         *status,
					PaymentProof:   paymentProof,
					CreatedAt:      *createdAt,
					UpdatedAt:      *updatedAt,
				})
			}
		}

		return rows.Err()
	})

	if err != nil {
		return nil, err
	}

	return output, nil
}
