package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/roomhub/billing/internal/domain/invoice"
	"github.com/roomhub/billing/internal/domain/room"
)

// InvoicesRepo keeps invoices and rooms in maps. Rooms are read-only here,
// seeded through AddRoom, matching the production schema where the billing
// service never creates rooms.
type InvoicesRepo struct {
	mu       sync.RWMutex
	nextID   int64
	invoices map[int64]invoice.Invoice
	rooms    map[int64]room.Room
}

func NewInvoicesRepo() *InvoicesRepo {
	return &InvoicesRepo{
		nextID:   1,
		invoices: make(map[int64]invoice.Invoice),
		rooms:    make(map[int64]room.Room),
	}
}

// AddRoom seeds a room for tests.
func (r *InvoicesRepo) AddRoom(rm room.Room) {
	r.mu.Lock()
	r.rooms[rm.ID] = rm
	r.mu.Unlock()
}

func (r *InvoicesRepo) Create(ctx context.Context, roomID int64, invoiceDate time.Time, roomFee, waterFee, electricityFee, otherExpenses float64) (invoice.Invoice, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()

	i := invoice.Invoice{
		ID:             r.nextID,
		RoomID:         roomID,
		InvoiceDate:    invoiceDate,
		RoomFee:        roomFee,
		WaterFee:       waterFee,
		ElectricityFee: electricityFee,
		OtherExpenses:  otherExpenses,
		Status:         invoice.StatusUnpaid,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	r.nextID++
	r.invoices[i.ID] = i

	return i, nil
}

func (r *InvoicesRepo) GetByID(ctx context.Context, id int64) (invoice.Invoice, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i, ok := r.invoices[id]

	if !ok {
		return invoice.Invoice{}, invoice.ErrNotFound
	}

	return i, nil
}

func (r *InvoicesRepo) ListByRoom(ctx context.Context, roomID int64) ([]invoice.Invoice, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.listByRoomLocked(roomID), nil
}

func (r *InvoicesRepo) listByRoomLocked(roomID int64) []invoice.Invoice {
	output := make([]invoice.Invoice, 0)

	for _, i := range r.invoices {
		if i.RoomID == roomID {
			output = append(output, i)
		}
	}

	// insertion order, ids are monotonic
	sort.Slice(output, func(a, b int) bool { return output[a].ID < output[b].ID })

	return output
}

func (r *InvoicesRepo) Update(ctx context.Context, id int64, invoiceDate time.Time, roomFee, waterFee, electricityFee, otherExpenses float64) (invoice.Invoice, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i, ok := r.invoices[id]

	if !ok {
		return invoice.Invoice{}, invoice.ErrNotFound
	}

	i.InvoiceDate = invoiceDate
	i.RoomFee = roomFee
	i.WaterFee = waterFee
	i.ElectricityFee = electricityFee
	i.OtherExpenses = otherExpenses
	i.UpdatedAt = time.Now().UTC()

	r.invoices[id] = i

	return i, nil
}

func (r *InvoicesRepo) Delete(ctx context.Context, id int64) (invoice.Invoice, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i, ok := r.invoices[id]

	if !ok {
		return invoice.Invoice{}, invoice.ErrNotFound
	}

	delete(r.invoices, id)

	return i, nil
}

func (r *InvoicesRepo) AttachProof(ctx context.Context, id int64, filename string) (invoice.Invoice, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i, ok := r.invoices[id]

	if !ok {
		return invoice.Invoice{}, invoice.ErrNotFound
	}

	i.Status = invoice.StatusPayment
	i.PaymentProof = &filename
	i.UpdatedAt = time.Now().UTC()

	r.invoices[id] = i

	return i, nil
}

// Room read paths, shared with the rooms repository role in tests.

func (r *InvoicesRepo) GetRoomByID(ctx context.Context, id int64) (room.Room, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rm, ok := r.rooms[id]

	if !ok {
		return room.Room{}, room.ErrNotFound
	}

	return rm, nil
}

func (r *InvoicesRepo) GetRoomWithInvoices(ctx context.Context, id int64) (room.WithInvoices, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rm, ok := r.rooms[id]

	if !ok {
		return room.WithInvoices{}, room.ErrNotFound
	}

	return room.WithInvoices{Room: rm, Invoices: r.listByRoomLocked(id)}, nil
}

func (r *InvoicesRepo) ListRoomsWithInvoices(ctx context.Context) ([]room.WithInvoices, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]int64, 0, len(r.rooms))

	for id := range r.rooms {
		ids = append(ids, id)
	}

	sort.Slice(ids, func(a, b int) bool { return ids[a] < ids[b] })

	output := make([]room.WithInvoices, 0, len(ids))

	for _, id := range ids {
		output = append(output, room.WithInvoices{
			Room:     r.rooms[id],
			Invoices: r.listByRoomLocked(id),
		})
	}

	return output, nil
}
