package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/roomhub/billing/internal/domain/invoice"
	"github.com/roomhub/billing/internal/http/handlers"
	"github.com/roomhub/billing/internal/storage"
)

type fakeProofAttacher struct {
	getFn    func(ctx context.Context, id int64) (invoice.Invoice, error)
	attachFn func(ctx context.Context, id int64, filename string) (invoice.Invoice, error)
	attached int
}

func (f *fakeProofAttacher) GetByID(ctx context.Context, id int64) (invoice.Invoice, error) {
	return f.getFn(ctx, id)
}

func (f *fakeProofAttacher) AttachProof(ctx context.Context, id int64, filename string) (invoice.Invoice, error) {
	f.attached++
	return f.attachFn(ctx, id, filename)
}

type fakeSlipSaver struct {
	saveFn func(fh *multipart.FileHeader) (string, error)
	saved  int
}

func (f *fakeSlipSaver) Save(fh *multipart.FileHeader) (string, error) {
	f.saved++
	return f.saveFn(fh)
}

func multipartSlip(t *testing.T, contentType string) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer

	mw := multipart.NewWriter(&buf)

	hdr := make(textproto.MIMEHeader)
	hdr.Set("Content-Disposition", `form-data; name="payment_slip"; filename="slip.png"`)
	hdr.Set("Content-Type", contentType)

	part, err := mw.CreatePart(hdr)

	if err != nil {
		t.Fatalf("create part: %v", err)
	}

	if _, err := part.Write([]byte("not really image bytes")); err != nil {
		t.Fatalf("write part: %v", err)
	}

	if err := mw.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	return &buf, mw.FormDataContentType()
}

func TestAttachPaymentProof(t *testing.T) {
	attacher := &fakeProofAttacher{
		getFn: func(ctx context.Context, id int64) (invoice.Invoice, error) {
			if id != 5 {
				return invoice.Invoice{}, invoice.ErrNotFound
			}
			return invoice.Invoice{ID: 5, RoomID: 1, Status: invoice.StatusUnpaid}, nil
		},
		attachFn: func(ctx context.Context, id int64, filename string) (invoice.Invoice, error) {
			inv := invoice.Invoice{ID: id, RoomID: 1, Status: invoice.StatusPayment}
			inv.PaymentProof = &filename
			return inv, nil
		},
	}

	slips := &fakeSlipSaver{
		saveFn: func(fh *multipart.FileHeader) (string, error) {
			return "1756625000000Ab3dE9xQ_slip.png", nil
		},
	}

	h := handlers.NewUploadsHandler(attacher, slips, nil)
	r := setupRouter(http.MethodPost, "/api/invoices/:invoice_id/payment-proof", h.Attach)

	body, contentType := multipartSlip(t, "image/png")

	req := httptest.NewRequest(http.MethodPost, "/api/invoices/5/payment-proof", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("got status %d, body=%s", w.Code, w.Body.String())
	}

	var resp struct {
		Status bool   `json:"status"`
		Image  string `json:"image"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad response: %v", err)
	}

	if !resp.Status || resp.Image != "1756625000000Ab3dE9xQ_slip.png" {
		t.Fatalf("unexpected response %+v", resp)
	}

	if slips.saved != 1 || attacher.attached != 1 {
		t.Fatalf("saved=%d attached=%d, want 1/1", slips.saved, attacher.attached)
	}
}

func TestAttachPaymentProofMissingInvoiceLeavesNoFile(t *testing.T) {
	attacher := &fakeProofAttacher{
		getFn: func(ctx context.Context, id int64) (invoice.Invoice, error) {
			return invoice.Invoice{}, invoice.ErrNotFound
		},
	}

	slips := &fakeSlipSaver{
		saveFn: func(fh *multipart.FileHeader) (string, error) {
			return "should-not-happen", nil
		},
	}

	h := handlers.NewUploadsHandler(attacher, slips, nil)
	r := setupRouter(http.MethodPost, "/api/invoices/:invoice_id/payment-proof", h.Attach)

	body, contentType := multipartSlip(t, "image/png")

	req := httptest.NewRequest(http.MethodPost, "/api/invoices/99/payment-proof", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("got status %d, want 404", w.Code)
	}

	if slips.saved != 0 {
		t.Fatalf("slip was written for a missing invoice")
	}
}

func TestAttachPaymentProofRejectsNonImage(t *testing.T) {
	attacher := &fakeProofAttacher{
		getFn: func(ctx context.Context, id int64) (invoice.Invoice, error) {
			return invoice.Invoice{ID: id, RoomID: 1}, nil
		},
	}

	slips := &fakeSlipSaver{
		saveFn: func(fh *multipart.FileHeader) (string, error) {
			return "", storage.ErrNotImage
		},
	}

	h := handlers.NewUploadsHandler(attacher, slips, nil)
	r := setupRouter(http.MethodPost, "/api/invoices/:invoice_id/payment-proof", h.Attach)

	body, contentType := multipartSlip(t, "application/pdf")

	req := httptest.NewRequest(http.MethodPost, "/api/invoices/5/payment-proof", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("got status %d, want 400", w.Code)
	}

	if attacher.attached != 0 {
		t.Fatalf("proof attached for a rejected upload")
	}
}

func TestAttachPaymentProofMissingFile(t *testing.T) {
	attacher := &fakeProofAttacher{
		getFn: func(ctx context.Context, id int64) (invoice.Invoice, error) {
			return invoice.Invoice{ID: id, RoomID: 1}, nil
		},
	}

	slips := &fakeSlipSaver{
		saveFn: func(fh *multipart.FileHeader) (string, error) {
			return "unused", nil
		},
	}

	h := handlers.NewUploadsHandler(attacher, slips, nil)
	r := setupRouter(http.MethodPost, "/api/invoices/:invoice_id/payment-proof", h.Attach)

	req := httptest.NewRequest(http.MethodPost, "/api/invoices/5/payment-proof", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("got status %d, want 400", w.Code)
	}

	var resp struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad response: %v", err)
	}

	if resp.Message != "Please upload a payment slip." {
		t.Fatalf("got message %q", resp.Message)
	}
}
