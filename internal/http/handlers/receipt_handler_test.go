package handlers_test

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/roomhub/billing/internal/domain/invoice"
	"github.com/roomhub/billing/internal/domain/room"
	"github.com/roomhub/billing/internal/http/handlers"
	"github.com/roomhub/billing/internal/observability"
)

type fakeRenderer struct {
	renderFn func(ctx context.Context, invoiceID int64) ([]byte, error)
}

func (f *fakeRenderer) Render(ctx context.Context, invoiceID int64) ([]byte, error) {
	return f.renderFn(ctx, invoiceID)
}

func TestReceiptDownload(t *testing.T) {
	renderer := &fakeRenderer{
		renderFn: func(ctx context.Context, invoiceID int64) ([]byte, error) {
			switch invoiceID {
			case 7:
				return []byte("%PDF-1.3 fake"), nil
			case 8:
				return nil, room.ErrNotFound
			default:
				return nil, invoice.ErrNotFound
			}
		},
	}

	h := handlers.NewReceiptHandler(renderer, observability.NewProm(prometheus.NewRegistry()))
	r := setupRouter(http.MethodGet, "/api/invoices/:invoice_id/receipt", h.Get)

	tests := []struct {
		name       string
		path       string
		wantStatus int
	}{
		{name: "success", path: "/api/invoices/7/receipt", wantStatus: http.StatusOK},
		{name: "missing invoice", path: "/api/invoices/1/receipt", wantStatus: http.StatusNotFound},
		{name: "missing room", path: "/api/invoices/8/receipt", wantStatus: http.StatusNotFound},
		{name: "bad id", path: "/api/invoices/seven/receipt", wantStatus: http.StatusBadRequest},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tc.path, nil)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != tc.wantStatus {
				t.Fatalf("got status %d, want %d, body=%s", w.Code, tc.wantStatus, w.Body.String())
			}

			if tc.wantStatus != http.StatusOK {
				return
			}

			if ct := w.Header().Get("Content-Type"); ct != "application/pdf" {
				t.Fatalf("got content type %q", ct)
			}

			if cd := w.Header().Get("Content-Disposition"); cd != "attachment; filename=receipt_7.pdf" {
				t.Fatalf("got content disposition %q", cd)
			}

			if !bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF")) {
				t.Fatalf("body is not a pdf: %q", w.Body.String())
			}
		})
	}
}
