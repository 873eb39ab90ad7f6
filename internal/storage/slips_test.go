package storage_test

import (
	"bytes"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/roomhub/billing/internal/storage"
)

// buildUpload runs a real multipart round trip so the FileHeader carries the
// same header shape gin hands to the store.
func buildUpload(t *testing.T, field, filename, contentType string, content []byte) *multipart.FileHeader {
	t.Helper()

	var body bytes.Buffer
	w := multipart.NewWriter(&body)

	h := make(map[string][]string)
	h["Content-Disposition"] = []string{`form-data; name="` + field + `"; filename="` + filename + `"`}
	h["Content-Type"] = []string{contentType}

	part, err := w.CreatePart(h)
	if err != nil {
		t.Fatalf("create part: %v", err)
	}

	if _, err := part.Write(content); err != nil {
		t.Fatalf("write part: %v", err)
	}

	if err := w.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())

	if err := req.ParseMultipartForm(1 << 20); err != nil {
		t.Fatalf("parse form: %v", err)
	}

	return req.MultipartForm.File[field][0]
}

func TestSaveGeneratesSlipFilename(t *testing.T) {
	dir := t.TempDir()

	store, err := storage.NewSlipStore(dir)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}

	fh := buildUpload(t, "payment_slip", "transfer.png", "image/png", []byte("png-bytes"))

	name, err := store.Save(fh)

	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	if ok, _ := regexp.MatchString(`^\d+[A-Za-z0-9]{8}_slip\.png$`, name); !ok {
		t.Fatalf("unexpected filename %q", name)
	}

	f, err := os.Open(filepath.Join(dir, name))
	if err != nil {
		t.Fatalf("saved file missing: %v", err)
	}
	defer f.Close()

	content, _ := io.ReadAll(f)
	if string(content) != "png-bytes" {
		t.Fatalf("saved content = %q", content)
	}
}

func TestSaveRejectsNonImage(t *testing.T) {
	store, err := storage.NewSlipStore(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}

	fh := buildUpload(t, "payment_slip", "notes.txt", "text/plain", []byte("hi"))

	_, err = store.Save(fh)

	if !errors.Is(err, storage.ErrNotImage) {
		t.Fatalf("got %v, want ErrNotImage", err)
	}
}

func TestSaveDefaultsToJpegForNamelessUploads(t *testing.T) {
	store, err := storage.NewSlipStore(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}

	fh := buildUpload(t, "payment_slip", "slip", "image/jpeg", []byte("jpg"))

	name, err := store.Save(fh)

	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	if ok, _ := regexp.MatchString(`^\d+[A-Za-z0-9]{8}_slip\.jpeg$`, name); !ok {
		t.Fatalf("unexpected filename %q", name)
	}
}
