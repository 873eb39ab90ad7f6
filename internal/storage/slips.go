package storage

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// ErrNotImage rejects uploads whose declared content type is not an image.
var ErrNotImage = errors.New("please upload only images")

const suffixAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// SlipStore writes payment-proof uploads to a directory. Filenames are
// <unix-millis><8 random alphanumerics>_slip<ext> so concurrent uploads for
// the same invoice never collide.
type SlipStore struct {
	dir string
}

func NewSlipStore(dir string) (*SlipStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}

	return &SlipStore{dir: dir}, nil
}

func (s *SlipStore) Dir() string {
	return s.dir
}

// Save persists the uploaded file and returns the generated filename.
func (s *SlipStore) Save(fh *multipart.FileHeader) (string, error) {
	contentType := fh.Header.Get("Content-Type")

	if !strings.HasPrefix(contentType, "image") {
		return "", ErrNotImage
	}

	name := s.filename(fh.Filename)

	src, err := fh.Open()

	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}

	defer src.Close()

	dst, err := os.Create(filepath.Join(s.dir, name))

	if err != nil {
		return "", fmt.Errorf("create slip file: %w", err)
	}

	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("write slip file: %w", err)
	}

	return name, nil
}

func (s *SlipStore) filename(original string) string {
	ext := filepath.Ext(original)

	// nameless uploads default to jpeg
	if original == "" || ext == "" {
		ext = ".jpeg"
	}

	return fmt.Sprintf("%d%s_slip%s", time.Now().UnixMilli(), randomSuffix(8), ext)
}

func randomSuffix(n int) string {
	buf := make([]byte, n)
	_, _ = rand.Read(buf)

	for i := range buf {
		buf[i] = suffixAlphabet[int(buf[i])%len(suffixAlphabet)]
	}

	return string(buf)
}
