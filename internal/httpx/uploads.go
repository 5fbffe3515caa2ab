package httpx

import (
	"errors"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

const maxUploadBytes = 10 << 20 // 10 MiB

var (
	errNoFile       = errors.New("no file uploaded")
	errFileTooLarge = errors.New("file exceeds the 10 MiB upload limit")
)

// saveUpload stores a multipart file under dir with a fresh name and returns
// the public URL path. Files over the limit are rejected, not truncated.
func saveUpload(r *http.Request, field, dir string) (string, error) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		return "", errNoFile
	}
	file, hdr, err := r.FormFile(field)
	if err != nil {
		return "", errNoFile
	}
	defer file.Close()

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	name := uuid.NewString() + filepath.Ext(hdr.Filename)
	path := filepath.Join(dir, name)
	dst, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer dst.Close()

	// Read one byte past the limit so an oversized file is detected instead
	// of silently cut off.
	n, err := io.Copy(dst, io.LimitReader(file, maxUploadBytes+1))
	if err != nil {
		os.Remove(path)
		return "", err
	}
	if n > maxUploadBytes {
		os.Remove(path)
		return "", errFileTooLarge
	}
	return "/uploads/" + name, nil
}
