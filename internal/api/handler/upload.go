package handler

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"os"
	"strings"

	"github.com/hszk-dev/vidshare/internal/usecase"
)

const maxFormValueBytes = 64 << 10

// UploadConfig bounds multipart uploads.
type UploadConfig struct {
	// TempDir receives spooled file parts. Empty means os.TempDir().
	TempDir string
	// MaxRequestBytes caps the whole request body.
	MaxRequestBytes int64
}

// multipartForm is a fully spooled multipart request.
// Files live on local disk until Cleanup is called.
type multipartForm struct {
	values map[string]string
	files  map[string]usecase.FileInput
}

func (f *multipartForm) value(name string) (string, bool) {
	v, ok := f.values[name]
	return v, ok
}

func (f *multipartForm) file(name string) (usecase.FileInput, bool) {
	v, ok := f.files[name]
	return v, ok
}

// Cleanup removes every spooled file.
func (f *multipartForm) Cleanup() {
	for _, file := range f.files {
		if err := os.Remove(file.Path); err != nil && !errors.Is(err, os.ErrNotExist) {
			slog.Warn("failed to remove spooled upload",
				slog.String("path", file.Path),
				slog.String("error", err.Error()),
			)
		}
	}
}

// spoolMultipart streams a multipart body, writing file parts to cfg.TempDir.
// On error every file spooled so far is removed.
func spoolMultipart(w http.ResponseWriter, r *http.Request, cfg UploadConfig) (*multipartForm, error) {
	if cfg.MaxRequestBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, cfg.MaxRequestBytes)
	}

	reader, err := r.MultipartReader()
	if err != nil {
		return nil, invalid("expected a multipart/form-data body")
	}

	form := &multipartForm{
		values: make(map[string]string),
		files:  make(map[string]usecase.FileInput),
	}

	for {
		part, err := reader.NextPart()
		if errors.Is(err, io.EOF) {
			return form, nil
		}
		if err != nil {
			form.Cleanup()
			return nil, bodyError(err)
		}

		name := part.FormName()
		if name == "" {
			part.Close()
			continue
		}

		if part.FileName() == "" {
			raw, err := io.ReadAll(io.LimitReader(part, maxFormValueBytes+1))
			part.Close()
			if err != nil {
				form.Cleanup()
				return nil, bodyError(err)
			}
			if len(raw) > maxFormValueBytes {
				form.Cleanup()
				return nil, invalid("field %s is too long", name)
			}
			form.values[name] = string(raw)
			continue
		}

		file, err := spoolPart(cfg.TempDir, part.FileName(), part.Header.Get("Content-Type"), part)
		part.Close()
		if err != nil {
			form.Cleanup()
			return nil, err
		}
		if prev, ok := form.files[name]; ok {
			_ = os.Remove(prev.Path)
		}
		form.files[name] = file
	}
}

func spoolPart(dir, fileName, contentType string, src io.Reader) (usecase.FileInput, error) {
	dst, err := os.CreateTemp(dir, "upload-*")
	if err != nil {
		return usecase.FileInput{}, fmt.Errorf("create spool file: %w", err)
	}

	size, err := io.Copy(dst, src)
	closeErr := dst.Close()
	if err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(dst.Name())
		return usecase.FileInput{}, bodyError(err)
	}

	return usecase.FileInput{
		Path:        dst.Name(),
		FileName:    fileName,
		ContentType: mediaType(contentType),
		Size:        size,
	}, nil
}

// mediaType strips parameters from a Content-Type header value.
func mediaType(contentType string) string {
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return strings.ToLower(strings.TrimSpace(contentType))
	}
	return mt
}

func bodyError(err error) error {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return invalid("request body exceeds %d bytes", tooLarge.Limit)
	}
	return invalid("malformed multipart body")
}
