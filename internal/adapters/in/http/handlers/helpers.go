// internal/adapters/in/http/handlers/helpers.go
package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	proddom "petshow/internal/domain/product"
	imgdom "petshow/internal/domain/productimage"
)

// multipart フォーム全体の上限（画像数枚 + JSON を想定）
const maxMultipartMemory = 32 << 20 // 32 MiB

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func methodNotAllowed(w http.ResponseWriter) {
	writeErr(w, http.StatusMethodNotAllowed, "method_not_allowed")
}

// writeDomainErr maps domain sentinel errors onto HTTP statuses. The
// transport-level cause is logged by the caller; the client gets a
// single generic message per failure class.
func writeDomainErr(w http.ResponseWriter, err error) {
	var fe proddom.FieldErrors
	switch {
	case errors.As(err, &fe):
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"error":  "validation_failed",
			"fields": fe,
		})
	case proddom.IsNotFound(err) || imgdom.IsNotFound(err):
		writeErr(w, http.StatusNotFound, "not_found")
	case errors.Is(err, proddom.ErrConflict):
		writeErr(w, http.StatusConflict, "conflict")
	case proddom.IsInvalid(err) || errors.Is(err, proddom.ErrInvalidID):
		writeErr(w, http.StatusBadRequest, "invalid request")
	default:
		writeErr(w, http.StatusInternalServerError, "internal server error")
	}
}

func readJSON(r *http.Request, dst any) error {
	defer func() { _, _ = io.Copy(io.Discard, r.Body) }()
	dec := json.NewDecoder(io.LimitReader(r.Body, 1<<20))
	return dec.Decode(dst)
}

// readFilePart materializes one uploaded file part.
func readFilePart(fh *multipart.FileHeader) (imgdom.File, error) {
	f, err := fh.Open()
	if err != nil {
		return imgdom.File{}, err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return imgdom.File{}, err
	}

	ct := strings.TrimSpace(fh.Header.Get("Content-Type"))
	if ct == "" {
		ct = "application/octet-stream"
	}
	return imgdom.File{
		FileName:    fh.Filename,
		ContentType: ct,
		Data:        data,
	}, nil
}
