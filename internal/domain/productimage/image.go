// internal/domain/productimage/image.go
package productimage

import (
	"errors"
	"fmt"
	"strings"
)

// 汎用エラー（ゲートウェイ境界）
var (
	ErrUpload   = errors.New("productimage: upload failed")
	ErrDelete   = errors.New("productimage: delete failed")
	ErrNotFound = errors.New("productimage: not found")
	ErrInvalid  = errors.New("productimage: invalid")
)

func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }
func IsUpload(err error) bool   { return errors.Is(err, ErrUpload) }
func IsDelete(err error) bool   { return errors.Is(err, ErrDelete) }

func WrapUpload(err error) error {
	if err == nil {
		return ErrUpload
	}
	return fmt.Errorf("%w: %v", ErrUpload, err)
}

func WrapDelete(err error) error {
	if err == nil {
		return ErrDelete
	}
	return fmt.Errorf("%w: %v", ErrDelete, err)
}

// Storage folders (object path prefixes) for product images.
const (
	MainImageFolder      = "main-images"
	SecondaryImageFolder = "secondary-images"
)

// File is a transient upload payload held by the registration form
// before submission. It never reaches the product record; only the
// durable URL obtained from the gateway does.
type File struct {
	FileName    string
	ContentType string
	Data        []byte
}

// Valid reports whether the file can be uploaded at all.
func (f File) Valid() bool {
	return strings.TrimSpace(f.FileName) != "" && len(f.Data) > 0
}

// BuildObjectPath joins folder and sanitized file name.
func BuildObjectPath(folder, fileName string) string {
	folder = strings.Trim(strings.TrimSpace(folder), "/")
	return folder + "/" + SanitizeFileName(fileName)
}

// SanitizeFileName removes any path fragments and trims.
func SanitizeFileName(s string) string {
	v := strings.TrimSpace(s)
	if v == "" {
		return ""
	}
	v = strings.ReplaceAll(v, "\\", "/")
	if i := strings.LastIndex(v, "/"); i >= 0 {
		v = v[i+1:]
	}
	v = strings.TrimSpace(v)
	if v == "" || v == "." || v == ".." {
		return ""
	}
	// forbid query-like tails
	if strings.Contains(v, "?") || strings.Contains(v, "#") {
		return ""
	}
	return v
}
