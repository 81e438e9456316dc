// internal/adapters/out/gcs/productImage_gateway_gcs.go
// Responsibility: GCS を用いた商品画像 Gateway（Upload/Remove/ResolveURL）を提供する。
package gcs

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	"cloud.google.com/go/storage"

	gcscommon "petshow/internal/adapters/out/gcs/common"
	imgdom "petshow/internal/domain/productimage"
)

// ProductImageGatewayGCS implements productimage.Gateway backed by
// Google Cloud Storage.
//
// Storage policy (single public bucket, uniform access):
//   - objectPath: main-images/<fileName> / secondary-images/<fileName>
//   - retrieval URL: https://storage.googleapis.com/<bucket>/<objectPath>
type ProductImageGatewayGCS struct {
	Client *storage.Client
	Bucket string
	// Optional: if empty, uses https://storage.googleapis.com
	PublicBaseURL string
}

func NewProductImageGatewayGCS(client *storage.Client, bucket string) *ProductImageGatewayGCS {
	return &ProductImageGatewayGCS{
		Client:        client,
		Bucket:        strings.TrimSpace(bucket),
		PublicBaseURL: "https://storage.googleapis.com",
	}
}

// Compile-time check: ensure this satisfies the domain port
var _ imgdom.Gateway = (*ProductImageGatewayGCS)(nil)

func (g *ProductImageGatewayGCS) effectiveBucket() (string, error) {
	if g == nil || g.Client == nil {
		return "", errors.New("productImage_gateway_gcs: storage client is nil")
	}
	b := strings.TrimSpace(g.Bucket)
	if b == "" {
		return "", errors.New("productImage_gateway_gcs: bucket is empty")
	}
	return b, nil
}

// ==============================
// Upload
// ==============================

// Upload writes the file under "<folder>/<fileName>" and returns the
// public URL. 同名オブジェクトの上書きを避けるため、既存時は短い乱数
// サフィックスを付けて書き込む。No retry is attempted here.
func (g *ProductImageGatewayGCS) Upload(ctx context.Context, file imgdom.File, folder string) (string, error) {
	bucket, err := g.effectiveBucket()
	if err != nil {
		return "", imgdom.WrapUpload(err)
	}
	if !file.Valid() {
		return "", imgdom.WrapUpload(errors.New("empty file"))
	}

	name := imgdom.SanitizeFileName(file.FileName)
	if name == "" {
		return "", imgdom.WrapUpload(errors.New("invalid fileName"))
	}

	objectPath := imgdom.BuildObjectPath(folder, name)

	// collision check: keep the original name when free
	if _, err := g.Client.Bucket(bucket).Object(objectPath).Attrs(ctx); err == nil {
		objectPath = imgdom.BuildObjectPath(folder, uploadSuffix()+"_"+name)
	} else if !errors.Is(err, storage.ErrObjectNotExist) {
		return "", imgdom.WrapUpload(err)
	}

	w := g.Client.Bucket(bucket).Object(objectPath).NewWriter(ctx)
	if ct := strings.TrimSpace(file.ContentType); ct != "" {
		w.ContentType = ct
	}
	w.ChunkSize = 0
	w.Metadata = map[string]string{
		"uploadedAt": time.Now().UTC().Format(time.RFC3339),
	}
	if _, err := w.Write(file.Data); err != nil {
		_ = w.Close()
		return "", imgdom.WrapUpload(err)
	}
	if err := w.Close(); err != nil {
		return "", imgdom.WrapUpload(err)
	}

	return gcscommon.PublicURL(g.PublicBaseURL, bucket, objectPath), nil
}

// ==============================
// Remove
// ==============================

// Remove deletes the object addressed by a previously returned URL.
// 対象が存在しない場合は ErrNotFound（呼び出し側が許容可否を判断する）。
func (g *ProductImageGatewayGCS) Remove(ctx context.Context, rawURL string) error {
	if g == nil || g.Client == nil {
		return imgdom.WrapDelete(errors.New("storage client is nil"))
	}

	bucket, objectPath, ok := gcscommon.ParseObjectURL(rawURL)
	if !ok {
		return imgdom.WrapDelete(errors.New("unrecognized object URL: " + strings.TrimSpace(rawURL)))
	}
	if bucket == "" {
		bucket = strings.TrimSpace(g.Bucket)
	}
	if bucket == "" {
		return imgdom.WrapDelete(errors.New("bucket is empty"))
	}

	if err := g.Client.Bucket(bucket).Object(objectPath).Delete(ctx); err != nil {
		if errors.Is(err, storage.ErrObjectNotExist) {
			return imgdom.ErrNotFound
		}
		return imgdom.WrapDelete(err)
	}
	return nil
}

// ==============================
// ResolveURL
// ==============================

// ResolveURL stats an already-uploaded object and returns its public URL.
func (g *ProductImageGatewayGCS) ResolveURL(ctx context.Context, folder, fileName string) (string, error) {
	bucket, err := g.effectiveBucket()
	if err != nil {
		return "", err
	}

	name := imgdom.SanitizeFileName(fileName)
	if name == "" {
		return "", imgdom.ErrNotFound
	}
	objectPath := imgdom.BuildObjectPath(folder, name)

	if _, err := g.Client.Bucket(bucket).Object(objectPath).Attrs(ctx); err != nil {
		if errors.Is(err, storage.ErrObjectNotExist) {
			return "", imgdom.ErrNotFound
		}
		return "", err
	}
	return gcscommon.PublicURL(g.PublicBaseURL, bucket, objectPath), nil
}

// ==============================
// Helpers
// ==============================

func uploadSuffix() string {
	var b [6]byte
	if _, err := rand.Read(b[:]); err != nil {
		// fallback: timestamp-based
		return time.Now().UTC().Format("20060102T150405")
	}
	return hex.EncodeToString(b[:])
}
