// internal/adapters/out/gcs/common/gcs_url.go
package common

import (
	"fmt"
	"net/url"
	"strings"
)

// PublicURL builds a public GCS URL.
// - baseURL が空なら https://storage.googleapis.com を使用
// - objectPath の先頭の "/" は除去し、セグメント単位でエスケープする
func PublicURL(baseURL, bucket, objectPath string) string {
	base := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if base == "" {
		base = "https://storage.googleapis.com"
	}
	obj := strings.TrimLeft(strings.TrimSpace(objectPath), "/")

	parts := strings.Split(obj, "/")
	for i := range parts {
		parts[i] = url.PathEscape(parts[i])
	}
	return fmt.Sprintf("%s/%s/%s", base, strings.TrimSpace(bucket), strings.Join(parts, "/"))
}

// ParseObjectURL parses a GCS-like URL and returns (bucket, objectPath, ok).
// 対応例:
//   - https://storage.googleapis.com/<bucket>/<object>
//   - https://storage.cloud.google.com/<bucket>/<object>
//   - gs://<bucket>/<object>
func ParseObjectURL(u string) (string, string, bool) {
	raw := strings.TrimSpace(u)

	if strings.HasPrefix(raw, "gs://") {
		rest := strings.TrimPrefix(raw, "gs://")
		parts := strings.SplitN(rest, "/", 2)
		if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
			return "", "", false
		}
		return parts[0], parts[1], true
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return "", "", false
	}

	host := strings.ToLower(parsed.Host)
	if host != "storage.googleapis.com" && host != "storage.cloud.google.com" {
		return "", "", false
	}

	p := strings.TrimLeft(parsed.EscapedPath(), "/")
	if p == "" {
		return "", "", false
	}

	parts := strings.SplitN(p, "/", 2)
	if len(parts) < 2 {
		return "", "", false
	}

	bucket := parts[0]
	objectPath, err := url.PathUnescape(parts[1])
	if err != nil {
		return "", "", false
	}

	return bucket, objectPath, true
}
