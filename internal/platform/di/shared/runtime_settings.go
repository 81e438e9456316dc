// internal/platform/di/shared/runtime_settings.go
package shared

import (
	"os"
	"strings"

	appcfg "petshow/internal/infra/config"
)

// RuntimeSettings is env/config-resolved runtime settings (normalized once).
// It intentionally contains only "values" (no external clients).
//
// Policy:
// - Prefer config (cfg) where available.
// - Use env fallbacks where historically used.
// - Keep normalization (trim, trailing slash removal) here.
// - Keep hard validation in runtime_settings_validate.go.
type RuntimeSettings struct {
	// Product image storage
	ProductImageBucket   string
	StoragePublicBaseURL string

	// Product record store: "firestore" or "realtime"
	ProductsDB      string
	RTDBDatabaseURL string

	// SendGrid API key secret name (Secret Manager)
	SendGridSecretName string

	// CORS
	AllowedOrigin string
}

// ResolveRuntimeSettings normalizes settings from config + env once at
// boot so the rest of the app never re-reads the environment.
func ResolveRuntimeSettings(cfg *appcfg.Config) RuntimeSettings {
	s := RuntimeSettings{}

	if cfg != nil {
		s.ProductImageBucket = strings.TrimSpace(cfg.ProductImageBucket)
		s.StoragePublicBaseURL = strings.TrimSpace(cfg.StoragePublicBaseURL)
		s.ProductsDB = strings.ToLower(strings.TrimSpace(cfg.ProductsDB))
		s.RTDBDatabaseURL = strings.TrimSpace(cfg.RTDBDatabaseURL)
		s.AllowedOrigin = strings.TrimSpace(cfg.AllowedOrigin)
	}

	if s.StoragePublicBaseURL == "" {
		s.StoragePublicBaseURL = "https://storage.googleapis.com"
	}
	s.StoragePublicBaseURL = strings.TrimRight(s.StoragePublicBaseURL, "/")

	if s.ProductsDB == "" {
		s.ProductsDB = "firestore"
	}

	s.SendGridSecretName = strings.TrimSpace(os.Getenv("SENDGRID_SECRET_NAME"))
	if s.SendGridSecretName == "" {
		s.SendGridSecretName = defaultSendGridSecretID
	}

	if s.AllowedOrigin == "" {
		s.AllowedOrigin = "*"
	}

	return s
}

// UseRealtimeDB reports whether product records live in the Firebase
// Realtime Database instead of Firestore.
func (s RuntimeSettings) UseRealtimeDB() bool {
	return s.ProductsDB == "realtime"
}
