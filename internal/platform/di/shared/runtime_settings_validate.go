// internal/platform/di/shared/runtime_settings_validate.go
package shared

import (
	"fmt"
	"strings"
)

// Validate performs hard validation for RuntimeSettings.
//
// Policy:
//   - This should be stricter than Normalize.
//   - It should fail fast for values that would cause undefined behavior,
//     while allowing optional features to remain disabled when settings are empty.
func (s RuntimeSettings) Validate() error {
	switch s.ProductsDB {
	case "firestore", "realtime":
	default:
		return fmt.Errorf("shared.runtime_settings: PRODUCTS_DB must be firestore or realtime (got %q)", s.ProductsDB)
	}

	if s.UseRealtimeDB() && strings.TrimSpace(s.RTDBDatabaseURL) == "" {
		return fmt.Errorf("shared.runtime_settings: RTDB_DATABASE_URL is required when PRODUCTS_DB=realtime")
	}

	if strings.TrimSpace(s.StoragePublicBaseURL) == "" {
		return fmt.Errorf("shared.runtime_settings: StoragePublicBaseURL is empty")
	}
	if strings.HasSuffix(s.StoragePublicBaseURL, "/") {
		return fmt.Errorf("shared.runtime_settings: StoragePublicBaseURL must not end with '/' (got %q)", s.StoragePublicBaseURL)
	}

	// Secret name must never be empty once resolved (default exists).
	if strings.TrimSpace(s.SendGridSecretName) == "" {
		return fmt.Errorf("shared.runtime_settings: SendGridSecretName is empty")
	}

	return nil
}
