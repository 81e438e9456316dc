// internal/platform/di/shared/infra.go
package shared

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"cloud.google.com/go/firestore"
	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	secretmanagerpb "cloud.google.com/go/secretmanager/apiv1/secretmanagerpb"
	"cloud.google.com/go/storage"

	firebase "firebase.google.com/go/v4"
	firebasedb "firebase.google.com/go/v4/db"
	"google.golang.org/api/option"

	appcfg "petshow/internal/infra/config"
)

// Default Secret Manager secret name for the SendGrid API key.
const defaultSendGridSecretID = "petshow-sendgrid-api-key"

// Infra is shared runtime infrastructure for DI.
// - owns external clients (Firestore/GCS/Firebase RTDB/SecretManager)
// - owns env/config-resolved runtime settings (bucket name, base URLs)
//
// IMPORTANT:
// Infra must NOT depend on routers, handlers, or queries.
type Infra struct {
	// Config
	Config    *appcfg.Config
	ProjectID string

	// Clients (owned; Close-managed)
	Firestore     *firestore.Client
	GCS           *storage.Client
	FirebaseApp   *firebase.App
	RTDB          *firebasedb.Client
	SecretManager *secretmanager.Client

	// Runtime settings (resolved once)
	Settings             RuntimeSettings
	ProductImageBucket   string
	StoragePublicBaseURL string
	SendGridAPIKey       string
}

// NewInfra initializes shared infra.
// Firestore/GCS are strict (return error). The Firebase RTDB client is
// strict only when PRODUCTS_DB=realtime selects it as the record store.
// SecretManager and the SendGrid key are best-effort (warn + continue).
func NewInfra(ctx context.Context) (*Infra, error) {
	cfg := appcfg.Load()
	if cfg == nil {
		return nil, errors.New("shared.infra: config is nil")
	}

	projectID := resolveProjectID(cfg)
	if projectID == "" {
		// If empty, Firestore/NewApp become unstable; treat as hard error.
		return nil, errors.New("shared.infra: projectID is empty (set FIRESTORE_PROJECT_ID or GOOGLE_CLOUD_PROJECT)")
	}

	inf := &Infra{
		Config:    cfg,
		ProjectID: projectID,
	}

	// Resolve runtime settings once (env/config)
	inf.Settings = ResolveRuntimeSettings(cfg)
	if err := inf.Settings.Validate(); err != nil {
		return nil, err
	}

	// Credentials file (optional; mainly for local dev)
	credFile := strings.TrimSpace(cfg.FirestoreCredentialsFile)
	if credFile == "" {
		credFile = strings.TrimSpace(cfg.GCPCreds) // GOOGLE_APPLICATION_CREDENTIALS
	}
	var clientOpts []option.ClientOption
	if credFile != "" {
		clientOpts = append(clientOpts, option.WithCredentialsFile(credFile))
		log.Printf("[shared.infra] Using credentials file for GCP clients: %s", redactPath(credFile))
	} else {
		log.Printf("[shared.infra] Using Application Default Credentials (no credentials file configured)")
	}

	// 1) Optional: Secret Manager client (used for the SendGrid API key)
	{
		var sm *secretmanager.Client
		var err error
		if len(clientOpts) > 0 {
			sm, err = secretmanager.NewClient(ctx, clientOpts...)
		} else {
			sm, err = secretmanager.NewClient(ctx)
		}
		if err != nil {
			log.Printf("[shared.infra] WARN: secretmanager.NewClient failed: %v (SecretManager-dependent features may be disabled)", err)
			sm = nil
		}
		inf.SecretManager = sm
	}

	// 2) Firestore (strict)
	{
		var fsClient *firestore.Client
		var err error
		if len(clientOpts) > 0 {
			fsClient, err = firestore.NewClient(ctx, inf.ProjectID, clientOpts...)
		} else {
			fsClient, err = firestore.NewClient(ctx, inf.ProjectID)
		}
		if err != nil {
			return nil, fmt.Errorf("shared.infra: firestore.NewClient failed (project=%s): %w", inf.ProjectID, err)
		}
		inf.Firestore = fsClient
		log.Printf("[shared.infra] Firestore connected project=%s", inf.ProjectID)
	}

	// 3) GCS (strict)
	{
		var gcsClient *storage.Client
		var err error
		if len(clientOpts) > 0 {
			gcsClient, err = storage.NewClient(ctx, clientOpts...)
		} else {
			gcsClient, err = storage.NewClient(ctx)
		}
		if err != nil {
			_ = inf.Firestore.Close()
			return nil, fmt.Errorf("shared.infra: storage.NewClient failed: %w", err)
		}
		inf.GCS = gcsClient
		log.Printf("[shared.infra] GCS storage client initialized")
	}

	// 4) Firebase App / RTDB
	// PRODUCTS_DB=realtime のときだけ必須。それ以外は best-effort。
	{
		var fbApp *firebase.App
		var err error

		fbCfg := &firebase.Config{
			ProjectID:   inf.ProjectID,
			DatabaseURL: inf.Settings.RTDBDatabaseURL,
		}
		if len(clientOpts) > 0 {
			fbApp, err = firebase.NewApp(ctx, fbCfg, clientOpts...)
		} else {
			fbApp, err = firebase.NewApp(ctx, fbCfg)
		}

		switch {
		case err != nil && inf.Settings.UseRealtimeDB():
			_ = inf.Close()
			return nil, fmt.Errorf("shared.infra: firebase app init failed (PRODUCTS_DB=realtime): %w", err)
		case err != nil:
			log.Printf("[shared.infra] WARN: firebase app init failed: %v", err)
		default:
			inf.FirebaseApp = fbApp
			dbClient, derr := fbApp.Database(ctx)
			if derr != nil && inf.Settings.UseRealtimeDB() {
				_ = inf.Close()
				return nil, fmt.Errorf("shared.infra: firebase database init failed (PRODUCTS_DB=realtime): %w", derr)
			}
			if derr != nil {
				log.Printf("[shared.infra] WARN: firebase database init failed: %v", derr)
			} else {
				inf.RTDB = dbClient
				log.Printf("[shared.infra] Firebase Realtime Database initialized")
			}
		}
	}

	// 5) Buckets / base URLs (from settings)
	inf.ProductImageBucket = inf.Settings.ProductImageBucket
	if inf.ProductImageBucket == "" {
		// Warn early to avoid silent failures later.
		log.Printf("[shared.infra] WARN: PRODUCT_IMAGE_BUCKET is empty (image upload features may fail)")
	}
	inf.StoragePublicBaseURL = inf.Settings.StoragePublicBaseURL

	// 6) SendGrid API key (Secret Manager first, env fallback)
	inf.SendGridAPIKey = inf.resolveSendGridAPIKey(ctx)

	// Final sanity checks (panic prevention)
	if inf.Firestore == nil {
		_ = inf.Close()
		return nil, errors.New("shared.infra: firestore client is nil after initialization (unexpected)")
	}
	if inf.GCS == nil {
		_ = inf.Close()
		return nil, errors.New("shared.infra: gcs client is nil after initialization (unexpected)")
	}

	return inf, nil
}

func (i *Infra) Close() error {
	if i == nil {
		return nil
	}
	if i.Firestore != nil {
		_ = i.Firestore.Close()
	}
	if i.GCS != nil {
		_ = i.GCS.Close()
	}
	if i.SecretManager != nil {
		_ = i.SecretManager.Close()
	}
	return nil
}

// resolveSendGridAPIKey resolves the SendGrid key from Secret Manager
// (SENDGRID_SECRET_NAME, default petshow-sendgrid-api-key) and falls
// back to the SENDGRID_API_KEY env var. Empty result disables mail.
func (i *Infra) resolveSendGridAPIKey(ctx context.Context) string {
	if i.SecretManager != nil {
		secretID := i.Settings.SendGridSecretName
		name := fmt.Sprintf("projects/%s/secrets/%s/versions/latest", i.ProjectID, secretID)
		resp, err := i.SecretManager.AccessSecretVersion(ctx, &secretmanagerpb.AccessSecretVersionRequest{Name: name})
		if err != nil {
			log.Printf("[shared.infra] WARN: AccessSecretVersion failed (%s): %v (falling back to SENDGRID_API_KEY)", secretID, err)
		} else if resp != nil && resp.Payload != nil {
			if key := strings.TrimSpace(string(resp.Payload.Data)); key != "" {
				log.Printf("[shared.infra] SendGrid API key resolved from Secret Manager")
				return key
			}
		}
	}

	key := strings.TrimSpace(os.Getenv("SENDGRID_API_KEY"))
	if key == "" {
		log.Printf("[shared.infra] SendGrid API key not configured (mail notifications disabled)")
	}
	return key
}

func resolveProjectID(cfg *appcfg.Config) string {
	// Priority:
	// 1) cfg.FirestoreProjectID (resolved by config.Load)
	// 2) FIRESTORE_PROJECT_ID
	// 3) GCP_PROJECT_ID
	// 4) GOOGLE_CLOUD_PROJECT (often set in Cloud Run)
	// 5) FIREBASE_PROJECT_ID (fallback)
	if cfg != nil {
		if v := strings.TrimSpace(cfg.FirestoreProjectID); v != "" {
			return v
		}
	}

	for _, k := range []string{
		"FIRESTORE_PROJECT_ID",
		"GCP_PROJECT_ID",
		"GOOGLE_CLOUD_PROJECT",
		"FIREBASE_PROJECT_ID",
	} {
		if v := strings.TrimSpace(os.Getenv(k)); v != "" {
			return v
		}
	}

	return ""
}


func redactPath(p string) string {
	// Do not log full path (Windows/Unix compatible light masking)
	p = strings.TrimSpace(p)
	if p == "" {
		return ""
	}
	// Keep only the last segment
	p = strings.ReplaceAll(p, "\\", "/")
	parts := strings.Split(p, "/")
	if len(parts) == 0 {
		return "***"
	}
	last := parts[len(parts)-1]
	if last == "" {
		return "***"
	}
	return "***" + "/" + last
}
