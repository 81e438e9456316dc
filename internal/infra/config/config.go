// internal/infra/config/config.go
package config

import "os"

// Config はアプリケーション全体の環境変数設定を保持します。
type Config struct {
	Port     string
	GCPCreds string

	FirestoreProjectID       string
	FirestoreCredentialsFile string

	// 商品画像の保存先バケット
	ProductImageBucket string
	// 公開URLのベース（未指定なら https://storage.googleapis.com）
	StoragePublicBaseURL string

	// 商品レコードの保存先: "firestore"（デフォルト）または "realtime"
	ProductsDB string
	// PRODUCTS_DB=realtime のときに使う Realtime Database の URL
	RTDBDatabaseURL string

	// Firebase App 用のプロジェクトID
	FirebaseProjectID string

	// CORS で許可するフロントエンドの origin（未指定なら "*"）
	AllowedOrigin string
}

// Load は環境変数を読み込み Config を返します。
func Load() *Config {
	// ベースとなる GCP プロジェクト ID
	defaultProject := getenvDefault("GCP_PROJECT_ID", "petshow-catalog")

	cfg := &Config{
		Port:     getenvDefault("PORT", "8080"),
		GCPCreds: os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"),

		FirestoreProjectID:       getenvDefault("FIRESTORE_PROJECT_ID", defaultProject),
		FirestoreCredentialsFile: os.Getenv("FIRESTORE_CREDENTIALS_FILE"),

		ProductImageBucket:   os.Getenv("PRODUCT_IMAGE_BUCKET"),
		StoragePublicBaseURL: getenvDefault("STORAGE_PUBLIC_BASE_URL", "https://storage.googleapis.com"),

		// PRODUCTS_DB が未設定なら Firestore を使う
		ProductsDB:      getenvDefault("PRODUCTS_DB", "firestore"),
		RTDBDatabaseURL: os.Getenv("RTDB_DATABASE_URL"),

		// FIREBASE_PROJECT_ID が未指定なら GCP のデフォルトを使う
		FirebaseProjectID: getenvDefault("FIREBASE_PROJECT_ID", defaultProject),

		AllowedOrigin: getenvDefault("ALLOWED_ORIGIN", "*"),
	}

	return cfg
}

// UseRealtimeDB は商品レコードを Realtime Database に置くかどうかを返します。
func (c *Config) UseRealtimeDB() bool {
	return c.ProductsDB == "realtime"
}

// GetFirestoreProjectID は Firestore/GCP プロジェクト ID を返します。
func (c *Config) GetFirestoreProjectID() string {
	return c.FirestoreProjectID
}

// Firebase 用の ProjectID を返すヘルパー
func (c *Config) GetFirebaseProjectID() string {
	return c.FirebaseProjectID
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
