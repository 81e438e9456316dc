// internal/adapters/out/mail/sendgrid_wire.go
package mail

import (
	"log"
	"os"
	"strings"
)

// 環境変数名（Cloud Run / ローカル共通）
const (
	envSendGridFrom = "SENDGRID_FROM"  // 例: no-reply@petshow.app
	envNotifyTo     = "NOTIFY_TO_MAIL" // 例: catalog@petshow.app
)

// NewRegistrationMailerWithSendGrid builds a SendGrid-backed
// RegistrationMailer. apiKey は呼び出し側が解決する（Secret Manager
// 優先、env フォールバック — di/shared 参照）。
//
// 必須設定が欠けている場合は nil を返し、通知機能は無効化される。
func NewRegistrationMailerWithSendGrid(apiKey string) *RegistrationMailer {
	apiKey = strings.TrimSpace(apiKey)
	fromAddr := strings.TrimSpace(os.Getenv(envSendGridFrom))
	toAddr := strings.TrimSpace(os.Getenv(envNotifyTo))

	if apiKey == "" || fromAddr == "" || toAddr == "" {
		log.Printf("[mail] registration mailer disabled (api key / SENDGRID_FROM / NOTIFY_TO_MAIL not fully configured)")
		return nil
	}

	client := NewSendGridClient(apiKey)
	mailer := NewRegistrationMailer(client, fromAddr, toAddr)

	log.Printf("[mail] RegistrationMailerWithSendGrid initialized. from=%s to=%s", fromAddr, toAddr)
	return mailer
}
