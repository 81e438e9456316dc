// internal/adapters/out/mail/registration_mailer.go
package mail

import (
	"context"
	"fmt"
	"strings"

	proddom "petshow/internal/domain/product"
)

// RegistrationMailerPort はアプリケーション層（usecase）が利用する
// 「商品登録通知メール送信用アウトバウンドポート」のインターフェースを表します。
//
// 通知は best-effort で、送信失敗は登録結果に影響しない（usecase 側で
// warn ログにとどめる）。
type RegistrationMailerPort interface {
	SendProductRegistered(ctx context.Context, p proddom.Product) error
}

// RegistrationMailer は RegistrationMailerPort の具象実装で、
// 内部で EmailClient を利用してメール送信を行います。
type RegistrationMailer struct {
	client      EmailClient
	fromAddress string
	toAddress   string
}

// NewRegistrationMailer constructs a RegistrationMailer.
//
//   - client      : SMTP / SendGrid などの具体的な EmailClient 実装
//   - fromAddress : 送信元メールアドレス
//   - toAddress   : 通知先（カタログ管理者）メールアドレス
func NewRegistrationMailer(client EmailClient, fromAddress, toAddress string) *RegistrationMailer {
	return &RegistrationMailer{
		client:      client,
		fromAddress: strings.TrimSpace(fromAddress),
		toAddress:   strings.TrimSpace(toAddress),
	}
}

// SendProductRegistered sends a plain-text summary of the newly
// registered product.
func (m *RegistrationMailer) SendProductRegistered(ctx context.Context, p proddom.Product) error {
	if m == nil || m.client == nil {
		return fmt.Errorf("registration mailer is not configured")
	}

	subject := fmt.Sprintf("[PetShow] Product registered: %s", strings.TrimSpace(p.Name))

	var b strings.Builder
	fmt.Fprintf(&b, "A new product has been registered.\n\n")
	fmt.Fprintf(&b, "  ID       : %s\n", strings.TrimSpace(p.ID))
	fmt.Fprintf(&b, "  Name     : %s\n", strings.TrimSpace(p.Name))
	fmt.Fprintf(&b, "  Supplier : %s\n", strings.TrimSpace(p.Supplier))
	fmt.Fprintf(&b, "  Variations: %d\n", len(p.Variations))
	for i, v := range p.Variations {
		fmt.Fprintf(&b, "    [%d] %s stock=%d price=%.2f", i, v.Name, v.Stock, v.Price)
		if pr := v.ActivePromotion(); pr != nil && pr.NewPrice != nil {
			fmt.Fprintf(&b, " promo=%.2f", *pr.NewPrice)
		}
		b.WriteString("\n")
	}

	return m.client.Send(ctx, m.fromAddress, m.toAddress, subject, b.String())
}
