package notify

import (
	"bytes"
	"context"
	"fmt"
	"html/template"

	"shop-service/internal/config"
	"shop-service/internal/domain"

	"gopkg.in/gomail.v2"
)

type Mailer interface {
	SendOrderConfirmation(ctx context.Context, order *domain.Order, customer domain.Identity) error
}

var emailTmpl = template.Must(template.New("order_confirmation").Parse(`<html>
<body>
<h2>Thank you for your order, {{.Customer.Username}}!</h2>
<p>Your order <strong>#{{.Order.ID}}</strong> has been received.</p>
<table>
{{range .Order.Items}}<tr>
  <td>{{if .Product}}{{.Product.Name}}{{else}}Product #{{.ProductID}}{{end}}</td>
  <td>x{{.Quantity}}</td>
  <td>${{.UnitPrice.StringFixed 2}}</td>
</tr>{{end}}
</table>
<p><strong>Total: ${{.Order.TotalAmount.StringFixed 2}}</strong></p>
<p>Shipping to: {{.Order.ShippingAddress}}</p>
</body>
</html>`))

// SMTPMailer sends the order confirmation. NewSMTPMailer returns nil when no
// password is configured, and emails are skipped.
type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTPMailer(cfg config.SMTP) *SMTPMailer {
	if cfg.Password == "" {
		return nil
	}
	return &SMTPMailer{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
	}
}

func (m *SMTPMailer) SendOrderConfirmation(ctx context.Context, order *domain.Order, customer domain.Identity) error {
	var html bytes.Buffer
	err := emailTmpl.Execute(&html, struct {
		Order    *domain.Order
		Customer domain.Identity
	}{order, customer})
	if err != nil {
		return fmt.Errorf("render email: %w", err)
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", customer.Email)
	msg.SetHeader("Subject", fmt.Sprintf("Order Confirmation - Order #%d", order.ID))
	msg.SetBody("text/plain", fmt.Sprintf("Thank you for your order #%d. Total: $%s",
		order.ID, order.TotalAmount.StringFixed(2)))
	msg.AddAlternative("text/html", html.String())

	// gomail dials without a deadline; the context caps how long a stalled
	// SMTP server can hold the send.
	done := make(chan error, 1)
	go func() { done <- m.dialer.DialAndSend(msg) }()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

var _ Mailer = (*SMTPMailer)(nil)
