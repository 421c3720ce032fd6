package mailer

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mailersend/mailersend-go"
)

type MailerSendClient struct {
	client  *mailersend.Mailersend
	from    mailersend.From
	enabled bool
}

func NewMailerSend(apiKey, fromName, fromEmail string) *MailerSendClient {
	m := &MailerSendClient{
		enabled: apiKey != "" && fromEmail != "",
		from: mailersend.From{
			Name:  fromName,
			Email: fromEmail,
		},
	}

	if m.enabled {
		m.client = mailersend.NewMailersend(apiKey)
	}

	return m
}

func (m *MailerSendClient) SendOrderConfirmation(toEmail, toName, transactionID string, amount float64, currency string) error {
	if !m.enabled {
		return fmt.Errorf("MailerSend not configured")
	}

	subject := "Your Pearl Bistro order is confirmed"
	html := fmt.Sprintf(`
		<h2>Thank you for your order!</h2>
		<p>Hi %s,</p>
		<p>We received your payment of <strong>%.2f %s</strong>.</p>
		<p>Transaction reference: <strong>%s</strong></p>
		<p>Your order is being prepared. See you soon at Pearl Bistro!</p>
	`, toName, amount, strings.ToUpper(currency), transactionID)

	text := fmt.Sprintf("Thank you for your order! We received your payment of %.2f %s. Transaction reference: %s",
		amount, strings.ToUpper(currency), transactionID)

	return m.sendEmail(toEmail, toName, subject, text, html)
}

func (m *MailerSendClient) sendEmail(toEmail, toName, subject, text, html string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	msg := m.client.Email.NewMessage()
	msg.SetFrom(m.from)
	msg.SetRecipients([]mailersend.Recipient{{Name: toName, Email: toEmail}})
	msg.SetSubject(subject)

	if strings.TrimSpace(text) != "" {
		msg.SetText(text)
	}
	if strings.TrimSpace(html) != "" {
		msg.SetHTML(html)
	}

	_, err := m.client.Email.Send(ctx, msg)
	return err
}
