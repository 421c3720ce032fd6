package mailer

import (
	"github.com/pearlbistro/ordering-api/pkg/logger"
)

// DevMailer prints mail to the log instead of sending it.
type DevMailer struct{}

func NewDevMailer() *DevMailer {
	return &DevMailer{}
}

func (d *DevMailer) SendOrderConfirmation(toEmail, toName, transactionID string, amount float64, currency string) error {
	logger.Info("📧 [DEV MAIL] Order Confirmation",
		"to", toEmail,
		"name", toName,
		"transaction_id", transactionID,
		"amount", amount,
		"currency", currency,
	)
	return nil
}
