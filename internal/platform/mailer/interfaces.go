package mailer

// Service sends transactional mail. The order finalizer treats dispatch as
// best effort; implementations must not block indefinitely.
type Service interface {
	SendOrderConfirmation(toEmail, toName, transactionID string, amount float64, currency string) error
}
