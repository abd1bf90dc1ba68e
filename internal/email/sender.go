// Package email delivers transactional mail over the configured SMTP server.
package email

import "context"

// Attachment is a file attached to an outgoing email.
type Attachment struct {
	FileName string
	Content  []byte
}

// Sender delivers the application's transactional emails.
type Sender interface {
	// SendQuoteEmail sends the customer a link to their quote, optionally
	// with the rendered PDF attached.
	SendQuoteEmail(ctx context.Context, toEmail, customerName, quoteURL string, totalCents int64, attachments ...Attachment) error
}
