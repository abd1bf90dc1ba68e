package email

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"quotedesk/platform/config"

	gomail "github.com/wneessen/go-mail"
)

const subjectQuote = "Your quote is ready"

// SMTPSender implements Sender using a direct SMTP connection via go-mail.
type SMTPSender struct {
	host      string
	port      int
	username  string
	password  string
	fromName  string
	fromEmail string
}

// NewSMTPSender creates a sender from the email configuration.
func NewSMTPSender(cfg config.EmailConfig) *SMTPSender {
	return &SMTPSender{
		host:      cfg.GetSMTPHost(),
		port:      cfg.GetSMTPPort(),
		username:  cfg.GetSMTPUsername(),
		password:  cfg.GetSMTPPassword(),
		fromName:  cfg.GetEmailFromName(),
		fromEmail: cfg.GetEmailFromAddress(),
	}
}

// SendQuoteEmail sends the customer a link to their quote.
func (s *SMTPSender) SendQuoteEmail(ctx context.Context, toEmail, customerName, quoteURL string, totalCents int64, attachments ...Attachment) error {
	content, err := renderEmailTemplate("quote_sent.html", quoteSentEmailData{
		baseEmailData: baseEmailData{
			Title:    subjectQuote,
			Heading:  subjectQuote,
			CTALabel: "View quote",
			CTAURL:   quoteURL,
		},
		CustomerName:   customerName,
		TotalFormatted: formatCurrency(totalCents),
	})
	if err != nil {
		return err
	}
	return s.send(ctx, toEmail, subjectQuote, content, attachments...)
}

func (s *SMTPSender) send(ctx context.Context, toEmail, subject, htmlContent string, attachments ...Attachment) error {
	msg := gomail.NewMsg()
	if err := msg.FromFormat(s.fromName, s.fromEmail); err != nil {
		return fmt.Errorf("smtp from: %w", err)
	}
	if err := msg.To(toEmail); err != nil {
		return fmt.Errorf("smtp to: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(gomail.TypeTextHTML, htmlContent)

	for _, att := range attachments {
		msg.AttachReader(att.FileName, bytes.NewReader(att.Content))
	}

	client, err := gomail.NewClient(s.host,
		gomail.WithPort(s.port),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(s.username),
		gomail.WithPassword(s.password),
		gomail.WithTLSPortPolicy(gomail.TLSOpportunistic),
		gomail.WithTimeout(15*time.Second),
	)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}
	return nil
}

// Compile-time check that SMTPSender implements Sender.
var _ Sender = (*SMTPSender)(nil)
