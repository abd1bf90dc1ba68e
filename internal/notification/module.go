// Package notification provides event handlers for sending notifications in
// response to domain events. Domain modules publish events and never touch
// email providers or templates directly.
package notification

import (
	"context"
	"fmt"
	"io"

	"quotedesk/internal/email"
	"quotedesk/internal/events"
	"quotedesk/internal/exports/render"
	"quotedesk/internal/storage"
	"quotedesk/platform/logger"

	"github.com/google/uuid"
)

// Config provides the settings the notification handlers need.
type Config interface {
	GetAppBaseURL() string
}

// Module subscribes to domain events and dispatches emails.
type Module struct {
	sender   email.Sender
	cfg      Config
	log      *logger.Logger
	artifact storage.Service
	bucket   string
}

// New creates the notification module. sender may be nil when email is
// disabled; events are then logged and dropped.
func New(sender email.Sender, cfg Config, log *logger.Logger) *Module {
	return &Module{sender: sender, cfg: cfg, log: log}
}

// SetArtifactStore enables attaching the prerendered PDF to quote emails.
func (m *Module) SetArtifactStore(artifact storage.Service, bucket string) {
	m.artifact = artifact
	m.bucket = bucket
}

// Subscribe registers the module's event handlers on the bus.
func (m *Module) Subscribe(bus events.Bus) {
	bus.Subscribe(events.QuoteSent{}.EventName(), events.HandlerFunc(m.handleQuoteSent))
}

func (m *Module) handleQuoteSent(ctx context.Context, event events.Event) error {
	e, ok := event.(events.QuoteSent)
	if !ok {
		return nil
	}

	if m.sender == nil {
		m.log.Info("email disabled, dropping quote notification", "quoteId", e.QuoteID)
		return nil
	}

	quoteURL := fmt.Sprintf("%s/q/%s", m.cfg.GetAppBaseURL(), e.PublicToken)
	attachments := m.loadPDFAttachment(ctx, e.QuoteID)

	if err := m.sender.SendQuoteEmail(ctx, e.CustomerEmail, e.CustomerName, quoteURL, e.TotalCents, attachments...); err != nil {
		m.log.Error("failed to send quote email", "quoteId", e.QuoteID, "error", err)
		return err
	}

	m.log.Info("quote email sent", "quoteId", e.QuoteID, "attached", len(attachments) > 0)
	return nil
}

// loadPDFAttachment fetches the prerendered PDF if the artifact store has
// one. The email goes out either way; the attachment is best effort.
func (m *Module) loadPDFAttachment(ctx context.Context, quoteID uuid.UUID) []email.Attachment {
	if m.artifact == nil {
		return nil
	}

	key := render.ArtifactKey(quoteID)
	exists, err := m.artifact.StatObject(ctx, m.bucket, key)
	if err != nil || !exists {
		return nil
	}

	obj, err := m.artifact.GetObject(ctx, m.bucket, key)
	if err != nil {
		return nil
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		m.log.Warn("failed to read quote pdf for attachment", "quoteId", quoteID, "error", err)
		return nil
	}

	return []email.Attachment{{FileName: fmt.Sprintf("quote-%s.pdf", quoteID), Content: data}}
}
