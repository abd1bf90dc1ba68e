package notification

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"quotedesk/internal/email"
	"quotedesk/internal/events"
	"quotedesk/internal/exports/render"
	"quotedesk/platform/logger"

	"github.com/google/uuid"
)

type testNotificationConfig struct{}

func (testNotificationConfig) GetAppBaseURL() string { return "https://app.example.com" }

type testSender struct {
	calls       int
	toEmail     string
	quoteURL    string
	total       int64
	attachments []email.Attachment
}

func (s *testSender) SendQuoteEmail(_ context.Context, toEmail, _ string, quoteURL string, totalCents int64, attachments ...email.Attachment) error {
	s.calls++
	s.toEmail = toEmail
	s.quoteURL = quoteURL
	s.total = totalCents
	s.attachments = attachments
	return nil
}

// testArtifactStore is an in-memory storage.Service holding fixed objects.
type testArtifactStore struct {
	objects map[string][]byte
}

func (s *testArtifactStore) EnsureBucketExists(context.Context, string) error { return nil }

func (s *testArtifactStore) PutObject(_ context.Context, _, key, _ string, reader io.Reader, _ int64) error {
	data, err := io.ReadAll(reader)
	if err != nil {
		return err
	}
	s.objects[key] = data
	return nil
}

func (s *testArtifactStore) GetObject(_ context.Context, _, key string) (io.ReadCloser, error) {
	return io.NopCloser(bytes.NewReader(s.objects[key])), nil
}

func (s *testArtifactStore) DeleteObject(_ context.Context, _, key string) error {
	delete(s.objects, key)
	return nil
}

func (s *testArtifactStore) StatObject(_ context.Context, _, key string) (bool, error) {
	_, ok := s.objects[key]
	return ok, nil
}

func TestQuoteSentDispatchesEmail(t *testing.T) {
	sender := &testSender{}
	bus := events.NewInMemoryBus(logger.New("development"))

	m := New(sender, testNotificationConfig{}, logger.New("development"))
	m.Subscribe(bus)

	err := bus.PublishSync(context.Background(), events.QuoteSent{
		BaseEvent:     events.NewBaseEvent(),
		QuoteID:       uuid.New(),
		OwnerID:       uuid.New(),
		CustomerName:  "Acme Corp",
		CustomerEmail: "buyer@example.com",
		PublicToken:   "tok123",
		TotalCents:    2600,
	})
	if err != nil {
		t.Fatalf("PublishSync failed: %v", err)
	}

	if sender.calls != 1 {
		t.Fatalf("expected 1 email, got %d", sender.calls)
	}
	if sender.toEmail != "buyer@example.com" {
		t.Fatalf("toEmail = %q", sender.toEmail)
	}
	if !strings.HasSuffix(sender.quoteURL, "/q/tok123") {
		t.Fatalf("quoteURL = %q, want public link", sender.quoteURL)
	}
	if sender.total != 2600 {
		t.Fatalf("totalCents = %d, want 2600", sender.total)
	}
}

func TestQuoteSentAttachesPrerenderedPDF(t *testing.T) {
	sender := &testSender{}
	bus := events.NewInMemoryBus(logger.New("development"))
	quoteID := uuid.New()

	store := &testArtifactStore{objects: map[string][]byte{
		render.ArtifactKey(quoteID): []byte("%PDF-1.4 fake"),
	}}

	m := New(sender, testNotificationConfig{}, logger.New("development"))
	m.SetArtifactStore(store, "quote-pdfs")
	m.Subscribe(bus)

	err := bus.PublishSync(context.Background(), events.QuoteSent{
		BaseEvent:     events.NewBaseEvent(),
		QuoteID:       quoteID,
		OwnerID:       uuid.New(),
		CustomerName:  "Acme Corp",
		CustomerEmail: "buyer@example.com",
		PublicToken:   "tok123",
		TotalCents:    2600,
	})
	if err != nil {
		t.Fatalf("PublishSync failed: %v", err)
	}

	if len(sender.attachments) != 1 {
		t.Fatalf("expected 1 attachment, got %d", len(sender.attachments))
	}
	if !strings.HasSuffix(sender.attachments[0].FileName, ".pdf") {
		t.Fatalf("attachment name = %q", sender.attachments[0].FileName)
	}
}

func TestQuoteSentWithoutArtifactSendsLinkOnly(t *testing.T) {
	sender := &testSender{}
	bus := events.NewInMemoryBus(logger.New("development"))

	store := &testArtifactStore{objects: map[string][]byte{}}

	m := New(sender, testNotificationConfig{}, logger.New("development"))
	m.SetArtifactStore(store, "quote-pdfs")
	m.Subscribe(bus)

	err := bus.PublishSync(context.Background(), events.QuoteSent{
		BaseEvent:     events.NewBaseEvent(),
		QuoteID:       uuid.New(),
		CustomerName:  "Acme Corp",
		CustomerEmail: "buyer@example.com",
		PublicToken:   "tok123",
	})
	if err != nil {
		t.Fatalf("PublishSync failed: %v", err)
	}

	if sender.calls != 1 {
		t.Fatalf("expected the email to go out without an attachment, calls = %d", sender.calls)
	}
	if len(sender.attachments) != 0 {
		t.Fatalf("expected no attachments, got %d", len(sender.attachments))
	}
}

func TestQuoteSentWithoutSenderIsDropped(t *testing.T) {
	bus := events.NewInMemoryBus(logger.New("development"))

	m := New(nil, testNotificationConfig{}, logger.New("development"))
	m.Subscribe(bus)

	err := bus.PublishSync(context.Background(), events.QuoteSent{
		BaseEvent:     events.NewBaseEvent(),
		QuoteID:       uuid.New(),
		CustomerEmail: "buyer@example.com",
	})
	if err != nil {
		t.Fatalf("PublishSync should not fail without a sender: %v", err)
	}
}

func TestOtherEventsAreIgnored(t *testing.T) {
	sender := &testSender{}
	bus := events.NewInMemoryBus(logger.New("development"))

	m := New(sender, testNotificationConfig{}, logger.New("development"))
	m.Subscribe(bus)

	err := bus.PublishSync(context.Background(), events.QuoteCreated{
		BaseEvent: events.NewBaseEvent(),
		QuoteID:   uuid.New(),
		OwnerID:   uuid.New(),
	})
	if err != nil {
		t.Fatalf("PublishSync failed: %v", err)
	}
	if sender.calls != 0 {
		t.Fatalf("QuoteCreated must not send email, got %d calls", sender.calls)
	}
}
