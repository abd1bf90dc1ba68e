package render

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"quotedesk/internal/quotes/repository"

	"github.com/google/uuid"
)

func TestFormatCents(t *testing.T) {
	tests := []struct {
		cents int64
		want  string
	}{
		{0, "0.00"},
		{5, "0.05"},
		{50, "0.50"},
		{2600, "26.00"},
		{1050, "10.50"},
		{123456789, "1234567.89"},
		{-150, "-1.50"},
	}

	for _, tt := range tests {
		if got := formatCents(tt.cents); got != tt.want {
			t.Fatalf("formatCents(%d) = %q, want %q", tt.cents, got, tt.want)
		}
	}
}

func sampleQuote() (*repository.Quote, []repository.ResolvedItem) {
	email := "buyer@example.com"
	q := &repository.Quote{
		ID:            uuid.New(),
		OwnerID:       uuid.New(),
		CustomerName:  "Acme Corp",
		CustomerEmail: &email,
		TotalCents:    2600,
		PublicToken:   "tok123",
		CreatedAt:     time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		UpdatedAt:     time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC),
	}
	items := []repository.ResolvedItem{
		{
			QuoteItem: repository.QuoteItem{
				ID: uuid.New(), QuoteID: q.ID, ProductID: uuid.New(),
				Quantity: 2, PriceAtQuoteCents: 1050,
			},
			ProductName: "Widget", UnitOfMeasure: "UND",
		},
		{
			QuoteItem: repository.QuoteItem{
				ID: uuid.New(), QuoteID: q.ID, ProductID: uuid.New(),
				Quantity: 1, PriceAtQuoteCents: 500,
			},
			ProductName: "Gadget", UnitOfMeasure: "CAJ",
		},
	}
	return q, items
}

func TestRenderXML(t *testing.T) {
	q, items := sampleQuote()
	out, err := RenderXML(q, items)
	if err != nil {
		t.Fatalf("RenderXML failed: %v", err)
	}

	s := string(out)
	for _, want := range []string{
		"<quote>", "<name>Acme Corp</name>", "<email>buyer@example.com</email>",
		"<total>26.00</total>", "<lineTotal>21.00</lineTotal>", "<lineTotal>5.00</lineTotal>",
		"<unit>UND</unit>", "<quantity>2</quantity>",
	} {
		if !strings.Contains(s, want) {
			t.Fatalf("xml output missing %q:\n%s", want, s)
		}
	}
	if strings.Contains(s, "tok123") {
		t.Fatal("xml export must not leak the public token")
	}
	if strings.Contains(s, q.OwnerID.String()) {
		t.Fatal("xml export must not leak the owner id")
	}
}

func TestRenderXLS(t *testing.T) {
	q, items := sampleQuote()
	out, err := RenderXLS(q, items)
	if err != nil {
		t.Fatalf("RenderXLS failed: %v", err)
	}

	s := string(out)
	for _, want := range []string{
		`progid="Excel.Sheet"`, "urn:schemas-microsoft-com:office:spreadsheet",
		"Widget", "Gadget", "26.00", "10.50",
	} {
		if !strings.Contains(s, want) {
			t.Fatalf("xls output missing %q", want)
		}
	}
}

func TestRenderPDF(t *testing.T) {
	q, items := sampleQuote()
	out, err := NewPDFRenderer("https://quotes.example.com").Render(q, items)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if !bytes.HasPrefix(out, []byte("%PDF")) {
		t.Fatalf("output does not look like a pdf: %q", out[:8])
	}
}

func TestRenderPDFWithoutBaseURL(t *testing.T) {
	q, items := sampleQuote()
	out, err := NewPDFRenderer("").Render(q, items)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if len(out) == 0 {
		t.Fatal("expected pdf output")
	}
}

func TestArtifactKeyIsStable(t *testing.T) {
	id := uuid.New()
	if ArtifactKey(id) != ArtifactKey(id) {
		t.Fatal("artifact key must be deterministic")
	}
	if !strings.HasSuffix(ArtifactKey(id), ".pdf") {
		t.Fatalf("unexpected key %q", ArtifactKey(id))
	}
}
