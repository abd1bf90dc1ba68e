package email

import (
	"strings"
	"testing"
)

func TestRenderQuoteSentTemplate(t *testing.T) {
	content, err := renderEmailTemplate("quote_sent.html", quoteSentEmailData{
		baseEmailData: baseEmailData{
			Title:    "Your quote is ready",
			Heading:  "Your quote is ready",
			CTALabel: "View quote",
			CTAURL:   "https://app.example.com/q/tok123",
		},
		CustomerName:   "Acme Corp",
		TotalFormatted: "26.00",
	})
	if err != nil {
		t.Fatalf("renderEmailTemplate failed: %v", err)
	}

	for _, want := range []string{"Acme Corp", "26.00", "https://app.example.com/q/tok123", "View quote"} {
		if !strings.Contains(content, want) {
			t.Fatalf("rendered email missing %q", want)
		}
	}
}

func TestFormatCurrency(t *testing.T) {
	tests := []struct {
		cents int64
		want  string
	}{
		{2600, "26.00"},
		{1050, "10.50"},
		{5, "0.05"},
		{0, "0.00"},
	}
	for _, tt := range tests {
		if got := formatCurrency(tt.cents); got != tt.want {
			t.Fatalf("formatCurrency(%d) = %q, want %q", tt.cents, got, tt.want)
		}
	}
}
