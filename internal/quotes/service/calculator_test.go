package service

import (
	"testing"

	"quotedesk/internal/quotes/repository"
)

func TestLineTotal(t *testing.T) {
	tests := []struct {
		name     string
		quantity int64
		price    int64
		want     int64
	}{
		{"single unit", 1, 500, 500},
		{"multiple units", 2, 1050, 2100},
		{"zero price", 3, 0, 0},
		{"large quantity", 1000, 999, 999000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := LineTotal(tt.quantity, tt.price); got != tt.want {
				t.Fatalf("LineTotal(%d, %d) = %d, want %d", tt.quantity, tt.price, got, tt.want)
			}
		})
	}
}

func TestComputeTotal(t *testing.T) {
	items := []repository.QuoteItem{
		{Quantity: 2, PriceAtQuoteCents: 1050},
		{Quantity: 1, PriceAtQuoteCents: 500},
	}
	if got := ComputeTotal(items); got != 2600 {
		t.Fatalf("ComputeTotal = %d, want 2600", got)
	}
}

func TestComputeTotalSingleItem(t *testing.T) {
	items := []repository.QuoteItem{
		{Quantity: 1, PriceAtQuoteCents: 1050},
	}
	if got := ComputeTotal(items); got != 1050 {
		t.Fatalf("ComputeTotal = %d, want 1050", got)
	}
}

func TestComputeTotalEmpty(t *testing.T) {
	if got := ComputeTotal(nil); got != 0 {
		t.Fatalf("ComputeTotal(nil) = %d, want 0", got)
	}
}

// Fractional-cent drift is impossible because intermediate values never
// leave integer cents. 0.1+0.2 style float artifacts would show up here
// if the calculation ever round-tripped through float64.
func TestComputeTotalExactness(t *testing.T) {
	items := []repository.QuoteItem{
		{Quantity: 3, PriceAtQuoteCents: 10},
		{Quantity: 3, PriceAtQuoteCents: 20},
	}
	if got := ComputeTotal(items); got != 90 {
		t.Fatalf("ComputeTotal = %d, want 90", got)
	}
}
