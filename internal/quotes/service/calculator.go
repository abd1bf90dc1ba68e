package service

import "quotedesk/internal/quotes/repository"

// LineTotal returns the extended price of one line item in cents.
func LineTotal(quantity, priceAtQuoteCents int64) int64 {
	return quantity * priceAtQuoteCents
}

// ComputeTotal sums the line totals of all items in cents. Prices are stored
// and added as integer cents so totals are exact.
func ComputeTotal(items []repository.QuoteItem) int64 {
	var total int64
	for _, item := range items {
		total += LineTotal(item.Quantity, item.PriceAtQuoteCents)
	}
	return total
}
