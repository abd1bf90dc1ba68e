package render

import (
	"encoding/xml"
	"fmt"

	"quotedesk/internal/quotes/repository"
)

type xmlQuote struct {
	XMLName       xml.Name  `xml:"quote"`
	ID            string    `xml:"id"`
	CustomerName  string    `xml:"customer>name"`
	CustomerEmail string    `xml:"customer>email,omitempty"`
	CustomerPhone string    `xml:"customer>phone,omitempty"`
	Total         string    `xml:"total"`
	CreatedAt     string    `xml:"createdAt"`
	UpdatedAt     string    `xml:"updatedAt"`
	Items         []xmlItem `xml:"items>item"`
}

type xmlItem struct {
	ProductID     string `xml:"productId,attr"`
	ProductName   string `xml:"name"`
	UnitOfMeasure string `xml:"unit"`
	Quantity      int64  `xml:"quantity"`
	Price         string `xml:"price"`
	LineTotal     string `xml:"lineTotal"`
}

// RenderXML produces a machine-readable XML document for the quote. Amounts
// are formatted as decimal strings so consumers never see raw cents.
func RenderXML(quote *repository.Quote, items []repository.ResolvedItem) ([]byte, error) {
	doc := xmlQuote{
		ID:           quote.ID.String(),
		CustomerName: quote.CustomerName,
		Total:        formatCents(quote.TotalCents),
		CreatedAt:    quote.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		UpdatedAt:    quote.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
	if quote.CustomerEmail != nil {
		doc.CustomerEmail = *quote.CustomerEmail
	}
	if quote.CustomerPhone != nil {
		doc.CustomerPhone = *quote.CustomerPhone
	}

	doc.Items = make([]xmlItem, len(items))
	for i, it := range items {
		doc.Items[i] = xmlItem{
			ProductID:     it.ProductID.String(),
			ProductName:   it.ProductName,
			UnitOfMeasure: it.UnitOfMeasure,
			Quantity:      it.Quantity,
			Price:         formatCents(it.PriceAtQuoteCents),
			LineTotal:     formatCents(it.Quantity * it.PriceAtQuoteCents),
		}
	}

	out, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal quote xml: %w", err)
	}
	return append([]byte(xml.Header), out...), nil
}
