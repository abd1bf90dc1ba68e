package render

import (
	"bytes"
	"fmt"
	"time"

	"quotedesk/internal/quotes/repository"

	"github.com/jung-kurt/gofpdf"
	qrcode "github.com/skip2/go-qrcode"
)

// PDFRenderer renders quotes into printable PDF documents.
type PDFRenderer struct {
	appBaseURL string
}

// NewPDFRenderer creates a PDF renderer. appBaseURL is used to build the
// public share link embedded as a QR code; pass "" to omit the code.
func NewPDFRenderer(appBaseURL string) *PDFRenderer {
	return &PDFRenderer{appBaseURL: appBaseURL}
}

// Render produces a PDF document for the quote and its resolved items.
func (r *PDFRenderer) Render(quote *repository.Quote, items []repository.ResolvedItem) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Quote", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, "Quote")
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 6, fmt.Sprintf("No. %s", quote.ID))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Date: %s", quote.CreatedAt.Format("2006-01-02")))
	pdf.Ln(6)

	pdf.Cell(0, 6, fmt.Sprintf("Customer: %s", quote.CustomerName))
	pdf.Ln(6)
	if quote.CustomerEmail != nil && *quote.CustomerEmail != "" {
		pdf.Cell(0, 6, fmt.Sprintf("Email: %s", *quote.CustomerEmail))
		pdf.Ln(6)
	}
	if quote.CustomerPhone != nil && *quote.CustomerPhone != "" {
		pdf.Cell(0, 6, fmt.Sprintf("Phone: %s", *quote.CustomerPhone))
		pdf.Ln(6)
	}

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 11)
	pdf.Cell(90, 7, "Product")
	pdf.Cell(20, 7, "Unit")
	pdf.Cell(20, 7, "Qty")
	pdf.Cell(30, 7, "Price")
	pdf.Cell(30, 7, "Line total")
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "", 10)
	for _, it := range items {
		pdf.Cell(90, 6, truncate(it.ProductName, 50))
		pdf.Cell(20, 6, it.UnitOfMeasure)
		pdf.Cell(20, 6, fmt.Sprintf("%d", it.Quantity))
		pdf.Cell(30, 6, formatCents(it.PriceAtQuoteCents))
		pdf.Cell(30, 6, formatCents(it.Quantity*it.PriceAtQuoteCents))
		pdf.Ln(6)
	}

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Total: %s", formatCents(quote.TotalCents)))
	pdf.Ln(10)

	if r.appBaseURL != "" {
		if err := r.drawShareQR(pdf, quote.PublicToken); err != nil {
			return nil, err
		}
	}

	pdf.SetFont("Helvetica", "", 8)
	pdf.Cell(0, 5, fmt.Sprintf("Generated: %s", time.Now().Format(time.RFC3339)))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render quote pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *PDFRenderer) drawShareQR(pdf *gofpdf.Fpdf, publicToken string) error {
	link := fmt.Sprintf("%s/q/%s", r.appBaseURL, publicToken)
	png, err := qrcode.Encode(link, qrcode.Medium, 256)
	if err != nil {
		return fmt.Errorf("failed to encode share qr: %w", err)
	}

	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("share-qr", opts, bytes.NewReader(png))
	x := pdf.GetX()
	y := pdf.GetY()
	pdf.ImageOptions("share-qr", x, y, 25, 25, false, opts, 0, "")
	pdf.SetY(y + 27)

	pdf.SetFont("Helvetica", "", 8)
	pdf.Cell(0, 5, link)
	pdf.Ln(6)
	return nil
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-1]) + "..."
}
