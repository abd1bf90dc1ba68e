package render

import (
	"encoding/xml"
	"fmt"

	"quotedesk/internal/quotes/repository"
)

// SpreadsheetML (Excel 2003 XML) document model. Excel and LibreOffice both
// open it directly as an .xls file.

type xlsWorkbook struct {
	XMLName   xml.Name     `xml:"Workbook"`
	Xmlns     string       `xml:"xmlns,attr"`
	XmlnsSS   string       `xml:"xmlns:ss,attr"`
	Worksheet xlsWorksheet `xml:"Worksheet"`
}

type xlsWorksheet struct {
	Name  string   `xml:"ss:Name,attr"`
	Table xlsTable `xml:"Table"`
}

type xlsTable struct {
	Rows []xlsRow `xml:"Row"`
}

type xlsRow struct {
	Cells []xlsCell `xml:"Cell"`
}

type xlsCell struct {
	Data xlsData `xml:"Data"`
}

type xlsData struct {
	Type  string `xml:"ss:Type,attr"`
	Value string `xml:",chardata"`
}

func textCell(v string) xlsCell {
	return xlsCell{Data: xlsData{Type: "String", Value: v}}
}

func numberCell(v string) xlsCell {
	return xlsCell{Data: xlsData{Type: "Number", Value: v}}
}

// RenderXLS produces a spreadsheet for the quote: header rows with customer
// fields, one row per line item, and a total row.
func RenderXLS(quote *repository.Quote, items []repository.ResolvedItem) ([]byte, error) {
	rows := []xlsRow{
		{Cells: []xlsCell{textCell("Quote"), textCell(quote.ID.String())}},
		{Cells: []xlsCell{textCell("Customer"), textCell(quote.CustomerName)}},
	}
	if quote.CustomerEmail != nil && *quote.CustomerEmail != "" {
		rows = append(rows, xlsRow{Cells: []xlsCell{textCell("Email"), textCell(*quote.CustomerEmail)}})
	}
	if quote.CustomerPhone != nil && *quote.CustomerPhone != "" {
		rows = append(rows, xlsRow{Cells: []xlsCell{textCell("Phone"), textCell(*quote.CustomerPhone)}})
	}
	rows = append(rows,
		xlsRow{Cells: []xlsCell{textCell("Date"), textCell(quote.CreatedAt.Format("2006-01-02"))}},
		xlsRow{},
		xlsRow{Cells: []xlsCell{
			textCell("Product"), textCell("Unit"), textCell("Quantity"), textCell("Price"), textCell("Line total"),
		}},
	)

	for _, it := range items {
		rows = append(rows, xlsRow{Cells: []xlsCell{
			textCell(it.ProductName),
			textCell(it.UnitOfMeasure),
			numberCell(fmt.Sprintf("%d", it.Quantity)),
			numberCell(formatCents(it.PriceAtQuoteCents)),
			numberCell(formatCents(it.Quantity * it.PriceAtQuoteCents)),
		}})
	}

	rows = append(rows,
		xlsRow{},
		xlsRow{Cells: []xlsCell{
			textCell("Total"), textCell(""), textCell(""), textCell(""),
			numberCell(formatCents(quote.TotalCents)),
		}},
	)

	wb := xlsWorkbook{
		Xmlns:   "urn:schemas-microsoft-com:office:spreadsheet",
		XmlnsSS: "urn:schemas-microsoft-com:office:spreadsheet",
		Worksheet: xlsWorksheet{
			Name:  "Quote",
			Table: xlsTable{Rows: rows},
		},
	}

	out, err := xml.MarshalIndent(wb, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal quote spreadsheet: %w", err)
	}

	header := []byte(xml.Header + `<?mso-application progid="Excel.Sheet"?>` + "\n")
	return append(header, out...), nil
}
