package reports

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/sricodings/balashop/internal/inventory"
	"github.com/sricodings/balashop/internal/sales"
	"github.com/sricodings/balashop/pkg/db/models"
	"github.com/sricodings/balashop/pkg/money"
)

const (
	pageBreakY   = 700
	topMarginY   = 50
	rowHeight    = 20
	stockRowStep = 15
	maxNameChars = 35
)

func rupees(cents int64) string {
	return "Rs. " + money.FormatCents(cents)
}

func newDoc() *gofpdf.Fpdf {
	doc := gofpdf.New("P", "pt", "A4", "")
	doc.SetAutoPageBreak(false, 0)
	doc.AddPage()
	return doc
}

type dailyRow struct {
	Time    string
	Product string
	Qty     string
	Amount  string
}

func dailyTableRows(entries []sales.LedgerEntry) []dailyRow {
	rows := make([]dailyRow, 0, len(entries))
	for _, entry := range entries {
		rows = append(rows, dailyRow{
			Time:    entry.SaleDate.Format("15:04:05"),
			Product: entry.DisplayName(),
			Qty:     fmt.Sprintf("%d", entry.Quantity),
			Amount:  rupees(entry.TotalAmountCents),
		})
	}
	return rows
}

// BuildDailySalesReport renders the day's ledger into a PDF.
func BuildDailySalesReport(date time.Time, entries []sales.LedgerEntry) ([]byte, error) {
	doc := newDoc()

	doc.SetFont("Helvetica", "B", 20)
	doc.CellFormat(0, 30, fmt.Sprintf("Daily Sales Report - %s", date.Format("Mon Jan 2 2006")), "", 1, "C", false, 0, "")

	var totalRevenue, totalProfit int64
	for _, entry := range entries {
		totalRevenue += entry.TotalAmountCents
		totalProfit += entry.ProfitCents
	}

	doc.SetFont("Helvetica", "", 12)
	doc.SetXY(50, 90)
	doc.CellFormat(0, 16, fmt.Sprintf("Total Sales: %d", len(entries)), "", 1, "L", false, 0, "")
	doc.SetX(50)
	doc.CellFormat(0, 16, "Total Revenue: "+rupees(totalRevenue), "", 1, "L", false, 0, "")
	doc.SetX(50)
	doc.CellFormat(0, 16, "Total Profit: "+rupees(totalProfit), "", 1, "L", false, 0, "")

	y := float64(200)
	doc.SetFont("Helvetica", "B", 12)
	doc.Text(50, y, "Time")
	doc.Text(150, y, "Product")
	doc.Text(350, y, "Qty")
	doc.Text(400, y, "Amount")
	doc.SetFont("Helvetica", "", 12)
	y += rowHeight

	for _, row := range dailyTableRows(entries) {
		if y > pageBreakY {
			doc.AddPage()
			y = topMarginY
		}
		doc.Text(50, y, row.Time)
		doc.Text(150, y, row.Product)
		doc.Text(350, y, row.Qty)
		doc.Text(400, y, row.Amount)
		y += rowHeight
	}

	return render(doc)
}

func lowStockLines(products []models.Product) []string {
	var lines []string
	for _, p := range products {
		if p.StockQuantity >= inventory.LowStockThreshold {
			continue
		}
		location := "No Location"
		if p.LocationInShop != nil && *p.LocationInShop != "" {
			location = *p.LocationInShop
		}
		lines = append(lines, fmt.Sprintf("[%d] %s - %s", p.StockQuantity, p.Name, location))
	}
	return lines
}

type stockRow struct {
	ID    string
	Name  string
	Stock string
	Cost  string
	Value string
}

func stockTableRows(products []models.Product) []stockRow {
	rows := make([]stockRow, 0, len(products))
	for _, p := range products {
		valueCents := int64(p.StockQuantity) * p.PriceCostCents
		rows = append(rows, stockRow{
			ID:    fmt.Sprintf("%d", p.ID),
			Name:  truncate(p.Name, maxNameChars),
			Stock: fmt.Sprintf("%d", p.StockQuantity),
			Cost:  rupees(p.PriceCostCents),
			Value: rupees(valueCents),
		})
	}
	return rows
}

// BuildStockReport renders the full inventory, lowest stock first, with a
// low-stock alert section up top.
func BuildStockReport(now time.Time, products []models.Product) ([]byte, error) {
	doc := newDoc()

	doc.SetFont("Helvetica", "B", 20)
	doc.CellFormat(0, 30, fmt.Sprintf("Monthly Stock Report - %s", now.Format("Mon Jan 2 2006")), "", 1, "C", false, 0, "")

	y := float64(90)

	alerts := lowStockLines(products)
	if len(alerts) > 0 {
		doc.SetTextColor(200, 0, 0)
		doc.SetFont("Helvetica", "BU", 14)
		doc.Text(50, y, "LOW STOCK ALERTS")
		doc.SetTextColor(0, 0, 0)
		doc.SetFont("Helvetica", "", 10)
		y += rowHeight
		for _, line := range alerts {
			if y > pageBreakY {
				doc.AddPage()
				y = topMarginY
			}
			doc.Text(50, y, line)
			y += stockRowStep
		}
		y += stockRowStep
	}

	doc.SetFont("Helvetica", "U", 14)
	doc.Text(50, y, "Full Inventory Status")
	y += rowHeight

	doc.SetFont("Helvetica", "B", 10)
	doc.Text(50, y, "ID")
	doc.Text(80, y, "Name")
	doc.Text(300, y, "Stock")
	doc.Text(350, y, "Cost")
	doc.Text(400, y, "Value")
	doc.SetFont("Helvetica", "", 10)
	y += stockRowStep

	for _, row := range stockTableRows(products) {
		if y > pageBreakY {
			doc.AddPage()
			y = topMarginY
		}
		doc.Text(50, y, row.ID)
		doc.Text(80, y, row.Name)
		doc.Text(300, y, row.Stock)
		doc.Text(350, y, row.Cost)
		doc.Text(400, y, row.Value)
		y += stockRowStep
	}

	return render(doc)
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}

func render(doc *gofpdf.Fpdf) ([]byte, error) {
	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("rendering pdf: %w", err)
	}
	return buf.Bytes(), nil
}
