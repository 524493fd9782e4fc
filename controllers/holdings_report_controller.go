package controllers

import (
	"bytes"
	"fmt"
	"time"

	"grocerystore/config"
	"grocerystore/models"
	"grocerystore/utils"

	"github.com/gin-gonic/gin"
	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"
	"github.com/tealeg/xlsx"
)

type holdingsRow struct {
	Username string
	Product  string
	Price    decimal.Decimal
	Quantity int
	Total    decimal.Decimal
}

// Admin report: all owned lines across clients with wallet value totals
func fetchHoldings() ([]holdingsRow, decimal.Decimal, error) {
	var lines []models.ClientToProduct
	err := config.DB.Preload("Product").Preload("Client.User").
		Order("created_at").
		Find(&lines).Error
	if err != nil {
		return nil, decimal.Zero, err
	}

	rows := make([]holdingsRow, 0, len(lines))
	grandTotal := decimal.Zero
	for _, line := range lines {
		total := line.Price.Mul(decimal.NewFromInt(int64(line.Quantity)))
		grandTotal = grandTotal.Add(total)
		rows = append(rows, holdingsRow{
			Username: line.Client.User.Username,
			Product:  line.Product.Title,
			Price:    line.Price,
			Quantity: line.Quantity,
			Total:    total,
		})
	}
	return rows, grandTotal, nil
}

// DownloadHoldingsReportExcel exports all client holdings as an Excel sheet
func DownloadHoldingsReportExcel(c *gin.Context) {
	utils.LogInfo("DownloadHoldingsReportExcel called")

	rows, grandTotal, err := fetchHoldings()
	if err != nil {
		utils.LogError("Failed to fetch holdings: %v", err)
		utils.InternalServerError(c, "Failed to fetch holdings", err.Error())
		return
	}
	utils.LogDebug("Retrieved %d holding lines for Excel report", len(rows))

	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Client Holdings")
	if err != nil {
		utils.LogError("Failed to create Excel sheet: %v", err)
		utils.InternalServerError(c, "Failed to create Excel sheet", err.Error())
		return
	}

	titleRow := sheet.AddRow()
	titleRow.AddCell().SetString("GROCERY STORE - Client Holdings Report")
	dateRow := sheet.AddRow()
	dateRow.AddCell().SetString("Generated: " + time.Now().Format("2006-01-02 15:04:05"))
	sheet.AddRow()

	headers := []string{"Client", "Product", "Unit Price", "Quantity", "Line Total"}
	headerRow := sheet.AddRow()
	for _, h := range headers {
		cell := headerRow.AddCell()
		cell.SetString(h)
		style := xlsx.NewStyle()
		font := xlsx.DefaultFont()
		font.Bold = true
		style.Font = *font
		cell.SetStyle(style)
	}

	for _, row := range rows {
		r := sheet.AddRow()
		r.AddCell().SetString(row.Username)
		r.AddCell().SetString(row.Product)
		r.AddCell().SetString(row.Price.StringFixed(2))
		r.AddCell().SetInt(row.Quantity)
		r.AddCell().SetString(row.Total.StringFixed(2))
	}

	sheet.AddRow()
	totalRow := sheet.AddRow()
	totalRow.AddCell().SetString("Grand Total")
	totalRow.AddCell().SetString("")
	totalRow.AddCell().SetString("")
	totalRow.AddCell().SetString("")
	totalRow.AddCell().SetString(grandTotal.StringFixed(2))

	var buf bytes.Buffer
	if err := file.Write(&buf); err != nil {
		utils.LogError("Failed to write Excel file: %v", err)
		utils.InternalServerError(c, "Failed to write Excel file", err.Error())
		return
	}

	filename := fmt.Sprintf("holdings-report-%s.xlsx", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(200, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
	utils.LogInfo("Holdings Excel report generated with %d lines", len(rows))
}

// DownloadHoldingsReportPDF exports all client holdings as a PDF document
func DownloadHoldingsReportPDF(c *gin.Context) {
	utils.LogInfo("DownloadHoldingsReportPDF called")

	rows, grandTotal, err := fetchHoldings()
	if err != nil {
		utils.LogError("Failed to fetch holdings: %v", err)
		utils.InternalServerError(c, "Failed to fetch holdings", err.Error())
		return
	}
	utils.LogDebug("Retrieved %d holding lines for PDF report", len(rows))

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(190, 10, "GROCERY STORE - Client Holdings Report")
	pdf.Ln(8)
	pdf.SetFont("Arial", "", 10)
	pdf.Cell(190, 8, "Generated: "+time.Now().Format("2006-01-02 15:04:05"))
	pdf.Ln(12)

	pdf.SetFont("Arial", "B", 10)
	widths := []float64{50, 60, 25, 20, 35}
	headers := []string{"Client", "Product", "Unit Price", "Qty", "Line Total"}
	for i, h := range headers {
		pdf.CellFormat(widths[i], 8, h, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 10)
	for _, row := range rows {
		pdf.CellFormat(widths[0], 8, row.Username, "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[1], 8, row.Product, "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[2], 8, row.Price.StringFixed(2), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[3], 8, fmt.Sprintf("%d", row.Quantity), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[4], 8, row.Total.StringFixed(2), "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}

	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(widths[0]+widths[1]+widths[2]+widths[3], 8, "Grand Total", "1", 0, "L", false, 0, "")
	pdf.CellFormat(widths[4], 8, grandTotal.StringFixed(2), "1", 0, "R", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		utils.LogError("Failed to write PDF file: %v", err)
		utils.InternalServerError(c, "Failed to write PDF file", err.Error())
		return
	}

	filename := fmt.Sprintf("holdings-report-%s.pdf", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(200, "application/pdf", buf.Bytes())
	utils.LogInfo("Holdings PDF report generated with %d lines", len(rows))
}
