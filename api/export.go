package api

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"net/http"
	"time"

	"artha/database"
	"artha/middleware"
	"artha/models"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

// ExportHandler serves transaction exports.
type ExportHandler struct{}

// NewExportHandler creates an export handler.
func NewExportHandler() *ExportHandler {
	return &ExportHandler{}
}

// exportRange parses the start_date/end_date query pair and loads the
// user's transactions inside it, newest first.
func (h *ExportHandler) exportRange(c *gin.Context) ([]models.Expense, string, string, bool) {
	userID := middleware.GetCurrentUserID(c)

	startStr := c.Query("start_date")
	endStr := c.Query("end_date")
	if startStr == "" || endStr == "" {
		BadRequest(c, "start_date and end_date are required")
		return nil, "", "", false
	}

	start, err := time.ParseInLocation(dateLayout, startStr, time.Local)
	if err != nil {
		BadRequest(c, "Invalid start_date, expected format: 2006-01-02")
		return nil, "", "", false
	}
	end, err := time.ParseInLocation(dateLayout, endStr, time.Local)
	if err != nil {
		BadRequest(c, "Invalid end_date, expected format: 2006-01-02")
		return nil, "", "", false
	}
	// Include the whole end day.
	end = end.Add(24*time.Hour - time.Second)

	var expenses []models.Expense
	if err := database.DB.Where("user_id = ? AND date >= ? AND date <= ?", userID, start, end).
		Order("date DESC").Find(&expenses).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "Server error"))
		return nil, "", "", false
	}

	return expenses, startStr, endStr, true
}

// ExportCSV streams the transactions of a date range as a CSV file.
// @Summary Export transactions as CSV
// @Tags export
// @Produce text/csv
// @Security BearerAuth
// @Param start_date query string true "start date (2024-01-01)"
// @Param end_date query string true "end date (2024-12-31)"
// @Success 200 {file} file "CSV file"
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Router /api/export/csv [get]
func (h *ExportHandler) ExportCSV(c *gin.Context) {
	expenses, startStr, endStr, ok := h.exportRange(c)
	if !ok {
		return
	}

	buf := new(bytes.Buffer)
	// BOM keeps Excel happy with UTF-8 content.
	buf.WriteString("\xEF\xBB\xBF")

	writer := csv.NewWriter(buf)

	headers := []string{"ID", "Title", "Amount", "Category", "Date", "Created At"}
	if err := writer.Write(headers); err != nil {
		InternalError(c, "Failed to generate CSV")
		return
	}

	for _, expense := range expenses {
		row := []string{
			fmt.Sprintf("%d", expense.ID),
			expense.Title,
			fmt.Sprintf("%.2f", expense.Amount),
			expense.Category,
			expense.Date.Format(dateLayout),
			expense.CreatedAt.Format("2006-01-02 15:04:05"),
		}
		if err := writer.Write(row); err != nil {
			InternalError(c, "Failed to generate CSV")
			return
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		InternalError(c, "Failed to generate CSV")
		return
	}

	filename := fmt.Sprintf("transactions_%s_%s.csv", startStr, endStr)
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Header("Content-Length", fmt.Sprintf("%d", buf.Len()))

	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

// ExportJSON returns the transactions of a date range with totals.
// @Summary Export transactions as JSON
// @Tags export
// @Produce json
// @Security BearerAuth
// @Param start_date query string true "start date (2024-01-01)"
// @Param end_date query string true "end date (2024-12-31)"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Router /api/export/json [get]
func (h *ExportHandler) ExportJSON(c *gin.Context) {
	expenses, startStr, endStr, ok := h.exportRange(c)
	if !ok {
		return
	}

	var totalAmount float64
	for _, expense := range expenses {
		totalAmount += expense.Amount
	}

	OK(c, gin.H{
		"start_date":   startStr,
		"end_date":     endStr,
		"total_count":  len(expenses),
		"total_amount": totalAmount,
		"expenses":     expenses,
	})
}

// ExportExcel streams the transactions of a date range as a styled
// spreadsheet with a closing totals row.
// @Summary Export transactions as Excel
// @Tags export
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security BearerAuth
// @Param start_date query string true "start date (2024-01-01)"
// @Param end_date query string true "end date (2024-12-31)"
// @Success 200 {file} file "Excel file"
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Router /api/export/excel [get]
func (h *ExportHandler) ExportExcel(c *gin.Context) {
	expenses, startStr, endStr, ok := h.exportRange(c)
	if !ok {
		return
	}

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Transactions"
	f.SetSheetName("Sheet1", sheetName)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 12, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4F81BD"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
		},
	})

	dataStyle, _ := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
		},
	})

	f.SetColWidth(sheetName, "A", "A", 10)
	f.SetColWidth(sheetName, "B", "B", 30)
	f.SetColWidth(sheetName, "C", "C", 12)
	f.SetColWidth(sheetName, "D", "D", 20)
	f.SetColWidth(sheetName, "E", "E", 15)
	f.SetColWidth(sheetName, "F", "F", 20)

	headers := []string{"ID", "Title", "Amount", "Category", "Date", "Created At"}
	for i, header := range headers {
		cell := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(sheetName, cell, header)
		f.SetCellStyle(sheetName, cell, cell, headerStyle)
	}

	var totalAmount float64
	for i, expense := range expenses {
		row := i + 2
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), expense.ID)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), expense.Title)
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), expense.Amount)
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), expense.Category)
		f.SetCellValue(sheetName, fmt.Sprintf("E%d", row), expense.Date.Format(dateLayout))
		f.SetCellValue(sheetName, fmt.Sprintf("F%d", row), expense.CreatedAt.Format("2006-01-02 15:04:05"))

		f.SetCellStyle(sheetName, fmt.Sprintf("A%d", row), fmt.Sprintf("F%d", row), dataStyle)
		totalAmount += expense.Amount
	}

	summaryRow := len(expenses) + 2
	summaryStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"FFC000"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
		},
	})

	f.SetCellValue(sheetName, fmt.Sprintf("A%d", summaryRow), "Total")
	f.MergeCell(sheetName, fmt.Sprintf("A%d", summaryRow), fmt.Sprintf("B%d", summaryRow))
	f.SetCellValue(sheetName, fmt.Sprintf("C%d", summaryRow), totalAmount)
	f.SetCellValue(sheetName, fmt.Sprintf("D%d", summaryRow), fmt.Sprintf("%d records", len(expenses)))
	f.MergeCell(sheetName, fmt.Sprintf("D%d", summaryRow), fmt.Sprintf("F%d", summaryRow))
	f.SetCellStyle(sheetName, fmt.Sprintf("A%d", summaryRow), fmt.Sprintf("F%d", summaryRow), summaryStyle)

	filename := fmt.Sprintf("transactions_%s_%s.xlsx", startStr, endStr)
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))

	if err := f.Write(c.Writer); err != nil {
		InternalError(c, "Failed to generate Excel file")
		return
	}
}
