package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/apexstock/apex-stock-api/internal/models"
	"github.com/apexstock/apex-stock-api/internal/repository"
	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"
)

// ReportService renders inventory and supplier snapshots to PDF, CSV and
// XLSX. Rendering is pure over already-fetched rows; the handler records the
// audit entry for the download.
type ReportService struct {
	items     repository.ItemRepository
	suppliers repository.SupplierRepository
}

func NewReportService(items repository.ItemRepository, suppliers repository.SupplierRepository) *ReportService {
	return &ReportService{items: items, suppliers: suppliers}
}

// Column clipping keeps long names from overflowing fixed PDF cells.
const (
	pdfNameWidth     = 28
	pdfCategoryWidth = 18
)

func clip(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-1] + "…"
}

func supplierNameOf(item *models.Item) string {
	if item.Supplier != nil {
		return item.Supplier.Name
	}
	return "N/A"
}

func orNA(v *string) string {
	if v == nil || *v == "" {
		return "N/A"
	}
	return *v
}

// GenerateInventoryPDF renders all items as a table
func (s *ReportService) GenerateInventoryPDF(ctx context.Context) (*bytes.Buffer, string, error) {
	items, err := s.items.List(ctx, "")
	if err != nil {
		return nil, "", err
	}

	pdf := gofpdf.New("P", "mm", "Letter", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 10, "Apex Stock - Inventory Report", "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(0, 8, fmt.Sprintf("Generated: %s", time.Now().Format("2006-01-02 15:04")), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	widths := []float64{15, 55, 40, 25, 25, 30}
	headers := []string{"ID", "Name", "Category", "Quantity", "Price", "Status"}

	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(128, 128, 128)
	pdf.SetTextColor(255, 255, 255)
	for i, h := range headers {
		pdf.CellFormat(widths[i], 8, h, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 9)
	pdf.SetFillColor(245, 245, 220)
	pdf.SetTextColor(0, 0, 0)
	for _, item := range items {
		status := "OK"
		if item.IsLowStock() {
			status = "Low Stock"
		}
		row := []string{
			strconv.FormatUint(uint64(item.ID), 10),
			clip(item.Name, pdfNameWidth),
			clip(item.Category, pdfCategoryWidth),
			strconv.Itoa(item.Quantity),
			fmt.Sprintf("$%.2f", item.Price),
			status,
		}
		for i, v := range row {
			pdf.CellFormat(widths[i], 7, v, "1", 0, "C", true, 0, "")
		}
		pdf.Ln(-1)
	}

	buf := new(bytes.Buffer)
	if err := pdf.Output(buf); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("inventory_report_%s.pdf", time.Now().Format("20060102"))
	return buf, filename, nil
}

// GenerateLowStockPDF renders items at or below their reorder level
func (s *ReportService) GenerateLowStockPDF(ctx context.Context) (*bytes.Buffer, string, error) {
	items, err := s.items.ListLowStock(ctx)
	if err != nil {
		return nil, "", err
	}

	pdf := gofpdf.New("P", "mm", "Letter", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 10, "Apex Stock - Low Stock Alert Report", "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(0, 8, fmt.Sprintf("Generated: %s", time.Now().Format("2006-01-02 15:04")), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	if len(items) == 0 {
		pdf.CellFormat(0, 8, "No low stock items found!", "", 1, "L", false, 0, "")
	} else {
		widths := []float64{15, 60, 30, 35, 50}
		headers := []string{"ID", "Name", "Current Qty", "Reorder Level", "Supplier"}

		pdf.SetFont("Arial", "B", 10)
		pdf.SetFillColor(204, 0, 0)
		pdf.SetTextColor(255, 255, 255)
		for i, h := range headers {
			pdf.CellFormat(widths[i], 8, h, "1", 0, "C", true, 0, "")
		}
		pdf.Ln(-1)

		pdf.SetFont("Arial", "", 9)
		pdf.SetFillColor(255, 214, 221)
		pdf.SetTextColor(0, 0, 0)
		for _, item := range items {
			row := []string{
				strconv.FormatUint(uint64(item.ID), 10),
				clip(item.Name, pdfNameWidth),
				strconv.Itoa(item.Quantity),
				strconv.Itoa(item.ReorderLevel),
				clip(supplierNameOf(&item), pdfNameWidth),
			}
			for i, v := range row {
				pdf.CellFormat(widths[i], 7, v, "1", 0, "C", true, 0, "")
			}
			pdf.Ln(-1)
		}
	}

	buf := new(bytes.Buffer)
	if err := pdf.Output(buf); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("low_stock_report_%s.pdf", time.Now().Format("20060102"))
	return buf, filename, nil
}

// GenerateInventoryCSV renders all items as CSV
func (s *ReportService) GenerateInventoryCSV(ctx context.Context) (*bytes.Buffer, string, error) {
	items, err := s.items.List(ctx, "")
	if err != nil {
		return nil, "", err
	}

	buf := new(bytes.Buffer)
	w := csv.NewWriter(buf)

	header := []string{"ID", "Name", "Category", "Quantity", "Price", "Reorder Level", "Supplier", "Status"}
	if err := w.Write(header); err != nil {
		return nil, "", err
	}

	for _, item := range items {
		status := "OK"
		if item.IsLowStock() {
			status = "Low Stock"
		}
		record := []string{
			strconv.FormatUint(uint64(item.ID), 10),
			item.Name,
			item.Category,
			strconv.Itoa(item.Quantity),
			fmt.Sprintf("%.2f", item.Price),
			strconv.Itoa(item.ReorderLevel),
			supplierNameOf(&item),
			status,
		}
		if err := w.Write(record); err != nil {
			return nil, "", err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("inventory_report_%s.csv", time.Now().Format("20060102"))
	return buf, filename, nil
}

// GenerateSuppliersCSV renders all suppliers as CSV
func (s *ReportService) GenerateSuppliersCSV(ctx context.Context) (*bytes.Buffer, string, error) {
	suppliers, err := s.suppliers.FindAll(ctx)
	if err != nil {
		return nil, "", err
	}

	buf := new(bytes.Buffer)
	w := csv.NewWriter(buf)

	header := []string{"ID", "Name", "Contact Person", "Email", "Phone", "Address", "Items Count"}
	if err := w.Write(header); err != nil {
		return nil, "", err
	}

	for _, supplier := range suppliers {
		count, err := s.suppliers.CountItems(ctx, supplier.ID)
		if err != nil {
			return nil, "", err
		}
		record := []string{
			strconv.FormatUint(uint64(supplier.ID), 10),
			supplier.Name,
			orNA(supplier.ContactPerson),
			orNA(supplier.Email),
			orNA(supplier.Phone),
			orNA(supplier.Address),
			strconv.FormatInt(count, 10),
		}
		if err := w.Write(record); err != nil {
			return nil, "", err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("suppliers_report_%s.csv", time.Now().Format("20060102"))
	return buf, filename, nil
}

// GenerateInventoryXLSX renders all items as a single-sheet workbook
func (s *ReportService) GenerateInventoryXLSX(ctx context.Context) (*bytes.Buffer, string, error) {
	items, err := s.items.List(ctx, "")
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Inventory"
	_ = f.SetSheetName("Sheet1", sheet)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E0E0E0"}, Pattern: 1},
	})

	headers := []string{"ID", "Name", "Category", "Quantity", "Price", "Reorder Level", "Supplier", "Status"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
		_ = f.SetCellStyle(sheet, cell, cell, headerStyle)
	}

	for row, item := range items {
		status := "OK"
		if item.IsLowStock() {
			status = "Low Stock"
		}
		values := []interface{}{
			item.ID, item.Name, item.Category, item.Quantity,
			item.Price, item.ReorderLevel, supplierNameOf(&item), status,
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			_ = f.SetCellValue(sheet, cell, v)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("inventory_report_%s.xlsx", time.Now().Format("20060102"))
	return buf, filename, nil
}
