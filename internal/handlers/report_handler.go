package handlers

import (
	"bytes"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/apexstock/apex-stock-api/internal/middleware"
	"github.com/apexstock/apex-stock-api/internal/models"
	"github.com/apexstock/apex-stock-api/internal/services"
)

const (
	contentTypePDF  = "application/pdf"
	contentTypeCSV  = "text/csv"
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

type ReportHandler struct {
	reportService *services.ReportService
	auditService  *services.AuditService
}

func NewReportHandler(reportService *services.ReportService, auditService *services.AuditService) *ReportHandler {
	return &ReportHandler{reportService: reportService, auditService: auditService}
}

// serve records the audit entry and streams the rendered report as an
// attachment. The entry is written first so a failed audit fails the request.
func (h *ReportHandler) serve(c *gin.Context, buf *bytes.Buffer, filename, contentType, details string) {
	actorID := middleware.GetUserID(c)
	if err := h.auditService.Record(c.Request.Context(), actorID, models.ActionGenerated, models.ResourceReport, nil, details); err != nil {
		respondError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, contentType, buf.Bytes())
}

// @Summary Inventory PDF Report
// @Description Generate a PDF report of all inventory items
// @Tags Reports
// @Produce application/pdf
// @Success 200 {file} binary
// @Security BearerAuth
// @Router /reports/inventory-pdf [get]
func (h *ReportHandler) InventoryPDF(c *gin.Context) {
	buf, filename, err := h.reportService.GenerateInventoryPDF(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	h.serve(c, buf, filename, contentTypePDF, "Generated inventory PDF report")
}

// @Summary Inventory CSV Report
// @Description Generate a CSV report of all inventory items
// @Tags Reports
// @Produce text/csv
// @Success 200 {file} binary
// @Security BearerAuth
// @Router /reports/inventory-csv [get]
func (h *ReportHandler) InventoryCSV(c *gin.Context) {
	buf, filename, err := h.reportService.GenerateInventoryCSV(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	h.serve(c, buf, filename, contentTypeCSV, "Generated inventory CSV report")
}

// @Summary Inventory XLSX Report
// @Description Generate an Excel report of all inventory items
// @Tags Reports
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success 200 {file} binary
// @Security BearerAuth
// @Router /reports/inventory-xlsx [get]
func (h *ReportHandler) InventoryXLSX(c *gin.Context) {
	buf, filename, err := h.reportService.GenerateInventoryXLSX(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	h.serve(c, buf, filename, contentTypeXLSX, "Generated inventory XLSX report")
}

// @Summary Low Stock PDF Report
// @Description Generate a PDF report of items at or below their reorder level
// @Tags Reports
// @Produce application/pdf
// @Success 200 {file} binary
// @Security BearerAuth
// @Router /reports/low-stock-pdf [get]
func (h *ReportHandler) LowStockPDF(c *gin.Context) {
	buf, filename, err := h.reportService.GenerateLowStockPDF(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	h.serve(c, buf, filename, contentTypePDF, "Generated low stock PDF report")
}

// @Summary Suppliers CSV Report
// @Description Generate a CSV report of all suppliers
// @Tags Reports
// @Produce text/csv
// @Success 200 {file} binary
// @Security BearerAuth
// @Router /reports/suppliers-csv [get]
func (h *ReportHandler) SuppliersCSV(c *gin.Context) {
	buf, filename, err := h.reportService.GenerateSuppliersCSV(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	h.serve(c, buf, filename, contentTypeCSV, "Generated suppliers CSV report")
}

// @Summary Activity Logs
// @Description Get recent audit entries, newest first
// @Tags Reports
// @Produce json
// @Param limit query int false "Max entries" default(20)
// @Success 200 {array} models.ActivityLogResponse
// @Security BearerAuth
// @Router /reports/activity-logs [get]
func (h *ReportHandler) ActivityLogs(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit <= 0 {
		limit = 20
	}

	logs, err := h.auditService.Recent(c.Request.Context(), limit)
	if err != nil {
		respondError(c, err)
		return
	}

	responses := make([]models.ActivityLogResponse, 0, len(logs))
	for i := range logs {
		responses = append(responses, logs[i].ToResponse())
	}
	c.JSON(http.StatusOK, responses)
}
