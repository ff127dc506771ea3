package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/apexstock/apex-stock-api/internal/middleware"
	"github.com/apexstock/apex-stock-api/internal/models"
	"github.com/apexstock/apex-stock-api/internal/services"
)

type SupplierHandler struct {
	supplierService *services.SupplierService
}

func NewSupplierHandler(supplierService *services.SupplierService) *SupplierHandler {
	return &SupplierHandler{supplierService: supplierService}
}

func (h *SupplierHandler) toResponse(c *gin.Context, supplier *models.Supplier) (models.SupplierResponse, error) {
	count, err := h.supplierService.ItemsCount(c.Request.Context(), supplier.ID)
	if err != nil {
		return models.SupplierResponse{}, err
	}
	return supplier.ToResponse(count), nil
}

// @Summary List Suppliers
// @Description Get all suppliers
// @Tags Suppliers
// @Produce json
// @Success 200 {array} models.SupplierResponse
// @Security BearerAuth
// @Router /suppliers [get]
func (h *SupplierHandler) Index(c *gin.Context) {
	suppliers, err := h.supplierService.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	responses := make([]models.SupplierResponse, 0, len(suppliers))
	for i := range suppliers {
		resp, err := h.toResponse(c, &suppliers[i])
		if err != nil {
			respondError(c, err)
			return
		}
		responses = append(responses, resp)
	}
	c.JSON(http.StatusOK, responses)
}

// @Summary Get Supplier
// @Description Get a single supplier by ID
// @Tags Suppliers
// @Produce json
// @Param supplier_id path int true "Supplier ID"
// @Success 200 {object} models.SupplierResponse
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /suppliers/{supplier_id} [get]
func (h *SupplierHandler) Show(c *gin.Context) {
	id, ok := parseID(c, "supplier_id")
	if !ok {
		return
	}

	supplier, err := h.supplierService.FindByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	resp, err := h.toResponse(c, supplier)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

type CreateSupplierRequest struct {
	Name          string  `json:"name"`
	ContactPerson *string `json:"contact_person"`
	Email         *string `json:"email"`
	Phone         *string `json:"phone"`
	Address       *string `json:"address"`
}

// @Summary Create Supplier
// @Description Create a new supplier
// @Tags Suppliers
// @Accept json
// @Produce json
// @Param request body CreateSupplierRequest true "Supplier Data"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Security BearerAuth
// @Router /suppliers [post]
func (h *SupplierHandler) Create(c *gin.Context) {
	var req CreateSupplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "kind": "validation_failed"})
		return
	}

	supplier, err := h.supplierService.Create(c.Request.Context(), services.CreateSupplierInput{
		Name:          req.Name,
		ContactPerson: req.ContactPerson,
		Email:         req.Email,
		Phone:         req.Phone,
		Address:       req.Address,
	}, middleware.GetUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":  "Supplier added successfully",
		"supplier": supplier.ToResponse(0),
	})
}

type UpdateSupplierRequest struct {
	Name          *string `json:"name"`
	ContactPerson *string `json:"contact_person"`
	Email         *string `json:"email"`
	Phone         *string `json:"phone"`
	Address       *string `json:"address"`
}

// @Summary Update Supplier
// @Description Update a supplier. Only the supplied fields change.
// @Tags Suppliers
// @Accept json
// @Produce json
// @Param supplier_id path int true "Supplier ID"
// @Param request body UpdateSupplierRequest true "Supplier Fields"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /suppliers/{supplier_id} [put]
func (h *SupplierHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "supplier_id")
	if !ok {
		return
	}

	var req UpdateSupplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "kind": "validation_failed"})
		return
	}

	supplier, err := h.supplierService.Update(c.Request.Context(), id, services.UpdateSupplierInput{
		Name:          req.Name,
		ContactPerson: req.ContactPerson,
		Email:         req.Email,
		Phone:         req.Phone,
		Address:       req.Address,
	}, middleware.GetUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	resp, err := h.toResponse(c, supplier)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":  "Supplier updated successfully",
		"supplier": resp,
	})
}

// @Summary Delete Supplier
// @Description Delete a supplier. Fails with 409 while items still reference it.
// @Tags Suppliers
// @Produce json
// @Param supplier_id path int true "Supplier ID"
// @Success 200 {object} map[string]string
// @Failure 409 {object} map[string]interface{}
// @Security BearerAuth
// @Router /suppliers/{supplier_id} [delete]
func (h *SupplierHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "supplier_id")
	if !ok {
		return
	}

	if err := h.supplierService.Delete(c.Request.Context(), id, middleware.GetUserID(c)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Supplier deleted successfully"})
}

// @Summary Supplier Items
// @Description Get all items supplied by a supplier
// @Tags Suppliers
// @Produce json
// @Param supplier_id path int true "Supplier ID"
// @Success 200 {array} models.ItemResponse
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /suppliers/{supplier_id}/items [get]
func (h *SupplierHandler) Items(c *gin.Context) {
	id, ok := parseID(c, "supplier_id")
	if !ok {
		return
	}

	items, err := h.supplierService.Items(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	responses := make([]models.ItemResponse, 0, len(items))
	for i := range items {
		responses = append(responses, items[i].ToResponse())
	}
	c.JSON(http.StatusOK, responses)
}
