package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/apexstock/apex-stock-api/internal/middleware"
	"github.com/apexstock/apex-stock-api/internal/models"
	"github.com/apexstock/apex-stock-api/internal/services"
)

type InventoryHandler struct {
	itemService *services.ItemService
}

func NewInventoryHandler(itemService *services.ItemService) *InventoryHandler {
	return &InventoryHandler{itemService: itemService}
}

// @Summary List Items
// @Description Get all inventory items, optionally filtered by category
// @Tags Inventory
// @Produce json
// @Param category query string false "Filter by category"
// @Success 200 {array} models.ItemResponse
// @Security BearerAuth
// @Router /inventory [get]
func (h *InventoryHandler) Index(c *gin.Context) {
	items, err := h.itemService.List(c.Request.Context(), c.Query("category"))
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

// @Summary Get Item
// @Description Get a single inventory item by ID
// @Tags Inventory
// @Produce json
// @Param item_id path int true "Item ID"
// @Success 200 {object} models.ItemResponse
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /inventory/{item_id} [get]
func (h *InventoryHandler) Show(c *gin.Context) {
	id, ok := parseID(c, "item_id")
	if !ok {
		return
	}

	item, err := h.itemService.FindByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, item.ToResponse())
}

type CreateItemRequest struct {
	Name         string   `json:"name"`
	Category     string   `json:"category"`
	Quantity     *int     `json:"quantity"`
	Price        *float64 `json:"price"`
	ReorderLevel *int     `json:"reorder_level"`
	SupplierID   *uint    `json:"supplier_id"`
}

// @Summary Create Item
// @Description Create a new inventory item
// @Tags Inventory
// @Accept json
// @Produce json
// @Param request body CreateItemRequest true "Item Data"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Security BearerAuth
// @Router /inventory [post]
func (h *InventoryHandler) Create(c *gin.Context) {
	var req CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "kind": "validation_failed"})
		return
	}

	item, err := h.itemService.Create(c.Request.Context(), services.CreateItemInput{
		Name:         req.Name,
		Category:     req.Category,
		Quantity:     req.Quantity,
		Price:        req.Price,
		ReorderLevel: req.ReorderLevel,
		SupplierID:   req.SupplierID,
	}, middleware.GetUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Item created successfully",
		"item":    item.ToResponse(),
	})
}

// @Summary Update Item
// @Description Update an item. Only the supplied fields change; supplier_id set to null clears the supplier.
// @Tags Inventory
// @Accept json
// @Produce json
// @Param item_id path int true "Item ID"
// @Param request body map[string]interface{} true "Item Fields"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /inventory/{item_id} [put]
func (h *InventoryHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "item_id")
	if !ok {
		return
	}

	// Bound as a map so an absent supplier_id and an explicit null are
	// distinguishable: absent keeps the link, null clears it.
	var req map[string]interface{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "kind": "validation_failed"})
		return
	}

	var in services.UpdateItemInput
	if v, ok := req["name"].(string); ok {
		in.Name = &v
	}
	if v, ok := req["category"].(string); ok {
		in.Category = &v
	}
	if v, ok := req["quantity"].(float64); ok {
		q := int(v)
		in.Quantity = &q
	}
	if v, ok := req["price"].(float64); ok {
		in.Price = &v
	}
	if v, ok := req["reorder_level"].(float64); ok {
		r := int(v)
		in.ReorderLevel = &r
	}
	if raw, present := req["supplier_id"]; present {
		var supplierID *uint
		if v, ok := raw.(float64); ok {
			id := uint(v)
			supplierID = &id
		}
		in.SupplierID = &supplierID
	}

	item, err := h.itemService.Update(c.Request.Context(), id, in, middleware.GetUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Item updated successfully",
		"item":    item.ToResponse(),
	})
}

// @Summary Delete Item
// @Description Delete an inventory item
// @Tags Inventory
// @Produce json
// @Param item_id path int true "Item ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /inventory/{item_id} [delete]
func (h *InventoryHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "item_id")
	if !ok {
		return
	}

	if err := h.itemService.Delete(c.Request.Context(), id, middleware.GetUserID(c)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Item deleted successfully"})
}

// @Summary Low Stock Items
// @Description Get items at or below their reorder level
// @Tags Inventory
// @Produce json
// @Success 200 {array} models.ItemResponse
// @Security BearerAuth
// @Router /inventory/low-stock [get]
func (h *InventoryHandler) LowStock(c *gin.Context) {
	items, err := h.itemService.ListLowStock(c.Request.Context())
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

// @Summary Inventory Stats
// @Description Get inventory statistics for the dashboard
// @Tags Inventory
// @Produce json
// @Success 200 {object} models.InventoryStats
// @Security BearerAuth
// @Router /inventory/stats [get]
func (h *InventoryHandler) Stats(c *gin.Context) {
	stats, err := h.itemService.Stats(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
