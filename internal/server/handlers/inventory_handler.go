package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/stockroom/internal/domain/models"
	"github.com/mamadbah2/stockroom/internal/repository/mongodb"
	"github.com/mamadbah2/stockroom/internal/service/inventory"
	"github.com/mamadbah2/stockroom/internal/service/reporting"
	"github.com/mamadbah2/stockroom/internal/validation"
)

// Reports is the reporting surface exposed over HTTP.
type Reports interface {
	Generate() models.InventoryReport
	Latest(ctx context.Context) (models.InventoryReport, error)
}

// InventoryHandler exposes the inventory operations as JSON endpoints.
type InventoryHandler struct {
	inventory inventory.Manager
	reports   Reports
	logger    *zap.Logger
}

// NewInventoryHandler constructs the HTTP handler adapter.
func NewInventoryHandler(inv inventory.Manager, reports Reports, logger *zap.Logger) *InventoryHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InventoryHandler{inventory: inv, reports: reports, logger: logger}
}

type createProductRequest struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Quantity *float64 `json:"quantity" binding:"required"`
	Price    float64  `json:"price"`
}

type adjustStockRequest struct {
	Delta *int `json:"delta" binding:"required"`
}

type saleRequest struct {
	Quantity *float64 `json:"quantity" binding:"required"`
}

// Create handles POST /products.
func (h *InventoryHandler) Create(c *gin.Context) {
	var req createProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err)
		return
	}

	quantity, res := validation.WholeQuantity(*req.Quantity)
	if !res.Valid {
		h.writeError(c, res.Err())
		return
	}

	record, err := h.inventory.AddProduct(req.ID, req.Name, quantity, req.Price)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, record)
}

// List handles GET /products.
func (h *InventoryHandler) List(c *gin.Context) {
	products := h.inventory.ListProducts()
	c.JSON(http.StatusOK, gin.H{"products": products, "count": len(products)})
}

// Get handles GET /products/:id.
func (h *InventoryHandler) Get(c *gin.Context) {
	record, err := h.inventory.GetProduct(c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, record)
}

// Delete handles DELETE /products/:id.
func (h *InventoryHandler) Delete(c *gin.Context) {
	if err := h.inventory.RemoveProduct(c.Param("id")); err != nil {
		h.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// AdjustStock handles PATCH /products/:id/stock.
func (h *InventoryHandler) AdjustStock(c *gin.Context) {
	var req adjustStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err)
		return
	}

	record, err := h.inventory.AdjustStock(c.Param("id"), *req.Delta)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, record)
}

// Sell handles POST /products/:id/sales.
func (h *InventoryHandler) Sell(c *gin.Context) {
	var req saleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err)
		return
	}

	quantity, res := validation.WholeQuantity(*req.Quantity)
	if !res.Valid {
		h.writeError(c, res.Err())
		return
	}

	record, err := h.inventory.SellProduct(c.Param("id"), quantity)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, record)
}

// Value handles GET /inventory/value.
func (h *InventoryHandler) Value(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"total_value": h.inventory.InventoryValue()})
}

// Journal handles GET /inventory/journal.
func (h *InventoryHandler) Journal(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"entries": h.inventory.Journal()})
}

// Report handles GET /inventory/report with a freshly generated report.
func (h *InventoryHandler) Report(c *gin.Context) {
	c.JSON(http.StatusOK, h.reports.Generate())
}

// LatestReport handles GET /inventory/reports/latest from the archive.
func (h *InventoryHandler) LatestReport(c *gin.Context) {
	report, err := h.reports.Latest(c.Request.Context())
	switch {
	case errors.Is(err, reporting.ErrArchiveDisabled):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
	case errors.Is(err, mongodb.ErrNoReports):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case err != nil:
		h.logger.Error("failed loading latest report", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "unable to load report"})
	default:
		c.JSON(http.StatusOK, report)
	}
}

func (h *InventoryHandler) badRequest(c *gin.Context, err error) {
	h.logger.Warn("invalid inventory payload", zap.Error(err))
	c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
}

func (h *InventoryHandler) writeError(c *gin.Context, err error) {
	var verr *models.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"error": verr.Reason, "field": verr.Field})
	case errors.Is(err, models.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, models.ErrDuplicate):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		h.logger.Error("inventory operation failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
