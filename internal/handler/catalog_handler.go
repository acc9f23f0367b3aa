package handler

import (
	"net/http"
	"strconv"

	"pos-service/internal/service"
	"pos-service/pkg/logger"
	"pos-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// CatalogHandler exposes the catalog commands over HTTP
type CatalogHandler struct {
	catalog *service.CatalogService
}

// NewCatalogHandler creates a new CatalogHandler with the given service
func NewCatalogHandler(catalog *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

// GroupRequest defines the structure for group creation/update requests
type GroupRequest struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

// ReorderRequest defines the structure for group reorder requests
type ReorderRequest struct {
	MovedID  string `json:"moved_id"`
	TargetID string `json:"target_id"`
}

// GroupOpenRequest defines the structure for group expansion requests
type GroupOpenRequest struct {
	Open bool `json:"open"`
}

// ProductUpdateRequest defines the structure for product update requests.
// Price arrives as the raw input text; values that do not parse as a
// number leave the committed price untouched.
type ProductUpdateRequest struct {
	Name  *string `json:"name"`
	Price *string `json:"price"`
}

// MoveProductRequest defines the structure for product move requests
type MoveProductRequest struct {
	SourceGroupID   string `json:"source_group_id"`
	SourceProductID string `json:"source_product_id"`
	TargetGroupID   string `json:"target_group_id"`
	TargetProductID string `json:"target_product_id"`
}

// QuantityRequest defines the structure for cart quantity adjustments
type QuantityRequest struct {
	Delta int `json:"delta"`
}

// CustomItemRequest defines the structure for ad hoc till items
type CustomItemRequest struct {
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

// GetCatalog handles retrieving the full catalog in display order
func (h *CatalogHandler) GetCatalog(c echo.Context) error {
	return c.JSON(http.StatusOK, h.catalog.Catalog())
}

// CreateGroup handles adding a new product group
func (h *CatalogHandler) CreateGroup(c echo.Context) error {
	log := logger.FromContext(c)

	var req GroupRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}

	catalog, ok, err := h.catalog.AddGroup(req.Name, req.Color)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to save catalog"})
	}
	if !ok {
		log.Warn("Rejected group with empty name")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Group name must not be empty"})
	}

	log.Info("Group created", zap.String("name", req.Name))
	prometheus.RecordCatalogOperation("add_group")
	return c.JSON(http.StatusCreated, catalog)
}

// UpdateGroup handles renaming and recoloring a product group
func (h *CatalogHandler) UpdateGroup(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")

	var req GroupRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.String("group_id", id), zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}

	catalog, ok, err := h.catalog.RenameGroup(id, req.Name, req.Color)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to save catalog"})
	}
	if !ok {
		log.Warn("Group update rejected", zap.String("group_id", id))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Group name must not be empty"})
	}

	log.Info("Group updated", zap.String("group_id", id), zap.String("name", req.Name))
	prometheus.RecordCatalogOperation("rename_group")
	return c.JSON(http.StatusOK, catalog)
}

// DeleteGroup handles removing a product group
func (h *CatalogHandler) DeleteGroup(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")

	catalog, err := h.catalog.DeleteGroup(id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to save catalog"})
	}

	log.Info("Group deleted", zap.String("group_id", id))
	prometheus.RecordCatalogOperation("delete_group")
	return c.JSON(http.StatusOK, catalog)
}

// ReorderGroups handles moving a group to another group's display position
func (h *CatalogHandler) ReorderGroups(c echo.Context) error {
	log := logger.FromContext(c)

	var req ReorderRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}

	catalog, err := h.catalog.ReorderGroup(req.MovedID, req.TargetID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to save catalog"})
	}

	log.Info("Groups reordered",
		zap.String("moved_id", req.MovedID),
		zap.String("target_id", req.TargetID))
	prometheus.RecordCatalogOperation("reorder_group")
	return c.JSON(http.StatusOK, catalog)
}

// SetGroupOpen handles persisting a group's expansion state
func (h *CatalogHandler) SetGroupOpen(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")

	var req GroupOpenRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.String("group_id", id), zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}

	catalog, err := h.catalog.SetGroupOpen(id, req.Open)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to save catalog"})
	}
	return c.JSON(http.StatusOK, catalog)
}

// CreateProduct handles appending a placeholder product to a group
func (h *CatalogHandler) CreateProduct(c echo.Context) error {
	log := logger.FromContext(c)
	groupID := c.Param("id")

	catalog, err := h.catalog.AddProduct(groupID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to save catalog"})
	}

	log.Info("Product added", zap.String("group_id", groupID))
	prometheus.RecordCatalogOperation("add_product")
	return c.JSON(http.StatusCreated, catalog)
}

// UpdateProduct handles renaming and repricing a product
func (h *CatalogHandler) UpdateProduct(c echo.Context) error {
	log := logger.FromContext(c)
	groupID := c.Param("id")
	productID := c.Param("productId")

	var req ProductUpdateRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data",
			zap.String("group_id", groupID),
			zap.String("product_id", productID),
			zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}

	if req.Name != nil {
		if _, err := h.catalog.RenameProduct(groupID, productID, *req.Name); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to save catalog"})
		}
		prometheus.RecordCatalogOperation("rename_product")
	}
	if req.Price != nil {
		price, err := strconv.ParseFloat(*req.Price, 64)
		if err != nil {
			// Non-numeric input keeps the previous committed price.
			log.Warn("Ignoring unparsable price input",
				zap.String("product_id", productID),
				zap.String("value", *req.Price))
		} else {
			if _, err := h.catalog.SetProductPrice(groupID, productID, price); err != nil {
				return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to save catalog"})
			}
			prometheus.RecordCatalogOperation("set_price")
		}
	}

	return c.JSON(http.StatusOK, h.catalog.Catalog())
}

// DeleteProduct handles removing a product from its group
func (h *CatalogHandler) DeleteProduct(c echo.Context) error {
	log := logger.FromContext(c)
	groupID := c.Param("id")
	productID := c.Param("productId")

	catalog, err := h.catalog.DeleteProduct(groupID, productID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to save catalog"})
	}

	log.Info("Product deleted",
		zap.String("group_id", groupID),
		zap.String("product_id", productID))
	prometheus.RecordCatalogOperation("delete_product")
	return c.JSON(http.StatusOK, catalog)
}

// MoveProduct handles repositioning a product within or across groups
func (h *CatalogHandler) MoveProduct(c echo.Context) error {
	log := logger.FromContext(c)

	var req MoveProductRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}

	catalog, err := h.catalog.MoveProduct(req.SourceGroupID, req.SourceProductID, req.TargetGroupID, req.TargetProductID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to save catalog"})
	}

	log.Info("Product moved",
		zap.String("source_group_id", req.SourceGroupID),
		zap.String("target_group_id", req.TargetGroupID))
	prometheus.RecordCatalogOperation("move_product")
	return c.JSON(http.StatusOK, catalog)
}

// AdjustQuantity handles incrementing or decrementing a cart quantity
func (h *CatalogHandler) AdjustQuantity(c echo.Context) error {
	log := logger.FromContext(c)
	groupID := c.Param("id")
	productID := c.Param("productId")

	var req QuantityRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data",
			zap.String("group_id", groupID),
			zap.String("product_id", productID),
			zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}

	catalog, err := h.catalog.AdjustQuantity(groupID, productID, req.Delta)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to save catalog"})
	}

	prometheus.UpdateOrderValue(catalog.Subtotal())
	return c.JSON(http.StatusOK, catalog)
}

// ClearQuantities handles resetting every cart quantity to zero
func (h *CatalogHandler) ClearQuantities(c echo.Context) error {
	log := logger.FromContext(c)

	catalog, err := h.catalog.ClearQuantities()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to save catalog"})
	}

	log.Info("Cart cleared")
	prometheus.UpdateOrderValue(0)
	return c.JSON(http.StatusOK, catalog)
}

// CreateCustomItem handles adding an ad hoc item to the custom items group
func (h *CatalogHandler) CreateCustomItem(c echo.Context) error {
	log := logger.FromContext(c)

	var req CustomItemRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}

	catalog, ok, err := h.catalog.AddCustomItem(req.Name, req.Price, req.Quantity)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to save catalog"})
	}
	if !ok {
		log.Warn("Rejected custom item",
			zap.String("name", req.Name),
			zap.Float64("price", req.Price),
			zap.Int("quantity", req.Quantity))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Custom item needs a name, a positive price and a positive quantity"})
	}

	log.Info("Custom item added", zap.String("name", req.Name))
	prometheus.RecordCatalogOperation("add_custom_item")
	return c.JSON(http.StatusCreated, catalog)
}
