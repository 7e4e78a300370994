package handler

import (
	"errors"
	"net/http"

	"imovel-service/internal/catalog"
	"imovel-service/internal/filter"
	"imovel-service/internal/model"
	"imovel-service/internal/storage"
	"imovel-service/pkg/logger"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// PropertyHandler serves the public listing pages and the admin CRUD
type PropertyHandler struct {
	properties *catalog.PropertyCatalog
	ranges     *catalog.PriceRangeCatalog
	images     *storage.ImageStorage
}

// NewPropertyHandler wires the property endpoints to their catalogs
func NewPropertyHandler(properties *catalog.PropertyCatalog, ranges *catalog.PriceRangeCatalog, images *storage.ImageStorage) *PropertyHandler {
	return &PropertyHandler{properties: properties, ranges: ranges, images: images}
}

// List handles the public listing page: the full cached list run through the
// search pipeline with whatever filters the query string carries.
func (h *PropertyHandler) List(c echo.Context) error {
	crit := filter.Criteria{
		Code:       c.QueryParam("code"),
		City:       c.QueryParam("city"),
		Text:       c.QueryParam("search"),
		Type:       c.QueryParam("type"),
		Status:     c.QueryParam("status"),
		PriceRange: c.QueryParam("price"),
	}

	result := filter.Apply(h.properties.All(), crit, h.ranges.Active())
	return c.JSON(http.StatusOK, result)
}

// Featured returns the listings promoted to the homepage carousel
func (h *PropertyHandler) Featured(c echo.Context) error {
	return c.JSON(http.StatusOK, h.properties.Featured())
}

// Get returns one listing by id
func (h *PropertyHandler) Get(c echo.Context) error {
	id := c.Param("id")
	p, ok := h.properties.Get(id)
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "property not found"})
	}
	return c.JSON(http.StatusOK, p)
}

// Create handles adding a new listing (admin)
func (h *PropertyHandler) Create(c echo.Context) error {
	log := logger.FromContext(c)

	var req model.Property
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}

	created, err := h.properties.Add(c.Request().Context(), req)
	if err != nil {
		return h.mutationError(c, "Failed to create property", err)
	}

	log.Info("Property created",
		zap.String("property_id", created.ID),
		zap.Int("code", created.Code),
		zap.String("title", created.Title))
	return c.JSON(http.StatusCreated, created)
}

// Update handles a full or partial field replace on a listing (admin)
func (h *PropertyHandler) Update(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")

	var req model.PropertyUpdate
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.String("property_id", id), zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}

	updated, err := h.properties.Update(c.Request().Context(), id, req)
	if err != nil {
		return h.mutationError(c, "Failed to update property", err)
	}

	log.Info("Property updated", zap.String("property_id", id))
	return c.JSON(http.StatusOK, updated)
}

// Delete removes a listing and reclaims its stored images (admin)
func (h *PropertyHandler) Delete(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")

	p, ok := h.properties.Get(id)
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "property not found"})
	}

	if err := h.properties.Delete(c.Request().Context(), id); err != nil {
		return h.mutationError(c, "Failed to delete property", err)
	}

	if h.images != nil {
		h.images.DeleteAll(c.Request().Context(), p.Images)
	}

	log.Info("Property deleted", zap.String("property_id", id), zap.Int("images_reclaimed", len(p.Images)))
	return c.JSON(http.StatusOK, echo.Map{"message": "property deleted"})
}

func (h *PropertyHandler) mutationError(c echo.Context, msg string, err error) error {
	log := logger.FromContext(c)
	log.Error(msg, zap.Error(err))

	switch {
	case errors.Is(err, catalog.ErrNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "property not found"})
	case errors.Is(err, model.ErrEmptyName), errors.Is(err, model.ErrNegativeValue):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return c.JSON(http.StatusConflict, echo.Map{"error": "a property with this code already exists"})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to save property"})
	}
}
