package handler

import (
	"errors"
	"net/http"

	"imovel-service/internal/catalog"
	"imovel-service/internal/model"
	"imovel-service/pkg/logger"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// TypeHandler serves the public type filter options and the admin type screen
type TypeHandler struct {
	types *catalog.TypeCatalog
}

// NewTypeHandler wires the property-type endpoints to their catalog
func NewTypeHandler(types *catalog.TypeCatalog) *TypeHandler {
	return &TypeHandler{types: types}
}

// ListActive returns the types visible in the public search filter
func (h *TypeHandler) ListActive(c echo.Context) error {
	return c.JSON(http.StatusOK, h.types.Active())
}

// List returns every type for the admin screen
func (h *TypeHandler) List(c echo.Context) error {
	return c.JSON(http.StatusOK, h.types.All())
}

// Create handles adding a new property type (admin). The slug is derived
// from the label; a duplicate surfaces as a conflict from the store.
func (h *TypeHandler) Create(c echo.Context) error {
	log := logger.FromContext(c)

	var req struct {
		Label string `json:"label"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}

	t, err := h.types.Add(c.Request().Context(), req.Label)
	switch {
	case err == nil:
		log.Info("Property type added", zap.String("type_id", t.ID), zap.String("value", t.Value))
		return c.JSON(http.StatusCreated, t)
	case errors.Is(err, model.ErrEmptyName):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "label must not be empty"})
	case errors.Is(err, gorm.ErrDuplicatedKey):
		log.Warn("Duplicate property type", zap.String("label", req.Label))
		return c.JSON(http.StatusConflict, echo.Map{"error": "a type with this label already exists"})
	default:
		log.Error("Failed to add property type", zap.String("label", req.Label), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to add type"})
	}
}

// Delete removes a property type (admin)
func (h *TypeHandler) Delete(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")

	if err := h.types.Delete(c.Request().Context(), id); err != nil {
		log.Error("Failed to delete property type", zap.String("type_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete type"})
	}

	log.Info("Property type deleted", zap.String("type_id", id))
	return c.JSON(http.StatusOK, echo.Map{"message": "type deleted"})
}

// Toggle flips a type's visibility in the public filter (admin)
func (h *TypeHandler) Toggle(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")

	var req struct {
		Active bool `json:"active"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}

	err := h.types.ToggleActive(c.Request().Context(), id, req.Active)
	switch {
	case err == nil:
		return c.JSON(http.StatusOK, echo.Map{"id": id, "active": req.Active})
	case errors.Is(err, catalog.ErrNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "type not found"})
	case errors.Is(err, catalog.ErrWriteInFlight):
		log.Warn("Concurrent toggle on the same type", zap.String("type_id", id))
		return c.JSON(http.StatusConflict, echo.Map{"error": "a change for this type is still being saved"})
	default:
		log.Error("Failed to toggle type, state reverted", zap.String("type_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update type"})
	}
}

// ToggleAll sets every type's visibility at once (admin)
func (h *TypeHandler) ToggleAll(c echo.Context) error {
	log := logger.FromContext(c)

	var req struct {
		Active bool `json:"active"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}

	if err := h.types.ToggleAll(c.Request().Context(), req.Active); err != nil {
		log.Error("Failed to toggle all types, cache re-fetched", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update types"})
	}

	log.Info("All property types toggled", zap.Bool("active", req.Active))
	return c.JSON(http.StatusOK, h.types.All())
}
