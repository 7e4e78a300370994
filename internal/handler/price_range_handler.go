package handler

import (
	"errors"
	"net/http"

	"imovel-service/internal/catalog"
	"imovel-service/internal/model"
	"imovel-service/pkg/logger"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// PriceRangeHandler serves the public price filter options and the admin screen
type PriceRangeHandler struct {
	ranges *catalog.PriceRangeCatalog
}

// NewPriceRangeHandler wires the price-range endpoints to their catalog
func NewPriceRangeHandler(ranges *catalog.PriceRangeCatalog) *PriceRangeHandler {
	return &PriceRangeHandler{ranges: ranges}
}

// ListActive returns the ranges visible in the public search filter
func (h *PriceRangeHandler) ListActive(c echo.Context) error {
	return c.JSON(http.StatusOK, h.ranges.Active())
}

// List returns every range for the admin screen
func (h *PriceRangeHandler) List(c echo.Context) error {
	return c.JSON(http.StatusOK, h.ranges.All())
}

// Create handles adding a new price range (admin). Absent bounds are
// unbounded; inverted bounds are rejected.
func (h *PriceRangeHandler) Create(c echo.Context) error {
	log := logger.FromContext(c)

	var req struct {
		Label    string   `json:"label"`
		MinPrice *float64 `json:"min_price"`
		MaxPrice *float64 `json:"max_price"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}

	r, err := h.ranges.Add(c.Request().Context(), req.Label, req.MinPrice, req.MaxPrice)
	switch {
	case err == nil:
		log.Info("Price range added", zap.String("range_id", r.ID), zap.String("label", r.Label))
		return c.JSON(http.StatusCreated, r)
	case errors.Is(err, model.ErrEmptyName):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "label must not be empty"})
	case errors.Is(err, model.ErrInvalidRange):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "min_price must not exceed max_price"})
	default:
		log.Error("Failed to add price range", zap.String("label", req.Label), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to add price range"})
	}
}

// Delete removes a price range (admin)
func (h *PriceRangeHandler) Delete(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")

	if err := h.ranges.Delete(c.Request().Context(), id); err != nil {
		log.Error("Failed to delete price range", zap.String("range_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete price range"})
	}

	log.Info("Price range deleted", zap.String("range_id", id))
	return c.JSON(http.StatusOK, echo.Map{"message": "price range deleted"})
}

// Toggle flips a range's visibility in the public filter (admin)
func (h *PriceRangeHandler) Toggle(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")

	var req struct {
		Active bool `json:"active"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}

	err := h.ranges.ToggleActive(c.Request().Context(), id, req.Active)
	switch {
	case err == nil:
		return c.JSON(http.StatusOK, echo.Map{"id": id, "active": req.Active})
	case errors.Is(err, catalog.ErrNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "price range not found"})
	case errors.Is(err, catalog.ErrWriteInFlight):
		log.Warn("Concurrent toggle on the same range", zap.String("range_id", id))
		return c.JSON(http.StatusConflict, echo.Map{"error": "a change for this range is still being saved"})
	default:
		log.Error("Failed to toggle price range, state reverted", zap.String("range_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update price range"})
	}
}

// ToggleAll sets every range's visibility at once (admin)
func (h *PriceRangeHandler) ToggleAll(c echo.Context) error {
	log := logger.FromContext(c)

	var req struct {
		Active bool `json:"active"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}

	if err := h.ranges.ToggleAll(c.Request().Context(), req.Active); err != nil {
		log.Error("Failed to toggle all price ranges, cache re-fetched", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update price ranges"})
	}

	log.Info("All price ranges toggled", zap.Bool("active", req.Active))
	return c.JSON(http.StatusOK, h.ranges.All())
}
