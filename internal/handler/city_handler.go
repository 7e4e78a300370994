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

// CityHandler serves the public city filter options and the admin city screen
type CityHandler struct {
	cities *catalog.CityCatalog
}

// NewCityHandler wires the city endpoints to their catalog
func NewCityHandler(cities *catalog.CityCatalog) *CityHandler {
	return &CityHandler{cities: cities}
}

// ListActive returns the cities visible in the public search filter
func (h *CityHandler) ListActive(c echo.Context) error {
	return c.JSON(http.StatusOK, h.cities.Active())
}

// List returns every city for the admin screen
func (h *CityHandler) List(c echo.Context) error {
	return c.JSON(http.StatusOK, h.cities.All())
}

// Create handles adding a new city (admin)
func (h *CityHandler) Create(c echo.Context) error {
	log := logger.FromContext(c)

	var req struct {
		Name  string `json:"name"`
		State string `json:"state"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}
	if req.State == "" {
		req.State = "RS"
	}

	city, err := h.cities.Add(c.Request().Context(), req.Name, req.State)
	if err != nil {
		if errors.Is(err, model.ErrEmptyName) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "name must not be empty"})
		}
		log.Error("Failed to add city", zap.String("name", req.Name), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to add city"})
	}

	log.Info("City added", zap.String("city_id", city.ID), zap.String("name", city.Name))
	return c.JSON(http.StatusCreated, city)
}

// Delete removes a city (admin). Listings referencing it are not touched.
func (h *CityHandler) Delete(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")

	if err := h.cities.Delete(c.Request().Context(), id); err != nil {
		log.Error("Failed to delete city", zap.String("city_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete city"})
	}

	log.Info("City deleted", zap.String("city_id", id))
	return c.JSON(http.StatusOK, echo.Map{"message": "city deleted"})
}

// Toggle flips a city's visibility in the public filter (admin)
func (h *CityHandler) Toggle(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")

	var req struct {
		Active bool `json:"active"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}

	err := h.cities.ToggleActive(c.Request().Context(), id, req.Active)
	switch {
	case err == nil:
		return c.JSON(http.StatusOK, echo.Map{"id": id, "active": req.Active})
	case errors.Is(err, catalog.ErrNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "city not found"})
	case errors.Is(err, catalog.ErrWriteInFlight):
		log.Warn("Concurrent toggle on the same city", zap.String("city_id", id))
		return c.JSON(http.StatusConflict, echo.Map{"error": "a change for this city is still being saved"})
	default:
		log.Error("Failed to toggle city, state reverted", zap.String("city_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update city"})
	}
}

// ToggleAll sets every city's visibility at once (admin)
func (h *CityHandler) ToggleAll(c echo.Context) error {
	log := logger.FromContext(c)

	var req struct {
		Active bool `json:"active"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}

	if err := h.cities.ToggleAll(c.Request().Context(), req.Active); err != nil {
		log.Error("Failed to toggle all cities, cache re-fetched", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update cities"})
	}

	log.Info("All cities toggled", zap.Bool("active", req.Active))
	return c.JSON(http.StatusOK, h.cities.All())
}
