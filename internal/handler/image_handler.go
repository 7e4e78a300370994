package handler

import (
	"net/http"

	"imovel-service/internal/storage"
	"imovel-service/pkg/logger"
	"imovel-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// ImageHandler serves property image upload and reclaim (admin)
type ImageHandler struct {
	images *storage.ImageStorage
}

// NewImageHandler wires the image endpoints to object storage
func NewImageHandler(images *storage.ImageStorage) *ImageHandler {
	return &ImageHandler{images: images}
}

// Upload stores every file of a multipart form and returns their public
// URLs, in form order. Upload happens before the listing row is created.
func (h *ImageHandler) Upload(c echo.Context) error {
	log := logger.FromContext(c)

	form, err := c.MultipartForm()
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid multipart form"})
	}
	files := form.File["files"]
	if len(files) == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "no files provided"})
	}

	urls := make([]string, 0, len(files))
	for _, fileHeader := range files {
		src, err := fileHeader.Open()
		if err != nil {
			log.Error("Failed to open uploaded file", zap.String("filename", fileHeader.Filename), zap.Error(err))
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "failed to read uploaded file"})
		}

		url, err := h.images.Upload(c.Request().Context(), fileHeader.Filename,
			fileHeader.Header.Get("Content-Type"), fileHeader.Size, src)
		src.Close()
		if err != nil {
			log.Error("Failed to upload image", zap.String("filename", fileHeader.Filename), zap.Error(err))
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to upload image"})
		}

		prometheus.ImageUploadsCounter.Inc()
		urls = append(urls, url)
	}

	log.Info("Images uploaded", zap.Int("count", len(urls)))
	return c.JSON(http.StatusCreated, echo.Map{"urls": urls})
}

// Delete reclaims one stored image by its public URL
func (h *ImageHandler) Delete(c echo.Context) error {
	log := logger.FromContext(c)

	var req struct {
		URL string `json:"url"`
	}
	if err := c.Bind(&req); err != nil || req.URL == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "url is required"})
	}

	if err := h.images.DeleteByURL(c.Request().Context(), req.URL); err != nil {
		log.Error("Failed to delete image", zap.String("url", req.URL), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete image"})
	}

	prometheus.ImageDeletesCounter.Inc()
	log.Info("Image deleted", zap.String("url", req.URL))
	return c.JSON(http.StatusOK, echo.Map{"message": "image deleted"})
}
