package handler

import (
	"net/http"

	"imovel-service/internal/catalog"
	"imovel-service/internal/whatsapp"
	"imovel-service/pkg/logger"
	"imovel-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// InquiryHandler builds prefilled WhatsApp links for visitor inquiries.
// The server never sends anything; the browser opens the returned link.
type InquiryHandler struct {
	properties *catalog.PropertyCatalog
	number     string
}

// NewInquiryHandler wires the inquiry endpoints to the property catalog and
// the configured WhatsApp number
func NewInquiryHandler(properties *catalog.PropertyCatalog, number string) *InquiryHandler {
	return &InquiryHandler{properties: properties, number: number}
}

// Property builds an interest or visit-scheduling link for one listing
func (h *InquiryHandler) Property(c echo.Context) error {
	log := logger.FromContext(c)

	var req struct {
		PropertyID string `json:"property_id"`
		Visit      bool   `json:"visit"`
		PageURL    string `json:"page_url"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}

	p, ok := h.properties.Get(req.PropertyID)
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "property not found"})
	}

	link := whatsapp.Link(h.number, whatsapp.PropertyMessage(&p, req.Visit, req.PageURL))
	prometheus.InquiryLinksCounter.WithLabelValues("property").Inc()
	log.Info("Property inquiry link generated", zap.String("property_id", p.ID), zap.Bool("visit", req.Visit))
	return c.JSON(http.StatusOK, echo.Map{"url": link})
}

// Negotiation builds a link for the "sell your property" form
func (h *InquiryHandler) Negotiation(c echo.Context) error {
	var form whatsapp.NegotiationForm
	if err := c.Bind(&form); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}
	if form.Name == "" || form.Phone == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name and phone are required"})
	}

	link := whatsapp.Link(h.number, whatsapp.NegotiationMessage(&form))
	prometheus.InquiryLinksCounter.WithLabelValues("negotiation").Inc()
	return c.JSON(http.StatusOK, echo.Map{"url": link})
}

// Contact builds a link for the general contact form
func (h *InquiryHandler) Contact(c echo.Context) error {
	var form whatsapp.ContactForm
	if err := c.Bind(&form); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}
	if form.Name == "" || form.Message == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name and message are required"})
	}

	link := whatsapp.Link(h.number, whatsapp.ContactMessage(&form))
	prometheus.InquiryLinksCounter.WithLabelValues("contact").Inc()
	return c.JSON(http.StatusOK, echo.Map{"url": link})
}
