// Package whatsapp builds prefilled wa.me deep links for inquiry flows.
// Nothing is sent server-side; the caller redirects the visitor to the link.
package whatsapp

import (
	"fmt"
	"net/url"

	"imovel-service/internal/model"
)

// Link returns the wa.me deep link for a destination number and message text
func Link(number, text string) string {
	return fmt.Sprintf("https://wa.me/%s?text=%s", number, url.QueryEscape(text))
}

// PropertyMessage builds the inquiry text for a listing. When visit is true
// the message asks to schedule a visit instead of declaring interest.
func PropertyMessage(p *model.Property, visit bool, pageURL string) string {
	prefix := "Olá, tenho interesse no imóvel"
	if visit {
		prefix = "Olá, gostaria de agendar uma visita para o imóvel"
	}
	return fmt.Sprintf("%s: %s (Cód: %d) localizado em %s. Link: %s",
		prefix, p.Title, p.Code, p.City, pageURL)
}

// NegotiationForm holds the "sell your property" form data
type NegotiationForm struct {
	Name         string `json:"name"`
	Phone        string `json:"phone"`
	Email        string `json:"email"`
	BusinessType string `json:"business_type"`
	PropertyType string `json:"property_type"`
	PostalCode   string `json:"postal_code"`
	Address      string `json:"address"`
	Description  string `json:"description"`
}

// NegotiationMessage builds the text for a property negotiation request
func NegotiationMessage(f *NegotiationForm) string {
	return "*Nova solicitação de negociação de imóvel*\n\n" +
		"*Dados Pessoais:*\n" +
		"Nome: " + f.Name + "\n" +
		"Celular: " + f.Phone + "\n" +
		"E-mail: " + f.Email + "\n\n" +
		"*Dados do Imóvel:*\n" +
		"Tipo de Negócio: " + f.BusinessType + "\n" +
		"Tipo de Imóvel: " + f.PropertyType + "\n" +
		"CEP: " + f.PostalCode + "\n" +
		"Endereço: " + f.Address + "\n\n" +
		"*Descrição:*\n" + f.Description
}

// ContactForm holds the general contact form data
type ContactForm struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// ContactMessage builds the text for a general contact request
func ContactMessage(f *ContactForm) string {
	return "*Novo contato pelo site*\n\n" +
		"Nome: " + f.Name + "\n" +
		"Celular: " + f.Phone + "\n" +
		"E-mail: " + f.Email + "\n\n" +
		"*Mensagem:*\n" + f.Message
}
