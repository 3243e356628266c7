package storefront

import (
	"net/url"
	"strings"

	"github.com/hkanaan/shamshop/internal/model"
)

const messageGreeting = "Hello! I'm interested in purchasing:"

// ComposeWhatsApp renders a recorded inquiry into the outbound message text
// and the wa.me deep link embedding it. Lines with absent values are omitted.
// This is a pure function: the caller is responsible for the HTTP redirect.
func ComposeWhatsApp(shopPhone string, item *model.Item, inq *model.Inquiry) (text, redirectURL string) {
	var b strings.Builder
	b.WriteString(messageGreeting + "\n\n")
	b.WriteString("Item: " + item.Name + "\n")
	if inq.ColorName != "" {
		b.WriteString("Color: " + inq.ColorName + "\n")
	}
	b.WriteString("Price: " + item.PriceText() + "\n")
	if item.Description != "" {
		b.WriteString("Description: " + item.Description + "\n")
	}
	b.WriteString("\nMy Information:\n")
	b.WriteString("Name: " + inq.CustomerName + "\n")
	b.WriteString("Phone: " + inq.CustomerPhone + "\n")
	if inq.CityName != "" {
		b.WriteString("City: " + inq.CityName + "\n")
	}
	if inq.PlaceName != "" {
		b.WriteString("Place of Delivery: " + inq.PlaceName + "\n")
	}

	text = b.String()
	redirectURL = "https://wa.me/" + shopPhone + "?text=" + url.QueryEscape(text)
	return text, redirectURL
}
