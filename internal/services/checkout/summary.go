package checkout

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/google/uuid"
)

const whatsAppBaseURL = "https://wa.me/"

// ItemsDescription renders the cart as "2x Mate, 1x Bombilla".
func ItemsDescription(cart Cart) string {
	parts := make([]string, len(cart))
	for i, item := range cart {
		parts[i] = fmt.Sprintf("%dx %s", item.Quantity, item.Name)
	}
	return strings.Join(parts, ", ")
}

// OrderSummary is the message pre-filled in the chat hand-off.
func OrderSummary(storeName string, orderID uuid.UUID, cart Cart, total float64) string {
	var b strings.Builder
	if storeName != "" {
		fmt.Fprintf(&b, "Hi %s! I'd like to place an order.\n", storeName)
	} else {
		b.WriteString("Hi! I'd like to place an order.\n")
	}
	fmt.Fprintf(&b, "Order #%s\n\n", orderID)
	for _, item := range cart {
		fmt.Fprintf(&b, "- %dx %s ($%.2f)\n", item.Quantity, item.Name, item.Price*float64(item.Quantity))
	}
	fmt.Fprintf(&b, "\nTotal: $%.2f\nPayment: cash", total)
	return b.String()
}

// WhatsAppLink builds a wa.me link. Non-digits in number are dropped; an empty
// number lets the customer pick the chat.
func WhatsAppLink(number, text string) string {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, number)
	return whatsAppBaseURL + digits + "?text=" + url.QueryEscape(text)
}
