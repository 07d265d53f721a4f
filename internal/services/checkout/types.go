package checkout

import (
	"math"

	"storefront/internal/models"

	"github.com/google/uuid"
)

// CartItem is one line of the client cart. A zero quantity means 1.
type CartItem struct {
	ProductID int64   `json:"id"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
	Name      string  `json:"name"`
}

type Cart []CartItem

// Normalized returns a copy of the cart with absent quantities set to 1.
func (c Cart) Normalized() Cart {
	out := make(Cart, len(c))
	for i, item := range c {
		if item.Quantity == 0 {
			item.Quantity = 1
		}
		out[i] = item
	}
	return out
}

func (c Cart) Total() float64 {
	var total float64
	for _, item := range c {
		total += item.Price * float64(item.Quantity)
	}
	return roundCents(total)
}

func (c Cart) saleItems() []models.SaleItem {
	items := make([]models.SaleItem, len(c))
	for i, item := range c {
		items[i] = models.SaleItem{ID: item.ProductID, Quantity: item.Quantity, Name: item.Name}
	}
	return items
}

func (c Cart) orderLines() []models.OrderLine {
	lines := make([]models.OrderLine, len(c))
	for i, item := range c {
		lines[i] = models.OrderLine{
			ProductID: item.ProductID,
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitPrice: item.Price,
		}
	}
	return lines
}

// Outcome is what the caller does after a successful checkout.
// It is either a Redirect or a MessagingHandoff.
type Outcome interface {
	Order() uuid.UUID
	isOutcome()
}

// Redirect sends the customer to the provider's hosted checkout page.
// The cart is kept until the provider reports success.
type Redirect struct {
	URL     string
	OrderID uuid.UUID
}

// MessagingHandoff opens a chat with the store pre-filled with the order summary.
// The cart has to be cleared.
type MessagingHandoff struct {
	URL       string
	OrderID   uuid.UUID
	Summary   string
	ClearCart bool
}

func (r Redirect) Order() uuid.UUID         { return r.OrderID }
func (m MessagingHandoff) Order() uuid.UUID { return m.OrderID }

func (Redirect) isOutcome()         {}
func (MessagingHandoff) isOutcome() {}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
