package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Payment method types
const (
	PaymentMethodCash               = "cash"
	PaymentMethodMercadoPagoFull    = "mercadopago_full"
	PaymentMethodMercadoPagoDeposit = "mercadopago_deposit"
)

// Payment statuses
const (
	PaymentStatusPending = "pending"
	PaymentStatusPaid    = "paid"
	PaymentStatusFailed  = "failed"
)

// OrderLine is the snapshot of a cart item taken at checkout.
type OrderLine struct {
	ProductID int64   `json:"product_id"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
}

type Order struct {
	ID               uuid.UUID                     `gorm:"type:uuid;primaryKey" json:"id"`
	TenantID         uuid.UUID                     `gorm:"type:uuid;index;not null;<-:create" json:"tenant_id"`
	Total            float64                       `gorm:"not null" json:"total"`
	PaymentMethod    string                        `gorm:"not null" json:"payment_method"`
	PaymentStatus    string                        `gorm:"not null;default:'pending'" json:"payment_status"`
	ItemsDescription string                        `json:"items_description"`
	Items            datatypes.JSONSlice[OrderLine] `gorm:"type:jsonb" json:"items"`
	CustomerName     string                        `json:"customer_name"`
	CustomerPhone    string                        `json:"customer_phone"`
	CustomerEmail    string                        `json:"customer_email"`
	PaidAmount       float64                       `gorm:"not null;default:0" json:"paid_amount"`
	RemainingAmount  float64                       `gorm:"not null" json:"remaining_amount"`
	CreatedAt        time.Time                     `json:"created_at"`
	UpdatedAt        time.Time                     `json:"updated_at"`
}

func (Order) TableName() string {
	return "orders"
}
