package models

import (
	"time"

	"github.com/google/uuid"
)

type Category struct {
	ID       int64     `gorm:"primaryKey" json:"id"`
	TenantID uuid.UUID `gorm:"type:uuid;index;not null" json:"tenant_id"`
	Name     string    `gorm:"not null" json:"name"`
}

func (Category) TableName() string {
	return "categorias"
}

type Product struct {
	ID         int64     `gorm:"primaryKey" json:"id"`
	TenantID   uuid.UUID `gorm:"type:uuid;index;not null" json:"tenant_id"`
	CategoryID *int64    `json:"category_id,omitempty"`
	Name       string    `gorm:"not null" json:"name"`
	Price      float64   `gorm:"not null" json:"price"`
	Stock      int       `gorm:"not null;default:0" json:"stock"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (Product) TableName() string {
	return "productos"
}

// SaleItem is one line of a register-sale batch.
type SaleItem struct {
	ID       int64  `json:"id"`
	Quantity int    `json:"quantity"`
	Name     string `json:"name"`
}
