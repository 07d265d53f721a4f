package repositories

import (
	"context"
	"errors"
	"fmt"

	"storefront/internal/models"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrEmptySale       = errors.New("sale has no items")
	ErrInvalidQuantity = errors.New("quantity must be at least 1")
	ErrProductNotFound = errors.New("product not found")
)

// InsufficientStockError reports the first product that cannot cover the requested quantity.
type InsufficientStockError struct {
	ProductID int64
	Name      string
	Requested int
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %q: requested %d, available %d", e.Name, e.Requested, e.Available)
}

type ProductRepository interface {
	Create(ctx context.Context, product *models.Product) error
	GetByID(ctx context.Context, tenantID uuid.UUID, id int64) (*models.Product, error)
	RegisterSale(ctx context.Context, tenantID uuid.UUID, items []models.SaleItem) error
}

type productRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) Create(ctx context.Context, product *models.Product) error {
	return r.db.WithContext(ctx).Create(product).Error
}

func (r *productRepository) GetByID(ctx context.Context, tenantID uuid.UUID, id int64) (*models.Product, error) {
	var product models.Product
	err := r.db.WithContext(ctx).Where("tenant_id = ? AND id = ?", tenantID, id).First(&product).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %d", ErrProductNotFound, id)
		}
		return nil, err
	}
	return &product, nil
}

// RegisterSale validates and decrements stock for the whole batch inside one transaction.
// Rows are locked in id order; any missing product or short stock rolls back every line.
func (r *productRepository) RegisterSale(ctx context.Context, tenantID uuid.UUID, items []models.SaleItem) error {
	if len(items) == 0 {
		return ErrEmptySale
	}

	requested := make(map[int64]int, len(items))
	names := make(map[int64]string, len(items))
	ids := make([]int64, 0, len(items))
	for _, item := range items {
		if item.Quantity < 1 {
			return fmt.Errorf("%w: product %d", ErrInvalidQuantity, item.ID)
		}
		if _, seen := requested[item.ID]; !seen {
			ids = append(ids, item.ID)
			names[item.ID] = item.Name
		}
		requested[item.ID] += item.Quantity
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var products []models.Product
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("tenant_id = ? AND id = ANY(?)", tenantID, pq.Array(ids)).
			Order("id").
			Find(&products).Error
		if err != nil {
			return fmt.Errorf("failed to lock products: %w", err)
		}

		byID := make(map[int64]models.Product, len(products))
		for _, p := range products {
			byID[p.ID] = p
		}

		for _, id := range ids {
			p, ok := byID[id]
			if !ok {
				return fmt.Errorf("%w: %q", ErrProductNotFound, names[id])
			}
			if p.Stock < requested[id] {
				return &InsufficientStockError{
					ProductID: id,
					Name:      p.Name,
					Requested: requested[id],
					Available: p.Stock,
				}
			}
		}

		for _, id := range ids {
			err := tx.Model(&models.Product{}).
				Where("tenant_id = ? AND id = ?", tenantID, id).
				UpdateColumn("stock", gorm.Expr("stock - ?", requested[id])).Error
			if err != nil {
				return fmt.Errorf("failed to decrement stock for product %d: %w", id, err)
			}
		}
		return nil
	})
}
