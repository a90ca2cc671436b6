package repositories

import (
	"context"
	"errors"
	"fmt"

	"stockflow/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GORMProductRepository is a GORM implementation of ProductRepository.
type GORMProductRepository struct {
	db *gorm.DB
}

// NewGORMProductRepository creates a new instance of GORMProductRepository.
func NewGORMProductRepository(db *gorm.DB) *GORMProductRepository {
	return &GORMProductRepository{
		db: db,
	}
}

// GetByCode retrieves a single product by its code.
func (r *GORMProductRepository) GetByCode(ctx context.Context, code int) (*models.Product, error) {
	return r.first(r.db.WithContext(ctx), code)
}

func (r *GORMProductRepository) first(db *gorm.DB, code int) (*models.Product, error) {
	var product models.Product
	if err := db.First(&product, "product_code = ?", code).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to get product by code %d: %w", code, err)
	}
	return &product, nil
}

// Create creates a new product in the database.
func (r *GORMProductRepository) Create(ctx context.Context, product *models.Product) error {
	if err := r.db.WithContext(ctx).Create(product).Error; err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

// Update applies mutate to the stored product inside a transaction.
func (r *GORMProductRepository) Update(ctx context.Context, code int, mutate func(*models.Product) error) (*models.Product, error) {
	var updated *models.Product
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		product, err := r.first(tx, code)
		if err != nil {
			return err
		}
		if err := mutate(product); err != nil {
			return err
		}
		// Save writes every column, including zero values such as Active=false.
		if err := tx.Save(product).Error; err != nil {
			return fmt.Errorf("failed to update product %d: %w", code, err)
		}
		updated = product
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// List returns one sorted page of products and the total row count.
func (r *GORMProductRepository) List(ctx context.Context, req PageRequest) ([]models.Product, int64, error) {
	column, ok := sortColumns[req.SortBy]
	if !ok {
		return nil, 0, fmt.Errorf("unsupported sort field %q", req.SortBy)
	}

	scoped := func() *gorm.DB {
		query := r.db.WithContext(ctx).Model(&models.Product{})
		if req.ActiveOnly {
			query = query.Where("active = ?", true)
		}
		return query
	}

	var total int64
	if err := scoped().Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	products := []models.Product{}
	err := scoped().
		Order(clause.OrderByColumn{Column: clause.Column{Name: column}, Desc: req.Direction == Descending}).
		Order(clause.OrderByColumn{Column: clause.Column{Name: "product_code"}}).
		Offset(req.Offset()).
		Limit(req.Size).
		Find(&products).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list products: %w", err)
	}
	return products, total, nil
}
