package repositories

import (
	"context"
	"errors"
	"math"

	"stockflow/internal/models"
)

// ErrProductNotFound is returned when no product has the requested code.
var ErrProductNotFound = errors.New("product not found")

// SortDirection orders a listing.
type SortDirection string

const (
	Ascending  SortDirection = "ASC"
	Descending SortDirection = "DESC"
)

// sortColumns maps the sortable wire field names to their columns.
var sortColumns = map[string]string{
	"productCode": "product_code",
	"name":        "name",
	"description": "description",
	"price":       "price",
	"active":      "active",
	"createdAt":   "created_at",
	"updatedAt":   "updated_at",
}

// IsSortable reports whether field can be used as PageRequest.SortBy.
func IsSortable(field string) bool {
	_, ok := sortColumns[field]
	return ok
}

// PageRequest selects one page of a sorted listing.
type PageRequest struct {
	Page      int
	Size      int
	SortBy    string
	Direction SortDirection
	// ActiveOnly excludes soft-deleted products.
	ActiveOnly bool
}

// Offset is the number of rows skipped before the page. It saturates at
// math.MaxInt, which no listing can reach.
func (p PageRequest) Offset() int {
	if p.Size > 0 && p.Page > math.MaxInt/p.Size {
		return math.MaxInt
	}
	return p.Page * p.Size
}

// ProductRepository defines the interface for product data access.
type ProductRepository interface {
	GetByCode(ctx context.Context, code int) (*models.Product, error)
	// Create inserts product and sets its generated ProductCode.
	Create(ctx context.Context, product *models.Product) error
	// Update loads the product, applies mutate and persists the result as
	// one unit of work.
	Update(ctx context.Context, code int, mutate func(*models.Product) error) (*models.Product, error)
	// List returns the requested page and the total number of matching rows.
	List(ctx context.Context, req PageRequest) ([]models.Product, int64, error)
}
