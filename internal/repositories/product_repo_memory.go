package repositories

import (
	"cmp"
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"stockflow/internal/models"
)

// InMemoryProductRepository is an in-memory implementation of ProductRepository.
type InMemoryProductRepository struct {
	products map[int]models.Product
	nextCode int
	mu       sync.RWMutex
}

// NewInMemoryProductRepository creates a new instance of InMemoryProductRepository.
func NewInMemoryProductRepository() *InMemoryProductRepository {
	return &InMemoryProductRepository{
		products: make(map[int]models.Product),
		nextCode: 1,
	}
}

// GetByCode returns a product by its code.
func (r *InMemoryProductRepository) GetByCode(_ context.Context, code int) (*models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	product, ok := r.products[code]
	if !ok {
		return nil, ErrProductNotFound
	}
	return &product, nil
}

// Create adds a new product and assigns its code.
func (r *InMemoryProductRepository) Create(_ context.Context, product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	product.ProductCode = r.nextCode
	r.nextCode++
	r.products[product.ProductCode] = *product
	return nil
}

// Update applies mutate to a copy of the stored product and stores it back
// only when mutate succeeds.
func (r *InMemoryProductRepository) Update(_ context.Context, code int, mutate func(*models.Product) error) (*models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	product, ok := r.products[code]
	if !ok {
		return nil, ErrProductNotFound
	}
	if err := mutate(&product); err != nil {
		return nil, err
	}
	product.ProductCode = code
	r.products[code] = product
	return &product, nil
}

// List returns one sorted page of products.
func (r *InMemoryProductRepository) List(_ context.Context, req PageRequest) ([]models.Product, int64, error) {
	compare, ok := productComparators[req.SortBy]
	if !ok {
		return nil, 0, fmt.Errorf("unsupported sort field %q", req.SortBy)
	}

	r.mu.RLock()
	all := make([]models.Product, 0, len(r.products))
	for _, p := range r.products {
		if req.ActiveOnly && !p.Active {
			continue
		}
		all = append(all, p)
	}
	r.mu.RUnlock()

	sort.Slice(all, func(i, j int) bool {
		c := compare(all[i], all[j])
		if req.Direction == Descending {
			c = -c
		}
		if c != 0 {
			return c < 0
		}
		return all[i].ProductCode < all[j].ProductCode
	})

	total := int64(len(all))
	start := req.Offset()
	if start >= len(all) {
		return []models.Product{}, total, nil
	}
	end := len(all)
	if req.Size < end-start {
		end = start + req.Size
	}
	return all[start:end], total, nil
}

var productComparators = map[string]func(a, b models.Product) int{
	"productCode": func(a, b models.Product) int { return cmp.Compare(a.ProductCode, b.ProductCode) },
	"name":        func(a, b models.Product) int { return strings.Compare(a.Name, b.Name) },
	"description": func(a, b models.Product) int {
		switch {
		case a.Description == nil && b.Description == nil:
			return 0
		case a.Description == nil:
			return -1
		case b.Description == nil:
			return 1
		}
		return strings.Compare(*a.Description, *b.Description)
	},
	"price": func(a, b models.Product) int { return cmp.Compare(a.Price, b.Price) },
	"active": func(a, b models.Product) int {
		return cmp.Compare(boolToInt(a.Active), boolToInt(b.Active))
	},
	"createdAt": func(a, b models.Product) int { return a.CreatedAt.Compare(b.CreatedAt) },
	"updatedAt": func(a, b models.Product) int { return a.UpdatedAt.Compare(b.UpdatedAt) },
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
