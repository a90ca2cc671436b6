package models

import "time"

// NewProduct builds the entity for a create request. The request must have
// been validated; Active defaults to true when absent.
func NewProduct(req ProductCreateRequest, now time.Time) Product {
	product := Product{
		Name:        req.Name,
		Description: req.Description,
		Active:      true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if req.Price != nil {
		product.Price = *req.Price
	}
	if req.Active != nil {
		product.Active = *req.Active
	}
	return product
}

// ToProductResponse copies an entity into its wire shape.
func ToProductResponse(p Product) ProductResponse {
	return ProductResponse{
		ProductCode: p.ProductCode,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Active:      p.Active,
		CreatedAt:   NewLocalDateTime(p.CreatedAt),
		UpdatedAt:   NewLocalDateTime(p.UpdatedAt),
	}
}

// ToProductResponses maps a slice of entities.
func ToProductResponses(products []Product) []ProductResponse {
	out := make([]ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, ToProductResponse(p))
	}
	return out
}
