package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"stockflow/internal/models"
	"stockflow/internal/repositories"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

// ProductService handles business logic related to products.
type ProductService struct {
	repo         repositories.ProductRepository
	publisher    EventPublisher
	validate     *validator.Validate
	logger       zerolog.Logger
	clock        func() time.Time
	listInactive bool
}

// Option customizes a ProductService.
type Option func(*ProductService)

// WithClock replaces time.Now as the source of timestamps.
func WithClock(clock func() time.Time) Option {
	return func(s *ProductService) {
		s.clock = clock
	}
}

// WithInactiveInListings controls whether soft-deleted products are
// returned by ListProducts. The default is true.
func WithInactiveInListings(include bool) Option {
	return func(s *ProductService) {
		s.listInactive = include
	}
}

// NewProductService creates a new ProductService. publisher may be nil to
// disable product events.
func NewProductService(repo repositories.ProductRepository, publisher EventPublisher, logger zerolog.Logger, opts ...Option) *ProductService {
	s := &ProductService{
		repo:         repo,
		publisher:    publisher,
		validate:     newValidator(),
		logger:       logger.With().Str("component", "product_service").Logger(),
		clock:        time.Now,
		listInactive: true,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// now truncates to the precision kept by the relational store.
func (s *ProductService) now() time.Time {
	return s.clock().Truncate(time.Microsecond)
}

// CreateProduct validates req and persists a new product.
func (s *ProductService) CreateProduct(ctx context.Context, req models.ProductCreateRequest) (*models.ProductResponse, error) {
	if err := validateStruct(s.validate, req); err != nil {
		return nil, err
	}

	s.logger.Info().Str("name", req.Name).Msg("creating product")

	product := models.NewProduct(req, s.now())
	if err := s.repo.Create(ctx, &product); err != nil {
		s.logger.Error().Err(err).Str("name", req.Name).Msg("failed to create product")
		return nil, InternalError("could not create product", err)
	}

	s.logger.Info().Int("productCode", product.ProductCode).Msg("product created")

	resp := models.ToProductResponse(product)
	s.publish(EventProductCreated, resp)
	return &resp, nil
}

// GetProductByCode returns the product with the given code, active or not.
func (s *ProductService) GetProductByCode(ctx context.Context, code int) (*models.ProductResponse, error) {
	product, err := s.repo.GetByCode(ctx, code)
	if err != nil {
		return nil, s.storeError(err, code, "could not retrieve product")
	}

	resp := models.ToProductResponse(*product)
	return &resp, nil
}

// UpdateProduct merges the non-nil fields of req into the stored product
// and refreshes its update timestamp.
func (s *ProductService) UpdateProduct(ctx context.Context, code int, req models.ProductUpdateRequest) (*models.ProductResponse, error) {
	if err := validateStruct(s.validate, req); err != nil {
		return nil, err
	}

	s.logger.Info().Int("productCode", code).Msg("updating product")

	product, err := s.repo.Update(ctx, code, func(p *models.Product) error {
		applyUpdate(p, req, s.now())
		return nil
	})
	if err != nil {
		return nil, s.storeError(err, code, "could not update product")
	}

	resp := models.ToProductResponse(*product)
	s.publish(EventProductUpdated, resp)
	return &resp, nil
}

// DeleteProduct soft-deletes the product: it stays in the store with
// Active=false. Deleting an inactive product succeeds and refreshes
// UpdatedAt again.
func (s *ProductService) DeleteProduct(ctx context.Context, code int) error {
	s.logger.Info().Int("productCode", code).Msg("deleting product")

	product, err := s.repo.Update(ctx, code, func(p *models.Product) error {
		p.Active = false
		p.UpdatedAt = s.now()
		return nil
	})
	if err != nil {
		return s.storeError(err, code, "could not delete product")
	}

	s.logger.Info().Int("productCode", code).Msg("product marked as inactive")
	s.publish(EventProductDeleted, models.ToProductResponse(*product))
	return nil
}

// ListProducts returns one sorted page of products. Direction "DESC" (any
// case) sorts descending; any other value sorts ascending.
func (s *ProductService) ListProducts(ctx context.Context, q models.ProductQuery) (*models.Page[models.ProductResponse], error) {
	if err := validateStruct(s.validate, q); err != nil {
		return nil, err
	}
	if !repositories.IsSortable(q.SortBy) {
		return nil, ValidationError("sortBy: unsupported sort field '" + q.SortBy + "'")
	}

	direction := repositories.Ascending
	if strings.EqualFold(q.SortDirection, string(repositories.Descending)) {
		direction = repositories.Descending
	}

	s.logger.Info().Int("page", q.Page).Int("size", q.Size).Msg("listing products")

	products, total, err := s.repo.List(ctx, repositories.PageRequest{
		Page:       q.Page,
		Size:       q.Size,
		SortBy:     q.SortBy,
		Direction:  direction,
		ActiveOnly: !s.listInactive,
	})
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list products")
		return nil, InternalError("could not list products", err)
	}

	s.logger.Info().Int64("total", total).Msg("products found")

	page := models.NewPage(models.ToProductResponses(products), q.Page, q.Size, total)
	return &page, nil
}

// storeError translates a repository failure for the product with the
// given code.
func (s *ProductService) storeError(err error, code int, message string) error {
	if errors.Is(err, repositories.ErrProductNotFound) {
		s.logger.Warn().Int("productCode", code).Msg("product not found")
		return NotFoundError(code)
	}
	s.logger.Error().Err(err).Int("productCode", code).Msg(message)
	return InternalError(message, err)
}

func applyUpdate(p *models.Product, req models.ProductUpdateRequest, now time.Time) {
	if req.Name != nil {
		p.Name = *req.Name
	}
	if req.Description != nil {
		p.Description = req.Description
	}
	if req.Price != nil {
		p.Price = *req.Price
	}
	if req.Active != nil {
		p.Active = *req.Active
	}
	p.UpdatedAt = now
}
