package repositories_test

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"stockflow/internal/database/dbtest"
	"stockflow/internal/models"
	"stockflow/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stores returns a fresh instance of every ProductRepository implementation.
func stores(t *testing.T) map[string]repositories.ProductRepository {
	return map[string]repositories.ProductRepository{
		"gorm":   repositories.NewGORMProductRepository(dbtest.New(t)),
		"memory": repositories.NewInMemoryProductRepository(),
	}
}

func newProduct(name string, price int, at time.Time) *models.Product {
	return &models.Product{
		Name:      name,
		Price:     price,
		Active:    true,
		CreatedAt: at,
		UpdatedAt: at,
	}
}

func seed(t *testing.T, repo repositories.ProductRepository, prices ...int) []models.Product {
	t.Helper()
	base := time.Date(2025, 11, 11, 10, 0, 0, 0, time.UTC)
	names := []string{"Laptop", "Keyboard", "Mouse", "Monitor", "Headset", "Webcam"}

	var created []models.Product
	for i, price := range prices {
		p := newProduct(names[i%len(names)], price, base.Add(time.Duration(i)*time.Minute))
		require.NoError(t, repo.Create(context.Background(), p))
		created = append(created, *p)
	}
	return created
}

func TestProductRepository_CreateAndGet(t *testing.T) {
	for name, repo := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			desc := "High performance laptop"
			at := time.Date(2025, 11, 11, 10, 30, 0, 0, time.UTC)
			p := newProduct("Laptop", 1200, at)
			p.Description = &desc

			require.NoError(t, repo.Create(ctx, p))
			assert.NotZero(t, p.ProductCode)

			other := newProduct("Mouse", 25, at)
			require.NoError(t, repo.Create(ctx, other))
			assert.NotEqual(t, p.ProductCode, other.ProductCode)

			got, err := repo.GetByCode(ctx, p.ProductCode)
			require.NoError(t, err)
			assert.Equal(t, "Laptop", got.Name)
			assert.Equal(t, 1200, got.Price)
			require.NotNil(t, got.Description)
			assert.Equal(t, desc, *got.Description)
			assert.True(t, got.Active)
			assert.True(t, at.Equal(got.CreatedAt))
		})
	}
}

func TestProductRepository_GetByCodeNotFound(t *testing.T) {
	for name, repo := range stores(t) {
		t.Run(name, func(t *testing.T) {
			_, err := repo.GetByCode(context.Background(), 9999)
			assert.ErrorIs(t, err, repositories.ErrProductNotFound)
		})
	}
}

func TestProductRepository_Update(t *testing.T) {
	for name, repo := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			created := seed(t, repo, 100)[0]
			later := created.UpdatedAt.Add(time.Hour)

			updated, err := repo.Update(ctx, created.ProductCode, func(p *models.Product) error {
				p.Active = false
				p.UpdatedAt = later
				return nil
			})
			require.NoError(t, err)
			assert.False(t, updated.Active)
			assert.Equal(t, created.ProductCode, updated.ProductCode)

			got, err := repo.GetByCode(ctx, created.ProductCode)
			require.NoError(t, err)
			assert.False(t, got.Active)
			assert.True(t, later.Equal(got.UpdatedAt))
			assert.True(t, created.CreatedAt.Equal(got.CreatedAt))
		})
	}
}

func TestProductRepository_UpdateMutateErrorLeavesRowUntouched(t *testing.T) {
	for name, repo := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			created := seed(t, repo, 100)[0]
			boom := errors.New("boom")

			_, err := repo.Update(ctx, created.ProductCode, func(p *models.Product) error {
				p.Price = 1
				return boom
			})
			assert.ErrorIs(t, err, boom)

			got, err := repo.GetByCode(ctx, created.ProductCode)
			require.NoError(t, err)
			assert.Equal(t, 100, got.Price)
		})
	}
}

func TestProductRepository_UpdateNotFound(t *testing.T) {
	for name, repo := range stores(t) {
		t.Run(name, func(t *testing.T) {
			called := false
			_, err := repo.Update(context.Background(), 42, func(*models.Product) error {
				called = true
				return nil
			})
			assert.ErrorIs(t, err, repositories.ErrProductNotFound)
			assert.False(t, called)
		})
	}
}

func TestProductRepository_ListPagination(t *testing.T) {
	for name, repo := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			seed(t, repo, 10, 20, 30, 40, 50)

			var sizes []int
			var codes []int
			for page := 0; page < 4; page++ {
				items, total, err := repo.List(ctx, repositories.PageRequest{
					Page: page, Size: 2, SortBy: "productCode", Direction: repositories.Ascending,
				})
				require.NoError(t, err)
				assert.EqualValues(t, 5, total)
				sizes = append(sizes, len(items))
				for _, p := range items {
					codes = append(codes, p.ProductCode)
				}
			}

			assert.Equal(t, []int{2, 2, 1, 0}, sizes)
			assert.IsIncreasing(t, codes)
		})
	}
}

func TestProductRepository_ListSortByPriceDesc(t *testing.T) {
	for name, repo := range stores(t) {
		t.Run(name, func(t *testing.T) {
			seed(t, repo, 30, 10, 50, 20, 50, 40)

			items, total, err := repo.List(context.Background(), repositories.PageRequest{
				Page: 0, Size: 10, SortBy: "price", Direction: repositories.Descending,
			})
			require.NoError(t, err)
			assert.EqualValues(t, 6, total)

			prices := make([]int, 0, len(items))
			for _, p := range items {
				prices = append(prices, p.Price)
			}
			assert.Equal(t, []int{50, 50, 40, 30, 20, 10}, prices)
			// ties fall back to ascending code
			assert.Less(t, items[0].ProductCode, items[1].ProductCode)
		})
	}
}

func TestProductRepository_ListIncludesInactiveUnlessActiveOnly(t *testing.T) {
	for name, repo := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			created := seed(t, repo, 10, 20, 30)
			_, err := repo.Update(ctx, created[1].ProductCode, func(p *models.Product) error {
				p.Active = false
				return nil
			})
			require.NoError(t, err)

			all, total, err := repo.List(ctx, repositories.PageRequest{Page: 0, Size: 10, SortBy: "productCode"})
			require.NoError(t, err)
			assert.EqualValues(t, 3, total)
			assert.Len(t, all, 3)

			active, total, err := repo.List(ctx, repositories.PageRequest{Page: 0, Size: 10, SortBy: "productCode", ActiveOnly: true})
			require.NoError(t, err)
			assert.EqualValues(t, 2, total)
			for _, p := range active {
				assert.True(t, p.Active)
			}
		})
	}
}

func TestProductRepository_ListUnsupportedSortField(t *testing.T) {
	for name, repo := range stores(t) {
		t.Run(name, func(t *testing.T) {
			_, _, err := repo.List(context.Background(), repositories.PageRequest{Page: 0, Size: 10, SortBy: "price; DROP TABLE products"})
			assert.Error(t, err)
		})
	}
}

func TestProductRepository_ListHugePageIsEmpty(t *testing.T) {
	for name, repo := range stores(t) {
		t.Run(name, func(t *testing.T) {
			seed(t, repo, 10, 20, 30, 40, 50)

			for _, page := range []int{3074457345618258603, math.MaxInt} {
				items, total, err := repo.List(context.Background(), repositories.PageRequest{
					Page: page, Size: 3, SortBy: "productCode", Direction: repositories.Ascending,
				})
				require.NoError(t, err)
				assert.EqualValues(t, 5, total)
				assert.Empty(t, items, "page %d", page)
			}
		})
	}
}

func TestProductRepository_ListHugeSize(t *testing.T) {
	for name, repo := range stores(t) {
		t.Run(name, func(t *testing.T) {
			seed(t, repo, 10, 20, 30, 40, 50)

			items, total, err := repo.List(context.Background(), repositories.PageRequest{
				Page: 0, Size: math.MaxInt, SortBy: "productCode", Direction: repositories.Ascending,
			})
			require.NoError(t, err)
			assert.EqualValues(t, 5, total)
			assert.Len(t, items, 5)

			items, _, err = repo.List(context.Background(), repositories.PageRequest{
				Page: 1, Size: math.MaxInt, SortBy: "productCode", Direction: repositories.Ascending,
			})
			require.NoError(t, err)
			assert.Empty(t, items)
		})
	}
}

func TestPageRequest_Offset(t *testing.T) {
	assert.Equal(t, 0, repositories.PageRequest{Page: 0, Size: 10}.Offset())
	assert.Equal(t, 20, repositories.PageRequest{Page: 2, Size: 10}.Offset())
	assert.Equal(t, 0, repositories.PageRequest{Page: math.MaxInt, Size: 0}.Offset())
	assert.Equal(t, math.MaxInt, repositories.PageRequest{Page: 3074457345618258603, Size: 3}.Offset())
	assert.Equal(t, math.MaxInt, repositories.PageRequest{Page: 1, Size: math.MaxInt}.Offset())
}

func TestIsSortable(t *testing.T) {
	for _, field := range []string{"productCode", "name", "description", "price", "active", "createdAt", "updatedAt"} {
		assert.True(t, repositories.IsSortable(field), field)
	}
	assert.False(t, repositories.IsSortable("product_code"))
	assert.False(t, repositories.IsSortable(""))
}
