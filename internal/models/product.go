package models

import "time"

// Product represents a product in the store. Products are never removed;
// deletion clears Active. ProductCode and Price live in 32-bit INTEGER
// columns.
type Product struct {
	ProductCode int       `gorm:"column:product_code;primaryKey;autoIncrement"`
	Name        string    `gorm:"column:name;size:100;not null"`
	Description *string   `gorm:"column:description;size:500"`
	Price       int       `gorm:"column:price;not null"`
	Active      bool      `gorm:"column:active;not null"`
	CreatedAt   time.Time `gorm:"column:created_at;not null;autoCreateTime:false;<-:create"`
	UpdatedAt   time.Time `gorm:"column:updated_at;not null;autoUpdateTime:false"`
}

// TableName pins the table name used by the migrations.
func (Product) TableName() string {
	return "products"
}

// ProductCreateRequest is the body of a create call.
type ProductCreateRequest struct {
	Name        string  `json:"name" validate:"required,notblank,min=3,max=100"`
	Description *string `json:"description" validate:"omitempty,max=500"`
	Price       *int    `json:"price" validate:"required,gt=0,max=2147483647"`
	Active      *bool   `json:"active"`
}

// ProductUpdateRequest is the body of an update call. Nil fields are left
// untouched.
type ProductUpdateRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=3,max=100"`
	Description *string `json:"description" validate:"omitempty,max=500"`
	Price       *int    `json:"price" validate:"omitempty,gt=0,max=2147483647"`
	Active      *bool   `json:"active"`
}

// ProductResponse is the wire representation of a product.
type ProductResponse struct {
	ProductCode int           `json:"productCode"`
	Name        string        `json:"name"`
	Description *string       `json:"description"`
	Price       int           `json:"price"`
	Active      bool          `json:"active"`
	CreatedAt   LocalDateTime `json:"createdAt"`
	UpdatedAt   LocalDateTime `json:"updatedAt"`
}

// ProductQuery carries the list parameters as received on the wire.
type ProductQuery struct {
	Page          int    `query:"page" validate:"gte=0"`
	Size          int    `query:"size" validate:"gte=1"`
	SortBy        string `query:"sortBy"`
	SortDirection string `query:"sortDirection"`
}

// DefaultProductQuery returns the query used when no parameters are given.
func DefaultProductQuery() ProductQuery {
	return ProductQuery{
		Page:          0,
		Size:          10,
		SortBy:        "productCode",
		SortDirection: "ASC",
	}
}
