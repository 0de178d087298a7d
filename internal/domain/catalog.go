package domain

import "time"

type Category struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description,omitempty"`
}

type Vendor struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}

type Product struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	PriceCents   int64     `json:"price_cents"`
	Stock        int64     `json:"stock"`
	ImageURL     string    `json:"image_url,omitempty"`
	CategoryID   int64     `json:"category_id"`
	CategoryName string    `json:"category_name,omitempty"`
	VendorID     int64     `json:"vendor_id,omitempty"`
	VendorName   string    `json:"vendor_name,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

type ProductFilters struct {
	CategoryID    int64
	NameFulltext  string
	MinPriceCents int64
	MaxPriceCents int64
	InStockOnly   bool
}

type ProductListOptions struct {
	Ordering       []ProductOrdering
	Page, PageSize int
}

type ProductOrdering struct {
	Field ProductOrderingField
	Desc  bool
}

type ProductOrderingField string

const ProductOrderingFieldCreatedAt ProductOrderingField = "created_at"
const ProductOrderingFieldPrice ProductOrderingField = "price"
const ProductOrderingFieldName ProductOrderingField = "name"

var ValidProductOrderingFields = []ProductOrderingField{
	ProductOrderingFieldCreatedAt,
	ProductOrderingFieldPrice,
	ProductOrderingFieldName,
}
