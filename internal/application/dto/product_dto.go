package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest alta de producto. Sin variaciones se crea una variación "Default".
type CreateProductRequest struct {
	Name        string                    `json:"name"`
	Description string                    `json:"description"`
	Category    string                    `json:"category"`
	Variations  []ProductVariationRequest `json:"variations"`
}

// ProductVariationRequest variación a crear; su inventario arranca en 0.
type ProductVariationRequest struct {
	Type      string          `json:"type"`
	Value     string          `json:"value"`
	SKU       string          `json:"sku"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// UpdateProductRequest campos editables de un producto.
type UpdateProductRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category"`
}

// ProductResponse producto con sus variaciones.
type ProductResponse struct {
	ProductID   int64                      `json:"product_id"`
	Name        string                     `json:"name"`
	Description string                     `json:"description"`
	Category    string                     `json:"category"`
	Status      string                     `json:"status"`
	CreatedAt   time.Time                  `json:"created_at"`
	UpdatedAt   time.Time                  `json:"updated_at"`
	Variations  []ProductVariationResponse `json:"variations"`
}

type ProductVariationResponse struct {
	VariationID int64           `json:"variation_id"`
	Type        string          `json:"type"`
	Value       string          `json:"value"`
	SKU         string          `json:"sku"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}
