package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// InventoryResponse fila de la vista de inventario con variaciones.
type InventoryResponse struct {
	VariationID   int64           `json:"variation_id"`
	ProductID     int64           `json:"product_id"`
	ProductName   string          `json:"product_name"`
	SKU           string          `json:"sku"`
	Type          string          `json:"type"`
	Value         string          `json:"value"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	StockQuantity int             `json:"stock_quantity"`
	ProductStatus string          `json:"product_status"`
	UpdatedAt     *time.Time      `json:"updated_at,omitempty"`
}
