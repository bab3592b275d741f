package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Inventory fila del libro de inventario: una por variación.
// StockQuantity = Σ entradas - Σ salidas de la variación.
type Inventory struct {
	VariationID   int64
	StockQuantity int
	UpdatedAt     time.Time
}

// InventoryView inventario desnormalizado con su variación y producto (vista de la consola).
type InventoryView struct {
	VariationID   int64
	ProductID     int64
	ProductName   string
	SKU           string
	Type          string
	Value         string
	UnitPrice     decimal.Decimal
	StockQuantity int
	ProductStatus string
	UpdatedAt     *time.Time
}
