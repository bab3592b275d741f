package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de producto. Un producto archivado deja de mostrarse en el catálogo pero conserva su historial.
const (
	ProductStatusActive   = "active"
	ProductStatusArchived = "archived"
)

// Product producto del catálogo con sus variaciones (talla, color...).
type Product struct {
	ProductID   int64
	Name        string
	Description string
	Category    string
	Status      string
	CreatedAt   time.Time
	UpdatedAt   time.Time
	Variations  []ProductVariation
}

// ProductVariation variación vendible; cada una tiene su propia fila de inventario.
type ProductVariation struct {
	VariationID int64
	ProductID   int64
	Type        string
	Value       string
	SKU         string
	UnitPrice   decimal.Decimal
}
