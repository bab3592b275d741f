package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockIn cabecera de una entrada de inventario.
type StockIn struct {
	StockInID       int64
	ReferenceNumber string
	Supplier        string
	StockInDate     time.Time
	EmployeeID      int64
}

// StockInItem una fila por variación recibida.
type StockInItem struct {
	StockInID   int64
	VariationID int64
	Quantity    int
	UnitCost    decimal.Decimal
}

// StockInMovement fila del historial de entradas (fecha formateada en la base de datos).
type StockInMovement struct {
	StockInID       int64
	ReferenceNumber string
	Supplier        string
	EmployeeID      int64
	StockInDate     string
	VariationID     int64
	Quantity        int
	UnitCost        decimal.Decimal
	Type            string
	Value           string
	SKU             string
	Name            string
	EmployeeName    string
}
