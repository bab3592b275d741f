package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockInProductRequest línea de una entrada.
type StockInProductRequest struct {
	VariationID FlexInt         `json:"variation_id"`
	Quantity    FlexInt         `json:"quantity"`
	UnitCost    decimal.Decimal `json:"unit_cost"`
}

// CreateStockInRequest body para POST /api/stock-in.
type CreateStockInRequest struct {
	StockInProducts []StockInProductRequest `json:"stockInProducts"`
	ReferenceNumber string                  `json:"reference_number"`
	Supplier        string                  `json:"supplier"`
	EmployeeID      FlexInt                 `json:"employee_id"`
	StockInDate     FlexTime                `json:"stock_in_date"`
}

// StockInCreatedResponse respuesta 201 de una entrada registrada.
type StockInCreatedResponse struct {
	Message         string          `json:"message"`
	StockInID       int64           `json:"stock_in_id"`
	ReferenceNumber string          `json:"reference_number"`
	StockInDate     time.Time       `json:"stock_in_date"`
	TotalUnits      int             `json:"total_units"`
	TotalCost       decimal.Decimal `json:"total_cost"`
}

// StockInMovementResponse fila del historial de entradas.
type StockInMovementResponse struct {
	StockInID       int64           `json:"stock_in_id"`
	ReferenceNumber string          `json:"reference_number"`
	Supplier        string          `json:"supplier"`
	EmployeeID      int64           `json:"employee_id"`
	StockInDate     string          `json:"stock_in_date"`
	VariationID     int64           `json:"variation_id"`
	Quantity        int             `json:"quantity"`
	UnitCost        decimal.Decimal `json:"unit_cost"`
	Type            string          `json:"type"`
	Value           string          `json:"value"`
	SKU             string          `json:"sku"`
	Name            string          `json:"name"`
	EmployeeName    string          `json:"employee_name"`
}
