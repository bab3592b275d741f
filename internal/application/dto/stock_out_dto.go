package dto

import "time"

// StockOutProductRequest línea de una salida.
type StockOutProductRequest struct {
	VariationID FlexInt `json:"variation_id"`
	Quantity    FlexInt `json:"quantity"`
	Reason      string  `json:"reason"`
}

// CreateStockOutRequest body para POST /api/stock-out.
type CreateStockOutRequest struct {
	StockOutProducts   []StockOutProductRequest `json:"stockOutProducts"`
	OrderTransactionID FlexInt                  `json:"order_transaction_id"`
	EmployeeID         FlexInt                  `json:"employee_id"`
	StockOutDate       FlexTime                 `json:"stock_out_date"`
}

// StockOutCreatedResponse respuesta 201 de una salida registrada.
type StockOutCreatedResponse struct {
	Message         string    `json:"message"`
	StockOutID      int64     `json:"stock_out_id"`
	ReferenceNumber string    `json:"reference_number"`
	StockOutDate    time.Time `json:"stock_out_date"`
}

// StockOutMovementResponse fila del historial de salidas.
type StockOutMovementResponse struct {
	StockOutID      int64  `json:"stock_out_id"`
	ReferenceNumber string `json:"reference_number"`
	EmployeeID      int64  `json:"employee_id"`
	StockOutDate    string `json:"stock_out_date"` // MM-DD-YYYY, HH:MI AM
	VariationID     int64  `json:"variation_id"`
	Quantity        int    `json:"quantity"`
	Reason          string `json:"reason"`
	Type            string `json:"type"`
	Value           string `json:"value"`
	SKU             string `json:"sku"`
	Name            string `json:"name"`
	EmployeeName    string `json:"employee_name"`
}

// StockOutRecordResponse fila de GET /api/stock-out/:id (fecha sin formatear).
type StockOutRecordResponse struct {
	StockOutID      int64     `json:"stock_out_id"`
	ReferenceNumber string    `json:"reference_number"`
	StockOutDate    time.Time `json:"stock_out_date"`
	VariationID     int64     `json:"variation_id"`
	Quantity        int       `json:"quantity"`
	Reason          string    `json:"reason"`
}
