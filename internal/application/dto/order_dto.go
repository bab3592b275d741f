package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderResponse orden con sus ítems.
type OrderResponse struct {
	OrderID            int64               `json:"order_id"`
	OrderTransactionID *int64              `json:"order_transaction_id"`
	ReferenceNumber    string              `json:"reference_number"`
	CustomerName       string              `json:"customer_name"`
	DateOrdered        *time.Time          `json:"date_ordered"`
	TotalAmount        decimal.Decimal     `json:"total_amount"`
	PaymentStatus      string              `json:"payment_status"`
	OrderStatus        string              `json:"order_status"`
	Items              []OrderItemResponse `json:"items"`
}

// OrderItemResponse línea de una orden.
type OrderItemResponse struct {
	OrderItemID int64           `json:"order_item_id"`
	VariationID int64           `json:"variation_id"`
	ProductName string          `json:"product_name"`
	Type        string          `json:"type"`
	Value       string          `json:"value"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

// UpdateStatusRequest body de PUT /api/orders/:id/payment-status y /order-status.
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// OrderStatusesResponse estados asignables desde la consola.
type OrderStatusesResponse struct {
	PaymentStatuses []string `json:"payment_statuses"`
	OrderStatuses   []string `json:"order_statuses"`
}
