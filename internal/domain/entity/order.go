package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderTransaction registro de pago de una orden. Su reference_number se reutiliza en la salida de inventario.
type OrderTransaction struct {
	OrderTransactionID int64
	OrderID            int64
	ReferenceNumber    string
}

// Order orden desnormalizada con sus ítems (vista "orders with items" de la consola).
type Order struct {
	OrderID            int64
	OrderTransactionID *int64
	ReferenceNumber    string
	CustomerName       string
	DateOrdered        *time.Time
	TotalAmount        decimal.Decimal
	PaymentStatus      string
	OrderStatus        string
	Items              []OrderItem
}

// OrderItem línea de una orden.
type OrderItem struct {
	OrderItemID int64
	VariationID int64
	ProductName string
	Type        string
	Value       string
	Quantity    int
	UnitPrice   decimal.Decimal
}

// Estados de pago que la consola puede asignar.
var PaymentStatuses = []string{"Pending", "Paid", "Failed", "Refunded"}

// Estados de pedido que la consola puede asignar; "To Receive" y "Completed" son las
// pestañas que ve el cliente en la tienda.
var OrderStatuses = []string{"Pending", "Processing", "To Ship", "To Receive", "Completed", "Cancelled"}
