package entity

import "time"

// ReferenceNumberMaxLen longitud máxima de stock_out.reference_number / stock_in.reference_number.
const ReferenceNumberMaxLen = 255

// StockOut cabecera de una salida de inventario. Se crea una vez y no se modifica.
type StockOut struct {
	StockOutID         int64
	ReferenceNumber    string
	StockOutDate       time.Time
	OrderTransactionID *int64 // nil = ajuste manual
	EmployeeID         int64
}

// StockOutItem una fila por variación afectada, creada en la misma transacción que su cabecera.
type StockOutItem struct {
	StockOutID  int64
	VariationID int64
	Quantity    int
	Reason      string
}

// StockOutRecord fila cruda de una salida (cabecera + ítem) para la consulta por ID.
type StockOutRecord struct {
	StockOutID      int64
	ReferenceNumber string
	StockOutDate    time.Time
	VariationID     int64
	Quantity        int
	Reason          string
}

// StockOutMovement fila del historial: ítem + cabecera + variación + producto + empleado.
// StockOutDate ya viene formateada desde la base de datos (MM-DD-YYYY, HH:MI AM).
type StockOutMovement struct {
	StockOutID      int64
	ReferenceNumber string
	EmployeeID      int64
	StockOutDate    string
	VariationID     int64
	Quantity        int
	Reason          string
	Type            string
	Value           string
	SKU             string
	Name            string
	EmployeeName    string
}
