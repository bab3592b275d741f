package entity

import "time"

// Roles de empleados de la consola de administración.
const (
	RoleAdmin = "admin"
	RoleStaff = "staff"
)

// Employee empleado que ejecuta movimientos de inventario.
type Employee struct {
	EmployeeID   int64
	FirstName    string
	LastName     string
	Email        string
	PasswordHash string
	Role         string
	Status       string // active | inactive
	CreatedAt    time.Time
}

// FullName nombre para mostrar, igual que el historial de movimientos (first || ' ' || last).
func (e *Employee) FullName() string {
	return e.FirstName + " " + e.LastName
}
