package repository

import (
	"context"

	"github.com/jhoicas/tienda-api/internal/domain/entity"
)

// EmployeeRepository define el puerto para empleados de la consola.
type EmployeeRepository interface {
	// FindByEmail devuelve (nil, nil) si no existe.
	FindByEmail(ctx context.Context, email string) (*entity.Employee, error)
}
