package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
)

var _ repository.EmployeeRepository = (*EmployeeRepo)(nil)

// EmployeeRepo empleados de la consola.
type EmployeeRepo struct {
	q Querier
}

// NewEmployeeRepository construye el adaptador.
func NewEmployeeRepository(q Querier) *EmployeeRepo {
	return &EmployeeRepo{q: q}
}

// FindByEmail busca por email (sin distinguir mayúsculas). (nil, nil) si no existe.
func (r *EmployeeRepo) FindByEmail(ctx context.Context, email string) (*entity.Employee, error) {
	query := `
		SELECT employee_id, first_name, last_name, email, password_hash, role, status, created_at
		FROM employee WHERE lower(email) = lower($1)`
	var e entity.Employee
	err := r.q.QueryRow(ctx, query, email).Scan(
		&e.EmployeeID, &e.FirstName, &e.LastName, &e.Email, &e.PasswordHash, &e.Role, &e.Status, &e.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find employee by email: %w", err)
	}
	return &e, nil
}
