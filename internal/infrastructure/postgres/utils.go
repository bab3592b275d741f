package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// pgErrorCode devuelve el SQLSTATE del error de PostgreSQL, o "" si err no proviene del servidor.
func pgErrorCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// isForeignKeyViolation 23503: variación, empleado u orden inexistente.
func isForeignKeyViolation(err error) bool {
	return pgErrorCode(err) == "23503"
}

// isUniqueViolation 23505: SKU repetido.
func isUniqueViolation(err error) bool {
	return pgErrorCode(err) == "23505"
}
