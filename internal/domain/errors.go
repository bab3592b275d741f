package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound                 = errors.New("recurso no encontrado")
	ErrInvalidInput             = errors.New("entrada inválida")
	ErrDuplicate                = errors.New("registro duplicado")
	ErrUnauthorized             = errors.New("no autorizado")
	ErrForbidden                = errors.New("acceso denegado")
	ErrEmployeeNotFound         = errors.New("empleado no encontrado")
	ErrVariationNotFound        = errors.New("la variación no tiene registro de inventario")
	ErrOrderTransactionNotFound = errors.New("transacción de orden no encontrada")
)
