package dto

// LoginRequest entrada para login de empleados.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// EmployeeResponse salida de un empleado (sin password).
type EmployeeResponse struct {
	EmployeeID int64  `json:"employee_id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Role       string `json:"role"`
}

// LoginResponse salida con token JWT.
type LoginResponse struct {
	Token    string           `json:"token"`
	Employee EmployeeResponse `json:"employee"`
}
