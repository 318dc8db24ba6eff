package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin      = "ADMIN"
	RoleFSM        = "FSM" // gerente de ventas y flota
	RoleHCE        = "HCE" // ejecutivo de alquiler
	RoleEngineer   = "ENGINEER"
	RoleScaffolder = "SCAFFOLDER"
	RoleDriver     = "DRIVER"
	RoleSecurity   = "SECURITY"
)

// Estados de User.
const (
	UserStatusActive   = "ACTIVE"
	UserStatusInactive = "INACTIVE"
)

// User representa un empleado con acceso al sistema.
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Name         string
	Phone        string
	Role         string
	Status       string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsValidRole indica si role es uno de los roles conocidos.
func IsValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleFSM, RoleHCE, RoleEngineer, RoleScaffolder, RoleDriver, RoleSecurity:
		return true
	}
	return false
}
