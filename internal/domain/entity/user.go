package entity

import "time"

// Role rol de un usuario del portal. Enum cerrado: cualquier otro valor es inválido.
type Role string

// Roles válidos para User.
const (
	RoleAdmin Role = "admin"
	RoleStaff Role = "staff"
)

// Valid reporta si el rol es uno de los valores conocidos.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleStaff:
		return true
	}
	return false
}

// Resource áreas del portal cuya visibilidad depende del rol.
type Resource string

const (
	ResourceInvoices  Resource = "invoices"
	ResourceShipments Resource = "shipments"
	ResourceStock     Resource = "stock"
	ResourceDocuments Resource = "documents"
	ResourceUsers     Resource = "users"
)

// CanAccess decide la visibilidad por rol: admin ve todo;
// staff solo documentos y embarques.
func (r Role) CanAccess(res Resource) bool {
	switch r {
	case RoleAdmin:
		return true
	case RoleStaff:
		return res == ResourceDocuments || res == ResourceShipments
	}
	return false
}

// User representa un usuario del portal.
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	FullName     string
	Role         Role
	Department   string
	Status       string // active, inactive
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
