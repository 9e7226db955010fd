package domain

import "time"

// Roles de usuario, mismos valores numericos que el resto del sistema.
const (
	RoleStudent = 0
	RoleTeacher = 1
	RoleAdmin   = 2
)

// User se consume como colaborador externo: aqui no hay CRUD de
// usuarios, solo lectura para notificaciones y chequeos de propiedad.
type User struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	DisplayName string    `json:"display_name,omitempty"`
	ClassName   string    `json:"class_name,omitempty"`
	Role        int       `json:"role"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}
