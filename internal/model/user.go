package model

import "time"

type Role string

const (
	RoleCustomer Role = "usuario"
	RoleAdmin    Role = "admin"
)

func (r Role) IsAdmin() bool {
	return r == RoleAdmin
}

type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"nome"`
	Email        string    `json:"email"`
	Phone        string    `json:"telefone"`
	PasswordHash []byte    `json:"-"`
	Role         Role      `json:"tipo_usuario"`
	CreatedAt    time.Time `json:"criado_em"`
}
