package entity

import "time"

// Rôles applicatifs.
const (
	RoleAdmin  = "admin"
	RoleClient = "client"
)

// User compte applicatif (back-office ou client enregistré).
type User struct {
	ID           string
	Email        string
	PasswordHash string
	Name         string
	Role         string // "admin" | "client"
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
