package domain

import "time"

// Role determines what a user may do across the marketplace.
type Role string

const (
	RoleAdmin Role = "ADMIN"
	RoleAgent Role = "AGENT"
	RoleUser  Role = "USER"
)

// Valid reports whether the role is one of the known values.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleAgent, RoleUser:
		return true
	}
	return false
}

// CanPublishListings reports whether the role may own property listings.
func (r Role) CanPublishListings() bool {
	return r == RoleAgent || r == RoleAdmin
}

// User is the domain model for marketplace accounts.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         Role
	Avatar       string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
