package domain

import (
	"strings"
	"time"
)

// Role is a coarse permission tag checked by membership, not hierarchy.
type Role string

const (
	RoleUser   Role = "user"
	RoleAdmin  Role = "admin"
	RoleClient Role = "client"
)

// DefaultRoles is stored when a user is created without any role.
var DefaultRoles = []Role{RoleUser}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleAdmin, RoleClient:
		return true
	}
	return false
}

// User models a directory record.
type User struct {
	ID           string    `json:"id"`
	FullName     string    `json:"fullName"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Roles        []Role    `json:"roles"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Profile is the public projection of a User. It never carries the password hash.
type Profile struct {
	ID       string `json:"id"`
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Roles    []Role `json:"roles"`
}

// Profile projects the user onto its public fields.
func (u *User) Profile() Profile {
	return Profile{
		ID:       u.ID,
		FullName: u.FullName,
		Email:    u.Email,
		Roles:    append([]Role(nil), u.Roles...),
	}
}

// Identity is the claim set carried by a bearer token.
type Identity struct {
	ID       string `json:"id"`
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Roles    []Role `json:"roles"`
}

// Identity builds the claim set issued to this user at login.
func (u *User) Identity() Identity {
	return Identity{
		ID:       u.ID,
		FullName: u.FullName,
		Email:    u.Email,
		Roles:    append([]Role(nil), u.Roles...),
	}
}

// HasAnyRole reports whether the identity holds at least one of roles.
func (i Identity) HasAnyRole(roles ...Role) bool {
	for _, have := range i.Roles {
		for _, want := range roles {
			if have == want {
				return true
			}
		}
	}
	return false
}

// Profile projects the identity onto the public profile shape.
func (i Identity) Profile() Profile {
	return Profile{
		ID:       i.ID,
		FullName: i.FullName,
		Email:    i.Email,
		Roles:    append([]Role(nil), i.Roles...),
	}
}

// NormalizeEmail trims and lower-cases an address so uniqueness is case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
