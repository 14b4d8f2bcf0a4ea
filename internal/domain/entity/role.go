// Package entity contains the core business objects of the project.
package entity

// Role represents the type of role an account can have in the system.
// It is fixed at registration and never changes afterwards.
type Role string

const (
	// RoleUser indicates a regular shopper account.
	RoleUser Role = "user"
	// RoleSeller indicates an account that can own and list products.
	RoleSeller Role = "seller"
	// RoleAdmin indicates an administrative account.
	RoleAdmin Role = "admin"
)

// String returns the string representation of the Role.
func (r Role) String() string {
	return string(r)
}

// IsValid checks if the Role is a valid value.
func (r Role) IsValid() bool {
	switch r {
	case RoleUser, RoleSeller, RoleAdmin:
		return true
	default:
		return false
	}
}

// CanListProducts reports whether accounts with this role may own products.
func (r Role) CanListProducts() bool {
	return r == RoleSeller || r == RoleAdmin
}
