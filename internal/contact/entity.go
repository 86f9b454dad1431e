// AngelaMos | 2026
// entity.go

package contact

import (
	"time"
)

type Contact struct {
	ID        int64     `db:"id"`
	FirstName string    `db:"first_name"`
	LastName  string    `db:"last_name"`
	Email     string    `db:"email"`
	Password  string    `db:"password"`
	Phone     int64     `db:"phone"`
	Birthday  time.Time `db:"birthday"`
	CreatedAt time.Time `db:"created_at"`
	Role      *string   `db:"role"`
}

// RoleName returns the assigned role or "" when none is set.
func (c Contact) RoleName() string {
	if c.Role == nil {
		return ""
	}
	return *c.Role
}

func (c Contact) IsAdmin() bool {
	return c.RoleName() == RoleAdmin
}

const (
	RoleAdmin     = "admin"
	RoleModerator = "moderator"
	RoleUser      = "user"
)

// Roles lists the values of the roles enum in declaration order.
var Roles = []string{RoleAdmin, RoleModerator, RoleUser}

func IsValidRole(role string) bool {
	for _, r := range Roles {
		if r == role {
			return true
		}
	}
	return false
}

const birthdayLayout = "2006-01-02"
