package model

import (
	"fmt"
	"strings"
)

// Role is the closed set of account roles.  Authorization decisions are
// membership tests over this type, never raw string comparison, so an
// unknown role can only enter the system through ParseRole which rejects it.
type Role string

const (
	RoleStudent   Role = "STUDENT"
	RoleParent    Role = "PARENT"
	RoleDonor     Role = "DONOR"
	RoleCounselor Role = "COUNSELOR"
	RoleAdmin     Role = "ADMIN"
)

// Roles lists every valid role in a stable order.
var Roles = []Role{RoleStudent, RoleParent, RoleDonor, RoleCounselor, RoleAdmin}

// ParseRole normalizes raw input (trims whitespace, upper-cases) and returns
// the matching Role.  Anything outside the closed set is an error.
func ParseRole(raw string) (Role, error) {
	r := Role(strings.ToUpper(strings.TrimSpace(raw)))
	for _, known := range Roles {
		if r == known {
			return r, nil
		}
	}
	return "", fmt.Errorf("unknown role %q", raw)
}

// String returns the role as stored in the users.role column.
func (r Role) String() string { return string(r) }

// In reports whether the role is a member of the given set.
func (r Role) In(allowed ...Role) bool {
	for _, a := range allowed {
		if r == a {
			return true
		}
	}
	return false
}

// CampaignOwnerRoles are the roles permitted to create, list and delete
// their own campaigns.
var CampaignOwnerRoles = []Role{RoleStudent, RoleParent}
