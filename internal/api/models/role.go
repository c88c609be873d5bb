package models

// Role is the closed set of account roles. Keeping it a named type (instead of
// raw string comparison scattered around) means an illegal role can only enter
// the system through the database, where the column default guards it.
type Role string

const (
	RoleUser      Role = "user"
	RoleModerator Role = "moderator"
	RoleAdmin     Role = "admin"
)

// Valid reports whether r is one of the three known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleModerator, RoleAdmin:
		return true
	}
	return false
}

func (r Role) IsAdmin() bool {
	return r == RoleAdmin
}

func (r Role) IsModerator() bool {
	return r == RoleModerator
}

// CanModerate reports whether the role may edit or delete content it does not
// own. Admins inherit every moderator capability.
func (r Role) CanModerate() bool {
	return r == RoleModerator || r == RoleAdmin
}
