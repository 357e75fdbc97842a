package domain

const (
	RoleRegular = "regular"
	RoleAdmin   = "admin"
	RoleBanned  = "banned"
)

// Role is static reference data; users point at a role by ID.
type Role struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// DefaultRoles is the seed set created at startup when missing.
var DefaultRoles = []Role{
	{
		Name:        RoleRegular,
		Description: "A regular user can view, create and read data. They can edit and delete only their own data.",
	},
	{
		Name:        RoleAdmin,
		Description: "An admin user has full access and permissions to do anything and everything within this API.",
	},
	{
		Name:        RoleBanned,
		Description: "A banned user can read data, but cannot do anything else.",
	},
}
