package constants

// Roles carried in JWT claims
const (
	RoleCustomer = "customer"
	RoleStaff    = "staff"
	RoleAdmin    = "admin"

	// Special role matching any authenticated caller
	RoleAny = "any"
)

// Role groups for convenience
var (
	StaffRoles = []string{
		RoleStaff,
		RoleAdmin,
	}
)
