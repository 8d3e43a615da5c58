package user

type Role string

const (
	RoleCustomer Role = "customer"
	RoleBusiness Role = "business"
	RoleAdmin    Role = "admin"
)

func (r Role) String() string {
	return string(r)
}

func (r Role) IsValid() bool {
	switch r {
	case RoleCustomer, RoleBusiness, RoleAdmin:
		return true
	default:
		return false
	}
}

// Registration only ever produces customer or business accounts;
// admin is assigned out of band.
func (r Role) IsRegisterable() bool {
	return r == RoleCustomer || r == RoleBusiness
}

func NewRole(s string) (Role, error) {
	role := Role(s)
	if !role.IsValid() {
		return "", ErrInvalidRole
	}
	return role, nil
}
