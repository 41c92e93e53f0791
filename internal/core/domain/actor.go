package domain

// Actor is the authenticated caller's identity as threaded through every
// core operation. It replaces any ambient security-context lookup: handlers
// build it from the verified token and pass it down explicitly.
type Actor struct {
	UserID     string
	Roles      []Role
	Department Department
}

// HasRole reports whether the actor holds the given role.
func (a Actor) HasRole(role Role) bool {
	for _, r := range a.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// HasAnyRole reports whether the actor holds at least one of the roles.
func (a Actor) HasAnyRole(roles ...Role) bool {
	for _, r := range roles {
		if a.HasRole(r) {
			return true
		}
	}
	return false
}

// IsDepartmentScoped reports whether the actor's write access is limited to
// their own department. Admins act everywhere; department admins only
// within their department.
func (a Actor) IsDepartmentScoped() bool {
	return a.HasRole(RoleDepartmentAdmin) && !a.HasRole(RoleAdmin)
}
