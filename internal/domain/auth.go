package domain

// Role differentiates what a token holder may do.
type Role string

const (
	// RoleOrganizer may schedule events and read any group.
	RoleOrganizer Role = "organizer"
	// RoleMember may only read the groups listed in its token.
	RoleMember Role = "member"
)

// Principal is the authenticated caller resolved from a bearer token.
type Principal struct {
	SubjectID string
	Role      Role
	Groups    []string
}

// CanAccessGroup reports whether the principal may read groupID.
func (p *Principal) CanAccessGroup(groupID string) bool {
	if p == nil {
		return false
	}
	if p.Role == RoleOrganizer {
		return true
	}
	for _, g := range p.Groups {
		if g == groupID {
			return true
		}
	}
	return false
}
