package permissions

import (
	dbtypes "github.com/hyunwoo-lim/cabletrack-backend/pkg/db/types"
	"github.com/hyunwoo-lim/cabletrack-backend/pkg/enums"
)

// Action is the kind of access being requested against a resource.
type Action string

const (
	ActionRead  Action = "read"
	ActionWrite Action = "write"
)

// Decision is the outcome of a permission check. OwnOnly means access
// is granted but must be scoped to records the member created.
type Decision struct {
	Allowed bool
	OwnOnly bool
}

// Check resolves whether a member may perform action on resource.
// Owners and admins bypass the per-resource grants entirely.
func Check(role enums.MemberRole, grants dbtypes.PermissionMap, resource enums.PermissionResource, action Action) Decision {
	if role.IsAdmin() {
		return Decision{Allowed: true}
	}

	level := grants.Level(resource)
	switch level {
	case enums.PermissionLevelWrite:
		return Decision{Allowed: true}
	case enums.PermissionLevelRead:
		return Decision{Allowed: action == ActionRead}
	case enums.PermissionLevelOwnOnly:
		return Decision{Allowed: true, OwnOnly: true}
	default:
		return Decision{}
	}
}

// CanRead reports whether the member may list or view the resource at all.
func CanRead(role enums.MemberRole, grants dbtypes.PermissionMap, resource enums.PermissionResource) bool {
	return Check(role, grants, resource, ActionRead).Allowed
}

// CanWrite reports whether the member may create, update, or delete
// records of the resource without ownership scoping.
func CanWrite(role enums.MemberRole, grants dbtypes.PermissionMap, resource enums.PermissionResource) bool {
	d := Check(role, grants, resource, ActionWrite)
	return d.Allowed && !d.OwnOnly
}

// DefaultMemberGrants is what a plain member gets until an admin edits
// their grants.
func DefaultMemberGrants() dbtypes.PermissionMap {
	grants := dbtypes.PermissionMap{}
	for _, resource := range enums.PermissionResources() {
		grants[resource] = enums.PermissionLevelRead
	}
	return grants
}
