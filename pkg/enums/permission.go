package enums

import "fmt"

// PermissionResource names a record surface that can be granted per member.
type PermissionResource string

const (
	PermissionResourceIncoming  PermissionResource = "incoming"
	PermissionResourceOutgoing  PermissionResource = "outgoing"
	PermissionResourceUsage     PermissionResource = "usage"
	PermissionResourceInventory PermissionResource = "inventory"
)

var validPermissionResources = []PermissionResource{
	PermissionResourceIncoming,
	PermissionResourceOutgoing,
	PermissionResourceUsage,
	PermissionResourceInventory,
}

// String implements fmt.Stringer.
func (p PermissionResource) String() string {
	return string(p)
}

// IsValid reports whether the value is a known PermissionResource.
func (p PermissionResource) IsValid() bool {
	for _, candidate := range validPermissionResources {
		if candidate == p {
			return true
		}
	}
	return false
}

// ParsePermissionResource converts raw input into a PermissionResource.
func ParsePermissionResource(value string) (PermissionResource, error) {
	for _, candidate := range validPermissionResources {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid permission resource %q", value)
}

// PermissionResources returns every grantable resource in display order.
func PermissionResources() []PermissionResource {
	out := make([]PermissionResource, len(validPermissionResources))
	copy(out, validPermissionResources)
	return out
}

// PermissionLevel is the access tier granted for a single resource.
type PermissionLevel string

const (
	PermissionLevelNone    PermissionLevel = "none"
	PermissionLevelRead    PermissionLevel = "read"
	PermissionLevelWrite   PermissionLevel = "write"
	PermissionLevelOwnOnly PermissionLevel = "own_only"
)

var validPermissionLevels = []PermissionLevel{
	PermissionLevelNone,
	PermissionLevelRead,
	PermissionLevelWrite,
	PermissionLevelOwnOnly,
}

// String implements fmt.Stringer.
func (p PermissionLevel) String() string {
	return string(p)
}

// IsValid reports whether the value is a known PermissionLevel.
func (p PermissionLevel) IsValid() bool {
	for _, candidate := range validPermissionLevels {
		if candidate == p {
			return true
		}
	}
	return false
}

// ParsePermissionLevel converts raw input into a PermissionLevel.
func ParsePermissionLevel(value string) (PermissionLevel, error) {
	for _, candidate := range validPermissionLevels {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid permission level %q", value)
}
