package dbtypes

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/hyunwoo-lim/cabletrack-backend/pkg/enums"
)

// PermissionMap stores per-resource access levels as a jsonb column.
type PermissionMap map[enums.PermissionResource]enums.PermissionLevel

func (m *PermissionMap) Scan(src any) error {
	if src == nil {
		*m = PermissionMap{}
		return nil
	}

	var raw []byte
	switch v := src.(type) {
	case string:
		raw = []byte(v)
	case []byte:
		raw = v
	default:
		return fmt.Errorf("PermissionMap: unsupported Scan type %T", src)
	}

	if len(raw) == 0 {
		*m = PermissionMap{}
		return nil
	}

	parsed := PermissionMap{}
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return fmt.Errorf("PermissionMap: %w", err)
	}
	*m = parsed
	return nil
}

func (m PermissionMap) Value() (driver.Value, error) {
	if m == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(m)
}

// Level returns the stored level for a resource, defaulting to none.
func (m PermissionMap) Level(resource enums.PermissionResource) enums.PermissionLevel {
	if m == nil {
		return enums.PermissionLevelNone
	}
	if level, ok := m[resource]; ok {
		return level
	}
	return enums.PermissionLevelNone
}

// Validate rejects unknown resources or levels.
func (m PermissionMap) Validate() error {
	for resource, level := range m {
		if !resource.IsValid() {
			return fmt.Errorf("unknown permission resource %q", resource)
		}
		if !level.IsValid() {
			return fmt.Errorf("unknown permission level %q for %q", level, resource)
		}
	}
	return nil
}

// Clone returns a shallow copy of the map.
func (m PermissionMap) Clone() PermissionMap {
	if m == nil {
		return nil
	}
	out := make(PermissionMap, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
