package enums

import "fmt"

// CableStatus represents the lifecycle state of an optical cable drum.
type CableStatus string

const (
	CableStatusInStock  CableStatus = "in_stock"
	CableStatusAssigned CableStatus = "assigned"
	CableStatusWaste    CableStatus = "waste"
	CableStatusUsedUp   CableStatus = "used_up"
)

var validCableStatuses = []CableStatus{
	CableStatusInStock,
	CableStatusAssigned,
	CableStatusWaste,
	CableStatusUsedUp,
}

// String implements fmt.Stringer.
func (c CableStatus) String() string {
	return string(c)
}

// IsValid reports whether the value is a known CableStatus.
func (c CableStatus) IsValid() bool {
	for _, candidate := range validCableStatuses {
		if candidate == c {
			return true
		}
	}
	return false
}

// IsTerminal reports whether a drum in this state accepts no further events.
func (c CableStatus) IsTerminal() bool {
	return c == CableStatusWaste || c == CableStatusUsedUp
}

// ParseCableStatus converts raw input into a CableStatus.
func ParseCableStatus(value string) (CableStatus, error) {
	for _, candidate := range validCableStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid cable status %q", value)
}

// CableLogType identifies the kind of event recorded in a drum's history.
type CableLogType string

const (
	CableLogTypeReceive CableLogType = "receive"
	CableLogTypeAssign  CableLogType = "assign"
	CableLogTypeUsage   CableLogType = "usage"
	CableLogTypeReturn  CableLogType = "return"
	CableLogTypeWaste   CableLogType = "waste"
)

var validCableLogTypes = []CableLogType{
	CableLogTypeReceive,
	CableLogTypeAssign,
	CableLogTypeUsage,
	CableLogTypeReturn,
	CableLogTypeWaste,
}

// String implements fmt.Stringer.
func (c CableLogType) String() string {
	return string(c)
}

// IsValid reports whether the value is a known CableLogType.
func (c CableLogType) IsValid() bool {
	for _, candidate := range validCableLogTypes {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseCableLogType converts raw input into a CableLogType.
func ParseCableLogType(value string) (CableLogType, error) {
	for _, candidate := range validCableLogTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid cable log type %q", value)
}
