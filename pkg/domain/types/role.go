package types

import "fmt"

// RoleFilter narrows match results to a profile role after ranking.
type RoleFilter string

const (
	// RoleFilterNone returns all matches regardless of role
	RoleFilterNone RoleFilter = ""

	// RoleFilterMentor keeps only profiles flagged as mentors
	RoleFilterMentor RoleFilter = "mentor"
)

// IsValid checks if the role filter is valid
func (r RoleFilter) IsValid() bool {
	switch r {
	case RoleFilterNone, RoleFilterMentor:
		return true
	default:
		return false
	}
}

// String returns the string representation of the role filter
func (r RoleFilter) String() string {
	return string(r)
}

// ParseRoleFilter parses a string into a RoleFilter
func ParseRoleFilter(s string) (RoleFilter, error) {
	filter := RoleFilter(s)
	if !filter.IsValid() {
		return "", fmt.Errorf("invalid role filter: %s", s)
	}
	return filter, nil
}
