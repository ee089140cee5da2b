package model

import (
	"fmt"
	"strings"
)

// Side identifies which version of a diff a review comment is anchored to.
type Side string

const (
	SideLeft  Side = "LEFT"  // Deleted or unchanged content in the base.
	SideRight Side = "RIGHT" // Added or unchanged content in the head.
)

// ParseSide converts a command-line side argument into a Side.
// Matching is case-insensitive; anything other than LEFT or RIGHT is rejected.
func ParseSide(s string) (Side, error) {
	switch Side(strings.ToUpper(strings.TrimSpace(s))) {
	case SideLeft:
		return SideLeft, nil
	case SideRight:
		return SideRight, nil
	default:
		return "", fmt.Errorf("invalid side %q: expected LEFT or RIGHT", s)
	}
}
