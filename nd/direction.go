// Copyright 2025 The go-ndsort Authors. SPDX-License-Identifier: Apache-2.0

package nd

import (
	"fmt"
	"strings"
)

// Direction selects the order a sort produces.
type Direction int

const (
	Ascending  Direction = 1  // Sort ascending
	Descending Direction = -1 // Sort descending
)

// FromAscending maps the boolean direction flag (true means ascending) to a
// Direction.
func FromAscending(ascending bool) Direction {
	if ascending {
		return Ascending
	}
	return Descending
}

// IsAscending reports whether d is Ascending.
func (d Direction) IsAscending() bool {
	return d != Descending
}

// String returns "asc" or "desc".
func (d Direction) String() string {
	switch d {
	case Ascending:
		return "asc"
	case Descending:
		return "desc"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}

// ParseDirection parses "asc", "ascending", "desc" or "descending"
// (case-insensitive).
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "asc", "ascending":
		return Ascending, nil
	case "desc", "descending":
		return Descending, nil
	}
	return 0, fmt.Errorf("invalid sort direction %q", s)
}
