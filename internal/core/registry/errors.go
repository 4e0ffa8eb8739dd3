package registry

import (
	"fmt"
	"sort"
	"strings"
)

// NotFoundError is returned when a token matches no registered name or alias.
type NotFoundError struct {
	// Token is the name as typed by the user.
	Token string

	// Known holds the registered names (including aliases) for diagnostics.
	Known []string
}

func (e *NotFoundError) Error() string {
	if len(e.Known) == 0 {
		return fmt.Sprintf("unknown plugin %q (registry is empty)", e.Token)
	}
	return fmt.Sprintf("unknown plugin %q, available:\n%s",
		e.Token, EnumerateNames(e.Known, "  ", 72))
}

// AmbiguousError is returned when partial resolution matches more than one
// registered name or alias.
type AmbiguousError struct {
	Token   string
	Matches []string
}

func (e *AmbiguousError) Error() string {
	matches := append([]string(nil), e.Matches...)
	sort.Strings(matches)
	return fmt.Sprintf("plugin name %q is ambiguous, matches: %s",
		e.Token, strings.Join(matches, ", "))
}

// ConflictError is returned when a registration would bind a taken name or
// alias to a different underlying plugin type.
type ConflictError struct {
	Name           string
	ExistingTypeID string
	NewTypeID      string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("duplicate plugin name %q: already registered by %s, refusing %s",
		e.Name, e.ExistingTypeID, e.NewTypeID)
}

// EnumerateNames renders names as a sorted, comma-separated block wrapped at
// the given width, each line prefixed. Used for "available plugins" output.
func EnumerateNames(names []string, prefix string, width int) string {
	sorted := append([]string(nil), names...)
	sort.Strings(sorted)

	var lines []string
	line := prefix
	for _, name := range sorted {
		if len(line) > 0 && !strings.HasSuffix(line, " ") && line != prefix {
			line += ", "
		}
		if len(line)+len(name) >= width {
			if line != prefix {
				lines = append(lines, line)
			}
			line = prefix + name
		} else {
			line += name
		}
	}
	if line != prefix {
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}
