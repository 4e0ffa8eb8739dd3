package discovery

import (
	"os"
	"strings"
)

// DefaultToken is the placeholder that expands to a source list's defaults,
// so a derived configuration can say "defaults plus X" without repeating the
// defaults.
const DefaultToken = "DEFAULT"

// Sources selects which catalogs (or listers) a strategy draws from.
// Precedence: Custom over environment over Defaults. The environment list is
// unioned with Defaults unless ReplaceDefaults is set; both Custom and the
// environment list may contain the DEFAULT placeholder.
type Sources struct {
	// Defaults is the built-in source list.
	Defaults []string

	// EnvVar names an environment variable holding a comma-separated source
	// list. Empty disables the environment override.
	EnvVar string

	// Custom, when non-empty, overrides both defaults and environment.
	Custom []string

	// ReplaceDefaults opts out of unioning the environment list with
	// Defaults.
	ReplaceDefaults bool
}

// Resolve returns the effective, deduplicated source list in first-mention
// order.
func (s Sources) Resolve() []string {
	if len(s.Custom) > 0 {
		return dedupe(s.expand(s.Custom))
	}

	if env := s.envList(); env != nil {
		expanded := s.expand(env)
		if s.ReplaceDefaults {
			return dedupe(expanded)
		}
		return dedupe(append(append([]string{}, s.Defaults...), expanded...))
	}

	return dedupe(append([]string{}, s.Defaults...))
}

// Fingerprint returns a stable string identifying the effective sources,
// used as part of scan cache keys so a new source always misses the cache.
func (s Sources) Fingerprint() string {
	return strings.Join(s.Resolve(), ",")
}

func (s Sources) envList() []string {
	if s.EnvVar == "" {
		return nil
	}
	raw := os.Getenv(s.EnvVar)
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	list := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			list = append(list, trimmed)
		}
	}
	return list
}

// expand replaces the DEFAULT placeholder with the default list.
func (s Sources) expand(list []string) []string {
	expanded := make([]string, 0, len(list))
	for _, item := range list {
		if item == DefaultToken {
			expanded = append(expanded, s.Defaults...)
			continue
		}
		expanded = append(expanded, item)
	}
	return expanded
}

func dedupe(list []string) []string {
	seen := make(map[string]struct{}, len(list))
	out := list[:0:0]
	for _, item := range list {
		if _, dup := seen[item]; dup {
			continue
		}
		seen[item] = struct{}{}
		out = append(out, item)
	}
	return out
}
