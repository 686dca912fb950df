package config

import (
	"fmt"

	"github.com/bmatcuk/doublestar/v4"
)

func doublestarValidate(pattern string) (string, error) {
	if !doublestar.ValidatePattern(pattern) {
		return "", fmt.Errorf("invalid glob pattern %q", pattern)
	}
	return pattern, nil
}

// MatchAny reports whether name matches any of the given doublestar glob
// patterns, used to seed the Houdini deny-list from
// houdini.deny_implementations / houdini.deny_candidates before inference
// starts.
func MatchAny(patterns []string, name string) bool {
	for _, p := range patterns {
		ok, err := doublestar.Match(p, name)
		if err == nil && ok {
			return true
		}
	}
	return false
}
