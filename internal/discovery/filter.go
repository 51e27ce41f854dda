// Package discovery selects registered tests by name.
package discovery

import (
	"path"
	"strings"

	"tdd/internal/registry"
)

// Filter filters registered tests by name pattern
type Filter struct{}

// NewFilter creates a new Filter
func NewFilter() *Filter {
	return &Filter{}
}

// FilterByName keeps the tests whose name matches pattern, in registry order.
// Patterns support * and ? wildcards, e.g. "widget_*" or "*member*"; a pattern
// without wildcards matches as a substring. Several patterns may be given
// separated by commas.
func (f *Filter) FilterByName(tests []*registry.Descriptor, pattern string) []*registry.Descriptor {
	if pattern == "" {
		return tests
	}

	var filtered []*registry.Descriptor
	for _, test := range tests {
		for _, p := range strings.Split(pattern, ",") {
			if p = strings.TrimSpace(p); p != "" && f.Match(test.Name, p) {
				filtered = append(filtered, test)
				break
			}
		}
	}
	return filtered
}

// Match reports whether name matches a single pattern.
func (f *Filter) Match(name, pattern string) bool {
	if matched, err := path.Match(pattern, name); err == nil && matched {
		return true
	}

	if strings.Contains(pattern, "*") {
		// Fall back to requiring every literal part, in order
		rest := name
		nonEmpty := false
		for _, part := range strings.Split(pattern, "*") {
			if part == "" {
				continue
			}
			nonEmpty = true
			i := strings.Index(rest, part)
			if i < 0 {
				return false
			}
			rest = rest[i+len(part):]
		}
		return nonEmpty
	}

	// No wildcards, simple contains check
	if !strings.Contains(pattern, "?") {
		return strings.Contains(name, pattern)
	}
	return false
}
