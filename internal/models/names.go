package models

import "strings"

// NameSeparator joins multiple member names inside a single task field.
const NameSeparator = ", "

// ParseNames splits a joined name list, trimming entries and dropping empty
// and repeated ones. Order of first appearance is kept.
func ParseNames(joined string) []string {
	names := make([]string, 0)
	seen := make(map[string]struct{})
	for _, part := range strings.Split(joined, ",") {
		name := strings.TrimSpace(part)
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}
	return names
}

// JoinNames is the inverse of ParseNames.
func JoinNames(names []string) string {
	return strings.Join(ParseNames(strings.Join(names, ",")), NameSeparator)
}
