package restrictions

import "strings"

// DefaultRestricted is used when no list is configured.
var DefaultRestricted = []string{"Syria"}

// Normalize lower-cases a country name and collapses all whitespace, so
// " SYRIA ", "syria" and "Syria\t" compare equal.
func Normalize(country string) string {
	return strings.ToLower(strings.Join(strings.Fields(country), " "))
}

// List is a set of normalized country names.
type List map[string]struct{}

func NewList(countries ...string) List {
	l := make(List, len(countries))
	for _, c := range countries {
		if n := Normalize(c); n != "" {
			l[n] = struct{}{}
		}
	}
	return l
}

// ParseList reads a comma-separated list, falling back to DefaultRestricted.
func ParseList(csv string) List {
	l := NewList(strings.Split(csv, ",")...)
	if len(l) == 0 {
		return NewList(DefaultRestricted...)
	}
	return l
}

func (l List) Contains(country string) bool {
	n := Normalize(country)
	if n == "" {
		return false
	}
	_, ok := l[n]
	return ok
}
