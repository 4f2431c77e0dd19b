package config

import (
	"fmt"
	"strings"
)

// ParseAssignment splits a NAME=VALUE environment entry as declared in a
// matrix file. The value may be empty; the name may not. Splitting happens
// on the first '=' only, so values can themselves contain '='.
func ParseAssignment(entry string) (Assignment, error) {
	name, value, ok := strings.Cut(entry, "=")
	if !ok {
		return Assignment{}, fmt.Errorf("environment entry %q is not of the form NAME=VALUE", entry)
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return Assignment{}, fmt.Errorf("environment entry %q has an empty variable name", entry)
	}
	return Assignment{Name: name, Value: value}, nil
}
