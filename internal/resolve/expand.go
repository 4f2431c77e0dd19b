package resolve

import (
	"fmt"
	"strings"
)

// expand substitutes ${NAME} and ${NAME:-fallback} references in value using
// the provided lookup. References are the only special syntax; a literal
// `${` is written as `$${`. A reference to an unbound variable with no
// fallback is an error, surfaced by the caller as UnresolvedVariableError.
func expand(value string, lookup func(string) (string, bool)) (string, error) {
	var b strings.Builder
	for {
		i := strings.Index(value, "${")
		if i < 0 {
			b.WriteString(value)
			return b.String(), nil
		}
		if i > 0 && value[i-1] == '$' {
			// `$${` escapes to a literal `${`.
			b.WriteString(value[:i-1])
			b.WriteString("${")
			value = value[i+2:]
			continue
		}
		b.WriteString(value[:i])
		rest := value[i+2:]
		end := strings.IndexByte(rest, '}')
		if end < 0 {
			return "", fmt.Errorf("unterminated variable reference in %q", value)
		}
		ref := rest[:end]
		value = rest[end+1:]

		name, fallback, hasFallback := strings.Cut(ref, ":-")
		if !validName(name) {
			return "", fmt.Errorf("invalid variable name %q", name)
		}
		if bound, ok := lookup(name); ok {
			b.WriteString(bound)
		} else if hasFallback {
			b.WriteString(fallback)
		} else {
			return "", &unboundError{Name: name}
		}
	}
}

// unboundError carries the name of an unbound reference up to the resolver,
// which wraps it with the owning job.
type unboundError struct {
	Name string
}

func (e *unboundError) Error() string {
	return fmt.Sprintf("variable %q is not bound and has no fallback", e.Name)
}

func validName(name string) bool {
	if name == "" {
		return false
	}
	for i, r := range name {
		switch {
		case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}
