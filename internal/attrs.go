package internal

import (
	"errors"
	"strings"
)

// Attribute kinds the built-in dispatch types act on. Unknown kinds pass
// through unmodified so new dispatch types can be added without touching
// the parser.
const (
	attrPath   = "Path"
	attrRegex  = "Regex"
	attrAction = "Action"
	attrRoles  = "Roles"
)

// Attributes maps an attribute kind to its ordered list of values.
type Attributes map[string][]string

// Values returns the ordered values for the given kind, nil if absent.
func (a Attributes) Values(kind string) []string {
	return a[kind]
}

// Has reports whether at least one value exists for the given kind.
func (a Attributes) Has(kind string) bool {
	return len(a[kind]) > 0
}

// First returns the first value for the given kind, or "" if absent.
func (a Attributes) First(kind string) string {
	if v := a[kind]; len(v) > 0 {
		return v[0]
	}
	return ""
}

var errUnterminatedTag = errors.New("missing closing parenthesis")

// splitTag splits a raw attribute tag into kind and optional value.
// The value is the parenthesized argument with surrounding quotes stripped.
func splitTag(tag string) (kind, value string, hasValue bool, err error) {
	open := strings.IndexByte(tag, '(')
	if open < 0 {
		return strings.TrimSpace(tag), "", false, nil
	}
	if !strings.HasSuffix(tag, ")") {
		return "", "", false, errUnterminatedTag
	}
	kind = strings.TrimSpace(tag[:open])
	value = tag[open+1 : len(tag)-1]
	if len(value) >= 2 {
		if q := value[0]; (q == '"' || q == '\'') && value[len(value)-1] == q {
			value = value[1 : len(value)-1]
		}
	}
	return kind, value, true, nil
}

// parseTags normalizes raw attribute tags for one action into an attribute
// map. Relative paths and local regex patterns resolve against the
// namespace prefix; shorthand kinds collapse into Path values.
//
// A malformed tag is a configuration error reported at startup.
func parseTags(tags []string, name, namespace string) (Attributes, error) {
	attrs := make(Attributes, len(tags))
	add := func(kind, value string) {
		attrs[kind] = append(attrs[kind], value)
	}

	for _, tag := range tags {
		kind, value, hasValue, err := splitTag(tag)
		if err != nil {
			return nil, &ConfigError{Err: err, Action: joinPath(namespace, name), Tag: tag}
		}

		switch kind {
		case "Global", "Absolute":
			add(attrPath, "/"+name)
		case "Local", "Relative":
			add(attrPath, joinPath(namespace, name))
		case attrPath:
			switch {
			case strings.HasPrefix(value, "/"):
				add(attrPath, value)
			case value != "":
				add(attrPath, joinPath(namespace, value))
			default:
				add(attrPath, namespace)
			}
		case attrRegex, "Regexp":
			add(attrRegex, value)
		case "LocalRegex", "LocalRegexp":
			if rest, anchored := strings.CutPrefix(value, "^"); anchored {
				value = rest
			} else {
				value = ".*?" + value
			}
			add(attrRegex, "^"+joinPath(namespace, "")+value)
		case attrAction:
			add(attrAction, value)
		case attrRoles:
			for _, role := range strings.Split(value, ",") {
				if role = strings.TrimSpace(role); role != "" {
					add(attrRoles, role)
				}
			}
		default:
			// Extensibility point: unknown kinds are stored verbatim for
			// custom dispatch types to act on.
			if hasValue {
				add(kind, value)
			} else {
				add(kind, "")
			}
		}
	}
	return attrs, nil
}

// joinPath joins a namespace prefix and a relative element. The namespace
// of the root controller is "", so "auto" under the root stays "auto"
// while "auto" under "books" becomes "books/auto". A trailing empty
// element yields the namespace followed by "/".
func joinPath(namespace, elem string) string {
	if namespace == "" {
		return elem
	}
	return namespace + "/" + elem
}

// normalizePath strips leading and trailing slashes so registration and
// lookup agree on one canonical spelling.
func normalizePath(path string) string {
	return strings.Trim(path, "/")
}
