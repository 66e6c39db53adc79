package schema

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Property naming rules for accessor methods and struct fields.

// =========================================================================
// Accessor Conventions
// =========================================================================

const (
	getPrefix = "Get"
	isPrefix  = "Is"
	setPrefix = "Set"
)

// isGetterName reports whether a method name follows the getter convention:
// GetX or IsX, where the rune after the prefix is not lower-case. The rune
// check keeps ordinary names such as Issue or Getaway out.
func isGetterName(name string) bool {
	return hasAccessorPrefix(name, getPrefix) || hasAccessorPrefix(name, isPrefix)
}

// isSetterName reports whether a method name follows the setter convention SetX.
func isSetterName(name string) bool {
	return hasAccessorPrefix(name, setPrefix)
}

func hasAccessorPrefix(name, prefix string) bool {
	if len(name) <= len(prefix) || !strings.HasPrefix(name, prefix) {
		return false
	}
	r, _ := utf8.DecodeRuneInString(name[len(prefix):])
	return !unicode.IsLower(r)
}

// methodToProperty strips the accessor prefix from a method name and
// decapitalizes the rest: GetFirstName -> firstName, IsActive -> active,
// GetURL -> URL.
func methodToProperty(name string) string {
	switch {
	case strings.HasPrefix(name, isPrefix):
		name = name[len(isPrefix):]
	case strings.HasPrefix(name, getPrefix), strings.HasPrefix(name, setPrefix):
		name = name[len(getPrefix):]
	}
	return decapitalize(name)
}

// decapitalize lowers the first rune unless the first two runes are both
// upper-case, in which case the name is an acronym and is kept as is.
func decapitalize(name string) string {
	if name == "" {
		return name
	}
	first, size := utf8.DecodeRuneInString(name)
	if len(name) > size {
		second, _ := utf8.DecodeRuneInString(name[size:])
		if unicode.IsUpper(first) && unicode.IsUpper(second) {
			return name
		}
	}
	return string(unicode.ToLower(first)) + name[size:]
}

// =========================================================================
// Reserved Names
// =========================================================================

// Names never recorded as properties: the blank/private marker prefixes,
// protobuf's generated bookkeeping fields, and "class".
var (
	reservedPrefixes = []string{"_", "XXX_"}
	reservedNames    = map[string]struct{}{
		"sizeCache":     {},
		"unknownFields": {},
		"class":         {},
	}
)

func isValidPropertyName(name string) bool {
	if name == "" {
		return false
	}
	for _, p := range reservedPrefixes {
		if strings.HasPrefix(name, p) {
			return false
		}
	}
	_, reserved := reservedNames[name]
	return !reserved
}

// =========================================================================
// Case-Insensitive Keys
// =========================================================================

// indexKey is the key of the case-insensitive property index.
func indexKey(name string) string {
	return strings.ToUpper(name)
}

// stripUnderscores maps snake_case input onto camelCase property names for
// lookups: first_name -> firstname, which the index then matches
// case-insensitively against firstName.
func stripUnderscores(name string) string {
	return strings.ReplaceAll(name, "_", "")
}
