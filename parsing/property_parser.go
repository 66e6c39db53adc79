package parsing

import "strings"

const (
	keyPrefix = "parsing."

	// KeyEnableDefaultValue turns on ${key:default} handling when set to
	// "true", in any case.
	KeyEnableDefaultValue = keyPrefix + "enable-default-value"
	// KeyDefaultValueSeparator overrides the separator between key and
	// default value.
	KeyDefaultValueSeparator = keyPrefix + "default-value-separator"

	DefaultValueSeparator = ":"
)

// Variables is the source of placeholder values.
type Variables interface {
	Lookup(key string) (string, bool)
}

// Vars is a map-backed Variables.
type Vars map[string]string

func (v Vars) Lookup(key string) (string, bool) {
	value, ok := v[key]
	return value, ok
}

// Parse replaces every ${key} in text with its value from vars. With
// KeyEnableDefaultValue set, ${key:default} yields default when key is
// unset. Placeholders that cannot be resolved, and all placeholders when
// vars is nil, are left in place.
func Parse(text string, vars Variables) string {
	return NewTokenParser("${", "}", newVariableHandler(vars)).Parse(text)
}

type variableHandler struct {
	vars          Variables
	enableDefault bool
	separator     string
}

func newVariableHandler(vars Variables) *variableHandler {
	h := &variableHandler{vars: vars, separator: DefaultValueSeparator}
	if vars == nil {
		return h
	}
	if v, ok := vars.Lookup(KeyEnableDefaultValue); ok {
		h.enableDefault = strings.EqualFold(v, "true")
	}
	if v, ok := vars.Lookup(KeyDefaultValueSeparator); ok && v != "" {
		h.separator = v
	}
	return h
}

func (h *variableHandler) HandleToken(content string) string {
	if h.vars == nil {
		return "${" + content + "}"
	}

	if h.enableDefault {
		if k, def, found := strings.Cut(content, h.separator); found {
			if v, ok := h.vars.Lookup(k); ok {
				return v
			}
			return def
		}
	}
	if v, ok := h.vars.Lookup(content); ok {
		return v
	}
	return "${" + content + "}"
}
