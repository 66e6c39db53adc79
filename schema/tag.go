package schema

import (
	"fmt"
	"reflect"
	"strings"
	"sync"
)

// DefaultTagName is the struct tag consulted for field properties.
const DefaultTagName = "prop"

// ParsedTag is the property configuration carried by a struct field tag.
type ParsedTag struct {
	Name     string // Property name override; empty keeps the derived name
	Skip     bool   // Field is not a property (prop:"-")
	ReadOnly bool   // No field setter is produced (prop:",readonly" or "readonly")
}

// TagParser parses property tags and caches the results, since the same
// tag literal tends to repeat across types.
//
// Supported tag syntax:
//
//	`prop:"alias"`                 // Rename the property
//	`prop:"-"`                     // Skip field entirely
//	`prop:"readonly"`              // Getter only
//	`prop:"name:alias;readonly"`   // Options list
type TagParser struct {
	tagName string
	cache   map[string]*ParsedTag
	cacheMu sync.RWMutex
}

// NewTagParser creates a parser reading the given struct tag key.
func NewTagParser(tagName string) *TagParser {
	if tagName == "" {
		tagName = DefaultTagName
	}
	return &TagParser{
		tagName: tagName,
		cache:   make(map[string]*ParsedTag, 32),
	}
}

// TagName returns the struct tag key the parser reads.
func (p *TagParser) TagName() string { return p.tagName }

// ParseTag parses the property tag of a field. Fields without the tag get an
// empty configuration.
func (p *TagParser) ParseTag(fieldName string, tag reflect.StructTag) (*ParsedTag, error) {
	tagValue, ok := tag.Lookup(p.tagName)
	if !ok || tagValue == "" {
		return &ParsedTag{}, nil
	}

	p.cacheMu.RLock()
	if cached, exists := p.cache[tagValue]; exists {
		p.cacheMu.RUnlock()
		return cached, nil
	}
	p.cacheMu.RUnlock()

	parsed, err := parseTagValue(tagValue)
	if err != nil {
		return nil, fmt.Errorf("field %s: %w", fieldName, err)
	}

	p.cacheMu.Lock()
	p.cache[tagValue] = parsed
	p.cacheMu.Unlock()

	return parsed, nil
}

func parseTagValue(tagValue string) (*ParsedTag, error) {
	if tagValue == "-" {
		return &ParsedTag{Skip: true}, nil
	}

	parsed := &ParsedTag{}

	// Simple forms: a bare flag or a bare name
	if !strings.ContainsAny(tagValue, ";:,") {
		if tagValue == "readonly" {
			parsed.ReadOnly = true
		} else {
			parsed.Name = tagValue
		}
		return parsed, nil
	}

	// "alias,readonly" follows the encoding/json layout
	if name, rest, found := strings.Cut(tagValue, ","); found && !strings.ContainsAny(tagValue, ";:") {
		parsed.Name = name
		for _, flag := range strings.Split(rest, ",") {
			if err := parseFlag(parsed, strings.TrimSpace(flag)); err != nil {
				return nil, err
			}
		}
		return parsed, nil
	}

	for _, option := range strings.Split(tagValue, ";") {
		option = strings.TrimSpace(option)
		if option == "" {
			continue
		}
		if key, value, found := strings.Cut(option, ":"); found {
			switch strings.TrimSpace(key) {
			case "name":
				parsed.Name = strings.TrimSpace(value)
			default:
				return nil, fmt.Errorf("unknown tag option %q", key)
			}
			continue
		}
		if err := parseFlag(parsed, option); err != nil {
			return nil, err
		}
	}
	return parsed, nil
}

func parseFlag(tag *ParsedTag, flag string) error {
	switch flag {
	case "":
	case "readonly", "read_only":
		tag.ReadOnly = true
	default:
		return fmt.Errorf("unknown tag flag %q", flag)
	}
	return nil
}
