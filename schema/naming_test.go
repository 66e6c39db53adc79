package schema

import (
	"reflect"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccessorNames(t *testing.T) {
	tests := []struct {
		method   string
		getter   bool
		setter   bool
		property string
	}{
		{"GetFirstName", true, false, "firstName"},
		{"IsActive", true, false, "active"},
		{"SetFirstName", false, true, "firstName"},
		{"GetURL", true, false, "URL"},
		{"Issue", false, false, ""},
		{"Getaway", false, false, ""},
		{"Settle", false, false, ""},
		{"Get", false, false, ""},
		{"Get_x", true, false, "_x"},
	}

	for _, tt := range tests {
		t.Run(tt.method, func(t *testing.T) {
			assert.Equal(t, tt.getter, isGetterName(tt.method))
			assert.Equal(t, tt.setter, isSetterName(tt.method))
			if tt.property != "" {
				assert.Equal(t, tt.property, methodToProperty(tt.method))
			}
		})
	}
}

func TestDecapitalize(t *testing.T) {
	assert.Equal(t, "name", decapitalize("Name"))
	assert.Equal(t, "URL", decapitalize("URL"))
	assert.Equal(t, "x", decapitalize("X"))
	assert.Equal(t, "", decapitalize(""))
	assert.Equal(t, "éclair", decapitalize("Éclair"))
}

func TestIsValidPropertyName(t *testing.T) {
	for name, valid := range map[string]bool{
		"name":          true,
		"":              false,
		"_hidden":       false,
		"XXX_sizecache": false,
		"sizeCache":     false,
		"unknownFields": false,
		"class":         false,
		"Class":         true,
	} {
		assert.Equal(t, valid, isValidPropertyName(name), name)
	}
}

func TestParseTag(t *testing.T) {
	tests := []struct {
		tag      string
		expected ParsedTag
	}{
		{"", ParsedTag{}},
		{"-", ParsedTag{Skip: true}},
		{"alias", ParsedTag{Name: "alias"}},
		{"readonly", ParsedTag{ReadOnly: true}},
		{",readonly", ParsedTag{ReadOnly: true}},
		{"alias,readonly", ParsedTag{Name: "alias", ReadOnly: true}},
		{"name:alias;readonly", ParsedTag{Name: "alias", ReadOnly: true}},
		{"name: spaced ; read_only", ParsedTag{Name: "spaced", ReadOnly: true}},
	}

	p := NewTagParser("")
	assert.Equal(t, DefaultTagName, p.TagName())

	for _, tt := range tests {
		t.Run(tt.tag, func(t *testing.T) {
			parsed, err := p.ParseTag("Field", reflectTag(tt.tag))
			require.NoError(t, err)
			assert.Equal(t, tt.expected, *parsed)
		})
	}

	for _, bad := range []string{"alias,bogus", "color:red", "name:x;bogus"} {
		_, err := p.ParseTag("Field", reflectTag(bad))
		assert.Error(t, err, bad)
	}
}

func reflectTag(value string) reflect.StructTag {
	return reflect.StructTag(DefaultTagName + ":" + strconv.Quote(value))
}
