// Package record describes destination record types: which fields they have,
// the semantic type of each field, and how a cell string is assigned to it.
package record

import (
	"fmt"
	"strings"
	"time"
)

// FieldType is the semantic type of a record field.
type FieldType int

const (
	// Text fields receive the decoded string unchanged.
	Text FieldType = iota
	// Float32 fields receive a locale-formatted decimal number.
	Float32
	// Float64 fields receive a locale-formatted decimal number.
	Float64
	// Bool fields are true only for the decoded value "1".
	Bool
	// Int32 fields receive a locale-invariant integer literal.
	Int32
	// DateTime fields receive a locale-formatted date or date/time.
	DateTime
)

var fieldTypeNames = map[FieldType]string{
	Text:     "text",
	Float32:  "float32",
	Float64:  "float64",
	Bool:     "bool",
	Int32:    "int32",
	DateTime: "datetime",
}

var fieldTypeAliases = map[string]FieldType{
	"text":     Text,
	"string":   Text,
	"float32":  Float32,
	"float":    Float32,
	"single":   Float32,
	"float64":  Float64,
	"double":   Float64,
	"bool":     Bool,
	"boolean":  Bool,
	"int32":    Int32,
	"int":      Int32,
	"datetime": DateTime,
	"date":     DateTime,
	"time":     DateTime,
}

func (t FieldType) String() string {
	if name, ok := fieldTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("FieldType(%d)", int(t))
}

// Zero returns the default value of the type.
func (t FieldType) Zero() any {
	switch t {
	case Float32:
		return float32(0)
	case Float64:
		return float64(0)
	case Bool:
		return false
	case Int32:
		return int32(0)
	case DateTime:
		return time.Time{}
	default:
		return ""
	}
}

// ParseFieldType parses a type name such as "float64" or "date".
func ParseFieldType(s string) (FieldType, error) {
	t, ok := fieldTypeAliases[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return Text, fmt.Errorf("unknown field type %q", s)
	}
	return t, nil
}

// FieldSpec names a field and its type for schemas built at run time.
type FieldSpec struct {
	Name string
	Type FieldType
}

// ParseFieldSpec parses "Name" or "Name:type". The type defaults to text.
func ParseFieldSpec(s string) (FieldSpec, error) {
	name, typeName, hasType := s, "", false
	if idx := strings.LastIndex(s, ":"); idx >= 0 {
		name, typeName, hasType = s[:idx], s[idx+1:], true
	}
	if name == "" {
		return FieldSpec{}, fmt.Errorf("field spec %q has no name", s)
	}

	spec := FieldSpec{Name: name, Type: Text}
	if hasType {
		t, err := ParseFieldType(typeName)
		if err != nil {
			return FieldSpec{}, fmt.Errorf("field %q: %w", name, err)
		}
		spec.Type = t
	}
	return spec, nil
}
