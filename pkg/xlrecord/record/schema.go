package record

import (
	"fmt"
	"time"
)

// Field is one named, typed field of a record type.
type Field[T any] struct {
	name   string
	typ    FieldType
	assign func(rec *T, value string, c *Coercer) error
}

// Name returns the field name.
func (f *Field[T]) Name() string { return f.name }

// Type returns the field's semantic type.
func (f *Field[T]) Type() FieldType { return f.typ }

// Assign coerces value to the field's type and stores it in rec.
func (f *Field[T]) Assign(rec *T, value string, c *Coercer) error {
	return f.assign(rec, value, c)
}

// Schema is the field descriptor table of a record type T. Build it once,
// then share it; a Schema is not modified by imports.
//
//	schema := record.New("Entry", func() Entry { return Entry{} }).
//		Text("Name", func(e *Entry, v string) { e.Name = v }).
//		Float32("Price", func(e *Entry, v float32) { e.Price = v })
type Schema[T any] struct {
	name      string
	newRecord func() T
	fields    map[string]*Field[T]
	order     []string
}

// New creates an empty schema for records named name. newRecord constructs a
// record with default field values; nil means the zero value of T.
func New[T any](name string, newRecord func() T) *Schema[T] {
	return &Schema[T]{
		name:      name,
		newRecord: newRecord,
		fields:    make(map[string]*Field[T]),
	}
}

// Name returns the record type name.
func (s *Schema[T]) Name() string { return s.name }

// New returns a record with default field values.
func (s *Schema[T]) New() T {
	if s.newRecord == nil {
		var zero T
		return zero
	}
	return s.newRecord()
}

// Field returns the field with exactly the given name.
func (s *Schema[T]) Field(name string) (*Field[T], bool) {
	f, ok := s.fields[name]
	return f, ok
}

// Fields returns the field names in registration order.
func (s *Schema[T]) Fields() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// Text registers a text field.
func (s *Schema[T]) Text(name string, set func(*T, string)) *Schema[T] {
	return bind(s, name, Text, (*Coercer).Text, set)
}

// Float32 registers a 32-bit float field.
func (s *Schema[T]) Float32(name string, set func(*T, float32)) *Schema[T] {
	return bind(s, name, Float32, (*Coercer).Float32, set)
}

// Float64 registers a 64-bit float field.
func (s *Schema[T]) Float64(name string, set func(*T, float64)) *Schema[T] {
	return bind(s, name, Float64, (*Coercer).Float64, set)
}

// Bool registers a boolean field.
func (s *Schema[T]) Bool(name string, set func(*T, bool)) *Schema[T] {
	return bind(s, name, Bool, (*Coercer).Bool, set)
}

// Int32 registers a 32-bit integer field.
func (s *Schema[T]) Int32(name string, set func(*T, int32)) *Schema[T] {
	return bind(s, name, Int32, (*Coercer).Int32, set)
}

// Time registers a date/time field.
func (s *Schema[T]) Time(name string, set func(*T, time.Time)) *Schema[T] {
	return bind(s, name, DateTime, (*Coercer).Time, set)
}

func bind[T, V any](s *Schema[T], name string, typ FieldType, conv func(*Coercer, string) (V, error), set func(*T, V)) *Schema[T] {
	s.add(&Field[T]{
		name: name,
		typ:  typ,
		assign: func(rec *T, value string, c *Coercer) error {
			v, err := conv(c, value)
			if err != nil {
				return err
			}
			set(rec, v)
			return nil
		},
	})
	return s
}

// add panics on a duplicate name: schemas are built from code or validated
// specs, so a duplicate is a programming error.
func (s *Schema[T]) add(f *Field[T]) {
	if _, dup := s.fields[f.name]; dup {
		panic(fmt.Sprintf("record: duplicate field %q in schema %s", f.name, s.name))
	}
	s.fields[f.name] = f
	s.order = append(s.order, f.name)
}
