package record

import "fmt"

// Dynamic is a record whose fields are known only at run time.
type Dynamic map[string]any

// Values returns the values of the named fields in order.
func (d Dynamic) Values(fields []string) []any {
	out := make([]any, len(fields))
	for i, f := range fields {
		out[i] = d[f]
	}
	return out
}

// DynamicSchema builds a schema for Dynamic records with the given fields.
// Every field is present in a new record with its type's zero value.
func DynamicSchema(name string, specs []FieldSpec) (*Schema[Dynamic], error) {
	seen := make(map[string]bool, len(specs))
	for _, spec := range specs {
		if seen[spec.Name] {
			return nil, fmt.Errorf("duplicate field %q", spec.Name)
		}
		seen[spec.Name] = true
	}

	defaults := make([]FieldSpec, len(specs))
	copy(defaults, specs)
	s := New(name, func() Dynamic {
		d := make(Dynamic, len(defaults))
		for _, spec := range defaults {
			d[spec.Name] = spec.Type.Zero()
		}
		return d
	})

	for _, spec := range defaults {
		s.add(&Field[Dynamic]{
			name: spec.Name,
			typ:  spec.Type,
			assign: func(rec *Dynamic, value string, c *Coercer) error {
				v, err := c.Convert(spec.Type, value)
				if err != nil {
					return err
				}
				(*rec)[spec.Name] = v
				return nil
			},
		})
	}
	return s, nil
}
