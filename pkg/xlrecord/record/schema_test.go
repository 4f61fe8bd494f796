package record

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item struct {
	Name   string
	Price  float32
	Weight float64
	Active bool
	Count  int32
	Due    time.Time
}

func itemSchema() *Schema[item] {
	return New("Item", func() item { return item{Name: "unnamed", Count: -1} }).
		Text("Name", func(r *item, v string) { r.Name = v }).
		Float32("Price", func(r *item, v float32) { r.Price = v }).
		Float64("Weight", func(r *item, v float64) { r.Weight = v }).
		Bool("Active", func(r *item, v bool) { r.Active = v }).
		Int32("Count", func(r *item, v int32) { r.Count = v }).
		Time("Due", func(r *item, v time.Time) { r.Due = v })
}

func TestSchema(t *testing.T) {
	s := itemSchema()

	assert.Equal(t, "Item", s.Name())
	assert.Equal(t, []string{"Name", "Price", "Weight", "Active", "Count", "Due"}, s.Fields())
	assert.Equal(t, item{Name: "unnamed", Count: -1}, s.New())

	f, ok := s.Field("Price")
	require.True(t, ok)
	assert.Equal(t, "Price", f.Name())
	assert.Equal(t, Float32, f.Type())

	_, ok = s.Field("price")
	assert.False(t, ok, "field lookup is case-sensitive")
}

func TestSchemaAssign(t *testing.T) {
	s := itemSchema()
	c := &Coercer{}
	rec := s.New()

	values := map[string]string{
		"Name":   "bolt",
		"Price":  "0.25",
		"Weight": "1,000.5",
		"Active": "1",
		"Count":  "12",
		"Due":    "2024-06-30",
	}
	for name, value := range values {
		f, ok := s.Field(name)
		require.True(t, ok, name)
		require.NoError(t, f.Assign(&rec, value, c), name)
	}

	assert.Equal(t, item{
		Name:   "bolt",
		Price:  0.25,
		Weight: 1000.5,
		Active: true,
		Count:  12,
		Due:    time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC),
	}, rec)

	f, _ := s.Field("Count")
	err := f.Assign(&rec, "many", c)
	assert.ErrorIs(t, err, ErrFormat)
	assert.Equal(t, int32(12), rec.Count, "failed assignment leaves the field unchanged")
}

func TestSchemaNilConstructor(t *testing.T) {
	s := New[item]("Item", nil)
	assert.Equal(t, item{}, s.New())
	assert.Empty(t, s.Fields())
}

func TestSchemaDuplicateFieldPanics(t *testing.T) {
	assert.Panics(t, func() {
		New[item]("Item", nil).
			Text("Name", func(r *item, v string) { r.Name = v }).
			Text("Name", func(r *item, v string) { r.Name = v })
	})
}

func TestSchemaFieldsIsACopy(t *testing.T) {
	s := itemSchema()
	fields := s.Fields()
	fields[0] = "changed"
	assert.Equal(t, "Name", s.Fields()[0])
}
