package record

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDynamicSchema(t *testing.T) {
	s, err := DynamicSchema("Row", []FieldSpec{
		{Name: "Name", Type: Text},
		{Name: "Qty", Type: Int32},
		{Name: "Shipped", Type: DateTime},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Name", "Qty", "Shipped"}, s.Fields())

	rec := s.New()
	assert.Equal(t, Dynamic{"Name": "", "Qty": int32(0), "Shipped": time.Time{}}, rec)

	c := &Coercer{}
	f, ok := s.Field("Qty")
	require.True(t, ok)
	require.NoError(t, f.Assign(&rec, "5", c))
	assert.Equal(t, int32(5), rec["Qty"])

	assert.ErrorIs(t, f.Assign(&rec, "five", c), ErrFormat)

	assert.Equal(t, []any{"", int32(5)}, rec.Values([]string{"Name", "Qty"}))
	assert.Equal(t, []any{nil}, rec.Values([]string{"Missing"}))

	other := s.New()
	assert.Equal(t, int32(0), other["Qty"], "records do not share state")
}

func TestDynamicSchemaDuplicate(t *testing.T) {
	_, err := DynamicSchema("Row", []FieldSpec{{Name: "A"}, {Name: "A", Type: Int32}})
	assert.Error(t, err)
}
