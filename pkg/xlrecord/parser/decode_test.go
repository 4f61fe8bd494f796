package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukaji3/xlrecord-go/pkg/xlrecord/models"
)

func TestDecodeCell(t *testing.T) {
	sst := models.SharedStrings{"zero", "one", "two"}

	tests := []struct {
		name     string
		cell     models.RawCell
		expected string
	}{
		{"plain number", models.RawCell{Column: "A", Text: "42.5"}, "42.5"},
		{"other kind", models.RawCell{Column: "A", Text: "inline", Kind: models.KindOther}, "inline"},
		{"shared string", models.RawCell{Column: "A", Text: "2", Kind: models.KindSharedString}, "two"},
		{"shared string zero", models.RawCell{Column: "A", Text: "0", Kind: models.KindSharedString}, "zero"},
		{"boolean true", models.RawCell{Column: "A", Text: "1", Kind: models.KindBoolean}, "TRUE"},
		{"boolean false", models.RawCell{Column: "A", Text: "0", Kind: models.KindBoolean}, "FALSE"},
		{"boolean other", models.RawCell{Column: "A", Text: "yes", Kind: models.KindBoolean}, "yes"},
		{"boolean empty", models.RawCell{Column: "A", Kind: models.KindBoolean}, ""},
		{"empty plain", models.RawCell{Column: "A"}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeCell(tt.cell, sst)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestDecodeCellSharedStringErrors(t *testing.T) {
	sst := models.SharedStrings{"only"}

	for _, text := range []string{"1", "-1", "abc", "", "99999999999999999999"} {
		_, err := DecodeCell(models.RawCell{Column: "A", Text: text, Kind: models.KindSharedString}, sst)
		assert.ErrorIs(t, err, ErrSharedStringIndex, "text %q", text)
	}

	_, err := DecodeCell(models.RawCell{Column: "A", Text: "0", Kind: models.KindSharedString}, nil)
	assert.ErrorIs(t, err, ErrSharedStringIndex)
}
