// Package output renders imported records for the command line.
package output

import (
	"fmt"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/goccy/go-yaml"
	"github.com/ukaji3/xlrecord-go/pkg/xlrecord/record"
)

// Format is an output format name.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatText Format = "text"
)

// ToJSON serializes v to JSON.
func ToJSON(v any, pretty bool) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(v, "", "  ")
	}
	return json.Marshal(v)
}

// ToYAML serializes v to YAML.
func ToYAML(v any) ([]byte, error) {
	return yaml.Marshal(v)
}

// ToText renders records one per line, values joined by "|" in field order.
func ToText(records []record.Dynamic, fields []string) []byte {
	var b strings.Builder
	for _, rec := range records {
		for i, v := range rec.Values(fields) {
			if i > 0 {
				b.WriteByte('|')
			}
			b.WriteString(textValue(v))
		}
		b.WriteByte('\n')
	}
	return []byte(b.String())
}

func textValue(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case time.Time:
		return x.Format(time.RFC3339)
	default:
		return fmt.Sprint(x)
	}
}

// Render serializes records in the given format. fields orders text output.
func Render(records []record.Dynamic, fields []string, format Format, pretty bool) ([]byte, error) {
	if records == nil {
		records = []record.Dynamic{}
	}
	switch format {
	case FormatJSON, "":
		return ToJSON(records, pretty)
	case FormatYAML:
		return ToYAML(records)
	case FormatText:
		return ToText(records, fields), nil
	default:
		return nil, fmt.Errorf("unknown output format %q", format)
	}
}
