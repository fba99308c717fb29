package serializer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"text/tabwriter"
)

// Tabler is implemented by documents with a purpose-built table view.
type Tabler interface {
	Table() (headers []string, rows [][]string)
}

func renderTable(data any) ([]byte, error) {
	if t, ok := data.(Tabler); ok {
		headers, rows := t.Table()
		return writeTable(headers, rows), nil
	}

	// Generic view: flatten the JSON form into path/value pairs.
	b, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize to table: %w", err)
	}
	var generic any
	if err := json.Unmarshal(b, &generic); err != nil {
		return nil, fmt.Errorf("failed to serialize to table: %w", err)
	}

	flat := make(map[string]string)
	flatten("", generic, flat)

	keys := make([]string, 0, len(flat))
	for k := range flat {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	rows := make([][]string, 0, len(keys))
	for _, k := range keys {
		rows = append(rows, []string{k, flat[k]})
	}
	return writeTable([]string{"FIELD", "VALUE"}, rows), nil
}

func writeTable(headers []string, rows [][]string) []byte {
	var buf bytes.Buffer
	tw := tabwriter.NewWriter(&buf, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(headers, "\t"))
	for _, row := range rows {
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	_ = tw.Flush()
	return buf.Bytes()
}

func flatten(prefix string, v any, out map[string]string) {
	switch t := v.(type) {
	case map[string]any:
		for k, child := range t {
			key := k
			if prefix != "" {
				key = prefix + "." + k
			}
			flatten(key, child, out)
		}
	case []any:
		for i, child := range t {
			flatten(fmt.Sprintf("%s[%d]", prefix, i), child, out)
		}
	case nil:
		out[prefix] = ""
	default:
		out[prefix] = fmt.Sprint(t)
	}
}
