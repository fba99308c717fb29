package ranges

import "strings"

// Table implements serializer.Tabler.
func (d *Document) Table() ([]string, [][]string) {
	headers := []string{"FIELD", "CATEGORY", "UNIT", "ABSOLUTE", "NORMAL", "CRITICAL", "DIRECTION", "SEVERITY"}

	rows := make([][]string, 0, len(d.Specs))
	for _, s := range d.Specs {
		if s.Kind() == KindEnumerated {
			rows = append(rows, []string{
				string(s.Field), string(s.Category), s.Unit,
				strings.Join(s.ValidValues, ","),
				strings.Join(s.NormalValues, ","),
				strings.Join(s.CriticalValues, ","),
				"", string(s.CriticalSeverity),
			})
			continue
		}
		rows = append(rows, []string{
			string(s.Field), string(s.Category), s.Unit,
			intervalOrEmpty(s.Absolute),
			intervalOrEmpty(s.Normal),
			intervalOrEmpty(s.Critical),
			string(s.CriticalDirection), string(s.CriticalSeverity),
		})
	}
	return headers, rows
}

func intervalOrEmpty(i *Interval) string {
	if i == nil {
		return ""
	}
	return i.String()
}
