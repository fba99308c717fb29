// Package importer validates service readings in bulk from CSV exports.
//
// The first CSV row names the columns. Columns are field identifiers, except
// for an optional identity column (serialNumber by default) that labels each
// row. A UTF-8 byte order mark written by spreadsheet exports is removed.
//
// Rows are validated independently on a bounded number of workers. Results
// keep input order.
package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/cinefleet/fleetcheck/pkg/defaults"
	fcerrors "github.com/cinefleet/fleetcheck/pkg/errors"
	"github.com/cinefleet/fleetcheck/pkg/header"
	"github.com/cinefleet/fleetcheck/pkg/measurement"
	"github.com/cinefleet/fleetcheck/pkg/validator"
)

// Kind is the kind for import results.
const Kind = "ImportResult"

// Row is the validation outcome of one CSV data row.
type Row struct {
	// Line is the 1-based line number in the input, the header being line 1.
	Line     int                 `json:"line" yaml:"line"`
	ID       string              `json:"id,omitempty" yaml:"id,omitempty"`
	Findings []validator.Finding `json:"findings,omitempty" yaml:"findings,omitempty"`
	Summary  validator.Summary   `json:"summary" yaml:"summary"`
}

// Result is the outcome of an import.
type Result struct {
	header.Header `json:",inline" yaml:",inline"`

	Columns []measurement.Field `json:"columns" yaml:"columns"`

	// Unvalidated lists columns with no registered range.
	Unvalidated []measurement.Field `json:"unvalidated,omitempty" yaml:"unvalidated,omitempty"`

	Rows     []Row             `json:"rows" yaml:"rows"`
	Summary  validator.Summary `json:"summary" yaml:"summary"`
	Duration time.Duration     `json:"duration" yaml:"duration"`
}

// InvalidRows returns the number of rows with at least one error.
func (r *Result) InvalidRows() int {
	n := 0
	for _, row := range r.Rows {
		if !row.Summary.IsValid {
			n++
		}
	}
	return n
}

// Table implements serializer.Tabler.
func (r *Result) Table() ([]string, [][]string) {
	headers := []string{"LINE", "ID", "FIELD", "SEVERITY", "CATEGORY", "MESSAGE"}

	var rows [][]string
	for _, row := range r.Rows {
		line := fmt.Sprint(row.Line)
		if len(row.Findings) == 0 {
			rows = append(rows, []string{line, row.ID, "", "ok", "", ""})
			continue
		}
		for _, f := range row.Findings {
			rows = append(rows, []string{line, row.ID, string(f.Field), string(f.Severity), string(f.Category), f.Message})
		}
	}

	rows = append(rows, []string{
		"TOTAL", fmt.Sprintf("%d rows", len(r.Rows)), "",
		fmt.Sprintf("errors=%d warnings=%d", r.Summary.Errors, r.Summary.Warnings),
		"", fmt.Sprintf("invalid rows=%d", r.InvalidRows()),
	})
	return headers, rows
}

// Importer validates CSV readings.
type Importer struct {
	validator *validator.Validator
	idColumn  string
	workers   int
	version   string
}

// Option is a functional option for configuring Importer instances.
type Option func(*Importer)

// WithIDColumn sets the column that identifies rows. An empty name means no
// identity column.
func WithIDColumn(name string) Option {
	return func(i *Importer) {
		i.idColumn = name
	}
}

// WithWorkers sets the number of rows validated concurrently.
func WithWorkers(n int) Option {
	return func(i *Importer) {
		if n > 0 {
			i.workers = n
		}
	}
}

// WithVersion sets the version stamped into result metadata.
func WithVersion(version string) Option {
	return func(i *Importer) {
		i.version = version
	}
}

// New returns an Importer validating with v.
func New(v *validator.Validator, opts ...Option) *Importer {
	i := &Importer{
		validator: v,
		idColumn:  defaults.ImportIDColumn,
		workers:   defaults.ImportWorkers,
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Import reads CSV from r and validates every row.
func (i *Importer) Import(ctx context.Context, r io.Reader) (*Result, error) {
	start := time.Now()

	decoded := transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder()))
	reader := csv.NewReader(decoded)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	head, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, fcerrors.New(fcerrors.ErrCodeInvalidRequest, "csv input is empty")
	}
	if err != nil {
		return nil, fcerrors.Wrap(fcerrors.ErrCodeInvalidRequest, "failed to read csv header", err)
	}

	columns, idIndex, err := i.parseHeader(head)
	if err != nil {
		return nil, err
	}

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fcerrors.Wrap(fcerrors.ErrCodeInvalidRequest, "failed to read csv", err)
	}

	result := &Result{
		Rows: make([]Row, len(records)),
	}
	result.Init(Kind, header.DefaultAPIVersion(Kind), i.version)
	skip := make([]bool, len(columns))
	for idx, c := range columns {
		if idx == idIndex {
			continue
		}
		if i.validator.Excludes(c) {
			skip[idx] = true
			continue
		}
		result.Columns = append(result.Columns, c)
		if _, ok := i.validator.Registry().Get(c); !ok {
			result.Unvalidated = append(result.Unvalidated, c)
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(i.workers)

	for n, record := range records {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			result.Rows[n] = i.validateRow(n+2, record, columns, idIndex, skip)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		importTotal.WithLabelValues("cancelled").Inc()
		return nil, err
	}

	summaries := make([]validator.Summary, 0, len(result.Rows))
	for _, row := range result.Rows {
		summaries = append(summaries, row.Summary)
	}
	result.Summary = validator.Combine(summaries...)
	result.Duration = time.Since(start)

	importTotal.WithLabelValues("success").Inc()
	importRowsTotal.Add(float64(len(result.Rows)))
	importDuration.Observe(result.Duration.Seconds())

	slog.Debug("csv import completed",
		"rows", len(result.Rows),
		"columns", len(result.Columns),
		"invalid_rows", result.InvalidRows(),
		"errors", result.Summary.Errors,
		"duration", result.Duration)

	return result, nil
}

func (i *Importer) parseHeader(head []string) ([]measurement.Field, int, error) {
	idIndex := -1
	seen := make(map[measurement.Field]bool, len(head))
	columns := make([]measurement.Field, 0, len(head))

	for idx, cell := range head {
		name := strings.TrimSpace(norm.NFC.String(cell))
		if name == "" {
			return nil, -1, fcerrors.New(fcerrors.ErrCodeInvalidRequest,
				fmt.Sprintf("csv header column %d is empty", idx+1))
		}
		field := measurement.Field(name)
		if seen[field] {
			return nil, -1, fcerrors.New(fcerrors.ErrCodeInvalidRequest,
				fmt.Sprintf("csv header repeats column %q", name))
		}
		seen[field] = true
		if i.idColumn != "" && strings.EqualFold(name, i.idColumn) {
			idIndex = idx
		}
		columns = append(columns, field)
	}

	return columns, idIndex, nil
}

func (i *Importer) validateRow(line int, record []string, columns []measurement.Field, idIndex int, skip []bool) Row {
	row := Row{Line: line}

	for idx, field := range columns {
		var cell string
		if idx < len(record) {
			cell = record[idx]
		}
		if idx == idIndex {
			row.ID = strings.TrimSpace(cell)
			continue
		}
		if skip[idx] {
			continue
		}
		row.Findings = append(row.Findings, i.validator.Validate(field, measurement.Parse(cell))...)
	}

	row.Summary = validator.Summarize(row.Findings)
	return row
}
