// Package dataset loads the records gridview displays.
//
// Files are read whole into memory: JSON arrays of objects, JSON Lines, YAML
// sequences of maps, or CSV with a header row. Without a file, Generate builds
// the demo dataset of numbered users.
package dataset

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/five82/gridview/internal/grid"
)

// ErrUnsupportedFormat is returned for files whose extension is not known.
var ErrUnsupportedFormat = errors.New("unsupported dataset format")

type loadOptions struct {
	tail int
}

// Option adjusts how Load reads a dataset.
type Option func(*loadOptions)

// WithTail keeps only the last n records. Zero or less keeps everything.
func WithTail(n int) Option {
	return func(o *loadOptions) {
		o.tail = n
	}
}

// Load reads the dataset at path, choosing the decoder by extension.
func Load(path string, opts ...Option) ([]grid.Record, error) {
	var o loadOptions
	for _, opt := range opts {
		opt(&o)
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("read dataset: %w", err)
	}
	defer file.Close()

	var records []grid.Record
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		records, err = DecodeJSON(file)
	case ".jsonl", ".ndjson":
		return DecodeJSONLines(file, o.tail)
	case ".yaml", ".yml":
		records, err = DecodeYAML(file)
	case ".csv":
		records, err = DecodeCSV(file)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	if err != nil {
		return nil, err
	}
	if o.tail > 0 && len(records) > o.tail {
		records = records[len(records)-o.tail:]
	}
	return records, nil
}

// DecodeJSON decodes an array of objects. Numbers stay json.Number so their
// text form matches the file.
func DecodeJSON(r io.Reader) ([]grid.Record, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	var raw []map[string]any
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("parse json dataset: %w", err)
	}
	return toRecords(raw), nil
}

// DecodeYAML decodes a sequence of mappings.
func DecodeYAML(r io.Reader) ([]grid.Record, error) {
	var raw []map[string]any
	if err := yaml.NewDecoder(r).Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("parse yaml dataset: %w", err)
	}
	return toRecords(raw), nil
}

// DecodeCSV decodes CSV with a header row. Cells whose number form prints
// back as the exact cell text are stored as numbers; everything else, such as
// "007" or "1e3", stays a string.
func DecodeCSV(r io.Reader) ([]grid.Record, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv dataset: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	header := rows[0]
	out := make([]grid.Record, 0, len(rows)-1)
	for _, row := range rows[1:] {
		rec := make(grid.Record, len(header))
		for i, name := range header {
			if i >= len(row) {
				break
			}
			rec[strings.TrimSpace(name)] = csvValue(row[i])
		}
		out = append(out, rec)
	}
	return out, nil
}

func csvValue(cell string) any {
	if n, err := strconv.ParseInt(cell, 10, 64); err == nil {
		if text, _ := grid.Stringify(n); text == cell {
			return n
		}
		return cell
	}
	f, err := strconv.ParseFloat(cell, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return cell
	}
	if text, _ := grid.Stringify(f); text == cell {
		return f
	}
	return cell
}

func toRecords(raw []map[string]any) []grid.Record {
	out := make([]grid.Record, len(raw))
	for i, m := range raw {
		out[i] = grid.Record(m)
	}
	return out
}

// Generate builds n demo records: id i+1, name "User i+1", age 20+i%50.
func Generate(n int) []grid.Record {
	if n <= 0 {
		return nil
	}
	out := make([]grid.Record, n)
	for i := range out {
		out[i] = grid.Record{
			"id":   i + 1,
			"name": fmt.Sprintf("User %d", i+1),
			"age":  20 + i%50,
		}
	}
	return out
}

// InferColumns derives a column list from the records: the id field first,
// then the remaining field names in sorted order. Every column is sortable
// and gets a text filter.
func InferColumns(records []grid.Record) []grid.Column {
	seen := make(map[string]struct{})
	for _, r := range records {
		for k := range r {
			seen[k] = struct{}{}
		}
	}
	fields := make([]string, 0, len(seen))
	for k := range seen {
		if k != grid.IDField {
			fields = append(fields, k)
		}
	}
	slices.Sort(fields)
	if _, ok := seen[grid.IDField]; ok {
		fields = append([]string{grid.IDField}, fields...)
	}

	cols := make([]grid.Column, len(fields))
	for i, f := range fields {
		cols[i] = grid.Column{Field: f, Label: labelFor(f), Sortable: true, Filter: grid.FilterText}
	}
	return cols
}

func labelFor(field string) string {
	if field == grid.IDField {
		return "ID"
	}
	words := strings.FieldsFunc(field, func(r rune) bool { return r == '_' || r == '-' })
	return cases.Title(language.English).String(strings.Join(words, " "))
}

// Fingerprint identifies a version of a dataset file.
type Fingerprint struct {
	Size    int64
	ModTime time.Time
}

// Stat returns the fingerprint of the file at path.
func Stat(path string) (Fingerprint, error) {
	info, err := os.Stat(path)
	if err != nil {
		return Fingerprint{}, fmt.Errorf("stat dataset: %w", err)
	}
	return Fingerprint{Size: info.Size(), ModTime: info.ModTime()}, nil
}

// Equal reports whether two fingerprints describe the same file version.
func (f Fingerprint) Equal(other Fingerprint) bool {
	return f.Size == other.Size && f.ModTime.Equal(other.ModTime)
}
