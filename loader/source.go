package loader

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Table is the raw grid read from a source: a header row and data rows.
type Table struct {
	Headers []string
	Rows    [][]string
	// SerialDates is set when numeric date cells are spreadsheet serial
	// day numbers rather than formatted text.
	SerialDates bool
}

// Source reads one spreadsheet format.
type Source interface {
	Name() string
	Extensions() []string
	Read(r io.Reader) (*Table, error)
}

// Registry holds all registered sources.
type Registry struct {
	sources []Source
}

// NewRegistry creates a registry with the default xlsx and csv sources.
func NewRegistry() *Registry {
	return &Registry{
		sources: []Source{
			&XLSXSource{},
			&CSVSource{},
		},
	}
}

// Add registers an additional source.
func (r *Registry) Add(s Source) {
	r.sources = append(r.sources, s)
}

// ForPath returns the source handling the file's extension.
func (r *Registry) ForPath(path string) (Source, error) {
	ext := strings.ToLower(filepath.Ext(path))
	for _, s := range r.sources {
		for _, e := range s.Extensions() {
			if e == ext {
				return s, nil
			}
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
}

// ForFormat returns the source registered under name ("xlsx", "csv"), or
// the source owning the extension "."+name.
func (r *Registry) ForFormat(name string) (Source, error) {
	name = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(name), "."))
	for _, s := range r.sources {
		if s.Name() == name {
			return s, nil
		}
	}
	return r.ForPath("x." + name)
}

// XLSXSource reads the first worksheet of an Excel workbook.
type XLSXSource struct{}

func (s *XLSXSource) Name() string         { return "xlsx" }
func (s *XLSXSource) Extensions() []string { return []string{".xlsx", ".xlsm"} }

func (s *XLSXSource) Read(r io.Reader) (*Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}
	rows, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}
	t, err := newTable(rows)
	if err != nil {
		return nil, err
	}
	t.SerialDates = true
	return t, nil
}

// CSVSource reads comma-separated text with a header row.
type CSVSource struct{}

func (s *CSVSource) Name() string         { return "csv" }
func (s *CSVSource) Extensions() []string { return []string{".csv"} }

func (s *CSVSource) Read(r io.Reader) (*Table, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))

	cr := csv.NewReader(bytes.NewReader(data))
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}
	return newTable(rows)
}

// newTable splits the header row off and pads ragged rows. Fully blank
// rows are dropped.
func newTable(rows [][]string) (*Table, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("sheet is empty")
	}
	headers := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		headers[i] = strings.TrimSpace(h)
	}
	t := &Table{Headers: headers}
	for _, row := range rows[1:] {
		if isBlank(row) {
			continue
		}
		cells := make([]string, len(headers))
		copy(cells, row)
		t.Rows = append(t.Rows, cells)
	}
	return t, nil
}

func isBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
