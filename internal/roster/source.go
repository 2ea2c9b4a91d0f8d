// Package roster builds the in-memory student directory from raw,
// spreadsheet-derived batches and answers lookups against it.
package roster

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/nnrgconnect/backend/internal/pkg/logger"
)

// Row is one raw source row: column name to cell value. Column names are
// not consistent across batches; normalization resolves them through
// ordered alias lists.
type Row map[string]string

// Batch is one raw source table of student rows.
type Batch struct {
	Name string
	Rows []Row
}

// Source supplies raw batches to the normalizer.
type Source interface {
	Batches() ([]Batch, error)
}

// StaticSource serves fixed batches, used for tests and embedding.
type StaticSource []Batch

func (s StaticSource) Batches() ([]Batch, error) {
	return []Batch(s), nil
}

// DirSource reads batches from a directory. Every *.json file (an array
// of string-keyed objects) and *.xlsx file (first sheet, header row as
// column names) becomes one batch. Batches are ordered by file name so
// the roster order stays deterministic across loads.
type DirSource struct {
	Dir string
}

func (s DirSource) Batches() ([]Batch, error) {
	entries, err := os.ReadDir(s.Dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory source %q: %w", s.Dir, err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if ext == ".json" || ext == ".xlsx" {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)

	batches := make([]Batch, 0, len(names))
	for _, name := range names {
		path := filepath.Join(s.Dir, name)
		batchName := strings.TrimSuffix(name, filepath.Ext(name))

		var rows []Row
		var err error
		if strings.EqualFold(filepath.Ext(name), ".json") {
			rows, err = readJSONBatch(path)
		} else {
			rows, err = readExcelBatch(path)
		}
		if err != nil {
			// One bad file must not take the surviving batches down
			// with it.
			logger.Warn().Err(err).Str("file", name).Msg("Skipping unreadable batch file")
			continue
		}

		batches = append(batches, Batch{Name: batchName, Rows: rows})
	}

	return batches, nil
}

// readJSONBatch parses a JSON array of objects. Numeric cells (Aadhar
// numbers, phone numbers) are coerced to their string form.
func readJSONBatch(path string) ([]Row, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var raw []map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	rows := make([]Row, 0, len(raw))
	for _, obj := range raw {
		row := make(Row, len(obj))
		for key, value := range obj {
			row[key] = coerceString(value)
		}
		rows = append(rows, row)
	}

	return rows, nil
}

// readExcelBatch reads the first sheet of an xlsx workbook, treating the
// first row as column names.
func readExcelBatch(path string) ([]Row, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	cells, err := f.GetRows(sheetName)
	if err != nil {
		return nil, err
	}

	if len(cells) < 2 {
		return nil, nil
	}

	header := cells[0]
	rows := make([]Row, 0, len(cells)-1)
	for _, line := range cells[1:] {
		row := make(Row, len(header))
		for i, key := range header {
			if key == "" {
				continue
			}
			if i < len(line) {
				row[key] = strings.TrimSpace(line[i])
			} else {
				row[key] = ""
			}
		}
		rows = append(rows, row)
	}

	return rows, nil
}

func coerceString(value interface{}) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		return fmt.Sprintf("%v", v)
	}
}
