// Package sheet turns uploaded spreadsheet bytes into a types.Grid.
//
// Only the first sheet of a workbook is read, cut to its used range, and
// the first row of that range is kept verbatim as the header row. CSV files
// are accepted as a single sheet.
package sheet

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/moyoez/statusboard/types"
)

var (
	// ErrDecode wraps every failure to turn bytes into a grid.
	ErrDecode = errors.New("failed to decode spreadsheet")
	// ErrUnsupported is returned for file names whose extension no decoder handles.
	ErrUnsupported = errors.New("unsupported file type")
)

// Extensions lists the accepted file extensions, used for the file picker too.
var Extensions = []string{".xlsx", ".xlsm", ".xltx", ".xltm", ".csv"}

// Supported reports whether name has an accepted extension.
func Supported(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range Extensions {
		if e == ext {
			return true
		}
	}
	return false
}

// Decode parses data into a grid, choosing the decoder from the extension of name.
func Decode(name string, data []byte) (types.Grid, error) {
	if !Supported(name) {
		return nil, fmt.Errorf("%w: %q", ErrUnsupported, filepath.Ext(name))
	}
	if strings.EqualFold(filepath.Ext(name), ".csv") {
		return decodeCSV(data)
	}
	return decodeWorkbook(data)
}

// Open reads a spreadsheet from disk and decodes it.
func Open(path string) (types.Grid, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return Decode(filepath.Base(path), data)
}

func decodeWorkbook(data []byte) (types.Grid, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	defer f.Close()

	name := f.GetSheetName(0)
	if name == "" {
		return nil, fmt.Errorf("%w: workbook has no sheets", ErrDecode)
	}
	rows, err := f.GetRows(name)
	if err != nil {
		return nil, fmt.Errorf("%w: sheet %q: %v", ErrDecode, name, err)
	}
	ref, err := f.GetSheetDimension(name)
	if err != nil {
		return nil, fmt.Errorf("%w: sheet %q: %v", ErrDecode, name, err)
	}
	return usedRange(ref, rows), nil
}

// usedRange cuts rows to the sheet's used range so row 0 is the first row of
// data and column 0 its first column. Blank rows inside the range are kept.
// A missing or single-cell dimension (excelize writes "A1" and never updates
// it) is derived from the first non-empty cells instead.
func usedRange(ref string, rows [][]string) types.Grid {
	row0, col0, rowEnd := -1, -1, len(rows)
	if start, end, ok := strings.Cut(ref, ":"); ok {
		startCol, startRow, startErr := excelize.CellNameToCoordinates(start)
		_, endRow, endErr := excelize.CellNameToCoordinates(end)
		if startErr == nil && endErr == nil && endRow >= startRow {
			row0, col0, rowEnd = startRow-1, startCol-1, endRow
		}
	}
	if row0 < 0 {
		row0, col0 = contentStart(rows)
	}

	grid := make(types.Grid, 0, max(rowEnd-row0, 0))
	for r := row0; r < rowEnd; r++ {
		var row []string
		if r < len(rows) && col0 < len(rows[r]) {
			row = rows[r][col0:]
		}
		grid = append(grid, row)
	}
	return grid
}

// contentStart returns the first row holding a value and the leftmost column
// holding a value in any row.
func contentStart(rows [][]string) (int, int) {
	row0, col0 := -1, -1
	for r, row := range rows {
		for c, cell := range row {
			if cell == "" {
				continue
			}
			if row0 < 0 {
				row0 = r
			}
			if col0 < 0 || c < col0 {
				col0 = c
			}
			break
		}
	}
	if row0 < 0 {
		return 0, 0
	}
	return row0, col0
}

func decodeCSV(data []byte) (types.Grid, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return types.Grid(rows), nil
}
