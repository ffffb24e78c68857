package source

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/jaakkos/prodboard/internal/domain"
)

// headerScanRows is how many leading rows are searched for the header row.
const headerScanRows = 5

// column indexes of the recognised headers within a sheet row
type columns struct {
	account, required, revision, editor, category, missing int
}

// decodeWorkbook reads the first sheet whose header row names at least the
// account and required columns. Blank rows are skipped.
func decodeWorkbook(r io.Reader) ([]domain.RawAccount, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	for _, name := range f.GetSheetList() {
		rows, err := f.GetRows(name)
		if err != nil {
			continue
		}
		headerRow, cols, ok := findHeader(rows)
		if !ok {
			continue
		}
		return readRows(name, rows[headerRow+1:], headerRow+2, cols)
	}
	return nil, fmt.Errorf("workbook: no sheet with account and required columns")
}

func findHeader(rows [][]string) (int, columns, bool) {
	for i := 0; i < len(rows) && i < headerScanRows; i++ {
		cols := columns{account: -1, required: -1, revision: -1, editor: -1, category: -1, missing: -1}
		for j, cell := range rows[i] {
			switch strings.ToLower(strings.TrimSpace(cell)) {
			case "account":
				cols.account = j
			case "required":
				cols.required = j
			case "revision", "under revision":
				cols.revision = j
			case "editor":
				cols.editor = j
			case "category":
				cols.category = j
			case "missing":
				cols.missing = j
			}
		}
		if cols.account >= 0 && cols.required >= 0 {
			return i, cols, true
		}
	}
	return 0, columns{}, false
}

func readRows(sheet string, rows [][]string, firstRowNum int, cols columns) ([]domain.RawAccount, error) {
	accounts := []domain.RawAccount{}
	for i, row := range rows {
		rowNum := firstRowNum + i
		if isBlankRow(row) {
			continue
		}
		a := domain.RawAccount{
			Account:  cell(row, cols.account),
			Editor:   cell(row, cols.editor),
			Category: cell(row, cols.category),
		}
		required, ok, err := parseCount(cell(row, cols.required))
		if err != nil {
			return nil, fmt.Errorf("sheet %s row %d: required: %w", sheet, rowNum, err)
		}
		if ok {
			a.Required = required
		}
		if a.Revision, err = optionalCount(cell(row, cols.revision)); err != nil {
			return nil, fmt.Errorf("sheet %s row %d: revision: %w", sheet, rowNum, err)
		}
		if a.Missing, err = optionalCount(cell(row, cols.missing)); err != nil {
			return nil, fmt.Errorf("sheet %s row %d: missing: %w", sheet, rowNum, err)
		}
		accounts = append(accounts, a)
	}
	return accounts, nil
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func isBlankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func optionalCount(s string) (*int, error) {
	n, ok, err := parseCount(s)
	if err != nil || !ok {
		return nil, err
	}
	return &n, nil
}

// parseCount parses a whole-number cell. Thousands separators and a
// trailing ".0" (as spreadsheets often store integers) are accepted.
func parseCount(s string) (int, bool, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return 0, false, nil
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n, true, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != math.Trunc(f) {
		return 0, false, fmt.Errorf("not a whole number: %q", s)
	}
	return int(f), true, nil
}
