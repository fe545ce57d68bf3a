package seed

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Column layout of the seed sheet. The first row is a header.
const (
	categoryColumn = iota
	wordColumn
	translationColumn
)

// ReadXLSXFile reads entries from the first sheet of the workbook at path
func ReadXLSXFile(path string) ([]Entry, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook %s has no sheets", path)
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to get rows: %w", err)
	}

	var entries []Entry
	for i, row := range rows {
		if i == 0 || isBlankRow(row) {
			continue
		}
		entries = append(entries, Entry{
			Category:    cell(row, categoryColumn),
			Word:        cell(row, wordColumn),
			Translation: cell(row, translationColumn),
		})
	}

	return entries, nil
}

func cell(row []string, idx int) string {
	if idx < len(row) {
		return strings.TrimSpace(row[idx])
	}
	return ""
}

func isBlankRow(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
