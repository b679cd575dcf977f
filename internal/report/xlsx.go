package report

import (
	"fmt"
	"strconv"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"

	"github.com/actuallystonmai/series-analyzer/internal/domain"
)

func renderXLSX(records []domain.Series) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return nil, fmt.Errorf("name sheet: %w", err)
	}

	widths := make([]int, len(header))
	track := func(col int, text string) {
		if n := utf8.RuneCountInString(text); n > widths[col] {
			widths[col] = n
		}
	}

	headerRow := make([]any, len(header))
	for i, h := range header {
		headerRow[i] = h
		track(i, h)
	}
	if err := f.SetSheetRow(SheetName, "A1", &headerRow); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}

	for i := range records {
		s := &records[i]
		row := []any{s.Title, s.Seasons, s.Rating, s.Year, s.Finished, s.Studio.Name}
		track(0, s.Title)
		track(1, strconv.Itoa(s.Seasons))
		track(2, formatRating(s.Rating))
		track(3, strconv.Itoa(s.Year))
		track(4, strconv.FormatBool(s.Finished))
		track(5, s.Studio.Name)

		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			return nil, fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}
	if err := f.SetRowStyle(SheetName, 1, 1, bold); err != nil {
		return nil, err
	}

	for i, w := range widths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetColWidth(SheetName, col, col, float64(min(w+2, 255))); err != nil {
			return nil, fmt.Errorf("size column %s: %w", col, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
