package parser

import "temata/internal/model"

// labelRowsAbove is how far above a header row the per-table category
// label is searched for in multi-table sheets.
const labelRowsAbove = 3

// FindTables discovers every independent table in a sheet. Most sheets
// hold a single table, but some place two or three side by side in
// disjoint column ranges, one per category: after each header is located
// the locator is re-run on the columns to the right of that table's span.
func FindTables(grid [][]string, opts Options) []HeaderLocation {
	maxWidth := 0
	for _, row := range grid {
		if len(row) > maxWidth {
			maxWidth = len(row)
		}
	}

	var tables []HeaderLocation
	colLo := 0
	for colLo < maxWidth {
		loc, ok := FindHeader(grid, colLo, -1, opts)
		if !ok {
			break
		}
		tables = append(tables, loc)
		_, hi := loc.Span()
		colLo = hi + 1
	}
	return tables
}

// TableCategory resolves the category a located table belongs to: a label
// cell in the header row itself or within the few rows above it, inside
// the table's column span. When no label is present the sheet-level
// category applies (single-table layout).
func TableCategory(grid [][]string, loc HeaderLocation, sheetCategory model.Category) model.Category {
	lo, hi := loc.Span()

	top := loc.Row - labelRowsAbove
	if top < 0 {
		top = 0
	}
	for row := loc.Row; row >= top; row-- {
		for col := lo; col <= hi; col++ {
			cell := cellAt(grid, row, col)
			if cell == "" {
				continue
			}
			if cat := MatchCategory(cell); cat.Valid() {
				return cat
			}
		}
	}
	return sheetCategory
}
