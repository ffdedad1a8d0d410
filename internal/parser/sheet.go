package parser

import (
	"fmt"

	"github.com/google/uuid"

	"temata/internal/model"
)

// ParseSheet normalizes one sheet's raw cell grid into records. Every
// recoverable condition — unmatched category, header not found — marks
// the affected table as skipped with a diagnostic note; sibling tables on
// the same sheet are unaffected.
func ParseSheet(grid [][]string, sheetName, sourceFile string, opts Options) ([]model.Record, model.SheetResult) {
	opts = opts.withDefaults()

	result := model.SheetResult{
		SheetName: sheetName,
		Status:    model.StatusSkipped,
	}

	sheetCategory := MatchCategory(sheetName)

	tables := FindTables(grid, opts)
	if len(tables) == 0 {
		if sheetCategory.Valid() {
			result.Notes = append(result.Notes, fmt.Sprintf("hoja %q: header not found within the first %d rows", sheetName, opts.ScanRows))
		} else {
			result.Notes = append(result.Notes, fmt.Sprintf("hoja %q: no category match and no table header", sheetName))
		}
		return nil, result
	}

	var records []model.Record
	for _, loc := range tables {
		lo, hi := loc.Span()
		tr := model.TableResult{
			HeaderRow: loc.Row,
			ColumnLo:  lo,
			ColumnHi:  hi,
			Status:    model.StatusSkipped,
		}

		cat := TableCategory(grid, loc, sheetCategory)
		if !cat.Valid() {
			tr.Note = "category unmatched"
			result.Notes = append(result.Notes, fmt.Sprintf("hoja %q: table at row %d cols %d-%d matches no category", sheetName, loc.Row, lo, hi))
			result.Tables = append(result.Tables, tr)
			continue
		}
		tr.Categoria = cat

		extracted, dropped := extractRows(grid, loc, cat, sheetName, sourceFile, opts)
		tr.Status = model.StatusExtracted
		tr.ExtractedRows = len(extracted)
		tr.DroppedRows = dropped

		records = append(records, extracted...)
		result.ExtractedRows += len(extracted)
		result.DroppedRows += dropped
		result.Tables = append(result.Tables, tr)
	}

	if result.ExtractedRows > 0 || hasExtractedTable(result.Tables) {
		result.Status = model.StatusExtracted
	}
	return records, result
}

func hasExtractedTable(tables []model.TableResult) bool {
	for _, t := range tables {
		if t.Status == model.StatusExtracted {
			return true
		}
	}
	return false
}

// extractRows pulls data rows below a located header. The table ends once
// opts.EmptyRowLimit consecutive fully empty rows are seen inside the
// table's column span; a row with an empty cita is dropped and counted
// but does not terminate the scan.
func extractRows(grid [][]string, loc HeaderLocation, cat model.Category, sheetName, sourceFile string, opts Options) (records []model.Record, dropped int) {
	lo, hi := loc.Span()

	emptyRun := 0
	for rowIdx := loc.Row + 1; rowIdx < len(grid); rowIdx++ {
		if blankRow(grid[rowIdx], lo, hi) {
			emptyRun++
			if emptyRun >= opts.EmptyRowLimit {
				break
			}
			continue
		}
		emptyRun = 0

		cita := cellAt(grid, rowIdx, loc.Columns[ConceptCita])
		if cita == "" {
			dropped++
			continue
		}

		records = append(records, model.Record{
			ID:          uuid.NewString(),
			Categoria:   cat,
			Canto:       cellAt(grid, rowIdx, loc.Columns[ConceptCanto]),
			Versos:      cellAt(grid, rowIdx, loc.Columns[ConceptVersos]),
			Cita:        cita,
			SourceFile:  sourceFile,
			SourceSheet: sheetName,
			RowNo:       rowIdx + 1,
		})
	}
	return records, dropped
}
