package model

import "time"

// Table/sheet processing statuses.
const (
	StatusExtracted = "extracted"
	StatusSkipped   = "skipped"
	StatusError     = "error"
)

// TableResult describes one table region found (or skipped) within a sheet.
type TableResult struct {
	Categoria     Category `json:"categoria"`
	HeaderRow     int      `json:"headerRow"`   // 0-based, -1 when not found
	ColumnLo      int      `json:"columnLo"`    // leftmost column of the region
	ColumnHi      int      `json:"columnHi"`    // rightmost mapped column
	Status        string   `json:"status"`      // extracted/skipped
	ExtractedRows int      `json:"extractedRows"`
	DroppedRows   int      `json:"droppedRows"` // rows dropped for empty cita
	Note          string   `json:"note,omitempty"`
}

// SheetResult aggregates a sheet's tables and diagnostics.
type SheetResult struct {
	SheetName     string        `json:"sheetName"`
	Status        string        `json:"status"`
	Tables        []TableResult `json:"tables,omitempty"`
	ExtractedRows int           `json:"extractedRows"`
	DroppedRows   int           `json:"droppedRows"`
	Notes         []string      `json:"notes,omitempty"`
}

// FileReport aggregates one workbook.
type FileReport struct {
	Filename      string        `json:"filename"`
	Status        string        `json:"status"`
	Error         string        `json:"error,omitempty"`
	TotalSheets   int           `json:"totalSheets"`
	MatchedTables int           `json:"matchedTables"`
	SkippedTables int           `json:"skippedTables"`
	ExtractedRows int           `json:"extractedRows"`
	DroppedRows   int           `json:"droppedRows"`
	Sheets        []SheetResult `json:"sheets"`
}

// RunReport is the outcome of one ETL run over an input directory.
type RunReport struct {
	InputDir     string           `json:"inputDir"`
	TotalFiles   int              `json:"totalFiles"`
	FailedFiles  int              `json:"failedFiles"`
	TotalRecords int              `json:"totalRecords"`
	Inserted     int              `json:"inserted"`
	ByCategory   map[Category]int `json:"byCategory"`
	Files        []FileReport     `json:"files"`
	Duration     time.Duration    `json:"duration"`
}

// AddFile folds a file report into the run totals.
func (r *RunReport) AddFile(fr FileReport) {
	r.Files = append(r.Files, fr)
	r.TotalFiles++
	if fr.Status == StatusError {
		r.FailedFiles++
	}
	r.TotalRecords += fr.ExtractedRows
}
