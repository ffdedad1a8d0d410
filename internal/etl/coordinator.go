package etl

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"temata/internal/model"
	"temata/internal/parser"
	"temata/internal/store"
)

// Coordinator drives one ETL run: it walks the input directory, extracts
// records from every workbook and hands them to the document store.
type Coordinator struct {
	store *store.Store
	opts  parser.Options
}

// NewCoordinator creates a coordinator with the given heuristic tunables.
func NewCoordinator(s *store.Store, opts parser.Options) *Coordinator {
	return &Coordinator{store: s, opts: opts}
}

// RunOptions control one ETL run.
type RunOptions struct {
	InputDir      string
	Collection    string // destination collection, raw_texts by default
	ClearExisting bool   // clear the collection before inserting
}

// ProgressEvent is one progress notification of a running import.
type ProgressEvent struct {
	Type      string      `json:"type"` // start/file_start/sheet_done/warning/error/done
	Message   string      `json:"message"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

// Run executes the ETL and streams progress events; the returned channel
// closes when the run is finished. The final "done" event carries the
// RunReport.
func (c *Coordinator) Run(opts RunOptions) <-chan ProgressEvent {
	progress := make(chan ProgressEvent, 100)
	go func() {
		defer close(progress)
		c.doRun(opts, progress)
	}()
	return progress
}

// ExtractDirectory runs the normalizer over every workbook in dir
// without touching persistence: it returns the ordered record list and a
// report carrying the per-category count summary. A workbook that cannot
// be opened is recorded as failed and the remaining files still process.
func ExtractDirectory(dir string, opts parser.Options) ([]model.Record, *model.RunReport, error) {
	startTime := time.Now()

	files, err := listWorkbooks(dir)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot read input directory: %w", err)
	}

	c := &Coordinator{opts: opts}
	report := &model.RunReport{
		InputDir:   dir,
		ByCategory: make(map[model.Category]int),
	}

	var records []model.Record
	for _, path := range files {
		fileRecords, fr := c.processFile(path, nil)
		report.AddFile(fr)
		records = append(records, fileRecords...)
	}
	for _, r := range records {
		report.ByCategory[r.Categoria]++
	}
	report.Duration = time.Since(startTime)
	return records, report, nil
}

// RunSync executes the ETL, draining progress internally, and returns the
// report. This is the single-call surface the batch mode uses.
func (c *Coordinator) RunSync(opts RunOptions) (*model.RunReport, error) {
	var report *model.RunReport
	var runErr error
	for ev := range c.Run(opts) {
		switch ev.Type {
		case "done":
			if r, ok := ev.Data.(*model.RunReport); ok {
				report = r
			}
		case "error":
			runErr = fmt.Errorf("%s", ev.Message)
		}
	}
	if report == nil {
		if runErr != nil {
			return nil, runErr
		}
		return nil, fmt.Errorf("run produced no report")
	}
	return report, nil
}

func (c *Coordinator) doRun(opts RunOptions, progress chan ProgressEvent) {
	startTime := time.Now()

	if opts.Collection == "" {
		opts.Collection = store.CollectionRaw
	}

	c.send(progress, ProgressEvent{
		Type:      "start",
		Message:   fmt.Sprintf("starting ETL over %s", opts.InputDir),
		Timestamp: time.Now(),
	})

	files, err := listWorkbooks(opts.InputDir)
	if err != nil {
		c.send(progress, ProgressEvent{
			Type:      "error",
			Message:   fmt.Sprintf("cannot read input directory: %v", err),
			Timestamp: time.Now(),
		})
		return
	}

	runID, err := c.store.CreateRunLog(opts.InputDir)
	if err != nil {
		c.send(progress, ProgressEvent{
			Type:      "error",
			Message:   fmt.Sprintf("cannot create run log: %v", err),
			Timestamp: time.Now(),
		})
		return
	}

	if opts.ClearExisting {
		deleted, err := c.store.ClearCollection(opts.Collection)
		if err != nil {
			c.send(progress, ProgressEvent{
				Type:      "warning",
				Message:   fmt.Sprintf("failed to clear %s: %v", opts.Collection, err),
				Timestamp: time.Now(),
			})
		} else if deleted > 0 {
			c.send(progress, ProgressEvent{
				Type:      "info",
				Message:   fmt.Sprintf("cleared %d existing documents from %s", deleted, opts.Collection),
				Timestamp: time.Now(),
			})
		}
	}

	report := &model.RunReport{
		InputDir:   opts.InputDir,
		ByCategory: make(map[model.Category]int),
	}

	var allRecords []model.Record
	for _, path := range files {
		fileRecords, fr := c.processFile(path, progress)
		report.AddFile(fr)
		allRecords = append(allRecords, fileRecords...)
	}

	for _, r := range allRecords {
		report.ByCategory[r.Categoria]++
	}

	inserted := 0
	if len(allRecords) > 0 {
		inserted, err = c.store.InsertRecords(opts.Collection, allRecords)
		if err != nil {
			report.Duration = time.Since(startTime)
			_ = c.store.FinishRunLog(runID, report.TotalFiles, report.FailedFiles, report.TotalRecords, 0, "error", err.Error())
			c.send(progress, ProgressEvent{
				Type:      "error",
				Message:   fmt.Sprintf("insert failed: %v", err),
				Timestamp: time.Now(),
			})
			return
		}
	}
	report.Inserted = inserted
	report.Duration = time.Since(startTime)

	status := "done"
	if report.FailedFiles > 0 {
		status = "partial"
	}
	if err := c.store.FinishRunLog(runID, report.TotalFiles, report.FailedFiles, report.TotalRecords, inserted, status, ""); err != nil {
		c.send(progress, ProgressEvent{
			Type:      "warning",
			Message:   fmt.Sprintf("failed to finish run log: %v", err),
			Timestamp: time.Now(),
		})
	}

	c.send(progress, ProgressEvent{
		Type:      "done",
		Message:   fmt.Sprintf("ETL finished: %d records from %d files", inserted, report.TotalFiles),
		Data:      report,
		Timestamp: time.Now(),
	})
}

// processFile extracts every sheet of one workbook. A file that cannot be
// opened as a spreadsheet is a hard failure for that file only; the run
// continues with the remaining files.
func (c *Coordinator) processFile(path string, progress chan ProgressEvent) ([]model.Record, model.FileReport) {
	filename := filepath.Base(path)
	fr := model.FileReport{Filename: filename, Status: model.StatusExtracted}

	c.send(progress, ProgressEvent{
		Type:      "file_start",
		Message:   fmt.Sprintf("processing %s", filename),
		Timestamp: time.Now(),
	})

	f, err := excelize.OpenFile(path)
	if err != nil {
		fr.Status = model.StatusError
		fr.Error = fmt.Sprintf("cannot open workbook: %v", err)
		c.send(progress, ProgressEvent{
			Type:      "error",
			Message:   fmt.Sprintf("%s: %s", filename, fr.Error),
			Timestamp: time.Now(),
		})
		return nil, fr
	}
	defer f.Close()

	var records []model.Record
	sheets := f.GetSheetList()
	fr.TotalSheets = len(sheets)

	for _, sheetName := range sheets {
		grid, err := f.GetRows(sheetName)
		if err != nil {
			fr.Sheets = append(fr.Sheets, model.SheetResult{
				SheetName: sheetName,
				Status:    model.StatusError,
				Notes:     []string{fmt.Sprintf("cannot read sheet: %v", err)},
			})
			fr.SkippedTables++
			continue
		}

		sheetRecords, sr := parser.ParseSheet(grid, sheetName, filename, c.opts)
		fr.Sheets = append(fr.Sheets, sr)
		fr.ExtractedRows += sr.ExtractedRows
		fr.DroppedRows += sr.DroppedRows
		for _, tr := range sr.Tables {
			if tr.Status == model.StatusExtracted {
				fr.MatchedTables++
			} else {
				fr.SkippedTables++
			}
		}
		if len(sr.Tables) == 0 {
			fr.SkippedTables++
		}

		records = append(records, sheetRecords...)

		c.send(progress, ProgressEvent{
			Type:    "sheet_done",
			Message: fmt.Sprintf("%s / %s: %d records", filename, sheetName, sr.ExtractedRows),
			Data: map[string]interface{}{
				"sheet":   sheetName,
				"records": sr.ExtractedRows,
				"dropped": sr.DroppedRows,
			},
			Timestamp: time.Now(),
		})
		for _, note := range sr.Notes {
			c.send(progress, ProgressEvent{
				Type:      "warning",
				Message:   note,
				Timestamp: time.Now(),
			})
		}
	}

	return records, fr
}

// listWorkbooks returns the .xlsx files of dir in name order.
func listWorkbooks(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if strings.HasPrefix(name, "~$") {
			continue // Excel lock files
		}
		if strings.EqualFold(filepath.Ext(name), ".xlsx") {
			files = append(files, filepath.Join(dir, name))
		}
	}
	sort.Strings(files)
	return files, nil
}

// send delivers a progress event without blocking; a full channel drops
// the event.
func (c *Coordinator) send(ch chan ProgressEvent, event ProgressEvent) {
	select {
	case ch <- event:
	default:
	}
}
