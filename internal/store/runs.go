package store

import (
	"fmt"
	"time"
)

// RunLog is one row of the etl_runs log.
type RunLog struct {
	ID           int64      `json:"id"`
	InputDir     string     `json:"inputDir"`
	TotalFiles   int        `json:"totalFiles"`
	FailedFiles  int        `json:"failedFiles"`
	TotalRecords int        `json:"totalRecords"`
	Inserted     int        `json:"inserted"`
	Status       string     `json:"status"`
	ErrorMessage string     `json:"errorMessage,omitempty"`
	StartedAt    time.Time  `json:"startedAt"`
	CompletedAt  *time.Time `json:"completedAt,omitempty"`
}

// CreateRunLog opens a run log entry and returns its id.
func (s *Store) CreateRunLog(inputDir string) (int64, error) {
	res, err := s.db.Exec(`
		INSERT INTO etl_runs (input_dir, status) VALUES (?, 'processing')
	`, inputDir)
	if err != nil {
		return 0, fmt.Errorf("failed to create run log: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get run log id: %w", err)
	}
	return id, nil
}

// FinishRunLog completes a run log entry.
func (s *Store) FinishRunLog(id int64, totalFiles, failedFiles, totalRecords, inserted int, status, errorMessage string) error {
	_, err := s.db.Exec(`
		UPDATE etl_runs SET
			total_files = ?,
			failed_files = ?,
			total_records = ?,
			inserted = ?,
			status = ?,
			error_message = ?,
			completed_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`, totalFiles, failedFiles, totalRecords, inserted, status, errorMessage, id)
	if err != nil {
		return fmt.Errorf("failed to update run log: %w", err)
	}
	return nil
}

// RecentRuns returns the latest run logs, newest first.
func (s *Store) RecentRuns(limit int) ([]RunLog, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.Query(`
		SELECT id, input_dir, total_files, failed_files, total_records, inserted,
		       status, COALESCE(error_message, ''), started_at, completed_at
		FROM etl_runs
		ORDER BY id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []RunLog
	for rows.Next() {
		var r RunLog
		if err := rows.Scan(&r.ID, &r.InputDir, &r.TotalFiles, &r.FailedFiles, &r.TotalRecords,
			&r.Inserted, &r.Status, &r.ErrorMessage, &r.StartedAt, &r.CompletedAt); err != nil {
			return nil, fmt.Errorf("failed to scan run log: %w", err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}
