package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"temata/internal/etl"
	"temata/internal/model"
	"temata/internal/store"
)

// RunETLRequest overrides the configured run parameters.
type RunETLRequest struct {
	InputDir      string `json:"inputDir"`
	ClearExisting *bool  `json:"clearExisting"`
}

// RunETL runs the spreadsheet ETL over the input directory and returns
// the run report.
// POST /api/etl/run
func (h *Handler) RunETL(c *gin.Context) {
	var req RunETLRequest
	_ = c.ShouldBindJSON(&req) // empty body keeps configured values

	opts := etl.RunOptions{
		InputDir:      h.cfg.ETL.InputDir,
		Collection:    store.CollectionRaw,
		ClearExisting: h.cfg.ETL.ClearExisting,
	}
	if req.InputDir != "" {
		opts.InputDir = req.InputDir
	}
	if req.ClearExisting != nil {
		opts.ClearExisting = *req.ClearExisting
	}

	report, err := h.coordinator().RunSync(opts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, report)
}

// RunPreprocess balances raw_texts and writes the split collections.
// POST /api/preprocess
func (h *Handler) RunPreprocess(c *gin.Context) {
	result, err := h.preprocessor().Run()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}

// StatusResponse is the health and readiness summary.
type StatusResponse struct {
	Initialized bool   `json:"initialized"`
	RawCount    int    `json:"rawCount"`
	InputDir    string `json:"inputDir"`
	LastRun     string `json:"lastRun,omitempty"`
}

// GetStatus reports whether data has been ingested yet.
// GET /api/status
func (h *Handler) GetStatus(c *gin.Context) {
	rawCount, err := h.store.CountDocuments(store.CollectionRaw, model.CategoryUnknown)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	resp := StatusResponse{
		Initialized: rawCount > 0,
		RawCount:    rawCount,
		InputDir:    h.cfg.ETL.InputDir,
	}
	if runs, err := h.store.RecentRuns(1); err == nil && len(runs) > 0 {
		resp.LastRun = runs[0].StartedAt.Format("2006-01-02 15:04:05")
	}
	c.JSON(http.StatusOK, resp)
}

// CollectionStats is the per-category breakdown of one collection.
type CollectionStats struct {
	Total      int                    `json:"total"`
	ByCategory map[model.Category]int `json:"byCategory"`
}

// GetStats returns per-collection, per-category document counts.
// GET /api/stats
func (h *Handler) GetStats(c *gin.Context) {
	stats := make(map[string]CollectionStats, len(store.Collections))
	for _, collection := range store.Collections {
		counts, err := h.store.CategoryCounts(collection)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		total := 0
		for _, n := range counts {
			total += n
		}
		stats[collection] = CollectionStats{Total: total, ByCategory: counts}
	}
	c.JSON(http.StatusOK, stats)
}

// ListRuns returns recent ETL run logs.
// GET /api/runs
func (h *Handler) ListRuns(c *gin.Context) {
	runs, err := h.store.RecentRuns(20)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"runs": runs})
}
