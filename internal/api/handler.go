package api

import (
	"github.com/gin-gonic/gin"

	"temata/internal/config"
	"temata/internal/etl"
	"temata/internal/parser"
	"temata/internal/preprocess"
	"temata/internal/store"
)

// Handler serves the pipeline API.
type Handler struct {
	store *store.Store
	cfg   *config.AppConfig
}

// NewHandler creates the API handler.
func NewHandler(s *store.Store, cfg *config.AppConfig) *Handler {
	return &Handler{store: s, cfg: cfg}
}

// RegisterRoutes registers the API routes.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/status", h.GetStatus)
	router.GET("/stats", h.GetStats)
	router.GET("/runs", h.ListRuns)

	router.POST("/etl/run", h.RunETL)
	router.POST("/preprocess", h.RunPreprocess)
}

func (h *Handler) parserOptions() parser.Options {
	return parser.Options{
		ScanRows:      h.cfg.ETL.ScanRows,
		EmptyRowLimit: h.cfg.ETL.EmptyRowLimit,
	}
}

func (h *Handler) coordinator() *etl.Coordinator {
	return etl.NewCoordinator(h.store, h.parserOptions())
}

func (h *Handler) preprocessor() *preprocess.Runner {
	return preprocess.NewRunner(h.store, preprocess.Options{
		TestSize: h.cfg.Split.TestSize,
		ValSize:  h.cfg.Split.ValSize,
		Seed:     h.cfg.Split.Seed,
	})
}
