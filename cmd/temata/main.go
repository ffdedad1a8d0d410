package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"syscall"
	"time"

	"temata/internal/config"
	"temata/internal/etl"
	"temata/internal/model"
	"temata/internal/parser"
	"temata/internal/preprocess"
	"temata/internal/server"
	"temata/internal/store"
)

var (
	inputDir  = flag.String("dir", "", "input directory with .xlsx workbooks (overrides config)")
	port      = flag.Int("port", 0, "server port (config.toml wins when it sets one explicitly)")
	serve     = flag.Bool("serve", false, "start the API server instead of a batch run")
	devMode   = flag.Bool("dev", false, "development mode")
	doPrep    = flag.Bool("preprocess", false, "run balancing and split after the ETL")
	keepExist = flag.Bool("keep", false, "keep existing raw_texts instead of clearing")
)

func main() {
	flag.Parse()

	cfg, info, err := config.LoadConfigWithInfo()
	if err != nil {
		log.Printf("failed to load config, using defaults: %v", err)
		cfg = config.DefaultConfig()
		info = config.LoadConfigInfo{}
	}

	if *port > 0 && !info.PortSpecified {
		cfg.Server.Port = *port
	}
	if *devMode {
		cfg.Server.DevMode = true
	}
	if *inputDir != "" {
		cfg.ETL.InputDir = *inputDir
	}
	if *keepExist {
		cfg.ETL.ClearExisting = false
	}

	if *serve {
		runServer(cfg)
		return
	}
	runBatch(cfg)
}

func runServer(cfg *config.AppConfig) {
	srv, err := server.New(cfg)
	if err != nil {
		log.Fatalf("failed to start server: %v", err)
	}

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	go func() {
		fmt.Printf("temata listening on http://localhost:%d\n", cfg.Server.Port)
		if err := srv.Run(addr); err != nil {
			log.Fatalf("server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	fmt.Println("\nshutting down...")
	if err := srv.Close(); err != nil {
		log.Printf("close failed: %v", err)
	}
}

func runBatch(cfg *config.AppConfig) {
	dataDir, err := config.EnsureDataDir(cfg)
	if err != nil {
		dataDir = cfg.Data.DataDir
	}

	st, err := store.New(filepath.Join(dataDir, "temata.db"))
	if err != nil {
		log.Fatalf("failed to open store: %v", err)
	}
	defer st.Close()

	coordinator := etl.NewCoordinator(st, parser.Options{
		ScanRows:      cfg.ETL.ScanRows,
		EmptyRowLimit: cfg.ETL.EmptyRowLimit,
	})

	fmt.Println("==========================================")
	fmt.Println("  temata - ETL de fragmentos clásicos")
	fmt.Println("==========================================")
	fmt.Printf("input: %s\n\n", cfg.ETL.InputDir)

	var report *model.RunReport
	for ev := range coordinator.Run(etl.RunOptions{
		InputDir:      cfg.ETL.InputDir,
		Collection:    store.CollectionRaw,
		ClearExisting: cfg.ETL.ClearExisting,
	}) {
		switch ev.Type {
		case "warning":
			fmt.Printf("  ! %s\n", ev.Message)
		case "error":
			fmt.Printf("  x %s\n", ev.Message)
		case "sheet_done", "file_start", "info":
			fmt.Printf("  %s\n", ev.Message)
		case "done":
			if r, ok := ev.Data.(*model.RunReport); ok {
				report = r
			}
		}
	}
	if report == nil {
		log.Fatal("ETL produced no report")
	}

	printReport(report)

	if *doPrep {
		runner := preprocess.NewRunner(st, preprocess.Options{
			TestSize: cfg.Split.TestSize,
			ValSize:  cfg.Split.ValSize,
			Seed:     cfg.Split.Seed,
		})
		result, err := runner.Run()
		if err != nil {
			log.Fatalf("preprocess failed: %v", err)
		}
		fmt.Println("\npreprocess:")
		fmt.Printf("  cleaned:  %d (dropped %d)\n", result.CleanedCount, result.DroppedByClean)
		fmt.Printf("  balanced: %d (%d per category)\n", result.BalancedCount, result.PerCategory)
		fmt.Printf("  split:    train=%d val=%d test=%d\n", result.TrainCount, result.ValCount, result.TestCount)
	}
}

func printReport(report *model.RunReport) {
	fmt.Println("\n==========================================")
	fmt.Println("  resumen")
	fmt.Println("==========================================")
	fmt.Printf("files:    %d (%d failed)\n", report.TotalFiles, report.FailedFiles)
	fmt.Printf("records:  %d extracted, %d inserted\n", report.TotalRecords, report.Inserted)

	for _, fr := range report.Files {
		fmt.Printf("\n  %s: %d tables matched, %d skipped, %d records (%d dropped)\n",
			fr.Filename, fr.MatchedTables, fr.SkippedTables, fr.ExtractedRows, fr.DroppedRows)
		for _, sr := range fr.Sheets {
			for _, note := range sr.Notes {
				fmt.Printf("    ! %s\n", note)
			}
		}
	}

	cats := make([]model.Category, 0, len(report.ByCategory))
	for cat := range report.ByCategory {
		cats = append(cats, cat)
	}
	sort.Slice(cats, func(i, j int) bool { return cats[i].LabelID() < cats[j].LabelID() })

	fmt.Println("\nby category:")
	for _, cat := range cats {
		fmt.Printf("  %-25s %d\n", cat.DisplayName(), report.ByCategory[cat])
	}
	fmt.Printf("\ndone in %s\n", report.Duration.Round(time.Millisecond))
}
