// cmd/reportgen/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/mktops/campaign-clarity/internal/cache"
	"github.com/mktops/campaign-clarity/internal/config"
	"github.com/mktops/campaign-clarity/internal/crm"
	"github.com/mktops/campaign-clarity/internal/db"
	"github.com/mktops/campaign-clarity/internal/decoder"
	"github.com/mktops/campaign-clarity/internal/enrich"
	"github.com/mktops/campaign-clarity/internal/llm"
	"github.com/mktops/campaign-clarity/internal/logger"
	"github.com/mktops/campaign-clarity/internal/mappings"
	"github.com/mktops/campaign-clarity/internal/report"
	"github.com/mktops/campaign-clarity/internal/routing"
	"github.com/mktops/campaign-clarity/internal/service"
	"github.com/mktops/campaign-clarity/internal/store"
)

func main() {
	os.Exit(run())
}

func run() int {
	noOpenAI := flag.Bool("no-openai", false, "Run in prompt preview mode without calling the generation API")
	batchSize := flag.Int("batch-size", 10, "Number of campaigns to process in each batch")
	noCache := flag.Bool("no-cache", false, "Force fresh extraction of campaign IDs (ignore cache)")
	clearCache := flag.Bool("clear-cache", false, "Clear the campaign ID cache and exit")
	limit := flag.Int("limit", 0, "Limit number of campaigns to process (useful for testing)")
	outputDir := flag.String("output-dir", "", "Directory to save output files")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		fmt.Println("no .env file found, relying on OS environment variables")
	}

	log, err := logger.New(os.Getenv("APP_ENV"))
	if err != nil {
		fmt.Println("failed to build logger:", err)
		return 1
	}
	defer log.Sync()

	if *clearCache {
		mgr := cache.NewManager(cacheDir(), log)
		if err := mgr.Clear(); err != nil {
			log.Error("failed to clear cache", zap.Error(err))
			return 1
		}
		fmt.Println("Campaign ID cache cleared successfully")
		return 0
	}

	cfg, err := config.Load()
	if err != nil {
		log.Error("configuration error", zap.Error(err))
		return 1
	}
	if *outputDir != "" {
		cfg.OutputDir = *outputDir
	}

	generator, err := llm.New(cfg.OpenAIKey, cfg.OpenAIModel, !*noOpenAI, log)
	if err != nil {
		log.Error("failed to set up generation client", zap.Error(err))
		return 1
	}

	sf, err := crm.Connect(cfg.SFUsername, cfg.SFPassword, cfg.SFSecurityToken, cfg.SFDomain, log)
	if err != nil {
		log.Error("failed to connect to Salesforce", zap.Error(err))
		return 1
	}

	fieldMaps := mappings.Load(cfg.MappingsPath, log)
	dec := decoder.New(fieldMaps, log)

	pipeline := &service.Pipeline{
		CRM:             sf,
		Generator:       generator,
		Enricher:        enrich.New(fieldMaps, dec, log),
		Router:          routing.New(log),
		Cache:           cache.NewManager(cfg.CacheDir, log),
		Writer:          report.NewWriter(cfg.OutputDir, log),
		Log:             log,
		GenerationDelay: time.Duration(cfg.GenerationDelayMS) * time.Millisecond,
	}

	// The Postgres archive is optional for CLI runs; skip it when no
	// database is configured.
	if cfg.DBUser != "" {
		conn, err := db.Open(cfg.DBUser, cfg.DBPassword, cfg.DBHost, cfg.DBPort, cfg.DBName)
		if err != nil {
			log.Warn("archive database unavailable, continuing without it", zap.Error(err))
		} else {
			defer conn.Close()
			pipeline.Archive = &store.DescriptionRepository{DB: conn}
		}
	}

	if info := pipeline.Cache.Info(); info != nil {
		fmt.Printf("Cache info: %v campaigns, %v days old\n",
			info["total_campaigns"], info["days_old"])
	}

	result, err := pipeline.Run(context.Background(), service.RunOptions{
		UseCache:  !*noCache,
		Limit:     *limit,
		BatchSize: *batchSize,
	})
	if err != nil {
		log.Error("run failed", zap.Error(err))
		fmt.Println("❌ Process failed:", err)
		return 1
	}
	if result == nil {
		fmt.Println("⚠️ No campaigns were processed")
		return 0
	}

	fmt.Println("\n✅ Process completed successfully!")
	fmt.Printf("Total campaigns processed: %d\n", result.Processed)
	fmt.Printf("Campaigns with AI descriptions: %d\n", result.Described)
	fmt.Printf("📊 Main report: %s\n", result.ReportPath)
	fmt.Printf("📊 Summary report: %s\n", result.SummaryPath)
	return 0
}

func cacheDir() string {
	if dir := os.Getenv("CACHE_DIR"); dir != "" {
		return dir
	}
	return "cache"
}
