// cmd/worker/main.go
package main

import (
	"context"
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
	"github.com/mktops/campaign-clarity/internal/queue"
	"github.com/mktops/campaign-clarity/internal/report"
	"github.com/mktops/campaign-clarity/internal/routing"
	"github.com/mktops/campaign-clarity/internal/service"
	"github.com/mktops/campaign-clarity/internal/store"
)

func main() {
	if err := godotenv.Load(); err != nil {
		fmt.Println("no .env file found, relying on OS environment variables")
	}

	log, err := logger.New(os.Getenv("APP_ENV"))
	if err != nil {
		fmt.Println("failed to build logger:", err)
		os.Exit(1)
	}
	defer log.Sync()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("configuration error", zap.Error(err))
	}

	sf, err := crm.Connect(cfg.SFUsername, cfg.SFPassword, cfg.SFSecurityToken, cfg.SFDomain, log)
	if err != nil {
		log.Fatal("failed to connect to Salesforce", zap.Error(err))
	}

	conn, err := db.Open(cfg.DBUser, cfg.DBPassword, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatal("failed to connect to archive database", zap.Error(err))
	}
	defer conn.Close()

	broker, err := queue.Connect(cfg.AMQPURL, log)
	if err != nil {
		log.Fatal("failed to connect to RabbitMQ", zap.Error(err))
	}
	defer broker.Close()

	generator, err := llm.New(cfg.OpenAIKey, cfg.OpenAIModel, cfg.OpenAIKey != "", log)
	if err != nil {
		log.Fatal("failed to set up generation client", zap.Error(err))
	}

	fieldMaps := mappings.Load(cfg.MappingsPath, log)
	dec := decoder.New(fieldMaps, log)

	pipeline := &service.Pipeline{
		CRM:             sf,
		Generator:       generator,
		Enricher:        enrich.New(fieldMaps, dec, log),
		Router:          routing.New(log),
		Cache:           cache.NewManager(cfg.CacheDir, log),
		Archive:         &store.DescriptionRepository{DB: conn},
		Writer:          report.NewWriter(cfg.OutputDir, log),
		Log:             log,
		GenerationDelay: time.Duration(cfg.GenerationDelayMS) * time.Millisecond,
	}

	log.Info("worker waiting for run requests", zap.String("queue", queue.RunRequestQueue))
	err = broker.ConsumeRunRequests(func(req queue.RunRequest) error {
		log.Info("starting queued run",
			zap.Bool("use_cache", req.UseCache),
			zap.Int("limit", req.Limit),
			zap.String("requested", req.Requested))

		result, err := pipeline.Run(context.Background(), service.RunOptions{
			UseCache:  req.UseCache,
			Limit:     req.Limit,
			BatchSize: req.BatchSize,
		})
		if err != nil {
			return err
		}
		if result == nil {
			log.Warn("queued run produced no campaigns")
			return nil
		}
		log.Info("queued run complete",
			zap.String("run_id", result.RunID),
			zap.Int("processed", result.Processed),
			zap.String("report", result.ReportPath))
		return nil
	})
	if err != nil {
		log.Fatal("consumer stopped", zap.Error(err))
	}
}
