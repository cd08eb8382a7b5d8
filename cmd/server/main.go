// cmd/server/main.go
package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/mktops/campaign-clarity/internal/cache"
	"github.com/mktops/campaign-clarity/internal/config"
	"github.com/mktops/campaign-clarity/internal/controller"
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
	archive := &store.DescriptionRepository{DB: conn}

	broker, err := queue.Connect(cfg.AMQPURL, log)
	if err != nil {
		log.Fatal("failed to connect to RabbitMQ", zap.Error(err))
	}
	defer broker.Close()

	// The server never generates; previews only.
	generator, err := llm.New("", cfg.OpenAIModel, false, log)
	if err != nil {
		log.Fatal("failed to set up generation client", zap.Error(err))
	}

	fieldMaps := mappings.Load(cfg.MappingsPath, log)
	dec := decoder.New(fieldMaps, log)

	pipeline := &service.Pipeline{
		CRM:       sf,
		Generator: generator,
		Enricher:  enrich.New(fieldMaps, dec, log),
		Router:    routing.New(log),
		Cache:     cache.NewManager(cfg.CacheDir, log),
		Archive:   archive,
		Writer:    report.NewWriter(cfg.OutputDir, log),
		Log:       log,
	}

	reportController := &controller.ReportController{
		Pipeline: pipeline,
		Broker:   broker,
		Archive:  archive,
		Log:      log,
	}

	r := chi.NewRouter()
	r.Post("/reports", reportController.QueueRun)
	r.Get("/campaigns/{id}/preview", reportController.PreviewCampaign)
	r.Get("/campaigns/{id}/description", reportController.GetDescription)

	log.Info("server running", zap.String("addr", cfg.HTTPAddr))
	if err := http.ListenAndServe(cfg.HTTPAddr, r); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}
