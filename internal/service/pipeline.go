// internal/service/pipeline.go
package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/mktops/campaign-clarity/internal/cache"
	"github.com/mktops/campaign-clarity/internal/enrich"
	"github.com/mktops/campaign-clarity/internal/llm"
	"github.com/mktops/campaign-clarity/internal/model"
	"github.com/mktops/campaign-clarity/internal/prompt"
	"github.com/mktops/campaign-clarity/internal/routing"
	"github.com/mktops/campaign-clarity/internal/store"
)

// memberLookbackDays is how far back the member query reaches: campaigns
// with no members in the last year are not worth describing.
const memberLookbackDays = 365

// errorPlaceholder stands in when generation fails for one record; the
// batch always continues.
const errorPlaceholder = "Error generating description"

// CRMClient is the upstream data contract. Failures here abort the run.
type CRMClient interface {
	FetchMemberCountsSince(cutoff time.Time, limit int) (map[string]int, error)
	FetchCampaignsByIDs(ids []string) ([]model.CampaignRecord, error)
}

// ReportWriter is the presentation contract.
type ReportWriter interface {
	WriteCampaignReport(rows []*model.ProcessedCampaign, generated bool) (string, error)
	WriteSummaryReport(rows []*model.ProcessedCampaign) (string, error)
}

// Pipeline wires extraction, enrichment, routing, generation and
// reporting into one batch run. Processing is deliberately synchronous
// and single-threaded; batches exist for progress logging, not
// parallelism.
type Pipeline struct {
	CRM       CRMClient
	Generator llm.Generator
	Enricher  *enrich.Enricher
	Router    *routing.Router
	Cache     *cache.Manager
	Archive   store.DescriptionRepositoryInterface
	Writer    ReportWriter
	Log       *zap.Logger

	// GenerationDelay is the fixed pause between real generation calls.
	GenerationDelay time.Duration
}

// RunOptions control one batch run.
type RunOptions struct {
	UseCache  bool
	Limit     int
	BatchSize int
}

// RunResult reports where the run landed.
type RunResult struct {
	RunID       string
	ReportPath  string
	SummaryPath string
	Processed   int
	Described   int
}

// Run executes the full pipeline and returns the report paths. An empty
// extraction is a normal outcome with a nil result.
func (p *Pipeline) Run(ctx context.Context, opts RunOptions) (*RunResult, error) {
	if opts.BatchSize < 1 {
		opts.BatchSize = 10
	}
	runID := time.Now().Format("run_20060102_150405")

	campaigns, err := p.extract(opts.UseCache)
	if err != nil {
		return nil, err
	}
	if len(campaigns) == 0 {
		p.Log.Warn("no campaigns to process")
		return nil, nil
	}
	if opts.Limit > 0 && opts.Limit < len(campaigns) {
		p.Log.Info("limiting processing", zap.Int("limit", opts.Limit))
		campaigns = campaigns[:opts.Limit]
	}

	rows := p.processBatches(ctx, campaigns, opts.BatchSize)

	if p.Archive != nil {
		p.archive(runID, rows)
	}

	reportPath, err := p.Writer.WriteCampaignReport(rows, p.Generator.Enabled())
	if err != nil {
		return nil, fmt.Errorf("write campaign report: %w", err)
	}
	summaryPath, err := p.Writer.WriteSummaryReport(rows)
	if err != nil {
		return nil, fmt.Errorf("write summary report: %w", err)
	}

	described := 0
	for _, row := range rows {
		// Finalize may have appended annotation lines after the
		// placeholder, so match on the prefix.
		if row.AIDescription != "" && !strings.HasPrefix(row.AIDescription, errorPlaceholder) {
			described++
		}
	}
	p.Log.Info("run complete",
		zap.String("run_id", runID),
		zap.Int("processed", len(rows)),
		zap.Int("described", described),
		zap.String("report", reportPath))

	return &RunResult{
		RunID:       runID,
		ReportPath:  reportPath,
		SummaryPath: summaryPath,
		Processed:   len(rows),
		Described:   described,
	}, nil
}

// extract loads the campaign set: cached ids when allowed and present,
// a fresh member-count query otherwise. Member counts ride along on each
// record.
func (p *Pipeline) extract(useCache bool) ([]model.CampaignRecord, error) {
	var ids []string
	var counts map[string]int

	if useCache {
		if snap := p.Cache.Load(); snap != nil {
			ids, counts = snap.CampaignIDs, snap.MemberCounts
			p.Log.Info("using cached campaign ids", zap.Int("campaigns", len(ids)))
		}
	}

	if ids == nil {
		cutoff := time.Now().AddDate(0, 0, -memberLookbackDays)
		p.Log.Info("fetching campaign members", zap.Time("cutoff", cutoff))
		fresh, err := p.CRM.FetchMemberCountsSince(cutoff, 0)
		if err != nil {
			return nil, fmt.Errorf("extract campaign members: %w", err)
		}
		if len(fresh) == 0 {
			p.Log.Warn("no campaign members found in lookback window")
			return nil, nil
		}
		counts = fresh
		ids = make([]string, 0, len(fresh))
		for id := range fresh {
			ids = append(ids, id)
		}
		sort.Strings(ids)
		p.Cache.Save(ids, counts)
	}

	campaigns, err := p.CRM.FetchCampaignsByIDs(ids)
	if err != nil {
		return nil, fmt.Errorf("extract campaigns: %w", err)
	}
	for i := range campaigns {
		campaigns[i].RecentMemberCount = counts[campaigns[i].ID]
	}
	return campaigns, nil
}

// processBatches walks the campaign list batch by batch. Batch size only
// shapes the progress logs.
func (p *Pipeline) processBatches(ctx context.Context, campaigns []model.CampaignRecord, batchSize int) []*model.ProcessedCampaign {
	total := len(campaigns)
	p.Log.Info("processing campaigns",
		zap.Int("total", total), zap.Int("batch_size", batchSize))

	rows := make([]*model.ProcessedCampaign, 0, total)
	for start := 0; start < total; start += batchSize {
		end := start + batchSize
		if end > total {
			end = total
		}
		p.Log.Info("processing batch",
			zap.Int("from", start+1), zap.Int("to", end), zap.Int("total", total))

		for i := start; i < end; i++ {
			rows = append(rows, p.processOne(ctx, &campaigns[i]))

			if p.Generator.Enabled() && p.GenerationDelay > 0 {
				time.Sleep(p.GenerationDelay)
			}
		}
	}
	return rows
}

// processOne runs the full enrich-route-classify-generate chain for a
// single record. Generation failure degrades to the placeholder; every
// other stage is total by construction.
func (p *Pipeline) processOne(ctx context.Context, campaign *model.CampaignRecord) *model.ProcessedCampaign {
	enriched := p.Enricher.Enrich(campaign)
	recs := p.Router.Route(campaign, enriched.Decoded)
	category := prompt.Classify(campaign, enriched.Decoded)
	userPrompt := prompt.Build(category, enriched.Context)

	var description string
	if p.Generator.Enabled() {
		generated, err := p.Generator.Generate(ctx, prompt.SystemPrompt, userPrompt)
		if err != nil {
			p.Log.Error("failed to generate description",
				zap.String("campaign_id", campaign.ID), zap.Error(err))
			description = errorPlaceholder
		} else {
			description = prompt.Cap(generated)
		}
	} else {
		description = llm.PreviewText(campaign.Name)
	}

	description = prompt.Finalize(description, campaign, recs)

	return &model.ProcessedCampaign{
		Campaign:        *campaign,
		EnrichedContext: enriched.Context,
		Decoded:         enriched.Decoded,
		PromptCategory:  string(category),
		Prompt:          userPrompt,
		AIDescription:   description,
		Recommendations: recs,
	}
}

// Preview runs everything except generation for one record; the HTTP
// preview endpoint uses it.
func (p *Pipeline) Preview(campaign *model.CampaignRecord) *model.ProcessedCampaign {
	enriched := p.Enricher.Enrich(campaign)
	recs := p.Router.Route(campaign, enriched.Decoded)
	category := prompt.Classify(campaign, enriched.Decoded)

	return &model.ProcessedCampaign{
		Campaign:        *campaign,
		EnrichedContext: enriched.Context,
		Decoded:         enriched.Decoded,
		PromptCategory:  string(category),
		Prompt:          prompt.Build(category, enriched.Context),
		Recommendations: recs,
	}
}

// archive persists every row; archive trouble is logged and swallowed,
// the spreadsheet is the deliverable.
func (p *Pipeline) archive(runID string, rows []*model.ProcessedCampaign) {
	for _, row := range rows {
		recsJSON, err := json.Marshal(row.Recommendations)
		if err != nil {
			recsJSON = []byte("[]")
		}
		err = p.Archive.Create(&model.GeneratedDescription{
			RunID:           runID,
			CampaignID:      row.Campaign.ID,
			CampaignName:    row.Campaign.Name,
			PromptCategory:  row.PromptCategory,
			Description:     row.AIDescription,
			Prompt:          row.Prompt,
			Recommendations: string(recsJSON),
		})
		if err != nil {
			p.Log.Warn("failed to archive description",
				zap.String("campaign_id", row.Campaign.ID), zap.Error(err))
		}
	}
}
