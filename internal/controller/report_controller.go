// internal/controller/report_controller.go
package controller

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	appErrors "github.com/mktops/campaign-clarity/internal/errors"
	"github.com/mktops/campaign-clarity/internal/queue"
	"github.com/mktops/campaign-clarity/internal/service"
	"github.com/mktops/campaign-clarity/internal/store"
)

// ReportController exposes the small operational HTTP surface: queue a
// run, preview one campaign, look up an archived description.
type ReportController struct {
	Pipeline *service.Pipeline
	Broker   *queue.Broker
	Archive  store.DescriptionRepositoryInterface
	Log      *zap.Logger
}

// QueueRun accepts a run request and hands it to the worker queue.
func (c *ReportController) QueueRun(w http.ResponseWriter, r *http.Request) {
	var body struct {
		UseCache  *bool `json:"use_cache"`
		Limit     int   `json:"limit"`
		BatchSize int   `json:"batch_size"`
		Preview   bool  `json:"preview"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}

	req := queue.RunRequest{
		UseCache:  true,
		Limit:     body.Limit,
		BatchSize: body.BatchSize,
		Preview:   body.Preview,
		Requested: time.Now().Format(time.RFC3339),
	}
	if body.UseCache != nil {
		req.UseCache = *body.UseCache
	}

	if err := c.Broker.PublishRunRequest(req); err != nil {
		c.Log.Error("failed to queue run", zap.Error(err))
		http.Error(w, "failed to queue run", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusAccepted)
	json.NewEncoder(w).Encode(map[string]any{
		"status":  "queued",
		"request": req,
	})
}

// PreviewCampaign fetches one campaign from the CRM and returns its
// enriched context, prompt, category and routing without generating.
func (c *ReportController) PreviewCampaign(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	campaigns, err := c.Pipeline.CRM.FetchCampaignsByIDs([]string{id})
	if err != nil {
		c.Log.Error("failed to fetch campaign", zap.String("id", id), zap.Error(err))
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}
	if len(campaigns) == 0 {
		http.Error(w, "campaign not found", http.StatusNotFound)
		return
	}

	processed := c.Pipeline.Preview(&campaigns[0])
	json.NewEncoder(w).Encode(map[string]any{
		"campaign_id":      processed.Campaign.ID,
		"name":             processed.Campaign.Name,
		"prompt_category":  processed.PromptCategory,
		"enriched_context": processed.EnrichedContext,
		"decoded_bmid":     processed.Decoded,
		"recommendations":  processed.Recommendations,
		"prompt":           processed.Prompt,
	})
}

// GetDescription returns the most recently archived description for a
// campaign.
func (c *ReportController) GetDescription(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	desc, err := c.Archive.LatestByCampaign(id)
	if err != nil {
		var notFound *appErrors.ErrCampaignNotFound
		if errors.As(err, &notFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		c.Log.Error("failed to load description", zap.String("id", id), zap.Error(err))
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	json.NewEncoder(w).Encode(desc)
}
