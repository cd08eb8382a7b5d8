// internal/store/description_repository.go
package store

import (
	"database/sql"
	"time"

	appErrors "github.com/mktops/campaign-clarity/internal/errors"
	"github.com/mktops/campaign-clarity/internal/model"
)

type DescriptionRepositoryInterface interface {
	Create(d *model.GeneratedDescription) error
	LatestByCampaign(campaignID string) (*model.GeneratedDescription, error)
	ListByRun(runID string) ([]*model.GeneratedDescription, error)
}

// DescriptionRepository archives every generated description so reps and
// operators can look results up after the spreadsheet has been shared
// around.
type DescriptionRepository struct {
	DB *sql.DB
}

func (r *DescriptionRepository) Create(d *model.GeneratedDescription) error {
	d.CreatedAt = time.Now()
	query := `
        INSERT INTO generated_descriptions
            (run_id, campaign_id, campaign_name, prompt_category, description, prompt, recommendations, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
        RETURNING id
    `
	return r.DB.QueryRow(query,
		d.RunID, d.CampaignID, d.CampaignName, d.PromptCategory,
		d.Description, d.Prompt, d.Recommendations, d.CreatedAt,
	).Scan(&d.ID)
}

func (r *DescriptionRepository) LatestByCampaign(campaignID string) (*model.GeneratedDescription, error) {
	query := `
        SELECT id, run_id, campaign_id, campaign_name, prompt_category, description, prompt, recommendations, created_at
        FROM generated_descriptions
        WHERE campaign_id = $1
        ORDER BY created_at DESC
        LIMIT 1
    `
	var d model.GeneratedDescription
	err := r.DB.QueryRow(query, campaignID).Scan(
		&d.ID, &d.RunID, &d.CampaignID, &d.CampaignName, &d.PromptCategory,
		&d.Description, &d.Prompt, &d.Recommendations, &d.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.NewCampaignNotFound(campaignID)
		}
		return nil, err
	}
	return &d, nil
}

func (r *DescriptionRepository) ListByRun(runID string) ([]*model.GeneratedDescription, error) {
	query := `
        SELECT id, run_id, campaign_id, campaign_name, prompt_category, description, prompt, recommendations, created_at
        FROM generated_descriptions
        WHERE run_id = $1
        ORDER BY id
    `
	rows, err := r.DB.Query(query, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.GeneratedDescription
	for rows.Next() {
		d := &model.GeneratedDescription{}
		if err := rows.Scan(
			&d.ID, &d.RunID, &d.CampaignID, &d.CampaignName, &d.PromptCategory,
			&d.Description, &d.Prompt, &d.Recommendations, &d.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}
