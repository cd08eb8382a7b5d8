// internal/model/description.go
package model

import "time"

// GeneratedDescription is one archived pipeline result row.
type GeneratedDescription struct {
	ID              int       `db:"id" json:"id"`
	RunID           string    `db:"run_id" json:"run_id"`
	CampaignID      string    `db:"campaign_id" json:"campaign_id"`
	CampaignName    string    `db:"campaign_name" json:"campaign_name"`
	PromptCategory  string    `db:"prompt_category" json:"prompt_category"`
	Description     string    `db:"description" json:"description"`
	Prompt          string    `db:"prompt" json:"prompt"`
	Recommendations string    `db:"recommendations" json:"recommendations"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
}
