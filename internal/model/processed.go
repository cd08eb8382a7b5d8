// internal/model/processed.go
package model

// ProcessedCampaign is one fully pipelined record: the source campaign
// plus everything this system derived for it.
type ProcessedCampaign struct {
	Campaign        CampaignRecord
	EnrichedContext string
	Decoded         DecodedBMID
	PromptCategory  string
	Prompt          string
	AIDescription   string
	Recommendations []Recommendation
}
