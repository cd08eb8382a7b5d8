// internal/prompt/postprocess.go
package prompt

import (
	"strings"

	"github.com/mktops/campaign-clarity/internal/model"
)

// MaxDescriptionLen is the CRM field budget for a generated description.
const MaxDescriptionLen = 255

// criticalSignals are the phrases that mark a campaign's free-text
// fields as carrying instructions a rep must not miss.
var criticalSignals = []string{
	"MUST READ",
	"IMPORTANT",
	"CRITICAL",
	"ATTENTION",
	"WARNING",
	"***",
	"!!!",
	"REQUIRED",
	"MANDATORY",
	"URGENT",
}

const criticalAlertLine = "⚠️ ALERT: Campaign notes contain critical instructions - review the Description field before outreach."

// Cap trims a generated description to the CRM budget.
func Cap(description string) string {
	if len(description) <= MaxDescriptionLen {
		return description
	}
	return description[:MaxDescriptionLen-3] + "..."
}

// Finalize runs the two unconditional post-generation passes: the
// critical-instruction alert and the outreach-sequence annotation. Both
// run whether generation succeeded, failed, or was previewed.
func Finalize(description string, campaign *model.CampaignRecord, recs []model.Recommendation) string {
	out := description

	if HasCriticalInstructions(campaign) {
		out += "\n" + criticalAlertLine
	}

	for _, rec := range recs {
		out += "\nRecommended outreach: [" + rec.SequenceName + "](" + rec.SequenceURL + ")"
	}

	return out
}

// HasCriticalInstructions reports whether either free-text field carries
// a critical-instruction signal phrase.
func HasCriticalInstructions(campaign *model.CampaignRecord) bool {
	haystack := strings.ToUpper(campaign.Description + " " + campaign.ShortSalesDescription)
	for _, signal := range criticalSignals {
		if strings.Contains(haystack, signal) {
			return true
		}
	}
	return false
}
