// internal/enrich/enricher.go
package enrich

import (
	"strings"

	"go.uber.org/zap"

	"github.com/mktops/campaign-clarity/internal/decoder"
	"github.com/mktops/campaign-clarity/internal/mappings"
	"github.com/mktops/campaign-clarity/internal/model"
)

// Enricher builds the labeled context block the prompt template consumes.
// Line order is fixed and significant: the prompt layout, and the humans
// reviewing it, depend on a stable layout.
type Enricher struct {
	store   *mappings.Store
	decoder *decoder.Decoder
	log     *zap.Logger
}

func New(store *mappings.Store, dec *decoder.Decoder, log *zap.Logger) *Enricher {
	return &Enricher{store: store, decoder: dec, log: log}
}

// Result carries the rendered context block together with the decoded
// identifier, so callers that need the structured signals (the router,
// the preview endpoint) don't decode twice.
type Result struct {
	Context string
	Decoded model.DecodedBMID
}

// Enrich renders one campaign into its ordered, newline-delimited
// context block.
func (e *Enricher) Enrich(campaign *model.CampaignRecord) Result {
	var lines []string
	add := func(label, value string) {
		if value != "" {
			lines = append(lines, label+": "+value)
		}
	}
	addMapped := func(label, field, value string) {
		if value != "" {
			add(label, e.store.Lookup(field, value))
		}
	}

	// Identifier and name first.
	name := campaign.Name
	if name == "" {
		name = "Unknown"
	}
	add("Campaign", name)

	// Channel, product and targeting fields.
	addMapped("Engagement method", "Channel__c", campaign.Channel)
	addMapped("Cross channel marketing integration indicator", "Integrated_Marketing__c", campaign.IntegratedMarketing)
	if campaign.IntendedProduct != "" && campaign.IntendedProduct != "General" {
		// "General" is the non-signal default, not worth a line.
		add("Product interest", e.store.Lookup("Intended_Product__c", campaign.IntendedProduct))
	}
	addMapped("Secondary channel", "Sub_Channel__c", campaign.SubChannel)
	addMapped("Specific engagement context", "Sub_Channel_Detail__c", campaign.SubChannelDetail)
	addMapped("Target customer profile campaign identifier", "TCP_Campaign__c", campaign.TCPCampaign)
	addMapped("Target customer profile program classification", "TCP_Program__c", campaign.TCPProgram)
	addMapped("Target customer profile and strategy", "TCP_Theme__c", campaign.TCPTheme)
	addMapped("Campaign format", "Type", campaign.Type)
	addMapped("Lead source context", "Vendor__c", campaign.Vendor)
	addMapped("Industry context", "Vertical__c", campaign.Vertical)
	addMapped("Value proposition focus", "Marketing_Message__c", campaign.MarketingMessage)

	// A semicolon means multi-territory; mapping a list is not
	// meaningful so the line is suppressed entirely.
	if campaign.Territory != "" && !strings.Contains(campaign.Territory, ";") {
		add("Sales territory assignment", e.store.Lookup("Territory__c", campaign.Territory))
	}

	if campaign.Segment != "" {
		add("Audience segment", e.mapSegments(campaign.Segment))
	}

	// Derived signals.
	if size := e.determineCompanySize(campaign); size != "" {
		add("Company size segment", e.store.Lookup("Company_Size_Context", size))
	}
	if stage := e.analyzeBuyerJourney(campaign); stage != "" {
		add("Buyer journey stage", stage)
	}

	// Free-text fields.
	add("Campaign description", campaign.Description)

	// Administrative fields.
	add("Target geographic market for campaign", campaign.IntendedCountry)
	if campaign.NonAttributable {
		lines = append(lines, "Attribution tracking: Cannot directly trace leads back to this campaign (lead may have been influenced by campaign)")
	} else {
		lines = append(lines, "Attribution tracking: Can clearly track that a lead came from this specific campaign (clear cause + effect)")
	}
	add("Parent marketing program", campaign.Program)
	add("Concise sales focused campaign summary", campaign.ShortSalesDescription)

	// Encoded-identifier enrichment always comes last.
	decoded := e.decoder.Decode(campaign)
	add("Campaign code intelligence", decoded.Display)

	return Result{Context: strings.Join(lines, "\n"), Decoded: decoded}
}

// mapSegments maps each semicolon-delimited segment token independently
// and rejoins them.
func (e *Enricher) mapSegments(raw string) string {
	var mapped []string
	for _, token := range strings.Split(raw, ";") {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		mapped = append(mapped, e.store.Lookup("Segment__c", token))
	}
	return strings.Join(mapped, "; ")
}

// determineCompanySize derives the company-size segment. The TCP theme
// is checked first and wins over name keywords; within each rule set the
// first match in priority order wins.
func (e *Enricher) determineCompanySize(campaign *model.CampaignRecord) string {
	if theme := campaign.TCPTheme; theme != "" {
		switch {
		case strings.Contains(theme, "SMB"):
			return "SMB"
		case strings.Contains(theme, "Upmarket"):
			return "Upmarket"
		case strings.Contains(theme, "Enterprise"):
			return "Enterprise"
		}
	}

	name := strings.ToLower(campaign.Name)
	switch {
	case strings.Contains(name, "smb"), strings.Contains(name, "small business"):
		return "Small Business"
	case strings.Contains(name, "enterprise"), strings.Contains(name, "majors"):
		return "Upmarket"
	case strings.Contains(name, "soho"):
		return "SOHO"
	}
	return ""
}

// Buyer-journey stage labels, keyed by the configured keyword list that
// triggers them. Checked strictly in this order; first match wins.
var journeyStages = []struct {
	listName string
	label    string
}{
	{"High_Intent_Keywords", "High intent - actively evaluating solutions (demo, trial, pricing interest)"},
	{"Research_Keywords", "Research phase - gathering information and comparing options"},
	{"Awareness_Keywords", "Awareness stage - learning about solutions and understanding needs"},
}

func (e *Enricher) analyzeBuyerJourney(campaign *model.CampaignRecord) string {
	fullText := strings.ToLower(strings.Join([]string{
		campaign.Name, campaign.Description, campaign.SubChannelDetail,
	}, " "))

	for _, stage := range journeyStages {
		for _, keyword := range e.store.JourneyKeywords(stage.listName) {
			if keyword != "" && strings.Contains(fullText, keyword) {
				return stage.label
			}
		}
	}
	return ""
}
