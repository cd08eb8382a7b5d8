// internal/enrich/enricher_test.go
package enrich

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mktops/campaign-clarity/internal/decoder"
	"github.com/mktops/campaign-clarity/internal/mappings"
	"github.com/mktops/campaign-clarity/internal/model"
)

func newTestEnricher(t *testing.T) *Enricher {
	t.Helper()
	store := mappings.Load("../../data/field_mappings.json", zap.NewNop())
	require.NotNil(t, store.Table("Channel__c"), "field mappings resource must load")
	return New(store, decoder.New(store, zap.NewNop()), zap.NewNop())
}

func TestEnrichComposesMappedLines(t *testing.T) {
	e := newTestEnricher(t)

	got := e.Enrich(&model.CampaignRecord{
		Name:    "FY25 SMB Outbound",
		Channel: "Email",
		BMID:    "DGSMB",
	})

	assert.Contains(t, got.Context,
		"Engagement method: Email (Prospect nurture channel - outbound prospecting emails sent to cold or warming contacts)")
}

func TestEnrichLineOrder(t *testing.T) {
	e := newTestEnricher(t)

	got := e.Enrich(&model.CampaignRecord{
		Name:    "Test Campaign",
		Channel: "Email",
		BMID:    "DGSMB",
	})

	lines := strings.Split(got.Context, "\n")
	require.NotEmpty(t, lines)
	assert.Equal(t, "Campaign: Test Campaign", lines[0])
	assert.True(t, strings.HasPrefix(lines[len(lines)-1], "Campaign code intelligence: "),
		"decoded identifier line must come last, got %q", lines[len(lines)-1])
}

func TestEnrichUnknownName(t *testing.T) {
	e := newTestEnricher(t)

	got := e.Enrich(&model.CampaignRecord{})
	assert.True(t, strings.HasPrefix(got.Context, "Campaign: Unknown"))
}

func TestEnrichSuppressesGeneralProduct(t *testing.T) {
	e := newTestEnricher(t)

	general := e.Enrich(&model.CampaignRecord{Name: "c", IntendedProduct: "General"})
	assert.NotContains(t, general.Context, "Product interest")

	specific := e.Enrich(&model.CampaignRecord{Name: "c", IntendedProduct: "RingEX"})
	assert.Contains(t, specific.Context, "Product interest: RingEX (Unified communications platform")
}

func TestEnrichSuppressesMultiTerritory(t *testing.T) {
	e := newTestEnricher(t)

	multi := e.Enrich(&model.CampaignRecord{Name: "c", Territory: "West;East"})
	assert.NotContains(t, multi.Context, "Sales territory assignment")

	single := e.Enrich(&model.CampaignRecord{Name: "c", Territory: "West"})
	assert.Contains(t, single.Context, "Sales territory assignment: West (Western region sales team)")
}

func TestEnrichMapsSegmentsIndependently(t *testing.T) {
	e := newTestEnricher(t)

	got := e.Enrich(&model.CampaignRecord{Name: "c", Segment: "SMB; Enterprise"})
	assert.Contains(t, got.Context,
		"Audience segment: SMB (Small and medium business, 5-99 employees); Enterprise (Enterprise accounts, 1000+ employees)")
}

func TestEnrichDerivesCompanySizeFromTheme(t *testing.T) {
	e := newTestEnricher(t)

	// The theme wins even when the name suggests a different size.
	got := e.Enrich(&model.CampaignRecord{
		Name:     "Enterprise Summit",
		TCPTheme: "SMB Acquisition",
	})
	assert.Contains(t, got.Context, "Company size segment: SMB (Small and medium business buyer, under 100 employees)")
}

func TestEnrichDerivesCompanySizeFromName(t *testing.T) {
	e := newTestEnricher(t)

	got := e.Enrich(&model.CampaignRecord{Name: "Majors pipeline push"})
	assert.Contains(t, got.Context, "Company size segment: Upmarket (Mid-market or enterprise buyer, 100+ employees)")

	none := e.Enrich(&model.CampaignRecord{Name: "Generic push"})
	assert.NotContains(t, none.Context, "Company size segment")
}

func TestEnrichBuyerJourneyStagePriority(t *testing.T) {
	e := newTestEnricher(t)

	// "demo" (high intent) must win over "webinar" (research).
	got := e.Enrich(&model.CampaignRecord{
		Name:        "Webinar follow up",
		Description: "Requested a demo after the webinar",
	})
	assert.Contains(t, got.Context, "Buyer journey stage: High intent - actively evaluating solutions")

	research := e.Enrich(&model.CampaignRecord{Name: "Buyer's guide download"})
	assert.Contains(t, research.Context, "Buyer journey stage: Research phase")
}

func TestEnrichAttributionSentences(t *testing.T) {
	e := newTestEnricher(t)

	direct := e.Enrich(&model.CampaignRecord{Name: "c"})
	assert.Contains(t, direct.Context,
		"Attribution tracking: Can clearly track that a lead came from this specific campaign (clear cause + effect)")

	influenced := e.Enrich(&model.CampaignRecord{Name: "c", NonAttributable: true})
	assert.Contains(t, influenced.Context,
		"Attribution tracking: Cannot directly trace leads back to this campaign (lead may have been influenced by campaign)")
}

func TestEnrichReturnsDecodedSignals(t *testing.T) {
	e := newTestEnricher(t)

	got := e.Enrich(&model.CampaignRecord{
		Name:    "SMB outbound",
		Channel: "Email",
		BMID:    "DGSMBNONNRNFF",
	})

	assert.Equal(t, "<= 99", got.Decoded.EmployeeSize)
	assert.Contains(t, got.Context, "Campaign code intelligence: Demand Generation")
}
