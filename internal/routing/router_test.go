// internal/routing/router_test.go
package routing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mktops/campaign-clarity/internal/decoder"
	"github.com/mktops/campaign-clarity/internal/mappings"
	"github.com/mktops/campaign-clarity/internal/model"
)

func newTestRouter(t *testing.T) (*Router, *decoder.Decoder) {
	t.Helper()
	store := mappings.Load("../../data/field_mappings.json", zap.NewNop())
	require.NotNil(t, store.Table("BMID_Email_Prospecting"), "field mappings resource must load")
	return New(zap.NewNop()), decoder.New(store, zap.NewNop())
}

func TestRouteEmailSmallBusinessRingEX(t *testing.T) {
	rt, dec := newTestRouter(t)

	campaign := &model.CampaignRecord{
		Channel:         "Email",
		BMID:            "DGSMBNONNRNFF",
		IntendedProduct: "RingEX",
	}
	recs := rt.Route(campaign, dec.Decode(campaign))

	require.Len(t, recs, 1)
	assert.Equal(t, "RingEX Sequence - SBG CPL Q1FY25", recs[0].SequenceName)
	assert.Equal(t, "https://app.outreach.io/sequences/4614/overview", recs[0].SequenceURL)
}

func TestRouteEmailMostSpecificRuleWins(t *testing.T) {
	rt, dec := newTestRouter(t)

	// "DG" + "<= 99" alone would match the general SBG rule; the
	// four-condition product rule must win.
	campaign := &model.CampaignRecord{
		Channel:         "Email",
		BMID:            "DGSMB",
		IntendedProduct: "RingCentral Contact Center",
	}
	recs := rt.Route(campaign, dec.Decode(campaign))

	require.Len(t, recs, 1)
	assert.Equal(t, "Contact Center Sequence - SBG CPL Q1FY25", recs[0].SequenceName)
}

func TestRouteEmailFallsBackByProduct(t *testing.T) {
	rt, dec := newTestRouter(t)

	campaign := &model.CampaignRecord{
		Channel:         "Email",
		BMID:            "WBRRGX",
		IntendedProduct: "RingEX",
	}
	recs := rt.Route(campaign, dec.Decode(campaign))

	require.Len(t, recs, 1)
	assert.Equal(t, "RingEX Webinar Follow-Up", recs[0].SequenceName)
}

func TestRouteEmailNoMatch(t *testing.T) {
	rt, _ := newTestRouter(t)

	campaign := &model.CampaignRecord{
		Channel: "Email",
		BMID:    "ZZZZ",
	}
	recs := rt.Route(campaign, model.DecodedBMID{})

	assert.Nil(t, recs)
}

func TestRouteNonDispatchChannels(t *testing.T) {
	rt, _ := newTestRouter(t)

	decoded := model.DecodedBMID{EmployeeSize: eeSizeSmall}

	assert.Nil(t, rt.Route(&model.CampaignRecord{Channel: "Direct Mail", BMID: "DGSMB"}, decoded))
	assert.Nil(t, rt.Route(&model.CampaignRecord{Channel: "Social Media"}, decoded))

	// Content syndication dispatches only with the content sub-channel.
	assert.Nil(t, rt.Route(&model.CampaignRecord{Channel: "Content Syndication", SubChannel: "Nurture"}, decoded))
}

func TestRouteSyndicationBySizeAndTags(t *testing.T) {
	rt, dec := newTestRouter(t)

	campaign := &model.CampaignRecord{
		Channel:    "Content Syndication",
		SubChannel: "Content",
		Name:       "CS_SMB_IMCUC",
	}
	recs := rt.Route(campaign, dec.Decode(campaign))

	require.Len(t, recs, 1)
	assert.Equal(t, "Content Syndication - SBG UC Sequence", recs[0].SequenceName)
	assert.Equal(t, "https://app.outreach.io/sequences/4801/overview", recs[0].SequenceURL)
}

func TestRouteSyndicationAnySizeFansOut(t *testing.T) {
	rt, dec := newTestRouter(t)

	campaign := &model.CampaignRecord{
		Channel:    "Content Syndication",
		SubChannel: "Content",
		Name:       "CS_ALL_IMCUC",
	}
	recs := rt.Route(campaign, dec.Decode(campaign))

	require.Len(t, recs, 2)
	assert.Equal(t, "Content Syndication - SBG UC Sequence", recs[0].SequenceName)
	assert.Equal(t, "Content Syndication - Upmarket UC Sequence", recs[1].SequenceName)
}

func TestRouteSyndicationGeneralBracket(t *testing.T) {
	rt, dec := newTestRouter(t)

	campaign := &model.CampaignRecord{
		Channel:    "Content Syndication",
		SubChannel: "Content",
		Name:       "CS_MM_WP",
	}
	recs := rt.Route(campaign, dec.Decode(campaign))

	require.Len(t, recs, 1)
	assert.Equal(t, "Content Syndication - Upmarket General Sequence", recs[0].SequenceName)
}

func TestSpecificityCountsEveryCondition(t *testing.T) {
	rule := Rule{
		BMIDContains: []string{"DG", "SMB"},
		Product:      "RINGEX",
		EmployeeSize: eeSizeSmall,
	}
	assert.Equal(t, 4, rule.Specificity())

	assert.Equal(t, 1, Rule{Product: "RINGEX"}.Specificity())
	assert.Equal(t, 0, Rule{}.Specificity())
}

func TestBestMatchTieGoesToFirstRule(t *testing.T) {
	rules := []Rule{
		{BMIDContains: []string{"DG"}, Sequence: model.Recommendation{SequenceName: "first"}},
		{BMIDContains: []string{"SMB"}, Sequence: model.Recommendation{SequenceName: "second"}},
	}

	best := bestMatch(rules, "DGSMB", "", "", nil)
	require.NotNil(t, best)
	assert.Equal(t, "first", best.Sequence.SequenceName)
}
