// internal/service/pipeline_test.go
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mktops/campaign-clarity/internal/cache"
	"github.com/mktops/campaign-clarity/internal/decoder"
	"github.com/mktops/campaign-clarity/internal/enrich"
	"github.com/mktops/campaign-clarity/internal/mappings"
	"github.com/mktops/campaign-clarity/internal/model"
	"github.com/mktops/campaign-clarity/internal/routing"
)

type mockCRM struct {
	counts    map[string]int
	countsErr error
	campaigns []model.CampaignRecord

	memberCalls int
	fetchedIDs  []string
}

func (m *mockCRM) FetchMemberCountsSince(cutoff time.Time, limit int) (map[string]int, error) {
	m.memberCalls++
	return m.counts, m.countsErr
}

func (m *mockCRM) FetchCampaignsByIDs(ids []string) ([]model.CampaignRecord, error) {
	m.fetchedIDs = ids
	return m.campaigns, nil
}

type mockGenerator struct {
	enabled bool
	text    string
	failOn  string // substring of the user prompt that triggers an error
	calls   int
}

func (m *mockGenerator) Enabled() bool { return m.enabled }

func (m *mockGenerator) Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	m.calls++
	if m.failOn != "" && strings.Contains(userPrompt, m.failOn) {
		return "", errors.New("rate limited")
	}
	return m.text, nil
}

type mockWriter struct {
	rows      []*model.ProcessedCampaign
	generated bool
}

func (m *mockWriter) WriteCampaignReport(rows []*model.ProcessedCampaign, generated bool) (string, error) {
	m.rows = rows
	m.generated = generated
	return "report.xlsx", nil
}

func (m *mockWriter) WriteSummaryReport(rows []*model.ProcessedCampaign) (string, error) {
	return "summary.xlsx", nil
}

type mockArchive struct {
	created []*model.GeneratedDescription
}

func (m *mockArchive) Create(d *model.GeneratedDescription) error {
	m.created = append(m.created, d)
	return nil
}

func (m *mockArchive) LatestByCampaign(campaignID string) (*model.GeneratedDescription, error) {
	return nil, fmt.Errorf("not implemented")
}

func (m *mockArchive) ListByRun(runID string) ([]*model.GeneratedDescription, error) {
	return nil, fmt.Errorf("not implemented")
}

func newTestPipeline(t *testing.T, crm *mockCRM, gen *mockGenerator) (*Pipeline, *mockWriter, *mockArchive) {
	t.Helper()
	store := mappings.Load("../../data/field_mappings.json", zap.NewNop())
	require.NotNil(t, store.Table("Channel__c"), "field mappings resource must load")
	dec := decoder.New(store, zap.NewNop())

	writer := &mockWriter{}
	archive := &mockArchive{}
	p := &Pipeline{
		CRM:       crm,
		Generator: gen,
		Enricher:  enrich.New(store, dec, zap.NewNop()),
		Router:    routing.New(zap.NewNop()),
		Cache:     cache.NewManager(t.TempDir(), zap.NewNop()),
		Archive:   archive,
		Writer:    writer,
		Log:       zap.NewNop(),
	}
	return p, writer, archive
}

func testCampaigns() []model.CampaignRecord {
	return []model.CampaignRecord{
		{
			ID:              "701A",
			Name:            "SMB Outbound Q1",
			Channel:         "Email",
			BMID:            "DGSMBNONNRNFF",
			IntendedProduct: "RingEX",
		},
		{
			ID:      "701B",
			Name:    "Brand Awareness Display",
			Channel: "Display",
		},
	}
}

func TestRunHappyPath(t *testing.T) {
	crm := &mockCRM{
		counts:    map[string]int{"701A": 5, "701B": 2},
		campaigns: testCampaigns(),
	}
	gen := &mockGenerator{enabled: true, text: "Generated summary"}
	p, writer, archive := newTestPipeline(t, crm, gen)

	result, err := p.Run(context.Background(), RunOptions{})
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.Equal(t, 2, result.Processed)
	assert.Equal(t, 2, result.Described)
	assert.Equal(t, "report.xlsx", result.ReportPath)
	assert.Equal(t, "summary.xlsx", result.SummaryPath)
	assert.True(t, writer.generated)
	assert.Equal(t, 2, gen.calls)

	require.Len(t, writer.rows, 2)
	first := writer.rows[0]
	assert.Equal(t, "701A", first.Campaign.ID)
	assert.Equal(t, 5, first.Campaign.RecentMemberCount)
	assert.Contains(t, first.AIDescription, "Generated summary")
	// The email campaign routes to an outreach sequence and the
	// annotation survives into the final description.
	assert.Contains(t, first.AIDescription, "Recommended outreach: [RingEX Sequence - SBG CPL Q1FY25]")
	assert.Equal(t, "retargeting_nurture", first.PromptCategory)
	assert.Equal(t, "awareness_broadcast", writer.rows[1].PromptCategory)

	require.Len(t, archive.created, 2)
	assert.Equal(t, result.RunID, archive.created[0].RunID)
	assert.Equal(t, "701A", archive.created[0].CampaignID)
	assert.NotEmpty(t, archive.created[0].Prompt)
}

func TestRunContinuesPastGenerationFailure(t *testing.T) {
	crm := &mockCRM{
		counts:    map[string]int{"701A": 5, "701B": 2},
		campaigns: testCampaigns(),
	}
	gen := &mockGenerator{enabled: true, text: "ok", failOn: "SMB Outbound Q1"}
	p, writer, _ := newTestPipeline(t, crm, gen)

	result, err := p.Run(context.Background(), RunOptions{})
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.Equal(t, 2, result.Processed)
	assert.Equal(t, 1, result.Described)

	require.Len(t, writer.rows, 2)
	assert.Contains(t, writer.rows[0].AIDescription, "Error generating description")
	assert.Contains(t, writer.rows[1].AIDescription, "ok")
}

func TestRunPreviewMode(t *testing.T) {
	crm := &mockCRM{
		counts:    map[string]int{"701A": 5, "701B": 2},
		campaigns: testCampaigns(),
	}
	gen := &mockGenerator{enabled: false}
	p, writer, _ := newTestPipeline(t, crm, gen)

	result, err := p.Run(context.Background(), RunOptions{})
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.Equal(t, 0, gen.calls)
	assert.False(t, writer.generated)
	assert.Contains(t, writer.rows[0].AIDescription, "[PROMPT PREVIEW MODE] Campaign: SMB Outbound Q1")
}

func TestRunAppliesLimit(t *testing.T) {
	crm := &mockCRM{
		counts:    map[string]int{"701A": 5, "701B": 2},
		campaigns: testCampaigns(),
	}
	gen := &mockGenerator{enabled: true, text: "ok"}
	p, writer, _ := newTestPipeline(t, crm, gen)

	result, err := p.Run(context.Background(), RunOptions{Limit: 1})
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.Equal(t, 1, result.Processed)
	require.Len(t, writer.rows, 1)
}

func TestRunUsesCachedExtraction(t *testing.T) {
	crm := &mockCRM{
		countsErr: errors.New("should not query members"),
		campaigns: testCampaigns(),
	}
	gen := &mockGenerator{enabled: false}
	p, _, _ := newTestPipeline(t, crm, gen)

	p.Cache.Save([]string{"701A", "701B"}, map[string]int{"701A": 5, "701B": 2})

	result, err := p.Run(context.Background(), RunOptions{UseCache: true})
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.Equal(t, 0, crm.memberCalls)
	assert.Equal(t, []string{"701A", "701B"}, crm.fetchedIDs)
}

func TestRunEmptyExtraction(t *testing.T) {
	crm := &mockCRM{counts: map[string]int{}}
	gen := &mockGenerator{enabled: false}
	p, _, _ := newTestPipeline(t, crm, gen)

	result, err := p.Run(context.Background(), RunOptions{})
	require.NoError(t, err)
	assert.Nil(t, result)
}

func TestRunAbortsOnExtractionError(t *testing.T) {
	crm := &mockCRM{countsErr: errors.New("SOQL timeout")}
	gen := &mockGenerator{enabled: false}
	p, _, _ := newTestPipeline(t, crm, gen)

	result, err := p.Run(context.Background(), RunOptions{})
	require.Error(t, err)
	assert.Nil(t, result)
	assert.Contains(t, err.Error(), "extract campaign members")
}

func TestPreviewSkipsGeneration(t *testing.T) {
	gen := &mockGenerator{enabled: true, text: "should not run"}
	p, _, _ := newTestPipeline(t, &mockCRM{}, gen)

	campaign := &model.CampaignRecord{
		ID:              "701A",
		Name:            "SMB Outbound Q1",
		Channel:         "Email",
		BMID:            "DGSMBNONNRNFF",
		IntendedProduct: "RingEX",
	}
	row := p.Preview(campaign)

	assert.Equal(t, 0, gen.calls)
	assert.Empty(t, row.AIDescription)
	assert.Equal(t, "retargeting_nurture", row.PromptCategory)
	assert.NotEmpty(t, row.Prompt)
	require.Len(t, row.Recommendations, 1)
	assert.Equal(t, "https://app.outreach.io/sequences/4614/overview", row.Recommendations[0].SequenceURL)
}
