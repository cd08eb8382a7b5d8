// internal/report/excel.go
package report

import (
	"fmt"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/mktops/campaign-clarity/internal/model"
)

const (
	mainSheet      = "Campaign Descriptions"
	headerColor    = "366092"
	maxColumnWidth = 50.0
)

// Writer produces the formatted Excel reports. Pure presentation: it
// accepts processed rows and writes workbooks, nothing more.
type Writer struct {
	outputDir string
	log       *zap.Logger
}

func NewWriter(outputDir string, log *zap.Logger) *Writer {
	return &Writer{outputDir: outputDir, log: log}
}

// columns is the fixed report column order: AI outputs first, then the
// key fields reps scan, then the rest.
var columns = []struct {
	header string
	value  func(*model.ProcessedCampaign) string
}{
	{"AI_Sales_Description", func(p *model.ProcessedCampaign) string { return p.AIDescription }},
	{"AI_Prompt", func(p *model.ProcessedCampaign) string { return p.Prompt }},
	{"Description", func(p *model.ProcessedCampaign) string { return p.Campaign.Description }},
	{"Short_Description_for_Sales__c", func(p *model.ProcessedCampaign) string { return p.Campaign.ShortSalesDescription }},
	{"Id", func(p *model.ProcessedCampaign) string { return p.Campaign.ID }},
	{"Name", func(p *model.ProcessedCampaign) string { return p.Campaign.Name }},
	{"BMID__c", func(p *model.ProcessedCampaign) string { return p.Campaign.BMID }},
	{"Intended_Product__c", func(p *model.ProcessedCampaign) string { return p.Campaign.IntendedProduct }},
	{"Channel__c", func(p *model.ProcessedCampaign) string { return p.Campaign.Channel }},
	{"Sub_Channel__c", func(p *model.ProcessedCampaign) string { return p.Campaign.SubChannel }},
	{"Sub_Channel_Detail__c", func(p *model.ProcessedCampaign) string { return p.Campaign.SubChannelDetail }},
	{"Type", func(p *model.ProcessedCampaign) string { return p.Campaign.Type }},
	{"Territory__c", func(p *model.ProcessedCampaign) string { return p.Campaign.Territory }},
	{"Segment__c", func(p *model.ProcessedCampaign) string { return p.Campaign.Segment }},
	{"Vertical__c", func(p *model.ProcessedCampaign) string { return p.Campaign.Vertical }},
	{"Vendor__c", func(p *model.ProcessedCampaign) string { return p.Campaign.Vendor }},
	{"Marketing_Message__c", func(p *model.ProcessedCampaign) string { return p.Campaign.MarketingMessage }},
	{"TCP_Campaign__c", func(p *model.ProcessedCampaign) string { return p.Campaign.TCPCampaign }},
	{"TCP_Program__c", func(p *model.ProcessedCampaign) string { return p.Campaign.TCPProgram }},
	{"TCP_Theme__c", func(p *model.ProcessedCampaign) string { return p.Campaign.TCPTheme }},
	{"Integrated_Marketing__c", func(p *model.ProcessedCampaign) string { return p.Campaign.IntegratedMarketing }},
	{"Intended_Country__c", func(p *model.ProcessedCampaign) string { return p.Campaign.IntendedCountry }},
	{"Program__c", func(p *model.ProcessedCampaign) string { return p.Campaign.Program }},
	{"Non_Attributable__c", func(p *model.ProcessedCampaign) string { return strconv.FormatBool(p.Campaign.NonAttributable) }},
	{"Prompt_Category", func(p *model.ProcessedCampaign) string { return p.PromptCategory }},
	{"Recent_Member_Count", func(p *model.ProcessedCampaign) string { return strconv.Itoa(p.Campaign.RecentMemberCount) }},
}

// WriteCampaignReport writes the main report and returns its path. The
// filename marks preview runs so nobody mistakes them for real output.
func (w *Writer) WriteCampaignReport(rows []*model.ProcessedCampaign, generated bool) (string, error) {
	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("campaign_descriptions_%s.xlsx", timestamp)
	if !generated {
		filename = fmt.Sprintf("campaign_descriptions_PREVIEW_%s.xlsx", timestamp)
	}
	path := filepath.Join(w.outputDir, filename)

	f := excelize.NewFile()
	defer f.Close()
	f.SetSheetName("Sheet1", mainSheet)

	widths := make([]int, len(columns))
	for c, col := range columns {
		cell, _ := excelize.CoordinatesToCellName(c+1, 1)
		if err := f.SetCellValue(mainSheet, cell, col.header); err != nil {
			return "", err
		}
		widths[c] = len(col.header)
	}

	for r, row := range rows {
		for c, col := range columns {
			value := col.value(row)
			cell, _ := excelize.CoordinatesToCellName(c+1, r+2)
			if err := f.SetCellValue(mainSheet, cell, value); err != nil {
				return "", err
			}
			if len(value) > widths[c] {
				widths[c] = len(value)
			}
		}
	}

	if err := w.styleHeader(f, mainSheet, len(columns)); err != nil {
		return "", err
	}
	for c, width := range widths {
		name, _ := excelize.ColumnNumberToName(c + 1)
		adjusted := float64(width + 2)
		if adjusted > maxColumnWidth {
			adjusted = maxColumnWidth
		}
		if err := f.SetColWidth(mainSheet, name, name, adjusted); err != nil {
			return "", err
		}
	}

	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("save report: %w", err)
	}
	w.log.Info("report saved", zap.String("path", path), zap.Int("rows", len(rows)))
	return path, nil
}

func (w *Writer) styleHeader(f *excelize.File, sheet string, cols int) error {
	style, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{headerColor}, Pattern: 1},
	})
	if err != nil {
		return err
	}
	first, _ := excelize.CoordinatesToCellName(1, 1)
	last, _ := excelize.CoordinatesToCellName(cols, 1)
	return f.SetCellStyle(sheet, first, last, style)
}

// WriteSummaryReport writes the run-statistics workbook: one metrics
// sheet plus channel and vertical breakdowns.
func (w *Writer) WriteSummaryReport(rows []*model.ProcessedCampaign) (string, error) {
	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(w.outputDir, fmt.Sprintf("campaign_summary_%s.xlsx", timestamp))

	described := 0
	totalLen := 0
	totalMembers := 0
	channels := map[string]int{}
	verticals := map[string]int{}
	for _, row := range rows {
		if row.AIDescription != "" {
			described++
			totalLen += len(row.AIDescription)
		}
		totalMembers += row.Campaign.RecentMemberCount
		channels[row.Campaign.Channel]++
		verticals[row.Campaign.Vertical]++
	}

	successRate := 0.0
	avgLen := 0.0
	if len(rows) > 0 {
		successRate = float64(described) / float64(len(rows)) * 100
	}
	if described > 0 {
		avgLen = float64(totalLen) / float64(described)
	}

	f := excelize.NewFile()
	defer f.Close()
	f.SetSheetName("Sheet1", "Summary")

	metrics := [][2]string{
		{"Total Campaigns Processed", strconv.Itoa(len(rows))},
		{"Campaigns with AI Descriptions", strconv.Itoa(described)},
		{"Processing Success Rate", fmt.Sprintf("%.1f%%", successRate)},
		{"Average Description Length", fmt.Sprintf("%.1f chars", avgLen)},
		{"Unique Channels", strconv.Itoa(len(channels))},
		{"Unique Verticals", strconv.Itoa(len(verticals))},
		{"Total Campaign Members", strconv.Itoa(totalMembers)},
	}
	f.SetCellValue("Summary", "A1", "Metric")
	f.SetCellValue("Summary", "B1", "Value")
	for i, m := range metrics {
		f.SetCellValue("Summary", fmt.Sprintf("A%d", i+2), m[0])
		f.SetCellValue("Summary", fmt.Sprintf("B%d", i+2), m[1])
	}

	if err := writeBreakdown(f, "Channel Breakdown", "Channel", channels); err != nil {
		return "", err
	}
	if err := writeBreakdown(f, "Vertical Breakdown", "Vertical", verticals); err != nil {
		return "", err
	}

	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("save summary report: %w", err)
	}
	w.log.Info("summary report saved", zap.String("path", path))
	return path, nil
}

func writeBreakdown(f *excelize.File, sheet, label string, counts map[string]int) error {
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}
	f.SetCellValue(sheet, "A1", label)
	f.SetCellValue(sheet, "B1", "Count")

	// Largest first, names breaking ties, so the sheet is stable.
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if counts[keys[i]] != counts[keys[j]] {
			return counts[keys[i]] > counts[keys[j]]
		}
		return keys[i] < keys[j]
	})

	for i, k := range keys {
		f.SetCellValue(sheet, fmt.Sprintf("A%d", i+2), k)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", i+2), counts[k])
	}
	return nil
}
