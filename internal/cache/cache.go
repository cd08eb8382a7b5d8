// internal/cache/cache.go
package cache

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
)

const cacheFile = "campaign_ids_cache.json"

// Snapshot is a cached extraction: which campaigns had recent members
// and how many, so repeat runs skip the expensive member query. The
// extraction date travels with it so operators can judge staleness.
type Snapshot struct {
	CampaignIDs    []string       `json:"campaign_ids"`
	MemberCounts   map[string]int `json:"member_counts"`
	ExtractionDate time.Time      `json:"extraction_date"`
	TotalCampaigns int            `json:"total_campaigns"`
	TotalMembers   int            `json:"total_members"`
}

// Manager owns the on-disk extraction cache. Every failure path degrades
// to a cache miss; the cache is an optimization, never a requirement.
type Manager struct {
	dir string
	log *zap.Logger
}

func NewManager(dir string, log *zap.Logger) *Manager {
	return &Manager{dir: dir, log: log}
}

func (m *Manager) path() string {
	return filepath.Join(m.dir, cacheFile)
}

// Load returns the cached snapshot, or nil when there is none worth
// using.
func (m *Manager) Load() *Snapshot {
	data, err := os.ReadFile(m.path())
	if err != nil {
		if !os.IsNotExist(err) {
			m.log.Warn("failed to read campaign cache", zap.Error(err))
		}
		return nil
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		m.log.Warn("campaign cache unreadable, ignoring", zap.Error(err))
		return nil
	}
	if len(snap.CampaignIDs) == 0 || snap.MemberCounts == nil {
		return nil
	}

	days := int(time.Since(snap.ExtractionDate).Hours() / 24)
	m.log.Info("found campaign cache",
		zap.String("extracted", snap.ExtractionDate.Format("2006-01-02")),
		zap.Int("days_old", days),
		zap.Int("campaigns", len(snap.CampaignIDs)))
	return &snap
}

// Save writes a fresh snapshot. Failure is logged, not returned: a run
// that produced data should not die because the cache directory is
// read-only.
func (m *Manager) Save(campaignIDs []string, memberCounts map[string]int) {
	total := 0
	for _, n := range memberCounts {
		total += n
	}
	snap := Snapshot{
		CampaignIDs:    campaignIDs,
		MemberCounts:   memberCounts,
		ExtractionDate: time.Now(),
		TotalCampaigns: len(campaignIDs),
		TotalMembers:   total,
	}

	if err := os.MkdirAll(m.dir, 0o755); err != nil {
		m.log.Warn("failed to create cache directory", zap.Error(err))
		return
	}
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		m.log.Warn("failed to encode campaign cache", zap.Error(err))
		return
	}
	if err := os.WriteFile(m.path(), data, 0o644); err != nil {
		m.log.Warn("failed to write campaign cache", zap.Error(err))
		return
	}
	m.log.Info("saved campaign cache", zap.Int("campaigns", len(campaignIDs)))
}

// Clear removes the cache file.
func (m *Manager) Clear() error {
	err := os.Remove(m.path())
	if os.IsNotExist(err) {
		m.log.Info("no campaign cache to clear")
		return nil
	}
	if err != nil {
		return err
	}
	m.log.Info("campaign cache cleared")
	return nil
}

// Info summarizes the current cache for display, nil when empty.
func (m *Manager) Info() map[string]any {
	snap := m.Load()
	if snap == nil {
		return nil
	}
	return map[string]any{
		"extraction_date": snap.ExtractionDate,
		"total_campaigns": snap.TotalCampaigns,
		"total_members":   snap.TotalMembers,
		"days_old":        int(time.Since(snap.ExtractionDate).Hours() / 24),
	}
}
