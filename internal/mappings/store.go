// internal/mappings/store.go
package mappings

import (
	"encoding/json"
	"os"
	"strings"

	"go.uber.org/zap"
)

// Store holds the field-value context mappings loaded from
// field_mappings.json. It is built once at startup and read-only after
// that; every component that needs it receives it explicitly.
type Store struct {
	fields  map[string]map[string]string
	journey map[string][]string
	log     *zap.Logger
}

// rawDocument matches the top-level shape of field_mappings.json: every
// key is a flat string map except Buyer_Journey_Indicators, which holds
// keyword lists.
type rawDocument map[string]json.RawMessage

const journeyKey = "Buyer_Journey_Indicators"

// Load reads the mapping resource. A missing or corrupt file is not
// fatal: the store comes up empty and every lookup degrades to
// passthrough, which only costs context quality.
func Load(path string, log *zap.Logger) *Store {
	s := &Store{
		fields:  map[string]map[string]string{},
		journey: map[string][]string{},
		log:     log,
	}

	data, err := os.ReadFile(path)
	if err != nil {
		log.Warn("field mappings unavailable, lookups fall back to raw values",
			zap.String("path", path), zap.Error(err))
		return s
	}

	var doc rawDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		log.Warn("field mappings unreadable, lookups fall back to raw values",
			zap.String("path", path), zap.Error(err))
		return s
	}

	for key, raw := range doc {
		if key == journeyKey {
			lists := map[string][]string{}
			if err := json.Unmarshal(raw, &lists); err != nil {
				log.Warn("buyer journey keyword lists unreadable", zap.Error(err))
				continue
			}
			s.journey = lists
			continue
		}

		table := map[string]string{}
		if err := json.Unmarshal(raw, &table); err != nil {
			log.Warn("field mapping table unreadable, skipping",
				zap.String("field", key), zap.Error(err))
			continue
		}
		s.fields[key] = table
	}

	log.Info("field mappings loaded",
		zap.String("path", path), zap.Int("tables", len(s.fields)))
	return s
}

// Lookup maps (fieldName, rawValue) to a human-readable composed value.
// Exact match first, then a case-insensitive scan; any miss returns the
// raw value unchanged. A hit composes "{raw} ({description})".
func (s *Store) Lookup(fieldName, rawValue string) string {
	if rawValue == "" {
		return rawValue
	}
	table, ok := s.fields[fieldName]
	if !ok {
		return rawValue
	}

	desc, ok := table[rawValue]
	if !ok {
		lower := strings.ToLower(rawValue)
		for key, val := range table {
			if strings.ToLower(key) == lower {
				desc = val
				ok = true
				break
			}
		}
	}

	if !ok || strings.TrimSpace(desc) == "" {
		return rawValue
	}
	return rawValue + " (" + strings.TrimSpace(desc) + ")"
}

// Describe returns just the description for an exact or case-insensitive
// key match, without the composed formatting. Decoders use this for
// dictionary tables where the raw token is noise.
func (s *Store) Describe(fieldName, key string) (string, bool) {
	table, ok := s.fields[fieldName]
	if !ok {
		return "", false
	}
	if desc, ok := table[key]; ok {
		return desc, true
	}
	lower := strings.ToLower(key)
	for k, v := range table {
		if strings.ToLower(k) == lower {
			return v, true
		}
	}
	return "", false
}

// Table returns the raw table for a field, nil when absent. The returned
// map must be treated as read-only.
func (s *Store) Table(fieldName string) map[string]string {
	return s.fields[fieldName]
}

// JourneyKeywords returns the configured keyword list for a buyer-journey
// indicator name, nil when absent.
func (s *Store) JourneyKeywords(listName string) []string {
	return s.journey[listName]
}
