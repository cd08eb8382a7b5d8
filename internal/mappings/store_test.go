// internal/mappings/store_test.go
package mappings

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const fixture = `{
  "Channel__c": {
    "Email": "Prospect nurture channel - outbound prospecting emails sent to cold or warming contacts",
    "Paid Search": "Prospect searched for a solution and clicked a paid ad - strong active interest",
    "Blank Desc": "   "
  },
  "Buyer_Journey_Indicators": {
    "High_Intent_Keywords": ["demo", "trial", "pricing"]
  }
}`

func writeFixture(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "field_mappings.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLookupComposesMappedValue(t *testing.T) {
	s := Load(writeFixture(t, fixture), zap.NewNop())

	got := s.Lookup("Channel__c", "Email")
	assert.Equal(t, "Email (Prospect nurture channel - outbound prospecting emails sent to cold or warming contacts)", got)
}

func TestLookupIsCaseInsensitive(t *testing.T) {
	s := Load(writeFixture(t, fixture), zap.NewNop())

	got := s.Lookup("Channel__c", "paid search")
	assert.Equal(t, "paid search (Prospect searched for a solution and clicked a paid ad - strong active interest)", got)
}

func TestLookupPassesThroughUnmappedValue(t *testing.T) {
	s := Load(writeFixture(t, fixture), zap.NewNop())

	assert.Equal(t, "Unmapped-Value", s.Lookup("Channel__c", "Unmapped-Value"))
	assert.Equal(t, "Email", s.Lookup("No_Such_Field__c", "Email"))
	assert.Equal(t, "", s.Lookup("Channel__c", ""))
}

func TestLookupPassesThroughBlankDescription(t *testing.T) {
	s := Load(writeFixture(t, fixture), zap.NewNop())

	assert.Equal(t, "Blank Desc", s.Lookup("Channel__c", "Blank Desc"))
}

func TestLookupIsStableAcrossCalls(t *testing.T) {
	s := Load(writeFixture(t, fixture), zap.NewNop())

	first := s.Lookup("Channel__c", "Email")
	second := s.Lookup("Channel__c", "Email")
	assert.Equal(t, first, second)
}

func TestDescribe(t *testing.T) {
	s := Load(writeFixture(t, fixture), zap.NewNop())

	desc, ok := s.Describe("Channel__c", "EMAIL")
	require.True(t, ok)
	assert.Equal(t, "Prospect nurture channel - outbound prospecting emails sent to cold or warming contacts", desc)

	_, ok = s.Describe("Channel__c", "Nope")
	assert.False(t, ok)
}

func TestJourneyKeywords(t *testing.T) {
	s := Load(writeFixture(t, fixture), zap.NewNop())

	assert.Equal(t, []string{"demo", "trial", "pricing"}, s.JourneyKeywords("High_Intent_Keywords"))
	assert.Nil(t, s.JourneyKeywords("No_Such_List"))
}

func TestLoadMissingFileDegradesToPassthrough(t *testing.T) {
	s := Load(filepath.Join(t.TempDir(), "nope.json"), zap.NewNop())

	assert.Equal(t, "Email", s.Lookup("Channel__c", "Email"))
	assert.Nil(t, s.Table("Channel__c"))
}

func TestLoadCorruptFileDegradesToPassthrough(t *testing.T) {
	s := Load(writeFixture(t, "{not json"), zap.NewNop())

	assert.Equal(t, "Email", s.Lookup("Channel__c", "Email"))
}
