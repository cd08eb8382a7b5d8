// internal/llm/client_test.go
package llm

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewDisabledNeedsNoKey(t *testing.T) {
	c, err := New("", "gpt-3.5-turbo", false, zap.NewNop())
	require.NoError(t, err)
	assert.False(t, c.Enabled())

	_, err = c.Generate(context.Background(), "sys", "user")
	assert.Error(t, err)
}

func TestNewEnabledRequiresKey(t *testing.T) {
	_, err := New("", "gpt-3.5-turbo", true, zap.NewNop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "OPENAI_API_KEY")
}

func TestPreviewText(t *testing.T) {
	assert.Equal(t, "[PROMPT PREVIEW MODE] Campaign: SMB Outbound...", PreviewText("SMB Outbound"))
	assert.Equal(t, "[PROMPT PREVIEW MODE] Campaign: Unknown...", PreviewText(""))

	long := strings.Repeat("n", 80)
	got := PreviewText(long)
	assert.Equal(t, "[PROMPT PREVIEW MODE] Campaign: "+strings.Repeat("n", 50)+"...", got)
}
