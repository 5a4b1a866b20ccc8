package prompts

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/leefowlercu/prompt-paladin/pkg/types"
)

var testLimits = Limits{MaxHistoryTurns: 3, MaxActiveFiles: 2}

func TestFormatGuardPromptBare(t *testing.T) {
	out := FormatGuardPrompt("fix this", types.PromptContext{}, testLimits)

	assert.Contains(t, out, "USER PROMPT TO EVALUATE:\nfix this")
	assert.NotContains(t, out, "CONVERSATION CONTEXT")
	assert.NotContains(t, out, "ACTIVE FILES")
	assert.NotContains(t, out, "SELECTED CODE")
	assert.True(t, strings.HasSuffix(out, "Provide your evaluation as JSON."))
}

func TestFormatGuardPromptWithContext(t *testing.T) {
	pctx := types.PromptContext{
		ConversationHistory: []string{"turn one", "turn two"},
		ActiveFiles:         []string{"auth.go", "main.go"},
		SelectedCode:        "func Login() {}",
	}

	out := FormatGuardPrompt("fix this", pctx, testLimits)

	assert.Contains(t, out, "CONVERSATION CONTEXT:\n- turn one\n- turn two")
	assert.Contains(t, out, "ACTIVE FILES: auth.go, main.go")
	assert.Contains(t, out, "SELECTED CODE:\nfunc Login() {}")
}

func TestHistoryKeepsMostRecentTurns(t *testing.T) {
	pctx := types.PromptContext{
		ConversationHistory: []string{"one", "two", "three", "four", "five"},
	}

	out := FormatGuardPrompt("x", pctx, testLimits)

	assert.NotContains(t, out, "- one\n")
	assert.NotContains(t, out, "- two\n")
	assert.Contains(t, out, "- three\n- four\n- five")
}

func TestActiveFilesKeepsFirstEntries(t *testing.T) {
	pctx := types.PromptContext{
		ActiveFiles: []string{"a.go", "b.go", "c.go"},
	}

	out := FormatGuardPrompt("x", pctx, testLimits)

	assert.Contains(t, out, "ACTIVE FILES: a.go, b.go")
	assert.NotContains(t, out, "c.go")
}

func TestZeroLimitsDisableBounding(t *testing.T) {
	pctx := types.PromptContext{
		ConversationHistory: []string{"one", "two", "three", "four"},
	}

	out := FormatGuardPrompt("x", pctx, Limits{})

	assert.Contains(t, out, "- one")
	assert.Contains(t, out, "- four")
}

func TestEachTemplateHasDistinctFraming(t *testing.T) {
	pctx := types.PromptContext{}

	assert.Contains(t, FormatSuggestionsPrompt("p", pctx, testLimits), "ORIGINAL PROMPT")
	assert.Contains(t, FormatHealPrompt("p", pctx, testLimits), "PROMPT TO HEAL")
	assert.Contains(t, FormatDiscussPrompt("p", pctx, testLimits), "UNCLEAR PROMPT")
}

func TestSystemPromptsDeclareJSONFormat(t *testing.T) {
	for name, system := range map[string]string{
		"guard":        GuardSystem,
		"suggestions":  SuggestionsSystem,
		"heal-clarity": HealClaritySystem,
		"heal-anger":   HealAngerSystem,
		"discuss":      DiscussSystem,
	} {
		assert.Contains(t, system, "RESPONSE FORMAT (JSON)", "system prompt %s must pin the response format", name)
	}
}
