package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAnalysisValidJSON(t *testing.T) {
	reply := `{
		"summary": "March statement",
		"totalIncome": 3000,
		"totalExpenses": 1250.50,
		"transactions": [
			{"date": "2024-03-01", "amount": 3000, "description": "Salary", "category": "Income"},
			{"date": "2024-03-05", "amount": -1250.50, "description": "Rent", "category": "Housing"}
		],
		"categories": {"Housing": 1250.50},
		"insights": ["Most spending went to housing"],
		"recommendations": ["Consider a savings goal"]
	}`

	analysis := parseAnalysis(reply)

	require.True(t, analysis.Structured)
	assert.Equal(t, "March statement", analysis.Summary)
	assert.Equal(t, 3000.0, analysis.TotalIncome)
	assert.Equal(t, 1250.50, analysis.TotalExpenses)
	require.Len(t, analysis.Transactions, 2)
	assert.Equal(t, "Salary", analysis.Transactions[0].Description)
	assert.Equal(t, -1250.50, analysis.Transactions[1].Amount)
	assert.Len(t, analysis.Insights, 1)
	assert.Len(t, analysis.Recommendations, 1)
}

func TestParseAnalysisMarkdownFences(t *testing.T) {
	reply := "```json\n{\"summary\": \"fenced\", \"totalIncome\": 10, \"totalExpenses\": 5}\n```"

	analysis := parseAnalysis(reply)

	require.True(t, analysis.Structured)
	assert.Equal(t, "fenced", analysis.Summary)
	assert.Equal(t, 10.0, analysis.TotalIncome)
}

func TestParseAnalysisSurroundingProse(t *testing.T) {
	reply := `Here is the analysis you asked for:
{"summary": "wrapped", "totalIncome": 1, "totalExpenses": 2}
Let me know if you need anything else.`

	analysis := parseAnalysis(reply)

	require.True(t, analysis.Structured)
	assert.Equal(t, "wrapped", analysis.Summary)
}

func TestParseAnalysisUnstructuredReply(t *testing.T) {
	reply := "I could not produce JSON, but the statement shows mostly grocery spending."

	analysis := parseAnalysis(reply)

	assert.False(t, analysis.Structured)
	assert.Equal(t, reply, analysis.Summary)
	assert.Equal(t, reply, analysis.Raw)
	assert.Empty(t, analysis.Transactions)
}

func TestParseAnalysisBrokenJSON(t *testing.T) {
	reply := `{"summary": "truncated mid-`

	analysis := parseAnalysis(reply)

	assert.False(t, analysis.Structured)
	assert.Equal(t, reply, analysis.Summary)
}

func TestBuildAnalysisPromptTruncates(t *testing.T) {
	text := strings.Repeat("x", 500)

	prompt := buildAnalysisPrompt(text, 100)

	assert.Contains(t, prompt, strings.Repeat("x", 100))
	assert.NotContains(t, prompt, strings.Repeat("x", 101))
	assert.Contains(t, prompt, `"transactions"`)
}

func TestTruncateRunes(t *testing.T) {
	assert.Equal(t, "abc", truncateRunes("abc", 10))
	assert.Equal(t, "ab", truncateRunes("abcdef", 2))
	assert.Equal(t, "abcdef", truncateRunes("abcdef", 0))
	// Multi-byte input must not be cut mid-rune.
	assert.Equal(t, "héll", truncateRunes("héllo", 4))
}
