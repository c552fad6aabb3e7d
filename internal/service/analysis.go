package service

import (
	"encoding/json"
	"fmt"
	"strings"

	"finsight/internal/models"
)

const analysisSystemPrompt = "You are a financial analysis AI. Extract and analyze financial data from statements. Return valid JSON."

// analysisFallback is stored verbatim when the provider call itself fails;
// ingestion still succeeds with zero extracted transactions.
const analysisFallback = "AI analysis failed. Manual review required."

// Analysis is the normalized model reply. Structured reports whether the
// reply parsed as the requested JSON object; when false, Summary carries the
// raw reply text and Transactions is empty.
type Analysis struct {
	Structured      bool
	Summary         string
	TotalIncome     float64
	TotalExpenses   float64
	Transactions    []models.TransactionStub
	Categories      map[string]float64
	Insights        []string
	Recommendations []string
	Raw             string
}

func buildAnalysisPrompt(extractedText string, charBudget int) string {
	return fmt.Sprintf(`Analyze this financial statement and extract key information:

%s

Provide:
1. Summary of the statement
2. List of transactions with dates, amounts, descriptions
3. Total income and expenses
4. Categories of spending
5. Financial insights and recommendations

Format as JSON with this structure:
{
  "summary": "Brief summary",
  "totalIncome": 0,
  "totalExpenses": 0,
  "transactions": [
    {"date": "YYYY-MM-DD", "amount": 0, "description": "", "category": ""}
  ],
  "categories": {"Category1": 0, "Category2": 0},
  "insights": ["insight1", "insight2"],
  "recommendations": ["rec1", "rec2"]
}`, truncateRunes(extractedText, charBudget))
}

// parseAnalysis attempts strict JSON parsing of the model reply. Replies
// wrapped in markdown fences or surrounded by prose are salvaged by slicing
// the outermost object; anything that still fails to parse degrades to a
// free-text summary rather than an error.
func parseAnalysis(reply string) *Analysis {
	content := strings.TrimSpace(reply)

	jsonStr := content
	jsonStr = strings.TrimPrefix(jsonStr, "```json")
	jsonStr = strings.TrimPrefix(jsonStr, "```")
	jsonStr = strings.TrimSuffix(jsonStr, "```")
	jsonStr = strings.TrimSpace(jsonStr)

	if start, end := strings.Index(jsonStr, "{"), strings.LastIndex(jsonStr, "}"); start != -1 && end > start {
		jsonStr = jsonStr[start : end+1]
	}

	var parsed struct {
		Summary         string                   `json:"summary"`
		TotalIncome     float64                  `json:"totalIncome"`
		TotalExpenses   float64                  `json:"totalExpenses"`
		Transactions    []models.TransactionStub `json:"transactions"`
		Categories      map[string]float64       `json:"categories"`
		Insights        []string                 `json:"insights"`
		Recommendations []string                 `json:"recommendations"`
	}

	if err := json.Unmarshal([]byte(jsonStr), &parsed); err != nil {
		return &Analysis{
			Structured: false,
			Summary:    content,
			Raw:        content,
		}
	}

	return &Analysis{
		Structured:      true,
		Summary:         parsed.Summary,
		TotalIncome:     parsed.TotalIncome,
		TotalExpenses:   parsed.TotalExpenses,
		Transactions:    parsed.Transactions,
		Categories:      parsed.Categories,
		Insights:        parsed.Insights,
		Recommendations: parsed.Recommendations,
		Raw:             content,
	}
}

// truncateRunes cuts s to at most n runes, keeping the result valid UTF-8.
func truncateRunes(s string, n int) string {
	if n <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
