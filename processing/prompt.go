package processing

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/coreybb/boardroom/models"
)

const briefInstructions = `
You are a senior strategic analyst creating executive briefings for Andriani's board of directors. Andriani is an Italian food company specializing in pasta, rice, and sustainable packaging.

EXECUTIVE BRIEFING FORMAT:
- Focus on strategic implications, not just news summaries
- Provide actionable insights for board-level decision making
- Highlight competitive advantages, risks, and opportunities
- Connect news to Andriani's business strategy and market position

REQUIRED FIELDS for each item:
- title: Concise executive summary title
- source: News source
- link: Original article URL (copy it unchanged)
- theme: Strategic theme (%s)
- priority: High/Medium/Low based on strategic impact
- why_it_matters: 2-line strategic analysis focusing on business implications for Andriani
- region: %s
- category: %s

STRATEGIC ANALYSIS FOCUS:
- Market positioning implications
- Competitive landscape changes
- Regulatory impact on operations
- Supply chain vulnerabilities/opportunities
- Brand reputation considerations
- Financial performance indicators
- Innovation and technology trends
- Sustainability and ESG factors

CATEGORIZATION RULES:
- Each article must be assigned to EXACTLY ONE category
- Choose the most relevant category based on primary content focus
- Avoid duplicate categorization - each article belongs to only one category
- Categories: %s
%s
CRITICAL: You MUST analyze and return executive summaries for ALL %d provided news items. Do not skip any articles. Each input article must have a corresponding executive summary in the output.

Output strict JSON with key "items" containing exactly %d items (one for each input article).
`

// BuildInstructions renders the system prompt for n input articles.
func BuildInstructions(n int, sel models.FilterSelection) string {
	categoryIDs := make([]string, len(models.Categories))
	for i, c := range models.Categories {
		categoryIDs[i] = c.ID
	}
	regionNames := []string{"Italy", "EU", "USA", "Canada"}

	return fmt.Sprintf(briefInstructions,
		strings.Join(models.Themes, "; "),
		strings.Join(regionNames, ", "),
		strings.Join(categoryIDs, ", "),
		strings.Join(categoryIDs, ", "),
		focusLines(sel),
		n, n,
	)
}

// focusLines injects the selected categories and regions, by display name.
func focusLines(sel models.FilterSelection) string {
	var sb strings.Builder
	if len(sel.Categories) > 0 {
		names := make([]string, len(sel.Categories))
		for i, id := range sel.Categories {
			names[i] = models.CategoryName(id)
		}
		fmt.Fprintf(&sb, "\n- FOCUS CATEGORIES: Analyze only news related to: %s", strings.Join(names, ", "))
	}
	if len(sel.Regions) > 0 {
		names := make([]string, len(sel.Regions))
		for i, id := range sel.Regions {
			names[i] = models.RegionName(id)
		}
		fmt.Fprintf(&sb, "\n- GEOGRAPHIC FOCUS: Analyze only news related to: %s", strings.Join(names, ", "))
	}
	if sb.Len() > 0 {
		sb.WriteString("\n")
	}
	return sb.String()
}

// BuildUserMessage serializes the input articles for the model.
func BuildUserMessage(items []models.BriefRequestItem) (string, error) {
	payload, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to serialize brief input: %w", err)
	}
	return "INPUT_ITEMS_JSON:\n" + string(payload) + "\nReturn ONLY JSON: {\"items\":[...]}.", nil
}
