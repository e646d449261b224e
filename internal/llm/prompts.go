package llm

import (
	"bytes"
	"encoding/json"
	"strings"
)

// StrategySystemPrompt instructs the model to reply with bare JSON.
const StrategySystemPrompt = "You are a social media strategy expert. Always respond with valid JSON containing exactly 5 detailed, actionable strategies. Never include markdown formatting or code blocks in your response - only pure JSON."

const strategySchemaInstruction = `

Please respond with a valid JSON object containing exactly 5 strategies. Use this exact format:

{
  "strategies": [
    {
      "id": 1,
      "title": "Clear, actionable strategy title",
      "description": "Detailed explanation of the strategy and why it's important",
      "category": "Content|Engagement|Growth|Analytics|Community",
      "priority": "High|Medium|Low",
      "implementation_time": "1-2 weeks|2-4 weeks|1-2 months|3+ months",
      "expected_impact": "Brief description of expected results",
      "action_items": [
        "Specific action item 1",
        "Specific action item 2",
        "Specific action item 3"
      ],
      "metrics_to_track": [
        "Metric 1",
        "Metric 2"
      ]
    }
  ]
}

Focus on specific, measurable actions based on the performance data provided. Ensure each strategy has a clear title, detailed description, and actionable steps.`

// StrategyPromptInput holds the caller-supplied parts of the strategy prompt.
type StrategyPromptInput struct {
	Profiles     json.RawMessage
	OKR          string
	CustomPrompt string
}

// BuildStrategyPrompt renders the user prompt for strategy generation.
func BuildStrategyPrompt(in StrategyPromptInput) (string, error) {
	data, err := indentProfiles(in.Profiles)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	b.WriteString("Analyze this social media performance data and provide exactly 5 specific, actionable strategies for improvement.\n\nData: ")
	b.WriteString(data)
	if okr := strings.TrimSpace(in.OKR); okr != "" {
		b.WriteString("\n\nAlign strategies with this OKR: ")
		b.WriteString(okr)
	}
	if custom := strings.TrimSpace(in.CustomPrompt); custom != "" {
		b.WriteString("\n\nAdditional context: ")
		b.WriteString(custom)
	}
	b.WriteString(strategySchemaInstruction)
	return b.String(), nil
}

func indentProfiles(raw json.RawMessage) (string, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return "[]", nil
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, trimmed, "", "  "); err != nil {
		return "", err
	}
	return buf.String(), nil
}
