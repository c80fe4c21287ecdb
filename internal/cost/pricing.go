package cost

import "strings"

const tokensPer1K = 1000.0

type ModelPrice struct {
	InputPer1KUSD  float64
	OutputPer1KUSD float64
}

var prices = map[string]ModelPrice{
	// Update these constants as provider pricing changes.
	"gpt-4":            {InputPer1KUSD: 0.03, OutputPer1KUSD: 0.06},
	"gpt-4o":           {InputPer1KUSD: 0.0025, OutputPer1KUSD: 0.01},
	"gpt-4o-mini":      {InputPer1KUSD: 0.00015, OutputPer1KUSD: 0.0006},
	"gpt-3.5-turbo":    {InputPer1KUSD: 0.0005, OutputPer1KUSD: 0.0015},
	"gemini-2.5-flash": {InputPer1KUSD: 0.0003, OutputPer1KUSD: 0.0025},
	"gemini-2.5-pro":   {InputPer1KUSD: 0.00125, OutputPer1KUSD: 0.01},
}

// EstimateUSD returns 0 for unknown models (local Ollama models included).
// Dated snapshots such as "gpt-4o-2024-08-06" fall back to their base name.
func EstimateUSD(model string, promptTokens, completionTokens int) float64 {
	price, ok := lookup(model)
	if !ok {
		return 0
	}

	inputCost := (float64(promptTokens) / tokensPer1K) * price.InputPer1KUSD
	outputCost := (float64(completionTokens) / tokensPer1K) * price.OutputPer1KUSD
	return inputCost + outputCost
}

func lookup(model string) (ModelPrice, bool) {
	model = strings.ToLower(strings.TrimSpace(model))
	for model != "" {
		if p, ok := prices[model]; ok {
			return p, true
		}
		i := strings.LastIndex(model, "-")
		if i < 0 {
			break
		}
		model = model[:i]
	}
	return ModelPrice{}, false
}
