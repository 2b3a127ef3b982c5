package ai

import "strings"

// USD per million tokens, by model family. Unknown models fall back to the
// Sonnet rate so the audit trail never under-reports spend tiers we have not
// priced explicitly.
type pricing struct {
	inputPerMTok  float64
	outputPerMTok float64
}

var modelPricing = []struct {
	prefix string
	rate   pricing
}{
	{"claude-3-5-haiku", pricing{0.80, 4.00}},
	{"claude-3-haiku", pricing{0.25, 1.25}},
	{"claude-3-opus", pricing{15.00, 75.00}},
	{"claude-opus", pricing{15.00, 75.00}},
	{"claude-3-5-sonnet", pricing{3.00, 15.00}},
	{"claude-sonnet", pricing{3.00, 15.00}},
}

var defaultPricing = pricing{3.00, 15.00}

// estimateCost returns the estimated USD cost of one call.
func estimateCost(model string, inputTokens, outputTokens int) float64 {
	rate := defaultPricing
	normalized := strings.ToLower(strings.TrimSpace(model))
	for _, entry := range modelPricing {
		if strings.HasPrefix(normalized, entry.prefix) {
			rate = entry.rate
			break
		}
	}
	return float64(inputTokens)/1e6*rate.inputPerMTok + float64(outputTokens)/1e6*rate.outputPerMTok
}
