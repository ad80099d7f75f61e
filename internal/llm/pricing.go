package llm

import "strings"

// Price is a model's list price in USD per million tokens.
type Price struct {
	Input  float64
	Output float64
}

// Cost returns the USD cost of a call with the given token counts.
func (p Price) Cost(inputTokens, outputTokens int) float64 {
	return (float64(inputTokens)*p.Input + float64(outputTokens)*p.Output) / 1_000_000
}

// prices covers the models the configured aliases and defaults resolve
// to. Providers often report a dated snapshot, e.g. gpt-4o-mini-2024-07-18,
// which PriceFor matches by prefix.
var prices = map[string]Price{
	"claude-sonnet-4-20250514":    {Input: 3, Output: 15},
	"claude-haiku-4-5-20251001":   {Input: 1, Output: 5},
	"gpt-4o":                      {Input: 2.5, Output: 10},
	"gpt-4o-mini":                 {Input: 0.15, Output: 0.6},
	"gemini-2.0-flash":            {Input: 0.1, Output: 0.4},
	"google/gemini-2.0-flash-exp": {},
}

// PriceFor looks up the price of a model as recorded in the event log.
// Short aliases such as claude-haiku resolve first; otherwise the longest
// priced model ID that prefixes the name wins.
func PriceFor(model string) (Price, bool) {
	for _, aliases := range []map[string]string{anthropicAliases, geminiAliases} {
		model = modelAlias(model, aliases)
	}
	if p, ok := prices[model]; ok {
		return p, true
	}
	best := ""
	for id := range prices {
		if len(id) > len(best) && strings.HasPrefix(model, id+"-") {
			best = id
		}
	}
	if best == "" {
		return Price{}, false
	}
	return prices[best], true
}
