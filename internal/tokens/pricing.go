package tokens

import "strings"

// ModelPrice is the per-million-token cost of a known model, shaped after
// the teacher's models.Cost but fixed and small rather than backed by a
// live catalog (SPEC_FULL.md §4.6 calls for a small hard-coded table, not
// the teacher's embedded catwalk database — see DESIGN.md).
type ModelPrice struct {
	Input  float64
	Output float64
}

// pricingTable maps a model-identifier substring to its per-million-token
// cost. Lookup is substring-match against the model id reported by the
// Response (§4.6), first match wins, so more specific entries are listed
// before their broader relatives.
var pricingTable = []struct {
	substr string
	price  ModelPrice
}{
	{"claude-opus-4", ModelPrice{Input: 15.00, Output: 75.00}},
	{"claude-sonnet-4", ModelPrice{Input: 3.00, Output: 15.00}},
	{"claude-haiku-4", ModelPrice{Input: 0.80, Output: 4.00}},
	{"claude-3-7-sonnet", ModelPrice{Input: 3.00, Output: 15.00}},
	{"claude-3-5-sonnet", ModelPrice{Input: 3.00, Output: 15.00}},
	{"claude-3-5-haiku", ModelPrice{Input: 0.80, Output: 4.00}},
	{"claude-3-opus", ModelPrice{Input: 15.00, Output: 75.00}},
	{"nova-pro", ModelPrice{Input: 0.80, Output: 3.20}},
	{"nova-lite", ModelPrice{Input: 0.06, Output: 0.24}},
	{"nova-micro", ModelPrice{Input: 0.035, Output: 0.14}},
	{"llama3-3-70b", ModelPrice{Input: 0.72, Output: 0.72}},
	{"llama-3.3-70b", ModelPrice{Input: 0.72, Output: 0.72}},
	{"gpt-4o-mini", ModelPrice{Input: 0.15, Output: 0.60}},
	{"gpt-4o", ModelPrice{Input: 2.50, Output: 10.00}},
	{"gpt-4-turbo", ModelPrice{Input: 10.00, Output: 30.00}},
	{"gpt-4", ModelPrice{Input: 30.00, Output: 60.00}},
	{"gpt-3.5-turbo", ModelPrice{Input: 0.50, Output: 1.50}},
	{"gemini-1.5-pro", ModelPrice{Input: 1.25, Output: 5.00}},
	{"gemini-1.5-flash", ModelPrice{Input: 0.075, Output: 0.30}},
	{"gemini-2.0-flash", ModelPrice{Input: 0.10, Output: 0.40}},
	{"o1-mini", ModelPrice{Input: 1.10, Output: 4.40}},
	{"o1", ModelPrice{Input: 15.00, Output: 60.00}},
}

// PriceFor looks up the per-million-token price for modelID, returning
// false when no table entry matches (an unknown model, or an empty id
// because the Response never surfaced one).
func PriceFor(modelID string) (ModelPrice, bool) {
	if modelID == "" {
		return ModelPrice{}, false
	}
	lower := strings.ToLower(modelID)
	for _, entry := range pricingTable {
		if strings.Contains(lower, entry.substr) {
			return entry.price, true
		}
	}
	return ModelPrice{}, false
}
