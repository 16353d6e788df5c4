// Package tokens implements the Token Accountant described in
// SPEC_FULL.md §4.6: extracting usage counters from an agent Response,
// pricing them against a small fixed table, and formatting both for
// display.
package tokens

import (
	"fmt"
	"math"

	"github.com/strandschat/chatloop/internal/agent"
)

// Usage is one turn's accounted token counts and the cost derived from
// them. Cost is zero (and never displayed, per §4.6) whenever the model
// is unknown or the counters themselves are zero.
type Usage struct {
	Input  int
	Output int
	Total  int
	Model  string
	Cost   float64
	Priced bool
}

// FromResponse extracts and prices the token usage reported by resp,
// following the extraction order in agent.ExtractUsage (usage attribute,
// then top-level counters, then metrics-nested counters, then zeros).
func FromResponse(resp agent.Response) Usage {
	counters := agent.ExtractUsage(resp)
	model := agent.ModelID(resp)

	total := counters.TotalTokens
	if total == 0 {
		total = counters.InputTokens + counters.OutputTokens
	}

	u := Usage{
		Input:  counters.InputTokens,
		Output: counters.OutputTokens,
		Total:  total,
		Model:  model,
	}

	if price, ok := PriceFor(model); ok {
		u.Cost = float64(counters.InputTokens)*price.Input/1_000_000 + float64(counters.OutputTokens)*price.Output/1_000_000
		u.Priced = true
	}
	return u
}

// Add accumulates other into a running session total. Costs are always
// summed (an unpriced turn contributes zero cost), and the total counts as
// priced when either side was, so an unpriced turn never hides a
// previously accumulated cost.
func (u Usage) Add(other Usage) Usage {
	sum := Usage{
		Input:  u.Input + other.Input,
		Output: u.Output + other.Output,
		Total:  u.Total + other.Total,
		Model:  other.Model,
		Priced: u.Priced || other.Priced,
	}
	sum.Cost = u.Cost + other.Cost
	return sum
}

// FormatCount renders n using §8's K/M suffix rules: under 1000 as a bare
// integer, from 1000 up to a million as "X.YK", and a million or more as
// "X.YM". The K/M fraction is truncated rather than rounded so 999999
// renders "999.9K" instead of rounding up to "1000.0K" (§8).
func FormatCount(n int) string {
	switch {
	case n >= 1_000_000:
		return fmt.Sprintf("%.1fM", truncate1(float64(n)/1_000_000))
	case n >= 1000:
		return fmt.Sprintf("%.1fK", truncate1(float64(n)/1000))
	default:
		return fmt.Sprintf("%d", n)
	}
}

// truncate1 truncates (not rounds) f to one decimal place.
func truncate1(f float64) float64 {
	return math.Trunc(f*10) / 10
}

// FormatCost renders a dollar amount to four decimal places, or "" when
// cost tracking is not applicable (unpriced model or zero usage) — §4.6
// requires the cost display to be suppressed rather than show a
// misleading $0.0000.
func FormatCost(u Usage) string {
	if !u.Priced || u.Total == 0 {
		return ""
	}
	return fmt.Sprintf("$%.4f", u.Cost)
}

// FormatLine renders the per-turn usage line shown after an agent reply:
// "<tokens> tokens" optionally followed by " · <cost>" when pricing
// applies.
func FormatLine(u Usage) string {
	line := fmt.Sprintf("%s tokens", FormatCount(u.Total))
	if cost := FormatCost(u); cost != "" {
		line += " · " + cost
	}
	return line
}
