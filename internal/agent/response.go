package agent

import "time"

// Response is the opaque value an Invocable returns. The loop never assumes
// a concrete Response type — it only ever asks a candidate Response whether
// it implements one of the optional shapes below (§3, §9's "tagged variant
// over reflection" guidance), trying them in a fixed order and falling back
// gracefully when none match.
type Response interface{}

// TokenCounters is the keyed counter shape extraction ultimately reduces to,
// wherever in the Response it was found.
type TokenCounters struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

// Metrics bundles the cycle-count/duration metric fields §3 lists alongside
// an optional embedded token-counter shape (some agents report usage nested
// under their metrics rather than a dedicated usage field).
type Metrics struct {
	Cycles   int
	Duration time.Duration
	Usage    TokenCounters
}

// WithText is implemented by a Response that carries extractable textual
// content.
type WithText interface {
	Text() string
}

// WithModel is implemented by a Response that knows which model produced it.
type WithModel interface {
	Model() string
}

// WithUsage is shape 1 of §4.6's extraction order: a dedicated usage
// attribute holding the keyed token counters.
type WithUsage interface {
	Usage() TokenCounters
}

// WithTopLevelCounters is shape 2: the keyed counters live directly on the
// Response rather than behind a nested usage value.
type WithTopLevelCounters interface {
	TokenCounters() TokenCounters
}

// WithMetrics is shape 3 (and the source of cycle/duration display data):
// a metrics attribute that may itself carry the same keyed counters.
type WithMetrics interface {
	GetMetrics() Metrics
}

// Text extracts the best-effort textual content of resp, or "" if resp does
// not implement WithText.
func Text(resp Response) string {
	if t, ok := resp.(WithText); ok {
		return t.Text()
	}
	return ""
}

// ModelID extracts the best-effort model identifier of resp, or "" if resp
// does not implement WithModel.
func ModelID(resp Response) string {
	if m, ok := resp.(WithModel); ok {
		return m.Model()
	}
	return ""
}

// ExtractUsage implements §4.6's extraction strategy: usage attribute, then
// top-level counters, then metrics-nested counters, then zeros.
func ExtractUsage(resp Response) TokenCounters {
	if u, ok := resp.(WithUsage); ok {
		return u.Usage()
	}
	if t, ok := resp.(WithTopLevelCounters); ok {
		return t.TokenCounters()
	}
	if m, ok := resp.(WithMetrics); ok {
		return m.GetMetrics().Usage
	}
	return TokenCounters{}
}

// ExtractMetrics returns resp's Metrics (cycle count, duration) if it
// implements WithMetrics, or the zero value otherwise.
func ExtractMetrics(resp Response) Metrics {
	if m, ok := resp.(WithMetrics); ok {
		return m.GetMetrics()
	}
	return Metrics{}
}
