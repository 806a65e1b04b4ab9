package captions

// MaxSearchLimit is the hard cap applied to any search, whatever the
// policy or caller asks for.
const MaxSearchLimit = 500

// LimitPolicy decides how many search results to return when the caller
// does not pass an explicit limit. Scheduling heuristic, not core logic;
// swap implementations freely.
type LimitPolicy interface {
	Limit(mode string, quotaUsedRatio float64, keywordCount int) int
}

// TablePolicy maps a request mode to a base limit and shrinks it as quota
// usage climbs past the threshold.
type TablePolicy struct {
	Base           map[string]int
	Default        int
	QuotaThreshold float64
}

func DefaultLimitPolicy() TablePolicy {
	return TablePolicy{
		Base: map[string]int{
			"interactive": 50,
			"batch":       200,
			"export":      MaxSearchLimit,
		},
		Default:        50,
		QuotaThreshold: 0.8,
	}
}

func (p TablePolicy) Limit(mode string, quotaUsedRatio float64, keywordCount int) int {
	limit, ok := p.Base[mode]
	if !ok {
		limit = p.Default
	}

	// Multi-keyword queries are already narrow; single-keyword ones get
	// trimmed harder under quota pressure.
	if quotaUsedRatio > p.QuotaThreshold {
		remaining := 1 - quotaUsedRatio
		if remaining < 0 {
			remaining = 0
		}
		scaled := int(float64(limit) * remaining / (1 - p.QuotaThreshold))
		if keywordCount > 1 && scaled < limit/2 {
			scaled = limit / 2
		}
		limit = scaled
	}

	if limit < 1 {
		limit = 1
	}
	if limit > MaxSearchLimit {
		limit = MaxSearchLimit
	}
	return limit
}
