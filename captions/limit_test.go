package captions

import "testing"

func TestTablePolicyModes(t *testing.T) {
	p := DefaultLimitPolicy()

	tests := []struct {
		mode string
		want int
	}{
		{"interactive", 50},
		{"batch", 200},
		{"export", MaxSearchLimit},
		{"nonsense", 50},
	}
	for _, tt := range tests {
		if got := p.Limit(tt.mode, 0, 1); got != tt.want {
			t.Errorf("Limit(%q, 0, 1) = %d, want %d", tt.mode, got, tt.want)
		}
	}
}

func TestTablePolicyQuotaPressure(t *testing.T) {
	p := DefaultLimitPolicy()

	// Below the threshold nothing shrinks.
	if got := p.Limit("batch", 0.5, 1); got != 200 {
		t.Errorf("Limit under threshold = %d, want 200", got)
	}

	// Past the threshold the limit shrinks with remaining quota.
	high := p.Limit("batch", 0.85, 1)
	higher := p.Limit("batch", 0.95, 1)
	if high >= 200 || higher >= high {
		t.Errorf("quota pressure did not shrink limits: %d, %d", high, higher)
	}

	// Exhausted quota still returns at least one row.
	if got := p.Limit("interactive", 1.0, 1); got != 1 {
		t.Errorf("Limit at full quota = %d, want floor of 1", got)
	}

	// Narrow multi-keyword queries keep at least half the base limit.
	if got := p.Limit("batch", 0.99, 3); got < 100 {
		t.Errorf("multi-keyword limit = %d, want >= 100", got)
	}
}
