package billing

import "testing"

func TestNormalizePlan(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "free", want: "free"},
		{in: "premium", want: "premium"},
		{in: "PREMIUM", want: "premium"},
		{in: "invalid", want: "free"},
		{in: "", want: "free"},
	}

	for _, tt := range tests {
		if got := normalizePlan(tt.in); got != tt.want {
			t.Fatalf("normalizePlan(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestPlanRank(t *testing.T) {
	if planRank("free") >= planRank("premium") {
		t.Fatalf("expected premium to outrank free")
	}
}

func TestNormalizeInterval(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "month", want: "month"},
		{in: "YEAR", want: "year"},
		{in: "week", want: "unknown"},
		{in: "", want: "unknown"},
	}

	for _, tt := range tests {
		if got := normalizeInterval(tt.in); got != tt.want {
			t.Fatalf("normalizeInterval(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestIsEntitlingStatus(t *testing.T) {
	for _, status := range []string{"active", "trialing", "past_due"} {
		if !isEntitlingStatus(status) {
			t.Fatalf("expected status %q to be entitling", status)
		}
	}
	for _, status := range []string{"canceled", "incomplete", "expired", "paused"} {
		if isEntitlingStatus(status) {
			t.Fatalf("expected status %q to be non-entitling", status)
		}
	}
}
