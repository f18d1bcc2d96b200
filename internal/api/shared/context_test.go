package shared

import (
	"context"
	"testing"
)

func TestTraceIDRoundTrip(t *testing.T) {
	t.Parallel()

	ctx := SetTraceID(context.Background())
	traceID := GetTraceID(ctx)

	if traceID == "" {
		t.Fatal("SetTraceID should produce a non-empty trace ID")
	}
	if len(traceID) != TraceIDLength*2 {
		t.Errorf("trace ID length = %d, want %d hex characters", len(traceID), TraceIDLength*2)
	}
}

func TestTraceIDUniqueness(t *testing.T) {
	t.Parallel()

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := GetTraceID(SetTraceID(context.Background()))
		if seen[id] {
			t.Fatalf("duplicate trace ID generated: %s", id)
		}
		seen[id] = true
	}
}

func TestGetTraceIDMissing(t *testing.T) {
	t.Parallel()

	if got := GetTraceID(context.Background()); got != "" {
		t.Errorf("GetTraceID on empty context = %q, want empty", got)
	}
}

func TestPremiumRoundTrip(t *testing.T) {
	t.Parallel()

	ctx := SetPremium(context.Background(), true)
	if !GetPremium(ctx) {
		t.Error("GetPremium should report true after SetPremium(true)")
	}

	ctx = SetPremium(context.Background(), false)
	if GetPremium(ctx) {
		t.Error("GetPremium should report false after SetPremium(false)")
	}
}

func TestGetPremiumDefaultsFree(t *testing.T) {
	t.Parallel()

	if GetPremium(context.Background()) {
		t.Error("a context without the premium flag must be free tier")
	}
}
