package cache

import (
	"context"
	"testing"

	"github.com/google/uuid"
)

func TestSummaryKeyStable(t *testing.T) {
	a := uuid.MustParse("11111111-1111-1111-1111-111111111111")
	b := uuid.MustParse("22222222-2222-2222-2222-222222222222")

	if SummaryKey([]uuid.UUID{a, b}) != SummaryKey([]uuid.UUID{b, a}) {
		t.Error("key should not depend on id order")
	}
	if SummaryKey([]uuid.UUID{a}) == SummaryKey([]uuid.UUID{b}) {
		t.Error("different id sets must map to different keys")
	}
	if SummaryKey(nil) != "pricing:summary:all" {
		t.Errorf("empty set key = %q, want pricing:summary:all", SummaryKey(nil))
	}
}

func TestNoopSummaryCache(t *testing.T) {
	c := NewNoopSummaryCache()
	ctx := context.Background()

	if err := c.SetSummary(ctx, "k", nil); err != nil {
		t.Fatalf("noop set: %v", err)
	}
	summary, ok, err := c.GetSummary(ctx, "k")
	if err != nil || ok || summary != nil {
		t.Errorf("noop get = (%v, %v, %v), want miss", summary, ok, err)
	}
	if err := c.InvalidateAll(ctx); err != nil {
		t.Fatalf("noop invalidate: %v", err)
	}
}
