package service

import (
	"context"
	"testing"
	"time"

	"talent-track/internal/llm"
)

func TestMemoryScoreCache_SetGetAndExpiry(t *testing.T) {
	cache := NewMemoryScoreCache()

	if err := cache.Set("k1", 12, time.Minute); err != nil {
		t.Fatalf("set: %v", err)
	}
	got, ok, err := cache.Get("k1")
	if err != nil || !ok || got != 12 {
		t.Fatalf("expected hit 12, got %d ok=%t err=%v", got, ok, err)
	}

	if err := cache.Set("k2", 7, -time.Second); err != nil {
		t.Fatalf("set expired: %v", err)
	}
	if _, ok, _ := cache.Get("k2"); ok {
		t.Fatal("expected expired entry to miss")
	}

	if _, ok, _ := cache.Get("missing"); ok {
		t.Fatal("expected miss for unknown key")
	}
}

func TestCachedEvaluator_AvoidsRepeatCalls(t *testing.T) {
	mock := &llm.MockClient{Response: "14"}
	cached := NewCachedEvaluator(NewContentEvaluator(mock, nil), NewMemoryScoreCache(), time.Minute)

	first := cached.Evaluate(context.Background(), "gracias por cubrirme el turno", EvaluationKindGratitude, 18)
	second := cached.Evaluate(context.Background(), "gracias por cubrirme el turno", EvaluationKindGratitude, 18)

	if first != 14 || second != 14 {
		t.Fatalf("expected 14 both times, got %d and %d", first, second)
	}
	if len(mock.Prompts) != 1 {
		t.Fatalf("expected a single llm call, got %d", len(mock.Prompts))
	}
}

func TestCachedEvaluator_DistinctBudgetsAreDistinctKeys(t *testing.T) {
	mock := &llm.MockClient{Response: "9"}
	cached := NewCachedEvaluator(NewContentEvaluator(mock, nil), NewMemoryScoreCache(), time.Minute)

	cached.Evaluate(context.Background(), "mismo texto", EvaluationKindGratitude, 18)
	cached.Evaluate(context.Background(), "mismo texto", EvaluationKindGratitude, 27)

	if len(mock.Prompts) != 2 {
		t.Fatalf("expected 2 llm calls for distinct budgets, got %d", len(mock.Prompts))
	}
}

func TestCachedEvaluator_SkipsCacheWhenUnavailable(t *testing.T) {
	cache := NewMemoryScoreCache()
	cached := NewCachedEvaluator(NewContentEvaluator(nil, nil), cache, time.Minute)

	got := cached.Evaluate(context.Background(), "texto", EvaluationKindWeakness, 30)
	if got != 15 {
		t.Fatalf("expected fallback 15, got %d", got)
	}
	// El fallback no debe quedar cacheado.
	key := scoreCacheKey("texto", EvaluationKindWeakness, 30)
	if _, ok, _ := cache.Get(key); ok {
		t.Fatal("fallback result must not be cached")
	}
}
