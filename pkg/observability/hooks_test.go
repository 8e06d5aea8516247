package observability

import (
	"context"
	"testing"
	"time"
)

type recordingAnalysisHooks struct {
	NoopAnalysisHooks
	decomposeStarts int
	spreadCompletes int
}

func (h *recordingAnalysisHooks) OnDecomposeStart(ctx context.Context, vertexCount int) {
	h.decomposeStarts++
}

func (h *recordingAnalysisHooks) OnSpreadComplete(ctx context.Context, start, generationCount int, d time.Duration, err error) {
	h.spreadCompletes++
}

type recordingCacheHooks struct {
	NoopCacheHooks
	hits int
}

func (h *recordingCacheHooks) OnCacheHit(ctx context.Context, keyType string) { h.hits++ }

func TestSetAnalysisHooks(t *testing.T) {
	defer Reset()

	rec := &recordingAnalysisHooks{}
	SetAnalysisHooks(rec)

	ctx := context.Background()
	Analysis().OnDecomposeStart(ctx, 14)
	Analysis().OnSpreadComplete(ctx, 2, 10, time.Second, nil)
	// Embedded no-op handles the rest without recording.
	Analysis().OnRankStart(ctx, 3)

	if rec.decomposeStarts != 1 {
		t.Errorf("decomposeStarts = %d, want 1", rec.decomposeStarts)
	}
	if rec.spreadCompletes != 1 {
		t.Errorf("spreadCompletes = %d, want 1", rec.spreadCompletes)
	}
}

func TestSetCacheHooks(t *testing.T) {
	defer Reset()

	rec := &recordingCacheHooks{}
	SetCacheHooks(rec)
	Cache().OnCacheHit(context.Background(), "community")

	if rec.hits != 1 {
		t.Errorf("hits = %d, want 1", rec.hits)
	}
}

func TestSetNilHooksIgnored(t *testing.T) {
	defer Reset()

	SetAnalysisHooks(nil)
	SetCacheHooks(nil)

	// Defaults survive nil registration.
	if _, ok := Analysis().(NoopAnalysisHooks); !ok {
		t.Error("nil registration should keep the no-op analysis hooks")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("nil registration should keep the no-op cache hooks")
	}
}

func TestReset(t *testing.T) {
	SetAnalysisHooks(&recordingAnalysisHooks{})
	Reset()

	if _, ok := Analysis().(NoopAnalysisHooks); !ok {
		t.Error("Reset should restore no-op analysis hooks")
	}
}
