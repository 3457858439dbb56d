package vectorindex

import (
	"context"
	"sync"
	"testing"
)

func TestBruteForceIndex_AddAndSearch(t *testing.T) {
	idx := NewBruteForceIndex()
	ctx := context.Background()

	_ = idx.Add(ctx, "inc1", []float32{1, 0, 0})
	_ = idx.Add(ctx, "inc2", []float32{0, 1, 0})
	_ = idx.Add(ctx, "inc3", []float32{0, 0, 1})

	results, err := idx.Search(ctx, []float32{1, 0, 0}, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	// inc1 should be first (exact match, score=1.0)
	if results[0].IncidentID != "inc1" {
		t.Errorf("expected inc1 first, got %s", results[0].IncidentID)
	}
	if results[0].Score < 0.99 {
		t.Errorf("expected score ~1.0 for exact match, got %f", results[0].Score)
	}
	// inc2 and inc3 are orthogonal to the query
	if results[1].Score > 0.01 {
		t.Errorf("expected score ~0.0 for orthogonal, got %f", results[1].Score)
	}
}

func TestBruteForceIndex_ReplaceExisting(t *testing.T) {
	idx := NewBruteForceIndex()
	ctx := context.Background()

	_ = idx.Add(ctx, "inc1", []float32{1, 0, 0})
	_ = idx.Add(ctx, "inc1", []float32{0, 1, 0}) // replace

	if idx.Len() != 1 {
		t.Errorf("expected Len()=1 after replace, got %d", idx.Len())
	}

	results, _ := idx.Search(ctx, []float32{0, 1, 0}, 1)
	if len(results) != 1 || results[0].IncidentID != "inc1" {
		t.Fatalf("expected inc1 result")
	}
	if results[0].Score < 0.99 {
		t.Errorf("expected score ~1.0 for replaced vector, got %f", results[0].Score)
	}
}

func TestBruteForceIndex_Remove(t *testing.T) {
	idx := NewBruteForceIndex()
	ctx := context.Background()

	_ = idx.Add(ctx, "inc1", []float32{1, 0, 0})
	_ = idx.Add(ctx, "inc2", []float32{0, 1, 0})
	_ = idx.Add(ctx, "inc3", []float32{0, 0, 1})

	_ = idx.Remove(ctx, "inc2")

	if idx.Len() != 2 {
		t.Errorf("expected Len()=2 after remove, got %d", idx.Len())
	}

	results, _ := idx.Search(ctx, []float32{0, 1, 0}, 3)
	for _, r := range results {
		if r.IncidentID == "inc2" {
			t.Error("removed inc2 should not appear in results")
		}
	}
}

func TestBruteForceIndex_RemoveNonexistent(t *testing.T) {
	idx := NewBruteForceIndex()
	err := idx.Remove(context.Background(), "nonexistent")
	if err != nil {
		t.Errorf("expected nil error for removing nonexistent, got %v", err)
	}
}

func TestBruteForceIndex_SearchEmpty(t *testing.T) {
	idx := NewBruteForceIndex()
	results, err := idx.Search(context.Background(), []float32{1, 0}, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("expected empty results, got %d", len(results))
	}
}

func TestBruteForceIndex_SearchTopKExceedsLen(t *testing.T) {
	idx := NewBruteForceIndex()
	ctx := context.Background()

	_ = idx.Add(ctx, "inc1", []float32{1, 0})
	_ = idx.Add(ctx, "inc2", []float32{0, 1})

	results, _ := idx.Search(ctx, []float32{1, 0}, 10)
	if len(results) != 2 {
		t.Errorf("expected 2 results when topK > len, got %d", len(results))
	}
}

func TestBruteForceIndex_SearchTopKZero(t *testing.T) {
	idx := NewBruteForceIndex()
	ctx := context.Background()

	_ = idx.Add(ctx, "inc1", []float32{1, 0})

	results, err := idx.Search(ctx, []float32{1, 0}, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("expected empty results for topK=0, got %d", len(results))
	}
}

func TestBruteForceIndex_ConcurrentAccess(t *testing.T) {
	idx := NewBruteForceIndex()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			id := string(rune('a' + n))
			vec := []float32{float32(n), float32(n + 1), float32(n + 2)}
			_ = idx.Add(ctx, id, vec)
			_, _ = idx.Search(ctx, vec, 3)
			_ = idx.Remove(ctx, id)
		}(i)
	}
	wg.Wait()
}

func TestBruteForceIndex_Ordering(t *testing.T) {
	idx := NewBruteForceIndex()
	ctx := context.Background()

	_ = idx.Add(ctx, "inc1", []float32{1, 0, 0})
	_ = idx.Add(ctx, "inc2", []float32{0.9, 0.1, 0})
	_ = idx.Add(ctx, "inc3", []float32{0, 0, 1})

	results, _ := idx.Search(ctx, []float32{1, 0, 0}, 3)

	// Expected order: inc1 (exact match), inc2 (close), inc3 (orthogonal)
	expected := []string{"inc1", "inc2", "inc3"}
	for i, r := range results {
		if r.IncidentID != expected[i] {
			t.Errorf("position %d: expected %s, got %s", i, expected[i], r.IncidentID)
		}
	}
}
