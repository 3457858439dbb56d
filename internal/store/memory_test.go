package store

import (
	"context"
	"testing"

	"github.com/nightwatch-ai/nightwatch/internal/models"
)

func TestMemoryStore_UpsertAndQuery(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	incs := []models.Incident{
		{ID: "inc1", Text: "theft", Location: "bus stop", Severity: models.SeverityLow, Vector: []float32{1, 0}},
		{ID: "inc2", Text: "stalking", Location: "park", Severity: models.SeverityMedium, Vector: []float32{0, 1}},
	}
	for _, inc := range incs {
		if err := s.Upsert(ctx, inc); err != nil {
			t.Fatalf("Upsert(%s): %v", inc.ID, err)
		}
	}

	n, err := s.Count(ctx)
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if n != 2 {
		t.Errorf("Count = %d, want 2", n)
	}

	got, err := s.Query(ctx, nil, 10)
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("Query returned %d records, want 2", len(got))
	}
}

func TestMemoryStore_SimilarityOrder(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	_ = s.Upsert(ctx, models.Incident{ID: "far", Vector: []float32{0, 1}})
	_ = s.Upsert(ctx, models.Incident{ID: "near", Vector: []float32{1, 0}})

	got, err := s.Query(ctx, []float32{1, 0}, 2)
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(got) != 2 || got[0].ID != "near" {
		t.Errorf("expected near first, got %v", got)
	}
}

func TestMemoryStore_QueryRespectsLimit(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	for _, id := range []string{"a", "b", "c"} {
		_ = s.Upsert(ctx, models.Incident{ID: id, Vector: []float32{1, 0}})
	}

	got, err := s.Query(ctx, nil, 2)
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("Query returned %d records, want 2", len(got))
	}
}

func TestMemoryStore_RejectsEmptyVector(t *testing.T) {
	s := NewMemoryStore()
	err := s.Upsert(context.Background(), models.Incident{ID: "inc1"})
	if err != ErrEmptyVector {
		t.Errorf("Upsert error = %v, want ErrEmptyVector", err)
	}
}

func TestMemoryStore_UpsertReplaces(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	_ = s.Upsert(ctx, models.Incident{ID: "inc1", Text: "old", Vector: []float32{1, 0}})
	_ = s.Upsert(ctx, models.Incident{ID: "inc1", Text: "new", Vector: []float32{0, 1}})

	n, _ := s.Count(ctx)
	if n != 1 {
		t.Fatalf("Count = %d, want 1 after replace", n)
	}
	got, _ := s.Query(ctx, nil, 1)
	if got[0].Text != "new" {
		t.Errorf("Text = %q, want %q", got[0].Text, "new")
	}
}
