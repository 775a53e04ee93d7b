package history

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/randomtoy/arcana-go/internal/domain"
	"github.com/randomtoy/arcana-go/internal/ports"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "history.db"), nil)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func sampleRecord(id string, createdAt time.Time) ports.ReadingRecord {
	return ports.ReadingRecord{
		ID:         id,
		SpreadType: "three_card",
		Result: domain.InfluenceResult{
			ReadingID: id,
			Summary:   "This reading involves The Sun, The Tower, creating a narrative of interacting influences.",
			Cards: []domain.InfluencedCard{
				{
					Position:      "past",
					CardID:        "sun",
					CardName:      "The Sun",
					Orientation:   domain.Upright,
					PolarityScore: 1.2,
					Themes:        map[string]float64{"clarity": 0.7},
					Factors: []domain.InfluenceFactor{
						{
							SourcePosition: "present",
							SourceCardID:   "tower",
							Effect:         -0.75,
							Explain:        "The Tower influences The Sun through adjacency (weight 1.00)",
							Confidence:     domain.ConfidenceHigh,
						},
					},
				},
			},
			Advice:            []string{"Embrace the positive energy of The Sun"},
			FollowUpQuestions: []string{"What does The Sun mean to you in your current situation?"},
		},
		CreatedAt: createdAt,
	}
}

func TestStore_SaveAndGet(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	want := sampleRecord("r1", time.Date(2026, 2, 10, 12, 0, 0, 0, time.UTC))
	if err := store.Save(ctx, want); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := store.Get(ctx, "r1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if diff := cmp.Diff(want.Result, got.Result); diff != "" {
		t.Errorf("result mismatch (-want +got):\n%s", diff)
	}
	if got.SpreadType != want.SpreadType {
		t.Errorf("spread type = %q, want %q", got.SpreadType, want.SpreadType)
	}
}

func TestStore_SaveReplaces(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	rec := sampleRecord("r1", time.Date(2026, 2, 10, 12, 0, 0, 0, time.UTC))
	if err := store.Save(ctx, rec); err != nil {
		t.Fatalf("save: %v", err)
	}
	rec.Result.Summary = "revised"
	if err := store.Save(ctx, rec); err != nil {
		t.Fatalf("save again: %v", err)
	}

	got, err := store.Get(ctx, "r1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Result.Summary != "revised" {
		t.Errorf("summary = %q, want the replaced value", got.Result.Summary)
	}

	list, err := store.List(ctx, 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 {
		t.Errorf("expected 1 record after replace, got %d", len(list))
	}
}

func TestStore_ListNewestFirst(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	base := time.Date(2026, 2, 10, 12, 0, 0, 0, time.UTC)
	for i, id := range []string{"old", "mid", "new"} {
		if err := store.Save(ctx, sampleRecord(id, base.Add(time.Duration(i)*time.Hour))); err != nil {
			t.Fatalf("save %s: %v", id, err)
		}
	}

	list, err := store.List(ctx, 2)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 records, got %d", len(list))
	}
	if list[0].ID != "new" || list[1].ID != "mid" {
		t.Errorf("unexpected order: %s, %s", list[0].ID, list[1].ID)
	}
}

func TestStore_Delete(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	if err := store.Save(ctx, sampleRecord("r1", time.Now().UTC())); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := store.Delete(ctx, "r1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := store.Get(ctx, "r1"); !errors.Is(err, domain.ErrReadingNotFound) {
		t.Errorf("expected ErrReadingNotFound after delete, got %v", err)
	}
	if err := store.Delete(ctx, "r1"); !errors.Is(err, domain.ErrReadingNotFound) {
		t.Errorf("expected ErrReadingNotFound for second delete, got %v", err)
	}
}

func TestStore_GetMissing(t *testing.T) {
	store := openTestStore(t)
	if _, err := store.Get(context.Background(), "ghost"); !errors.Is(err, domain.ErrReadingNotFound) {
		t.Errorf("expected ErrReadingNotFound, got %v", err)
	}
}
