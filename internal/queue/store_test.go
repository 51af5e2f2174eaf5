package queue_test

import (
	"context"
	"testing"

	"podmill/internal/episode"
	"podmill/internal/queue"
	"podmill/internal/testsupport"
)

func openStore(t *testing.T) *queue.Store {
	t.Helper()
	store, err := queue.Open(testsupport.NewConfig(t))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestNewItemStartsPending(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	item, err := store.NewItem(ctx, "/prompts/topic.mp3", "topic")
	if err != nil {
		t.Fatalf("NewItem: %v", err)
	}
	if item.ID == 0 {
		t.Error("item should receive an id")
	}
	if item.Status != episode.StagePending {
		t.Errorf("status: %q", item.Status)
	}
	if item.PromptPath != "/prompts/topic.mp3" || item.EpisodeName != "topic" {
		t.Errorf("item fields: %+v", item)
	}
	if item.CreatedAt.IsZero() || item.UpdatedAt.IsZero() {
		t.Errorf("timestamps: %+v", item)
	}
}

func TestStageTransitions(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	item, err := store.NewItem(ctx, "/prompts/a.mp3", "a")
	if err != nil {
		t.Fatalf("NewItem: %v", err)
	}

	for _, stage := range []episode.Stage{
		episode.StageDraftingScript,
		episode.StageSynthesizing,
		episode.StagePersisting,
	} {
		if err := store.SetStage(ctx, item.ID, stage); err != nil {
			t.Fatalf("SetStage(%s): %v", stage, err)
		}
		got, err := store.GetByID(ctx, item.ID)
		if err != nil {
			t.Fatalf("GetByID: %v", err)
		}
		if got.Status != stage {
			t.Errorf("status: %q want %q", got.Status, stage)
		}
	}
}

func TestMarkCompletedClearsError(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	item, _ := store.NewItem(ctx, "/prompts/a.mp3", "a")
	if err := store.MarkFailed(ctx, item.ID, "tts down"); err != nil {
		t.Fatalf("MarkFailed: %v", err)
	}
	if err := store.MarkCompleted(ctx, item.ID, "/episodes/a/a.mp3", 12); err != nil {
		t.Fatalf("MarkCompleted: %v", err)
	}

	got, err := store.GetByID(ctx, item.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Status != episode.StageCompleted {
		t.Errorf("status: %q", got.Status)
	}
	if got.ErrorMessage != "" {
		t.Errorf("error message should clear: %q", got.ErrorMessage)
	}
	if got.FinalFile != "/episodes/a/a.mp3" || got.SegmentCount != 12 {
		t.Errorf("completion fields: %+v", got)
	}
}

func TestMarkFailed(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	item, _ := store.NewItem(ctx, "/prompts/a.mp3", "a")
	if err := store.MarkFailed(ctx, item.ID, "kokoro unreachable"); err != nil {
		t.Fatalf("MarkFailed: %v", err)
	}
	got, _ := store.GetByID(ctx, item.ID)
	if got.Status != episode.StageFailed || got.ErrorMessage != "kokoro unreachable" {
		t.Errorf("failed item: %+v", got)
	}
}

func TestGetByIDMissing(t *testing.T) {
	store := openStore(t)
	item, err := store.GetByID(context.Background(), 999)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if item != nil {
		t.Errorf("expected nil for missing id, got %+v", item)
	}
}

func TestListAndClear(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	for _, name := range []string{"a", "b", "c"} {
		if _, err := store.NewItem(ctx, "/prompts/"+name+".mp3", name); err != nil {
			t.Fatalf("NewItem(%s): %v", name, err)
		}
	}

	items, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("list size: %d", len(items))
	}

	removed, err := store.Clear(ctx)
	if err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if removed != 3 {
		t.Errorf("removed: %d", removed)
	}
	items, err = store.List(ctx)
	if err != nil {
		t.Fatalf("List after clear: %v", err)
	}
	if len(items) != 0 {
		t.Errorf("items after clear: %d", len(items))
	}
}

func TestSummarize(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	pending, _ := store.NewItem(ctx, "/prompts/p.mp3", "p")
	_ = pending
	working, _ := store.NewItem(ctx, "/prompts/w.mp3", "w")
	_ = store.SetStage(ctx, working.ID, episode.StageSynthesizing)
	done, _ := store.NewItem(ctx, "/prompts/d.mp3", "d")
	_ = store.MarkCompleted(ctx, done.ID, "/episodes/d/d.mp3", 4)
	failed, _ := store.NewItem(ctx, "/prompts/f.mp3", "f")
	_ = store.MarkFailed(ctx, failed.ID, "boom")

	summary, err := store.Summarize(ctx)
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}
	want := queue.HealthSummary{Total: 4, Pending: 1, Processing: 1, Failed: 1, Completed: 1}
	if summary != want {
		t.Errorf("summary: %+v want %+v", summary, want)
	}
}

func TestHealth(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()
	_, _ = store.NewItem(ctx, "/prompts/a.mp3", "a")

	health := store.Health(ctx)
	if !health.DatabaseExists || !health.DatabaseReadable {
		t.Errorf("health: %+v", health)
	}
	if health.SchemaVersion != "1" {
		t.Errorf("schema version: %q", health.SchemaVersion)
	}
	if health.TotalItems != 1 {
		t.Errorf("total items: %d", health.TotalItems)
	}
}
