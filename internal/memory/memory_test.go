package memory

import (
	"testing"
	"time"

	"github.com/mohammad-safakhou/dayplan/models"
)

func TestSearchConjunctiveContainment(t *testing.T) {
	idx := NewIndex()
	idx.AddInteraction(ForToday(), "morning plan", "Focus on the report, energy is high", nil)
	idx.AddInteraction(ForToday(), "afternoon", "Energy dipped after lunch", nil)
	idx.AddInteraction(ForToday(), "notes", "Focus lost to meetings", nil)

	got := idx.Search("focus energy", 5)
	if len(got) != 1 {
		t.Fatalf("expected one conjunctive match, got %v", got)
	}
	if got[0] != "Focus on the report, energy is high" {
		t.Fatalf("unexpected match: %q", got[0])
	}
}

func TestSearchCaseInsensitiveSubstring(t *testing.T) {
	idx := NewIndex()
	idx.AddInteraction(ForToday(), "x", "REFACTORING the parser", nil)
	if got := idx.Search("refactor", 5); len(got) != 1 {
		t.Fatalf("substring match should hit, got %v", got)
	}
}

func TestSearchEarlyStopAcrossBuckets(t *testing.T) {
	idx := NewIndex()
	first := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	second := first.AddDate(0, 0, 1)
	idx.AddInteraction(ForDate(first), "q", "alpha one", nil)
	idx.AddInteraction(ForDate(first), "q", "alpha two", nil)
	idx.AddInteraction(ForDate(second), "q", "alpha three", nil)

	got := idx.Search("alpha", 2)
	if len(got) != 2 {
		t.Fatalf("expected limit to cap results, got %v", got)
	}
	if got[0] != "alpha one" || got[1] != "alpha two" {
		t.Fatalf("expected first-bucket matches before later buckets, got %v", got)
	}
}

func TestSearchBucketInsertionOrder(t *testing.T) {
	idx := NewIndex()
	idx.AddInteraction(ForSession("s-late"), "q", "omega late", nil)
	idx.AddInteraction(ForSession("s-early"), "q", "omega early", nil)
	// Another record into the first-created bucket must scan first.
	idx.AddInteraction(ForSession("s-late"), "q", "omega later", nil)

	got := idx.Search("omega", 5)
	want := []string{"omega late", "omega later", "omega early"}
	if len(got) != len(want) {
		t.Fatalf("expected %d matches, got %v", len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("scan order mismatch at %d: got %v want %v", i, got, want)
		}
	}
}

func TestEmptyQueryMatchesEverything(t *testing.T) {
	idx := NewIndex()
	idx.AddInteraction(ForToday(), "a", "one", nil)
	idx.AddInteraction(ForToday(), "b", "two", nil)
	if got := idx.Search("", 1); len(got) != 1 || got[0] != "one" {
		t.Fatalf("empty query should match oldest record first, got %v", got)
	}
}

func TestContextForDateLastFive(t *testing.T) {
	idx := NewIndex()
	day := time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC)
	for _, resp := range []string{"r1", "r2", "r3", "r4", "r5", "r6", "r7"} {
		idx.AddInteraction(ForDate(day), "q", resp, nil)
	}

	ctx := idx.ContextForDate(day)
	if len(ctx.RecentMemories) != 5 {
		t.Fatalf("expected last five memories, got %v", ctx.RecentMemories)
	}
	if ctx.RecentMemories[0] != "r3" || ctx.RecentMemories[4] != "r7" {
		t.Fatalf("expected oldest-of-last-five first, got %v", ctx.RecentMemories)
	}
	if models.DateKey(ctx.Date) != "2026-03-02" {
		t.Fatalf("unexpected context date %v", ctx.Date)
	}
}

func TestContextForUnknownDateIsEmpty(t *testing.T) {
	idx := NewIndex()
	ctx := idx.ContextForDate(time.Now())
	if len(ctx.RecentMemories) != 0 {
		t.Fatalf("expected empty recall, got %v", ctx.RecentMemories)
	}
}

func TestBucketKeyPriority(t *testing.T) {
	idx := NewIndex()
	day := time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC)
	idx.AddInteraction(ForSession("sess-1"), "a", "by session", nil)
	idx.AddInteraction(ForDate(day), "b", "by date", nil)
	idx.AddInteraction(ForToday(), "c", "by today", nil)

	if got := idx.Summary().Buckets; got != 3 {
		t.Fatalf("expected 3 buckets, got %d", got)
	}
	if ctx := idx.ContextForDate(day); len(ctx.RecentMemories) != 1 || ctx.RecentMemories[0] != "by date" {
		t.Fatalf("date bucket mis-keyed: %v", ctx.RecentMemories)
	}
	if ctx := idx.ContextForDate(time.Now()); len(ctx.RecentMemories) != 1 || ctx.RecentMemories[0] != "by today" {
		t.Fatalf("today fallback mis-keyed: %v", ctx.RecentMemories)
	}
}

func TestEmptySessionKeyFallsBackToToday(t *testing.T) {
	idx := NewIndex()
	idx.AddInteraction(ForSession(""), "a", "fallback", nil)
	if ctx := idx.ContextForDate(time.Now()); len(ctx.RecentMemories) != 1 {
		t.Fatalf("empty key must resolve to today's date, got %v", ctx.RecentMemories)
	}
}
