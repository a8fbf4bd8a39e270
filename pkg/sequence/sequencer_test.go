package sequence

import (
	"testing"
	"time"

	"wbharvest/pkg/collector"
)

func cardOn(t time.Time) collector.Card {
	return collector.Card{Post: collector.Post{CreatedAt: t}}
}

func TestSequencerPerDayOrdinals(t *testing.T) {
	seq := NewSequencer(time.UTC)

	jan2 := time.Date(2024, 1, 2, 10, 0, 0, 0, time.UTC)
	jan3 := time.Date(2024, 1, 3, 8, 0, 0, 0, time.UTC)

	if got := seq.Next(jan2); got != "1-2-1.png" {
		t.Errorf("Expected 1-2-1.png, got %s", got)
	}
	if got := seq.Next(jan2); got != "1-2-2.png" {
		t.Errorf("Expected 1-2-2.png, got %s", got)
	}
	if got := seq.Next(jan3); got != "1-3-1.png" {
		t.Errorf("Expected 1-3-1.png, got %s", got)
	}
	if got := seq.Next(jan2); got != "1-2-3.png" {
		t.Errorf("Expected 1-2-3.png, got %s", got)
	}
}

func TestFilenamesDeterminism(t *testing.T) {
	cards := []collector.Card{
		cardOn(time.Date(2024, 1, 2, 10, 0, 0, 0, time.UTC)),
		cardOn(time.Date(2024, 1, 2, 9, 0, 0, 0, time.UTC)),
		cardOn(time.Date(2024, 1, 1, 23, 0, 0, 0, time.UTC)),
		cardOn(time.Date(2023, 12, 31, 5, 0, 0, 0, time.UTC)),
	}

	first := Filenames(cards, time.UTC)
	second := Filenames(cards, time.UTC)

	if len(first) != len(cards) {
		t.Fatalf("Expected %d filenames, got %d", len(cards), len(first))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("Run mismatch at %d: %s vs %s", i, first[i], second[i])
		}
	}
}

func TestFilenamesUniqueness(t *testing.T) {
	var cards []collector.Card
	base := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 50; i++ {
		// Many posts across a handful of days
		cards = append(cards, cardOn(base.Add(time.Duration(i)*7*time.Hour)))
	}

	names := Filenames(cards, time.UTC)
	seen := make(map[string]bool, len(names))
	for _, name := range names {
		if seen[name] {
			t.Fatalf("Duplicate filename issued: %s", name)
		}
		seen[name] = true
	}
}

func TestSequencerUsesReferenceTimezone(t *testing.T) {
	shanghai := time.FixedZone("CST", 8*60*60)
	seq := NewSequencer(shanghai)

	// Jan 1 23:00 UTC is Jan 2 07:00 in the reference timezone
	got := seq.Next(time.Date(2024, 1, 1, 23, 0, 0, 0, time.UTC))
	if got != "1-2-1.png" {
		t.Errorf("Expected 1-2-1.png, got %s", got)
	}
}
