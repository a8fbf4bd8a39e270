// Package sequence issues collision-free per-day screenshot filenames.
package sequence

import (
	"fmt"
	"time"

	"wbharvest/pkg/collector"
)

// Sequencer maps calendar dates (month, day) to the count of filenames
// already issued for that date. The counter key deliberately omits the
// year: a collection campaign is assumed to span less than a year.
type Sequencer struct {
	counters map[string]int
	loc      *time.Location
}

// NewSequencer creates a sequencer using loc for date derivation
func NewSequencer(loc *time.Location) *Sequencer {
	return &Sequencer{
		counters: make(map[string]int),
		loc:      loc,
	}
}

// Next issues the filename for the next card dated t. Output depends
// only on how many times Next has been called for t's (month, day).
func (s *Sequencer) Next(t time.Time) string {
	t = t.In(s.loc)
	key := fmt.Sprintf("%d-%d", int(t.Month()), t.Day())
	s.counters[key]++
	return fmt.Sprintf("%s-%d.png", key, s.counters[key])
}

// Filenames sequences a card list in order, one filename per card.
// Deterministic: the same ordered card list always yields the same
// filename list.
func Filenames(cards []collector.Card, loc *time.Location) []string {
	seq := NewSequencer(loc)
	names := make([]string, len(cards))
	for i, card := range cards {
		names[i] = seq.Next(card.Post.CreatedAt)
	}
	return names
}
