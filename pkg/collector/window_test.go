package collector

import (
	"testing"
	"time"
)

func testWindow(t *testing.T) Window {
	t.Helper()
	now := time.Date(2024, 1, 20, 12, 0, 0, 0, time.UTC)
	return NewWindow(now, 3, 7, time.UTC)
}

func TestNewWindowBoundaries(t *testing.T) {
	w := testWindow(t)

	wantRecent := time.Date(2024, 1, 17, 12, 0, 0, 0, time.UTC)
	wantCutoff := time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC)

	if !w.Recent.Equal(wantRecent) {
		t.Errorf("Recent = %v, want %v", w.Recent, wantRecent)
	}
	if !w.Cutoff.Equal(wantCutoff) {
		t.Errorf("Cutoff = %v, want %v", w.Cutoff, wantCutoff)
	}
	if !w.Cutoff.Before(w.Recent) {
		t.Error("Expected cutoff boundary before recent boundary")
	}
}

func TestClassify(t *testing.T) {
	w := testWindow(t)

	tests := []struct {
		name        string
		createdAt   time.Time
		isRetweet   bool
		wantInclude bool
		wantCutoff  bool
	}{
		{
			name:        "newer than recent boundary is skipped",
			createdAt:   time.Date(2024, 1, 19, 0, 0, 0, 0, time.UTC),
			wantInclude: false,
			wantCutoff:  false,
		},
		{
			name:        "exactly recent boundary is included",
			createdAt:   w.Recent,
			wantInclude: true,
			wantCutoff:  false,
		},
		{
			name:        "inside window is included",
			createdAt:   time.Date(2024, 1, 14, 9, 0, 0, 0, time.UTC),
			wantInclude: true,
			wantCutoff:  false,
		},
		{
			name:        "retweet inside window is never included",
			createdAt:   time.Date(2024, 1, 14, 9, 0, 0, 0, time.UTC),
			isRetweet:   true,
			wantInclude: false,
			wantCutoff:  false,
		},
		{
			name:        "exactly cutoff boundary signals cutoff and inclusion",
			createdAt:   w.Cutoff,
			wantInclude: true,
			wantCutoff:  true,
		},
		{
			name:        "older than cutoff signals both",
			createdAt:   time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC),
			wantInclude: true,
			wantCutoff:  true,
		},
		{
			name:        "old retweet signals cutoff only",
			createdAt:   time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC),
			isRetweet:   true,
			wantInclude: false,
			wantCutoff:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := w.Classify(Post{CreatedAt: tt.createdAt, IsRetweet: tt.isRetweet})
			if v.Include != tt.wantInclude {
				t.Errorf("Include = %v, want %v", v.Include, tt.wantInclude)
			}
			if v.CutoffReached != tt.wantCutoff {
				t.Errorf("CutoffReached = %v, want %v", v.CutoffReached, tt.wantCutoff)
			}
		})
	}
}

func TestClassifyConvertsTimezone(t *testing.T) {
	w := testWindow(t)

	// Same instant as the recent boundary, expressed in +08:00
	shanghai := time.FixedZone("CST", 8*60*60)
	p := Post{CreatedAt: w.Recent.In(shanghai)}

	v := w.Classify(p)
	if !v.Include {
		t.Error("Expected post at recent boundary to be included regardless of source offset")
	}
}
