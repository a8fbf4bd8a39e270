package ui

import (
	"fmt"
	"strings"
)

const (
	progressBar   = "█"
	progressEmpty = "░"
	barWidth      = 30
)

// CaptureProgress renders a single-line progress bar for the capture loop
type CaptureProgress struct {
	total   int
	current int
}

// NewCaptureProgress creates a progress bar for total items
func NewCaptureProgress(total int) *CaptureProgress {
	return &CaptureProgress{total: total}
}

// Tick advances the bar and shows the post being captured
func (p *CaptureProgress) Tick(postID string) {
	p.current++

	filled := 0
	if p.total > 0 {
		filled = p.current * barWidth / p.total
	}
	if filled > barWidth {
		filled = barWidth
	}

	bar := strings.Repeat(progressBar, filled) + strings.Repeat(progressEmpty, barWidth-filled)
	fmt.Printf("\r[%s] %d/%d capturing post %s", bar, p.current, p.total, postID)
}

// Finish clears the in-progress line
func (p *CaptureProgress) Finish() {
	fmt.Print("\r" + strings.Repeat(" ", barWidth+40) + "\r")
}
