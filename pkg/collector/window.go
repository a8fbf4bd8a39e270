package collector

import "time"

// Window holds the two collection boundaries in the reference timezone.
// Posts newer than Recent are still accumulating engagement and are
// skipped; posts at or before Cutoff terminate the collection.
type Window struct {
	Recent time.Time
	Cutoff time.Time
	loc    *time.Location
}

// NewWindow derives the boundaries from the collection instant:
// Recent = now - recentDays, Cutoff = Recent - accentDays.
func NewWindow(now time.Time, recentDays, accentDays int, loc *time.Location) Window {
	recent := now.In(loc).Add(-time.Duration(recentDays) * 24 * time.Hour)
	cutoff := recent.Add(-time.Duration(accentDays) * 24 * time.Hour)
	return Window{
		Recent: recent,
		Cutoff: cutoff,
		loc:    loc,
	}
}

// Verdict carries the two independent per-post signals. A post can be
// both includable and a cutoff signal; the pagination controller needs
// both to decide accumulation and termination separately.
type Verdict struct {
	Include       bool
	CutoffReached bool
}

// Classify evaluates a post against the window boundaries. Both
// comparisons are inclusive.
func (w Window) Classify(p Post) Verdict {
	t := p.CreatedAt.In(w.loc)

	var v Verdict
	if !t.After(w.Cutoff) {
		v.CutoffReached = true
	}
	if !t.After(w.Recent) && !p.IsRetweet {
		v.Include = true
	}
	return v
}
