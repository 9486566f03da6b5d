package candidate

import (
	"time"

	"dfo-news-digest/internal/entity"
	"dfo-news-digest/pkg/common"
	"dfo-news-digest/pkg/utils"

	"github.com/samber/lo"
)

// Window is a half-open [From, To) range over an item's effective time.
type Window struct {
	From time.Time
	To   time.Time
}

// Contains reports whether t falls inside the window.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.From) && t.Before(w.To)
}

// Windows holds the two disjoint selection ranges of one digest day.
type Windows struct {
	Preferred Window
	Backfill  Window
}

// WindowsFor computes the ranges for a digest day, given as midnight in the reference timezone.
// Preferred covers the prefer_days calendar days ending with the digest day.
// Backfill covers the older days down to max_lookback_days, ending where Preferred begins.
func WindowsFor(day time.Time, p entity.DigestParams) Windows {
	preferStart := utils.AddDays(day, -(p.PreferDays - 1))
	lookbackStart := utils.AddDays(day, -(p.MaxLookbackDays - 1))
	next := utils.AddDays(day, 1)

	return Windows{
		Preferred: Window{From: preferStart.UTC(), To: next.UTC()},
		Backfill:  Window{From: lookbackStart.UTC(), To: preferStart.UTC()},
	}
}

// PreferredDays lists the preferred window's day keys, newest first.
func PreferredDays(day time.Time, p entity.DigestParams) []string {
	return lo.Times(p.PreferDays, func(i int) string {
		return utils.AddDays(day, -i).Format(common.DayLayout)
	})
}
