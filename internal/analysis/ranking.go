package analysis

import (
	"cmp"
	"slices"
	"time"

	"github.com/hszk-dev/tubepulse/internal/domain/model"
)

// TopLimit caps every top-N video list.
const TopLimit = 20

// FilterWindow keeps records published strictly after now minus days.
// A record exactly on the cutoff is dropped.
func FilterWindow(records []model.VideoRecord, days int, now time.Time) []model.VideoRecord {
	cutoff := now.Add(-time.Duration(days) * 24 * time.Hour)
	kept := make([]model.VideoRecord, 0, len(records))
	for _, r := range records {
		if r.PublishedAt.After(cutoff) {
			kept = append(kept, r)
		}
	}
	return kept
}

// TopByVelocity returns up to n records ordered by velocity, highest first.
// Equal velocities keep their input order.
func TopByVelocity(records []model.VideoRecord, n int) []model.VideoRecord {
	return topBy(records, n, func(r model.VideoRecord) int64 { return r.Velocity })
}

// TopByViewsPerDay returns up to n records ordered by views per day, highest first.
func TopByViewsPerDay(records []model.VideoRecord, n int) []model.VideoRecord {
	return topBy(records, n, func(r model.VideoRecord) int64 { return r.ViewsPerDay })
}

func topBy(records []model.VideoRecord, n int, key func(model.VideoRecord) int64) []model.VideoRecord {
	sorted := slices.Clone(records)
	if sorted == nil {
		sorted = []model.VideoRecord{}
	}
	slices.SortStableFunc(sorted, func(a, b model.VideoRecord) int {
		return cmp.Compare(key(b), key(a))
	})
	if n >= 0 && len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

// Ranking is the cross-channel view over every in-window record.
type Ranking struct {
	TopByVelocity    []model.VideoRecord
	TopByViewsPerDay []model.VideoRecord
	Patterns         []model.PatternEntry
}

// RankGlobal ranks the concatenation of all channels' records.
func RankGlobal(records []model.VideoRecord) Ranking {
	return Ranking{
		TopByVelocity:    TopByVelocity(records, TopLimit),
		TopByViewsPerDay: TopByViewsPerDay(records, TopLimit),
		Patterns:         TitlePatterns(records),
	}
}
