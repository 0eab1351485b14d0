package analysis

import (
	"cmp"
	"math"
	"slices"

	"github.com/hszk-dev/tubepulse/internal/domain/model"
)

// HookMixLimit caps the hook distribution reported per channel.
const HookMixLimit = 8

// SummarizeChannel aggregates a channel's window-filtered records.
// An empty record set yields zero averages.
func SummarizeChannel(channel model.ChannelRecord, records []model.VideoRecord) model.ChannelSummary {
	var duration, vpd, velocity int64
	for _, r := range records {
		duration += r.DurationSec
		vpd += r.ViewsPerDay
		velocity += r.Velocity
	}

	return model.ChannelSummary{
		ChannelID:      channel.ChannelID,
		ChannelTitle:   channel.Title,
		VideosInWindow: len(records),
		AvgDurationSec: mean(duration, len(records)),
		AvgViewsPerDay: mean(vpd, len(records)),
		AvgVelocity:    mean(velocity, len(records)),
		HookMix:        HookMix(records, HookMixLimit),
	}
}

func mean(sum int64, n int) int64 {
	return int64(math.Round(float64(sum) / float64(max(n, 1))))
}

// HookMix counts hook tags, most frequent first, ties in first-seen order.
func HookMix(records []model.VideoRecord, limit int) []model.HookMixEntry {
	counts := make(map[string]int)
	var order []string
	for _, r := range records {
		if _, seen := counts[r.HookTag]; !seen {
			order = append(order, r.HookTag)
		}
		counts[r.HookTag]++
	}

	mix := make([]model.HookMixEntry, 0, len(order))
	for _, tag := range order {
		mix = append(mix, model.HookMixEntry{Tag: tag, Count: counts[tag]})
	}
	slices.SortStableFunc(mix, func(a, b model.HookMixEntry) int {
		return cmp.Compare(b.Count, a.Count)
	})
	if len(mix) > limit {
		mix = mix[:limit]
	}
	return mix
}

// RankChannels orders summaries by average velocity, highest first.
// The first entry is the top performing channel.
func RankChannels(summaries []model.ChannelSummary) []model.ChannelSummary {
	ranked := slices.Clone(summaries)
	slices.SortStableFunc(ranked, func(a, b model.ChannelSummary) int {
		return cmp.Compare(b.AvgVelocity, a.AvgVelocity)
	})
	return ranked
}
