package analysis

import (
	"math"
	"time"

	"github.com/hszk-dev/tubepulse/internal/domain/model"
)

// ViewsPerDay returns views divided by age, rounded to the nearest integer.
// ageDays values below 1 are treated as 1.
func ViewsPerDay(views, ageDays int64) int64 {
	return int64(math.Round(float64(views) / float64(max(ageDays, 1))))
}

// Velocity is the composite buzz score: view pace scaled by log10(likes+10).
// The +10 keeps the factor at 1 or above when a video has no likes and damps
// the effect of like-count outliers.
func Velocity(views, likes, ageDays int64) int64 {
	pace := float64(views) / float64(max(ageDays, 1))
	return int64(math.Round(pace * math.Log10(float64(likes)+10)))
}

// BuildRecord derives a VideoRecord from a raw provider item as of now.
func BuildRecord(raw model.RawVideo, now time.Time) model.VideoRecord {
	age := AgeDays(raw.PublishedAt, now)
	views := max(raw.Views, 0)
	likes := max(raw.Likes, 0)

	return model.VideoRecord{
		ChannelID:    raw.ChannelID,
		ChannelTitle: raw.ChannelTitle,
		VideoID:      raw.ID,
		Title:        raw.Title,
		PublishedAt:  raw.PublishedAt,
		DurationSec:  ParseDuration(raw.Duration),
		Views:        views,
		Likes:        likes,
		Comments:     max(raw.Comments, 0),
		AgeDays:      age,
		ViewsPerDay:  ViewsPerDay(views, age),
		Velocity:     Velocity(views, likes, age),
		HookTag:      ClassifyHook(raw.Title),
		URL:          model.WatchURL(raw.ID),
	}
}
