package model

import (
	"fmt"
	"time"
)

// RawVideo is one video item as delivered by the upstream provider, before
// any metric is derived. Counters the provider omitted are zero.
type RawVideo struct {
	ID           string
	ChannelID    string
	ChannelTitle string
	Title        string
	PublishedAt  time.Time
	Duration     string
	Views        int64
	Likes        int64
	Comments     int64
}

// VideoRecord is the analysed form of a RawVideo.
// AgeDays is at least 1; ViewsPerDay and Velocity are derived from the counters.
type VideoRecord struct {
	ChannelID    string    `json:"channelId"`
	ChannelTitle string    `json:"channelTitle"`
	VideoID      string    `json:"videoId"`
	Title        string    `json:"title"`
	PublishedAt  time.Time `json:"publishedAt"`
	DurationSec  int64     `json:"durationSec"`
	Views        int64     `json:"views"`
	Likes        int64     `json:"likes"`
	Comments     int64     `json:"comments"`
	AgeDays      int64     `json:"ageDays"`
	ViewsPerDay  int64     `json:"viewsPerDay"`
	Velocity     int64     `json:"velocity"`
	HookTag      string    `json:"hookTag"`
	URL          string    `json:"url"`
}

// WatchURL returns the public watch page of a video.
func WatchURL(videoID string) string {
	return fmt.Sprintf("https://www.youtube.com/watch?v=%s", videoID)
}
