package model

import "time"

// HookMixEntry counts how often a hook tag occurs in one channel's videos.
type HookMixEntry struct {
	Tag   string `json:"tag"`
	Count int    `json:"count"`
}

// PatternEntry is a title n-gram and the number of times it occurred.
type PatternEntry struct {
	Phrase string `json:"phrase"`
	Count  int    `json:"count"`
}

// ChannelSummary aggregates one channel's in-window videos.
// It is always recomputed from the full record set.
type ChannelSummary struct {
	ChannelID      string         `json:"channelId"`
	ChannelTitle   string         `json:"channelTitle"`
	VideosInWindow int            `json:"videosInWindow"`
	AvgDurationSec int64          `json:"avgDurationSec"`
	AvgViewsPerDay int64          `json:"avgViewsPerDay"`
	AvgVelocity    int64          `json:"avgVelocity"`
	HookMix        []HookMixEntry `json:"hookMix"`
}

// Bundle is the cached unit of work for one (channel, window, limit) request.
// A bundle is read-only once built.
type Bundle struct {
	Channel          ChannelRecord  `json:"channel"`
	Videos           []VideoRecord  `json:"videos"`
	Patterns         []PatternEntry `json:"patterns"`
	TopByVelocity    []VideoRecord  `json:"topByVelocity"`
	TopByViewsPerDay []VideoRecord  `json:"topByViewsPerDay"`
	FetchedAt        time.Time      `json:"fetchedAt"`
}

// Report is the full response of a multi-channel analysis.
type Report struct {
	Days                   int              `json:"days"`
	MaxVideos              int              `json:"maxVideos"`
	Channels               []ChannelRecord  `json:"channels"`
	ChannelSummary         []ChannelSummary `json:"channelSummary"`
	GlobalTopByVelocity    []VideoRecord    `json:"globalTopByVelocity"`
	GlobalTopByViewsPerDay []VideoRecord    `json:"globalTopByViewsPerDay"`
	GlobalPatterns         []PatternEntry   `json:"globalPatterns"`
	Rows                   []VideoRecord    `json:"rows"`
}
