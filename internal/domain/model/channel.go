package model

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// RefKind tells how a channel reference identifies its channel.
type RefKind string

const (
	RefKindID     RefKind = "id"
	RefKindHandle RefKind = "handle"
)

func (k RefKind) String() string {
	return string(k)
}

// ChannelRef is the resolved identity of a requested channel.
// It is one component of the bundle cache key.
type ChannelRef struct {
	Kind  RefKind
	Value string
}

var ErrEmptyChannelInput = errors.New("channel input cannot be empty")

var (
	channelIDPattern   = regexp.MustCompile(`^UC[0-9A-Za-z_-]{22}$`)
	channelPathPattern = regexp.MustCompile(`/channel/(UC[0-9A-Za-z_-]{22})`)
	handleInURLPattern = regexp.MustCompile(`@([\p{L}\p{N}._-]+)`)
)

// ParseChannelInput turns one request input into a ChannelRef.
//
// Accepted forms, checked in order:
//   - a bare channel ID ("UC" followed by 22 ID characters)
//   - a URL with a /channel/<id> path
//   - a handle starting with "@"
//   - a URL containing "@handle"
//   - any other string, treated as a handle
//
// Handles are lower-cased so equal handles share a cache key.
func ParseChannelInput(input string) (ChannelRef, error) {
	s := strings.TrimSpace(input)
	if s == "" {
		return ChannelRef{}, ErrEmptyChannelInput
	}

	if channelIDPattern.MatchString(s) {
		return ChannelRef{Kind: RefKindID, Value: s}, nil
	}
	if m := channelPathPattern.FindStringSubmatch(s); m != nil {
		return ChannelRef{Kind: RefKindID, Value: m[1]}, nil
	}
	if strings.HasPrefix(s, "@") {
		h := strings.TrimPrefix(s, "@")
		if h == "" {
			return ChannelRef{}, ErrEmptyChannelInput
		}
		return ChannelRef{Kind: RefKindHandle, Value: strings.ToLower(h)}, nil
	}
	if m := handleInURLPattern.FindStringSubmatch(s); m != nil {
		return ChannelRef{Kind: RefKindHandle, Value: strings.ToLower(m[1])}, nil
	}
	return ChannelRef{Kind: RefKindHandle, Value: strings.ToLower(s)}, nil
}

// String renders the reference the way the provider expects it.
func (r ChannelRef) String() string {
	if r.Kind == RefKindHandle {
		return "@" + r.Value
	}
	return r.Value
}

// CacheKey serializes the reference together with the request window and
// item limit. Equal inputs always produce the same key.
func (r ChannelRef) CacheKey(windowDays, maxItems int) string {
	return fmt.Sprintf("%s:%s|d%d|n%d", r.Kind, r.Value, windowDays, maxItems)
}

// ChannelRecord holds channel-level metadata returned by the provider.
type ChannelRecord struct {
	ChannelID       string `json:"channelId"`
	Title           string `json:"title"`
	UploadsSourceID string `json:"uploadsSourceId"`
	Subscribers     int64  `json:"subscribers"`
	TotalViews      int64  `json:"totalViews"`
	VideoCount      int64  `json:"videoCount"`
}
