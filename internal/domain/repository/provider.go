package repository

import (
	"context"

	"github.com/hszk-dev/tubepulse/internal/domain/model"
)

// MaxVideoBatch is the largest number of video IDs a single FetchVideos call accepts.
const MaxVideoBatch = 50

// ChannelProvider defines the upstream metadata source the analysis pipeline reads from.
// Implementations should be provided by the infrastructure layer (e.g., YouTube Data API).
type ChannelProvider interface {
	// ResolveChannel looks up the channel a reference points to.
	// Returns ErrChannelNotFound if nothing matches and ErrNoUploads if the
	// channel exposes no uploads list.
	ResolveChannel(ctx context.Context, ref model.ChannelRef) (*model.ChannelRecord, error)

	// ListRecentVideoIDs returns up to max video IDs from an uploads list, newest first.
	// Pages are requested one after another; each page token comes from the previous response.
	ListRecentVideoIDs(ctx context.Context, uploadsID string, max int) ([]string, error)

	// FetchVideos returns full metadata for at most MaxVideoBatch IDs.
	// IDs the provider does not know are omitted from the result.
	FetchVideos(ctx context.Context, ids []string) ([]model.RawVideo, error)
}
