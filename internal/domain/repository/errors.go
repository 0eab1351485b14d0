package repository

import "errors"

var (
	// ErrChannelNotFound is returned when a channel reference matches no upstream channel.
	ErrChannelNotFound = errors.New("channel not found")

	// ErrNoUploads is returned when a channel has no retrievable video list.
	ErrNoUploads = errors.New("channel has no uploads list")
)
