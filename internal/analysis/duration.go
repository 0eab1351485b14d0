package analysis

import (
	"math"
	"regexp"
	"strconv"
	"time"
)

var durationPattern = regexp.MustCompile(`^PT(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?$`)

// ParseDuration converts a PT#H#M#S duration into seconds. Any of the three
// segments may be absent. Strings that do not match the form yield 0.
func ParseDuration(s string) int64 {
	m := durationPattern.FindStringSubmatch(s)
	if m == nil {
		return 0
	}
	h := atoi(m[1])
	mins := atoi(m[2])
	sec := atoi(m[3])
	return h*3600 + mins*60 + sec
}

func atoi(s string) int64 {
	if s == "" {
		return 0
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0
	}
	return n
}

// AgeDays returns the whole days between publishedAt and now, never less than 1.
// The floor exists only so rate metrics never divide by zero; it carries no
// business meaning.
func AgeDays(publishedAt, now time.Time) int64 {
	days := math.Floor(now.Sub(publishedAt).Hours() / 24)
	if days < 1 {
		return 1
	}
	return int64(days)
}
