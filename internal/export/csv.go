// Package export renders analysis rows as flat delimited text.
package export

import (
	"bufio"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/hszk-dev/tubepulse/internal/domain/model"
)

// Columns is the fixed export column order.
var Columns = []string{
	"channelTitle", "title", "publishedAt", "durationSec", "views", "likes",
	"comments", "ageDays", "viewsPerDay", "velocity", "hookTag", "url",
}

// ContentType is the MIME type of WriteCSV output.
const ContentType = "text/csv; charset=utf-8"

var quoteEscaper = strings.NewReplacer(`"`, `""`)

// WriteCSV writes a header row followed by one line per record. Every value
// is double-quoted and embedded quotes are doubled.
func WriteCSV(w io.Writer, rows []model.VideoRecord) error {
	bw := bufio.NewWriter(w)

	if err := writeLine(bw, Columns); err != nil {
		return err
	}

	fields := make([]string, len(Columns))
	for _, r := range rows {
		fields[0] = r.ChannelTitle
		fields[1] = r.Title
		fields[2] = formatTime(r.PublishedAt)
		fields[3] = strconv.FormatInt(r.DurationSec, 10)
		fields[4] = strconv.FormatInt(r.Views, 10)
		fields[5] = strconv.FormatInt(r.Likes, 10)
		fields[6] = strconv.FormatInt(r.Comments, 10)
		fields[7] = strconv.FormatInt(r.AgeDays, 10)
		fields[8] = strconv.FormatInt(r.ViewsPerDay, 10)
		fields[9] = strconv.FormatInt(r.Velocity, 10)
		fields[10] = r.HookTag
		fields[11] = r.URL
		if err := writeLine(bw, fields); err != nil {
			return err
		}
	}

	return bw.Flush()
}

func writeLine(w *bufio.Writer, fields []string) error {
	for i, f := range fields {
		if i > 0 {
			if err := w.WriteByte(','); err != nil {
				return err
			}
		}
		if _, err := w.WriteString(`"` + quoteEscaper.Replace(f) + `"`); err != nil {
			return err
		}
	}
	return w.WriteByte('\n')
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
