package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"unicode/utf8"

	"github.com/dustin/go-humanize"

	"github.com/hszk-dev/tubepulse/internal/domain/model"
	"github.com/hszk-dev/tubepulse/internal/export"
)

const (
	tableTopVideos = 10
	maxTitleRunes  = 60
)

type renderOptions struct {
	patterns int
}

type renderFunc func(w io.Writer, report *model.Report, opts renderOptions) error

var renderers = map[string]renderFunc{
	"table": renderTable,
	"json":  renderJSON,
	"csv":   renderCSV,
}

func renderJSON(w io.Writer, report *model.Report, _ renderOptions) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(report)
}

func renderCSV(w io.Writer, report *model.Report, _ renderOptions) error {
	return export.WriteCSV(w, report.Rows)
}

func renderTable(w io.Writer, report *model.Report, opts renderOptions) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	fmt.Fprintf(tw, "Window: last %d days, up to %d uploads per channel\n\n", report.Days, report.MaxVideos)

	fmt.Fprintln(tw, "CHANNEL SUMMARY")
	fmt.Fprintln(tw, "#\tCHANNEL\tVIDEOS\tAVG LEN\tAVG VIEWS/DAY\tAVG VELOCITY\tTOP HOOKS")
	for i, s := range report.ChannelSummary {
		fmt.Fprintf(tw, "%d\t%s\t%d\t%s\t%s\t%s\t%s\n",
			i+1,
			s.ChannelTitle,
			s.VideosInWindow,
			formatDuration(s.AvgDurationSec),
			humanize.Comma(s.AvgViewsPerDay),
			humanize.Comma(s.AvgVelocity),
			formatHookMix(s.HookMix, 3),
		)
	}

	fmt.Fprintf(tw, "\nTOP %d BY VELOCITY\n", tableTopVideos)
	fmt.Fprintln(tw, "#\tCHANNEL\tTITLE\tAGE\tVIEWS\tVIEWS/DAY\tVELOCITY\tHOOK")
	for i, v := range report.GlobalTopByVelocity {
		if i == tableTopVideos {
			break
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%dd\t%s\t%s\t%s\t%s\n",
			i+1,
			v.ChannelTitle,
			truncate(v.Title, maxTitleRunes),
			v.AgeDays,
			humanize.Comma(v.Views),
			humanize.Comma(v.ViewsPerDay),
			humanize.Comma(v.Velocity),
			v.HookTag,
		)
	}

	patterns := report.GlobalPatterns
	if opts.patterns >= 0 && len(patterns) > opts.patterns {
		patterns = patterns[:opts.patterns]
	}
	fmt.Fprintln(tw, "\nTITLE PATTERNS")
	fmt.Fprintln(tw, "PHRASE\tCOUNT")
	for _, p := range patterns {
		fmt.Fprintf(tw, "%s\t%d\n", p.Phrase, p.Count)
	}

	return tw.Flush()
}

func formatHookMix(mix []model.HookMixEntry, n int) string {
	parts := make([]string, 0, n)
	for i, h := range mix {
		if i == n {
			break
		}
		parts = append(parts, fmt.Sprintf("%s (%d)", h.Tag, h.Count))
	}
	return strings.Join(parts, ", ")
}

func formatDuration(sec int64) string {
	if sec >= 3600 {
		return fmt.Sprintf("%d:%02d:%02d", sec/3600, sec%3600/60, sec%60)
	}
	return fmt.Sprintf("%d:%02d", sec/60, sec%60)
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n-1]) + "…"
}
