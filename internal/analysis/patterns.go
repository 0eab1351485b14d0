package analysis

import (
	"cmp"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/hszk-dev/tubepulse/internal/domain/model"
)

const (
	// MinNGram and MaxNGram bound the phrase length in tokens.
	MinNGram = 2
	MaxNGram = 4

	// PatternLimit caps every mined pattern list.
	PatternLimit = 50

	// DisplayPatternLimit is the presentation cap for global patterns.
	DisplayPatternLimit = 40

	minTokenRunes = 2
)

// stopwords holds Vietnamese function words plus generic title boilerplate.
var stopwords = map[string]struct{}{
	"và": {}, "của": {}, "là": {}, "có": {}, "cho": {}, "với": {}, "những": {},
	"các": {}, "một": {}, "này": {}, "đã": {}, "được": {}, "không": {}, "thì": {},
	"mà": {}, "để": {}, "trong": {}, "khi": {}, "từ": {}, "ra": {}, "vào": {},
	"lại": {}, "cũng": {}, "như": {}, "rất": {}, "nhưng": {}, "hay": {}, "bị": {},
	"sẽ": {}, "đó": {}, "nào": {}, "gì": {}, "ở": {}, "về": {}, "theo": {},
	"tại": {}, "vì": {}, "nên": {}, "thế": {}, "ai": {}, "đi": {}, "nhé": {},
	"ơi": {}, "luôn": {}, "còn": {}, "thật": {}, "quá": {},

	"review": {}, "full": {}, "tập": {}, "phần": {}, "video": {}, "official": {},
	"mv": {}, "trailer": {}, "vietsub": {}, "hd": {}, "4k": {}, "shorts": {},
	"short": {}, "clip": {}, "live": {}, "ep": {}, "part": {}, "tv": {},
}

// IsStopword reports whether a cleaned token is ignored by the pattern miner.
func IsStopword(token string) bool {
	_, ok := stopwords[token]
	return ok
}

// tokenize splits a cleaned title and drops tokens shorter than two runes.
// Stopwords stay in place so that n-gram windows keep their original positions.
func tokenize(cleaned string) []string {
	fields := strings.Fields(cleaned)
	tokens := fields[:0]
	for _, f := range fields {
		if utf8.RuneCountInString(f) < minTokenRunes {
			continue
		}
		tokens = append(tokens, f)
	}
	return tokens
}

// MinePatterns counts contiguous n-grams of nMin..nMax tokens across titles and
// returns the limit most frequent ones.
//
// Short tokens are removed before windowing. Stopwords are not: any window
// that contains a stopword is rejected as a whole, so a phrase never bridges
// across a function word. Counts for different lengths are independent.
// Equal counts keep the order in which the phrase was first seen.
func MinePatterns(titles []string, nMin, nMax, limit int) []model.PatternEntry {
	if nMin < 1 {
		nMin = 1
	}
	if nMax < nMin || limit <= 0 {
		return []model.PatternEntry{}
	}

	counts := make(map[string]int)
	var order []string

	for _, title := range titles {
		tokens := tokenize(CleanTitle(title))
		for n := nMin; n <= nMax; n++ {
			for i := 0; i+n <= len(tokens); i++ {
				window := tokens[i : i+n]
				if slices.ContainsFunc(window, IsStopword) {
					continue
				}
				phrase := strings.Join(window, " ")
				if _, seen := counts[phrase]; !seen {
					order = append(order, phrase)
				}
				counts[phrase]++
			}
		}
	}

	entries := make([]model.PatternEntry, 0, len(order))
	for _, phrase := range order {
		entries = append(entries, model.PatternEntry{Phrase: phrase, Count: counts[phrase]})
	}
	slices.SortStableFunc(entries, func(a, b model.PatternEntry) int {
		return cmp.Compare(b.Count, a.Count)
	})

	if len(entries) > limit {
		entries = entries[:limit]
	}
	return entries
}

// TitlePatterns mines the default 2..4 token phrases from a record set.
func TitlePatterns(records []model.VideoRecord) []model.PatternEntry {
	titles := make([]string, len(records))
	for i, r := range records {
		titles[i] = r.Title
	}
	return MinePatterns(titles, MinNGram, MaxNGram, PatternLimit)
}
