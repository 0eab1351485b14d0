package analysis

import "strings"

// HookRulesVersion identifies the rule table below. Bump it whenever a rule
// is added, removed or moved: reordering changes classification output.
const HookRulesVersion = "2024.3"

// FallbackHookTag is assigned when no rule matches.
const FallbackHookTag = "Other"

// Hook tags.
const (
	HookSecret     = "Secret/Reveal"
	HookShock      = "Shock"
	HookQuestion   = "Question"
	HookHowTo      = "How-to"
	HookListicle   = "Listicle"
	HookChallenge  = "Challenge"
	HookComparison = "Comparison"
	HookReaction   = "Reaction"
	HookStory      = "Story"
)

// HookRule tags a title when its keyword occurs anywhere in the cleaned title.
type HookRule struct {
	Keyword string
	Tag     string
}

// Matches reports whether the rule applies to an already cleaned title.
// The title is padded with a space on each side, so a keyword written as
// " top " matches the whole token anywhere, including the first and last one.
func (r HookRule) Matches(cleaned string) bool {
	return strings.Contains(" "+cleaned+" ", r.Keyword)
}

// hookRules is evaluated top to bottom and the first match wins.
// Keywords are written in cleaned form (lower case, no punctuation).
var hookRules = []HookRule{
	{Keyword: "bí mật", Tag: HookSecret},
	{Keyword: "sự thật", Tag: HookSecret},
	{Keyword: "secret", Tag: HookSecret},
	{Keyword: "sốc", Tag: HookShock},
	{Keyword: "bất ngờ", Tag: HookShock},
	{Keyword: "shocking", Tag: HookShock},
	{Keyword: "tại sao", Tag: HookQuestion},
	{Keyword: "vì sao", Tag: HookQuestion},
	{Keyword: "là gì", Tag: HookQuestion},
	{Keyword: "why", Tag: HookQuestion},
	{Keyword: "hướng dẫn", Tag: HookHowTo},
	{Keyword: "cách", Tag: HookHowTo},
	{Keyword: "how to", Tag: HookHowTo},
	{Keyword: " top ", Tag: HookListicle},
	{Keyword: "thử thách", Tag: HookChallenge},
	{Keyword: "challenge", Tag: HookChallenge},
	{Keyword: "so sánh", Tag: HookComparison},
	{Keyword: " vs ", Tag: HookComparison},
	{Keyword: "phản ứng", Tag: HookReaction},
	{Keyword: "reaction", Tag: HookReaction},
	{Keyword: "câu chuyện", Tag: HookStory},
	{Keyword: "story", Tag: HookStory},
}

// HookRules returns a copy of the ordered rule table.
func HookRules() []HookRule {
	out := make([]HookRule, len(hookRules))
	copy(out, hookRules)
	return out
}

// ClassifyHook cleans a raw title and returns the tag of the first matching rule.
func ClassifyHook(title string) string {
	return classifyWith(hookRules, CleanTitle(title))
}

func classifyWith(rules []HookRule, cleaned string) string {
	for _, r := range rules {
		if r.Matches(cleaned) {
			return r.Tag
		}
	}
	return FallbackHookTag
}
