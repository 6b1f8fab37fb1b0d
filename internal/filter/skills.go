package filter

import "strings"

// DefaultMinSkills is how many distinct keywords a description must
// mention before a skill-gated family accepts it.
const DefaultMinSkills = 2

// SkillMatcher gates postings on domain keyword mentions. Matching is a
// case-insensitive substring test, not word-boundary aware.
type SkillMatcher struct {
	keywords   []string
	minMatches int
}

// NewSkillMatcher lowercases the keyword list once up front. A
// non-positive minMatches falls back to DefaultMinSkills.
func NewSkillMatcher(keywords []string, minMatches int) *SkillMatcher {
	if minMatches <= 0 {
		minMatches = DefaultMinSkills
	}
	lowered := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		kw = strings.TrimSpace(strings.ToLower(kw))
		if kw == "" {
			continue
		}
		lowered = append(lowered, kw)
	}
	return &SkillMatcher{keywords: lowered, minMatches: minMatches}
}

// Match counts the distinct keywords present in text and reports whether
// the count meets the threshold. Empty text never matches.
func (m *SkillMatcher) Match(text string) bool {
	if text == "" {
		return false
	}
	text = strings.ToLower(text)
	count := 0
	for _, kw := range m.keywords {
		if strings.Contains(text, kw) {
			count++
			if count >= m.minMatches {
				return true
			}
		}
	}
	return false
}
