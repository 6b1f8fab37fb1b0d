// Package filter holds the experience, window, and skill admission rules
// applied to postings before they reach the merged result set.
package filter

import (
	"regexp"
	"strconv"
	"strings"

	"jobscout/internal/jobs"
)

// openEndedSpan widens single-number requirements ("5+ years") into a
// closed range. The constant is an inherited business rule; do not tune.
const openEndedSpan = 3

// extractRule pairs a pattern with a handler that turns its capture
// groups into a requirement.
type extractRule struct {
	re    *regexp.Regexp
	parse func(groups []string) *jobs.Experience
}

// Rule order is significance order: the explicit two-number pattern must
// run before any single-number heuristic so a stated range is never
// collapsed.
var extractRules = []extractRule{
	{
		re:    regexp.MustCompile(`(\d+)\s*(?:[-–]|to)\s*(\d+)\s*\+?\s*years?`),
		parse: parseRange,
	},
	{
		re:    regexp.MustCompile(`(\d+)\s*\+\s*years?`),
		parse: parseOpenEnded,
	},
	{
		re:    regexp.MustCompile(`(\d+)\s*years?`),
		parse: parseOpenEnded,
	},
	{
		re:    regexp.MustCompile(`minimum\s*(?:of\s*)?(\d+)\s*years?`),
		parse: parseOpenEnded,
	},
	{
		re:    regexp.MustCompile(`at\s*least\s*(\d+)\s*years?`),
		parse: parseOpenEnded,
	},
}

// ExtractExperience scans free text for a stated years-of-experience
// requirement. Rules run in order and the first match wins; nil means no
// requirement was found.
func ExtractExperience(text string) *jobs.Experience {
	if text == "" {
		return nil
	}
	text = strings.ToLower(text)
	for _, rule := range extractRules {
		m := rule.re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		if req := rule.parse(m); req != nil {
			return req
		}
	}
	return nil
}

func parseRange(groups []string) *jobs.Experience {
	lo, err := strconv.Atoi(groups[1])
	if err != nil {
		return nil
	}
	hi, err := strconv.Atoi(groups[2])
	if err != nil {
		return nil
	}
	return &jobs.Experience{Min: lo, Max: hi}
}

func parseOpenEnded(groups []string) *jobs.Experience {
	years, err := strconv.Atoi(groups[1])
	if err != nil {
		return nil
	}
	return &jobs.Experience{Min: years, Max: years + openEndedSpan}
}
