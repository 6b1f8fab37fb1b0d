package filter

import (
	"fmt"

	"jobscout/internal/jobs"
)

// Window is the operator-configured acceptable years-of-experience range.
type Window struct {
	Min int
	Max int
}

// Admit reports whether a posting with the extracted requirement belongs
// in the result set. A nil requirement always passes: missing data does
// not disqualify a posting.
func (w Window) Admit(req *jobs.Experience) bool {
	if req == nil {
		return true
	}
	return !(req.Max < w.Min || req.Min > w.Max)
}

// AdmitText extracts a requirement from free text and applies Admit.
func (w Window) AdmitText(text string) bool {
	return w.Admit(ExtractExperience(text))
}

// String renders the window the way it appears in CSV rows and
// notification bodies, e.g. "3-7 years".
func (w Window) String() string {
	return fmt.Sprintf("%d-%d years", w.Min, w.Max)
}
