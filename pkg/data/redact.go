package data

import "regexp"

// Redaction patterns are applied before command text leaves the process,
// either towards the model backend or into the history store. The
// replacement tokens never match any pattern, which makes Redact idempotent.
var redactions = []struct {
	re          *regexp.Regexp
	replacement string
}{
	{regexp.MustCompile(`[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}`), "[email]"},
	{regexp.MustCompile(`\b(?:\d[ \-]?){13,19}\b`), "[card]"},
	{regexp.MustCompile(`\+?\d[\d \-]{7,14}\d`), "[phone]"},
}

// Redact replaces personally identifying fragments with fixed placeholders.
func Redact(s string) string {
	for _, r := range redactions {
		s = r.re.ReplaceAllString(s, r.replacement)
	}
	return s
}
