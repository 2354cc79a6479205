package planner

import (
	"regexp"

	"go-deskpilot/pkg/models"
)

// Verb rules are evaluated once, in order; the first match decides the
// category. Key names take precedence over pressing vocabulary so that
// "pulsa Enter" is a key press while "pulsa el botón" is a click.
var verbRules = []struct {
	re   *regexp.Regexp
	verb models.VerbKind
}{
	{regexp.MustCompile(`(?i)\b(arrastra\w*|drag\w*)\b`), models.VerbDrag},
	{regexp.MustCompile(`(?i)\b(scroll|despl[aá]za\w*|rueda)\b`), models.VerbScroll},
	{regexp.MustCompile(`(?i)\b(escrib\w*|teclea\w*|type|write|introduce|rellena)\b`), models.VerbType},
	{regexp.MustCompile(`(?i)\b(enter|intro|tab|escape|esc|suprimir|tecla|f[0-9]{1,2})\b`), models.VerbPress},
	{regexp.MustCompile(`(?i)\b(clic\w*|click\w*|pincha\w*|pulsa\w*|presiona\w*|toca\w*|tap)\b`), models.VerbClick},
}

// ClassifyVerb maps a step description to its verb category.
func ClassifyVerb(description string) models.VerbKind {
	for _, rule := range verbRules {
		if rule.re.MatchString(description) {
			return rule.verb
		}
	}
	return models.VerbUnknown
}
