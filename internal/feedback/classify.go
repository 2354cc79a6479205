package feedback

import (
	"sort"
	"strings"

	"go-deskpilot/internal/target"
	"go-deskpilot/internal/vision"
	"go-deskpilot/pkg/models"
)

// ctaWords is the fixed call-to-action vocabulary whose appearance flags a
// modal dialog.
var ctaWords = []string{"aceptar", "cancelar", "permitir", "denegar", "guardar", "continuar", "ok"}

const (
	modalMaxArea    = 0.35
	largeRegionArea = 0.25
	navigationArea  = 0.60
	heavyChurn      = 10
)

// Classification is the typed outcome of the change decision.
type Classification struct {
	Tag models.ChangeTag
	// CTA are the call-to-action words newly on screen, for modal phrasing.
	CTA []string
	// NewTexts are text fragments visible only in the after frame.
	NewTexts []string
	// Scrolled is set for the scroll/large branch when the command actually
	// scrolled, as opposed to a generic large content change.
	Scrolled bool
}

// Classify decides what kind of change the screen underwent. Branches are
// evaluated in a fixed order (modal, scroll/large, navigation, localized) so
// the outcome is deterministic for identical inputs.
func Classify(diff vision.DiffResult, beforeTexts, afterTexts []models.TextBox, verbs []models.VerbKind) Classification {
	if !diff.Defined || diff.Score < vision.ScoreThreshold {
		return Classification{Tag: models.ChangeNone}
	}

	beforeTokens := tokenSet(beforeTexts)
	afterTokens := tokenSet(afterTexts)

	var newTokens []string
	for tok := range afterTokens {
		if _, ok := beforeTokens[tok]; !ok {
			newTokens = append(newTokens, tok)
		}
	}
	goneCount := 0
	for tok := range beforeTokens {
		if _, ok := afterTokens[tok]; !ok {
			goneCount++
		}
	}
	sort.Strings(newTokens)

	var cta []string
	for _, w := range ctaWords {
		for _, tok := range newTokens {
			if tok == w {
				cta = append(cta, w)
				break
			}
		}
	}

	newTexts := newFragments(beforeTexts, afterTexts)
	changed := diff.ChangedArea()

	// 1. Modal: new call-to-action words inside a bounded changed area.
	if len(cta) > 0 && changed < modalMaxArea {
		return Classification{Tag: models.ChangeModal, CTA: cta, NewTexts: newTexts}
	}

	// 2. Scroll / large content change: heavy text churn plus a large region.
	if len(newTokens)+goneCount > heavyChurn && diff.LargestArea() > largeRegionArea {
		scrolled := false
		for _, v := range verbs {
			if v == models.VerbScroll {
				scrolled = true
				break
			}
		}
		return Classification{Tag: models.ChangeScroll, NewTexts: newTexts, Scrolled: scrolled}
	}

	// 3. Navigation: a global change that matched neither of the above.
	if changed > navigationArea {
		return Classification{Tag: models.ChangeNavigation, NewTexts: newTexts}
	}

	// 4. Localized change.
	return Classification{Tag: models.ChangeLocalized, NewTexts: newTexts}
}

func tokenSet(texts []models.TextBox) map[string]struct{} {
	set := make(map[string]struct{})
	for _, t := range texts {
		for _, f := range strings.Fields(target.Fold(t.Text)) {
			f = strings.Trim(f, ".,;:!?¡¿()[]«»\"'")
			if f != "" {
				set[f] = struct{}{}
			}
		}
	}
	return set
}

func newFragments(before, after []models.TextBox) []string {
	seen := make(map[string]struct{})
	for _, t := range before {
		seen[target.Fold(t.Text)] = struct{}{}
	}
	var out []string
	for _, t := range after {
		folded := target.Fold(t.Text)
		if folded == "" {
			continue
		}
		if _, ok := seen[folded]; !ok {
			out = append(out, folded)
			seen[folded] = struct{}{}
		}
	}
	return out
}
