package feedback

import (
	"strings"

	"go-deskpilot/internal/vision"
	"go-deskpilot/pkg/models"
)

// Report bundles everything one command run produced, for summarization.
type Report struct {
	Steps       []models.Step
	Actions     []models.Action
	Results     []models.ExecutionResult
	Pair        models.ScreenshotPair
	Diff        vision.DiffResult
	BeforeTexts []models.TextBox
	AfterTexts  []models.TextBox
	Degraded    bool
	ScreenW     int
	ScreenH     int
}

// Synthesize produces the single spoken-language outcome sentence for a
// command, plus the classification tag that drove it. It is a pure function
// of the report: identical inputs always phrase identically.
func Synthesize(rep Report) models.FeedbackSummary {
	failed := false
	for _, r := range rep.Results {
		if !r.Success {
			failed = true
			break
		}
	}

	cls := Classify(rep.Diff, rep.BeforeTexts, rep.AfterTexts, verbs(rep.Steps))

	var parts []string
	if !failed {
		parts = append(parts, actionSentence(rep))
	}
	parts = append(parts, outcomeSentence(rep, cls, failed))
	if rep.Degraded {
		parts = append(parts, "El reconocimiento de pantalla no respondió a tiempo.")
	}

	return models.FeedbackSummary{
		Sentence: strings.Join(parts, " "),
		Tag:      cls.Tag,
	}
}

// actionSentence applies the derivation priority: executed actions first,
// then step keywords, then the generic phrase.
func actionSentence(rep Report) string {
	phrases := ActionPhrases(rep.Actions, rep.BeforeTexts, rep.ScreenW, rep.ScreenH)
	if len(phrases) == 0 {
		phrases = StepPhrases(rep.Steps)
	}
	return JoinPhrases(phrases)
}

func outcomeSentence(rep Report, cls Classification, failed bool) string {
	if !rep.Pair.Complete() {
		if failed {
			return "La acción reportó fallo y no tengo capturas para comparar."
		}
		return "Se ejecutó, pero no tengo capturas para comparar."
	}

	if failed {
		if cls.Tag != models.ChangeNone {
			return "La acción reportó fallo, pero veo cambios en pantalla."
		}
		return "La acción reportó fallo y no veo cambios en pantalla."
	}

	switch cls.Tag {
	case models.ChangeModal:
		return "Parece que apareció un diálogo con " + joinSpanish(cls.CTA) + "."
	case models.ChangeScroll:
		if cls.Scrolled {
			return "Se ejecutó y la página se desplazó."
		}
		return "Se ejecutó y cambió gran parte del contenido."
	case models.ChangeNavigation:
		return "Se ejecutó y la pantalla cambió sustancialmente."
	case models.ChangeLocalized:
		s := "Se ejecutó y detecto cambios en pantalla."
		if len(cls.NewTexts) > 0 {
			s += " Ahora se ve «" + cls.NewTexts[0] + "»."
		}
		return s
	default:
		return "Se ejecutó, pero no detecto cambios en pantalla."
	}
}

func joinSpanish(items []string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	default:
		return strings.Join(items[:len(items)-1], ", ") + " y " + items[len(items)-1]
	}
}

func verbs(steps []models.Step) []models.VerbKind {
	out := make([]models.VerbKind, len(steps))
	for i, s := range steps {
		out[i] = s.Verb
	}
	return out
}
