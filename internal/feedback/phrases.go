package feedback

import (
	"regexp"
	"strings"

	"go-deskpilot/internal/target"
	"go-deskpilot/pkg/models"
)

// ActionPhrases derives spoken verb phrases from the executed action list,
// the highest-priority source. Click phrases carry the screen zone and, when
// the click landed inside a recognized text box of the before frame, the
// normalized text as the click's object.
func ActionPhrases(actions []models.Action, beforeTexts []models.TextBox, screenW, screenH int) []string {
	var phrases []string
	for _, a := range actions {
		switch a.Kind {
		case models.ActionClick, models.ActionDoubleClick, models.ActionRightClick:
			phrase := "hecho clic"
			if a.Kind == models.ActionDoubleClick {
				phrase = "hecho doble clic"
			}
			if a.Kind == models.ActionRightClick {
				phrase = "hecho clic derecho"
			}
			if screenW > 0 && screenH > 0 {
				phrase += " en la zona de " + Zone(a.X, a.Y, screenW, screenH)
			}
			if obj := clickObject(a, beforeTexts); obj != "" {
				phrase += " sobre " + obj
			}
			phrases = append(phrases, phrase)
		case models.ActionType:
			phrases = append(phrases, "escrito el texto")
		case models.ActionPress:
			phrases = append(phrases, "pulsado "+keyName(a.Key))
		case models.ActionHotkey:
			phrases = append(phrases, "pulsado el atajo "+strings.Join(append(append([]string{}, a.Modifiers...), a.Key), "+"))
		case models.ActionScroll:
			phrases = append(phrases, "hecho scroll")
		case models.ActionDrag:
			phrases = append(phrases, "arrastrado el elemento")
		case models.ActionMove:
			phrases = append(phrases, "movido el cursor")
		}
	}
	return phrases
}

func clickObject(a models.Action, beforeTexts []models.TextBox) string {
	for _, t := range beforeTexts {
		if t.Box.Contains(a.X, a.Y) {
			return target.Fold(t.Text)
		}
	}
	return ""
}

func keyName(key string) string {
	switch strings.ToLower(key) {
	case "enter":
		return "Enter"
	case "tab":
		return "Tab"
	case "escape":
		return "Escape"
	case "delete":
		return "Suprimir"
	default:
		return "la tecla " + key
	}
}

// Step keyword rules, evaluated in order; used only when no executed actions
// are available. Escape matches as a whole word so that words containing it
// ("escaparate") do not trigger it.
var stepRules = []struct {
	re     *regexp.Regexp
	phrase string
}{
	{regexp.MustCompile(`(?i)\b(clic\w*|click\w*|pincha\w*)\b`), "hecho clic"},
	{regexp.MustCompile(`(?i)\b(escrib\w*|teclea\w*|type|write)\b`), "escrito el texto"},
	{regexp.MustCompile(`(?i)\b(enter|intro)\b`), "pulsado Enter"},
	{regexp.MustCompile(`(?i)\btab\b`), "pulsado Tab"},
	{regexp.MustCompile(`(?i)\b(escape|esc)\b`), "pulsado Escape"},
	{regexp.MustCompile(`(?i)\b(scroll|despl[aá]za\w*)\b`), "hecho scroll"},
	{regexp.MustCompile(`(?i)\b(arrastra\w*|drag\w*)\b`), "arrastrado el elemento"},
}

// StepPhrases derives phrases from step descriptions, the second-priority
// source.
func StepPhrases(steps []models.Step) []string {
	var phrases []string
	for _, s := range steps {
		for _, rule := range stepRules {
			if rule.re.MatchString(s.Description) {
				phrases = append(phrases, rule.phrase)
				break
			}
		}
	}
	return phrases
}

// genericPhrase is the last-resort action phrase.
const genericPhrase = "ejecutado la acción"

// JoinPhrases composes "He A, B y C." from the derived phrases.
func JoinPhrases(phrases []string) string {
	if len(phrases) == 0 {
		phrases = []string{genericPhrase}
	}
	var body string
	switch len(phrases) {
	case 1:
		body = phrases[0]
	default:
		body = strings.Join(phrases[:len(phrases)-1], ", ") + " y " + phrases[len(phrases)-1]
	}
	return "He " + body + "."
}
