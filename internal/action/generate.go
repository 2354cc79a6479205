package action

import (
	"regexp"
	"strings"

	"go-deskpilot/pkg/models"
)

// Coerce is the allowlist guard. Every suggested primitive name passes
// through here before an Action may be built; names outside the allowlist
// are substituted with a documented safe fallback. Unrecognized click
// variants degrade to a plain click, anything else degrades to a no-op with
// an explanatory comment.
func Coerce(suggested string) (models.ActionKind, string) {
	kind := models.ActionKind(strings.ToLower(strings.TrimSpace(suggested)))
	if kind.Allowed() {
		return kind, ""
	}
	if strings.Contains(string(kind), "click") {
		return models.ActionClick, "primitivo no permitido '" + suggested + "', sustituido por clic"
	}
	return models.ActionNoop, "primitivo no permitido '" + suggested + "', sustituido por no-op"
}

var (
	doubleRe   = regexp.MustCompile(`(?i)\b(doble|double|triple)\b`)
	tripleRe   = regexp.MustCompile(`(?i)\btriple\b`)
	rightRe    = regexp.MustCompile(`(?i)\b(derecho|derecha del rat[oó]n|right)\b`)
	upRe       = regexp.MustCompile(`(?i)\b(arriba|up)\b`)
	keyRe      = regexp.MustCompile(`(?i)\b(enter|intro|tab|escape|esc|suprimir|f[0-9]{1,2})\b`)
	modifierRe = regexp.MustCompile(`(?i)\b(ctrl|control|alt|shift|may[uú]s|cmd|command)\b`)
	typeLeadRe = regexp.MustCompile(`(?i)^.*?\b(escribe|escribir|teclea|type|write|introduce|rellena)\b[:\s]*`)
)

const scrollStep = 600

// Generate maps one (step, target) pair to exactly one allowlisted Action.
// A missing target never guesses coordinates: coordinate-bearing verbs
// degrade to a commented no-op instead.
func Generate(step models.Step, target models.ResolvedTarget, screenW, screenH int) models.Action {
	a := models.Action{
		Kind:        models.ActionNoop,
		StepIndex:   step.Index,
		Description: step.Description,
		Target:      target.Label,
	}

	switch step.Verb {
	case models.VerbClick:
		if !target.Found {
			a.Comment = "objetivo no encontrado en pantalla, paso omitido"
			return a
		}
		kind, comment := Coerce(string(clickVariant(step.Description)))
		a.Kind = kind
		a.Comment = comment
		a.X, a.Y = target.X, target.Y

	case models.VerbType:
		a.Kind = models.ActionType
		a.Text = typedText(step)
		if a.Text == "" {
			a.Kind = models.ActionNoop
			a.Comment = "no hay texto que escribir en este paso"
		}

	case models.VerbPress:
		key := pressedKey(step.Description)
		if key == "" {
			a.Comment = "tecla no reconocida, paso omitido"
			return a
		}
		if mods := pressedModifiers(step.Description); len(mods) > 0 {
			a.Kind = models.ActionHotkey
			a.Modifiers = mods
		} else {
			a.Kind = models.ActionPress
		}
		a.Key = key

	case models.VerbScroll:
		a.Kind = models.ActionScroll
		if upRe.MatchString(step.Description) {
			a.Amount = scrollStep
		} else {
			a.Amount = -scrollStep
		}

	case models.VerbDrag:
		if !target.Found {
			a.Comment = "objetivo no encontrado en pantalla, paso omitido"
			return a
		}
		a.Kind = models.ActionDrag
		a.X, a.Y = target.X, target.Y
		// With no explicit destination the element is dragged towards the
		// screen center.
		a.ToX, a.ToY = screenW/2, screenH/2

	default:
		if target.Found {
			a.Kind = models.ActionMove
			a.X, a.Y = target.X, target.Y
		} else {
			a.Comment = "no pude convertir el paso en una acción segura"
		}
	}

	return a
}

func clickVariant(description string) models.ActionKind {
	switch {
	case doubleRe.MatchString(description):
		if tripleRe.MatchString(description) {
			// Triple click is not an allowlisted primitive; Coerce degrades it.
			return models.ActionKind("triple_click")
		}
		return models.ActionDoubleClick
	case rightRe.MatchString(description):
		return models.ActionRightClick
	default:
		return models.ActionClick
	}
}

func typedText(step models.Step) string {
	if step.TargetPhrase != "" {
		return step.TargetPhrase
	}
	rest := typeLeadRe.ReplaceAllString(step.Description, "")
	rest = strings.Trim(rest, `"' `)
	if rest == step.Description {
		return ""
	}
	return rest
}

func pressedKey(description string) string {
	m := keyRe.FindString(description)
	switch strings.ToLower(m) {
	case "":
		return ""
	case "intro":
		return "enter"
	case "esc":
		return "escape"
	case "suprimir":
		return "delete"
	default:
		return strings.ToLower(m)
	}
}

func pressedModifiers(description string) []string {
	var mods []string
	seen := map[string]struct{}{}
	for _, m := range modifierRe.FindAllString(description, -1) {
		mod := strings.ToLower(m)
		switch mod {
		case "ctrl":
			mod = "control"
		case "mayús", "mayus":
			mod = "shift"
		case "cmd":
			mod = "command"
		}
		if _, ok := seen[mod]; ok {
			continue
		}
		seen[mod] = struct{}{}
		mods = append(mods, mod)
	}
	return mods
}
