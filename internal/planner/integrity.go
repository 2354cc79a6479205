package planner

import (
	"strings"
	"unicode"

	"go-deskpilot/internal/target"
	"go-deskpilot/pkg/data"
)

// glueWords are connectives and domain action verbs that may appear in a
// proposed step without appearing in the command. Everything else must be
// traceable to the command text or it is treated as fabricated detail.
var glueWords = map[string]struct{}{}

func init() {
	for _, w := range []string{
		// connectives
		"el", "la", "los", "las", "un", "una", "unos", "unas", "de", "del",
		"al", "a", "y", "o", "u", "en", "con", "sobre", "que", "se", "luego",
		"despues", "the", "on", "in", "at", "an", "to", "and", "or", "of",
		"then", "it", "into",
		// domain action verbs
		"haz", "hacer", "clic", "click", "clica", "pincha", "pulsa", "pulsar",
		"presiona", "press", "escribe", "escribir", "type", "write", "teclea",
		"scroll", "desplaza", "desplazate", "arrastra", "drag", "abre",
		"open", "cierra", "close", "selecciona", "select", "boton", "button",
		"tecla", "key",
	} {
		glueWords[w] = struct{}{}
	}
}

// CleanSteps verifies that each proposed step is a strict specialization of
// the command: words not traceable to the command (and not glue) are
// stripped, and steps left without any traceable content are dropped. The
// filter is idempotent; already-clean steps pass through unchanged.
func CleanSteps(command string, proposed []string) []string {
	allowed := tokenSet(command)
	// The model only ever sees the redacted command, so a proposed step may
	// carry redaction placeholders; those trace as well.
	for key := range tokenSet(data.Redact(command)) {
		allowed[key] = struct{}{}
	}

	var out []string
	for _, step := range proposed {
		var kept []string
		traced := false
		for _, field := range strings.Fields(step) {
			key := tokenKey(field)
			if key == "" {
				kept = append(kept, field)
				continue
			}
			if _, ok := allowed[key]; ok {
				kept = append(kept, field)
				traced = true
				continue
			}
			if _, ok := glueWords[key]; ok {
				kept = append(kept, field)
			}
		}
		if !traced {
			continue
		}
		out = append(out, strings.Join(kept, " "))
	}
	return out
}

func tokenSet(s string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, f := range strings.Fields(s) {
		if key := tokenKey(f); key != "" {
			set[key] = struct{}{}
		}
	}
	return set
}

// tokenKey folds case and accents and strips everything that is not a letter
// or digit, so "Inicio," traces to "inicio" and «Aceptar» to "aceptar".
func tokenKey(s string) string {
	folded := target.Fold(s)
	var b strings.Builder
	for _, r := range folded {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
