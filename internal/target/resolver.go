package target

import (
	"context"
	"regexp"
	"strings"

	"github.com/rs/zerolog/log"

	"go-deskpilot/internal/vision"
	"go-deskpilot/pkg/data"
	"go-deskpilot/pkg/logger"
	"go-deskpilot/pkg/models"
)

// Quoter asks the model backend which literal on-screen text a step needs.
type Quoter interface {
	Quote(ctx context.Context, command, step string) (string, error)
}

var quotedRe = regexp.MustCompile(`"([^"]+)"|'([^']+)'|«([^»]+)»|“([^”]+)”`)

// Resolver attaches an on-screen target to a step by matching its quoted
// phrase against the current screen observation.
type Resolver struct {
	perception *vision.Service
	quoter     Quoter
}

func New(perception *vision.Service, quoter Quoter) *Resolver {
	return &Resolver{perception: perception, quoter: quoter}
}

// Resolve finds the best on-screen match for a step on the given frame,
// restricted to focus when non-empty. A not-found result is a valid outcome.
func (r *Resolver) Resolve(ctx context.Context, command string, step models.Step, shot *models.Screenshot, focus []models.Box) models.ResolvedTarget {
	l := log.With().Str(logger.ComponentField, "resolver").Int(logger.StepField, step.Index).Logger()

	phrase := step.TargetPhrase
	if phrase == "" {
		phrase = ExtractQuoted(step.Description)
	}
	if phrase == "" && r.quoter != nil {
		// Both prompt inputs are redacted before they leave the process.
		quoted, err := r.quoter.Quote(ctx, data.Redact(command), data.Redact(step.Description))
		if err != nil {
			l.Warn().Err(err).Msg("target quoting unavailable")
		} else {
			phrase = ExtractQuoted(quoted)
			if phrase == "" {
				phrase = strings.Trim(quoted, `"' `)
			}
		}
	}
	if phrase == "" {
		return models.ResolvedTarget{}
	}

	obs := r.perception.Perceive(ctx, shot, focus)
	target := Match(phrase, obs, focus)
	if !target.Found {
		l.Debug().Str("phrase", phrase).Msg("no on-screen match")
	}
	return target
}

// ExtractQuoted returns the first quoted substring of s, or "".
func ExtractQuoted(s string) string {
	m := quotedRe.FindStringSubmatch(s)
	if m == nil {
		return ""
	}
	for _, g := range m[1:] {
		if g != "" {
			return strings.TrimSpace(g)
		}
	}
	return ""
}

type candidate struct {
	label      string
	box        models.Box
	confidence float64
	exact      bool
}

// Match applies the matching policy: a candidate label must contain or equal
// the folded phrase; exact matches beat containment, ties break by overlap
// with the focus regions and then by confidence.
func Match(phrase string, obs models.Perception, focus []models.Box) models.ResolvedTarget {
	folded := Fold(phrase)
	if folded == "" {
		return models.ResolvedTarget{}
	}

	var candidates []candidate
	consider := func(label string, box models.Box, confidence float64) {
		fl := Fold(label)
		if fl == "" || !strings.Contains(fl, folded) {
			return
		}
		candidates = append(candidates, candidate{
			label:      label,
			box:        box,
			confidence: confidence,
			exact:      fl == folded,
		})
	}
	for _, t := range obs.Texts {
		consider(t.Text, t.Box, t.Confidence)
	}
	for _, e := range obs.Elements {
		consider(e.Label, e.Box, e.Confidence)
	}
	if len(candidates) == 0 {
		return models.ResolvedTarget{}
	}

	best := candidates[0]
	for _, c := range candidates[1:] {
		if better(c, best, focus) {
			best = c
		}
	}

	cx, cy := best.box.Center()
	return models.ResolvedTarget{
		Found: true,
		X:     cx,
		Y:     cy,
		Box:   best.box,
		Label: best.label,
	}
}

func better(a, b candidate, focus []models.Box) bool {
	if a.exact != b.exact {
		return a.exact
	}
	oa, ob := focusOverlap(a.box, focus), focusOverlap(b.box, focus)
	if oa != ob {
		return oa > ob
	}
	return a.confidence > b.confidence
}

func focusOverlap(box models.Box, focus []models.Box) int {
	total := 0
	for _, f := range focus {
		total += box.Overlap(f)
	}
	return total
}
