package planner

import (
	"context"

	"github.com/rs/zerolog/log"

	"go-deskpilot/internal/target"
	"go-deskpilot/pkg/data"
	"go-deskpilot/pkg/logger"
	"go-deskpilot/pkg/models"
)

// StepModel is the external backend that proposes a step breakdown for a
// command. Its output is untrusted and may be empty, malformed or verbose.
type StepModel interface {
	BreakDown(ctx context.Context, command string) ([]string, error)
}

// Planner turns a command into a verified, ordered step list.
type Planner struct {
	model StepModel
}

func New(model StepModel) *Planner {
	return &Planner{model: model}
}

// Plan never fails: when the backend is unreachable or returns nothing
// usable, the whole command becomes a single step with an unknown verb.
func (p *Planner) Plan(ctx context.Context, cmd models.Command) []models.Step {
	l := log.With().Str(logger.ComponentField, "planner").Logger()

	var proposed []string
	if p.model != nil {
		var err error
		// Command text is redacted before it leaves the process.
		proposed, err = p.model.BreakDown(ctx, data.Redact(cmd.Text))
		if err != nil {
			l.Warn().Err(err).Msg("step backend unavailable, degrading to single step")
		}
	}

	clean := CleanSteps(cmd.Text, proposed)
	if len(clean) == 0 {
		// Degraded plan: the whole command as one step, verb unknown.
		l.Debug().Msg("no usable steps, whole command becomes the plan")
		return []models.Step{{
			Index:        0,
			Description:  cmd.Text,
			TargetPhrase: target.ExtractQuoted(cmd.Text),
			Verb:         models.VerbUnknown,
		}}
	}

	steps := make([]models.Step, len(clean))
	for i, desc := range clean {
		steps[i] = models.Step{
			Index:        i,
			Description:  desc,
			TargetPhrase: target.ExtractQuoted(desc),
			Verb:         ClassifyVerb(desc),
		}
	}
	l.Debug().Int("steps", len(steps)).Msg("plan ready")
	return steps
}
