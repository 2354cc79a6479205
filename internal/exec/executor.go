package exec

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"go-deskpilot/pkg/logger"
	"go-deskpilot/pkg/models"
)

// Inputter injects mouse and keyboard input at the OS level.
type Inputter interface {
	Move(x, y int) error
	Click(x, y int, button string, double bool) error
	Drag(fromX, fromY, toX, toY int) error
	Type(text string) error
	Press(key string, modifiers []string) error
	Scroll(amount int) error
	Location() (int, int)
}

// Screenshotter captures the full screen as an immutable frame.
type Screenshotter interface {
	Capture() (*models.Screenshot, error)
}

// RunOpts controls one command execution.
type RunOpts struct {
	// Before is the frame captured ahead of execution, reused as the pair's
	// before side so the resolver and the analyzer observe the same state.
	Before *models.Screenshot
	// EnableFailsafe aborts the remaining queue when the pointer is parked
	// in the top-left screen corner.
	EnableFailsafe bool
}

// Executor runs actions strictly in step order on a single logical thread of
// control. A failed action does not abort the queue unless a later action
// depends on it; partial completion is recorded, not discarded.
type Executor struct {
	in    Inputter
	shots Screenshotter
	clock func() time.Time
}

func New(in Inputter, shots Screenshotter) *Executor {
	return &Executor{in: in, shots: shots, clock: time.Now}
}

// NewWithClock is used by tests to pin result timestamps.
func NewWithClock(in Inputter, shots Screenshotter, clock func() time.Time) *Executor {
	return &Executor{in: in, shots: shots, clock: clock}
}

// Run executes the queue and returns the ordered result log plus the
// screenshot pair. Purely text-bearing queues skip the pair entirely.
func (e *Executor) Run(ctx context.Context, actions []models.Action, opts RunOpts) ([]models.ExecutionResult, models.ScreenshotPair) {
	l := log.With().Str(logger.ComponentField, "executor").Logger()

	var pair models.ScreenshotPair
	capturePair := !textOnly(actions)
	if capturePair {
		pair.Before = opts.Before
		if pair.Before == nil && e.shots != nil {
			shot, err := e.shots.Capture()
			if err != nil {
				l.Warn().Err(err).Msg("before capture failed")
			} else {
				pair.Before = shot
			}
		}
	}

	states := make([]State, len(actions))
	for i := range states {
		states[i] = StatePending
	}

	results := make([]models.ExecutionResult, 0, len(actions))
	abortReason := ""
	for i, a := range actions {
		if abortReason != "" {
			_ = Transition(states, i, StatePending, StateFailed)
			results = append(results, e.result(a, false, abortReason))
			continue
		}
		if opts.EnableFailsafe && e.cornerParked() {
			l.Warn().Msg("failsafe corner hit, aborting remaining actions")
			abortReason = "abortado por failsafe"
			_ = Transition(states, i, StatePending, StateFailed)
			results = append(results, e.result(a, false, abortReason))
			continue
		}
		if reason := dependencyBlocked(actions, results, i); reason != "" {
			_ = Transition(states, i, StatePending, StateFailed)
			results = append(results, e.result(a, false, reason))
			continue
		}
		if err := ctx.Err(); err != nil {
			abortReason = "contexto cancelado"
			_ = Transition(states, i, StatePending, StateFailed)
			results = append(results, e.result(a, false, abortReason))
			continue
		}

		_ = Transition(states, i, StatePending, StateRunning)
		err := e.apply(a)
		if err != nil {
			_ = Transition(states, i, StateRunning, StateFailed)
			l.Error().Err(err).Int(logger.StepField, a.StepIndex).Str("kind", string(a.Kind)).Msg("action failed")
			results = append(results, e.result(a, false, err.Error()))
			continue
		}
		_ = Transition(states, i, StateRunning, StateSucceeded)
		l.Debug().Int(logger.StepField, a.StepIndex).Str("kind", string(a.Kind)).Msg("action done")
		results = append(results, e.result(a, true, ""))
	}

	if capturePair && e.shots != nil {
		shot, err := e.shots.Capture()
		if err != nil {
			l.Warn().Err(err).Msg("after capture failed")
		} else {
			pair.After = shot
		}
	}

	return results, pair
}

func (e *Executor) result(a models.Action, ok bool, errText string) models.ExecutionResult {
	return models.ExecutionResult{
		StepIndex: a.StepIndex,
		Success:   ok,
		Error:     errText,
		Time:      e.clock(),
	}
}

// apply dispatches one primitive. A panicking OS binding is converted to an
// error instead of taking the whole pipeline down.
func (e *Executor) apply(a models.Action) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("primitive panicked: %v", r)
		}
	}()

	switch a.Kind {
	case models.ActionMove:
		return e.in.Move(a.X, a.Y)
	case models.ActionClick:
		return e.in.Click(a.X, a.Y, "left", false)
	case models.ActionDoubleClick:
		return e.in.Click(a.X, a.Y, "left", true)
	case models.ActionRightClick:
		return e.in.Click(a.X, a.Y, "right", false)
	case models.ActionDrag:
		return e.in.Drag(a.X, a.Y, a.ToX, a.ToY)
	case models.ActionType:
		return e.in.Type(a.Text)
	case models.ActionPress:
		return e.in.Press(a.Key, nil)
	case models.ActionHotkey:
		return e.in.Press(a.Key, a.Modifiers)
	case models.ActionScroll:
		return e.in.Scroll(a.Amount)
	case models.ActionScreenshot:
		if e.shots == nil {
			return nil
		}
		_, err := e.shots.Capture()
		return err
	case models.ActionNoop:
		return nil
	}
	return fmt.Errorf("primitive outside the allowlist: %s", a.Kind)
}

// dependencyBlocked reports why action i cannot run, or "". Typing depends on
// the immediately preceding click having focused its field.
func dependencyBlocked(actions []models.Action, results []models.ExecutionResult, i int) string {
	if i == 0 || actions[i].Kind != models.ActionType {
		return ""
	}
	prev := actions[i-1]
	switch prev.Kind {
	case models.ActionClick, models.ActionDoubleClick, models.ActionRightClick:
		if !results[i-1].Success {
			return "omitido: el clic previo que debía enfocar el campo falló"
		}
	}
	return ""
}

func textOnly(actions []models.Action) bool {
	if len(actions) == 0 {
		return true
	}
	for _, a := range actions {
		if !a.Kind.TextOnly() {
			return false
		}
	}
	return true
}

func (e *Executor) cornerParked() bool {
	x, y := e.in.Location()
	return x <= 1 && y <= 1
}
