package handler

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"go-deskpilot/internal/action"
	"go-deskpilot/internal/exec"
	"go-deskpilot/internal/feedback"
	"go-deskpilot/internal/history"
	"go-deskpilot/internal/planner"
	"go-deskpilot/internal/target"
	"go-deskpilot/internal/vision"
	"go-deskpilot/pkg/data"
	"go-deskpilot/pkg/logger"
	"go-deskpilot/pkg/models"
)

// ScreenSizer reports the display dimensions.
type ScreenSizer interface {
	ScreenSize() (int, int)
}

// Handler orchestrates one command through the whole pipeline. Every failure
// mode inside degrades to a well-defined fallback; Run always returns a
// result.
type Handler struct {
	planner    *planner.Planner
	resolver   *target.Resolver
	perception *vision.Service
	executor   *exec.Executor
	shots      exec.Screenshotter
	sizer      ScreenSizer
	history    history.Store
}

func New(p *planner.Planner, r *target.Resolver, perception *vision.Service, executor *exec.Executor, shots exec.Screenshotter, sizer ScreenSizer, store history.Store) *Handler {
	return &Handler{
		planner:    p,
		resolver:   r,
		perception: perception,
		executor:   executor,
		shots:      shots,
		sizer:      sizer,
		history:    store,
	}
}

func (h *Handler) Run(ctx context.Context, cmd models.Command) *models.CommandResult {
	l := log.With().Str(logger.ComponentField, "pipeline").Logger()

	steps := h.planner.Plan(ctx, cmd)

	screenW, screenH := 0, 0
	if h.sizer != nil {
		screenW, screenH = h.sizer.ScreenSize()
	}

	var before *models.Screenshot
	if needsScreen(steps) && h.shots != nil {
		shot, err := h.shots.Capture()
		if err != nil {
			l.Warn().Err(err).Msg("initial capture failed, resolving blind")
		} else {
			before = shot
			if w, hh := shot.Size(); w > 0 {
				screenW, screenH = w, hh
			}
		}
	}

	actions := make([]models.Action, 0, len(steps))
	for _, step := range steps {
		var resolved models.ResolvedTarget
		if stepNeedsTarget(step) && before != nil {
			resolved = h.resolver.Resolve(ctx, cmd.Text, step, before, nil)
		}
		actions = append(actions, action.Generate(step, resolved, screenW, screenH))
	}

	results, pair := h.executor.Run(ctx, actions, exec.RunOpts{
		Before:         before,
		EnableFailsafe: cmd.EnableFailsafe,
	})

	diff := vision.Analyze(pair)

	var beforePerc, afterPerc models.Perception
	if pair.Before != nil {
		beforePerc = h.perception.Perceive(ctx, pair.Before, nil)
	}
	if pair.Complete() {
		// Recognition over the after frame focuses on the changed regions to
		// cut noise and model cost.
		w, hh := pair.After.Size()
		afterPerc = h.perception.Perceive(ctx, pair.After, diff.FocusBoxes(w, hh))
	}

	summary := feedback.Synthesize(feedback.Report{
		Steps:       steps,
		Actions:     actions,
		Results:     results,
		Pair:        pair,
		Diff:        diff,
		BeforeTexts: beforePerc.Texts,
		AfterTexts:  afterPerc.Texts,
		Degraded:    beforePerc.Degraded || afterPerc.Degraded,
		ScreenW:     screenW,
		ScreenH:     screenH,
	})

	result := buildResult(cmd, steps, actions, results, summary)
	h.persist(cmd, steps, actions, results, summary)
	l.Info().Str("tag", string(summary.Tag)).Msg(summary.Sentence)
	return result
}

func (h *Handler) persist(cmd models.Command, steps []models.Step, actions []models.Action, results []models.ExecutionResult, summary models.FeedbackSummary) {
	if h.history == nil {
		return
	}
	entry := history.Entry{
		ID:      uuid.New().String(),
		Time:    time.Now(),
		Command: data.Redact(cmd.Text),
		Steps:   stepTexts(steps),
		Actions: actionReports(actions, results),
		Summary: summary,
	}
	if err := h.history.Append(entry); err != nil {
		log.Error().Err(err).Msg("history append failed")
	}
}

func buildResult(cmd models.Command, steps []models.Step, actions []models.Action, results []models.ExecutionResult, summary models.FeedbackSummary) *models.CommandResult {
	stepsSummary := make([]models.StepSummary, len(steps))
	for i, s := range steps {
		success := true
		for j, a := range actions {
			if a.StepIndex == s.Index && j < len(results) && !results[j].Success {
				success = false
			}
		}
		stepsSummary[i] = models.StepSummary{
			StepNumber:  s.Index + 1,
			Description: s.Description,
			Target:      actionTarget(actions, s.Index),
			Success:     success,
		}
	}

	status := "success"
	if len(results) > 0 && allFailed(results) {
		status = "error"
	}

	return &models.CommandResult{
		Status:       status,
		Command:      cmd.Text,
		Steps:        stepTexts(steps),
		Actions:      actionReports(actions, results),
		StepsSummary: stepsSummary,
		Summary:      summary,
	}
}

func actionReports(actions []models.Action, results []models.ExecutionResult) []models.ActionReport {
	reports := make([]models.ActionReport, len(actions))
	for i, a := range actions {
		outcome := "not executed"
		if i < len(results) {
			if results[i].Success {
				outcome = "success"
			} else {
				outcome = "failed: " + results[i].Error
			}
		}
		reports[i] = models.ActionReport{
			Description:     a.Description,
			Target:          a.Target,
			PyAutoGUICmd:    a.PyAutoGUICmd(),
			ExecutionResult: outcome,
		}
	}
	return reports
}

func stepTexts(steps []models.Step) []string {
	out := make([]string, len(steps))
	for i, s := range steps {
		out[i] = s.Description
	}
	return out
}

func actionTarget(actions []models.Action, stepIndex int) string {
	for _, a := range actions {
		if a.StepIndex == stepIndex {
			return a.Target
		}
	}
	return ""
}

func allFailed(results []models.ExecutionResult) bool {
	for _, r := range results {
		if r.Success {
			return false
		}
	}
	return true
}

func stepNeedsTarget(step models.Step) bool {
	switch step.Verb {
	case models.VerbClick, models.VerbDrag, models.VerbUnknown:
		return true
	}
	return step.TargetPhrase != ""
}

func needsScreen(steps []models.Step) bool {
	for _, s := range steps {
		if stepNeedsTarget(s) || s.Verb == models.VerbScroll {
			return true
		}
	}
	return false
}
