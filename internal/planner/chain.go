package planner

import (
	"context"
	"fmt"

	"github.com/tmc/langchaingo/chains"

	"go-deskpilot/pkg/data"
)

// ChainModel implements StepModel on top of a langchaingo chain built from
// the step-breakdown prompt. Verbose or malformed completions are reduced to
// a plain string list before they reach the planner.
type ChainModel struct {
	chain chains.Chain
}

func NewChainModel(chain chains.Chain) *ChainModel {
	return &ChainModel{chain: chain}
}

func (m *ChainModel) BreakDown(ctx context.Context, command string) ([]string, error) {
	completion, err := chains.Call(ctx, m.chain, map[string]any{"Command": command})
	if err != nil {
		return nil, fmt.Errorf("call: %w", err)
	}
	text, ok := completion["text"].(string)
	if !ok {
		return nil, fmt.Errorf("no text in completion")
	}
	steps, err := data.SanitizeList(text)
	if err != nil {
		return nil, fmt.Errorf("sanitize: %w", err)
	}
	return steps, nil
}
