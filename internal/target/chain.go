package target

import (
	"context"
	"fmt"

	"github.com/tmc/langchaingo/chains"
)

// ChainQuoter implements Quoter on top of a langchaingo chain built from the
// target-quoting prompt.
type ChainQuoter struct {
	chain chains.Chain
}

func NewChainQuoter(chain chains.Chain) *ChainQuoter {
	return &ChainQuoter{chain: chain}
}

func (q *ChainQuoter) Quote(ctx context.Context, command, step string) (string, error) {
	completion, err := chains.Call(ctx, q.chain, map[string]any{"Command": command, "Step": step})
	if err != nil {
		return "", fmt.Errorf("call: %w", err)
	}
	text, ok := completion["text"].(string)
	if !ok {
		return "", fmt.Errorf("no text in completion")
	}
	return text, nil
}
