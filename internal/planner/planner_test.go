package planner

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-deskpilot/pkg/models"
)

type stubModel struct {
	steps    []string
	err      error
	calls    int
	received string
}

func (m *stubModel) BreakDown(ctx context.Context, command string) ([]string, error) {
	m.calls++
	m.received = command
	return m.steps, m.err
}

func TestPlanBreaksDownCommand(t *testing.T) {
	model := &stubModel{steps: []string{
		`haz clic en el botón "Inicio"`,
		`escribe "notas" en el buscador`,
	}}
	p := New(model)

	steps := p.Plan(context.Background(), models.Command{Text: `haz clic en el botón "Inicio" y escribe "notas" en el buscador`})

	require.Len(t, steps, 2)
	assert.Equal(t, 0, steps[0].Index)
	assert.Equal(t, models.VerbClick, steps[0].Verb)
	assert.Equal(t, "Inicio", steps[0].TargetPhrase)
	assert.Equal(t, 1, steps[1].Index)
	assert.Equal(t, models.VerbType, steps[1].Verb)
	assert.Equal(t, "notas", steps[1].TargetPhrase)
	assert.Equal(t, 1, model.calls)
}

func TestPlanWithoutModelFallsBack(t *testing.T) {
	p := New(nil)
	steps := p.Plan(context.Background(), models.Command{Text: `haz clic en "Guardar"`})

	require.Len(t, steps, 1)
	assert.Equal(t, `haz clic en "Guardar"`, steps[0].Description)
	assert.Equal(t, models.VerbUnknown, steps[0].Verb)
	assert.Equal(t, "Guardar", steps[0].TargetPhrase)
}

func TestPlanModelErrorFallsBack(t *testing.T) {
	p := New(&stubModel{err: errors.New("backend down")})
	steps := p.Plan(context.Background(), models.Command{Text: "abre el navegador"})

	require.Len(t, steps, 1)
	assert.Equal(t, "abre el navegador", steps[0].Description)
	assert.Equal(t, models.VerbUnknown, steps[0].Verb)
}

func TestPlanDropsFullyFabricatedSteps(t *testing.T) {
	model := &stubModel{steps: []string{
		"haz clic en Guardar",
		"abre el navegador firefox", // nothing here traces to the command
	}}
	p := New(model)

	steps := p.Plan(context.Background(), models.Command{Text: "haz clic en Guardar"})

	require.Len(t, steps, 1)
	assert.Equal(t, "haz clic en Guardar", steps[0].Description)
}

func TestPlanRedactsCommandForModel(t *testing.T) {
	model := &stubModel{steps: []string{`escribe "[email]" en el campo`}}
	p := New(model)

	steps := p.Plan(context.Background(), models.Command{Text: `escribe "juan@example.com" en el campo`})

	assert.Equal(t, `escribe "[email]" en el campo`, model.received)
	assert.NotContains(t, model.received, "juan@example.com")

	// Placeholder words in the proposal trace back to the redacted command.
	require.Len(t, steps, 1)
	assert.Equal(t, `escribe "[email]" en el campo`, steps[0].Description)
	assert.Equal(t, "[email]", steps[0].TargetPhrase)
	assert.Equal(t, models.VerbType, steps[0].Verb)
}

func TestPlanNeverReturnsEmpty(t *testing.T) {
	model := &stubModel{steps: []string{"lanza los misiles", "formatea el disco"}}
	p := New(model)

	steps := p.Plan(context.Background(), models.Command{Text: "haz clic en Inicio"})

	require.NotEmpty(t, steps)
	assert.Equal(t, "haz clic en Inicio", steps[0].Description)
	assert.Equal(t, models.VerbUnknown, steps[0].Verb)
}
