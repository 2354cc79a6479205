package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanSteps(t *testing.T) {
	tests := []struct {
		name     string
		command  string
		proposed []string
		want     []string
	}{
		{
			name:     "clean steps pass through unchanged",
			command:  "haz clic en Inicio y escribe hola",
			proposed: []string{"haz clic en Inicio", "escribe hola"},
			want:     []string{"haz clic en Inicio", "escribe hola"},
		},
		{
			name:     "fabricated detail is stripped",
			command:  "haz clic en Guardar",
			proposed: []string{"haz clic en Guardar inmediatamente"},
			want:     []string{"haz clic en Guardar"},
		},
		{
			name:     "untraceable step is dropped",
			command:  "haz clic en Guardar",
			proposed: []string{"haz clic en Guardar", "reinicia el equipo"},
			want:     []string{"haz clic en Guardar"},
		},
		{
			name:     "punctuation and case do not block tracing",
			command:  "abre «Configuración» del sistema",
			proposed: []string{"abre configuracion", "abre del sistema"},
			want:     []string{"abre configuracion", "abre del sistema"},
		},
		{
			name:     "redaction placeholders trace to the redacted command",
			command:  "envía un correo a ana@test.es",
			proposed: []string{"envía un correo a [email]"},
			want:     []string{"envía un correo a [email]"},
		},
		{
			name:     "empty proposal yields nothing",
			command:  "haz clic",
			proposed: nil,
			want:     nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanSteps(tt.command, tt.proposed))
		})
	}
}

func TestCleanStepsIsIdempotent(t *testing.T) {
	command := `haz clic en el botón "Inicio" y escribe tu nombre`
	proposed := []string{
		`haz clic en el botón "Inicio" del escritorio GNOME`,
		"escribe tu nombre completo",
		"apaga el equipo",
	}

	once := CleanSteps(command, proposed)
	twice := CleanSteps(command, once)
	assert.Equal(t, once, twice)
}
