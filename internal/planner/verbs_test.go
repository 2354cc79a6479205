package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"go-deskpilot/pkg/models"
)

func TestClassifyVerb(t *testing.T) {
	tests := []struct {
		description string
		want        models.VerbKind
	}{
		{"haz clic en el icono", models.VerbClick},
		{"haz doble clic en la carpeta", models.VerbClick},
		{"pincha en el enlace", models.VerbClick},
		{"toca el botón rojo", models.VerbClick},
		{"escribe tu nombre", models.VerbType},
		{"teclea la contraseña", models.VerbType},
		{"rellena el formulario", models.VerbType},
		{"pulsa Enter", models.VerbPress},
		{"pulsa la tecla F5", models.VerbPress},
		{"presiona esc para salir", models.VerbPress},
		{"haz scroll hacia abajo", models.VerbScroll},
		{"desplázate al final", models.VerbScroll},
		{"arrastra el archivo a la papelera", models.VerbDrag},
		{"abre el menú principal", models.VerbUnknown},
		{"", models.VerbUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.description, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyVerb(tt.description))
		})
	}
}

func TestClassifyVerbPrecedence(t *testing.T) {
	// Key names win over pressing vocabulary.
	assert.Equal(t, models.VerbPress, ClassifyVerb("pulsa Enter"))
	// Without a key name the same vocabulary is a click.
	assert.Equal(t, models.VerbClick, ClassifyVerb("pulsa el botón azul"))
	// Writing wins over the key it mentions.
	assert.Equal(t, models.VerbType, ClassifyVerb("escribe hola y pulsa enter"))
	// Dragging wins over the click that initiates it.
	assert.Equal(t, models.VerbDrag, ClassifyVerb("haz clic y arrastra el icono"))
}
