package feedback

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestZone(t *testing.T) {
	tests := []struct {
		name       string
		x, y, w, h int
		want       string
	}{
		{"top left origin", 0, 0, 100, 100, "arriba izquierda"},
		{"dead center", 50, 50, 100, 100, "el centro"},
		{"bottom right corner", 99, 99, 100, 100, "abajo derecha"},
		{"top right", 90, 5, 100, 100, "arriba derecha"},
		{"center left", 10, 50, 100, 100, "centro izquierda"},
		{"bottom center", 50, 95, 100, 100, "abajo centro"},
		{"last pixel of first third", 33, 0, 100, 100, "arriba izquierda"},
		{"first pixel of middle third", 34, 0, 100, 100, "arriba centro"},
		{"exact third boundary falls right", 33, 0, 99, 99, "arriba centro"},
		{"negative clamps to left", -10, 50, 100, 100, "centro izquierda"},
		{"overshoot clamps to bottom", 50, 500, 100, 100, "abajo centro"},
		{"both out of range", -5, 1000, 100, 100, "abajo izquierda"},
		{"degenerate screen", 5, 5, 0, 0, "el centro"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Zone(tt.x, tt.y, tt.w, tt.h))
		})
	}
}

// Every coordinate on a screen must map to some zone.
func TestZoneIsTotal(t *testing.T) {
	valid := map[string]struct{}{
		"arriba izquierda": {}, "arriba centro": {}, "arriba derecha": {},
		"centro izquierda": {}, "el centro": {}, "centro derecha": {},
		"abajo izquierda": {}, "abajo centro": {}, "abajo derecha": {},
	}
	for x := -5; x < 35; x += 3 {
		for y := -5; y < 35; y += 3 {
			z := Zone(x, y, 30, 30)
			_, ok := valid[z]
			assert.True(t, ok, "Zone(%d, %d) produced %q", x, y, z)
		}
	}
}
