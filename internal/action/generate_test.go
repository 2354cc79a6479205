package action

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"go-deskpilot/pkg/models"
)

func TestCoerce(t *testing.T) {
	tests := []struct {
		suggested   string
		wantKind    models.ActionKind
		wantComment bool
	}{
		{"click", models.ActionClick, false},
		{"  Double_Click ", models.ActionDoubleClick, false},
		{"noop", models.ActionNoop, false},
		{"triple_click", models.ActionClick, true},
		{"middle_click", models.ActionClick, true},
		{"run_shell", models.ActionNoop, true},
		{"", models.ActionNoop, true},
	}
	for _, tt := range tests {
		t.Run(tt.suggested, func(t *testing.T) {
			kind, comment := Coerce(tt.suggested)
			assert.Equal(t, tt.wantKind, kind)
			assert.Equal(t, tt.wantComment, comment != "")
		})
	}
}

func found(x, y int) models.ResolvedTarget {
	return models.ResolvedTarget{Found: true, X: x, Y: y, Label: "objetivo"}
}

func TestGenerateClick(t *testing.T) {
	step := models.Step{Index: 0, Description: "haz clic en el icono", Verb: models.VerbClick}
	a := Generate(step, found(120, 340), 1920, 1080)

	assert.Equal(t, models.ActionClick, a.Kind)
	assert.Equal(t, 120, a.X)
	assert.Equal(t, 340, a.Y)
	assert.Equal(t, "pyautogui.click(120, 340)", a.PyAutoGUICmd())
}

func TestGenerateClickVariants(t *testing.T) {
	tests := []struct {
		description string
		want        models.ActionKind
		coerced     bool
	}{
		{"haz clic en el icono", models.ActionClick, false},
		{"haz doble clic en la carpeta", models.ActionDoubleClick, false},
		{"haz clic derecho en el escritorio", models.ActionRightClick, false},
		// Triple click is outside the allowlist and degrades to a click.
		{"haz triple clic en la palabra", models.ActionClick, true},
	}
	for _, tt := range tests {
		t.Run(tt.description, func(t *testing.T) {
			step := models.Step{Description: tt.description, Verb: models.VerbClick}
			a := Generate(step, found(10, 10), 800, 600)
			assert.Equal(t, tt.want, a.Kind)
			assert.Equal(t, tt.coerced, a.Comment != "")
		})
	}
}

func TestGenerateClickWithoutTarget(t *testing.T) {
	step := models.Step{Description: "haz clic en el icono", Verb: models.VerbClick}
	a := Generate(step, models.ResolvedTarget{}, 800, 600)

	assert.Equal(t, models.ActionNoop, a.Kind)
	assert.Equal(t, "objetivo no encontrado en pantalla, paso omitido", a.Comment)
	assert.Equal(t, "# objetivo no encontrado en pantalla, paso omitido", a.PyAutoGUICmd())
}

func TestGenerateType(t *testing.T) {
	quoted := models.Step{Description: `escribe "hola mundo"`, TargetPhrase: "hola mundo", Verb: models.VerbType}
	a := Generate(quoted, models.ResolvedTarget{}, 800, 600)
	assert.Equal(t, models.ActionType, a.Kind)
	assert.Equal(t, "hola mundo", a.Text)

	unquoted := models.Step{Description: "escribe tu nombre completo", Verb: models.VerbType}
	b := Generate(unquoted, models.ResolvedTarget{}, 800, 600)
	assert.Equal(t, models.ActionType, b.Kind)
	assert.Equal(t, "tu nombre completo", b.Text)

	empty := models.Step{Description: "sin verbo de escritura reconocible", Verb: models.VerbType}
	c := Generate(empty, models.ResolvedTarget{}, 800, 600)
	assert.Equal(t, models.ActionNoop, c.Kind)
	assert.NotEmpty(t, c.Comment)
}

func TestGeneratePress(t *testing.T) {
	tests := []struct {
		description string
		wantKind    models.ActionKind
		wantKey     string
		wantMods    []string
	}{
		{"pulsa Enter", models.ActionPress, "enter", nil},
		{"pulsa intro para confirmar", models.ActionPress, "enter", nil},
		{"pulsa esc", models.ActionPress, "escape", nil},
		{"pulsa suprimir", models.ActionPress, "delete", nil},
		{"pulsa la tecla F5", models.ActionPress, "f5", nil},
		{"pulsa ctrl y F5", models.ActionHotkey, "f5", []string{"control"}},
		{"pulsa ctrl shift esc", models.ActionHotkey, "escape", []string{"control", "shift"}},
	}
	for _, tt := range tests {
		t.Run(tt.description, func(t *testing.T) {
			step := models.Step{Description: tt.description, Verb: models.VerbPress}
			a := Generate(step, models.ResolvedTarget{}, 800, 600)
			assert.Equal(t, tt.wantKind, a.Kind)
			assert.Equal(t, tt.wantKey, a.Key)
			assert.Equal(t, tt.wantMods, a.Modifiers)
		})
	}
}

func TestGeneratePressUnknownKey(t *testing.T) {
	step := models.Step{Description: "pulsa esa cosa", Verb: models.VerbPress}
	a := Generate(step, models.ResolvedTarget{}, 800, 600)
	assert.Equal(t, models.ActionNoop, a.Kind)
	assert.Equal(t, "tecla no reconocida, paso omitido", a.Comment)
}

func TestGenerateScroll(t *testing.T) {
	down := Generate(models.Step{Description: "haz scroll hacia abajo", Verb: models.VerbScroll}, models.ResolvedTarget{}, 800, 600)
	assert.Equal(t, models.ActionScroll, down.Kind)
	assert.Equal(t, -600, down.Amount)

	up := Generate(models.Step{Description: "haz scroll hacia arriba", Verb: models.VerbScroll}, models.ResolvedTarget{}, 800, 600)
	assert.Equal(t, 600, up.Amount)
}

func TestGenerateDrag(t *testing.T) {
	step := models.Step{Description: "arrastra el archivo", Verb: models.VerbDrag}
	a := Generate(step, found(100, 100), 1920, 1080)

	assert.Equal(t, models.ActionDrag, a.Kind)
	assert.Equal(t, 100, a.X)
	assert.Equal(t, 960, a.ToX)
	assert.Equal(t, 540, a.ToY)

	blind := Generate(step, models.ResolvedTarget{}, 1920, 1080)
	assert.Equal(t, models.ActionNoop, blind.Kind)
}

func TestGenerateUnknownVerb(t *testing.T) {
	step := models.Step{Description: "selecciona el panel", Verb: models.VerbUnknown}

	withTarget := Generate(step, found(40, 50), 800, 600)
	assert.Equal(t, models.ActionMove, withTarget.Kind)
	assert.Equal(t, 40, withTarget.X)

	without := Generate(step, models.ResolvedTarget{}, 800, 600)
	assert.Equal(t, models.ActionNoop, without.Kind)
	assert.NotEmpty(t, without.Comment)
}
