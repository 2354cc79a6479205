package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestActionKindAllowed(t *testing.T) {
	for _, k := range []ActionKind{
		ActionMove, ActionClick, ActionDoubleClick, ActionRightClick, ActionDrag,
		ActionType, ActionPress, ActionHotkey, ActionScroll, ActionScreenshot, ActionNoop,
	} {
		assert.True(t, k.Allowed(), "%s", k)
	}
	assert.False(t, ActionKind("triple_click").Allowed())
	assert.False(t, ActionKind("run_shell").Allowed())
	assert.False(t, ActionKind("").Allowed())
}

func TestActionKindTextOnly(t *testing.T) {
	assert.True(t, ActionType.TextOnly())
	assert.True(t, ActionPress.TextOnly())
	assert.True(t, ActionHotkey.TextOnly())
	assert.True(t, ActionNoop.TextOnly())
	assert.False(t, ActionClick.TextOnly())
	assert.False(t, ActionScroll.TextOnly())
}

func TestPyAutoGUICmd(t *testing.T) {
	tests := []struct {
		name   string
		action Action
		want   string
	}{
		{"move", Action{Kind: ActionMove, X: 5, Y: 6}, "pyautogui.moveTo(5, 6)"},
		{"click", Action{Kind: ActionClick, X: 120, Y: 340}, "pyautogui.click(120, 340)"},
		{"double click", Action{Kind: ActionDoubleClick, X: 1, Y: 2}, "pyautogui.doubleClick(1, 2)"},
		{"right click", Action{Kind: ActionRightClick, X: 1, Y: 2}, "pyautogui.rightClick(1, 2)"},
		{"drag", Action{Kind: ActionDrag, X: 1, Y: 2, ToX: 3, ToY: 4}, "pyautogui.moveTo(1, 2); pyautogui.dragTo(3, 4)"},
		{"type", Action{Kind: ActionType, Text: "hola mundo"}, "pyautogui.write('hola mundo')"},
		{"type escapes quotes", Action{Kind: ActionType, Text: "l'avi"}, `pyautogui.write('l\'avi')`},
		{"press", Action{Kind: ActionPress, Key: "enter"}, "pyautogui.press('enter')"},
		{"hotkey", Action{Kind: ActionHotkey, Key: "c", Modifiers: []string{"control", "shift"}}, "pyautogui.hotkey('control', 'shift', 'c')"},
		{"scroll", Action{Kind: ActionScroll, Amount: -600}, "pyautogui.scroll(-600)"},
		{"screenshot", Action{Kind: ActionScreenshot}, "pyautogui.screenshot()"},
		{"noop with comment", Action{Kind: ActionNoop, Comment: "paso omitido"}, "# paso omitido"},
		{"bare noop", Action{Kind: ActionNoop}, "# no-op"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.action.PyAutoGUICmd())
		})
	}
}

func TestCanonicalRegions(t *testing.T) {
	assert.Equal(t, "full", CanonicalRegions(nil))

	a := []Box{{X: 1, Y: 2, W: 3, H: 4}, {X: 5, Y: 6, W: 7, H: 8}}
	b := []Box{{X: 5, Y: 6, W: 7, H: 8}, {X: 1, Y: 2, W: 3, H: 4}}
	assert.Equal(t, CanonicalRegions(a), CanonicalRegions(b))
	assert.Equal(t, "1,2,3,4;5,6,7,8", CanonicalRegions(a))
}

func TestBoxGeometry(t *testing.T) {
	b := Box{X: 10, Y: 20, W: 30, H: 40}
	assert.Equal(t, 1200, b.Area())

	assert.True(t, b.Contains(10, 20))
	assert.True(t, b.Contains(39, 59))
	assert.False(t, b.Contains(40, 20), "right edge is exclusive")
	assert.False(t, b.Contains(9, 20))

	cx, cy := b.Center()
	assert.Equal(t, 25, cx)
	assert.Equal(t, 40, cy)

	assert.Equal(t, 400, b.Overlap(Box{X: 20, Y: 30, W: 20, H: 20}))
	assert.Zero(t, b.Overlap(Box{X: 100, Y: 100, W: 10, H: 10}))
}
