package models

import (
	"fmt"
	"strings"
)

// ActionKind is the fixed allowlist of automation primitives. Nothing outside
// this set may reach the executor.
type ActionKind string

const (
	ActionMove        ActionKind = "move"
	ActionClick       ActionKind = "click"
	ActionDoubleClick ActionKind = "double_click"
	ActionRightClick  ActionKind = "right_click"
	ActionDrag        ActionKind = "drag"
	ActionType        ActionKind = "type"
	ActionPress       ActionKind = "press"
	ActionHotkey      ActionKind = "hotkey"
	ActionScroll      ActionKind = "scroll"
	ActionScreenshot  ActionKind = "screenshot"
	ActionNoop        ActionKind = "noop"
)

// Allowed reports whether k belongs to the primitive allowlist.
func (k ActionKind) Allowed() bool {
	switch k {
	case ActionMove, ActionClick, ActionDoubleClick, ActionRightClick,
		ActionDrag, ActionType, ActionPress, ActionHotkey, ActionScroll,
		ActionScreenshot, ActionNoop:
		return true
	}
	return false
}

// Coordinate reports whether the primitive carries screen coordinates.
func (k ActionKind) Coordinate() bool {
	switch k {
	case ActionMove, ActionClick, ActionDoubleClick, ActionRightClick, ActionDrag:
		return true
	}
	return false
}

// TextOnly reports whether the primitive has no visual precondition.
func (k ActionKind) TextOnly() bool {
	switch k {
	case ActionType, ActionPress, ActionHotkey, ActionNoop:
		return true
	}
	return false
}

// Action is one constrained automation primitive with concrete parameters.
type Action struct {
	Kind        ActionKind `json:"kind"`
	X           int        `json:"x,omitempty"`
	Y           int        `json:"y,omitempty"`
	ToX         int        `json:"to_x,omitempty"`
	ToY         int        `json:"to_y,omitempty"`
	Text        string     `json:"text,omitempty"`
	Key         string     `json:"key,omitempty"`
	Modifiers   []string   `json:"modifiers,omitempty"`
	Amount      int        `json:"amount,omitempty"`
	StepIndex   int        `json:"step_index"`
	Description string     `json:"description"`
	Target      string     `json:"target,omitempty"`
	Comment     string     `json:"comment,omitempty"`
}

// PyAutoGUICmd renders the action as the equivalent pyautogui call, the wire
// format clients display and the history store persists.
func (a Action) PyAutoGUICmd() string {
	switch a.Kind {
	case ActionMove:
		return fmt.Sprintf("pyautogui.moveTo(%d, %d)", a.X, a.Y)
	case ActionClick:
		return fmt.Sprintf("pyautogui.click(%d, %d)", a.X, a.Y)
	case ActionDoubleClick:
		return fmt.Sprintf("pyautogui.doubleClick(%d, %d)", a.X, a.Y)
	case ActionRightClick:
		return fmt.Sprintf("pyautogui.rightClick(%d, %d)", a.X, a.Y)
	case ActionDrag:
		return fmt.Sprintf("pyautogui.moveTo(%d, %d); pyautogui.dragTo(%d, %d)", a.X, a.Y, a.ToX, a.ToY)
	case ActionType:
		return fmt.Sprintf("pyautogui.write(%s)", pyQuote(a.Text))
	case ActionPress:
		return fmt.Sprintf("pyautogui.press(%s)", pyQuote(a.Key))
	case ActionHotkey:
		keys := append(append([]string{}, a.Modifiers...), a.Key)
		quoted := make([]string, len(keys))
		for i, k := range keys {
			quoted[i] = pyQuote(k)
		}
		return fmt.Sprintf("pyautogui.hotkey(%s)", strings.Join(quoted, ", "))
	case ActionScroll:
		return fmt.Sprintf("pyautogui.scroll(%d)", a.Amount)
	case ActionScreenshot:
		return "pyautogui.screenshot()"
	case ActionNoop:
		if a.Comment != "" {
			return "# " + a.Comment
		}
		return "# no-op"
	}
	return "# no-op"
}

func pyQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "\\'") + "'"
}
