package exec

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-vgo/robotgo"
	"github.com/google/uuid"

	"go-deskpilot/pkg/models"
)

// validKeys are the named keys the keyboard binding accepts directly;
// anything else single-character is tapped as-is and longer unknown names
// are typed out.
var validKeys = map[string]bool{
	"enter": true, "tab": true, "space": true, "backspace": true,
	"delete": true, "escape": true, "up": true, "down": true, "left": true,
	"right": true, "home": true, "end": true, "page_up": true,
	"page_down": true, "f1": true, "f2": true, "f3": true, "f4": true,
	"f5": true, "f6": true, "f7": true, "f8": true, "f9": true, "f10": true,
	"f11": true, "f12": true,
}

// Robot drives the OS screen and input devices through robotgo. It is the
// production Inputter and Screenshotter.
type Robot struct{}

func NewRobot() *Robot { return &Robot{} }

func (r *Robot) Move(x, y int) error {
	robotgo.Move(x, y)
	return nil
}

func (r *Robot) Click(x, y int, button string, double bool) error {
	if button == "" {
		button = "left"
	}
	robotgo.Move(x, y)
	robotgo.MilliSleep(50)
	robotgo.Click(button, double)
	return nil
}

func (r *Robot) Drag(fromX, fromY, toX, toY int) error {
	robotgo.Move(fromX, fromY)
	robotgo.MilliSleep(50)
	robotgo.DragSmooth(toX, toY)
	return nil
}

func (r *Robot) Type(text string) error {
	robotgo.TypeStr(text)
	return nil
}

func (r *Robot) Press(key string, modifiers []string) error {
	mods := make([]interface{}, len(modifiers))
	for i, mod := range modifiers {
		switch strings.ToLower(mod) {
		case "command", "cmd", "super":
			mods[i] = "command"
		case "control", "ctrl":
			mods[i] = "control"
		case "alt", "option":
			mods[i] = "alt"
		case "shift":
			mods[i] = "shift"
		default:
			mods[i] = mod
		}
	}

	switch {
	case len(key) == 1:
		return robotgo.KeyTap(key, mods...)
	case validKeys[key]:
		return robotgo.KeyTap(key, mods...)
	case len(mods) > 0:
		return fmt.Errorf("unknown key %q for hotkey", key)
	default:
		robotgo.TypeStr(key)
		return nil
	}
}

func (r *Robot) Scroll(amount int) error {
	robotgo.Scroll(0, amount)
	return nil
}

func (r *Robot) Location() (int, int) {
	return robotgo.GetMousePos()
}

// Capture grabs the full screen as an immutable frame.
func (r *Robot) Capture() (*models.Screenshot, error) {
	bit := robotgo.CaptureScreen()
	if bit == nil {
		return nil, fmt.Errorf("capture screen failed")
	}
	defer robotgo.FreeBitmap(bit)

	img := robotgo.ToImage(bit)
	return &models.Screenshot{
		ID:      uuid.New().String(),
		ModTime: time.Now(),
		Img:     img,
	}, nil
}

// ScreenSize reports the primary display dimensions.
func (r *Robot) ScreenSize() (int, int) {
	return robotgo.GetScreenSize()
}
