package models

import (
	"image"
	"sort"
	"strconv"
	"strings"
	"time"
)

// VerbKind is the closed set of verb categories a step can carry.
type VerbKind string

const (
	VerbClick   VerbKind = "click"
	VerbType    VerbKind = "type"
	VerbPress   VerbKind = "press"
	VerbScroll  VerbKind = "scroll"
	VerbDrag    VerbKind = "drag"
	VerbUnknown VerbKind = "unknown"
)

// Command is the raw user input. Immutable once accepted.
type Command struct {
	Text           string `json:"command"`
	Language       string `json:"language,omitempty"`
	EnableFailsafe bool   `json:"enable_failsafe,omitempty"`
}

// Step is one ordered unit of work derived from a command. Steps are never
// mutated after the planner emits them.
type Step struct {
	Index        int      `json:"index"`
	Description  string   `json:"description"`
	TargetPhrase string   `json:"target_phrase,omitempty"`
	Verb         VerbKind `json:"verb"`
}

// Box is an axis-aligned bounding box in screen pixels.
type Box struct {
	X int `json:"x"`
	Y int `json:"y"`
	W int `json:"w"`
	H int `json:"h"`
}

func (b Box) Area() int { return b.W * b.H }

func (b Box) Contains(x, y int) bool {
	return x >= b.X && x < b.X+b.W && y >= b.Y && y < b.Y+b.H
}

// Overlap returns the area of the intersection of b and o.
func (b Box) Overlap(o Box) int {
	x1 := max(b.X, o.X)
	y1 := max(b.Y, o.Y)
	x2 := min(b.X+b.W, o.X+o.W)
	y2 := min(b.Y+b.H, o.Y+o.H)
	if x2 <= x1 || y2 <= y1 {
		return 0
	}
	return (x2 - x1) * (y2 - y1)
}

func (b Box) Center() (int, int) { return b.X + b.W/2, b.Y + b.H/2 }

// NormBox is a bounding box normalized to [0,1] screen coordinates.
type NormBox struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

func (n NormBox) Area() float64 { return n.W * n.H }

// Denormalize maps the box back to pixel space for a w×h screen.
func (n NormBox) Denormalize(w, h int) Box {
	return Box{
		X: int(n.X * float64(w)),
		Y: int(n.Y * float64(h)),
		W: int(n.W * float64(w)),
		H: int(n.H * float64(h)),
	}
}

// TextBox is one recognized text fragment with its location.
type TextBox struct {
	Text       string  `json:"text"`
	Box        Box     `json:"box"`
	Confidence float64 `json:"confidence"`
}

// UIElement is one detected interface element (button, icon, field).
type UIElement struct {
	Label      string  `json:"label"`
	Box        Box     `json:"box"`
	Confidence float64 `json:"confidence"`
}

// Perception is the payload returned for one screen observation. Degraded is
// set when the recognition call timed out or failed and the lists are
// therefore empty rather than authoritative.
type Perception struct {
	Texts    []TextBox   `json:"texts"`
	Elements []UIElement `json:"elements"`
	Degraded bool        `json:"degraded"`
}

// ResolvedTarget binds a step to an on-screen location. Found=false is a
// valid outcome, not an error; downstream consumers must handle it.
type ResolvedTarget struct {
	Found bool   `json:"found"`
	X     int    `json:"x"`
	Y     int    `json:"y"`
	Box   Box    `json:"box"`
	Label string `json:"label"`
}

// Screenshot identifies one captured frame. Immutable once captured.
type Screenshot struct {
	ID      string
	ModTime time.Time
	Img     image.Image
}

// Size returns the pixel dimensions of the frame.
func (s *Screenshot) Size() (int, int) {
	if s == nil || s.Img == nil {
		return 0, 0
	}
	b := s.Img.Bounds()
	return b.Dx(), b.Dy()
}

// ScreenshotPair holds the frames bracketing a command. Either side may be
// absent when capture failed or was skipped.
type ScreenshotPair struct {
	Before *Screenshot
	After  *Screenshot
}

func (p ScreenshotPair) Complete() bool { return p.Before != nil && p.After != nil }

// ChangeRegion is a visually changed area between the two frames of a pair.
type ChangeRegion struct {
	Box   NormBox `json:"box"`
	Score float64 `json:"score"`
}

// ExecutionResult records the outcome of one executed action. Immutable once
// recorded.
type ExecutionResult struct {
	StepIndex int       `json:"step_index"`
	Success   bool      `json:"success"`
	Error     string    `json:"error,omitempty"`
	Time      time.Time `json:"time"`
}

// ChangeTag classifies what kind of screen change a command produced.
type ChangeTag string

const (
	ChangeModal      ChangeTag = "modal"
	ChangeScroll     ChangeTag = "scroll"
	ChangeNavigation ChangeTag = "navigation"
	ChangeLocalized  ChangeTag = "localized"
	ChangeNone       ChangeTag = "none"
)

// FeedbackSummary is the spoken-language outcome of a command, with the
// classification tag that produced it.
type FeedbackSummary struct {
	Sentence string    `json:"sentence"`
	Tag      ChangeTag `json:"tag"`
}

// ActionReport is the wire form of one generated action.
type ActionReport struct {
	Description     string `json:"description"`
	Target          string `json:"target"`
	PyAutoGUICmd    string `json:"pyautogui_cmd"`
	ExecutionResult string `json:"execution_result"`
}

// StepSummary is the wire form of one step outcome.
type StepSummary struct {
	StepNumber  int    `json:"step_number"`
	Description string `json:"description"`
	Target      string `json:"target"`
	Success     bool   `json:"success"`
}

// CommandResult is the full pipeline output for one command.
type CommandResult struct {
	Status       string          `json:"status"`
	Command      string          `json:"command"`
	Steps        []string        `json:"steps"`
	Actions      []ActionReport  `json:"actions"`
	StepsSummary []StepSummary   `json:"steps_summary"`
	Summary      FeedbackSummary `json:"summary"`
}

// CanonicalRegions renders a region set as a stable string, usable as part of
// a cache key regardless of input ordering.
func CanonicalRegions(regions []Box) string {
	if len(regions) == 0 {
		return "full"
	}
	parts := make([]string, len(regions))
	for i, r := range regions {
		parts[i] = strconv.Itoa(r.X) + "," + strconv.Itoa(r.Y) + "," +
			strconv.Itoa(r.W) + "," + strconv.Itoa(r.H)
	}
	sort.Strings(parts)
	return strings.Join(parts, ";")
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
