package rbdesign

import (
	"encoding/json"
	"fmt"
	"strings"
)

// scriptStep is a single action in a JSON canvas script.
type scriptStep struct {
	Action string  `json:"action"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	FromX  float64 `json:"fromX,omitempty"`
	FromY  float64 `json:"fromY,omitempty"`
	ToX    float64 `json:"toX,omitempty"`
	ToY    float64 `json:"toY,omitempty"`
	Frames int     `json:"frames,omitempty"`
	Button string  `json:"button,omitempty"` // left (default), right, middle
	Mods   string  `json:"mods,omitempty"`   // e.g. "shift", "ctrl+shift"
	Key    string  `json:"key,omitempty"`    // return, escape, a, c, x, v, r, shift
}

// canvasScript is the top-level JSON structure for a canvas script.
type canvasScript struct {
	Steps []scriptStep `json:"steps"`
}

type scriptAction uint8

const (
	scriptClick scriptAction = iota
	scriptDrag
	scriptKey
	scriptWait
)

// resolvedStep is a scriptStep with its strings parsed, so running a loaded
// script cannot fail.
type resolvedStep struct {
	action scriptAction
	x, y   float64
	fromX  float64
	fromY  float64
	toX    float64
	toY    float64
	frames int
	button MouseButton
	mods   KeyModifiers
	key    Key
}

// ScriptRunner sequences injected input across frames, for demo recordings
// and editor integration tests. Attach to a canvas via SetScript; the canvas
// advances the runner one step per Update once pending injections drain.
type ScriptRunner struct {
	steps     []resolvedStep
	cursor    int
	waitCount int
	done      bool
}

// LoadScript parses a JSON canvas script. Every step is validated here;
// running the script cannot fail.
func LoadScript(jsonData []byte) (*ScriptRunner, error) {
	var script canvasScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("parse canvas script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse canvas script: no steps")
	}

	steps := make([]resolvedStep, len(script.Steps))
	for i, st := range script.Steps {
		r := resolvedStep{
			x: st.X, y: st.Y,
			fromX: st.FromX, fromY: st.FromY,
			toX: st.ToX, toY: st.ToY,
			frames: st.Frames,
		}
		var err error
		if r.mods, err = parseModifiers(st.Mods); err != nil {
			return nil, fmt.Errorf("parse canvas script: step %d: %w", i, err)
		}
		switch st.Action {
		case "click":
			r.action = scriptClick
			if r.button, err = parseButton(st.Button); err != nil {
				return nil, fmt.Errorf("parse canvas script: step %d: %w", i, err)
			}
		case "drag":
			r.action = scriptDrag
		case "key":
			r.action = scriptKey
			if r.key, err = parseScriptKey(st.Key); err != nil {
				return nil, fmt.Errorf("parse canvas script: step %d: %w", i, err)
			}
		case "wait":
			r.action = scriptWait
		default:
			return nil, fmt.Errorf("parse canvas script: step %d: unknown action %q", i, st.Action)
		}
		steps[i] = r
	}
	return &ScriptRunner{steps: steps}, nil
}

// SetScript attaches a script runner to the canvas. Pass nil to detach.
func (c *Canvas) SetScript(runner *ScriptRunner) {
	c.script = runner
}

// Done reports whether every step of the script has been executed.
func (r *ScriptRunner) Done() bool {
	return r.done
}

// step advances the runner by one frame. Called from Canvas.Update.
func (r *ScriptRunner) step(c *Canvas) {
	if r.done {
		return
	}
	// Let pending injections drain before advancing.
	if c.Injecting() {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++

	switch st.action {
	case scriptClick:
		c.InjectClickButton(st.x, st.y, st.button, st.mods)
	case scriptDrag:
		frames := st.frames
		if frames < 2 {
			frames = 2
		}
		c.InjectDrag(st.fromX, st.fromY, st.toX, st.toY, frames, st.mods)
	case scriptKey:
		c.InjectKey(st.key, st.mods)
	case scriptWait:
		if st.frames > 0 {
			r.waitCount = st.frames - 1 // this frame counts as one
		}
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && !c.Injecting() {
		r.done = true
	}
}

func parseButton(s string) (MouseButton, error) {
	switch s {
	case "", "left":
		return MouseButtonLeft, nil
	case "right":
		return MouseButtonRight, nil
	case "middle":
		return MouseButtonMiddle, nil
	}
	return 0, fmt.Errorf("unknown button %q", s)
}

func parseModifiers(s string) (KeyModifiers, error) {
	if s == "" {
		return 0, nil
	}
	var mods KeyModifiers
	for _, part := range strings.Split(s, "+") {
		switch strings.TrimSpace(part) {
		case "shift":
			mods |= ModShift
		case "ctrl", "control":
			mods |= ModCtrl
		case "alt":
			mods |= ModAlt
		case "meta":
			mods |= ModMeta
		default:
			return 0, fmt.Errorf("unknown modifier %q", part)
		}
	}
	return mods, nil
}

func parseScriptKey(s string) (Key, error) {
	switch s {
	case "return", "enter":
		return KeyReturn, nil
	case "escape", "esc":
		return KeyEscape, nil
	case "a":
		return KeyA, nil
	case "c":
		return KeyC, nil
	case "x":
		return KeyX, nil
	case "v":
		return KeyV, nil
	case "r":
		return KeyR, nil
	case "shift":
		return KeyShift, nil
	}
	return 0, fmt.Errorf("unknown key %q", s)
}
