package rbdesign

// Synthetic input: events queued here are consumed one per Update frame and
// run through the same pointer state machine as real input. Hosts should skip
// real mouse polling while Injecting reports true, so scripted input is not
// interleaved with the live pointer.

type synthKind uint8

const (
	synthPointer synthKind = iota
	synthKey
)

// syntheticEvent is a single injected pointer or key event, in viewport
// coordinates.
type syntheticEvent struct {
	kind    synthKind
	x, y    float64
	pressed bool
	button  MouseButton
	key     Key
	mods    KeyModifiers
}

// InjectPointer queues one pointer snapshot: position, held state, button,
// and modifiers. Consumed on the next Update.
func (c *Canvas) InjectPointer(x, y float64, pressed bool, button MouseButton, mods KeyModifiers) {
	c.injectQueue = append(c.injectQueue, syntheticEvent{
		kind: synthPointer,
		x:    x, y: y,
		pressed: pressed,
		button:  button,
		mods:    mods,
	})
}

// InjectKey queues one key press.
func (c *Canvas) InjectKey(key Key, mods KeyModifiers) {
	c.injectQueue = append(c.injectQueue, syntheticEvent{
		kind: synthKey,
		key:  key,
		mods: mods,
	})
}

// InjectPress queues a left-button press at the given viewport coordinates.
func (c *Canvas) InjectPress(x, y float64) {
	c.InjectPointer(x, y, true, MouseButtonLeft, 0)
}

// InjectMove queues a pointer move with the left button held. Use between
// InjectPress and InjectRelease to simulate a drag.
func (c *Canvas) InjectMove(x, y float64) {
	c.InjectPointer(x, y, true, MouseButtonLeft, 0)
}

// InjectRelease queues a pointer release at the given viewport coordinates.
func (c *Canvas) InjectRelease(x, y float64) {
	c.InjectPointer(x, y, false, MouseButtonLeft, 0)
}

// InjectClick queues a press followed by a release at the same viewport
// coordinates. Consumes two frames.
func (c *Canvas) InjectClick(x, y float64) {
	c.InjectClickButton(x, y, MouseButtonLeft, 0)
}

// InjectClickButton queues a click with an explicit button and modifiers,
// for right-button selection gestures.
func (c *Canvas) InjectClickButton(x, y float64, button MouseButton, mods KeyModifiers) {
	c.InjectPointer(x, y, true, button, mods)
	c.InjectPointer(x, y, false, button, mods)
}

// InjectDrag queues a full left-button drag: press at (fromX, fromY),
// linearly interpolated moves over frames-2 intermediate frames, and release
// at (toX, toY). The sequence consumes frames frames; the minimum is 2.
// Modifiers ride on every event, so a Shift drag duplicates.
func (c *Canvas) InjectDrag(fromX, fromY, toX, toY float64, frames int, mods KeyModifiers) {
	if frames < 2 {
		frames = 2
	}
	c.InjectPointer(fromX, fromY, true, MouseButtonLeft, mods)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		x := fromX + (toX-fromX)*t
		y := fromY + (toY-fromY)*t
		c.InjectPointer(x, y, true, MouseButtonLeft, mods)
	}
	c.InjectPointer(toX, toY, false, MouseButtonLeft, mods)
}

// Injecting reports whether queued synthetic input remains.
func (c *Canvas) Injecting() bool {
	return len(c.injectQueue) > 0
}

// processInjected pops one event from the inject queue and feeds it through
// the regular input path. Returns true if an event was consumed.
func (c *Canvas) processInjected() bool {
	if len(c.injectQueue) == 0 {
		return false
	}
	evt := c.injectQueue[0]
	copy(c.injectQueue, c.injectQueue[1:])
	c.injectQueue = c.injectQueue[:len(c.injectQueue)-1]

	switch evt.kind {
	case synthPointer:
		c.FeedPointer(evt.x, evt.y, evt.pressed, evt.button, evt.mods)
	case synthKey:
		c.FeedKey(evt.key, evt.mods)
	}
	return true
}
