package rbdesign

import (
	"fmt"
	"os"
	"time"
)

// debugStats holds per-flush timing and redraw metrics.
// Only populated when Canvas.debug is true.
type debugStats struct {
	scrollTime    time.Duration
	particleTime  time.Duration
	layerCount    int
	dirtyCount    int
	drawableCount int
}

// debugLog prints flush timing and redraw stats to stderr.
func (c *Canvas) debugLog(stats debugStats) {
	if !c.debug {
		return
	}
	total := stats.scrollTime + stats.particleTime
	_, _ = fmt.Fprintf(os.Stderr,
		"[rbdesign] scroll: %v | particles: %v | total: %v\n",
		stats.scrollTime, stats.particleTime, total)
	_, _ = fmt.Fprintf(os.Stderr,
		"[rbdesign] layers: %d | dirty: %d | drawables: %d\n",
		stats.layerCount, stats.dirtyCount, stats.drawableCount)
}

// debugCheckCleaned panics with a descriptive message when a cleaned layer is
// used in a stack operation. Only called when Canvas.debug is set; in release
// mode callers skip this entirely.
func debugCheckCleaned(l Layer, op string) {
	if l.Cleaned() {
		panic(fmt.Sprintf("rbdesign debug: %s on cleaned %s layer", op, l.Kind()))
	}
}

// debugCheckStackDepth warns on stderr if the layer stack exceeds the threshold.
const debugMaxStackDepth = 16

func debugCheckStackDepth(depth int) {
	if depth > debugMaxStackDepth {
		_, _ = fmt.Fprintf(os.Stderr, "[rbdesign] warning: layer stack depth %d exceeds %d\n",
			depth, debugMaxStackDepth)
	}
}

// debugCheckSingleRunning warns on stderr when more than one layer on the
// stack reports running; the stack controller keeps at most one.
func debugCheckSingleRunning(layers []Layer) {
	running := 0
	for _, l := range layers {
		if l.Running() {
			running++
		}
	}
	if running > 1 {
		_, _ = fmt.Fprintf(os.Stderr, "[rbdesign] warning: %d layers running, want at most 1\n",
			running)
	}
}
