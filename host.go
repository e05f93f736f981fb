package rbdesign

import (
	"fmt"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const (
	defaultHostWidth  = 960
	defaultHostHeight = 720

	// One wheel notch scrolls one cell, or scales zoom by this factor with
	// Ctrl held.
	zoomWheelFactor = 1.1
)

// HostConfig configures RunHost.
type HostConfig struct {
	Title      string
	Width      int
	Height     int
	Background Color
	ShowStats  bool // overlay FPS and stack depth
}

// Host adapts a Canvas to ebiten.Game: every tick it polls the mouse,
// wheel, and keyboard, feeds the canvas, and advances it; every frame it
// draws the canvas's drawables. Create one with NewHost and pass it to
// ebiten.RunGame, or use RunHost.
type Host struct {
	canvas     *Canvas
	background Color
	showStats  bool
	width      int
	height     int
}

// NewHost returns a host driving the given canvas.
func NewHost(canvas *Canvas, cfg HostConfig) *Host {
	if cfg.Width <= 0 {
		cfg.Width = defaultHostWidth
	}
	if cfg.Height <= 0 {
		cfg.Height = defaultHostHeight
	}
	if cfg.Background == (Color{}) {
		cfg.Background = ColorWhite
	}
	h := &Host{
		canvas:     canvas,
		background: cfg.Background,
		showStats:  cfg.ShowStats,
		width:      cfg.Width,
		height:     cfg.Height,
	}
	canvas.Resize(float64(cfg.Width), float64(cfg.Height))
	return h
}

// RunHost opens a resizable window and runs the canvas until it is closed.
func RunHost(canvas *Canvas, cfg HostConfig) error {
	h := NewHost(canvas, cfg)
	if cfg.Title == "" {
		cfg.Title = "rbdesign"
	}
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(h.width, h.height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	return ebiten.RunGame(h)
}

// Update implements ebiten.Game.
func (h *Host) Update() error {
	mods := readModifiers()
	h.feedKeys(mods)
	h.feedWheel(mods)
	if !h.canvas.Injecting() {
		h.feedMouse(mods)
	}

	dt := float32(1.0 / float64(ebiten.TPS()))
	h.canvas.Update(dt)
	return nil
}

// hostKeys maps the ebiten keys the editor reacts to onto canvas keys.
var hostKeys = [...]struct {
	in  ebiten.Key
	out Key
}{
	{ebiten.KeyEnter, KeyReturn},
	{ebiten.KeyNumpadEnter, KeyReturn},
	{ebiten.KeyEscape, KeyEscape},
	{ebiten.KeyA, KeyA},
	{ebiten.KeyC, KeyC},
	{ebiten.KeyX, KeyX},
	{ebiten.KeyV, KeyV},
	{ebiten.KeyR, KeyR},
}

func (h *Host) feedKeys(mods KeyModifiers) {
	for _, k := range hostKeys {
		if inpututil.IsKeyJustPressed(k.in) {
			h.canvas.FeedKey(k.out, mods)
		}
	}
	// Shift is fed on both edges; a move in progress toggles duplication
	// from the modifier state.
	for _, k := range [...]ebiten.Key{ebiten.KeyShiftLeft, ebiten.KeyShiftRight} {
		if inpututil.IsKeyJustPressed(k) || inpututil.IsKeyJustReleased(k) {
			h.canvas.FeedKey(KeyShift, mods)
			break
		}
	}
}

func (h *Host) feedWheel(mods KeyModifiers) {
	wx, wy := ebiten.Wheel()
	if wx == 0 && wy == 0 {
		return
	}
	if mods&ModCtrl != 0 {
		h.canvas.ZoomBy(math.Pow(zoomWheelFactor, wy))
		return
	}
	d := h.canvas.Diameter()
	h.canvas.ScrollBy(-wx*d, -wy*d)
}

func (h *Host) feedMouse(mods KeyModifiers) {
	mx, my := ebiten.CursorPosition()

	var pressed bool
	var button MouseButton
	left := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	right := ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight)
	middle := ebiten.IsMouseButtonPressed(ebiten.MouseButtonMiddle)

	if left || right || middle {
		pressed = true
		if left {
			button = MouseButtonLeft
		} else if right {
			button = MouseButtonRight
		} else {
			button = MouseButtonMiddle
		}
	}

	h.canvas.FeedPointer(float64(mx), float64(my), pressed, button, mods)
}

// Draw implements ebiten.Game.
func (h *Host) Draw(screen *ebiten.Image) {
	screen.Fill(h.background.RGBA())

	origin := h.canvas.Origin()
	for _, dp := range h.canvas.Drawables() {
		x := float32(dp.Rect.MinX - origin.X)
		y := float32(dp.Rect.MinY - origin.Y)
		w := float32(dp.Rect.Width())
		ht := float32(dp.Rect.Height())
		vector.DrawFilledRect(screen, x, y, w, ht, dp.Fill.RGBA(), false)
		vector.StrokeRect(screen, x, y, w, ht, float32(dp.Width), dp.Outline.RGBA(), false)
	}

	if h.showStats {
		ebitenutil.DebugPrint(screen, fmt.Sprintf(
			"FPS: %.1f  TPS: %.1f\nlayers: %d  top: %s  zoom: %.2f",
			ebiten.ActualFPS(), ebiten.ActualTPS(),
			h.canvas.StackDepth(), h.canvas.TopLayer().Kind(), h.canvas.Zoom()))
	}
}

// Layout implements ebiten.Game; the canvas viewport follows the window.
func (h *Host) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != h.width || outsideHeight != h.height {
		h.width, h.height = outsideWidth, outsideHeight
		h.canvas.Resize(float64(outsideWidth), float64(outsideHeight))
	}
	return outsideWidth, outsideHeight
}

// readModifiers polls the current keyboard modifier state.
func readModifiers() KeyModifiers {
	var mods KeyModifiers
	if ebiten.IsKeyPressed(ebiten.KeyShift) || ebiten.IsKeyPressed(ebiten.KeyShiftLeft) || ebiten.IsKeyPressed(ebiten.KeyShiftRight) {
		mods |= ModShift
	}
	if ebiten.IsKeyPressed(ebiten.KeyControl) || ebiten.IsKeyPressed(ebiten.KeyControlLeft) || ebiten.IsKeyPressed(ebiten.KeyControlRight) {
		mods |= ModCtrl
	}
	if ebiten.IsKeyPressed(ebiten.KeyAlt) || ebiten.IsKeyPressed(ebiten.KeyAltLeft) || ebiten.IsKeyPressed(ebiten.KeyAltRight) {
		mods |= ModAlt
	}
	if ebiten.IsKeyPressed(ebiten.KeyMeta) || ebiten.IsKeyPressed(ebiten.KeyMetaLeft) || ebiten.IsKeyPressed(ebiten.KeyMetaRight) {
		mods |= ModMeta
	}
	return mods
}
