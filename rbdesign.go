package rbdesign

// GridCoord is an integer (x, y) cell address, independent of pixel space and
// zoom. The domain is sparse and unbounded; GridCoord is used as a map key
// throughout.
type GridCoord struct {
	X, Y int
}

// Point is a position in canvas pixel space. The coordinate system has its
// origin at the top-left, with Y increasing downward.
type Point struct {
	X, Y float64
}

// Add returns the point translated by (dx, dy).
func (p Point) Add(dx, dy float64) Point {
	return Point{p.X + dx, p.Y + dy}
}

// MouseButton identifies a mouse button.
type MouseButton uint8

const (
	MouseButtonLeft   MouseButton = iota // primary (left) mouse button
	MouseButtonRight                     // secondary (right) mouse button
	MouseButtonMiddle                    // middle mouse button (scroll wheel click)
)

// KeyModifiers is a bitmask of keyboard modifier keys.
// Values can be combined with bitwise OR (e.g. ModShift | ModCtrl).
type KeyModifiers uint8

const (
	ModShift KeyModifiers = 1 << iota // Shift key
	ModCtrl                           // Control key
	ModAlt                            // Alt / Option key
	ModMeta                           // Meta / Command / Windows key
)

// Key identifies the keyboard keys the editor core reacts to. The host maps
// its toolkit's key codes onto these before dispatching.
type Key uint8

const (
	KeyNone   Key = iota // no key (zero value)
	KeyReturn            // commit the running operation layer
	KeyEscape            // cancel the running operation layer
	KeyA                 // select all (with ModCtrl)
	KeyC                 // copy selection to clipboard (with ModCtrl)
	KeyX                 // cut selection into a child layer (with ModCtrl)
	KeyV                 // paste clipboard as a child layer (with ModCtrl)
	KeyR                 // rotate 90° CCW (with ModCtrl; ModShift flips to CW)
	KeyShift             // bare modifier press/release (move layers re-read mods)
)

// ViewMode controls how a layer adjusts the canvas view on update.
type ViewMode uint8

const (
	ViewAuto   ViewMode = iota // zoom to fit and center the model (thumbnails)
	ViewScroll                 // fixed zoom; grow the scroll region to cover the model
	ViewNone                   // leave the view alone
)

// PointerEvent carries one pointer press or click in canvas pixel space.
type PointerEvent struct {
	Pos    Point
	Button MouseButton
	Mods   KeyModifiers
}

// DragEvent carries pointer motion while a button is held. Delta is the
// total offset from Start, in pixels, not a per-frame increment.
type DragEvent struct {
	Pos    Point
	Start  Point
	Delta  Point
	Mods   KeyModifiers
}

// KeyEvent carries one key press.
type KeyEvent struct {
	Key  Key
	Mods KeyModifiers
}

// DrawParams is the drawable state of one shadow entity, in canvas pixel
// space. The host renders each as a primitive (circle, square — the contract
// is shape-agnostic) clipped to Rect.
type DrawParams struct {
	Rect    PixelBBox
	Fill    Color
	Outline Color
	Width   float64
	Hidden  bool
}
