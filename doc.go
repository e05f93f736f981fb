// Package rbdesign is the editing core of a grid-based rigid-body assembly
// designer for [Ebitengine].
//
// A design is a set of sparse particle [Model]s on a square grid, typed by
// shared particle and body specs. The package provides the models, the
// layered editing canvas that operates on them, an ebiten host that renders
// it, and the .rbd / HOOMD XML file formats.
//
// # Quick start
//
// The simplest way to get started is [RunHost], which opens a window over an
// editing canvas:
//
//	model := rbdesign.NewModel()
//	canvas := rbdesign.NewCanvas(model, rbdesign.ModeEdit)
//	canvas.SetBrush(&rbdesign.Brush{Specs: specs, Body: body})
//	rbdesign.RunHost(canvas, rbdesign.HostConfig{Title: "rbdesign"})
//
// For full control, implement [ebiten.Game] yourself around [NewHost], or
// drive a [Canvas] directly: feed it pointer and key snapshots with
// [Canvas.FeedPointer] and [Canvas.FeedKey], call [Canvas.Update] once per
// frame, and draw [Canvas.Drawables] offset by [Canvas.Origin].
//
// # Layer stack
//
// Every canvas owns a stack of [Layer]s over one model. The bottom layer
// displays and edits the model; each editing gesture that needs staging (a
// move, a rotation, a paste, a cut) pushes a child layer holding a private
// working model. Only the top layer runs; the layers below are paused until
// the child is merged back with [Canvas.MergeTopLayer] (Return) or abandoned
// with [Canvas.CancelTopLayer] (Escape).
//
// Clicking paints with the shared [Brush]; the right button selects (Shift
// extends by box, Ctrl selects whole bodies); dragging a selection spawns a
// move layer that snaps to the grid on merge, duplicating with Shift held.
// Ctrl+C, Ctrl+X, and Ctrl+V copy, cut, and paste through the shared
// clipboard; Ctrl+R rotates the selection a quarter turn.
//
// Canvases publish model, brush, and clipboard changes on a [Hub]; canvases
// sharing a hub stay in sync, which is how thumbnail views follow the editor.
//
// # Files
//
// [ReadDesign] and [WriteDesign] load and save the native .rbd XML snapshot
// of a [Design]; [ExportHOOMD] stamps model copies onto a lattice and writes
// a HOOMD XML configuration for simulation.
//
// [Ebitengine]: https://ebitengine.org
package rbdesign
