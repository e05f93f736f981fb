package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/ncruces/zenity"
	"github.com/spf13/cobra"

	"github.com/jdaaph/rbdesign"
)

var editCmd = &cobra.Command{
	Use:   "edit [design.rbd]",
	Short: "Open the editor window",
	Long: `Open the interactive editor, optionally loading an existing design.

Controls:
  left drag              paint with the brush, or move the selection
  right click / drag     select a particle, or box-select (hold Ctrl for the whole body)
  Return / Escape        merge / cancel the running operation
  Ctrl+A C X V R         select all, copy, cut, paste, rotate
  1-9 / 0                pick the brush by specs slot / erase
  Ctrl+S / Ctrl+O        save / open a .rbd design
  Ctrl+E                 export a HOOMD XML configuration`,
	Args: cobra.MaximumNArgs(1),
	RunE: runEdit,
}

func init() {
	rootCmd.AddCommand(editCmd)
}

func runEdit(cmd *cobra.Command, args []string) error {
	var (
		design *rbdesign.Design
		path   string
		err    error
	)
	if len(args) == 1 {
		path = args[0]
		design, err = loadDesign(path)
		if err != nil {
			return err
		}
	} else {
		design = seedDesign()
	}
	if len(design.Models()) == 0 {
		design.NewModel()
	}

	canvas := rbdesign.NewCanvas(design.Models()[0], rbdesign.ModeEdit)
	canvas.SetDebug(debugMode)

	app := &editorApp{
		design: design,
		canvas: canvas,
		host: rbdesign.NewHost(canvas, rbdesign.HostConfig{
			Width:     1024,
			Height:    768,
			ShowStats: debugMode,
		}),
		path: path,
	}
	app.selectBrush(1)

	ebiten.SetWindowTitle(app.title())
	ebiten.SetWindowSize(1024, 768)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	return ebiten.RunGame(app)
}

// seedDesign builds a small starter palette so painting works immediately.
func seedDesign() *rbdesign.Design {
	d := rbdesign.NewDesign()
	d.NewModel()
	blue, _ := rbdesign.ParseHexColor("#3C78D8")
	red, _ := rbdesign.ParseHexColor("#D85C3C")
	dark, _ := rbdesign.ParseHexColor("#222222")
	grey, _ := rbdesign.ParseHexColor("#666666")
	d.AddParticleSpecs("A", blue)
	d.AddParticleSpecs("B", red)
	d.AddBodySpecs(dark)
	d.AddBodySpecs(grey)
	return d
}

func loadDesign(path string) (*rbdesign.Design, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return rbdesign.ReadDesign(f)
}

// editorApp wraps the canvas host with application keys: brush slots,
// save/open dialogs and HOOMD export.
type editorApp struct {
	design *rbdesign.Design
	canvas *rbdesign.Canvas
	host   *rbdesign.Host
	path   string
}

func (a *editorApp) title() string {
	if a.path == "" {
		return "rbdesign - untitled"
	}
	return "rbdesign - " + filepath.Base(a.path)
}

var brushKeys = [...]ebiten.Key{
	ebiten.Key0, ebiten.Key1, ebiten.Key2, ebiten.Key3, ebiten.Key4,
	ebiten.Key5, ebiten.Key6, ebiten.Key7, ebiten.Key8, ebiten.Key9,
}

func (a *editorApp) Update() error {
	ctrl := ebiten.IsKeyPressed(ebiten.KeyControl) ||
		ebiten.IsKeyPressed(ebiten.KeyControlLeft) ||
		ebiten.IsKeyPressed(ebiten.KeyControlRight)
	if ctrl {
		switch {
		case inpututil.IsKeyJustPressed(ebiten.KeyS):
			a.report(a.save())
		case inpututil.IsKeyJustPressed(ebiten.KeyO):
			a.report(a.open())
		case inpututil.IsKeyJustPressed(ebiten.KeyE):
			a.report(a.exportHOOMD())
		}
	}
	for slot, key := range brushKeys {
		if inpututil.IsKeyJustPressed(key) {
			a.selectBrush(slot)
		}
	}
	return a.host.Update()
}

func (a *editorApp) Draw(screen *ebiten.Image) {
	a.host.Draw(screen)
}

func (a *editorApp) Layout(outsideWidth, outsideHeight int) (int, int) {
	return a.host.Layout(outsideWidth, outsideHeight)
}

// report prints a dialog or file error without tearing the window down.
func (a *editorApp) report(err error) {
	if err != nil {
		fmt.Fprintln(os.Stderr, "rbdesign:", err)
	}
}

// selectBrush points the canvas brush at the given 1-based specs slot.
// Slot 0 is the eraser.
func (a *editorApp) selectBrush(slot int) {
	if slot == 0 {
		a.canvas.SetBrush(nil)
		return
	}
	specs := a.design.ParticleSpecs()
	if slot > len(specs) {
		return
	}
	brush := &rbdesign.Brush{Specs: specs[slot-1]}
	if bodies := a.design.BodySpecs(); len(bodies) > 0 {
		bi := slot - 1
		if bi >= len(bodies) {
			bi = len(bodies) - 1
		}
		brush.Body = bodies[bi]
	}
	a.canvas.SetBrush(brush)
}

func (a *editorApp) save() error {
	path := a.path
	if path == "" {
		var err error
		path, err = zenity.SelectFileSave(
			zenity.Title("Save Design"),
			zenity.ConfirmOverwrite(),
			zenity.FileFilters{{Name: "RBD design", Patterns: []string{"*.rbd"}}},
		)
		if errors.Is(err, zenity.ErrCanceled) {
			return nil
		}
		if err != nil {
			return err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := rbdesign.WriteDesign(f, a.design); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	a.path = path
	ebiten.SetWindowTitle(a.title())
	return nil
}

func (a *editorApp) open() error {
	path, err := zenity.SelectFile(
		zenity.Title("Open Design"),
		zenity.FileFilters{{Name: "RBD design", Patterns: []string{"*.rbd"}}},
	)
	if errors.Is(err, zenity.ErrCanceled) {
		return nil
	}
	if err != nil {
		return err
	}
	design, err := loadDesign(path)
	if err != nil {
		return err
	}
	if len(design.Models()) == 0 {
		design.NewModel()
	}
	a.design = design
	a.path = path
	a.canvas.SetModel(design.Models()[0])
	a.selectBrush(1)
	ebiten.SetWindowTitle(a.title())
	return nil
}

func (a *editorApp) exportHOOMD() error {
	path, err := zenity.SelectFileSave(
		zenity.Title("Export HOOMD XML"),
		zenity.ConfirmOverwrite(),
		zenity.FileFilters{{Name: "HOOMD XML", Patterns: []string{"*.xml"}}},
	)
	if errors.Is(err, zenity.ErrCanceled) {
		return nil
	}
	if err != nil {
		return err
	}
	entries := make([]rbdesign.ExportEntry, 0, len(a.design.Models()))
	for _, m := range a.design.Models() {
		if m.Len() == 0 {
			continue
		}
		entries = append(entries, rbdesign.ExportEntry{Model: m, Copies: 1})
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := rbdesign.ExportHOOMD(f, entries); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
