package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var infoCmd = &cobra.Command{
	Use:   "info design.rbd",
	Short: "Summarize a design file",
	Args:  cobra.ExactArgs(1),
	RunE:  runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) error {
	design, err := loadDesign(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("Design %s\n", args[0])
	fmt.Printf("  models:         %d\n", len(design.Models()))
	fmt.Printf("  particle specs: %d\n", len(design.ParticleSpecs()))
	fmt.Printf("  body specs:     %d\n", len(design.BodySpecs()))

	for _, s := range design.ParticleSpecs() {
		fmt.Printf("    particle %-12s %s\n", s.Name, s.Color.Hex())
	}
	for _, s := range design.BodySpecs() {
		fmt.Printf("    body %-3d %s\n", s.Index, s.Color.Hex())
	}

	for i, m := range design.Models() {
		bodies := map[int]struct{}{}
		for _, p := range m.Particles() {
			if b := p.Body(); b != nil {
				bodies[b.Index] = struct{}{}
			}
		}
		fmt.Printf("\nModel %d\n", i)
		fmt.Printf("  particles: %d\n", m.Len())
		fmt.Printf("  bodies:    %d\n", len(bodies))
		if bbox, ok := m.BBox(0); ok {
			fmt.Printf("  extent:    %dx%d cells\n", bbox.MaxX-bbox.MinX, bbox.MaxY-bbox.MinY)
		}
	}
	return nil
}
