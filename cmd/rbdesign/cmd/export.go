package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/jdaaph/rbdesign"
)

var (
	exportOut    string
	exportCopies int
)

var exportCmd = &cobra.Command{
	Use:   "export -o out.xml [--copies N] design.rbd",
	Short: "Export a design as a HOOMD XML configuration",
	Long: `Export every non-empty model of a design as a HOOMD XML initial
configuration. Copies of each model are laid out on a lattice with
enough spacing that no two bodies overlap.`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "output path for the HOOMD XML")
	exportCmd.Flags().IntVar(&exportCopies, "copies", 1, "copies of every model to place")
	exportCmd.MarkFlagRequired("out")
}

func runExport(cmd *cobra.Command, args []string) error {
	design, err := loadDesign(args[0])
	if err != nil {
		return err
	}
	entries := make([]rbdesign.ExportEntry, 0, len(design.Models()))
	for _, m := range design.Models() {
		if m.Len() == 0 {
			continue
		}
		entries = append(entries, rbdesign.ExportEntry{Model: m, Copies: exportCopies})
	}
	f, err := os.Create(exportOut)
	if err != nil {
		return err
	}
	if err := rbdesign.ExportHOOMD(f, entries); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
