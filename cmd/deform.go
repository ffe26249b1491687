package cmd

import (
	"github.com/spf13/cobra"

	"github.com/alexiusacademia/godiag/internal/render"
)

var deformScale float64

var deformCmd = &cobra.Command{
	Use:   "deform",
	Short: "Render the deformed shape",
	Long: `Render the deformed shape of the structure from its displacement
field. The display scale is solved automatically so that the largest
deformation reads clearly without any curve leaving its frame; pass
--scale to override it with a fixed magnification.

Examples:
  # Auto-scaled deformed shape from a JSON model
  godiag diagram deform -m model.json -o deformed.png

  # Fixed 200x magnification, SVG output
  godiag diagram deform -m model.yaml --scale 200 -o deformed.svg`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDiagram(render.Deformation, deformScale)
	},
}

func init() {
	diagramCmd.AddCommand(deformCmd)
	deformCmd.Flags().Float64Var(&deformScale, "scale", 0, "Manual displacement scale (0 = solve automatically)")
}
