package cmd

import (
	"github.com/spf13/cobra"

	"github.com/alexiusacademia/godiag/internal/render"
)

var axialCmd = &cobra.Command{
	Use:   "axial",
	Short: "Render the axial force diagram",
	Long: `Render the axial force distribution of every member, drawn as a
filled envelope offset from the member line and annotated with end and
peak values.

Example:
  godiag diagram axial -m model.json -o axial.png`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDiagram(render.Axial, 0)
	},
}

var shearCmd = &cobra.Command{
	Use:   "shear",
	Short: "Render the shear force diagram",
	Long: `Render the shear force distribution of every member. When no
distributed load is reported, an equivalent uniform load is derived from
the end-shear difference.

Example:
  godiag diagram shear -m model.json -o shear.png`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDiagram(render.Shear, 0)
	},
}

var momentCmd = &cobra.Command{
	Use:   "moment",
	Short: "Render the bending moment diagram",
	Long: `Render the bending moment distribution of every member, drawn on
the tension side. The curve follows the uniform-load closed form and is
corrected linearly to land on the reported end moments.

Example:
  godiag diagram moment -m model.json -o moment.png`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDiagram(render.Moment, 0)
	},
}

var ratioCmd = &cobra.Command{
	Use:   "ratio",
	Short: "Render the capacity-ratio diagram",
	Long: `Render the section capacity-ratio envelope of every member. The
fill color reports the governing check: green below 0.5, shading through
yellow and orange, red at and above 1.0 (section fails).

Example:
  godiag diagram ratio -m model.json -o ratio.png`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDiagram(render.Ratio, 0)
	},
}

func init() {
	diagramCmd.AddCommand(axialCmd)
	diagramCmd.AddCommand(shearCmd)
	diagramCmd.AddCommand(momentCmd)
	diagramCmd.AddCommand(ratioCmd)
}
