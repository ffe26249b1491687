package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexiusacademia/godiag/internal/export"
	"github.com/alexiusacademia/godiag/internal/model"
	"github.com/alexiusacademia/godiag/internal/render"
)

var (
	memberModelFile string
	memberIndex     int
	memberKindName  string
	memberOutput    string
	memberASCII     bool
)

var memberCmd = &cobra.Command{
	Use:   "member",
	Short: "Export the response curve of a single member",
	Long: `Sample the response curve of one member and export it as a line
chart, or preview it directly in the terminal with --ascii.

Examples:
  # Bending moment curve of member 2 as a chart
  godiag member -m model.json --index 2 --kind moment -o m2.png

  # Quick terminal preview of the shear curve
  godiag member -m model.json --index 2 --kind shear --ascii`,
	RunE: runMember,
}

func init() {
	rootCmd.AddCommand(memberCmd)
	memberCmd.Flags().StringVarP(&memberModelFile, "model", "m", "", "Model snapshot file (json or yaml) [required]")
	memberCmd.Flags().IntVar(&memberIndex, "index", 0, "Member index")
	memberCmd.Flags().StringVarP(&memberKindName, "kind", "k", "moment", "Curve kind: axial, shear, moment or ratio")
	memberCmd.Flags().StringVarP(&memberOutput, "output", "o", "", "Output chart file (png, svg, pdf)")
	memberCmd.Flags().BoolVar(&memberASCII, "ascii", false, "Print an ASCII chart instead of writing a file")
	memberCmd.MarkFlagRequired("model")
}

func curveKind(name string) (render.Kind, error) {
	switch name {
	case "axial":
		return render.Axial, nil
	case "shear":
		return render.Shear, nil
	case "moment":
		return render.Moment, nil
	case "ratio":
		return render.Ratio, nil
	}
	return 0, fmt.Errorf("unknown curve kind %q (want axial, shear, moment or ratio)", name)
}

func runMember(cmd *cobra.Command, args []string) error {
	mdl, err := model.LoadFile(memberModelFile)
	if err != nil {
		return err
	}
	kind, err := curveKind(memberKindName)
	if err != nil {
		return err
	}

	if memberASCII {
		graph, err := export.ASCIICurve(mdl, kind, memberIndex)
		if err != nil {
			return err
		}
		fmt.Println()
		fmt.Println(graph)
		fmt.Println()
		return nil
	}

	if memberOutput == "" {
		return fmt.Errorf("either --output or --ascii is required")
	}
	if err := export.SaveCurvePlot(mdl, kind, memberIndex, memberOutput); err != nil {
		return err
	}
	fmt.Printf("Curve written to %s\n", memberOutput)
	return nil
}
