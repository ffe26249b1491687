package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/alexiusacademia/godiag/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "godiag",
	Short: "Structural Diagram Renderer",
	Long: `godiag - Go Structural Diagram Renderer

A CLI tool for rendering post-processing diagrams of 3D skeletal
(beam/column) structural models.

From a solved model snapshot (nodes, members, end forces and the
displacement field) this tool renders:
  - Deformed shape with automatic display scaling
  - Axial force, shear force and bending moment distributions
  - Section capacity-ratio envelopes with status colors

Diagrams are laid out automatically across the orthogonal structural
planes that carry a response, one frame per plane coordinate.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println()
		fmt.Println("  ╔═══════════════════════════════════════════════════════════╗")
		fmt.Println("  ║                                                           ║")
		fmt.Printf("  ║   godiag v%-48s║\n", version.Version)
		fmt.Println("  ║   Go Structural Diagram Renderer                          ║")
		fmt.Println("  ║                                                           ║")
		fmt.Println("  ╚═══════════════════════════════════════════════════════════╝")
		fmt.Println()
		fmt.Println("  Render post-processing diagrams for skeletal structural models.")
		fmt.Println()
		fmt.Println("  Features:")
		fmt.Println("    • Automatic grouping into orthogonal projection frames")
		fmt.Println("    • Clip-safe display scale solving")
		fmt.Println("    • Deformed shape, axial, shear and moment diagrams")
		fmt.Println("    • Capacity-ratio envelopes with status colors")
		fmt.Println("    • PNG and SVG output, per-member curve export")
		fmt.Println()
		fmt.Println("  Use 'godiag --help' to see available commands.")
		fmt.Println()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
}
