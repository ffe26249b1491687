package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexiusacademia/godiag/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of godiag",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("godiag v%s\n", version.Version)
		fmt.Println("Structural Diagram Renderer")
		fmt.Printf("build %s (%s)\n", version.GitCommit, version.BuildTime)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
