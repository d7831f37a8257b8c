package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "stormbolt",
	Short: "Real-time procedural lightning renderer",
	Long: `stormbolt renders a user-configurable lightning bolt: a
midpoint-displacement fractal path decorated with L-system branches
and a spark particle field, drawn with OpenGL.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
