package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "splash",
	Short: "A GPU-accelerated splash cursor overlay",
	Long: `splash draws a stream of colored, velocity-scaled glow splats that
follow the pointer across a transparent fullscreen overlay.`,
	Run: Run,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
