package main

import (
	"github.com/spf13/cobra"

	"github.com/inkroomhq/inkroom/internal/api"
	"github.com/inkroomhq/inkroom/version"
)

var (
	cfgFile      string
	outputFormat string
)

var rootCmd = &cobra.Command{
	Use:   "inkroom",
	Short: "Book writing studio with a model-assisted editor",
	Long: `Inkroom is a writing studio for drafting books chapter by chapter,
with a generative model on hand for outlining and prose.

The editor provides:
  - A sectioned book document with drag reordering and inline images
  - Model-suggested tables of contents with a safe offline fallback
  - Persona-steered writing suggestions for the active chapter
  - Vocabulary recommendations for a described thought or feeling`,
	Version: version.GitRelease,
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile, "config", "", "config file (default: ./config.yaml or ~/.inkroom/config.yaml)",
	)
	rootCmd.PersistentFlags().StringVarP(
		&outputFormat, "output", "o", "yaml", "output format: yaml or json",
	)

	// Set output format before any command runs
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		api.SetOutputFormat(outputFormat)
	}

	rootCmd.AddCommand(versionCmd)
}
