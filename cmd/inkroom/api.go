package main

import (
	"github.com/spf13/cobra"

	"github.com/inkroomhq/inkroom/internal/server/endpoints"
)

var serverURL string

var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "Commands that call the running server",
	Long: `API commands call the running Inkroom server via HTTP.

These commands require a running server (inkroom serve).
Use --server to specify a custom server URL.

Examples:
  inkroom api health                  # Check server health
  inkroom api book get                # Show the current book
  inkroom api sections list           # List sections
  inkroom api assist toc              # Ask the model for a table of contents`,
}

var bookCmd = &cobra.Command{
	Use:   "book",
	Short: "Book metadata commands",
}

var sectionsCmd = &cobra.Command{
	Use:   "sections",
	Short: "Section editing commands",
}

var imagesCmd = &cobra.Command{
	Use:   "images",
	Short: "Section image commands",
}

var assistCmd = &cobra.Command{
	Use:   "assist",
	Short: "Model assist commands",
}

var callsCmd = &cobra.Command{
	Use:   "calls",
	Short: "Model call history commands",
}

// getServerURL returns the server URL at runtime (after flag parsing).
func getServerURL() string {
	return serverURL
}

func init() {
	// Add --server flag to api command (persistent so all subcommands inherit it)
	apiCmd.PersistentFlags().StringVar(
		&serverURL, "server", "http://localhost:8080", "Server URL",
	)

	// Health endpoints at top level of api
	apiCmd.AddCommand((&endpoints.HealthEndpoint{}).Command(getServerURL))
	apiCmd.AddCommand((&endpoints.StatusEndpoint{}).Command(getServerURL))

	// Book as subcommand group
	bookCmd.AddCommand((&endpoints.GetBookEndpoint{}).Command(getServerURL))
	bookCmd.AddCommand((&endpoints.UpdateBookEndpoint{}).Command(getServerURL))
	bookCmd.AddCommand((&endpoints.SaveStateEndpoint{}).Command(getServerURL))
	bookCmd.AddCommand((&endpoints.ApplyTOCEndpoint{}).Command(getServerURL))

	// Sections as subcommand group
	sectionsCmd.AddCommand((&endpoints.ListSectionsEndpoint{}).Command(getServerURL))
	sectionsCmd.AddCommand((&endpoints.AddSectionEndpoint{}).Command(getServerURL))
	sectionsCmd.AddCommand((&endpoints.ReorderSectionsEndpoint{}).Command(getServerURL))
	sectionsCmd.AddCommand((&endpoints.ActiveSectionEndpoint{}).Command(getServerURL))
	sectionsCmd.AddCommand((&endpoints.ActivateSectionEndpoint{}).Command(getServerURL))
	sectionsCmd.AddCommand((&endpoints.UpdateActiveSectionEndpoint{}).Command(getServerURL))
	sectionsCmd.AddCommand((&endpoints.InsertTextEndpoint{}).Command(getServerURL))

	// Images as subcommand group
	imagesCmd.AddCommand((&endpoints.AttachImageEndpoint{}).Command(getServerURL))
	imagesCmd.AddCommand((&endpoints.ResizeImageEndpoint{}).Command(getServerURL))
	imagesCmd.AddCommand((&endpoints.DeleteImageEndpoint{}).Command(getServerURL))

	// Assist as subcommand group
	assistCmd.AddCommand((&endpoints.SuggestTOCEndpoint{}).Command(getServerURL))
	assistCmd.AddCommand((&endpoints.SuggestionsEndpoint{}).Command(getServerURL))
	assistCmd.AddCommand((&endpoints.VocabularyEndpoint{}).Command(getServerURL))

	// Call history as subcommand group
	callsCmd.AddCommand((&endpoints.ListCallsEndpoint{}).Command(getServerURL))
	callsCmd.AddCommand((&endpoints.GetCallEndpoint{}).Command(getServerURL))

	apiCmd.AddCommand(bookCmd)
	apiCmd.AddCommand(sectionsCmd)
	apiCmd.AddCommand(imagesCmd)
	apiCmd.AddCommand(assistCmd)
	apiCmd.AddCommand(callsCmd)
	rootCmd.AddCommand(apiCmd)
}
