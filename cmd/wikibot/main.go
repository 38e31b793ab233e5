// Command wikibot answers questions about the HR guidebook from an Azure AI Search index.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "wikibot",
	Short: "Ask questions about the HR guidebook",
	Long: `wikibot retrieves guidebook documents from Azure AI Search and asks a
chat model to answer from those excerpts, citing them as [1], [2].

Configuration is read from config/<ENV>.yaml (ENV defaults to "local") or,
when that file is absent, from environment variables alone.`,
	SilenceUsage: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
