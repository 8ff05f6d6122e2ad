package main

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "newsdigest",
	Short: "Per-domain news digests with LLM summaries",
	Long: `newsdigest fetches news from NewsAPI and domain RSS feeds,
filters it for relevance with a local LLM, and prints or emails
bullet-point summaries per domain (finance, technology, sports).`,
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(serveCmd)
}
