package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "server",
	Short: "Slack bridge: button page, webhook endpoint and todo notifications",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Load .env (ignore error in production, env vars set directly)
		_ = godotenv.Load()
	},
	RunE:         runServe,
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(newSendCmd())
}
