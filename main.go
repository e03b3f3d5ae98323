package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	os.Exit(HandleExitError(os.Stderr, NewRootCommand().Execute()))
}

func NewRootCommand() *cobra.Command {
	var databasePath string
	var listenAddr string

	command := &cobra.Command{
		Use:          "campaignsheets",
		Short:        "Sheet cell service with formula recalculation",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return RunApp(databasePath, listenAddr)
		},
	}

	command.Flags().StringVar(&databasePath, "db", envOrDefault("DATABASE_FILEPATH", "sheets.db"), "bbolt database file path")
	command.Flags().StringVar(&listenAddr, "listen", envOrDefault("LISTEN_ADDR", DefaultListenAddr), "HTTP listen address")

	return command
}

func envOrDefault(key string, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
