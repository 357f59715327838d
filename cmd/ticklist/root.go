package main

import (
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

var rootCmd = &cobra.Command{
	Use:     "ticklist",
	Short:   "Multi-user todo list web application",
	Long:    "ticklist - a multi-user todo list web application with an optimistic UI:\nevery mutation is predicted locally and reconciled against the store.",
	Version: version,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
