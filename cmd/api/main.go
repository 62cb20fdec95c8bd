package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/healthhelper/core/cmd/api/commands"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "healthhelper",
		Short: "Health Helper API Server",
		Long:  `Health Helper is a demo health companion service: symptom lookups, doctor listings, emergency numbers, health tips and a medication/water reminder scheduler.`,
	}

	rootCmd.AddCommand(commands.NewServeCommand())
	rootCmd.AddCommand(commands.NewVersionCommand())

	if err := rootCmd.Execute(); err != nil {
		log.Printf("Command execution failed: %v", err)
		os.Exit(1)
	}
}
