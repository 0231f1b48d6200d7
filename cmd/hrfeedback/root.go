package main

import "github.com/spf13/cobra"

var rootCmd = &cobra.Command{
	Use:           "hrfeedback",
	Short:         "HR feedback and property listings API.",
	SilenceErrors: true,
	SilenceUsage:  true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(serveCmd, bootstrapAdminCmd)
}
