package main

import (
	"github.com/spf13/cobra"

	"chronova/pkg/logger"
)

var verboseFlag bool

var rootCmd = &cobra.Command{
	Use:          "catalogctl",
	Short:        "Seed and browse the watch catalog",
	Long:         `Load catalog fixtures into Firestore and preview the collection page from the terminal.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verboseFlag {
			logger.Init("development")
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "Log at debug level")
	rootCmd.AddCommand(browseCmd)
	rootCmd.AddCommand(seedCmd)
}
