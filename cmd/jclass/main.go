package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"

	_ "github.com/tliron/commonlog/simple"
)

func main() {
	var verbosity int

	rootCmd := &cobra.Command{
		Use:   "jclass",
		Short: "Inspect JVM class files",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			commonlog.Configure(verbosity, nil)
		},
	}
	rootCmd.PersistentFlags().IntVarP(&verbosity, "verbose", "v", 0, "log verbosity")

	rootCmd.AddCommand(newDumpCmd())
	rootCmd.AddCommand(newConstantsCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
