package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func main() {
	setupLogger(false)
	os.Exit(run(rootCmd()))
}

// run executes cmd and reports any error on its error stream. Cobra rejects
// bad args and flags before PersistentPreRun, so the error is written here.
func run(cmd *cobra.Command) int {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), "Error:", err)
		zap.L().Debug("bridgectl failed", zap.Error(err))
		return 1
	}
	return 0
}
