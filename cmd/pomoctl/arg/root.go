package arg

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "pomoctl",
	Short: "pomoctl is the command line tool for pomodorod",
	Long: `pomoctl talks to the pomodorod daemon over D-Bus. You can use it
to start, stop and reset the timer, jump within the current interval,
and inspect the timer state.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
