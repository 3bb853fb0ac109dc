package arg

import (
	"log"
	"strconv"

	"github.com/spf13/cobra"
)

var seekCmd = &cobra.Command{
	Use:   "seek <seconds>",
	Short: "Set the elapsed time within the current interval",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		seconds, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil || seconds < 0 {
			log.Fatal("seconds must be a non-negative integer")
		}
		if _, err := callTimer("Seek", seconds); err != nil {
			log.Fatal(err)
		}
	},
}

func init() {
	rootCmd.AddCommand(seekCmd)
}
