package arg

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset the session count and restart the timer",
	Run: func(cmd *cobra.Command, args []string) {
		if _, err := callTimer("Reset"); err != nil {
			log.Fatal(err)
		}
		fmt.Println("Timer reset")
	},
}

func init() {
	rootCmd.AddCommand(resetCmd)
}
