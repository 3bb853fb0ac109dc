package arg

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"
)

var stopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop the timer",
	Run: func(cmd *cobra.Command, args []string) {
		if _, err := callTimer("Stop"); err != nil {
			log.Fatal(err)
		}
		fmt.Println("Timer stopped")
	},
}

func init() {
	rootCmd.AddCommand(stopCmd)
}
