package arg

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"
)

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start a pomodoro",
	Run: func(cmd *cobra.Command, args []string) {
		if _, err := callTimer("Start"); err != nil {
			log.Fatal(err)
		}
		fmt.Println("Pomodoro started")
	},
}

func init() {
	rootCmd.AddCommand(startCmd)
}
