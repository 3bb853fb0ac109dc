package arg

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/SoarinFerret/pomodorod/internal/timer"
)

var statusJSON bool

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the current timer state",
	Run: func(cmd *cobra.Command, args []string) {
		call, err := callTimer("Status")
		if err != nil {
			log.Fatal(err)
		}

		var result string
		if err := call.Store(&result); err != nil {
			log.Fatal("Failed to decode status:", err)
		}

		if statusJSON {
			fmt.Println(result)
			return
		}

		var snap timer.Snapshot
		if err := json.Unmarshal([]byte(result), &snap); err != nil {
			log.Fatal("Failed to parse status:", err)
		}

		fmt.Printf("State:     %s\n", snap.State)
		fmt.Printf("Elapsed:   %ds / %ds\n", snap.Elapsed, snap.ElapsedLimit)
		fmt.Printf("Session:   %d / %d\n", snap.Session, snap.SessionLimit)
		fmt.Printf("Since:     %s\n", snap.StateTimestamp)
	},
}

func init() {
	statusCmd.Flags().BoolVar(&statusJSON, "json", false, "print the raw JSON snapshot")
	rootCmd.AddCommand(statusCmd)
}
