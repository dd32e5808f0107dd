package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newHistoryCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show your recent scans",
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := api.History(cmd.Context(), limit)
			if err != nil {
				return fmt.Errorf("fetch history: %w", err)
			}

			if len(items) == 0 {
				fmt.Println("No scans yet.")
				return nil
			}

			fmt.Printf("%-25s  %-6s  %-6s  %s\n", "PLANT", "CONF", "TYPE", "SCANNED")
			fmt.Printf("%-25s  %-6s  %-6s  %s\n", "-----", "----", "----", "-------")
			for _, s := range items {
				fmt.Printf("%-25s  %5.0f%%  %-6s  %s\n",
					s.PlantName, s.Confidence*100, s.CaptureType, s.ScannedAt.Local().Format("2006-01-02 15:04"))
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of scans to show")
	return cmd
}
