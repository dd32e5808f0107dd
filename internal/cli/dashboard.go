package cli

import (
	"fmt"

	"knowyourplant/internal/domain"
	"knowyourplant/internal/projection"

	"github.com/spf13/cobra"
)

func newDashboardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Show catalog summary cards",
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := api.Catalog(cmd.Context(), projection.Query{Sort: projection.SortConfidence}, nil)
			if err != nil {
				return fmt.Errorf("fetch catalog: %w", err)
			}
			stats := projection.Summarize(entries)

			fmt.Printf("Total scans:     %d\n", stats.Total)
			fmt.Printf("Avg confidence:  %.0f%%\n", stats.AvgConfidence*100)
			fmt.Printf("Live scans:      %d\n", stats.LiveScans)
			fmt.Printf("Toxic found:     %d\n", stats.ToxicFound)

			if len(entries) > 0 {
				fmt.Println("\nTop matches:")
				top := entries
				if len(top) > 3 {
					top = top[:3]
				}
				for _, e := range top {
					fmt.Printf("  %-20s %3.0f%% (%s)\n", e.Name, e.Confidence*100, domain.ConfidenceBand(e.Confidence))
				}
			}
			return nil
		},
	}
}
