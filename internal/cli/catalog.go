package cli

import (
	"fmt"
	"strings"

	"knowyourplant/internal/projection"

	"github.com/spf13/cobra"
)

func newCatalogCmd() *cobra.Command {
	var (
		search    string
		typ       string
		sortKey   string
		favorites []int64
	)

	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Browse the reference catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			q := projection.Query{
				Search: search,
				Type:   projection.TypeFilter(typ),
				Sort:   projection.SortKey(sortKey),
			}
			if len(favorites) > 0 {
				q.Scope = projection.ScopeFavorites
			}

			items, err := api.Catalog(cmd.Context(), q, favorites)
			if err != nil {
				return fmt.Errorf("fetch catalog: %w", err)
			}

			if len(items) == 0 {
				fmt.Println("No matching plants.")
				return nil
			}

			fmt.Printf("%-3s  %-20s  %-28s  %-6s  %-6s  %s\n", "ID", "NAME", "SCIENTIFIC NAME", "CONF", "TYPE", "TAGS")
			for _, e := range items {
				toxic := ""
				if e.IsToxic {
					toxic = " [toxic]"
				}
				fmt.Printf("%-3d  %-20s  %-28s  %5.0f%%  %-6s  %s%s\n",
					e.ID, e.Name, e.ScientificName, e.Confidence*100, e.CaptureType, strings.Join(e.Tags, ", "), toxic)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&search, "search", "", "Match against common or scientific name")
	cmd.Flags().StringVar(&typ, "type", "all", "Filter by capture type (all, image, live)")
	cmd.Flags().StringVar(&sortKey, "sort", "date", "Sort order (date, confidence, name)")
	cmd.Flags().Int64SliceVar(&favorites, "favorites", nil, "Restrict to these catalog ids")
	return cmd
}
