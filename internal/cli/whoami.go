package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in account",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := api.Restore(cmd.Context(), sessions)
			if err != nil {
				return fmt.Errorf("check session: %w", err)
			}
			if p == nil {
				fmt.Println("Not signed in. Run `plantscan login`.")
				return nil
			}
			fmt.Printf("%s <%s>\n", p.Name, p.Email)
			return nil
		},
	}
}
