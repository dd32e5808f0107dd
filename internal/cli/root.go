// Package cli implements the plantscan command line frontend.
package cli

import (
	"os"

	"knowyourplant/internal/client"

	"github.com/spf13/cobra"
)

var (
	flagServer string

	api      *client.Client
	sessions *client.SessionStore
)

// defaultServer returns the default server URL, checking the
// KNOWYOURPLANT_SERVER env var first.
func defaultServer() string {
	if s := os.Getenv("KNOWYOURPLANT_SERVER"); s != "" {
		return s
	}
	return "http://localhost:8080"
}

// NewRootCmd creates the root cobra command for the plantscan CLI.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "plantscan",
		Short: "KnowYourPlant — identify plants from photos",
		Long:  "plantscan identifies plants from image files, browses the reference catalog, and keeps a scan history on a KnowYourPlant server.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			sessions, err = client.NewSessionStore("")
			if err != nil {
				return err
			}

			server := flagServer
			token, savedServer := sessions.Load()
			if !cmd.Flags().Changed("server") && savedServer != "" {
				server = savedServer
			}

			api = client.New(server)
			if token != "" {
				api.SetToken(token)
			}
			return nil
		},
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&flagServer, "server", defaultServer(), "KnowYourPlant server URL (or KNOWYOURPLANT_SERVER env)")

	root.AddCommand(
		newRegisterCmd(),
		newLoginCmd(),
		newLogoutCmd(),
		newWhoamiCmd(),
		newScanCmd(),
		newHistoryCmd(),
		newCatalogCmd(),
		newDashboardCmd(),
	)

	return root
}

// Execute runs the CLI.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
