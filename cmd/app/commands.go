package app

import (
	"github.com/spf13/cobra"
)

// NewRootCmd builds the spacehub command tree. Without a subcommand it serves.
func NewRootCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "spacehub",
		Short: "SpaceHub team collaboration backend",
		RunE: func(cmd *cobra.Command, args []string) error {
			return GetApp().LetsGo(configPath)
		},
		SilenceUsage: true,
	}
	cmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ./config.yaml or ./configs/config.yaml)")

	cmd.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP and websocket server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return GetApp().LetsGo(configPath)
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			return GetApp().Migrate(configPath)
		},
	})
	return cmd
}
