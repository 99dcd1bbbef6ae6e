package cmd

import (
	"github.com/khrees2412/talentmatch/internal/server"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the matching and assessment HTTP API",
	Example: `  talentmatch serve
  talentmatch serve --addr :9090 --json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		application, err := appFrom(cmd)
		if err != nil {
			return err
		}

		addr, _ := cmd.Flags().GetString("addr")
		if addr == "" {
			addr = application.Config.Server.Addr
		}
		return server.New(application).Run(cmd.Context(), addr)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("addr", "", "Listen address (default from server.addr)")
}
