package cli

import (
	"github.com/spf13/cobra"

	"github.com/Martinez1337/go-kanban/internal/server"
)

func newServeCmd(app *App) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the JSON API over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			srv := server.New(app.Manager, app.Logger)
			return srv.Run(addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "Listen address")
	return cmd
}
