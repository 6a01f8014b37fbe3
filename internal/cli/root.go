// Package cli wires the task store behind a cobra command tree.
package cli

import (
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/Martinez1337/go-kanban/internal/manager"
)

// App carries the dependencies command handlers need.
type App struct {
	Manager manager.TaskManager
	Logger  *slog.Logger
}

// NewRootCmd builds the kanban command tree.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "kanban",
		Short:         "Kanban task store with scheduling and history",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newListCmd(app),
		newAddCmd(app),
		newDeleteCmd(app),
		newHistoryCmd(app),
		newServeCmd(app),
	)

	return root
}

// addScheduleFlags registers the flags shared by commands that accept
// a time window.
func addScheduleFlags(fs *pflag.FlagSet, start *string, minutes *int64) {
	fs.StringVar(start, "start", "", "Start time as \"15:04 02.01.2006\"")
	fs.Int64Var(minutes, "minutes", 0, "Duration in minutes")
}
