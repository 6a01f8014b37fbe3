package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Martinez1337/go-kanban/internal/cli/formatter"
)

func newHistoryCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "Show recently viewed items, oldest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			entries := app.Manager.History()
			if len(entries) == 0 {
				fmt.Println("History is empty.")
				return nil
			}
			fmt.Println(formatter.Header("history"))
			for _, t := range entries {
				fmt.Println(formatter.TaskLine(t))
			}
			return nil
		},
	}
}
