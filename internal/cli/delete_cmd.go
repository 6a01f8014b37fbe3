package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newDeleteCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete stored items",
	}

	byID := func(short string, del func(int) error) *cobra.Command {
		return &cobra.Command{
			Use:   "<kind> <id>",
			Short: short,
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				id, err := strconv.Atoi(args[0])
				if err != nil {
					return fmt.Errorf("bad id %q", args[0])
				}
				if err := del(id); err != nil {
					return err
				}
				fmt.Printf("Deleted #%d\n", id)
				return nil
			},
		}
	}

	taskCmd := byID("Delete a task", app.Manager.DeleteTask)
	taskCmd.Use = "task <id>"
	epicCmd := byID("Delete an epic and its subtasks", app.Manager.DeleteEpic)
	epicCmd.Use = "epic <id>"
	subCmd := byID("Delete a subtask", app.Manager.DeleteSubtask)
	subCmd.Use = "subtask <id>"

	cmd.AddCommand(taskCmd, epicCmd, subCmd)
	return cmd
}
