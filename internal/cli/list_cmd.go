package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Martinez1337/go-kanban/internal/cli/formatter"
)

func newListCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored items",
	}

	cmd.AddCommand(
		newListTasksCmd(app),
		newListEpicsCmd(app),
		newListSubtasksCmd(app),
		newListPrioritizedCmd(app),
	)

	return cmd
}

func newListTasksCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "tasks",
		Short: "List plain tasks",
		RunE: func(cmd *cobra.Command, args []string) error {
			tasks := app.Manager.ListTasks()
			if len(tasks) == 0 {
				fmt.Println("No tasks.")
				return nil
			}
			fmt.Println(formatter.Header("tasks"))
			for _, t := range tasks {
				fmt.Println(formatter.TaskLine(t))
			}
			return nil
		},
	}
}

func newListEpicsCmd(app *App) *cobra.Command {
	var withSubtasks bool

	cmd := &cobra.Command{
		Use:   "epics",
		Short: "List epics with their aggregate state",
		RunE: func(cmd *cobra.Command, args []string) error {
			epics := app.Manager.ListEpics()
			if len(epics) == 0 {
				fmt.Println("No epics.")
				return nil
			}
			fmt.Println(formatter.Header("epics"))
			for _, e := range epics {
				fmt.Println(formatter.EpicBlock(e))
				if !withSubtasks {
					continue
				}
				subs, err := app.Manager.ListEpicSubtasks(e.ID)
				if err != nil {
					return err
				}
				for _, s := range subs {
					fmt.Println("    " + formatter.TaskLine(&s.Task))
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&withSubtasks, "subtasks", false, "Show each epic's subtasks inline")
	return cmd
}

func newListSubtasksCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "subtasks",
		Short: "List subtasks across all epics",
		RunE: func(cmd *cobra.Command, args []string) error {
			subs := app.Manager.ListSubtasks()
			if len(subs) == 0 {
				fmt.Println("No subtasks.")
				return nil
			}
			fmt.Println(formatter.Header("subtasks"))
			for _, s := range subs {
				fmt.Println(formatter.SubtaskLine(s))
			}
			return nil
		},
	}
}

func newListPrioritizedCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "prioritized",
		Short: "List scheduled items ordered by start time",
		RunE: func(cmd *cobra.Command, args []string) error {
			items := app.Manager.ListPrioritized()
			if len(items) == 0 {
				fmt.Println("Nothing scheduled.")
				return nil
			}
			fmt.Println(formatter.Header("schedule"))
			for _, t := range items {
				fmt.Println(formatter.TaskLine(t))
			}
			return nil
		},
	}
}
