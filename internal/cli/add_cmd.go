package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Martinez1337/go-kanban/internal/domain"
)

const inputTimeLayout = "15:04 02.01.2006"

// buildTask assembles a task from command flags.
func buildTask(name, description, start string, minutes int64) (*domain.Task, error) {
	t := &domain.Task{
		Name:        name,
		Description: description,
		Status:      domain.StatusNew,
		Duration:    time.Duration(minutes) * time.Minute,
	}
	if start != "" {
		st, err := time.Parse(inputTimeLayout, start)
		if err != nil {
			return nil, fmt.Errorf("bad --start value %q, want %q", start, inputTimeLayout)
		}
		t.StartTime = &st
	}
	return t, nil
}

func newAddCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a task, epic or subtask",
	}

	cmd.AddCommand(
		newAddTaskCmd(app),
		newAddEpicCmd(app),
		newAddSubtaskCmd(app),
	)

	return cmd
}

func newAddTaskCmd(app *App) *cobra.Command {
	var description, start string
	var minutes int64

	cmd := &cobra.Command{
		Use:   "task <name>",
		Short: "Add a plain task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			task, err := buildTask(args[0], description, start, minutes)
			if err != nil {
				return err
			}
			id, err := app.Manager.CreateTask(task)
			if err != nil {
				return err
			}
			fmt.Printf("Created task #%d\n", id)
			return nil
		},
	}

	cmd.Flags().StringVar(&description, "description", "", "Task description")
	addScheduleFlags(cmd.Flags(), &start, &minutes)
	return cmd
}

func newAddEpicCmd(app *App) *cobra.Command {
	var description string

	cmd := &cobra.Command{
		Use:   "epic <name>",
		Short: "Add an epic",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := app.Manager.CreateEpic(domain.NewEpic(0, args[0], description))
			if err != nil {
				return err
			}
			fmt.Printf("Created epic #%d\n", id)
			return nil
		},
	}

	cmd.Flags().StringVar(&description, "description", "", "Epic description")
	return cmd
}

func newAddSubtaskCmd(app *App) *cobra.Command {
	var description, start string
	var minutes int64
	var epicID int

	cmd := &cobra.Command{
		Use:   "subtask <name>",
		Short: "Add a subtask to an epic",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			base, err := buildTask(args[0], description, start, minutes)
			if err != nil {
				return err
			}
			id, err := app.Manager.CreateSubtask(&domain.Subtask{Task: *base, EpicID: epicID})
			if err != nil {
				return err
			}
			fmt.Printf("Created subtask #%d in epic #%d\n", id, epicID)
			return nil
		},
	}

	cmd.Flags().StringVar(&description, "description", "", "Subtask description")
	cmd.Flags().IntVar(&epicID, "epic", 0, "Parent epic id")
	addScheduleFlags(cmd.Flags(), &start, &minutes)
	_ = cmd.MarkFlagRequired("epic")
	return cmd
}
