package cli

import (
	"context"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/lexdesk/claimsync/pkg/domain/model"
	"github.com/lexdesk/claimsync/pkg/domain/types"
	"github.com/lexdesk/claimsync/pkg/usecase"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

func cmdTasks() *cli.Command {
	return &cli.Command{
		Name:    "tasks",
		Aliases: []string{"t"},
		Usage:   "Work with calendar tasks",
		Commands: []*cli.Command{
			cmdTasksList(),
			cmdTasksAdd(),
			cmdTasksComplete(),
			cmdTasksReschedule(),
		},
	}
}

func cmdTasksList() *cli.Command {
	var setup clientSetup
	var filter model.TaskFilter
	var status string

	flags := setup.flags()
	flags = append(flags,
		&cli.StringFlag{Name: "from", Usage: "First date (YYYY-MM-DD)", Destination: &filter.StartDate},
		&cli.StringFlag{Name: "to", Usage: "Last date (YYYY-MM-DD)", Destination: &filter.EndDate},
		&cli.StringFlag{Name: "status", Usage: "Task status", Destination: &status},
		&cli.StringFlag{Name: "assigned-to", Usage: "Assignee user ID", Destination: &filter.AssignedTo},
	)

	return &cli.Command{
		Name:  "list",
		Usage: "List tasks",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			if status != "" {
				s, err := types.ParseTaskStatus(status)
				if err != nil {
					return goerr.Wrap(err, "invalid status")
				}
				filter.Status = s
			}

			uc, _, err := setup.start(ctx, c.Root().ErrWriter)
			if err != nil {
				return err
			}
			if err := uc.Task.Fetch(ctx, filter); err != nil {
				return err
			}

			w := tabwriter.NewWriter(c.Root().Writer, 0, 4, 2, ' ', 0)
			_, _ = fmt.Fprintln(w, "ID\tDATE\tTIME\tTYPE\tSTATUS\tASSIGNEE\tTITLE")
			for _, task := range uc.Store.Tasks() {
				_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
					task.ID, task.Date, task.StartTime, task.Type, task.Status, task.AssignedTo, task.Title)
			}
			return w.Flush()
		},
	}
}

func cmdTasksAdd() *cli.Command {
	var setup clientSetup
	var input usecase.TaskInput
	var taskType string
	var recurrence string
	var remind string
	var contactIDs []string
	var claimIDs []string

	flags := setup.flags()
	flags = append(flags,
		&cli.StringFlag{Name: "title", Usage: "Task title", Required: true, Destination: &input.Title},
		&cli.StringFlag{Name: "description", Usage: "Task description", Destination: &input.Description},
		&cli.StringFlag{Name: "type", Usage: "Task type [appointment|call|meeting|deadline|reminder|follow_up]", Value: string(types.TaskTypeReminder), Destination: &taskType},
		&cli.StringFlag{Name: "date", Usage: "Date (YYYY-MM-DD)", Required: true, Destination: &input.Date},
		&cli.StringFlag{Name: "start", Usage: "Start time (HH:MM)", Destination: &input.StartTime},
		&cli.StringFlag{Name: "end", Usage: "End time (HH:MM)", Destination: &input.EndTime},
		&cli.StringFlag{Name: "assign-to", Usage: "Assignee user ID, defaults to the acting user", Destination: &input.AssignedTo},
		&cli.StringFlag{Name: "recurring", Usage: "Recurrence [daily|weekly|monthly]", Destination: &recurrence},
		&cli.StringFlag{Name: "recurring-until", Usage: "Last date of the recurrence (YYYY-MM-DD)", Destination: &input.RecurrenceEndDate},
		&cli.StringFlag{Name: "remind", Usage: "Reminder offsets before the start, e.g. 30m,1h,2d", Destination: &remind},
		&cli.StringSliceFlag{Name: "contact", Usage: "Linked contact ID", Destination: &contactIDs},
		&cli.StringSliceFlag{Name: "claim", Usage: "Linked claim ID", Destination: &claimIDs},
	)

	return &cli.Command{
		Name:  "add",
		Usage: "Create a task",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			t, err := types.ParseTaskType(taskType)
			if err != nil {
				return goerr.Wrap(err, "invalid task type")
			}
			input.Type = t

			if recurrence != "" {
				p, err := types.ParseRecurrencePattern(recurrence)
				if err != nil {
					return goerr.Wrap(err, "invalid recurrence")
				}
				input.IsRecurring = true
				input.RecurrencePattern = p
			}

			offsets, err := parseReminderOffsets(remind)
			if err != nil {
				return err
			}
			input.Reminders = offsets
			input.ContactIDs = contactIDs
			input.ClaimIDs = claimIDs

			uc, _, err := setup.start(ctx, c.Root().Writer)
			if err != nil {
				return err
			}
			res := uc.Task.AddTask(ctx, input)
			if err := resultError(res); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(c.Root().Writer, res.ID)
			return nil
		},
	}
}

// parseReminderOffsets reads a comma separated list such as "30m,1h,2d"
func parseReminderOffsets(s string) ([]model.ReminderOffset, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}

	var offsets []model.ReminderOffset
	for _, part := range strings.Split(s, ",") {
		o, err := model.ParseReminderOffset(part)
		if err != nil {
			return nil, err
		}
		offsets = append(offsets, o)
	}
	return offsets, nil
}

func cmdTasksComplete() *cli.Command {
	var setup clientSetup

	return &cli.Command{
		Name:      "complete",
		Usage:     "Mark a task completed",
		ArgsUsage: "<task-id>",
		Flags:     setup.flags(),
		Action: func(ctx context.Context, c *cli.Command) error {
			if c.Args().Len() != 1 {
				return goerr.New("task ID is required")
			}
			uc, _, err := setup.start(ctx, c.Root().Writer)
			if err != nil {
				return err
			}
			if err := uc.Task.Fetch(ctx, model.TaskFilter{}); err != nil {
				return err
			}
			return resultError(uc.Task.CompleteTask(ctx, c.Args().First()))
		},
	}
}

func cmdTasksReschedule() *cli.Command {
	var setup clientSetup

	return &cli.Command{
		Name:      "reschedule",
		Usage:     "Move a task to a new date and optional start time",
		ArgsUsage: "<task-id> <date> [start-time]",
		Flags:     setup.flags(),
		Action: func(ctx context.Context, c *cli.Command) error {
			if c.Args().Len() < 2 || c.Args().Len() > 3 {
				return goerr.New("task ID and new date are required")
			}
			uc, _, err := setup.start(ctx, c.Root().Writer)
			if err != nil {
				return err
			}
			if err := uc.Task.Fetch(ctx, model.TaskFilter{}); err != nil {
				return err
			}

			res := uc.Task.RescheduleTask(ctx, c.Args().Get(0), c.Args().Get(1), c.Args().Get(2))
			if err := resultError(res); err != nil {
				return err
			}
			if res.NewTaskID != "" {
				_, _ = fmt.Fprintln(c.Root().Writer, res.NewTaskID)
			}
			return nil
		},
	}
}
