package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/minhvu/garage-tasks/internal/client"
	"github.com/minhvu/garage-tasks/internal/model"
	"github.com/minhvu/garage-tasks/internal/store"
	"github.com/minhvu/garage-tasks/internal/workflow"
)

func newTasksCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tasks",
		Short: "View and drive tasks through their lifecycle",
	}

	cmd.AddCommand(
		newTasksListCmd(a),
		newTasksShowCmd(a),
		newTasksCreateCmd(a),
		newTasksEditCmd(a),
		newTransitionCmd(a, "start", "Start working on a pending task", model.StatusInProgress),
		newTransitionCmd(a, "submit", "Submit an in-progress task for confirmation", model.StatusAwaitingConfirmation),
		newTransitionCmd(a, "confirm", "Confirm a finished task as completed (admin)", model.StatusCompleted),
		newTransitionCmd(a, "reject", "Decline an assignment or send back finished work", model.StatusRejected),
		newTasksDeleteCmd(a),
	)

	return cmd
}

// refreshTasks pulls the role-appropriate task list and rehydrates the
// local cache through the coordinator.
func (a *app) refreshTasks(ctx context.Context) ([]model.Task, error) {
	var (
		tasks []model.Task
		err   error
	)
	if a.sess.Admin() {
		tasks, err = a.client.ListTasks(ctx)
	} else {
		tasks, err = a.client.ListTasksForEmployee(ctx, a.sess.User.ID)
	}
	if err != nil {
		return nil, err
	}
	if err := a.coord.ApplyFetched(ctx, tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

func newTasksListCmd(a *app) *cobra.Command {
	var awaitingFirst bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireSession(); err != nil {
				return err
			}
			if err := a.openStore(); err != nil {
				return err
			}
			if _, err := a.refreshTasks(cmd.Context()); err != nil {
				return err
			}

			tasks, err := a.store.GetTasks(cmd.Context(), store.TaskFilter{
				SortBy: "created_at", SortDesc: true,
			})
			if err != nil {
				return err
			}

			if awaitingFirst {
				workflow.SortAwaitingFirst(tasks)
			}

			now := time.Now()
			for _, t := range tasks {
				fmt.Println(a.renderer.TaskLine(t, now))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&awaitingFirst, "awaiting-first", false,
		"pin tasks awaiting confirmation to the top")

	return cmd
}

func newTasksShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <task-id>",
		Short: "Show a task with its assignee",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireSession(); err != nil {
				return err
			}
			if err := a.openStore(); err != nil {
				return err
			}

			t, err := a.client.GetTask(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if err := a.coord.ApplyFetched(cmd.Context(), []model.Task{t}); err != nil {
				return err
			}

			labels := a.renderer.Labels()
			fmt.Println(t.Title)
			fmt.Printf("Status: %s\n", labels.Status(t.Status))
			if t.Deadline != nil {
				days, ok := workflow.RemainingDays(t.Deadline, time.Now())
				fmt.Printf("Deadline: %s (%s)\n",
					t.Deadline.Format("02/01/2006, 15:04"), labels.Deadline(days, ok))
			}
			fmt.Printf("Description: %s\n", t.Description)
			if t.Employee != nil {
				fmt.Printf("Assigned to: %s\n", t.Employee.DisplayName())
			}
			return nil
		},
	}
}

func newTasksCreateCmd(a *app) *cobra.Command {
	var title, description, employeeID, deadline string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new pending task (admin)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireAdmin(); err != nil {
				return err
			}

			req := client.CreateTaskRequest{
				Title:       title,
				Description: description,
				EmployeeID:  employeeID,
			}
			if deadline != "" {
				d, err := time.Parse("2006-01-02", deadline)
				if err != nil {
					return fmt.Errorf("invalid deadline %q (want YYYY-MM-DD)", deadline)
				}
				req.Deadline = &d
			}

			t, err := a.client.CreateTask(cmd.Context(), req)
			if err != nil {
				return err
			}
			fmt.Printf("Created task %s: %s\n", t.ID, t.Title)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "task title")
	cmd.Flags().StringVar(&description, "description", "", "task description")
	cmd.Flags().StringVar(&employeeID, "employee", "", "assigned employee id")
	cmd.Flags().StringVar(&deadline, "deadline", "", "deadline (YYYY-MM-DD)")
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("employee")

	return cmd
}

func newTasksEditCmd(a *app) *cobra.Command {
	var title, description, employeeID, deadline string

	cmd := &cobra.Command{
		Use:   "edit <task-id>",
		Short: "Edit a task's fields (admin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireAdmin(); err != nil {
				return err
			}

			current, err := a.client.GetTask(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			req := client.UpdateTaskRequest{
				Title:       current.Title,
				Description: current.Description,
				EmployeeID:  current.EmployeeID,
				Deadline:    current.Deadline,
			}
			if title != "" {
				req.Title = title
			}
			if description != "" {
				req.Description = description
			}
			if employeeID != "" {
				req.EmployeeID = employeeID
			}
			if deadline != "" {
				d, err := time.Parse("2006-01-02", deadline)
				if err != nil {
					return fmt.Errorf("invalid deadline %q (want YYYY-MM-DD)", deadline)
				}
				req.Deadline = &d
			}

			t, err := a.client.UpdateTask(cmd.Context(), args[0], req)
			if err != nil {
				return err
			}
			fmt.Printf("Updated task %s\n", t.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "new title")
	cmd.Flags().StringVar(&description, "description", "", "new description")
	cmd.Flags().StringVar(&employeeID, "employee", "", "new assigned employee id")
	cmd.Flags().StringVar(&deadline, "deadline", "", "new deadline (YYYY-MM-DD)")

	return cmd
}

// newTransitionCmd builds one lifecycle command. The observed status is
// captured from the cached row and handed to the coordinator, which
// re-validates it before persisting. A stale double-tap fails instead
// of racing.
func newTransitionCmd(a *app, use, short string, to model.Status) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <task-id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireSession(); err != nil {
				return err
			}
			if err := a.openStore(); err != nil {
				return err
			}

			id := args[0]
			cached, err := a.store.GetTaskByID(cmd.Context(), id)
			if err != nil {
				// Not cached yet; fetch and cache it first.
				t, fetchErr := a.client.GetTask(cmd.Context(), id)
				if fetchErr != nil {
					return fetchErr
				}
				if err := a.coord.ApplyFetched(cmd.Context(), []model.Task{t}); err != nil {
					return err
				}
				cached = &t
			}

			updated, err := a.coord.Apply(cmd.Context(), a.sess.User, id, cached.Status, to)
			if err != nil {
				return err
			}

			fmt.Printf("Task %s is now %s\n",
				updated.ID, a.renderer.Labels().Status(updated.Status))
			return nil
		},
	}
}

func newTasksDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <task-id>",
		Short: "Delete a task (admin, bypasses the lifecycle)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireAdmin(); err != nil {
				return err
			}
			if err := a.openStore(); err != nil {
				return err
			}
			if err := a.client.DeleteTask(cmd.Context(), args[0]); err != nil {
				return err
			}
			if err := a.store.DeleteTask(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Printf("Deleted task %s\n", args[0])
			return nil
		},
	}
}
