package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"smarttodo-backend/internal/models"
)

func taskCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Manage tasks",
	}
	cmd.AddCommand(taskAddCmd())
	cmd.AddCommand(taskListCmd())
	cmd.AddCommand(taskStatusCmd())
	cmd.AddCommand(taskRemoveCmd())
	return cmd
}

func taskAddCmd() *cobra.Command {
	var (
		description string
		deadline    string
		category    string
	)
	cmd := &cobra.Command{
		Use:   "add [title]",
		Short: "Create a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.Close()
			ctx := cmd.Context()

			t := models.Task{
				UserID:      userID,
				Title:       args[0],
				Description: description,
			}
			if deadline != "" {
				d, err := time.Parse("2006-01-02", deadline)
				if err != nil {
					return fmt.Errorf("deadline must be YYYY-MM-DD: %w", err)
				}
				t.Deadline = &d
			}
			if category != "" {
				cat, err := a.store.GetOrCreateCategory(ctx, userID, category)
				if err != nil {
					return err
				}
				t.CategoryID = &cat.ID
			}

			created, err := a.store.CreateTask(ctx, t)
			if err != nil {
				return err
			}
			fmt.Printf("created task %d: %s\n", created.ID, created.Title)
			return nil
		},
	}
	cmd.Flags().StringVarP(&description, "description", "d", "", "task description")
	cmd.Flags().StringVar(&deadline, "deadline", "", "deadline (YYYY-MM-DD)")
	cmd.Flags().StringVarP(&category, "category", "c", "", "category name")
	return cmd
}

func taskListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List tasks, highest priority first",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.Close()

			tasks, err := a.store.ListTasks(cmd.Context(), userID)
			if err != nil {
				return err
			}
			if len(tasks) == 0 {
				fmt.Println("no tasks")
				return nil
			}
			for _, t := range tasks {
				cat := t.CategoryName
				if cat == "" {
					cat = "-"
				}
				fmt.Printf("%4d  [%2d] %-12s %-10s %-16s %s\n",
					t.ID, t.PriorityScore, t.Status, formatDate(t.Deadline), cat, t.Title)
			}
			return nil
		},
	}
}

func taskStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status [id] [pending|in_progress|completed]",
		Short: "Set a task's status",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.Close()

			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return a.store.SetTaskStatus(cmd.Context(), userID, id, models.TaskStatus(args[1]))
		},
	}
}

func taskRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm [id]",
		Short: "Delete a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.Close()

			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return a.store.DeleteTask(cmd.Context(), userID, id)
		},
	}
}

func parseID(s string) (int64, error) {
	var id int64
	if _, err := fmt.Sscanf(s, "%d", &id); err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return id, nil
}

func statsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show task counts by status, overdue and category",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.Close()

			st, err := a.store.Stats(cmd.Context(), userID)
			if err != nil {
				return err
			}
			fmt.Printf("total: %d  pending: %d  in_progress: %d  completed: %d  overdue: %d\n",
				st.Total, st.Pending, st.InProgress, st.Completed, st.Overdue)
			for name, n := range st.ByCategory {
				fmt.Printf("  %s: %d\n", name, n)
			}
			return nil
		},
	}
}
