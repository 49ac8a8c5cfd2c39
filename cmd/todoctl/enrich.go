package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func enrichCmd() *cobra.Command {
	var all bool
	cmd := &cobra.Command{
		Use:   "enrich [task-id]",
		Short: "Ask the AI backend to enrich a task (or all tasks with --all)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.Close()
			ctx := cmd.Context()

			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")

			if all {
				suggestions, updated, err := a.enricher.EnrichAll(ctx, userID)
				if err != nil {
					return err
				}
				return enc.Encode(map[string]any{
					"suggestions":   suggestions,
					"updated_tasks": updated,
				})
			}

			if len(args) != 1 {
				return fmt.Errorf("pass a task id or --all")
			}
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			sugg, task, err := a.enricher.EnrichTask(ctx, userID, id)
			if err != nil {
				return err
			}
			return enc.Encode(map[string]any{
				"ai":   sugg,
				"task": task,
			})
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "enrich every task of the user")
	return cmd
}
