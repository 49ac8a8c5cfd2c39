package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"smarttodo-backend/internal/models"
)

func contextCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "context",
		Short: "Manage context entries (notes, messages, emails)",
	}
	cmd.AddCommand(contextAddCmd())
	cmd.AddCommand(contextListCmd())
	cmd.AddCommand(contextRemoveCmd())
	return cmd
}

func contextAddCmd() *cobra.Command {
	var source string
	cmd := &cobra.Command{
		Use:   "add [content]",
		Short: "Record a context entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.Close()

			e, err := a.store.CreateContextEntry(cmd.Context(), models.ContextEntry{
				UserID:     userID,
				Content:    args[0],
				SourceType: models.SourceType(source),
			})
			if err != nil {
				return err
			}
			fmt.Printf("recorded context %d (%s)\n", e.ID, e.SourceType)
			return nil
		},
	}
	cmd.Flags().StringVarP(&source, "source", "s", "note", "source type: whatsapp, email or note")
	return cmd
}

func contextListCmd() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent context entries, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.Close()

			entries, err := a.store.RecentContexts(cmd.Context(), userID, limit)
			if err != nil {
				return err
			}
			for _, e := range entries {
				fmt.Printf("%4d  %s  (%s) %s\n",
					e.ID, e.CreatedAt.Format("2006-01-02 15:04"), e.SourceType,
					models.Truncate(e.Content, 80))
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 30, "maximum entries")
	return cmd
}

func contextRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm [id]",
		Short: "Delete a context entry",
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
			return a.store.DeleteContextEntry(cmd.Context(), userID, id)
		},
	}
}
