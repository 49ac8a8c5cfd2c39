package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"smarttodo-backend/internal/models"
)

func categoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "category",
		Short: "Manage categories",
	}
	cmd.AddCommand(categoryAddCmd())
	cmd.AddCommand(categoryListCmd())
	cmd.AddCommand(categoryRemoveCmd())
	return cmd
}

func categoryAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add [name]",
		Short: "Create a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.Close()

			c, err := a.store.CreateCategory(cmd.Context(), userID, args[0])
			if errors.Is(err, models.ErrCategoryExists) {
				return fmt.Errorf("category %q already exists", args[0])
			}
			if err != nil {
				return err
			}
			fmt.Printf("created category %d: %s\n", c.ID, c.Name)
			return nil
		},
	}
}

func categoryListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List categories",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.Close()

			cats, err := a.store.ListCategories(cmd.Context(), userID)
			if err != nil {
				return err
			}
			for _, c := range cats {
				fmt.Printf("%4d  %-20s used %d times\n", c.ID, c.Name, c.UsageFrequency)
			}
			return nil
		},
	}
}

func categoryRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm [id]",
		Short: "Delete a category",
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
			return a.store.DeleteCategory(cmd.Context(), userID, id)
		},
	}
}
