package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newBoardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "board",
		Short: "Board management commands",
	}

	cmd.AddCommand(newBoardCreateCmd())
	cmd.AddCommand(newBoardListCmd())
	cmd.AddCommand(newBoardGetCmd())
	cmd.AddCommand(newBoardAuthCmd())
	cmd.AddCommand(newBoardDeleteCmd())

	return cmd
}

func newBoardCreateCmd() *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "create <slug>",
		Short: "Create a new board",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfg.Password == "" {
				return fmt.Errorf("--password is required")
			}

			req := map[string]string{
				"name":     name,
				"slug":     args[0],
				"password": cfg.Password,
			}
			var result Board

			if err := client.Post(cmd.Context(), "/api/v1/boards", req, &result); err != nil {
				return err
			}

			output(cmd).Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Board display name (required)")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newBoardListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all boards",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result []Board

			if err := client.Get(cmd.Context(), "/api/v1/boards", &result); err != nil {
				return err
			}

			output(cmd).Print(result)
			return nil
		},
	}
}

func newBoardGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <slug>",
		Short: "Show a board",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Board

			if err := client.Get(cmd.Context(), boardPath(args[0]), &result); err != nil {
				return err
			}

			output(cmd).Print(result)
			return nil
		},
	}
}

func newBoardAuthCmd() *cobra.Command {
	var save bool

	cmd := &cobra.Command{
		Use:   "auth <slug>",
		Short: "Check a board password",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfg.Password == "" {
				return fmt.Errorf("--password is required")
			}

			req := map[string]string{"password": cfg.Password}
			var result Message

			if err := client.Post(cmd.Context(), boardPath(args[0], "auth"), req, &result); err != nil {
				return err
			}

			if save {
				if err := cfg.SavePassword(cfg.Password); err != nil {
					return fmt.Errorf("failed to save password: %w", err)
				}
			}

			output(cmd).Print(result)
			return nil
		},
	}

	cmd.Flags().BoolVar(&save, "save", false, "Save the password for later commands")

	return cmd
}

func newBoardDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <slug>",
		Short: "Delete a board and all of its games and profiles",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Message

			if err := client.Delete(cmd.Context(), boardPath(args[0]), &result); err != nil {
				return err
			}

			output(cmd).Print(result)
			return nil
		},
	}
}
