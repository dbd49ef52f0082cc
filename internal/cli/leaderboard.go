package cli

import (
	"github.com/spf13/cobra"
)

func newLeaderboardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "leaderboard <slug>",
		Short: "Show a board's leaderboard",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result []PlayerStats

			if err := client.Get(cmd.Context(), boardPath(args[0], "leaderboard"), &result); err != nil {
				return err
			}

			output(cmd).Print(result)
			return nil
		},
	}
}

func newPlayerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "player <slug> <name>",
		Short: "Show one player's stats on a board",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result PlayerStats

			if err := client.Get(cmd.Context(), boardPath(args[0], "players", args[1]), &result); err != nil {
				return err
			}

			output(cmd).Print(result)
			return nil
		},
	}
}

func newLegacyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "legacy",
		Short: "Read data recorded before boards existed",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "leaderboard",
		Short: "Show the legacy leaderboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result []PlayerStats
			if err := client.Get(cmd.Context(), "/api/v1/legacy/leaderboard", &result); err != nil {
				return err
			}
			output(cmd).Print(result)
			return nil
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "games",
		Short: "List legacy games",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result []Game
			if err := client.Get(cmd.Context(), "/api/v1/legacy/games", &result); err != nil {
				return err
			}
			output(cmd).Print(result)
			return nil
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "profiles",
		Short: "List legacy profiles",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Profiles
			if err := client.Get(cmd.Context(), "/api/v1/legacy/profiles", &result); err != nil {
				return err
			}
			output(cmd).Print(result)
			return nil
		},
	})

	return cmd
}
