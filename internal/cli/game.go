package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

func newGameCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "game",
		Short: "Game ledger commands",
	}

	cmd.AddCommand(newGameRecordCmd())
	cmd.AddCommand(newGameListCmd())

	return cmd
}

// parseResult parses a "name=points" player result
func parseResult(s string) (Participant, error) {
	name, points, ok := strings.Cut(s, "=")
	if !ok || strings.TrimSpace(name) == "" {
		return Participant{}, fmt.Errorf("invalid player %q: expected name=points", s)
	}
	n, err := strconv.Atoi(strings.TrimSpace(points))
	if err != nil {
		return Participant{}, fmt.Errorf("invalid points for %q: %w", name, err)
	}
	return Participant{Name: strings.TrimSpace(name), Points: n}, nil
}

func newGameRecordCmd() *cobra.Command {
	var results []string

	cmd := &cobra.Command{
		Use:   "record <slug>",
		Short: "Record a finished game",
		Example: `  catanlb game record river-traders --player Alice=10 --player Bob=7
  catanlb game record river-traders -p Alice=6 -p Bob=10 -p Cara=4`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			players := make([]Participant, 0, len(results))
			for _, r := range results {
				p, err := parseResult(r)
				if err != nil {
					return err
				}
				players = append(players, p)
			}

			req := map[string]any{"players": players}
			var result Game

			if err := client.Post(cmd.Context(), boardPath(args[0], "games"), req, &result); err != nil {
				return err
			}

			output(cmd).Print(result)
			return nil
		},
	}

	cmd.Flags().StringArrayVarP(&results, "player", "p", nil, "Player result as name=points (repeatable)")
	_ = cmd.MarkFlagRequired("player")

	return cmd
}

func newGameListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list <slug>",
		Short: "List a board's games, most recent first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result []Game

			if err := client.Get(cmd.Context(), boardPath(args[0], "games"), &result); err != nil {
				return err
			}

			output(cmd).Print(result)
			return nil
		},
	}
}
