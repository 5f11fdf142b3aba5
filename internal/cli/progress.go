package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newProgressCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "progress",
		Short: "Play progress commands",
	}

	cmd.AddCommand(newProgressSaveCmd())
	cmd.AddCommand(newProgressListCmd())
	cmd.AddCommand(newProgressStatsCmd())

	return cmd
}

func newProgressSaveCmd() *cobra.Command {
	var score int
	var completed bool

	cmd := &cobra.Command{
		Use:   "save GAME_ID",
		Short: "Record a play result for a game",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid game id: %s", args[0])
			}

			req := map[string]any{
				"score":     score,
				"completed": completed,
			}
			var result Progress

			if err := client.Post(fmt.Sprintf("/api/game/%d/progress", id), req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().IntVar(&score, "score", 0, "Score achieved")
	cmd.Flags().BoolVar(&completed, "completed", false, "Mark the game as completed")

	return cmd
}

func newProgressListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the current user's progress",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result []ProgressEntry

			if err := client.Get("/api/user/progress", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newProgressStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show the current user's aggregate statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result UserStats

			if err := client.Get("/api/user/stats", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}
