package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/decker502/nutriquest/pkg/game"
	"github.com/decker502/nutriquest/pkg/tutorial"
)

func newProgressCommand(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "progress",
		Short: "Show, list or reset saved tutorial progress",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List players with a save",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := opts.open()
			if err != nil {
				return err
			}
			defer b.Close()

			ids, err := b.Store.List(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to list players: %w", err)
			}
			out := cmd.OutOrStdout()
			if len(ids) == 0 {
				fmt.Fprintln(out, "No saves found.")
				return nil
			}
			last := b.LastPlayer()
			for _, id := range ids {
				marker := " "
				if id == last {
					marker = "*"
				}
				fmt.Fprintf(out, "%s %s\n", marker, id)
			}
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "show <player>",
		Short: "Show a player's coins and tutorial progress",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := opts.open()
			if err != nil {
				return err
			}
			defer b.Close()

			save, err := b.Store.Load(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printSave(cmd.OutOrStdout(), save, tutorial.DefaultCatalog())
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "reset <player>",
		Short: "Delete a player's save so the tutorial starts over",
		Long: `Deletes the player's save. The next time the player opens the game they
are treated as a new player: the tutorial starts from step 1 and its coin
rewards can be earned again.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := opts.open()
			if err != nil {
				return err
			}
			defer b.Close()

			if err := b.Store.Delete(cmd.Context(), args[0]); err != nil {
				if errors.Is(err, game.ErrSaveNotFound) {
					return fmt.Errorf("no save for player %s", args[0])
				}
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Reset player %s\n", args[0])
			return nil
		},
	})

	return cmd
}

func printSave(out io.Writer, save *game.PlayerSave, steps []tutorial.Step) error {
	completed := make([]string, 0, len(save.Tutorial.CompletedSteps))
	for _, id := range save.Tutorial.CompletedSteps {
		completed = append(completed, fmt.Sprint(id))
	}
	if len(completed) == 0 {
		completed = append(completed, "none")
	}

	step := "-"
	if idx := save.Tutorial.CurrentStep; idx >= 0 && idx < len(steps) {
		step = fmt.Sprintf("%d of %d (%s)", idx+1, len(steps), steps[idx].Title)
	}

	_, err := fmt.Fprintf(out, `Player:      %s
Coins:       %d
First login: %v
Tutorial:    %s
Step:        %s
Completed:   %s
Modal:       %v
`, save.PlayerID, save.Coins, save.FirstLogin, save.Tutorial.State, step,
		strings.Join(completed, ", "), save.Tutorial.ShowModal)
	if err != nil {
		return err
	}
	if !save.UpdatedAt.IsZero() {
		_, err = fmt.Fprintf(out, "Updated:     %s\n", save.UpdatedAt.Format("2006-01-02 15:04:05 MST"))
	}
	return err
}

// copyInto 把玩家存档复制到另一个存档后端，存档不存在时什么都不做
func copyInto(ctx context.Context, from, to game.ProgressStore, playerID string) error {
	save, err := from.Load(ctx, playerID)
	if errors.Is(err, game.ErrSaveNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	return to.Save(ctx, save)
}
