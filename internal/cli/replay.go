package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/decker502/nutriquest/pkg/game"
	"github.com/decker502/nutriquest/pkg/tutorial"
)

// replayEvent 命令行上的一个事件，形如 "enter_building@market"
type replayEvent struct {
	kind     tutorial.EventKind
	location string
}

func parseReplayEvent(arg string) (replayEvent, error) {
	tag, location, _ := strings.Cut(arg, "@")
	kind, err := tutorial.ParseEventKind(tag)
	if err != nil {
		return replayEvent{}, err
	}
	return replayEvent{kind: kind, location: location}, nil
}

func newReplayCommand(opts *globalOptions) *cobra.Command {
	var (
		strict  bool
		save    bool
		catalog string
	)

	cmd := &cobra.Command{
		Use:   "replay <player> <event[@location]>...",
		Short: "Replay game events against a player's tutorial",
		Long: `Loads the player's save (or a new player when none exists), fires each
event in order and prints how the tutorial reacts.

Events are tags such as next_button, movement, purchase_food, cook_meal,
plant_seed or enter_building@market. Nothing is written back unless --save
is given.`,
		Example: `  nutriquestctl replay alice next_button movement enter_building@market
  nutriquestctl --backend sqlite replay bob next_button --save`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			playerID := args[0]
			events := make([]replayEvent, 0, len(args)-1)
			for _, arg := range args[1:] {
				ev, err := parseReplayEvent(arg)
				if err != nil {
					return err
				}
				events = append(events, ev)
			}

			steps, err := tutorial.LoadCatalog(catalog)
			if err != nil {
				return err
			}
			policy := tutorial.LocationLenient
			if strict {
				policy = tutorial.LocationStrict
			}

			b, err := opts.open()
			if err != nil {
				return err
			}
			defer b.Close()

			// 在内存副本上重放，只有 --save 时才写回
			ctx := cmd.Context()
			scratch := game.NewMemoryProgressStore()
			if err := copyInto(ctx, b.Store, scratch, playerID); err != nil {
				return err
			}
			session, err := game.OpenSession(ctx, scratch, playerID, game.SessionOptions{
				Steps:          steps,
				LocationPolicy: policy,
				NoAutosave:     true,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			ts := session.Tutorial()
			fmt.Fprintf(out, "start: %s, coins %d\n", describe(ts.Snapshot()), session.Wallet().Balance())
			for _, ev := range events {
				name := ev.kind.String()
				if ev.location != "" {
					name += "@" + ev.location
				}
				if ts.TriggerAt(ev.kind, ev.location) {
					fmt.Fprintf(out, "%-28s advanced -> %s, coins %d\n", name, describe(ts.Snapshot()), session.Wallet().Balance())
				} else {
					fmt.Fprintf(out, "%-28s ignored\n", name)
				}
			}

			if save {
				if err := b.Store.Save(ctx, session.PlayerSave()); err != nil {
					return fmt.Errorf("failed to save player %s: %w", playerID, err)
				}
				fmt.Fprintf(out, "saved player %s\n", playerID)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&strict, "strict", false, "enter_building must name the location the step asks for")
	cmd.Flags().BoolVar(&save, "save", false, "write the resulting progress back to the save")
	cmd.Flags().StringVar(&catalog, "catalog", "", "catalog YAML file (default: built-in catalog)")
	return cmd
}

// describe 一行描述运行状态
func describe(rs tutorial.RunState) string {
	if rs.State == tutorial.StateCompleted || rs.State == tutorial.StateInactive {
		return rs.State.String()
	}
	current, total := rs.Progress()
	return fmt.Sprintf("%s, step %d of %d", rs.State, current, total)
}
