package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/decker502/nutriquest/pkg/tutorial"
)

func newCatalogCommand() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Print the tutorial catalog",
		Long: `Prints every tutorial step with its trigger, location and reward.

Without --file the built-in catalog is printed. With --file the YAML catalog is
loaded and validated the same way the game does.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			steps, err := tutorial.LoadCatalog(file)
			if err != nil {
				return err
			}
			return printCatalog(cmd.OutOrStdout(), steps)
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "catalog YAML file to validate and print")
	return cmd
}

func printCatalog(out io.Writer, steps []tutorial.Step) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTRIGGER\tLOCATION\tCOINS\tEXP\tTITLE")
	for _, step := range steps {
		location := step.Location
		if location == "" {
			location = "-"
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%d\t%s\n",
			step.ID, step.Trigger, location, step.RewardCoins, step.RewardExp, step.Title)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(out, "\n%d steps, %d coins total\n", len(steps), tutorial.CatalogCoinTotal(steps))
	return err
}
