// Command nutriquestctl inspects and edits NutriQuest save data.
//
// Usage:
//
//	nutriquestctl [--backend gdata|sqlite|memory] [--sqlite-path file] <command>
//
// Examples:
//
//	# Print the built-in tutorial catalog
//	nutriquestctl catalog
//
//	# Show a player's progress in the sqlite save
//	nutriquestctl --backend sqlite progress show alice
//
//	# Replay events offline
//	nutriquestctl replay alice next_button movement enter_building@market
package main

import (
	"fmt"
	"os"

	"github.com/decker502/nutriquest/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
