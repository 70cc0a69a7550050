package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/etnz/folio/cmd"
	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

func main() {
	// Shell completion. This call returns immediately unless the shell is
	// asking for completions, in which case it exits.
	completion().Complete("folio")

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(subcommands.HelpCommand(), "")
	commander.Register(subcommands.FlagsCommand(), "")
	cmd.Register(commander)

	flag.Parse()
	cmd.SetupLogging()
	os.Exit(int(commander.Execute(context.Background())))
}

func completion() *complete.Command {
	target := map[string]complete.Predictor{"target": predict.Files("*.json")}
	return &complete.Command{
		Sub: map[string]*complete.Command{
			"show":      {Flags: target},
			"rebalance": {Flags: target},
			"assist":    {Flags: target},
			"topic":     {Args: predict.Set{"configuration", "rebalancing", "*"}},
		},
		Flags: map[string]complete.Predictor{
			"config": predict.Files("*.yaml"),
		},
	}
}
