package cmd

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/etnz/folio"
	"github.com/etnz/folio/renderer"
	"github.com/google/subcommands"
)

type rebalanceCmd struct {
	targetFile string
}

func (*rebalanceCmd) Name() string     { return "rebalance" }
func (*rebalanceCmd) Synopsis() string { return "compute the rebalancing plan" }
func (*rebalanceCmd) Usage() string {
	return `rebalance [-target target.json]:
  Compare the current allocation with the target allocation and print the
  trades that would realign the portfolio. Skip-listed tickers are left
  untouched.
`
}

func (c *rebalanceCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.targetFile, "target", "target.json", "path to the target allocation file")
}

func (c *rebalanceCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	engine, err := newEngine()
	if err != nil {
		fmt.Println("Error:", err)
		return subcommands.ExitFailure
	}
	target, err := folio.LoadTarget(c.targetFile)
	if err != nil {
		fmt.Println("Error:", err)
		return subcommands.ExitFailure
	}
	if err := engine.Run(ctx); err != nil {
		fmt.Println("Error:", err)
		return subcommands.ExitFailure
	}

	current := engine.CurrentAllocations()
	drift := engine.Drift(current, target)

	var b strings.Builder
	fmt.Fprintf(&b, "# Rebalancing\n\n")
	fmt.Fprintf(&b, "Allocation drift: %s (threshold %s)\n\n", drift, engine.Threshold())
	if drift <= engine.Threshold() {
		fmt.Fprintln(&b, "The portfolio is within its target allocation, nothing to do.")
		printMarkdown(b.String())
		return subcommands.ExitSuccess
	}
	b.WriteString(renderer.PlanMarkdown(engine.PlanTrades(current, target)))
	printMarkdown(b.String())
	return subcommands.ExitSuccess
}
