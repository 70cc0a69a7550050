package cmd

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"

	"github.com/etnz/folio"
	"github.com/etnz/folio/renderer"
	"github.com/google/subcommands"
)

type showCmd struct {
	targetFile string
	jsonOut    bool
}

func (*showCmd) Name() string     { return "show" }
func (*showCmd) Synopsis() string { return "display the portfolio valuation report" }
func (*showCmd) Usage() string {
	return `show [-target target.json] [-json]:
  Value the whole portfolio at live market prices, convert it into the
  reporting currency, and display allocations, drift and, when the drift
  exceeds the threshold, a rebalancing plan.
`
}

func (c *showCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.targetFile, "target", "target.json", "path to the target allocation file")
	f.BoolVar(&c.jsonOut, "json", false, "print the report as JSON instead of markdown")
}

func (c *showCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	report := engine.Report(target)
	if c.jsonOut {
		content, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			fmt.Println("Error:", err)
			return subcommands.ExitFailure
		}
		fmt.Println(string(content))
		return subcommands.ExitSuccess
	}
	printMarkdown(renderer.ReportMarkdown(report))
	return subcommands.ExitSuccess
}
