package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/etnz/folio/docs"
	"github.com/google/subcommands"
)

type topicCmd struct{}

func (*topicCmd) Name() string     { return "topic" }
func (*topicCmd) Synopsis() string { return "display a documentation topic" }
func (*topicCmd) Usage() string {
	return `topic [<name>...]:
  Display the named documentation topics. Without arguments, list the
  available topics. The special name "*" expands to all of them.
`
}

func (*topicCmd) SetFlags(f *flag.FlagSet) {}

func (c *topicCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		readme, err := docs.GetTopic("readme")
		if err != nil {
			fmt.Println("Error:", err)
			return subcommands.ExitFailure
		}
		printMarkdown(readme)
		return subcommands.ExitSuccess
	}

	content, err := docs.GetTopics(f.Args()...)
	if err != nil {
		fmt.Println("Error:", err)
		return subcommands.ExitFailure
	}
	printMarkdown(content)
	return subcommands.ExitSuccess
}
