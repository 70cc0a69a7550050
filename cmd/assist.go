package cmd

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/etnz/folio"
	"github.com/etnz/folio/docs"
	"github.com/etnz/folio/renderer"
	"github.com/google/subcommands"
	"google.golang.org/genai"
)

// assistModel is the model answering portfolio questions.
const assistModel = "gemini-2.5-flash"

type assistCmd struct {
	targetFile string
}

func (*assistCmd) Name() string     { return "assist" }
func (*assistCmd) Synopsis() string { return "ask an AI assistant about the portfolio" }
func (*assistCmd) Usage() string {
	return `assist [-target target.json] <question>:
  Ask a question about the portfolio. The current valuation report and the
  documentation are given to the model as context. Requires the
  GEMINI_API_KEY environment variable.
`
}

func (c *assistCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.targetFile, "target", "target.json", "path to the target allocation file")
}

func (c *assistCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		fmt.Println("Error: missing question")
		return subcommands.ExitUsageError
	}
	question := strings.Join(f.Args(), " ")

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

	manual, err := docs.GetTopics("*")
	if err != nil {
		fmt.Println("Error:", err)
		return subcommands.ExitFailure
	}

	var prompt strings.Builder
	prompt.WriteString("You are a portfolio reporting assistant. Answer the question using\n")
	prompt.WriteString("only the report and the documentation below. Do not give investment\n")
	prompt.WriteString("advice beyond what the report states.\n\n")
	prompt.WriteString("# Documentation\n\n")
	prompt.WriteString(manual)
	prompt.WriteString("\n# Report\n\n")
	prompt.WriteString(renderer.ReportMarkdown(engine.Report(target)))
	prompt.WriteString("\n# Question\n\n")
	prompt.WriteString(question)

	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		fmt.Println("Error:", err)
		return subcommands.ExitFailure
	}
	resp, err := client.Models.GenerateContent(ctx, assistModel, genai.Text(prompt.String()), nil)
	if err != nil {
		fmt.Println("Error:", err)
		return subcommands.ExitFailure
	}
	printMarkdown(resp.Text())
	return subcommands.ExitSuccess
}
