// Package cmd implements the folio command line application.
package cmd

import (
	"flag"
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/folio"
	"github.com/google/subcommands"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// As a short lived CLI application, package level flags are fine here.
var (
	configFile = flag.String("config", "config.yaml", "path to the configuration file")
	verbose    = flag.Bool("v", false, "enable verbose logging")
)

// Register registers all folio subcommands on the given commander.
func Register(c *subcommands.Commander) {
	c.Register(&showCmd{}, "reports")
	c.Register(&rebalanceCmd{}, "reports")
	c.Register(&topicCmd{}, "documentation")
	c.Register(&assistCmd{}, "documentation")
}

// SetupLogging configures the global logger according to the -v flag.
// It must be called after flag.Parse.
func SetupLogging() {
	level := zerolog.WarnLevel
	if *verbose {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
}

// newEngine loads the configuration and wires the engine with its
// concrete source and feeds.
func newEngine() (*folio.Engine, error) {
	cfg, err := folio.LoadConfig(*configFile)
	if err != nil {
		return nil, fmt.Errorf("cannot load configuration: %w", err)
	}
	feed, err := folio.NewAlphaVantage(cfg.APIKeys.AlphaVantage)
	if err != nil {
		return nil, err
	}
	return folio.NewEngine(cfg, folio.NewFileSource(cfg.PortfolioFile), feed, feed)
}

// printMarkdown renders markdown to the terminal.
func printMarkdown(md string) {
	out, err := glamour.Render(md, "auto")
	if err != nil {
		// Raw markdown is still readable.
		fmt.Print(md)
		return
	}
	fmt.Print(out)
}
