// Command rfgrep is a recursive file-grep CLI: walk a directory tree,
// filter candidate files, and search each for a pattern using one of four
// matcher backends, emitting results in any of eight formats. The command
// surface mirrors the teacher's cmd/lci/main.go: a root *cli.App carrying
// global flags, one *cli.Command per subcommand.
package main

import (
	"fmt"
	"os"

	"github.com/rfgrep/rfgrep/internal/signalctl"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:                   "rfgrep",
		Usage:                  "recursive file grep",
		UseShortOptionHandling: true,
		EnableBashCompletion:   true,
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "quiet", Aliases: []string{"q"}, Usage: "suppress non-match output"},
			&cli.BoolFlag{Name: "verbose", Usage: "show debug information"},
			&cli.StringFlag{Name: "color", Value: "auto", Usage: "color output: auto, always, never"},
			&cli.StringFlag{Name: "log", Usage: "write logs to path instead of stderr"},
			&cli.BoolFlag{Name: "dry-run", Usage: "print what would run without searching"},
			&cli.Int64Flag{Name: "max-size", Usage: "maximum file size to search, in MiB"},
			&cli.BoolFlag{Name: "skip-binary", Usage: "skip files detected as binary"},
			&cli.StringFlag{Name: "safety-policy", Value: "default", Usage: "default, conservative, or performance"},
			&cli.IntFlag{Name: "threads", Usage: "worker concurrency (0 = auto)"},
		},
		Commands: []*cli.Command{
			searchCommand(),
			listCommand(),
			completionsCommand(),
			workerCommand(),
		},
	}

	stop := signalctl.Watch()
	defer stop()

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
