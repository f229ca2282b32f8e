package main

import (
	"context"
	"fmt"
	"os"

	"github.com/rfgrep/rfgrep/internal/rfgreperr"
	"github.com/rfgrep/rfgrep/internal/search"
	"github.com/urfave/cli/v2"
)

// workerCommand is the hidden single-file entry point that runs search.File
// on one path. search.File applies RFGREP_WORKER_SLEEP only when a per-file
// timeout is set, and this command has no timeout flag, so the sleep hook
// never fires here.
func workerCommand() *cli.Command {
	return &cli.Command{
		Name:   "worker",
		Hidden: true,
		Usage:  "search a single file and print raw matches (internal)",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "mode", Value: "text"},
			&cli.StringFlag{Name: "algorithm"},
			&cli.BoolFlag{Name: "case-sensitive", Value: true},
			&cli.IntFlag{Name: "context-lines"},
			&cli.BoolFlag{Name: "invert-match"},
			&cli.IntFlag{Name: "max-matches"},
		},
		Action: runWorker,
	}
}

func runWorker(c *cli.Context) error {
	if c.NArg() < 2 {
		return rfgreperr.ConfigErr("usage: rfgrep worker <path> <pattern>")
	}
	path := c.Args().Get(0)
	pattern := c.Args().Get(1)

	cfg, pattern := streamingConfigFrom(c, pattern)
	matches, err := search.File(context.Background(), path, pattern, cfg)
	if err != nil {
		return rfgreperr.IoErr(err)
	}

	for _, m := range matches {
		fmt.Fprintf(os.Stdout, "%s:%d:%d: %s\n", m.Path, m.LineNumber, m.ColumnStart+1, m.Line)
	}
	return nil
}
