package main

import (
	"fmt"

	"github.com/rfgrep/rfgrep/internal/rfgreperr"
	"github.com/urfave/cli/v2"
)

func listCommand() *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "print the filtered candidate file set, one path per line",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "recursive", Aliases: []string{"r"}, Usage: "recurse into subdirectories"},
			&cli.StringFlag{Name: "file-types", Value: "default", Usage: "default, comprehensive, conservative, performance"},
			&cli.StringFlag{Name: "include-extensions", Usage: "comma-separated extension allow-list"},
			&cli.StringFlag{Name: "exclude-extensions", Usage: "comma-separated extension deny-list"},
			&cli.BoolFlag{Name: "search-all-files", Usage: "ignore the classifier's skip verdicts"},
			&cli.BoolFlag{Name: "text-only", Usage: "force content sniffing for every candidate"},
			&cli.BoolFlag{Name: "hidden", Usage: "include dotfiles and dot-directories"},
			&cli.IntFlag{Name: "max-depth", Usage: "maximum recursion depth (0 = unlimited)"},
			&cli.BoolFlag{Name: "follow-symlinks", Usage: "follow symlinked directories"},
			&cli.StringSliceFlag{Name: "ignore-file", Usage: "extra ignore-pattern file, layered after .gitignore"},
		},
		Action: runList,
	}
}

func runList(c *cli.Context) error {
	roots := []string{"."}
	if c.NArg() > 0 {
		roots = c.Args().Slice()
	}

	for _, root := range roots {
		paths, err := collectCandidates(c, root)
		if err != nil {
			return rfgreperr.IoErr(err)
		}
		for _, p := range paths {
			fmt.Println(p)
		}
	}
	return nil
}
