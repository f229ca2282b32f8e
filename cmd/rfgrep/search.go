package main

import (
	"bufio"
	"context"
	"fmt"
	"os"

	"github.com/rfgrep/rfgrep/internal/filter"
	"github.com/rfgrep/rfgrep/internal/matcher"
	"github.com/rfgrep/rfgrep/internal/orchestrator"
	"github.com/rfgrep/rfgrep/internal/output"
	"github.com/rfgrep/rfgrep/internal/rfgreperr"
	"github.com/rfgrep/rfgrep/internal/types"
	"github.com/rfgrep/rfgrep/internal/walker"
	"github.com/urfave/cli/v2"
)

func searchCommand() *cli.Command {
	return &cli.Command{
		Name:    "search",
		Aliases: []string{"s"},
		Usage:   "search for a pattern beneath one or more paths",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "mode", Value: "text", Usage: "text, word, or regex"},
			&cli.StringFlag{Name: "algorithm", Usage: "boyer-moore, regex, or simple (default: simd)"},
			&cli.BoolFlag{Name: "recursive", Aliases: []string{"r"}, Usage: "recurse into subdirectories"},
			&cli.IntFlag{Name: "context-lines", Usage: "lines of context before/after each match"},
			&cli.BoolFlag{Name: "case-sensitive", Value: true, Usage: "case-sensitive matching"},
			&cli.BoolFlag{Name: "invert-match", Usage: "show only non-matching lines"},
			&cli.IntFlag{Name: "max-matches", Usage: "cap matches reported per file"},
			&cli.IntFlag{Name: "timeout-per-file", Usage: "abandon a file's search after N seconds"},
			&cli.StringFlag{Name: "output-format", Aliases: []string{"f"}, Value: "text", Usage: "text, json, xml, html, markdown, csv, tsv"},
			&cli.BoolFlag{Name: "ndjson", Usage: "newline-delimited JSON instead of an aggregate document"},
			&cli.BoolFlag{Name: "count", Aliases: []string{"c"}, Usage: "print match count per file"},
			&cli.BoolFlag{Name: "files-with-matches", Aliases: []string{"l"}, Usage: "print only filenames with matches"},
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
		Action: runSearch,
	}
}

func runSearch(c *cli.Context) error {
	if c.NArg() < 1 {
		return rfgreperr.ConfigErr("usage: rfgrep search <pattern> [path...]")
	}
	pattern := c.Args().First()

	cfg, pattern := streamingConfigFrom(c, pattern)
	if _, err := matcher.New(cfg.Algorithm, pattern, cfg.CaseSensitive); err != nil {
		return rfgreperr.RegexErr(err)
	}

	explicitPath := c.NArg() > 1
	if isStdinMode(explicitPath) {
		return runSearchStdin(c, pattern, cfg)
	}

	var allMatches []types.Match
	for _, root := range rootPaths(c) {
		paths, err := collectCandidates(c, root)
		if err != nil {
			return rfgreperr.IoErr(err)
		}
		matches, errs := orchestrator.Run(context.Background(), paths, pattern, cfg, c.Int("threads"))
		for _, fe := range errs {
			fmt.Fprintf(os.Stderr, "warning: %s: %v\n", fe.Path, fe.Err)
		}
		allMatches = append(allMatches, matches...)
	}

	return emit(c, allMatches, pattern, rootPaths(c))
}

// collectCandidates returns every path beneath root the six-step filter
// accepts, honoring the recursion/hidden/depth/symlink/ignore options. A
// root that names a regular file is filtered directly, without walking.
func collectCandidates(c *cli.Context, root string) ([]string, error) {
	filterOpts := filterOptionsFrom(c)

	info, err := os.Stat(root)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		if d := filter.Check(root, filterOpts); d.Accept {
			return []string{root}, nil
		}
		return nil, nil
	}

	opts := walkerOptionsFrom(c, root)
	var candidates []string
	if err := walker.Walk(root, opts, func(e walker.Entry) {
		if d := filter.Check(e.Path, filterOpts); d.Accept {
			candidates = append(candidates, e.Path)
		}
	}); err != nil {
		return nil, err
	}
	return candidates, nil
}

func runSearchStdin(c *cli.Context, pattern string, cfg types.StreamingConfig) error {
	m, err := matcher.New(cfg.Algorithm, pattern, cfg.CaseSensitive)
	if err != nil {
		return rfgreperr.RegexErr(err)
	}

	var matches []types.Match
	scanner := bufio.NewScanner(os.Stdin)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		spans := m.Search([]byte(line))
		if cfg.InvertMatch {
			if len(spans) == 0 {
				matches = append(matches, types.Match{Path: "<stdin>", LineNumber: lineNo, Line: line})
			}
			continue
		}
		for _, sp := range spans {
			matches = append(matches, types.Match{
				Path: "<stdin>", LineNumber: lineNo, Line: line,
				MatchedText: line[sp.Start:sp.End], ColumnStart: sp.Start, ColumnEnd: sp.End,
			})
		}
	}
	if err := scanner.Err(); err != nil {
		return rfgreperr.IoErr(err)
	}

	return emit(c, matches, pattern, []string{"<stdin>"})
}

func emit(c *cli.Context, matches []types.Match, pattern string, roots []string) error {
	if c.Bool("files-with-matches") {
		return printFilesWithMatches(matches)
	}
	if c.Bool("count") {
		return printCounts(matches)
	}

	format := output.FormatText
	switch c.String("output-format") {
	case "json":
		format = output.FormatJSON
	case "xml":
		format = output.FormatXML
	case "html":
		format = output.FormatHTML
	case "markdown":
		format = output.FormatMarkdown
	case "csv":
		format = output.FormatCSV
	case "tsv":
		format = output.FormatTSV
	}
	if c.Bool("ndjson") {
		format = output.FormatNDJSON
	}

	f := output.New(format)
	f.UseColor = wantColor(c) && format == output.FormatText
	path := ""
	if len(roots) > 0 {
		path = roots[0]
	}
	fmt.Print(f.Render(matches, pattern, path))
	return nil
}

func printFilesWithMatches(matches []types.Match) error {
	seen := make(map[string]bool)
	var order []string
	for _, m := range matches {
		if !seen[m.Path] {
			seen[m.Path] = true
			order = append(order, m.Path)
		}
	}
	for _, p := range order {
		fmt.Println(p)
	}
	return nil
}

func printCounts(matches []types.Match) error {
	counts := make(map[string]int)
	var order []string
	for _, m := range matches {
		if _, ok := counts[m.Path]; !ok {
			order = append(order, m.Path)
		}
		counts[m.Path]++
	}
	for _, p := range order {
		fmt.Printf("%s:%d\n", p, counts[p])
	}
	return nil
}
