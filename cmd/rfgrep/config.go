package main

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rfgrep/rfgrep/internal/types"
	"github.com/rfgrep/rfgrep/internal/walker"
	"github.com/urfave/cli/v2"
)

// globalGitignorePath mirrors git's own "global" ignore layer: the user's
// configured excludesfile, conventionally $HOME/.config/git/ignore when no
// explicit git config is consulted.
func globalGitignorePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "git", "ignore")
}

func rootPaths(c *cli.Context) []string {
	if c.NArg() > 1 {
		return c.Args().Slice()[1:]
	}
	return []string{"."}
}

func isStdinMode(explicitPath bool) bool {
	if explicitPath {
		return false
	}
	info, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice == 0
}

func wantColor(c *cli.Context) bool {
	switch c.String("color") {
	case "always":
		return true
	case "never":
		return false
	default:
		info, err := os.Stdout.Stat()
		return err == nil && info.Mode()&os.ModeCharDevice != 0
	}
}

func safetyPolicyFrom(c *cli.Context) types.SafetyPolicy {
	switch c.String("safety-policy") {
	case "conservative":
		return types.SafetyConservative
	case "performance":
		return types.SafetyPerformance
	default:
		return types.SafetyDefault
	}
}

func filterOptionsFrom(c *cli.Context) types.FilterOptions {
	var maxSize int64
	if mb := c.Int64("max-size"); mb > 0 {
		maxSize = mb * 1024 * 1024
	}

	strategy := types.StrategyDefault
	switch c.String("file-types") {
	case "comprehensive":
		strategy = types.StrategyComprehensive
	case "conservative":
		strategy = types.StrategyConservative
	case "performance":
		strategy = types.StrategyPerformance
	}

	return types.FilterOptions{
		MaxSize:           maxSize,
		SkipBinary:        c.Bool("skip-binary"),
		SafetyPolicy:      safetyPolicyFrom(c),
		IncludeExtensions: splitCommaList(c.String("include-extensions")),
		ExcludeExtensions: splitCommaList(c.String("exclude-extensions")),
		SearchAll:         c.Bool("search-all-files"),
		TextOnly:          c.Bool("text-only"),
		FileTypeStrategy:  strategy,
	}
}

func splitCommaList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func walkerOptionsFrom(c *cli.Context, root string) walker.Options {
	paths := append([]string{globalGitignorePath(), root + "/.gitignore"}, c.StringSlice("ignore-file")...)
	ignore := walker.NewIgnoreSet(paths...)
	ignore.AddLiteral([]string{".git/"})

	return walker.Options{
		Recursive:      c.Bool("recursive"),
		ShowHidden:     c.Bool("hidden"),
		MaxDepth:       c.Int("max-depth"),
		FollowSymlinks: c.Bool("follow-symlinks"),
		Ignore:         ignore,
	}
}

func streamingConfigFrom(c *cli.Context, pattern string) (types.StreamingConfig, string) {
	algo := types.AlgorithmSIMD
	switch c.String("algorithm") {
	case "boyer-moore":
		algo = types.AlgorithmBoyerMoore
	case "regex":
		algo = types.AlgorithmRegex
	case "simple":
		algo = types.AlgorithmSimple
	}

	switch c.String("mode") {
	case "word":
		pattern = `\b` + pattern + `\b`
		algo = types.AlgorithmRegex
	case "regex":
		algo = types.AlgorithmRegex
	}

	var timeout time.Duration
	if secs := c.Int("timeout-per-file"); secs > 0 {
		timeout = time.Duration(secs) * time.Second
	}

	return types.StreamingConfig{
		Algorithm:      algo,
		ContextLines:   c.Int("context-lines"),
		CaseSensitive:  c.Bool("case-sensitive"),
		InvertMatch:    c.Bool("invert-match"),
		MaxMatches:     c.Int("max-matches"),
		PerFileTimeout: timeout,
		Concurrency:    c.Int("threads"),
	}, pattern
}
