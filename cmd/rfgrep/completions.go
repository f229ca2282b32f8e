package main

import (
	"fmt"

	"github.com/rfgrep/rfgrep/internal/rfgreperr"
	"github.com/urfave/cli/v2"
)

func completionsCommand() *cli.Command {
	return &cli.Command{
		Name:      "completions",
		Usage:     "emit a shell completion script",
		ArgsUsage: "<bash|zsh|fish>",
		Action:    runCompletions,
	}
}

// The three scripts below delegate to urfave/cli's built-in
// --generate-bash-completion machinery (app.EnableBashCompletion, set in
// main.go), the same hidden-flag protocol urfave/cli's own
// autocomplete/*_autocomplete scripts use; rfgrep only needs to adapt the
// shell-specific wiring around that one flag.
const bashCompletionScript = `_rfgrep_complete() {
  local cur opts
  cur="${COMP_WORDS[COMP_CWORD]}"
  opts=$(${COMP_WORDS[0]} --generate-bash-completion)
  COMPREPLY=( $(compgen -W "${opts}" -- "${cur}") )
}
complete -F _rfgrep_complete rfgrep
`

const zshCompletionScript = `#compdef rfgrep
_rfgrep() {
  local -a opts
  opts=(${(f)"$(rfgrep --generate-bash-completion)"})
  _describe 'command' opts
}
compdef _rfgrep rfgrep
`

const fishCompletionScript = `function __rfgrep_complete
  rfgrep --generate-bash-completion
end
complete -c rfgrep -f -a '(__rfgrep_complete)'
`

func runCompletions(c *cli.Context) error {
	if c.NArg() < 1 {
		return rfgreperr.ConfigErr("usage: rfgrep completions <bash|zsh|fish>")
	}

	switch c.Args().First() {
	case "bash":
		fmt.Print(bashCompletionScript)
	case "zsh":
		fmt.Print(zshCompletionScript)
	case "fish":
		fmt.Print(fishCompletionScript)
	default:
		return rfgreperr.ConfigErr("unsupported shell: " + c.Args().First())
	}
	return nil
}
