// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/staranto/leadq/internal/meta"
)

const bashCompletionScript = `# bash completion for leadq
# Fallback if bash-completion is not installed
if ! declare -F _get_comp_words_by_ref >/dev/null 2>&1; then
  _get_comp_words_by_ref() {
    cur=${COMP_WORDS[COMP_CWORD]}
    prev=${COMP_WORDS[COMP_CWORD-1]}
  }
fi

_leadq()
{
    local cur prev cmd
    COMPREPLY=()
    _get_comp_words_by_ref -n : cur prev

    if [[ ${COMP_CWORD} -eq 1 ]]; then
        COMPREPLY=( $(compgen -W "query fields completion --help --version" -- "$cur") )
        return 0
    fi

    cmd=${COMP_WORDS[1]}
    local common="--ago --attrs -a --color -c --commas --entity -e --filter -f --output -o --padding --registry --search -q --sort -s --titles -t --tldr"

    case "$cmd" in
        query)
            local opts="$common --count --directory -d --parent"
            ;;
        fields)
            local opts="$common"
            ;;
        completion)
            COMPREPLY=( $(compgen -W "bash zsh" -- "$cur") )
            return 0
            ;;
        *)
            local opts="$common"
            ;;
    esac

    case "$prev" in
        --output|-o)
            COMPREPLY=( $(compgen -W "text json yaml raw" -- "$cur") )
            return 0
            ;;
        --entity|-e)
            COMPREPLY=( $(compgen -W "leads quotes customers" -- "$cur") )
            return 0
            ;;
        --registry|--directory|-d)
            COMPREPLY=( $(compgen -f -- "$cur") )
            return 0
            ;;
    esac

    if [[ "$cur" == -* || "$cmd" != "query" ]]; then
        COMPREPLY=( $(compgen -W "$opts" -- "$cur") )
        return 0
    fi

    # Otherwise, we're on the SOURCE positional, complete files
    COMPREPLY=( $(compgen -f -- "$cur") )
    return 0
}

complete -F _leadq leadq
`

const zshCompletionScript = `#compdef leadq

_leadq() {
  local -a cmds
  cmds=(
    'query:filter a collection of CRM records'
    'fields:list the filterable fields of a registry'
    'completion:generate shell completion script'
  )

  local -a common
  common=(
  '--ago[show dates relative to now]'
  '(-a --attrs)'{-a,--attrs}'[fields to include]:attrs'
  '(-c --color)'{-c,--color}'[enable colored text]'
  '--commas[group the digits of numbers]'
  '(-e --entity)'{-e,--entity}'[field registry]:entity:(leads quotes customers)'
  '(-f --filter)'{-f,--filter}'[filters to apply]:filters'
  '(-o --output)'{-o,--output}'[output format]:format:(text json yaml raw)'
  '--padding[column padding]:padding'
  '--registry[YAML field registry]:file:_files'
  '(-q --search)'{-q,--search}'[free-text search]:text'
  '(-s --sort)'{-s,--sort}'[sort fields]:fields'
  '(-t --titles)'{-t,--titles}'[show titles]'
  '--tldr[show tldr page]'
  )

  if (( CURRENT == 2 )); then
    _describe -t commands 'leadq commands' cmds
    return
  fi

  local curcontext="$curcontext" state line
  case $words[2] in
    query)
      _arguments -C \
        $common \
        '--count[print only the match count]' \
        '(-d --directory)'{-d,--directory}'[reference directory]:file:_files' \
        '--parent[path to the record list]:path' \
        '::SOURCE:_files'
      ;;
    fields)
      _arguments -C $common
      ;;
    completion)
      _arguments '1: :((bash zsh))'
      ;;
    *)
      _arguments -C $common
      ;;
  esac
}

# If this file is sourced directly (not autoloaded via fpath), ensure compsys
# is initialized and register the completion
if ! typeset -f compdef >/dev/null 2>&1; then
  autoload -Uz compinit && compinit -i
fi
compdef _leadq leadq
`

func completionCommandAction(ctx context.Context, cmd *cli.Command) error {
	w := Writer(cmd)

	shell := cmd.Args().First()
	if shell == "" {
		// Try to detect from SHELL.
		sh := os.Getenv("SHELL")
		switch {
		case strings.HasSuffix(sh, "zsh"):
			shell = "zsh"
		case strings.HasSuffix(sh, "bash"):
			shell = "bash"
		}
	}

	switch shell {
	case "bash":
		fmt.Fprint(w, bashCompletionScript)
	case "zsh":
		fmt.Fprint(w, zshCompletionScript)
	default:
		fmt.Fprintln(cmd.Root().ErrWriter, "usage: leadq completion [bash|zsh]")
	}
	return nil
}

func completionCommandBuilder(meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "completion",
		Usage:     "generate shell completion script",
		UsageText: "leadq completion [bash|zsh]",
		Metadata: map[string]any{
			"meta": meta,
		},
		Action: completionCommandAction,
	}
}
