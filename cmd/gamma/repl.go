package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"
	"github.com/spf13/cobra"

	"github.com/freixas/gamma-sub005/internal/engine"
	"github.com/freixas/gamma-sub005/internal/parser"
)

func newReplCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Interactive script session",
		Long: `Reads statements line by line. Each accepted line is appended to the
session script and the whole script is re-executed, printing whatever the
new line printed. ':reset' starts over, ':list' shows the session script,
':quit' exits.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRepl(cmd)
		},
	}
}

func runRepl(cmd *cobra.Command) error {
	line := liner.NewLiner()
	defer func() { _ = line.Close() }()
	line.SetCtrlCAborts(true)

	historyPath := ""
	if home, err := os.UserHomeDir(); err == nil {
		historyPath = filepath.Join(home, ".gamma_history")
		if f, err := os.Open(historyPath); err == nil {
			_, _ = line.ReadHistory(f)
			_ = f.Close()
		}
	}
	defer func() {
		if historyPath == "" {
			return
		}
		if f, err := os.Create(historyPath); err == nil {
			_, _ = line.WriteHistory(f)
			_ = f.Close()
		}
	}()

	eng := engine.New()
	var session []string
	seenPrints := 0

	for {
		input, err := line.Prompt("gamma> ")
		if err != nil {
			// Ctrl-C or EOF ends the session.
			fmt.Fprintln(cmd.OutOrStdout())
			return nil
		}
		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		line.AppendHistory(input)

		switch input {
		case ":quit", ":q":
			return nil
		case ":reset":
			session = nil
			seenPrints = 0
			eng.ResetStatics()
			continue
		case ":list":
			for _, s := range session {
				fmt.Fprintln(cmd.OutOrStdout(), s)
			}
			continue
		}

		candidate := append(append([]string(nil), session...), input)
		prog, err := parser.Compile(strings.Join(candidate, "\n"))
		if err != nil {
			fmt.Fprintln(cmd.ErrOrStderr(), err)
			continue
		}

		d, err := eng.Execute(prog, engine.Bindings{})
		if err != nil {
			fmt.Fprintln(cmd.ErrOrStderr(), err)
			continue
		}

		session = candidate
		if seenPrints > len(d.Prints) {
			seenPrints = len(d.Prints)
		}
		for _, p := range d.Prints[seenPrints:] {
			fmt.Fprintln(cmd.OutOrStdout(), p)
		}
		seenPrints = len(d.Prints)
	}
}
