package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/freixas/gamma-sub005/internal/diagram"
	"github.com/freixas/gamma-sub005/internal/engine"
	"github.com/freixas/gamma-sub005/internal/parser"
)

func newRunCmd() *cobra.Command {
	var (
		controlsFile string
		format       string
		output       string
	)

	cmd := &cobra.Command{
		Use:   "run <script>",
		Short: "Execute a script and emit the resolved diagram",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("reading script: %w", err)
			}

			prog, err := parser.Compile(string(src))
			if err != nil {
				return err
			}

			bindings, err := loadBindings(controlsFile)
			if err != nil {
				return err
			}

			d, err := engine.New().Execute(prog, bindings)
			if err != nil {
				return err
			}

			for _, line := range d.Prints {
				fmt.Fprintln(cmd.ErrOrStderr(), line)
			}
			return writeDiagram(d, format, output)
		},
	}

	cmd.Flags().StringVar(&controlsFile, "controls", "", "JSON file with current control values")
	cmd.Flags().StringVar(&format, "format", "json", "Output format: 'json' or 'cbor'")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write the diagram to a file instead of stdout")
	return cmd
}

func writeDiagram(d *diagram.Diagram, format, output string) error {
	var (
		data []byte
		err  error
	)
	switch format {
	case "json":
		data, err = json.MarshalIndent(d, "", "  ")
		data = append(data, '\n')
	case "cbor":
		data, err = d.MarshalCanonical()
	default:
		return fmt.Errorf("unsupported format %q: use 'json' or 'cbor'", format)
	}
	if err != nil {
		return err
	}

	if output == "" {
		_, err = os.Stdout.Write(data)
		return err
	}
	return os.WriteFile(output, data, 0o644)
}

func newCompileCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "compile <script>",
		Short: "Compile a script and print the instruction listing",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("reading script: %w", err)
			}
			prog, err := parser.Compile(string(src))
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), prog.Disassemble())
			return nil
		},
	}
}
