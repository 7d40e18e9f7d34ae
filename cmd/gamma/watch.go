package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/freixas/gamma-sub005/internal/engine"
	"github.com/freixas/gamma-sub005/internal/parser"
)

func newWatchCmd() *cobra.Command {
	var (
		controlsFile string
		format       string
		output       string
	)

	cmd := &cobra.Command{
		Use:   "watch <script>",
		Short: "Re-execute a script whenever it changes",
		Long: `Watches the script (and the controls file, if given) and re-executes on
every change. Redraws whose geometry hashes identically to the previous
pass are skipped.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return watchLoop(cmd, args[0], controlsFile, format, output)
		},
	}

	cmd.Flags().StringVar(&controlsFile, "controls", "", "JSON file with current control values")
	cmd.Flags().StringVar(&format, "format", "json", "Output format: 'json' or 'cbor'")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write the diagram to a file instead of stdout")
	return cmd
}

// watchSession holds the state carried across redraws: the engine (whose
// statics survive control-file changes) and the last diagram hash.
type watchSession struct {
	script       string
	controlsFile string
	format       string
	output       string
	log          io.Writer

	eng      *engine.Engine
	lastHash [32]byte
	haveHash bool
}

func newWatchSession(script, controlsFile, format, output string, log io.Writer) *watchSession {
	return &watchSession{
		script:       script,
		controlsFile: controlsFile,
		format:       format,
		output:       output,
		log:          log,
		eng:          engine.New(),
	}
}

// redraw re-executes the script. A changed script is a fresh script, so its
// statics start over; control changes re-execute the same script and statics
// survive them.
func (s *watchSession) redraw(scriptChanged bool) {
	src, err := os.ReadFile(s.script)
	if err != nil {
		fmt.Fprintf(s.log, "read error: %v\n", err)
		return
	}
	prog, err := parser.Compile(string(src))
	if err != nil {
		fmt.Fprintln(s.log, err)
		return
	}
	bindings, err := loadBindings(s.controlsFile)
	if err != nil {
		fmt.Fprintln(s.log, err)
		return
	}

	if scriptChanged {
		s.eng.ResetStatics()
	}
	d, err := s.eng.Execute(prog, bindings)
	if err != nil {
		fmt.Fprintln(s.log, err)
		return
	}

	hash, err := d.Hash()
	if err != nil {
		fmt.Fprintf(s.log, "hash error: %v\n", err)
		return
	}
	if s.haveHash && hash == s.lastHash {
		fmt.Fprintf(s.log, "unchanged (%x)\n", hash[:4])
		return
	}
	s.lastHash, s.haveHash = hash, true

	for _, line := range d.Prints {
		fmt.Fprintln(s.log, line)
	}
	if err := writeDiagram(d, s.format, s.output); err != nil {
		fmt.Fprintf(s.log, "write error: %v\n", err)
		return
	}
	fmt.Fprintf(s.log, "redrew %d commands (%x)\n", len(d.Commands), hash[:4])
}

func watchLoop(cmd *cobra.Command, script, controlsFile, format, output string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("starting watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	// Watch the containing directories, not the files themselves: editors
	// that save via rename would otherwise drop the watch.
	scriptPath := filepath.Clean(script)
	watched := map[string]bool{scriptPath: true}
	dirs := map[string]bool{filepath.Dir(script): true}
	if controlsFile != "" {
		watched[filepath.Clean(controlsFile)] = true
		dirs[filepath.Dir(controlsFile)] = true
	}
	for dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("watching %s: %w", dir, err)
		}
	}

	session := newWatchSession(script, controlsFile, format, output, cmd.ErrOrStderr())
	session.redraw(true)
	for {
		select {
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			name := filepath.Clean(ev.Name)
			if !watched[name] {
				continue
			}
			if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Rename) {
				session.redraw(name == scriptPath)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "watch error: %v\n", err)
		}
	}
}
