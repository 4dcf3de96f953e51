package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime/debug"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr, os.Getenv))
}

// run executes the command line and returns the process exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer, getenv func(string) string) int {
	a := &app{
		stdout: stdout,
		stderr: stderr,
		getenv: getenv,
		fs:     afero.NewOsFs(),
		log:    zerolog.Nop(),
	}
	root := newRootCommand(a)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(stderr, "tagmark: %v\n", err)
		return 1
	}
	return 0
}

func newRootCommand(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "tagmark",
		Short:         "Find and highlight tagged comments such as TODO, FIXME, ! and ?",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	if info, ok := debug.ReadBuildInfo(); ok {
		root.Version = info.Main.Version
	} else {
		root.Version = "unknown"
	}
	root.PersistentFlags().StringVar(&a.configPath, "config", "", "config file (default: nearest .tagmark.*, then $XDG_CONFIG_HOME/tagmark, then ~; env TAGMARK_CONFIG)")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "trace|debug|info|warn|error (env TAGMARK_LOG_LEVEL)")

	root.AddCommand(
		newScanCommand(a),
		newHighlightCommand(a),
		newWatchCommand(a),
		newLanguagesCommand(a),
	)
	return root
}
