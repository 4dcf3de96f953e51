package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/phyten/tagmark/internal/output"
	"github.com/phyten/tagmark/internal/progress"
	"github.com/phyten/tagmark/internal/watch"
)

func newWatchCommand(a *app) *cobra.Command {
	var (
		flags    layerFlags
		debounce time.Duration
	)
	cmd := &cobra.Command{
		Use:   "watch [paths...]",
		Short: "Scan, then rescan files as they change until interrupted",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.setup(cmd, &flags); err != nil {
				return err
			}
			sel, err := output.ResolveFields(a.settings.Scan.Fields)
			if err != nil {
				return err
			}
			scanner, err := a.newScanner()
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			format := a.settings.Scan.Output
			var writeErr error
			handler := func(ev watch.Event) {
				if writeErr != nil {
					return
				}
				writeErr = a.writeEvent(ev, format, sel)
				a.reportErrors(ev.Errors)
			}
			opts := watch.Options{
				Scan:     a.workspaceOptions(args, progress.NewLogObserver(a.log)),
				Debounce: debounce,
				Initial:  true,
			}
			if err := watch.Run(ctx, scanner, opts, handler); err != nil {
				return err
			}
			return writeErr
		},
	}
	flags.registerCore(cmd)
	flags.registerFilters(cmd)
	flags.registerOutput(cmd)
	cmd.Flags().DurationVar(&debounce, "debounce", watch.DefaultDebounce, "wait this long after a change before rescanning")
	return cmd
}

// writeEvent prints one pass. Line oriented formats get a banner naming
// the file so consecutive passes can be told apart.
func (a *app) writeEvent(ev watch.Event, format string, sel output.FieldSelection) error {
	switch format {
	case "json":
		return output.WriteJSON(a.stdout, ev)
	case "ndjson":
		return output.WriteNDJSON(a.stdout, ev.Items)
	}
	if format == "table" || format == "markdown" {
		banner := ev.Path
		switch {
		case banner == "":
			banner = "initial scan"
		case ev.Removed:
			banner += " (removed)"
		}
		if _, err := fmt.Fprintf(a.stdout, "== %s [%s]\n", banner, ev.PassID); err != nil {
			return err
		}
	}
	if ev.Removed {
		return nil
	}
	return output.Write(a.stdout, format, ev.Items, sel, ev)
}
