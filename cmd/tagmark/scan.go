package main

import (
	"github.com/spf13/cobra"

	"github.com/phyten/tagmark/internal/output"
)

func newScanCommand(a *app) *cobra.Command {
	var (
		flags        layerFlags
		showProgress bool
		noProgress   bool
	)
	cmd := &cobra.Command{
		Use:   "scan [paths...]",
		Short: "List tagged comments under the given paths (default: .)",
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
			roots := args
			if len(roots) == 0 {
				roots = []string{"."}
			}
			res, err := scanner.Run(cmd.Context(), a.workspaceOptions(roots, a.progressObserver(showProgress, noProgress)))
			if err != nil {
				return err
			}
			if err := output.Write(a.stdout, a.settings.Scan.Output, res.Items, sel, res); err != nil {
				return err
			}
			a.reportErrors(res.Errors)
			return nil
		},
	}
	flags.registerCore(cmd)
	flags.registerFilters(cmd)
	flags.registerOutput(cmd)
	cmd.Flags().BoolVar(&showProgress, "progress", false, "always draw the progress line on stderr")
	cmd.Flags().BoolVar(&noProgress, "no-progress", false, "never draw the progress line")
	return cmd
}
