package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/phyten/tagmark/internal/grammar"
	"github.com/phyten/tagmark/internal/output"
)

type languageRow struct {
	ID         string   `json:"id"`
	Line       []string `json:"line,omitempty"`
	BlockStart string   `json:"block_start,omitempty"`
	BlockEnd   string   `json:"block_end,omitempty"`
	PlainText  bool     `json:"plain_text,omitempty"`
	Enabled    bool     `json:"enabled"`
}

func newLanguagesCommand(a *app) *cobra.Command {
	var (
		flags  layerFlags
		asJSON bool
	)
	cmd := &cobra.Command{
		Use:   "languages",
		Short: "List the languages with a comment grammar",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.setup(cmd, &flags); err != nil {
				return err
			}
			resolver := grammar.NewResolver(a.settings.GrammarOptions(), nil)
			var rows []languageRow
			for _, lang := range grammar.Languages() {
				g := resolver.Resolve(lang)
				rows = append(rows, languageRow{
					ID:         lang,
					Line:       g.LineDelimiters,
					BlockStart: g.BlockStart,
					BlockEnd:   g.BlockEnd,
					PlainText:  g.PlainText,
					Enabled:    g.SingleLine || g.Multiline,
				})
			}
			if asJSON {
				return output.WriteJSON(a.stdout, rows)
			}
			tw := tabwriter.NewWriter(a.stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "LANGUAGE\tLINE\tBLOCK\tENABLED")
			for _, r := range rows {
				block := "-"
				if r.BlockStart != "" {
					block = r.BlockStart + " " + r.BlockEnd
				}
				line := "-"
				if len(r.Line) > 0 {
					line = strings.Join(r.Line, " ")
				}
				enabled := "no"
				if r.Enabled {
					enabled = "yes"
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", r.ID, line, block, enabled)
			}
			return tw.Flush()
		},
	}
	flags.registerCore(cmd)
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}
