package main

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/browser"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/phyten/tagmark/internal/buffer"
	"github.com/phyten/tagmark/internal/detect"
	"github.com/phyten/tagmark/internal/grammar"
	"github.com/phyten/tagmark/internal/render"
	"github.com/phyten/tagmark/internal/render/ansi"
	"github.com/phyten/tagmark/internal/render/html"
	"github.com/phyten/tagmark/internal/scan"
	"github.com/phyten/tagmark/internal/tags"
	"github.com/phyten/tagmark/internal/termcolor"
)

// openBrowser is replaced in tests.
var openBrowser = browser.OpenFile

func newHighlightCommand(a *app) *cobra.Command {
	var (
		flags   layerFlags
		asHTML  bool
		open    bool
		outPath string
		lang    string
	)
	cmd := &cobra.Command{
		Use:   "highlight <file>",
		Short: "Print a file with its tagged comments styled",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.setup(cmd, &flags); err != nil {
				return err
			}
			path := args[0]
			data, err := afero.ReadFile(a.fs, path)
			if err != nil {
				return errors.WithStack(err)
			}
			if lang == "" {
				lang = detect.FromPathAndContent(path, data).Name
			} else {
				lang = detect.NormalizeLangName(lang)
			}
			if lang == "" {
				return errors.Errorf("cannot detect the language of %s, pass --lang", path)
			}
			if !grammar.Known(lang) {
				return errors.Errorf("no comment grammar for language %q", lang)
			}
			doc := buffer.New(path, lang, string(data))

			if !asHTML && !open {
				var file *os.File
				if f, ok := a.stdout.(*os.File); ok {
					file = f
				}
				mode, err := termcolor.ParseMode(a.settings.Scan.Color)
				if err != nil {
					return err
				}
				rd := ansi.New(ansi.Options{
					Mode:        ansi.AllLines,
					LineNumbers: a.settings.Scan.LineNumbers,
					Terminal:    termcolor.Detect(mode, file, termcolor.EnvMap(os.Environ())),
				})
				if err := a.renderDoc(cmd.Context(), doc, rd); err != nil {
					return err
				}
				_, err = rd.WriteTo(a.stdout)
				return err
			}

			rd := html.New()
			rd.Title = filepath.Base(path)
			if err := a.renderDoc(cmd.Context(), doc, rd); err != nil {
				return err
			}
			return a.writeHTML(rd, outPath, open)
		},
	}
	flags.registerCore(cmd)
	flags.registerColor(cmd)
	cmd.Flags().BoolVar(&flags.lineNumbers, "line-numbers", false, "prefix terminal output with line numbers")
	cmd.Flags().BoolVar(&asHTML, "html", false, "write an HTML page instead of terminal output")
	cmd.Flags().BoolVar(&open, "open", false, "open the HTML page in a browser (implies --html)")
	cmd.Flags().StringVar(&outPath, "out", "", "write the HTML page to this file")
	cmd.Flags().StringVar(&lang, "lang", "", "language id, overrides detection")
	return cmd
}

// renderDoc runs one scan pass over doc with a registry allocated on rd.
func (a *app) renderDoc(ctx context.Context, doc buffer.Document, rd render.Renderer) error {
	reg := tags.New(a.settings.TagSpecs(), rd)
	resolver := grammar.NewResolver(a.settings.GrammarOptions(), reg)
	if err := resolver.Preflight(); err != nil {
		return errors.Errorf("grammar table: %w", err)
	}
	_, err := scan.NewSession(resolver, reg).Update(ctx, doc, rd)
	return err
}

func (a *app) writeHTML(rd io.WriterTo, outPath string, open bool) error {
	if outPath == "" && !open {
		_, err := rd.WriteTo(a.stdout)
		return err
	}
	var (
		f   afero.File
		err error
	)
	if outPath != "" {
		f, err = a.fs.Create(outPath)
	} else {
		f, err = afero.TempFile(a.fs, "", "tagmark-*.html")
	}
	if err != nil {
		return errors.WithStack(err)
	}
	if _, err := rd.WriteTo(f); err != nil {
		_ = f.Close()
		return errors.WithStack(err)
	}
	if err := f.Close(); err != nil {
		return errors.WithStack(err)
	}
	name := f.Name()
	a.log.Debug().Str("path", name).Msg("html written")
	if !open {
		return nil
	}
	if !strings.HasSuffix(name, ".html") {
		a.log.Warn().Str("path", name).Msg("browser may not render a file without .html suffix")
	}
	return errors.WithStack(openBrowser(name))
}
