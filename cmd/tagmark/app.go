package main

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/phyten/tagmark/internal/config"
	"github.com/phyten/tagmark/internal/progress"
	"github.com/phyten/tagmark/internal/workspace"
)

type app struct {
	stdout io.Writer
	stderr io.Writer
	getenv func(string) string
	fs     afero.Fs

	configPath string
	logLevel   string

	settings config.Settings
	log      zerolog.Logger
}

// setup resolves the settings of one command: defaults, then the config
// file, then TAGMARK_* variables, then flags. It installs the logger on the
// command context.
func (a *app) setup(cmd *cobra.Command, flags *layerFlags) error {
	explicit := a.configPath
	if explicit == "" {
		explicit = a.getenv("TAGMARK_CONFIG")
	}
	cwd, err := os.Getwd()
	if err != nil {
		return errors.WithStack(err)
	}
	path, where, err := config.Find(cwd, explicit, a.getenv("XDG_CONFIG_HOME"), a.getenv("HOME"))
	if err != nil {
		return errors.Errorf("config: %w", err)
	}
	fileCfg, err := config.Load(path)
	if err != nil {
		return errors.Errorf("config: %w", err)
	}
	envCfg, err := config.FromEnv(a.getenv)
	if err != nil {
		return errors.Errorf("environment: %w", err)
	}
	flagCfg := flags.config(cmd)
	if a.logLevel != "" {
		level := a.logLevel
		flagCfg.LogLevel = &level
	}

	merged := config.Merge(config.DefaultSettings(), fileCfg, envCfg, flagCfg)
	settings, warnings, err := config.Validate(merged)
	if err != nil {
		return err
	}
	level, err := zerolog.ParseLevel(settings.LogLevel)
	if err != nil {
		return errors.WithStack(err)
	}
	a.settings = settings
	a.log = zerolog.New(zerolog.ConsoleWriter{Out: a.stderr, NoColor: true}).
		Level(level).
		With().Timestamp().Logger()
	if path != "" {
		a.log.Debug().Str("path", path).Str("from", where).Msg("config loaded")
	}
	for _, w := range warnings {
		a.log.Warn().Msg(w)
	}
	cmd.SetContext(a.log.WithContext(cmd.Context()))
	return nil
}

// newScanner builds the workspace scanner and compiles the whole grammar
// table up front, so a broken pattern fails before any file is read.
func (a *app) newScanner() (*workspace.Scanner, error) {
	s := workspace.New(a.fs, a.settings.TagSpecs(), a.settings.GrammarOptions())
	if err := s.Resolver().Preflight(); err != nil {
		return nil, errors.Errorf("grammar table: %w", err)
	}
	return s, nil
}

func (a *app) workspaceOptions(roots []string, observer progress.Observer) workspace.Options {
	s := a.settings.Scan
	return workspace.Options{
		Roots:        roots,
		Include:      s.Include,
		Exclude:      s.Exclude,
		Langs:        s.Langs,
		Jobs:         s.Jobs,
		MaxFileBytes: s.MaxFileBytes,
		Progress:     observer,
	}
}

func (a *app) progressObserver(force, no bool) progress.Observer {
	logObs := progress.NewLogObserver(a.log)
	if !progress.ShouldShowProgress(force, no) {
		return logObs
	}
	return progress.NewMultiObserver(progress.NewTTYObserver(a.stderr), logObs)
}

// reportErrors prints a summary of per-file failures to stderr.
func (a *app) reportErrors(errs []workspace.FileError) {
	if len(errs) == 0 {
		return
	}
	const maxListed = 10
	fmt.Fprintf(a.stderr, "tagmark: %d file(s) could not be scanned\n", len(errs))
	for i, e := range errs {
		if i == maxListed {
			fmt.Fprintf(a.stderr, "  ... and %d more\n", len(errs)-maxListed)
			break
		}
		fmt.Fprintf(a.stderr, "  %s (%s): %s\n", e.File, e.Stage, e.Message)
	}
}
