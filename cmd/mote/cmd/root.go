// ============================================================================
// mote - Scripting Language Front End
// ============================================================================
//
// Package:     cmd
// Description: Root command and shared application wiring for the mote CLI
// Author:      msto63
// Created:     2026-10-16
// License:     MIT
// ============================================================================

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	motelog "github.com/msto63/mote/foundation/core/log"
	"github.com/msto63/mote/foundation/mote"
	"github.com/msto63/mote/internal/frontend"
	"github.com/msto63/mote/internal/history"
	"github.com/msto63/mote/internal/render"
	"github.com/msto63/mote/pkg/core/cache"
	"github.com/msto63/mote/pkg/core/config"
	"github.com/msto63/mote/pkg/core/logging"
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	verbose bool
)

// errRejected marks runs whose source failed to lex or parse. The
// diagnostic has already been printed when it is returned.
var errRejected = errors.New("source rejected")

var rootCmd = &cobra.Command{
	Use:   "mote",
	Short: "mote - scripting language front end",
	Long: `mote turns source text of the mote scripting language into tokens
and syntax trees.

Commands:
  tokens   - print the token stream of a source
  parse    - print the syntax tree of a source
  check    - validate one or more source files
  explore  - edit a source and watch its tree update
  history  - inspect recorded runs
  serve    - run the gRPC front end service
  health   - check the local engine or a remote server`,
	SilenceErrors:     true,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

// Execute runs the CLI
func Execute() error {
	return ExecuteContext(context.Background())
}

// ExecuteContext runs the CLI with a parent context
func ExecuteContext(ctx context.Context) error {
	defer teardown()
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./configs/mote.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// application holds what the commands share for one invocation
type application struct {
	config     *config.Config
	configPath string
	logger     *motelog.Logger
	store      history.Store
	results    *cache.Cache[*mote.Result]
	service    *frontend.Service
}

var app *application

func setup(cmd *cobra.Command, args []string) error {
	cfg, path, err := config.LoadDefault(cfgFile)
	if err != nil {
		return err
	}

	lc := logging.FromConfig("mote", cfg.Log)
	lc.Console = cmd.ErrOrStderr()
	if verbose {
		lc.Level = "debug"
	}
	logger, err := logging.NewLogger(lc)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}

	app = &application{config: cfg, configPath: path, logger: logger}
	if path != "" {
		logger.Debug("configuration loaded", motelog.Fields{"path": path})
	}
	return nil
}

func teardown() {
	if app == nil {
		return
	}
	if app.results != nil {
		app.results.Close()
	}
	if app.store != nil {
		if err := app.store.Close(); err != nil {
			app.logger.WarnWithErr("failed to close history", err)
		}
	}
	logging.Close()
	app = nil
}

// openHistory opens the configured run store
func (a *application) openHistory() (history.Store, error) {
	if a.store != nil {
		return a.store, nil
	}
	if !a.config.History.Enabled {
		return nil, errors.New("history is disabled (set history.enabled in the config)")
	}

	store, err := history.NewSQLiteStore(history.SQLiteConfig{Path: a.config.History.Path})
	if err != nil {
		return nil, err
	}
	a.store = store
	return store, nil
}

// frontend returns the front end service, recording runs when history is enabled
func (a *application) frontend() (*frontend.Service, error) {
	if a.service != nil {
		return a.service, nil
	}

	engine, err := mote.NewEngine(mote.Options{
		Logger:          a.logger,
		MaxSourceLength: a.config.Frontend.MaxSourceLength,
	})
	if err != nil {
		return nil, err
	}

	var store history.Store
	if a.config.History.Enabled {
		if store, err = a.openHistory(); err != nil {
			return nil, err
		}
	}

	if size := a.config.Frontend.CacheSize; size > 0 {
		a.results = cache.New[*mote.Result](cache.Config{
			MaxItems: size,
			TTL:      a.config.Frontend.CacheTTL.Duration,
		})
	}

	svc, err := frontend.NewService(frontend.Config{
		Engine: engine,
		Store:  store,
		Cache:  a.results,
		Logger: a.logger,
	})
	if err != nil {
		return nil, err
	}
	a.service = svc
	return svc, nil
}

// reject prints the diagnostic for a failed run
func reject(w io.Writer, name, source string, info *frontend.ErrorInfo) error {
	fmt.Fprintln(w, render.Diagnostic(name, source, info))
	return fmt.Errorf("%s: %w", name, errRejected)
}

// readSource reads the named file, or stdin for "-" and no argument.
// Inline source given with --eval takes precedence.
func readSource(cmd *cobra.Command, args []string, inline string) (name, source string, err error) {
	switch {
	case inline != "":
		return "<eval>", inline, nil
	case len(args) == 0 || args[0] == "-":
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return "<stdin>", string(data), nil
	default:
		data, err := os.ReadFile(args[0])
		if err != nil {
			return "", "", err
		}
		return args[0], string(data), nil
	}
}
