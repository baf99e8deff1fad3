// Package cli implements the enigma command-line interface.
//
// This package provides commands for generating constraint puzzles, solving
// and validating player grids, playing puzzles interactively in the terminal,
// building datasets, and serving the HTTP API. The CLI is built using cobra
// and supports verbose logging via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - generate: Produce a puzzle with a unique solution
//   - solve: Run the bounded solver against a stored puzzle
//   - validate: Check a player grid against a puzzle's constraints
//   - play: Interactive terminal play with live validation
//   - dataset: Batch-generate puzzles into JSONL files or MongoDB
//   - serve: Run the HTTP API
//   - cache: Manage the local puzzle cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging.
package cli

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/ianfhunter/enigma/pkg/buildinfo"
	"github.com/ianfhunter/enigma/pkg/cache"
	"github.com/ianfhunter/enigma/pkg/engine"
	"github.com/ianfhunter/enigma/pkg/session"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "enigma"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	Config *Config
}

// New creates a new CLI instance with a default logger and the on-disk
// configuration (or built-in defaults when no config file exists).
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: LoadConfig(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "enigma",
		Short:        "Enigma generates and verifies constraint puzzles",
		Long:         `Enigma is a CLI tool for generating logic puzzles (slant, tents, suko, tetro) with provably unique solutions, solving and validating player grids, and serving the puzzle API.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	// Register all subcommands
	root.AddCommand(c.generateCommand())
	root.AddCommand(c.solveCommand())
	root.AddCommand(c.validateCommand())
	root.AddCommand(c.playCommand())
	root.AddCommand(c.datasetCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates an engine runner for CLI use.
func (c *CLI) newRunner(noCache bool) (*engine.Runner, error) {
	cache, err := newCache(noCache)
	if err != nil {
		return nil, err
	}
	return engine.NewRunner(cache, nil, c.Logger), nil
}

func newCache(noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/enigma/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// configDir returns the config directory using XDG standard (~/.config/enigma/).
func configDir() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName), nil
}

// newSessionStore opens the play-session store under the config directory.
func newSessionStore() (*session.FileStore, error) {
	dir, err := configDir()
	if err != nil {
		return nil, err
	}
	return session.NewFileStore(filepath.Join(dir, "sessions"))
}

// =============================================================================
// Options Helpers
// =============================================================================

// engineOptions builds engine options from config defaults. Flag values
// override these on a per-command basis.
func (c *CLI) engineOptions() engine.Options {
	return engine.Options{
		Family: c.Config.DefaultFamily,
		Rows:   c.Config.DefaultSize,
		Cols:   c.Config.DefaultSize,
	}
}
