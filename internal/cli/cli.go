// Package cli implements the circlepack command-line interface.
//
// This package provides commands for running the packing engines on JSON
// inputs, rendering layouts as SVG or HTML charts, and serving the HTTP
// API. The CLI is built using cobra and supports verbose logging via the
// charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - relax: Push overlapping circles apart by iterated pairwise repulsion
//   - tangency: Pack circles from a tangency graph
//   - layout: Place circles one by one around a growing front
//   - select: Pick a non-overlapping subset of circles
//   - render: Generate SVG, HTML, DOT, or PNG visualizations
//   - serve: Run the HTTP API server
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging.
package cli

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/circlepack/pkg/buildinfo"
	"github.com/matzehuels/circlepack/pkg/cache"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "circlepack"
)

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
	Config Config
}

// New creates a new CLI instance with a default logger and the on-disk
// configuration applied.
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
		Use:          "circlepack",
		Short:        "Circlepack arranges circles in the plane",
		Long:         `Circlepack is a CLI tool for circle packing: it repels overlapping circles apart, packs circles from tangency graphs, lays out circles progressively around a growing front, and selects non-overlapping subsets.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	// Register all subcommands
	root.AddCommand(c.relaxCommand())
	root.AddCommand(c.tangencyCommand())
	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.selectCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Layout Cache
// =============================================================================

// newCache returns the layout cache for CLI commands: a file cache under
// the XDG cache directory, or a null cache when caching is disabled.
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

// cachedCompute runs compute unless an identical request is cached. The
// returned bool reports whether the result came from cache.
func (c *CLI) cachedCompute(ctx context.Context, noCache bool, engine string, req any, compute func() (any, error)) ([]byte, bool, error) {
	ca, err := newCache(noCache)
	if err != nil {
		return nil, false, err
	}
	defer ca.Close()

	key := cache.LayoutKey(engine, req)
	if data, hit, err := ca.Get(ctx, key); err == nil && hit {
		return data, true, nil
	}

	result, err := compute()
	if err != nil {
		return nil, false, err
	}
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return nil, false, err
	}
	if err := ca.Set(ctx, key, data, 0); err != nil {
		c.Logger.Debug("cache set failed", "error", err)
	}
	return data, false, nil
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/circlepack/).
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

// =============================================================================
// Output Helpers
// =============================================================================

// outputPath derives the output file from the input when -o is not given.
func outputPath(input, output, suffix string) string {
	if output != "" {
		return output
	}
	base := strings.TrimSuffix(input, filepath.Ext(input))
	return base + suffix
}

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{"svg"}
	}
	return strings.Split(s, ",")
}
