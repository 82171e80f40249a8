// Package cli implements the classlayout command-line interface.
package cli

import (
	"context"
	"io"
	"maps"
	"path/filepath"
	"slices"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/classlayout/pkg/buildinfo"
	"github.com/matzehuels/classlayout/pkg/cache"
	"github.com/matzehuels/classlayout/pkg/layout"
	"github.com/matzehuels/classlayout/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "classlayout"

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

	// Persistent flags.
	configPath string
	noCache    bool
	redisURL    string
	mongoURI    string
	cachePrefix string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "classlayout lays out class diagrams",
		Long: `classlayout computes positions for the entities of a class diagram,
places parents above children, routes relationships between box edges and
keeps relationship labels from overlapping. Layouts are written as JSON and
can be rendered to SVG, Graphviz DOT, PDF or PNG.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	flags := root.PersistentFlags()
	flags.StringVarP(&c.configPath, "config", "c", "", "layout config file (TOML)")
	flags.BoolVar(&c.noCache, "no-cache", false, "disable caching")
	flags.StringVar(&c.redisURL, "redis", "", "cache in Redis at this URL instead of on disk")
	flags.StringVar(&c.mongoURI, "mongo", "", "cache in MongoDB at this URI instead of on disk")
	flags.StringVar(&c.cachePrefix, "cache-prefix", "", "prefix for cache keys, to share one backend between environments")

	// Register all subcommands
	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner backed by the cache selected by the
// persistent flags.
func (c *CLI) newRunner(ctx context.Context) (*pipeline.Runner, error) {
	store, err := c.newCache(ctx)
	if err != nil {
		return nil, err
	}
	var keyer cache.Keyer
	if c.cachePrefix != "" {
		keyer = cache.NewScopedKeyer(nil, c.cachePrefix)
	}
	return pipeline.NewRunner(store, keyer, c.Logger), nil
}

func (c *CLI) newCache(ctx context.Context) (cache.Cache, error) {
	switch {
	case c.noCache:
		return cache.NewNullCache(), nil
	case c.redisURL != "":
		return cache.NewRedisCache(ctx, c.redisURL)
	case c.mongoURI != "":
		return cache.NewMongoCache(ctx, c.mongoURI, "", "")
	}
	dir, err := cacheDir()
	if err != nil {
		c.Logger.Warn("no cache directory, caching disabled", "error", err)
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// loadConfig returns the layout configuration from --config, or the
// defaults when the flag is unset.
func (c *CLI) loadConfig() (layout.Config, error) {
	if c.configPath == "" {
		return layout.DefaultConfig(), nil
	}
	return layout.LoadConfig(c.configPath)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/classlayout/).
func cacheDir() (string, error) {
	return cache.DefaultDir()
}

// basePath derives the base output path from the output and input file paths.
// If output is empty, it strips the extension from input, including a
// trailing ".layout" left by layout documents. Known format extensions are
// stripped from output.
func basePath(output, input string) string {
	if output == "" {
		base := strings.TrimSuffix(input, filepath.Ext(input))
		return strings.TrimSuffix(base, ".layout")
	}
	// Longest first so ".nodelink.svg" wins over ".svg".
	exts := slices.Collect(maps.Values(pipeline.Extensions))
	slices.SortFunc(exts, func(a, b string) int { return len(b) - len(a) })
	for _, ext := range exts {
		if strings.HasSuffix(output, ext) {
			return strings.TrimSuffix(output, ext)
		}
	}
	return output
}

// outputPath returns where an artifact of format is written.
func outputPath(base, format string) string {
	return base + pipeline.Extensions[format]
}
