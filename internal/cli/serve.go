package cli

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/wiregraph/pkg/cache"
	"github.com/matzehuels/wiregraph/pkg/pipeline"
	"github.com/matzehuels/wiregraph/pkg/server"
	"github.com/matzehuels/wiregraph/pkg/store"
)

// Environment variables read by serve.
const (
	envRedisURL = "WIREGRAPH_REDIS_URL"
	envMongoURI = "WIREGRAPH_MONGO_URI"
)

// redisPrefix namespaces keys in a shared Redis instance.
const redisPrefix = appName + ":"

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	addr     string
	redisURL string
	mongoURI string
	archive  bool // keep analyses in memory when no MongoDB is configured
	noCache  bool
}

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	opts := serveOpts{
		addr:     server.DefaultAddr,
		redisURL: os.Getenv(envRedisURL),
		mongoURI: os.Getenv(envMongoURI),
	}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the analysis API over HTTP",
		Long: `Serve the analysis API over HTTP.

Results are cached in Redis when --redis is set (env ` + envRedisURL + `),
otherwise in the local cache directory. Analyses are archived in MongoDB
when --mongo is set (env ` + envMongoURI + `), or in memory with --archive.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", opts.addr, "listen address")
	cmd.Flags().StringVar(&opts.redisURL, "redis", opts.redisURL, "Redis URL for the shared cache")
	cmd.Flags().StringVar(&opts.mongoURI, "mongo", opts.mongoURI, "MongoDB URI for the analysis archive")
	cmd.Flags().BoolVar(&opts.archive, "archive", false, "archive analyses in memory")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, opts serveOpts) error {
	reg, err := c.registry()
	if err != nil {
		return err
	}

	ch, keyer, err := c.serveCache(ctx, opts)
	if err != nil {
		return err
	}
	runner := pipeline.NewRunner(ch, keyer, reg, c.Logger)
	defer runner.Close()

	st, err := c.serveStore(ctx, opts)
	if err != nil {
		return err
	}
	if st != nil {
		defer st.Close()
	}

	printKeyValue("Listening", StyleLink.Render("http://"+displayAddr(opts.addr)))
	srv := server.New(server.Config{Runner: runner, Store: st, Logger: c.Logger})
	return srv.ListenAndServe(ctx, opts.addr)
}

func (c *CLI) serveCache(ctx context.Context, opts serveOpts) (cache.Cache, cache.Keyer, error) {
	if opts.noCache {
		printKeyValue("Cache", "disabled")
		return cache.NewNullCache(), nil, nil
	}
	if opts.redisURL != "" {
		rc, err := cache.NewRedisCache(ctx, opts.redisURL)
		if err != nil {
			return nil, nil, err
		}
		printKeyValue("Cache", "redis")
		return rc, cache.NewScopedKeyer(cache.NewDefaultKeyer(), redisPrefix), nil
	}
	ch, err := newCache(false)
	if err != nil {
		return nil, nil, err
	}
	printKeyValue("Cache", "local")
	return ch, nil, nil
}

func (c *CLI) serveStore(ctx context.Context, opts serveOpts) (store.Store, error) {
	switch {
	case opts.mongoURI != "":
		st, err := store.NewMongoStore(ctx, opts.mongoURI)
		if err != nil {
			return nil, err
		}
		printKeyValue("Archive", "mongodb")
		return st, nil
	case opts.archive:
		printKeyValue("Archive", "memory")
		return store.NewMemoryStore(), nil
	default:
		printKeyValue("Archive", "disabled")
		return nil, nil
	}
}

// displayAddr turns ":8080" into "localhost:8080".
func displayAddr(addr string) string {
	if len(addr) > 0 && addr[0] == ':' {
		return "localhost" + addr
	}
	return addr
}
