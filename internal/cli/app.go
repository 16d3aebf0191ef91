// Package cli implements the neo command tree.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/hupe1980/neodb"
	"github.com/hupe1980/neodb/blobstore"
	"github.com/hupe1980/neodb/blobstore/minio"
	"github.com/hupe1980/neodb/blobstore/s3"
	"github.com/hupe1980/neodb/codec"
	"github.com/hupe1980/neodb/index"
	"github.com/hupe1980/neodb/internal/config"
	"github.com/hupe1980/neodb/internal/resource"
	"github.com/spf13/viper"
)

// App carries state shared by all commands of one process, so that the
// interactive shell loads the database once.
type App struct {
	v          *viper.Viper
	configFile string

	cfg    *config.Config
	logger *neodb.Logger

	mu    sync.Mutex
	store blobstore.Store
	db    *neodb.DB

	stdout io.Writer
	stderr io.Writer
}

// NewApp creates an App writing to the given streams.
func NewApp(stdout, stderr io.Writer) *App {
	return &App{
		v:      viper.New(),
		stdout: stdout,
		stderr: stderr,
	}
}

// loadConfig resolves the configuration once.
func (a *App) loadConfig() error {
	if a.cfg != nil {
		return nil
	}

	cfg, err := config.Load(a.v, a.configFile)
	if err != nil {
		return err
	}
	level, err := cfg.Log.SlogLevel()
	if err != nil {
		return err
	}

	a.cfg = cfg
	if cfg.Log.Format == "json" {
		a.logger = neodb.NewJSONLogger(level)
	} else {
		a.logger = neodb.NewTextLogger(level)
	}
	return nil
}

// Store returns the configured source store.
func (a *App) Store(ctx context.Context) (blobstore.Store, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.storeLocked(ctx)
}

func (a *App) storeLocked(ctx context.Context) (blobstore.Store, error) {
	if a.store != nil {
		return a.store, nil
	}

	src := a.cfg.Source
	var store blobstore.Store
	switch src.Kind {
	case config.SourceS3:
		s, err := s3.NewFromConfig(ctx, src.Bucket, src.Prefix, s3.WithDownloadConfig(s3.DownloadConfig{
			PartSize:    s3.DefaultDownloadConfig().PartSize,
			Concurrency: src.Concurrency,
		}))
		if err != nil {
			return nil, err
		}
		store = s
	case config.SourceMinio:
		s, err := minio.Dial(src.Endpoint, src.AccessKey, src.SecretKey, src.Secure, src.Bucket, src.Prefix)
		if err != nil {
			return nil, fmt.Errorf("minio: %w", err)
		}
		store = s
	default:
		store = blobstore.NewLocalStore(src.Dir)
	}

	if src.RateLimit > 0 {
		rc := resource.NewController(resource.Config{IOLimitBytesPerSec: src.RateLimit})
		store = blobstore.NewThrottledStore(store, rc)
	}

	a.store = store
	return store, nil
}

// OutputStore returns where --outfile results are saved: the working
// directory for local sources, the source bucket otherwise.
func (a *App) OutputStore(ctx context.Context) (blobstore.Putter, error) {
	if a.cfg.Source.Kind == config.SourceLocal {
		return blobstore.NewLocalStore(""), nil
	}
	store, err := a.Store(ctx)
	if err != nil {
		return nil, err
	}
	p, ok := store.(blobstore.Putter)
	if !ok {
		return nil, blobstore.ErrReadOnly
	}
	return p, nil
}

func (a *App) codec() (codec.Codec, error) {
	c, ok := codec.ByName(a.cfg.Codec)
	if !ok {
		return codec.Default, fmt.Errorf("unknown codec %q", a.cfg.Codec)
	}
	return c, nil
}

// Options translates the configuration into database options.
func (a *App) Options() ([]neodb.Option, error) {
	strategy, err := index.ParseStrategy(a.cfg.Index)
	if err != nil {
		return nil, err
	}
	c, err := a.codec()
	if err != nil {
		return nil, err
	}

	return []neodb.Option{
		neodb.WithIndexStrategy(strategy),
		neodb.WithCodec(c),
		neodb.WithSkipMalformed(a.cfg.SkipMalformed),
		neodb.WithMemoryLimit(a.cfg.MemoryLimit),
		neodb.WithLogger(a.logger),
	}, nil
}

// DB loads and links the configured data files on first use.
func (a *App) DB(ctx context.Context, extra ...neodb.Option) (*neodb.DB, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.db != nil {
		return a.db, nil
	}

	store, err := a.storeLocked(ctx)
	if err != nil {
		return nil, err
	}
	opts, err := a.Options()
	if err != nil {
		return nil, err
	}

	db, err := neodb.Open(ctx, store, a.cfg.NEOFile, a.cfg.CADFile, append(opts, extra...)...)
	if err != nil {
		return nil, err
	}
	a.db = db
	return db, nil
}

// Execute runs the neo command with os.Args and returns the process exit code.
func Execute(ctx context.Context) int {
	app := NewApp(os.Stdout, os.Stderr)
	if err := app.RootCommand().ExecuteContext(ctx); err != nil {
		return 1
	}
	return 0
}
