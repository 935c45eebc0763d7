package tiled

import (
	"os"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// Loader is one loading session. It owns the path resolution chain and the
// image/region cache shared by every map it renders, so independent
// sessions never see each other's state.
//
// Decoding is safe to run from several goroutines at once; the cache is
// synchronized. Rendering a given Map and stepping a given AnimationClip
// stay single-writer.
type Loader struct {
	// Logger receives diagnostics for skipped layers, chunks and tiles.
	Logger zerolog.Logger

	cfg      Config
	resolver *PathResolver
	cache    *Cache
}

// NewLoader creates a Loader with a fresh cache.
func NewLoader(cfg Config) *Loader {
	cfg.normalize()
	return &Loader{
		Logger:   newLogger(cfg.Debug),
		cfg:      cfg,
		resolver: NewPathResolver(cfg.ImportRoots, cfg.ContentDirs),
		cache:    NewCache(),
	}
}

// LoadMap loads a map with a default, single-use Loader.
func LoadMap(path string) (*Map, error) {
	return NewLoader(DefaultConfig()).LoadMap(path)
}

// Config returns the loader's configuration.
func (l *Loader) Config() Config {
	return l.cfg
}

// Resolver returns the loader's path resolution chain. Strategies may be
// appended before the first load.
func (l *Loader) Resolver() *PathResolver {
	return l.resolver
}

// Cache returns the loader's image and region cache.
func (l *Loader) Cache() *Cache {
	return l.cache
}

// LoadMaps loads independent map documents concurrently. Results are in the
// order of paths. The first fatal error cancels nothing already running but
// is the one returned, with a nil slice.
func (l *Loader) LoadMaps(paths ...string) ([]*Map, error) {
	maps := make([]*Map, len(paths))
	var g errgroup.Group
	for i, p := range paths {
		g.Go(func() error {
			m, err := l.LoadMap(p)
			if err != nil {
				return err
			}
			maps[i] = m
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return maps, nil
}

func newLogger(debug bool) zerolog.Logger {
	if !debug {
		return zerolog.Nop()
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		With().Timestamp().Logger()
}
