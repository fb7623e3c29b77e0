package tableload

import (
	"context"
	"log/slog"

	"github.com/cockroachdb/errors"
)

// contextCheckInterval is how often (in lines) a pass checks for
// cancellation. Checking every line costs more than the split itself.
var contextCheckInterval = 1000

// Loader reads delimited files into Tables. A Loader is not safe for
// concurrent use unless its DimensionCache is; the bundled MemoryCache is.
type Loader struct {
	splitter Splitter
	cache    DimensionCache
	skipBOM  bool
	logger   *slog.Logger
}

// Option configures a Loader.
type Option func(*Loader)

// WithSplitter sets how lines are broken into fields (default CommaSplitter).
func WithSplitter(s Splitter) Option {
	return func(l *Loader) {
		if s != nil {
			l.splitter = s
		}
	}
}

// WithCache injects the dimension cache (default NopCache).
func WithCache(c DimensionCache) Option {
	return func(l *Loader) {
		if c != nil {
			l.cache = c
		}
	}
}

// WithBOMSkipping controls whether a leading UTF-8 BOM is dropped (default true).
func WithBOMSkipping(skip bool) Option {
	return func(l *Loader) {
		l.skipBOM = skip
	}
}

// WithLogger sets the logger used for per-load debug output.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Loader) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// NewLoader creates a Loader with the given options applied.
func NewLoader(opts ...Option) *Loader {
	l := &Loader{
		splitter: CommaSplitter,
		cache:    NopCache{},
		skipBOM:  true,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Cache returns the loader's dimension cache.
func (l *Loader) Cache() DimensionCache {
	return l.cache
}

// Purge clears the dimension cache.
func (l *Loader) Purge() {
	l.cache.Clear()
}

// Load reads path into a Table using two full passes: one to measure the
// shape (skipped on a cache hit) and one to populate the grid.
//
// When the file cannot be read, Load returns a zero-shaped Table and a
// *LoadFailure. The table is never nil.
func (l *Loader) Load(ctx context.Context, path string) (*Table, error) {
	if err := ctx.Err(); err != nil {
		return l.fail(path, err)
	}

	key, err := keyFor(path)
	if err != nil {
		return l.fail(path, err)
	}

	shape, hit := l.cache.Get(key)
	if !hit {
		shape, err = l.measure(ctx, path)
		if err != nil {
			return l.fail(path, err)
		}
		l.cache.Put(key, shape)
	}

	t := newTable(path, shape)
	read, err := l.populate(ctx, t)
	if err != nil {
		return l.fail(path, err)
	}

	l.logger.Debug("table loaded",
		"path", path,
		"rows", shape.Rows,
		"columns", shape.Columns,
		"bytes", read,
		"cache_hit", hit,
	)
	return t, nil
}

// Measure runs only the measuring pass and returns the file's shape.
func (l *Loader) Measure(ctx context.Context, path string) (Shape, error) {
	shape, err := l.measure(ctx, path)
	if err != nil {
		return Shape{}, &LoadFailure{Path: path, Err: errors.WithStack(err)}
	}
	return shape, nil
}

func (l *Loader) fail(path string, err error) (*Table, error) {
	l.logger.Debug("table load failed", "path", path, "error", err)
	return newTable(path, Shape{}), &LoadFailure{Path: path, Err: errors.WithStack(err)}
}

// measure counts lines and the widest line's fields.
func (l *Loader) measure(ctx context.Context, path string) (Shape, error) {
	src, err := openSource(path, l.skipBOM)
	if err != nil {
		return Shape{}, err
	}
	defer src.Close()

	var shape Shape
	for {
		line, ok := src.next()
		if !ok {
			break
		}
		shape.Rows++
		if n := len(l.splitter.Split(line)); n > shape.Columns {
			shape.Columns = n
		}
		if shape.Rows%contextCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return Shape{}, err
			}
		}
	}
	if err := src.err(); err != nil {
		return Shape{}, errors.Wrapf(err, "measuring line %d", shape.Rows+1)
	}
	return shape, nil
}

// populate re-reads the file from the start and fills t's grid.
func (l *Loader) populate(ctx context.Context, t *Table) (int64, error) {
	src, err := openSource(t.path, l.skipBOM)
	if err != nil {
		return 0, err
	}
	defer src.Close()

	row := 0
	for {
		line, ok := src.next()
		if !ok {
			break
		}
		row++
		t.set(row, l.splitter.Split(line))
		if row%contextCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return src.bytesRead(), err
			}
		}
	}
	if err := src.err(); err != nil {
		return src.bytesRead(), errors.Wrapf(err, "reading line %d", row+1)
	}
	return src.bytesRead(), nil
}
