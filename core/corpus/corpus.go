package corpus

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Pattern selects the textual content files that may reference stored objects.
const Pattern = "**/*.{md,markdown,txt,json,yaml,yml}"

// ErrInvalidRoot is returned when the content root is missing or not a directory.
var ErrInvalidRoot = errors.New("content root is not a readable directory")

var (
	skippedDirs  = map[string]bool{"node_modules": true, ".git": true}
	skippedFiles = map[string]bool{".DS_Store": true, "Thumbs.db": true}
)

// File is one loaded content file. Path is slash separated and relative to the root.
type File struct {
	Path string
	Body string
}

// ReadError records a discovered file that could not be read.
type ReadError struct {
	Path string
	Err  error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("read %s: %v", e.Path, e.Err)
}

func (e *ReadError) Unwrap() error {
	return e.Err
}

// LoadResult is the outcome of a corpus load.
type LoadResult struct {
	// Files holds the readable files in discovery order.
	Files []File
	// Skipped holds the files that were discovered but failed to read.
	Skipped []*ReadError
	// Discovered is the number of files matched by discovery.
	Discovered int
}

// Corpus discovers and loads content files from a filesystem.
type Corpus struct {
	fsys    fs.FS
	root    string
	onDisk  bool
	workers int
	logger  *zap.Logger
}

// New creates a Corpus over fsys. A nil logger disables logging.
func New(fsys fs.FS, workers int, logger *zap.Logger) *Corpus {
	if workers <= 0 {
		workers = 1
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Corpus{fsys: fsys, root: ".", workers: workers, logger: logger}
}

// Open creates a Corpus rooted at a directory on disk.
func Open(root string, workers int, logger *zap.Logger) (*Corpus, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidRoot, root, err)
	}

	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRoot, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", ErrInvalidRoot, abs)
	}

	c := New(os.DirFS(abs), workers, logger)
	c.root = abs
	c.onDisk = true
	return c, nil
}

// Root returns the directory the corpus was opened on.
func (c *Corpus) Root() string {
	return c.root
}

// Count returns the number of files discovery matches, without reading them.
func (c *Corpus) Count(ctx context.Context) (int, error) {
	paths, err := c.discover(ctx)
	if err != nil {
		return 0, err
	}
	return len(paths), nil
}

// Load discovers the content files and reads them concurrently. Files that fail to
// read are logged and skipped; the returned files keep discovery order.
func (c *Corpus) Load(ctx context.Context) (*LoadResult, error) {
	paths, err := c.discover(ctx)
	if err != nil {
		return nil, err
	}

	files := make([]*File, len(paths))
	failures := make([]*ReadError, len(paths))

	g, ctxGroup := errgroup.WithContext(ctx)
	g.SetLimit(c.workers)

	for i, p := range paths {
		g.Go(func() error {
			if err := ctxGroup.Err(); err != nil {
				return err
			}
			body, err := fs.ReadFile(c.fsys, p)
			if err != nil {
				failures[i] = &ReadError{Path: p, Err: err}
				return nil
			}
			files[i] = &File{Path: p, Body: string(body)}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := &LoadResult{
		Files:      make([]File, 0, len(paths)),
		Discovered: len(paths),
	}
	for i := range paths {
		if failures[i] != nil {
			c.logger.Warn("Skipping unreadable content file",
				zap.String("path", failures[i].Path),
				zap.Error(failures[i].Err),
			)
			result.Skipped = append(result.Skipped, failures[i])
			continue
		}
		result.Files = append(result.Files, *files[i])
	}

	c.logger.Info("Loaded content corpus",
		zap.String("root", c.root),
		zap.Int("discovered", result.Discovered),
		zap.Int("loaded", len(result.Files)),
		zap.Int("skipped", len(result.Skipped)),
	)

	return result, nil
}

// discover walks the filesystem in lexical order and returns matching paths.
// Symbolic links are followed: a linked directory is walked under its link path,
// and each link target is walked at most once so link cycles terminate.
func (c *Corpus) discover(ctx context.Context) ([]string, error) {
	var paths []string
	visited := map[string]bool{c.resolve("."): true}

	var walk func(dir string) error
	walk = func(dir string) error {
		return fs.WalkDir(c.fsys, dir, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				if p == "." {
					return err
				}
				c.logger.Warn("Skipping unreadable content path", zap.String("path", p), zap.Error(err))
				if d != nil && d.IsDir() {
					return fs.SkipDir
				}
				return nil
			}
			if err := ctx.Err(); err != nil {
				return err
			}

			if d.IsDir() {
				if p != dir && skippedDirs[d.Name()] {
					return fs.SkipDir
				}
				return nil
			}

			if d.Type()&fs.ModeSymlink != 0 {
				info, err := fs.Stat(c.fsys, p)
				if err != nil {
					c.logger.Warn("Skipping broken content link", zap.String("path", p), zap.Error(err))
					return nil
				}
				if info.IsDir() {
					if skippedDirs[d.Name()] {
						return nil
					}
					target := c.resolve(p)
					if visited[target] {
						c.logger.Debug("Skipping already walked content link", zap.String("path", p), zap.String("target", target))
						return nil
					}
					visited[target] = true
					return walk(p)
				}
			}

			if skippedFiles[d.Name()] {
				return nil
			}

			matched, err := doublestar.Match(Pattern, p)
			if err != nil {
				return err
			}
			if matched {
				paths = append(paths, p)
			}
			return nil
		})
	}

	if err := walk("."); err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidRoot, err)
	}

	return paths, nil
}

// resolve returns the real location of p, used to detect link cycles. Paths of a
// filesystem that is not on disk are returned unchanged.
func (c *Corpus) resolve(p string) string {
	if !c.onDisk {
		return p
	}
	real, err := filepath.EvalSymlinks(filepath.Join(c.root, filepath.FromSlash(p)))
	if err != nil {
		return p
	}
	return real
}
