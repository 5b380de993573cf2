package patch

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/isometry/hookctl/internal/helpers"
	"github.com/pkg/errors"
)

// Result is the outcome of running a recipe against a file.
type Result struct {
	Recipe   string
	Path     string
	Strategy Strategy
	Changed  bool
	Content  string
}

// LogValue implements slog.LogValuer. The content is left out.
func (r *Result) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("recipe", r.Recipe),
		slog.String("path", r.Path),
		slog.String("strategy", string(r.Strategy)),
		slog.Bool("changed", r.Changed),
	)
}

// Option configures a Patcher.
type Option func(*Patcher)

// WithLogger sets the logger instance for the patcher.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Patcher) {
		p.logger = logger
	}
}

// WithDryRun disables writing the patched content back.
func WithDryRun(dryRun bool) Option {
	return func(p *Patcher) {
		p.dryRun = dryRun
	}
}

// WithRoot resolves relative recipe paths against root.
func WithRoot(root string) Option {
	return func(p *Patcher) {
		p.root = root
	}
}

// Patcher applies recipes to files on disk.
type Patcher struct {
	logger *slog.Logger
	dryRun bool
	root   string
}

// NewPatcher creates a new Patcher.
func NewPatcher(opts ...Option) *Patcher {
	_inst := &Patcher{}
	for _, opt := range opts {
		opt(_inst)
	}
	if _inst.logger == nil {
		_inst.logger = helpers.NewNoopLogger()
	}
	return _inst
}

// Run reads the recipe target, applies the recipe and writes the result back unless in dry-run mode.
func (p *Patcher) Run(ctx context.Context, recipe *Recipe) (*Result, error) {
	if recipe == nil {
		return nil, errors.New("missing recipe")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path := recipe.Path
	if p.root != "" && !filepath.IsAbs(path) {
		path = filepath.Join(p.root, path)
	}
	logger := p.logger.With(slog.String("recipe", recipe.Name), slog.String("path", path))

	fstat, err := os.Stat(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to stat %s", path)
	}
	raw, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read %s", path)
	}
	original := string(raw)

	logger.Debug("applying recipe...")
	patched, strategy, err := recipe.Apply(original)
	result := &Result{
		Recipe:   recipe.Name,
		Path:     path,
		Strategy: strategy,
		Changed:  patched != original,
		Content:  patched,
	}
	if err != nil {
		return result, err
	}

	if !result.Changed {
		logger.Info("recipe applied without changes", slog.String("strategy", string(strategy)))
		return result, nil
	}
	if p.dryRun {
		logger.Info("dry-run: skipping write", slog.String("strategy", string(strategy)))
		return result, nil
	}
	if err = os.WriteFile(path, []byte(patched), fstat.Mode().Perm()); err != nil {
		return result, errors.Wrapf(err, "failed to write %s", path)
	}
	logger.Info("file patched", slog.String("strategy", string(strategy)))
	return result, nil
}
