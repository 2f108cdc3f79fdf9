package builder

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"

	"folio/internal/assets"
	"folio/internal/config"
	"folio/internal/fileutil"
	"folio/internal/hierarchy"
	"folio/internal/logging"
	"folio/internal/probe"
	"folio/internal/services"
	"folio/internal/sidecar"
	"folio/internal/tabular"
)

// lockFilename guards a destination root against concurrent builds.
const lockFilename = ".folio.lock"

// Recorder receives node outcomes as they are produced. Recording failures
// are reported as diagnostics, never as fatal errors.
type Recorder interface {
	RecordNode(ctx context.Context, node Node) error
}

// Request names the inputs of one build run.
type Request struct {
	// Source is the CSV file describing the hierarchy.
	Source string
	// Destination is the root the directory tree is created under.
	Destination string
	// AssetsRoot optionally points at source media to match and copy.
	AssetsRoot string
}

// Node is the outcome for one processed row.
type Node struct {
	Hierarchy string
	Path      string
	Role      hierarchy.Role
	// Matched holds the destination paths of copied asset files.
	Matched  []string
	Warnings int
}

// Result is the primary output of a run plus its diagnostic side channel.
type Result struct {
	Nodes       []Node
	Diagnostics []Diagnostic
}

// Builder drives the row pipeline: classify, validate, create directory,
// match and copy assets, extract technical metadata, write the sidecar.
type Builder struct {
	cfg       *config.Config
	extractor *probe.Extractor
	recorder  Recorder
	logger    *slog.Logger
}

// New constructs a builder. The extractor is required; the recorder is
// optional.
func New(cfg *config.Config, extractor *probe.Extractor, logger *slog.Logger) *Builder {
	return &Builder{
		cfg:       cfg,
		extractor: extractor,
		logger:    logging.NewComponentLogger(logger, "builder"),
	}
}

// SetRecorder attaches a journal recorder to the builder.
func (b *Builder) SetRecorder(recorder Recorder) {
	b.recorder = recorder
}

// Run processes every row of the request's source in input order. Rows are
// handled sequentially: there is no ordering guarantee between rows sharing
// an asset pool, so none is offered. A fatal error aborts the remaining rows;
// output already on disk stays in place.
func (b *Builder) Run(ctx context.Context, req Request) (*Result, error) {
	rows, err := tabular.ReadFile(req.Source)
	if err != nil {
		return nil, services.Wrap(services.ErrIO, "builder", "read input", req.Source, err)
	}

	destination, err := filepath.Abs(req.Destination)
	if err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "builder", "resolve destination", req.Destination, err)
	}
	if err := os.MkdirAll(destination, 0o755); err != nil {
		return nil, services.Wrap(services.ErrIO, "builder", "create destination", destination, err)
	}

	lock := flock.New(filepath.Join(destination, lockFilename))
	locked, err := lock.TryLock()
	if err != nil {
		return nil, services.Wrap(services.ErrIO, "builder", "acquire lock", lock.Path(), err)
	}
	if !locked {
		return nil, services.Wrap(services.ErrConfiguration, "builder", "acquire lock",
			fmt.Sprintf("another build is writing to %s", destination), nil)
	}
	defer func() { _ = lock.Unlock() }()

	var index *assets.Index
	if req.AssetsRoot != "" {
		index, err = assets.BuildIndex(req.AssetsRoot, b.cfg.Sidecar.ExcludeGlobs)
		if err != nil {
			return nil, services.Wrap(services.ErrIO, "builder", "index assets", req.AssetsRoot, err)
		}
		b.logger.Info("indexed assets",
			logging.String("root", index.Root()),
			logging.Int("files", index.Len()),
		)
	}

	result := &Result{}
	for i, row := range rows {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		if err := b.processRow(ctx, row, i, destination, index, result); err != nil {
			return result, err
		}
	}

	b.logger.Info("build complete",
		logging.Int("nodes", len(result.Nodes)),
		logging.Int("warnings", len(result.Diagnostics)),
	)
	return result, nil
}

func (b *Builder) processRow(ctx context.Context, row *tabular.Row, rowIndex int, destination string, index *assets.Index, result *Result) error {
	raw := row.Get("hierarchy")
	if !row.Has("hierarchy") {
		result.Diagnostics = append(result.Diagnostics, Diagnostic{
			Stage:   stageInput,
			Message: fmt.Sprintf("row %d has no hierarchy, skipped", rowIndex+2),
		})
		return nil
	}

	path, err := hierarchy.Classify(raw)
	if err != nil {
		result.Diagnostics = append(result.Diagnostics, Diagnostic{
			Hierarchy: raw,
			Stage:     stageInput,
			Message:   fmt.Sprintf("unusable hierarchy, skipped: %v", err),
		})
		return nil
	}
	diagnosticsBefore := len(result.Diagnostics)

	for _, warning := range hierarchy.Validate(path) {
		result.Diagnostics = append(result.Diagnostics, Diagnostic{Hierarchy: raw, Stage: stageNesting, Message: warning})
		b.logger.Warn("nesting violation", logging.String("hierarchy", raw), logging.String("detail", warning))
	}

	nodeDir := filepath.Join(destination, filepath.Join(path.Segments...))
	if err := os.MkdirAll(nodeDir, 0o755); err != nil {
		return services.Wrap(services.ErrIO, "builder", "create node directory", nodeDir, err)
	}

	node := Node{Hierarchy: raw, Path: nodeDir, Role: path.Role}

	if path.Role == hierarchy.RoleCanvas && index != nil {
		if err := b.attachAssets(ctx, row, path, nodeDir, index, &node, result); err != nil {
			return err
		}
	}

	if b.cfg.Labels.Infer && !row.Has("label") {
		if label := inferLabel(hierarchy.StripMarker(path.Terminal())); label != "" {
			row.Set("label", label)
		}
	}

	doc, warnings := sidecar.Normalize(row)
	for _, warning := range warnings {
		result.Diagnostics = append(result.Diagnostics, Diagnostic{Hierarchy: raw, Stage: stageNormalize, Message: warning})
	}

	data, err := doc.Encode()
	if err != nil {
		return services.Wrap(services.ErrValidation, "builder", "encode sidecar", raw, err)
	}
	sidecarPath := filepath.Join(nodeDir, b.cfg.Sidecar.Filename)
	if err := os.WriteFile(sidecarPath, data, 0o644); err != nil {
		return services.Wrap(services.ErrIO, "builder", "write sidecar", sidecarPath, err)
	}

	node.Warnings = len(result.Diagnostics) - diagnosticsBefore
	result.Nodes = append(result.Nodes, node)
	b.logger.Info("created node",
		logging.String("hierarchy", raw),
		logging.String("role", path.Role.String()),
		logging.Int("matches", len(node.Matched)),
	)

	if b.recorder != nil {
		if err := b.recorder.RecordNode(ctx, node); err != nil {
			result.Diagnostics = append(result.Diagnostics, Diagnostic{Hierarchy: raw, Stage: stageJournal, Message: err.Error()})
			b.logger.Warn("journal write failed", logging.Error(err))
		}
	}
	return nil
}

// attachAssets matches candidate files to the canvas, copies every match into
// the canvas directory, and probes each copy for technical metadata.
func (b *Builder) attachAssets(ctx context.Context, row *tabular.Row, path hierarchy.Path, nodeDir string, index *assets.Index, node *Node, result *Result) error {
	raw := node.Hierarchy

	canvasIndex, ok := path.CanvasIndex()
	if !ok {
		result.Diagnostics = append(result.Diagnostics, Diagnostic{
			Hierarchy: raw,
			Stage:     stageMatching,
			Message:   "canvas has no numeric index, no assets matched",
		})
		return nil
	}

	kind := assets.KindForParent(hierarchy.StripMarker(path.Parent()))
	matches := assets.Match(index.AllFiles(), canvasIndex, kind)
	if len(matches) == 0 {
		result.Diagnostics = append(result.Diagnostics, Diagnostic{
			Hierarchy: raw,
			Stage:     stageMatching,
			Message:   fmt.Sprintf("no %s asset matched canvas index %d", kind, canvasIndex),
		})
		return nil
	}

	for _, match := range matches {
		target := filepath.Join(nodeDir, filepath.Base(match))
		if err := fileutil.CopyFile(filepath.FromSlash(match), target); err != nil {
			return services.Wrap(services.ErrIO, "builder", "copy asset", match, err)
		}
		node.Matched = append(node.Matched, target)
		for _, warning := range b.extractor.Extract(ctx, target, row) {
			result.Diagnostics = append(result.Diagnostics, Diagnostic{Hierarchy: raw, Stage: stageProbe, Message: warning})
		}
	}
	return nil
}
