package probe

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"

	"folio/internal/logging"
	"folio/internal/tabular"
)

var imageExtensions = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".png":  {},
	".tiff": {},
	".tif":  {},
}

var mediaExtensions = map[string]struct{}{
	".mp3": {},
	".mp4": {},
	".wav": {},
	".m4a": {},
}

// Extractor derives technical metadata from matched asset files and merges it
// into the row. Curator-supplied values always win: a field already present
// on the row is never overwritten, so re-running extraction is idempotent.
type Extractor struct {
	images ImageProber
	media  MediaProber
	logger *slog.Logger
}

// NewExtractor constructs an extractor around the provided probers.
func NewExtractor(images ImageProber, media MediaProber, logger *slog.Logger) *Extractor {
	return &Extractor{
		images: images,
		media:  media,
		logger: logging.NewComponentLogger(logger, "probe"),
	}
}

// Extract dispatches on the file's extension, probes it, and fills unset
// width/height or duration fields on the row. Probe failures come back as
// warnings; unrecognized extensions are ignored silently.
func (e *Extractor) Extract(ctx context.Context, path string, row *tabular.Row) []string {
	ext := strings.ToLower(filepath.Ext(path))
	switch {
	case hasExtension(imageExtensions, ext):
		return e.extractImage(ctx, path, row)
	case hasExtension(mediaExtensions, ext):
		return e.extractMedia(ctx, path, row)
	default:
		return nil
	}
}

func (e *Extractor) extractImage(ctx context.Context, path string, row *tabular.Row) []string {
	dims, err := e.images.ProbeImage(ctx, path)
	if err != nil {
		e.logger.Warn("image probe failed", logging.String("path", path), logging.Error(err))
		return []string{fmt.Sprintf("image probe failed for %s: %v", path, err)}
	}
	row.SetDefault("width", strconv.Itoa(dims.Width))
	row.SetDefault("height", strconv.Itoa(dims.Height))
	e.logger.Debug("probed image",
		logging.String("path", path),
		logging.Int("width", dims.Width),
		logging.Int("height", dims.Height),
	)
	return nil
}

func (e *Extractor) extractMedia(ctx context.Context, path string, row *tabular.Row) []string {
	duration, err := e.media.ProbeMedia(ctx, path)
	if err != nil {
		e.logger.Warn("media probe failed", logging.String("path", path), logging.Error(err))
		return []string{fmt.Sprintf("media probe failed for %s: %v", path, err)}
	}
	row.SetDefault("duration", strconv.FormatFloat(duration, 'f', -1, 64))
	e.logger.Debug("probed media",
		logging.String("path", path),
		logging.Float64("duration", duration),
	)
	return nil
}

func hasExtension(set map[string]struct{}, ext string) bool {
	_, ok := set[ext]
	return ok
}
