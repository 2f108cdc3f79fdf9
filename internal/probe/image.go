package probe

import (
	"context"
	"fmt"
	"image"
	"os"

	// Decoders for the image formats the extractor recognizes.
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/tiff"
)

// Dimensions holds probed pixel dimensions.
type Dimensions struct {
	Width  int
	Height int
}

// ImageProber reports pixel dimensions for an image file.
type ImageProber interface {
	ProbeImage(ctx context.Context, path string) (Dimensions, error)
}

// DecodeConfigProber probes dimensions with the standard library's
// image.DecodeConfig, which sniffs the format from file contents rather than
// the extension.
type DecodeConfigProber struct{}

func (DecodeConfigProber) ProbeImage(_ context.Context, path string) (Dimensions, error) {
	file, err := os.Open(path)
	if err != nil {
		return Dimensions{}, fmt.Errorf("open image: %w", err)
	}
	defer file.Close()

	cfg, _, err := image.DecodeConfig(file)
	if err != nil {
		return Dimensions{}, fmt.Errorf("decode image %s: %w", path, err)
	}
	return Dimensions{Width: cfg.Width, Height: cfg.Height}, nil
}
