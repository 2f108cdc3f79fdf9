package probe

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

// MediaProber reports the playback duration of an audio/video file in
// seconds.
type MediaProber interface {
	ProbeMedia(ctx context.Context, path string) (float64, error)
}

// FFprobeProber shells out to ffprobe and decodes its JSON response.
type FFprobeProber struct {
	// Binary overrides the ffprobe executable name. Empty means "ffprobe".
	Binary string
}

// ffprobeResult mirrors the subset of ffprobe's JSON output the prober needs.
type ffprobeResult struct {
	Streams []ffprobeStream `json:"streams"`
	Format  ffprobeFormat   `json:"format"`
}

type ffprobeStream struct {
	CodecType string `json:"codec_type"`
	Duration  string `json:"duration"`
}

type ffprobeFormat struct {
	Duration string `json:"duration"`
}

func (p FFprobeProber) ProbeMedia(ctx context.Context, path string) (float64, error) {
	binary := strings.TrimSpace(p.Binary)
	if binary == "" {
		binary = "ffprobe"
	}
	path = strings.TrimSpace(path)
	if path == "" {
		return 0, errors.New("ffprobe: empty path")
	}

	cmd := exec.CommandContext(ctx, binary, "-v", "error", "-hide_banner", "-show_format", "-show_streams", "-of", "json", "--", path)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return 0, fmt.Errorf("ffprobe %s: %w: %s", path, err, strings.TrimSpace(string(output)))
	}

	var result ffprobeResult
	if err := json.Unmarshal(output, &result); err != nil {
		return 0, fmt.Errorf("ffprobe parse: %w", err)
	}
	duration, ok := result.duration()
	if !ok {
		return 0, fmt.Errorf("ffprobe %s: no stream duration reported", path)
	}
	return duration, nil
}

// duration returns the first media stream's duration, falling back to the
// container duration when no stream reports one.
func (r ffprobeResult) duration() (float64, bool) {
	for _, stream := range r.Streams {
		if parsed, err := strconv.ParseFloat(strings.TrimSpace(stream.Duration), 64); err == nil && parsed > 0 {
			return parsed, true
		}
	}
	if parsed, err := strconv.ParseFloat(strings.TrimSpace(r.Format.Duration), 64); err == nil && parsed > 0 {
		return parsed, true
	}
	return 0, false
}
