package assets

import (
	"path"
	"regexp"
	"strconv"
	"strings"
)

// Kind selects the canvas matching strategy.
type Kind int

const (
	KindImage Kind = iota
	KindAudio
)

func (k Kind) String() string {
	if k == KindAudio {
		return "audio"
	}
	return "image"
}

var (
	// Audio assets are numbered parts: Part9.mp3, part09-1.mp3, ...
	audioPattern = regexp.MustCompile(`(?i)^part(\d+)(?:-\d+)?\.mp3$`)
	// Image assets end in an underscore-separated number: BHC001_AF_01.JPG.
	imagePattern = regexp.MustCompile(`(?i)_(\d+)\.(?:jpg|jpeg)$`)
)

// KindForParent decides the matching strategy from the canvas's parent
// segment name: an "audio" parent selects audio matching, anything else is
// treated as an image canvas.
func KindForParent(parent string) Kind {
	if strings.EqualFold(strings.TrimSpace(parent), "audio") {
		return KindAudio
	}
	return KindImage
}

// Match filters candidates down to the files whose embedded numeric token
// equals the canvas index. Every match is returned; the caller copies all of
// them. Digit runs compare by parsed value, so "01" matches index 1 while
// "010" does not.
func Match(candidates []string, index int, kind Kind) []string {
	var matched []string
	for _, candidate := range candidates {
		if matchesCanvas(path.Base(candidate), index, kind) {
			matched = append(matched, candidate)
		}
	}
	return matched
}

func matchesCanvas(name string, index int, kind Kind) bool {
	var pattern *regexp.Regexp
	switch kind {
	case KindAudio:
		pattern = audioPattern
	default:
		pattern = imagePattern
	}
	groups := pattern.FindStringSubmatch(name)
	if groups == nil {
		return false
	}
	parsed, err := strconv.Atoi(groups[1])
	if err != nil {
		return false
	}
	return parsed == index
}
