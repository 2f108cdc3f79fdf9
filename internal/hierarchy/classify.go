package hierarchy

import (
	"fmt"
	"strconv"
	"strings"
)

// Role identifies what a tree node represents to the downstream manifest
// compiler.
type Role int

const (
	RoleCollection Role = iota
	RoleManifest
	RoleCanvas
)

func (r Role) String() string {
	switch r {
	case RoleManifest:
		return "manifest"
	case RoleCanvas:
		return "canvas"
	default:
		return "collection"
	}
}

// Marker is the reserved prefix signalling a leaf content node to downstream
// tooling. Canvas directory names always carry exactly one.
const Marker = "_"

// Path is a classified hierarchy path. Segments hold the rewritten directory
// names (the terminal segment carries the marker when the node is a canvas).
type Path struct {
	Segments []string
	Role     Role
	// ParentRole is the classification of the immediate parent segment.
	// Only meaningful when HasParent is true.
	ParentRole Role
	HasParent  bool
}

// Classify splits a slash-delimited hierarchy string into a validated Path.
// The terminal segment decides the node's role; canvas segments are rewritten
// with the reserved marker before directory creation.
func Classify(hierarchy string) (Path, error) {
	trimmed := strings.Trim(strings.TrimSpace(hierarchy), "/")
	if trimmed == "" {
		return Path{}, fmt.Errorf("hierarchy is empty")
	}
	segments := strings.Split(trimmed, "/")
	for i, segment := range segments {
		segments[i] = strings.TrimSpace(segment)
		if segments[i] == "" {
			return Path{}, fmt.Errorf("hierarchy %q has an empty segment", hierarchy)
		}
	}

	terminal := segments[len(segments)-1]
	role := SegmentRole(terminal)
	if role == RoleCanvas {
		segments[len(segments)-1] = Marker + StripMarker(terminal)
	}

	path := Path{Segments: segments, Role: role}
	if len(segments) > 1 {
		path.HasParent = true
		path.ParentRole = SegmentRole(segments[len(segments)-2])
	}
	return path, nil
}

// SegmentRole classifies a single segment name. The marker is stripped before
// the textual predicates run, so pre-marked input classifies the same as
// unmarked input.
func SegmentRole(segment string) Role {
	name := strings.ToLower(StripMarker(segment))
	switch {
	case strings.HasPrefix(name, "canvas"):
		return RoleCanvas
	case strings.Contains(name, "manifest"):
		return RoleManifest
	default:
		return RoleCollection
	}
}

// StripMarker removes a single leading marker from a segment name, recovering
// the original text of a rewritten canvas segment.
func StripMarker(segment string) string {
	return strings.TrimPrefix(segment, Marker)
}

// Terminal returns the rewritten terminal segment name.
func (p Path) Terminal() string {
	if len(p.Segments) == 0 {
		return ""
	}
	return p.Segments[len(p.Segments)-1]
}

// Parent returns the immediate parent segment name, or "" at the root.
func (p Path) Parent() string {
	if !p.HasParent {
		return ""
	}
	return p.Segments[len(p.Segments)-2]
}

// String reassembles the rewritten path with forward slashes.
func (p Path) String() string {
	return strings.Join(p.Segments, "/")
}

// CanvasIndex extracts the numeric canvas index by stripping every non-digit
// character from the marker-free terminal segment. The boolean is false when
// the segment carries no digits (index undefined, no asset is matched).
func (p Path) CanvasIndex() (int, bool) {
	name := StripMarker(p.Terminal())
	var digits strings.Builder
	for _, r := range name {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	if digits.Len() == 0 {
		return 0, false
	}
	index, err := strconv.Atoi(digits.String())
	if err != nil {
		return 0, false
	}
	return index, true
}
