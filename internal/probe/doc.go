// Package probe extracts technical metadata (pixel dimensions, duration)
// from matched asset files.
//
// Probing is an opaque capability behind the ImageProber and MediaProber
// interfaces: production uses image.DecodeConfig and an exec'd ffprobe, tests
// substitute fakes. The extractor never overwrites values the curator put in
// the source table.
package probe
