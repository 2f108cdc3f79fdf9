// Package assets discovers source media files and matches them to canvas
// nodes by filename-number extraction.
//
// The index is a one-time recursive scan bucketed by containing directory.
// Matching intentionally runs against the flattened union of every bucket:
// scope is the whole assets root, not the canvas's own directory, at the cost
// of possible false positives across unrelated subtrees.
package assets
