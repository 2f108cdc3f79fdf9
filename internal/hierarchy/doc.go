// Package hierarchy turns slash-delimited hierarchy strings into classified
// tree-node paths.
//
// A terminal segment starting with "canvas" is a leaf content node and its
// directory name is rewritten with the reserved "_" marker; a segment
// containing "manifest" groups canvases; everything else is a plain
// collection. Nesting rules are checked best-effort: violations surface as
// warnings and never stop the batch.
package hierarchy
