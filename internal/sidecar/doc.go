// Package sidecar normalizes a tabular row into the YAML metadata document
// written next to each tree node.
//
// The document is an ordered tree: scalar passthrough fields first, then
// numeric coercions, then dotted compound groups (emitted all-or-nothing),
// then the free-form metadata bag. Unset fields never appear, keeping
// sidecars minimal.
package sidecar
