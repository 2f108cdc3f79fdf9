// Package builder orchestrates the row pipeline that turns tabular input
// into a directory tree with sidecar metadata files.
//
// Rows process strictly in input order on a single logical thread. Nesting
// violations, missed matches, and probe failures are collected as
// diagnostics on the Result; only I/O failures (unreadable input, unwritable
// destination, unreadable assets root) abort a run. Already-written output is
// never rolled back.
package builder
