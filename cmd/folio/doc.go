// Package main hosts the folio CLI entrypoint and command graph.
//
// The Cobra-based command tree wires configuration resolution, structured
// logging setup, and the run journal around the hierarchy builder, then
// renders results as tables or plain text depending on the terminal.
//
// Keep this package lean: add new functionality by extending the internal
// packages first, then surface it through dedicated commands or flags here.
package main
