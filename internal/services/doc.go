// Package services holds cross-cutting error classification helpers shared by
// the build pipeline and the CLI.
//
// Components tag failures with one of the exported sentinel errors via Wrap so
// callers can branch on failure class with errors.Is without string matching.
// Warnings never travel through this package; they are collected as
// diagnostics on the builder result instead.
package services
