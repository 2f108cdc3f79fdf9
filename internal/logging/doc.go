// Package logging centralizes slog construction for folio.
//
// The console format produces compact single-line records for interactive
// runs; the json format emits machine-readable records for log shipping.
// Components obtain a tagged child logger via NewComponentLogger so every
// record carries its origin.
package logging
