// Package journal records build-run history in a local SQLite database.
//
// Each `folio build` invocation becomes one run row plus one row per produced
// tree node, powering `folio report`. The journal is informational history:
// failures to write it are logged and never fail a build, and the schema is
// versioned so a mismatched database is simply deleted and recreated.
package journal
