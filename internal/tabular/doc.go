// Package tabular decodes the flat CSV description of a collection into
// ordered rows. A row keeps its header order so free-form metadata keys land
// in sidecar files in the same order the curator wrote them.
package tabular
