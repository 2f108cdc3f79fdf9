package sidecar

import (
	"fmt"
	"strconv"
	"strings"

	"folio/internal/tabular"
)

// passthroughFields are copied verbatim when present and non-blank, in this
// order.
var passthroughFields = []string{
	"label",
	"description",
	"attribution",
	"viewingHint",
	"viewingDirection",
	"navDate",
	"summary",
}

// compoundGroup declares a dotted key group and the sub-keys that must all be
// present for the group to be emitted. Partial groups are dropped silently.
type compoundGroup struct {
	name     string
	required []string
}

var compoundGroups = []compoundGroup{
	{name: "requiredStatement", required: []string{"label", "value"}},
	{name: "provider", required: []string{"id", "type", "label"}},
	{name: "homepage", required: []string{"id", "type", "label"}},
	{name: "seeAlso", required: []string{"id", "type"}},
	{name: "rendering", required: []string{"id", "type", "label"}},
	{name: "start", required: []string{"id", "type"}},
	{name: "supplementary", required: []string{"id", "type"}},
	{name: "services", required: []string{"id", "type"}},
}

// Normalize maps a row's flat namespace into a nested metadata document.
// Only keys present with non-blank values are emitted. Returned warnings
// cover unparseable numeric fields; they never abort the row.
func Normalize(row *tabular.Row) (*Document, []string) {
	doc := NewDocument()
	var warnings []string

	for _, field := range passthroughFields {
		if row.Has(field) {
			doc.Set(field, row.Get(field))
		}
	}

	if row.Has("behavior") {
		doc.Set("behavior", normalizeBehavior(row.Get("behavior")))
	}

	for _, field := range []string{"width", "height"} {
		if !row.Has(field) {
			continue
		}
		raw := strings.TrimSpace(row.Get(field))
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("%s %q is not an integer, omitted", field, raw))
			continue
		}
		doc.Set(field, parsed)
	}

	if row.Has("duration") {
		raw := strings.TrimSpace(row.Get("duration"))
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("duration %q is not a number, omitted", raw))
		} else {
			doc.Set("duration", parsed)
		}
	}

	for _, group := range compoundGroups {
		if sub := extractGroup(row, group); sub != nil {
			doc.Set(group.name, sub)
		}
	}

	if bag := extractMetadataBag(row); bag != nil {
		doc.Set("metadata", bag)
	}

	return doc, warnings
}

// normalizeBehavior splits comma-separated behaviors into a trimmed sequence
// and passes single values through as scalars.
func normalizeBehavior(value string) any {
	if !strings.Contains(value, ",") {
		return value
	}
	parts := strings.Split(value, ",")
	behaviors := make([]string, 0, len(parts))
	for _, part := range parts {
		behaviors = append(behaviors, strings.TrimSpace(part))
	}
	return behaviors
}

// extractGroup returns the group's nested document when every required
// sub-key is present and non-blank; extra present sub-keys of an emitted
// group ride along after the required ones.
func extractGroup(row *tabular.Row, group compoundGroup) *Document {
	for _, suffix := range group.required {
		if !row.Has(group.name + "." + suffix) {
			return nil
		}
	}

	sub := NewDocument()
	emitted := make(map[string]struct{}, len(group.required))
	for _, suffix := range group.required {
		sub.Set(suffix, row.Get(group.name+"."+suffix))
		emitted[suffix] = struct{}{}
	}

	prefix := group.name + "."
	for _, key := range row.Keys() {
		if !strings.HasPrefix(key, prefix) || !row.Has(key) {
			continue
		}
		suffix := key[len(prefix):]
		if _, done := emitted[suffix]; done || suffix == "" {
			continue
		}
		sub.Set(suffix, row.Get(key))
	}
	return sub
}

// extractMetadataBag collects every metadata.<Name> key, in row order, into
// the free-form metadata mapping. Nil when the bag would be empty.
func extractMetadataBag(row *tabular.Row) *Document {
	const prefix = "metadata."
	var bag *Document
	for _, key := range row.Keys() {
		if !strings.HasPrefix(key, prefix) || !row.Has(key) {
			continue
		}
		name := key[len(prefix):]
		if name == "" {
			continue
		}
		if bag == nil {
			bag = NewDocument()
		}
		bag.Set(name, row.Get(key))
	}
	return bag
}
