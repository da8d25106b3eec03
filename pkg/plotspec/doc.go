// Package plotspec resolves the per-entity plot style from a specification file.
//
// A specification file is a delimited table (tab or comma, detected from the
// header) with one row per entity. It must contain every column in [Columns],
// in any order; extra columns are ignored. Each row becomes a [Style]:
//
//   - "Plot or not?" and "Label or not?" are true only for the literal "1"
//   - "Marker" of "0" is read as [MarkerPoint] (spreadsheets turn "." into 0)
//   - "Layer" is blank (bottom layer) or an integer; anything else aborts
//   - "Size", "Alpha" and "Label font size" are numbers for plotted rows
//   - "Color", "Marker" and "Legend group" are kept as opaque strings
//
// Entities without a row use [Default]. A nil *Spec (no specification file)
// resolves every entity to [Default].
//
// # Usage
//
//	spec, err := plotspec.Load("spec.tsv")
//	if err != nil {
//	    return err // SCHEMA_ERROR or PARSE_ERROR
//	}
//	style := spec.Resolve("BRCA1")
//	members := spec.Members(entities) // feed to layer.Schedule
package plotspec
