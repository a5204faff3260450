package engine

import (
	"autoskip/internal/model"
	"autoskip/internal/platform"
)

// Fixed positional mapping of extracted cell text to semantic fields.
//
// WARNING: these offsets are an undocumented, empirically determined contract
// with the target application's current column layout. They are the single
// most likely source of silent breakage if the application's UI changes.
// Do not reorder.
const (
	colPriority  = 0
	colLocation  = 1
	colAccession = 2
	colTime      = 3
	colProcedure = 4
	colCode      = 5
	colHospital  = 6
)

// WorklistRow is an ephemeral snapshot of one worklist grid row: its text
// cells in fixed column order, its last-known bounding rectangle, and a weak
// reference to the underlying accessibility element.
//
// Rows must never be persisted past the poll cycle that extracted them — the
// foreign UI may rebuild its tree between polls.
type WorklistRow struct {
	Cells   []string         `yaml:"cells"  json:"cells"`
	Bounds  model.Bounds     `yaml:"bounds" json:"bounds"`
	Element platform.Element `yaml:"-"      json:"-"`
}

func (r *WorklistRow) cell(i int) string {
	if i < 0 || i >= len(r.Cells) {
		return ""
	}
	return r.Cells[i]
}

// Priority returns the row's priority text (e.g. "STAT").
func (r *WorklistRow) Priority() string { return r.cell(colPriority) }

// Location returns the row's location text.
func (r *WorklistRow) Location() string { return r.cell(colLocation) }

// Accession returns the row's accession number.
func (r *WorklistRow) Accession() string { return r.cell(colAccession) }

// Time returns the row's scheduled time text.
func (r *WorklistRow) Time() string { return r.cell(colTime) }

// Procedure returns the row's procedure description. Rows without one are
// discarded during extraction.
func (r *WorklistRow) Procedure() string { return r.cell(colProcedure) }

// Code returns the row's secondary code field.
func (r *WorklistRow) Code() string { return r.cell(colCode) }

// Hospital returns the row's hospital text.
func (r *WorklistRow) Hospital() string { return r.cell(colHospital) }

// Release frees the row's accessibility element. Called at the end of the
// poll cycle that produced the row.
func (r *WorklistRow) Release() {
	if r.Element != nil {
		r.Element.Release()
		r.Element = nil
	}
}
