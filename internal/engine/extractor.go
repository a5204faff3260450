package engine

import (
	"strings"

	"autoskip/internal/logging"
	"autoskip/internal/model"
	"autoskip/internal/platform"
)

// Extractor walks the located window's accessibility subtree and maps
// row-shaped elements into WorklistRow snapshots.
type Extractor struct {
	reader       platform.TreeReader
	rowPrefix    string
	headerPrefix string
	log          *logging.Logger
}

// NewExtractor builds an extractor. rowPrefix selects data rows by their
// structural identifier; headerPrefix identifies the header row, which is
// never a data row even when the prefixes overlap.
func NewExtractor(reader platform.TreeReader, rowPrefix, headerPrefix string, log *logging.Logger) *Extractor {
	return &Extractor{reader: reader, rowPrefix: rowPrefix, headerPrefix: headerPrefix, log: log}
}

// Extract returns up to maxRows worklist rows from the window, in document
// order. Rows whose procedure cell is empty are dropped. A read failure on
// any individual row is logged and isolated to that row; extraction
// continues with the rest.
func (e *Extractor) Extract(win model.Window, maxRows int) []WorklistRow {
	root, err := e.reader.RootElement(win.Handle)
	if err != nil {
		e.log.Printf("extract: no accessibility root for %q: %v", win.Title, err)
		return nil
	}
	defer root.Release()

	descendants, err := root.Descendants(0)
	if err != nil {
		e.log.Printf("extract: walk failed: %v", err)
		return nil
	}

	var rows []WorklistRow
	for _, el := range descendants {
		if maxRows > 0 && len(rows) >= maxRows {
			el.Release()
			continue
		}
		row, ok := e.extractRow(el)
		if !ok {
			el.Release()
			continue
		}
		rows = append(rows, row)
	}
	return rows
}

// extractRow converts a single element into a WorklistRow if it is a data
// row. Ownership of el transfers to the returned row only when ok is true.
func (e *Extractor) extractRow(el platform.Element) (WorklistRow, bool) {
	id, err := el.AutomationID()
	if err != nil {
		// Stale element: the UI rebuilt its tree mid-walk. Skip the row.
		e.log.Printf("extract: automation id read failed: %v", err)
		return WorklistRow{}, false
	}
	if !strings.HasPrefix(id, e.rowPrefix) {
		return WorklistRow{}, false
	}
	if e.headerPrefix != "" && strings.HasPrefix(id, e.headerPrefix) {
		return WorklistRow{}, false
	}

	bounds, err := el.Bounds()
	if err != nil {
		e.log.Printf("extract: bounds read failed for %s: %v", id, err)
		return WorklistRow{}, false
	}

	cells, err := e.collectCells(el)
	if err != nil {
		e.log.Printf("extract: cell read failed for %s: %v", id, err)
		return WorklistRow{}, false
	}

	row := WorklistRow{Cells: cells, Bounds: bounds, Element: el}
	if row.Procedure() == "" {
		return WorklistRow{}, false
	}
	return row, true
}

// collectCells gathers the non-empty text of every descendant cell in tree
// order. Positional order is what maps a cell to its semantic field, so the
// traversal order here must stay stable.
func (e *Extractor) collectCells(row platform.Element) ([]string, error) {
	cellEls, err := row.Descendants(0)
	if err != nil {
		return nil, err
	}
	var cells []string
	for _, c := range cellEls {
		name, err := c.Name()
		c.Release()
		if err != nil {
			continue
		}
		if name != "" {
			cells = append(cells, name)
		}
	}
	return cells, nil
}
