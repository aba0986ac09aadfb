package lookup

import "context"

// TableReader loads the label-to-publisher lookup table from an external
// spreadsheet-like source. The returned map is keyed by lowercase label.
type TableReader interface {
	// ReadPublisherTable reads (label, publisher id) rows from the named
	// sheet. The header row is skipped and rows with a blank label or id
	// cell are ignored. An empty table is a valid result.
	ReadPublisherTable(ctx context.Context, spreadsheetID, sheetName string) (map[string]string, error)
}
