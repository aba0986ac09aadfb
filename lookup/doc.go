// Package lookup resolves thread labels to publisher identifiers via an
// externally maintained lookup table. The sheets subpackage reads the table
// from Google Sheets.
package lookup
