// Package utils provides id parsing helpers shared by the HTTP handler, the CLI and the
// spreadsheet importer.
//
// Every helper rejects zero and negative values with ErrInvalidID, since association
// ids start at 1.
package utils
