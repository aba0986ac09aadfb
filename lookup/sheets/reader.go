package sheets

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/poiesic/mailidx/lookup"
	sheetsapi "google.golang.org/api/sheets/v4"
	"google.golang.org/api/option"
)

// Reader implements lookup.TableReader against the Google Sheets API.
type Reader struct {
	srv    *sheetsapi.Service
	logger *slog.Logger
}

var _ lookup.TableReader = (*Reader)(nil)

// NewReader builds a Sheets-backed table reader sharing the same authorized
// HTTP client as the Gmail source.
func NewReader(ctx context.Context, httpClient *http.Client) (*Reader, error) {
	srv, err := sheetsapi.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("unable to create Sheets service: %w", err)
	}
	return &Reader{
		srv:    srv,
		logger: slog.Default().With("component", "sheets"),
	}, nil
}

// ReadPublisherTable reads the first two columns of the named sheet as
// (label, publisher id) pairs. The header row is skipped; rows with a blank
// label or id cell are skipped. Labels are lowercased for lookup.
func (r *Reader) ReadPublisherTable(ctx context.Context, spreadsheetID, sheetName string) (map[string]string, error) {
	readRange := fmt.Sprintf("%s!A:B", sheetName)
	resp, err := r.srv.Spreadsheets.Values.Get(spreadsheetID, readRange).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("unable to read publisher table: %w", err)
	}

	table := map[string]string{}
	for i, row := range resp.Values {
		if i == 0 {
			continue // header row
		}
		if len(row) < 2 {
			continue
		}
		label, _ := row[0].(string)
		id, _ := row[1].(string)
		label = strings.TrimSpace(label)
		id = strings.TrimSpace(id)
		if label == "" || id == "" {
			continue
		}
		table[strings.ToLower(label)] = id
	}

	r.logger.Debug("loaded publisher table", "entries", len(table))
	return table, nil
}
