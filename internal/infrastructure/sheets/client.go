package sheets

import (
	"context"
	"fmt"
	"os"
	"sync"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"github.com/ZaighumCheema47/klap-closing-app/internal/domain/repository"
)

// Worksheets carry a single header row; data rows start at sheet row 2.
const headerRows = 1

// rowRange covers the six persisted columns.
const rowRange = "A2:F"

// Client implements repository.RowStore against the Google Sheets API
// using a service account.
type Client struct {
	svc *sheetsapi.Service

	mu       sync.Mutex
	sheetIDs map[string]int64 // "<spreadsheet>/<worksheet>" -> sheet grid id
}

// NewClient authenticates with the service-account credentials file and
// builds a Sheets API client.
func NewClient(ctx context.Context, credentialsFile string) (*Client, error) {
	creds, err := os.ReadFile(credentialsFile)
	if err != nil {
		return nil, fmt.Errorf("sheets: failed to read credentials file: %w", err)
	}

	jwtCfg, err := google.JWTConfigFromJSON(creds, sheetsapi.SpreadsheetsScope)
	if err != nil {
		return nil, fmt.Errorf("sheets: invalid service account credentials: %w", err)
	}

	svc, err := sheetsapi.NewService(ctx, option.WithHTTPClient(jwtCfg.Client(ctx)))
	if err != nil {
		return nil, fmt.Errorf("sheets: failed to create service: %w", err)
	}

	return &Client{
		svc:      svc,
		sheetIDs: make(map[string]int64),
	}, nil
}

func (c *Client) ReadAll(ctx context.Context, spreadsheetID, worksheet string) ([]repository.Row, error) {
	resp, err := c.svc.Spreadsheets.Values.
		Get(spreadsheetID, fmt.Sprintf("'%s'!%s", worksheet, rowRange)).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("sheets: read %s failed: %w", worksheet, err)
	}

	rows := make([]repository.Row, 0, len(resp.Values))
	for _, values := range resp.Values {
		row := make(repository.Row, len(values))
		for i, v := range values {
			row[i] = fmt.Sprint(v)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func (c *Client) Append(ctx context.Context, spreadsheetID, worksheet string, rows []repository.Row) error {
	if len(rows) == 0 {
		return nil
	}

	values := make([][]interface{}, len(rows))
	for i, row := range rows {
		cells := make([]interface{}, len(row))
		for j, cell := range row {
			cells[j] = cell
		}
		values[i] = cells
	}

	_, err := c.svc.Spreadsheets.Values.
		Append(spreadsheetID, fmt.Sprintf("'%s'!A:F", worksheet), &sheetsapi.ValueRange{Values: values}).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("sheets: append to %s failed: %w", worksheet, err)
	}
	return nil
}

// DeleteRows deletes the data rows at the given positions. Positions
// must already be in descending order; requests in a batchUpdate are
// applied sequentially, so descending order keeps each subsequent
// position valid as earlier deletions shift the grid.
func (c *Client) DeleteRows(ctx context.Context, spreadsheetID, worksheet string, positions []int) error {
	if len(positions) == 0 {
		return nil
	}

	sheetID, err := c.sheetID(ctx, spreadsheetID, worksheet)
	if err != nil {
		return err
	}

	requests := make([]*sheetsapi.Request, 0, len(positions))
	for _, pos := range positions {
		gridIndex := int64(pos + headerRows)
		requests = append(requests, &sheetsapi.Request{
			DeleteDimension: &sheetsapi.DeleteDimensionRequest{
				Range: &sheetsapi.DimensionRange{
					SheetId:    sheetID,
					Dimension:  "ROWS",
					StartIndex: gridIndex,
					EndIndex:   gridIndex + 1,
				},
			},
		})
	}

	_, err = c.svc.Spreadsheets.
		BatchUpdate(spreadsheetID, &sheetsapi.BatchUpdateSpreadsheetRequest{Requests: requests}).
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("sheets: delete rows in %s failed: %w", worksheet, err)
	}
	return nil
}

// sheetID resolves (and caches) the numeric grid id for a worksheet
// title; DeleteDimension addresses sheets by grid id, not by title.
func (c *Client) sheetID(ctx context.Context, spreadsheetID, worksheet string) (int64, error) {
	key := spreadsheetID + "/" + worksheet

	c.mu.Lock()
	if id, ok := c.sheetIDs[key]; ok {
		c.mu.Unlock()
		return id, nil
	}
	c.mu.Unlock()

	meta, err := c.svc.Spreadsheets.Get(spreadsheetID).
		Fields("sheets.properties").
		Context(ctx).
		Do()
	if err != nil {
		return 0, fmt.Errorf("sheets: failed to load spreadsheet metadata: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	for _, sheet := range meta.Sheets {
		if sheet.Properties == nil {
			continue
		}
		c.sheetIDs[spreadsheetID+"/"+sheet.Properties.Title] = sheet.Properties.SheetId
	}

	id, ok := c.sheetIDs[key]
	if !ok {
		return 0, fmt.Errorf("sheets: worksheet %q not found in spreadsheet %s", worksheet, spreadsheetID)
	}
	return id, nil
}
