package sheet

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/time/rate"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// WriteError is the error returned when the Sheets API rejects an operation
// (permissions, rate limit, unknown sheet name, etc).
type WriteError struct {
	Op    string
	Sheet string
	Err   error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("unable to %s sheet '%s' (%v)", e.Op, e.Sheet, e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}

// Client wraps a Google Sheets service bound to a single spreadsheet. API
// calls are paced by an optional rate limiter - the Sheets write quota is
// 60 requests/minute/user.
type Client struct {
	service       *sheets.Service
	spreadsheetID string
	limiter       *rate.Limiter
}

// NewClient creates a Sheets client for the spreadsheet. requestsPerMinute
// limits the API call rate (0 disables limiting). opts normally carry the
// credentials from Authorize.
func NewClient(ctx context.Context, spreadsheetID string, requestsPerMinute float64, opts ...option.ClientOption) (*Client, error) {
	service, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("unable to create new Sheets client (%v)", err)
	}

	var limiter *rate.Limiter
	if requestsPerMinute > 0 {
		limiter = rate.NewLimiter(rate.Limit(requestsPerMinute/60.0), 1)
	}

	return &Client{
		service:       service,
		spreadsheetID: spreadsheetID,
		limiter:       limiter,
	}, nil
}

// Get retrieves all values from the named sheet, stringified. A sheet with
// no values yields an empty list.
func (c *Client) Get(ctx context.Context, sheet string) ([][]string, error) {
	if err := c.wait(ctx); err != nil {
		return nil, err
	}

	response, err := c.service.Spreadsheets.Values.Get(c.spreadsheetID, Range(sheet)).Context(ctx).Do()
	if err != nil {
		return nil, &WriteError{Op: "get", Sheet: sheet, Err: err}
	}

	rows := make([][]string, len(response.Values))
	for i, row := range response.Values {
		cells := make([]string, len(row))
		for j, v := range row {
			cells[j] = fmt.Sprintf("%v", v)
		}

		rows[i] = cells
	}

	return rows, nil
}

// Clear removes all values from the named sheet. Formatting and grid size
// are left as-is.
func (c *Client) Clear(ctx context.Context, sheet string) error {
	if err := c.wait(ctx); err != nil {
		return err
	}

	rq := sheets.BatchClearValuesRequest{
		Ranges: []string{Range(sheet)},
	}

	if _, err := c.service.Spreadsheets.Values.BatchClear(c.spreadsheetID, &rq).Context(ctx).Do(); err != nil {
		return &WriteError{Op: "clear", Sheet: sheet, Err: err}
	}

	return nil
}

// Update writes rows to the named sheet starting at the top-left cell,
// preserving row and column order. Values are written as-is, without any
// spreadsheet type coercion.
func (c *Client) Update(ctx context.Context, sheet string, rows [][]string) error {
	if err := c.wait(ctx); err != nil {
		return err
	}

	values := sheets.ValueRange{
		Range:  Origin(sheet),
		Values: interfaces(rows),
	}

	if _, err := c.service.Spreadsheets.Values.Update(c.spreadsheetID, values.Range, &values).
		ValueInputOption("RAW").
		Context(ctx).
		Do(); err != nil {
		return &WriteError{Op: "update", Sheet: sheet, Err: err}
	}

	return nil
}

// Append appends rows after the last row with content in the named sheet,
// inserting new rows rather than overwriting anything below.
func (c *Client) Append(ctx context.Context, sheet string, rows [][]string) error {
	if err := c.wait(ctx); err != nil {
		return err
	}

	values := sheets.ValueRange{
		Values: interfaces(rows),
	}

	if _, err := c.service.Spreadsheets.Values.Append(c.spreadsheetID, Range(sheet), &values).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do(); err != nil {
		return &WriteError{Op: "append", Sheet: sheet, Err: err}
	}

	return nil
}

// Replace clears the named sheet and then writes rows from the top-left
// cell. The clear always happens, even for an empty table - stale content
// never survives an update. If the write fails after the clear the sheet is
// left empty until the next run.
func (c *Client) Replace(ctx context.Context, sheet string, rows [][]string) error {
	if err := c.Clear(ctx, sheet); err != nil {
		return err
	}

	if len(rows) == 0 {
		return nil
	}

	return c.Update(ctx, sheet, rows)
}

func (c *Client) wait(ctx context.Context) error {
	if c.limiter == nil {
		return nil
	}

	return c.limiter.Wait(ctx)
}

// Range returns the A1 range covering the whole of the named sheet.
func Range(sheet string) string {
	return quote(sheet)
}

// Origin returns the A1 range anchored at the named sheet's top-left cell.
func Origin(sheet string) string {
	return quote(sheet) + "!A1"
}

// Sheet names are quoted in A1 notation, with embedded quotes doubled.
func quote(sheet string) string {
	return "'" + strings.ReplaceAll(sheet, "'", "''") + "'"
}

func interfaces(rows [][]string) [][]interface{} {
	values := make([][]interface{}, len(rows))
	for i, row := range rows {
		cells := make([]interface{}, len(row))
		for j, v := range row {
			cells[j] = v
		}

		values[i] = cells
	}

	return values
}
