package sheets

import (
	"context"
	"fmt"

	"bondwatch/config"

	"github.com/go-resty/resty/v2"
)

// Client reads and writes a remote spreadsheet through the Sheets v4
// values API. All reads are whole-range batch fetches; the store is
// never touched cell by cell.
type Client struct {
	http          *resty.Client
	spreadsheetID string
	sheetName     string
}

// valueRange is the request/response envelope of the values API.
type valueRange struct {
	Range          string     `json:"range,omitempty"`
	MajorDimension string     `json:"majorDimension,omitempty"` // "ROWS" or "COLUMNS"
	Values         [][]string `json:"values"`
}

func NewClient(cfg config.SheetsConfig) *Client {
	httpClient := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout).
		SetQueryParam("key", cfg.APIKey)

	return &Client{
		http:          httpClient,
		spreadsheetID: cfg.SpreadsheetID,
		sheetName:     cfg.SheetName,
	}
}

func (c *Client) getRange(ctx context.Context, a1 string, params map[string]string) (*valueRange, error) {
	var vr valueRange

	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(params).
		SetResult(&vr).
		Get(fmt.Sprintf("/%s/values/%s", c.spreadsheetID, a1))
	if err != nil {
		return nil, fmt.Errorf("fetch range %s: %w", a1, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("sheets error for range %s: %s", a1, resp.String())
	}

	return &vr, nil
}

func (c *Client) HeaderRow(ctx context.Context) ([]string, error) {
	vr, err := c.getRange(ctx, fmt.Sprintf("%s!1:1", c.sheetName), nil)
	if err != nil {
		return nil, err
	}
	if len(vr.Values) == 0 {
		return nil, nil
	}
	return vr.Values[0], nil
}

func (c *Client) Column(ctx context.Context, index int) ([]string, error) {
	letter := columnLetter(index)
	vr, err := c.getRange(ctx,
		fmt.Sprintf("%s!%s2:%s", c.sheetName, letter, letter),
		map[string]string{"majorDimension": "COLUMNS"},
	)
	if err != nil {
		return nil, err
	}
	if len(vr.Values) == 0 {
		return nil, nil
	}
	return vr.Values[0], nil
}

func (c *Client) AllRows(ctx context.Context) ([][]string, error) {
	vr, err := c.getRange(ctx, c.sheetName, nil)
	if err != nil {
		return nil, err
	}
	return vr.Values, nil
}

func (c *Client) ColumnFormulas(ctx context.Context, index int) ([]string, error) {
	letter := columnLetter(index)
	vr, err := c.getRange(ctx,
		fmt.Sprintf("%s!%s2:%s", c.sheetName, letter, letter),
		map[string]string{
			"majorDimension":    "COLUMNS",
			"valueRenderOption": "FORMULA",
		},
	)
	if err != nil {
		return nil, err
	}
	if len(vr.Values) == 0 {
		return nil, nil
	}
	return vr.Values[0], nil
}

// AppendColumn writes header plus values into the first free column to
// the right of the current header row.
func (c *Client) AppendColumn(ctx context.Context, header string, values []string) error {
	headers, err := c.HeaderRow(ctx)
	if err != nil {
		return fmt.Errorf("locate next column: %w", err)
	}
	letter := columnLetter(len(headers) + 1)

	body := valueRange{
		MajorDimension: "COLUMNS",
		Values:         [][]string{append([]string{header}, values...)},
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("valueInputOption", "RAW").
		SetBody(body).
		Put(fmt.Sprintf("/%s/values/%s!%s1:%s%d",
			c.spreadsheetID, c.sheetName, letter, letter, len(values)+1))
	if err != nil {
		return fmt.Errorf("append column %s: %w", letter, err)
	}
	if resp.IsError() {
		return fmt.Errorf("sheets error appending column %s: %s", letter, resp.String())
	}

	return nil
}
