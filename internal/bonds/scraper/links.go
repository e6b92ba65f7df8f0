package scraper

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"bondwatch/pkg/sheets"
)

// linkColumn is the fixed sheet column holding each bond's page link
// (column B), either as a raw URL or a HYPERLINK formula.
const linkColumn = 2

var hyperlinkPattern = regexp.MustCompile(`=HYPERLINK\("([^"]+)"`)

// BondLinks reads the per-row page URLs from the link column. Cells
// that hold neither a URL nor a HYPERLINK formula yield an empty
// string so the result stays aligned with the sheet's row order.
func BondLinks(ctx context.Context, store sheets.Store) ([]string, error) {
	cells, err := store.ColumnFormulas(ctx, linkColumn)
	if err != nil {
		return nil, fmt.Errorf("read link column: %w", err)
	}

	urls := make([]string, len(cells))
	for i, cell := range cells {
		if match := hyperlinkPattern.FindStringSubmatch(cell); match != nil {
			urls[i] = match[1]
			continue
		}
		if strings.HasPrefix(cell, "http") {
			urls[i] = cell
		}
	}
	return urls, nil
}
