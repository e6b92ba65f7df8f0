package sheets

import "bondwatch/config"

// Open builds the configured Store: a local workbook when
// workbook_path is set, the remote sheet otherwise. The returned
// closer releases the workbook handle; for the remote client it is a
// no-op.
func Open(cfg config.SheetsConfig) (Store, func() error, error) {
	if cfg.WorkbookPath != "" {
		wb, err := OpenWorkbook(cfg.WorkbookPath, cfg.SheetName)
		if err != nil {
			return nil, nil, err
		}
		return wb, wb.Close, nil
	}

	client := NewClient(cfg)
	return client, func() error { return nil }, nil
}
